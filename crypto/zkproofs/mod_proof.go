// Copyright (c) 2023, Circle Internet Financial, LTD. All rights reserved.
//
//  SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// This file implements proof mod in CGG21 Appendix C.1 Figure 16. The
// prover has secret input (P, Q) and convinces the verifier that N = PQ
// is a Paillier-Blum modulus: odd, not a prime power, and a product of
// two primes both congruent to 3 mod 4.

package zkproofs

import (
	"fmt"
	"math/big"

	"github.com/otiai10/primes"

	"github.com/cggmp21/zkproofs/common"
)

const (
	modVerifyPrimesUntil = 1000
)

func init() {
	primes.Globally.Until(modVerifyPrimesUntil)
}

// ModProofIterations returns M, the number of Fiat-Shamir challenges a
// Πmod proof carries, derived from a Params value so callers can tune
// soundness vs. proof size rather than accept a hard-coded constant.
func ModProofIterations(params *Params) int {
	if params == nil || params.M <= 0 {
		return DefaultParams().M
	}
	return params.M
}

// ModProof is the collection of M independent fourth-root responses
// that together drive the prover's cheating probability below 2^-M.
type ModProof struct {
	W *big.Int
	X []*big.Int
	A []*big.Int
	B []*big.Int
	Z []*big.Int
}

func modProofParts(m int) int {
	return m*4 + 1
}

func isQuadraticResidue(x, n *big.Int) bool {
	modN := common.ModInt(n)
	exp := modN.Exp(x, new(big.Int).Rsh(n, 1))
	return exp.Cmp(big.NewInt(1)) == 0
}

// NewModProof constructs mod in CGG21 Appendix C.1 Figure 16 for the
// modulus N = PQ.
func NewModProof(params *Params, N, P, Q *big.Int) (*ModProof, error) {
	m := ModProofIterations(params)
	one := big.NewInt(1)
	phi := new(big.Int).Mul(new(big.Int).Sub(P, one), new(big.Int).Sub(Q, one))

	// Fig 16.1
	W := common.GetRandomQuadraticNonResidue(N)

	// Fig 16.2: derive M Fiat-Shamir challenges, each depending on all
	// the ones derived before it so the prover cannot choose them.
	Y := make([]*big.Int, m)
	for i := range Y {
		e := common.SHA512_256i(append([]*big.Int{W, N}, Y[:i]...)...)
		Y[i] = common.RejectionSample(N, e)
	}

	modN, modPhi := common.ModInt(N), common.ModInt(phi)
	nInv := new(big.Int).ModInverse(N, phi)
	if nInv == nil {
		return nil, fmt.Errorf("zkproofs: N not invertible mod phi(N); P, Q are not valid Paillier-Blum factors")
	}

	X := make([]*big.Int, m)
	A := make([]*big.Int, m)
	B := make([]*big.Int, m)
	Z := make([]*big.Int, m)

	for i := range Y {
		found := false
		for j := 0; j < 4; j++ {
			a, b := j&1, (j&2)>>1
			Yi := new(big.Int).Set(Y[i])
			if a > 0 {
				Yi = modN.Mul(big.NewInt(-1), Yi)
			}
			if b > 0 {
				Yi = modN.Mul(W, Yi)
			}
			if isQuadraticResidue(Yi, P) && isQuadraticResidue(Yi, Q) {
				e := new(big.Int).Add(phi, big.NewInt(4))
				e = new(big.Int).Rsh(e, 3)
				e = modPhi.Mul(e, e)
				Xi := modN.Exp(Yi, e)
				Zi := modN.Exp(Y[i], nInv)
				X[i], A[i], B[i], Z[i] = Xi, big.NewInt(int64(a)), big.NewInt(int64(b)), Zi
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("zkproofs: no fourth root found for challenge %d; P, Q are not valid Paillier-Blum factors", i)
		}
	}

	return &ModProof{W: W, X: X, A: A, B: B, Z: Z}, nil
}

type modCheckResult struct {
	index int
	ok    bool
}

// Verify checks mod in CGG21 Appendix C.1 Figure 16 against N. The
// per-challenge checks are independent, so they run on a small, bounded
// worker pool rather than one goroutine per challenge: M is a proof
// parameter the verifier does not control, and an unbounded fan-out
// would let a malformed proof with an inflated M exhaust goroutines.
// On failure, Verify reports the first violated check (in ascending
// challenge order, not completion order) via a *common.InvalidProofError.
func (proof *ModProof) Verify(params *Params, N *big.Int) (bool, error) {
	if proof == nil || !proof.validateBasic() {
		return false, common.EqualityCheckFailed(0)
	}
	m := len(proof.X)
	if m == 0 || len(proof.A) != m || len(proof.B) != m || len(proof.Z) != m {
		return false, common.EqualityCheckFailed(1)
	}

	if N.Bit(0) == 0 {
		return false, common.RangeCheckFailed(2)
	}
	if N.ProbablyPrime(20) {
		return false, common.RangeCheckFailed(3)
	}
	if hasSmallPrimeFactor(N) {
		return false, common.RangeCheckFailed(4)
	}

	Y := make([]*big.Int, m)
	for i := range Y {
		e := common.SHA512_256i(append([]*big.Int{proof.W, N}, Y[:i]...)...)
		Y[i] = common.RejectionSample(N, e)
	}

	modN := common.ModInt(N)

	const maxWorkers = 8
	workers := maxWorkers
	if m < workers {
		workers = m
	}

	jobs := make(chan int, m)
	results := make(chan modCheckResult, m)

	for w := 0; w < workers; w++ {
		go func() {
			for i := range jobs {
				results <- modCheckResult{index: i, ok: proof.checkChallenge(modN, N, Y[i], i)}
			}
		}()
	}
	for i := 0; i < m; i++ {
		jobs <- i
	}
	close(jobs)

	failed := make([]bool, m)
	for i := 0; i < m; i++ {
		r := <-results
		failed[r.index] = !r.ok
	}
	for i, bad := range failed {
		if bad {
			return false, common.EqualityCheckFailed(5 + i)
		}
	}
	return true, nil
}

func (proof *ModProof) checkChallenge(modN *common.Int, N, Yi *big.Int, i int) bool {
	left := modN.Exp(proof.Z[i], N)
	if left.Cmp(Yi) != 0 {
		return false
	}

	a, b := proof.A[i].Int64(), proof.B[i].Int64()
	left2 := modN.Exp(proof.X[i], big.NewInt(4))
	right2 := new(big.Int).Set(Yi)
	if a > 0 {
		right2 = modN.Mul(big.NewInt(-1), right2)
	}
	if b > 0 {
		right2 = modN.Mul(proof.W, right2)
	}
	return left2.Cmp(right2) == 0
}

// hasSmallPrimeFactor is the cheap rejection path: if N shares a factor
// with any prime below modVerifyPrimesUntil, it cannot be a valid
// Paillier-Blum modulus (a product of two large primes), so the
// expensive per-challenge verification can be skipped entirely.
func hasSmallPrimeFactor(N *big.Int) bool {
	zero := big.NewInt(0)
	for _, p := range primes.Until(modVerifyPrimesUntil).List() {
		if new(big.Int).Mod(N, big.NewInt(p)).Cmp(zero) == 0 {
			return true
		}
	}
	return false
}

func (proof *ModProof) validateBasic() bool {
	if proof.W == nil {
		return false
	}
	for _, v := range proof.X {
		if v == nil {
			return false
		}
	}
	for _, v := range proof.A {
		if v == nil {
			return false
		}
	}
	for _, v := range proof.B {
		if v == nil {
			return false
		}
	}
	for _, v := range proof.Z {
		if v == nil {
			return false
		}
	}
	return true
}

// IsNil reports whether the proof is unset.
func (proof *ModProof) IsNil() bool {
	return proof == nil || !proof.validateBasic()
}

func (proof *ModProof) Parts() int {
	return modProofParts(len(proof.X))
}

func (proof *ModProof) Bytes() [][]byte {
	m := len(proof.X)
	out := make([][]byte, modProofParts(m))
	out[0] = proof.W.Bytes()
	for i := 0; i < m; i++ {
		out[1+i] = proof.X[i].Bytes()
		out[m+1+i] = proof.A[i].Bytes()
		out[2*m+1+i] = proof.B[i].Bytes()
		out[3*m+1+i] = proof.Z[i].Bytes()
	}
	return out
}

// ModProofFromBytes decodes a ModProof, taking the iteration count m
// from the number of parts (1 + 4m). Unlike the other proofs in this
// package, ModProof's wire length depends on a runtime parameter (M), so
// this is a plain function rather than a ProofFromBytes method of the
// fixed-arity Proof interface; callers decode it directly instead of
// going through ProofArrayFromBytes.
func ModProofFromBytes(bzs [][]byte) (*ModProof, error) {
	if len(bzs) == 0 || (len(bzs)-1)%4 != 0 {
		return nil, fmt.Errorf("zkproofs: malformed ModProof byte length %d", len(bzs))
	}
	m := (len(bzs) - 1) / 4
	if !common.NonEmptyMultiBytes(bzs, len(bzs)) {
		return nil, fmt.Errorf("expected %d non-empty byte parts to construct ModProof", len(bzs))
	}

	bis := make([]*big.Int, len(bzs))
	for i := range bis {
		bis[i] = new(big.Int).SetBytes(bzs[i])
	}

	return &ModProof{
		W: bis[0],
		X: append([]*big.Int{}, bis[1:m+1]...),
		A: append([]*big.Int{}, bis[m+1:2*m+1]...),
		B: append([]*big.Int{}, bis[2*m+1:3*m+1]...),
		Z: append([]*big.Int{}, bis[3*m+1:]...),
	}, nil
}
