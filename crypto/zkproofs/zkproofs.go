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

package zkproofs

import (
	"crypto/elliptic"
	"fmt"
	"math/big"
	"strconv"

	"github.com/cggmp21/zkproofs/common"
)

type Proof interface {
	// returns true if nil
	IsNil() bool
	// returns byte encoding
	Bytes() [][]byte
	// length of Bytes() array
	Parts() int
	// decodes output of Bytes()
	ProofFromBytes(ec elliptic.Curve, bzs [][]byte) (Proof, error)
}

func ProofArrayToBytes[P Proof](proofs []P) [][]byte {
	if len(proofs) == 0 {
		return nil
	}
	parts := proofs[0].Parts()
	output := make([][]byte, parts*len(proofs))
	i := 0
	for _, proof := range proofs {
		if proof.IsNil() {
			for j := 0; j < parts; j += 1 {
				output[i] = nil
				i += 1
			}
		} else {
			pBytes := proof.Bytes()
			for _, ppBytes := range pBytes {
				output[i] = ppBytes
				i += 1
			}
		}
	}
	return output
}

func ProofArrayFromBytes[P Proof](ec elliptic.Curve, bzs [][]byte) ([]P, error) {
	pp := make([]P, 1)[0]
	parts := pp.Parts()
	if len(bzs)%parts != 0 {
		return nil, fmt.Errorf("Improper input length")
	}

	proofs := make([]P, len(bzs)/parts)
	for p := range proofs {
		start := p * parts
		end := (p + 1) * parts
		slice := bzs[start:end]
		if common.NonEmptyMultiBytes(slice, len(slice)) {
			proof, err := pp.ProofFromBytes(ec, slice)
			if err != nil {
				return nil, err
			}
			proofs[p] = proof.(P)
		} else {
			// leave as nil
		}
	}
	return proofs, nil
}

// Params groups the security parameters: the range bit-length L for the
// "small" secret (a Paillier plaintext or an EC discrete log), the slack
// Epsilon added for statistical hiding, a separate EllPrime for proofs
// with a second, wider-ranged secret (currently only Πaff-g's y), and M,
// the number of Πmod challenge rounds. The CGGMP21 paper fixes
// L=1024/EPSILON=1024-ish for 128-bit security with specific curves.
//
// Not every proof reads Params: NewModProof and Verify take M from it,
// and NewAffGInvWitness copies L and EllPrime into its statement. The
// Πenc, Πlog*, Πaff-g, Πdec and Πmul* constructors and verifiers take
// ell from their statement's Ell (and EllPrime) field and always use
// epsilon = 2*ell; Params.Epsilon does not change any proof.
type Params struct {
	L        int
	EllPrime int
	Epsilon  int
	M        int
}

// DefaultParams returns the parameter set used throughout this
// package's tests and worked examples: L=228, EllPrime=848, Epsilon=322,
// M=13, matching the reference parameterization for a 2048-bit Paillier
// modulus and curves with |q| <= 256.
func DefaultParams() *Params {
	return &Params{L: 228, EllPrime: 848, Epsilon: 322, M: 13}
}

func (p *Params) ell() *Ell {
	return NewEll(big.NewInt(int64(p.L)), big.NewInt(int64(p.Epsilon)))
}

func (p *Params) ellPrime() *Ell {
	return NewEll(big.NewInt(int64(p.EllPrime)), big.NewInt(int64(p.Epsilon)))
}

// Ell holds the derived range bounds [-2^(ell+epsilon), 2^(ell+epsilon)]
// and [-2^ell, 2^ell] a proof checks its masked witnesses against.
type Ell struct {
	// the range parameter itself (ell in the paper)
	Ell *big.Int

	// 2^ell
	TwoPowEll *big.Int

	// the slack added to ell before exponentiating (epsilon in the paper)
	Epsilon *big.Int

	// ell + epsilon
	EllPlusEpsilon *big.Int

	// 2^{ell+epsilon}
	TwoPowEllPlusEpsilon *big.Int
}

// NewEll derives the bound constants from an explicit (ell, epsilon) pair.
func NewEll(ell *big.Int, epsilon *big.Int) *Ell {
	two := big.NewInt(2)
	twoPowEll := new(big.Int).Exp(two, ell, nil)
	ellPlusEpsilon := new(big.Int).Add(ell, epsilon)
	twoPowEllPlusEpsilon := new(big.Int).Exp(two, ellPlusEpsilon, nil)
	return &Ell{
		Ell:                  ell,
		TwoPowEll:            twoPowEll,
		Epsilon:              epsilon,
		EllPlusEpsilon:       ellPlusEpsilon,
		TwoPowEllPlusEpsilon: twoPowEllPlusEpsilon,
	}
}

// GetEll returns a curve's bit size as ell, the value a caller can put
// in a statement's Ell field when it works with a curve directly instead
// of a tuned Params value. It returns ell only; the proofs derive
// epsilon = 2*ell from it themselves.
func GetEll(ec elliptic.Curve) *big.Int {
	return big.NewInt(int64(ec.Params().BitSize))
}

func (ell *Ell) String() string {
	out := "Ell: " + ell.Ell.String()
	out += "\nEpsilon " + ell.Epsilon.String()
	out += "\n2^ell <= 2^ell+epsilon: " + strconv.FormatBool(ell.InRange(ell.TwoPowEll))
	out += "\n2^Ell " + ell.TwoPowEll.String()
	out += "\n2^Ell+Epsilon " + ell.TwoPowEllPlusEpsilon.String()
	return out
}

// InRange reports whether val lies in [-2^{ell+epsilon}, +2^{ell+epsilon}].
func (ell *Ell) InRange(val *big.Int) bool {
	min := new(big.Int).Neg(ell.TwoPowEllPlusEpsilon)
	max := ell.TwoPowEllPlusEpsilon
	if val.Cmp(min) < 0 || val.Cmp(max) > 0 {
		return false
	}
	return true
}

// InRangeEll reports whether val lies in [-2^{ell}, +2^{ell}].
func (ell *Ell) InRangeEll(val *big.Int) bool {
	min := new(big.Int).Neg(ell.TwoPowEll)
	max := ell.TwoPowEll
	if val.Cmp(min) < 0 || val.Cmp(max) > 0 {
		return false
	}
	return true
}

func Q(ec elliptic.Curve) *big.Int {
	return ec.Params().N
}

func IsZero(val *big.Int) bool {
	return val.Sign() == 0
}

// PseudoPaillierEncrypt returns c = gamma^m * rho^N mod N^2, the raw
// Paillier encryption formula with an explicit base (gamma), computed
// from N and N^2 without a paillier.PublicKey. The proof constructors in
// this package do not call it; they encrypt through paillier.PublicKey.
func PseudoPaillierEncrypt(gamma *big.Int, m *big.Int, rho *big.Int, N *big.Int, N2 *big.Int) *big.Int {
	Gm := new(big.Int).Exp(gamma, m, N2)
	Xn := new(big.Int).Exp(rho, N, N2)
	c := common.ModInt(N2).Mul(Gm, Xn)
	return c
}

// RingPedersenParams is the auxiliary commitment key (N̂, s, t) the
// verifier publishes so the prover can bind its masked responses to a
// hiding commitment. The spec calls this type "Aux"; Aux is kept as an
// alias below so proof code can use either name.
type RingPedersenParams struct {
	S *big.Int
	T *big.Int
	N *big.Int
}

// Aux is the spec's name for RingPedersenParams.
type Aux = RingPedersenParams

func (rp *RingPedersenParams) Commit(x *big.Int, y *big.Int) *big.Int {
	modNhat := common.ModInt(rp.N)
	sx := modNhat.Exp(rp.S, x)
	ty := modNhat.Exp(rp.T, y)
	return modNhat.Mul(sx, ty)
}

// APlusBC returns a + b*c.
func APlusBC(a *big.Int, b *big.Int, c *big.Int) *big.Int {
	bc := new(big.Int).Mul(b, c)
	return new(big.Int).Add(a, bc)
}

// ATimesBToTheCModN returns a * (b^c) mod N.
func ATimesBToTheCModN(a *big.Int, b *big.Int, c *big.Int, N *big.Int) *big.Int {
	modN := common.ModInt(N)
	bc := modN.Exp(b, c)
	abc := modN.Mul(a, bc)
	return abc
}
