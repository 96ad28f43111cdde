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
// This file implements proof enc in CGG21 Appendix C5 Figure 14. The
// prover has secret input (k, rho) and the verifier checks the proof
// against the statement (N0, K), where K = (1+N0)^k rho^N0 mod N0^2.

package zkproofs

import (
	"crypto/elliptic"
	"fmt"
	"math/big"

	"github.com/cggmp21/zkproofs/common"
	"github.com/cggmp21/zkproofs/crypto/paillier"
)

const (
	EncProofParts = 6
)

type EncProof struct {
	S  *big.Int // mod Nhat
	A  *big.Int // mod N0^2
	C  *big.Int // mod Nhat
	Z1 *big.Int // in +- 2^{ell+epsilon}
	Z2 *big.Int // mod N0
	Z3 *big.Int // in +- 2^{ell+epsilon}*Nhat
}

type EncStatement struct {
	Ell *big.Int
	N0  *big.Int
	K   *big.Int
}

type EncWitness struct {
	K   *big.Int
	Rho *big.Int
}

// enc in CGG21 Appendix C5 Figure 14.
func NewEncProof(wit *EncWitness, stmt *EncStatement, rp *RingPedersenParams) *EncProof {
	ecpc := NewEll(stmt.Ell, new(big.Int).Mul(stmt.Ell, big.NewInt(2)))

	// 1. Prover samples alpha, mu, r, gamma
	alpha := common.GetRandomPositiveInt(ecpc.TwoPowEllPlusEpsilon)
	muRange := new(big.Int).Mul(ecpc.TwoPowEll, rp.N)
	mu := common.GetRandomPositiveInt(muRange)
	gammaRange := new(big.Int).Mul(ecpc.TwoPowEllPlusEpsilon, rp.N)
	gamma := common.GetRandomPositiveInt(gammaRange)
	r := common.GetRandomPositiveRelativelyPrimeInt(stmt.N0)

	// S = s^k * t^mu mod Nhat
	S := rp.Commit(wit.K, mu)

	// A = (1+N0)^alpha * r^N0 mod N0^2
	pkN0 := &paillier.PublicKey{N: stmt.N0}
	A := pkN0.EncryptWithRandomnessNoErrChk(alpha, r)

	// C = s^alpha * t^gamma mod Nhat
	C := rp.Commit(alpha, gamma)

	proof := &EncProof{S: S, A: A, C: C}

	// 2. hash to get challenge
	e := proof.GetChallenge(stmt, rp)

	// 3. prover sends (z1, z2, z3)
	proof.Z1 = APlusBC(alpha, e, wit.K)
	proof.Z2 = ATimesBToTheCModN(r, wit.Rho, e, stmt.N0)
	proof.Z3 = APlusBC(gamma, e, mu)

	return proof
}

// enc in CGG21 Appendix C5 Figure 14. Verify reports the first
// violated check via a *common.InvalidProofError wrapping its 1-based
// index.
func (proof *EncProof) Verify(stmt *EncStatement, rp *RingPedersenParams) (bool, error) {
	if proof == nil || proof.IsNil() {
		return false, common.EqualityCheckFailed(0)
	}
	if stmt.N0.Sign() != 1 {
		return false, common.RangeCheckFailed(1)
	}

	ecpc := NewEll(stmt.Ell, new(big.Int).Mul(stmt.Ell, big.NewInt(2)))
	if !ecpc.InRange(proof.Z1) {
		return false, common.RangeCheckFailed(2)
	}

	e := proof.GetChallenge(stmt, rp)

	if IsZero(proof.A) {
		return false, common.EqualityCheckFailed(3)
	}

	// check (1+N0)^z1 * z2^N0 mod N0^2 == A * K^e mod N0^2
	pkN0 := &paillier.PublicKey{N: stmt.N0}
	left1 := pkN0.EncryptWithRandomnessNoErrChk(proof.Z1, proof.Z2)
	right1 := ATimesBToTheCModN(proof.A, stmt.K, e, pkN0.NSquare())
	if left1.Cmp(right1) != 0 {
		return false, common.EqualityCheckFailed(4)
	}

	// check s^z1 * t^z3 == C * S^e mod Nhat
	left2 := rp.Commit(proof.Z1, proof.Z3)
	right2 := ATimesBToTheCModN(proof.C, proof.S, e, rp.N)
	if left2.Cmp(right2) != 0 {
		return false, common.EqualityCheckFailed(5)
	}

	return true, nil
}

func (proof *EncProof) GetChallenge(stmt *EncStatement, rp *RingPedersenParams) *big.Int {
	msg := []*big.Int{stmt.Ell, stmt.N0, stmt.K, rp.N, rp.S, rp.T, proof.S, proof.A, proof.C}
	return common.SHA512_256i(msg...)
}

// IsNil reports whether the proof is unset.
func (proof *EncProof) IsNil() bool {
	if proof == nil {
		return true
	}
	return proof.S == nil || proof.A == nil || proof.C == nil ||
		proof.Z1 == nil || proof.Z2 == nil || proof.Z3 == nil
}

func (proof *EncProof) Parts() int {
	return EncProofParts
}

func (proof *EncProof) Bytes() [][]byte {
	return [][]byte{
		proof.S.Bytes(),
		proof.A.Bytes(),
		proof.C.Bytes(),
		proof.Z1.Bytes(),
		proof.Z2.Bytes(),
		proof.Z3.Bytes(),
	}
}

func (proof *EncProof) ProofFromBytes(ec elliptic.Curve, bzs [][]byte) (Proof, error) {
	if !common.NonEmptyMultiBytes(bzs, EncProofParts) {
		return nil, fmt.Errorf("expected %d byte parts to construct EncProof", EncProofParts)
	}
	return &EncProof{
		S:  new(big.Int).SetBytes(bzs[0]),
		A:  new(big.Int).SetBytes(bzs[1]),
		C:  new(big.Int).SetBytes(bzs[2]),
		Z1: new(big.Int).SetBytes(bzs[3]),
		Z2: new(big.Int).SetBytes(bzs[4]),
		Z3: new(big.Int).SetBytes(bzs[5]),
	}, nil
}
