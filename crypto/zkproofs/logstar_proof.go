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
// This file implements proof log* in CGG21 Appendix C.12 Figure 25. The
// prover has secret input (x, rho) and the verifier checks the proof
// against the statement (N0, C, X, g), where
//  C = (1+N0)^x rho^N0 mod N0^2
//  X = g^x
// g defaults to the curve's base point, but may be any other point the
// caller supplies (e.g. another party's public share), matching the
// CGG21 "generalized" form of the relation.

package zkproofs

import (
	"crypto/elliptic"
	"fmt"
	"math/big"

	"github.com/cggmp21/zkproofs/common"
	"github.com/cggmp21/zkproofs/crypto"
	"github.com/cggmp21/zkproofs/crypto/paillier"
)

const (
	LogStarProofParts = 8
)

type LogStarProof struct {
	S  *big.Int        // mod Nhat
	A  *big.Int        // mod N0^2
	Y  *crypto.ECPoint  // = g^alpha
	D  *big.Int        // mod Nhat
	Z1 *big.Int        // in +- 2^{ell+epsilon}
	Z2 *big.Int        // mod N0
	Z3 *big.Int        // in +- 2^{ell+epsilon}*Nhat
}

type LogStarStatement struct {
	Ell *big.Int
	N0  *big.Int
	C   *big.Int
	X   *crypto.ECPoint
	// G is the base the discrete log is taken with respect to. If nil,
	// the curve's standard base point is used.
	G *crypto.ECPoint
}

type LogStarWitness struct {
	X   *big.Int
	Rho *big.Int
}

func (stmt *LogStarStatement) base() *crypto.ECPoint {
	if stmt.G != nil {
		return stmt.G
	}
	return crypto.ScalarBaseMult(stmt.X.Curve(), big.NewInt(1))
}

// log* in CGG21 Appendix C.12 Figure 25.
func NewLogStarProof(wit *LogStarWitness, stmt *LogStarStatement, rp *RingPedersenParams) *LogStarProof {
	ecpc := NewEll(stmt.Ell, new(big.Int).Mul(stmt.Ell, big.NewInt(2)))
	g := stmt.base()

	// 1. Prover samples alpha, mu, r, gamma
	alpha := common.GetRandomPositiveInt(ecpc.TwoPowEllPlusEpsilon)
	muRange := new(big.Int).Mul(ecpc.TwoPowEll, rp.N)
	mu := common.GetRandomPositiveInt(muRange)
	gammaRange := new(big.Int).Mul(ecpc.TwoPowEllPlusEpsilon, rp.N)
	gamma := common.GetRandomPositiveInt(gammaRange)
	r := common.GetRandomPositiveRelativelyPrimeInt(stmt.N0)

	// S = s^x * t^mu mod Nhat
	S := rp.Commit(wit.X, mu)

	// A = (1+N0)^alpha * r^N0 mod N0^2
	pkN0 := &paillier.PublicKey{N: stmt.N0}
	A := pkN0.EncryptWithRandomnessNoErrChk(alpha, r)

	// Y = g^alpha
	Y := g.ScalarMult(alpha)

	// D = s^alpha * t^gamma mod Nhat
	D := rp.Commit(alpha, gamma)

	proof := &LogStarProof{S: S, A: A, Y: Y, D: D}

	// 2. hash to get challenge
	e := proof.GetChallenge(stmt, rp)

	// 3. prover sends (z1, z2, z3)
	proof.Z1 = APlusBC(alpha, e, wit.X)
	proof.Z2 = ATimesBToTheCModN(r, wit.Rho, e, stmt.N0)
	proof.Z3 = APlusBC(gamma, e, mu)

	return proof
}

// log* in CGG21 Appendix C.12 Figure 25. Verify reports the first
// violated check via a *common.InvalidProofError wrapping its 1-based
// index (spec.md §6-§7: verify returns Ok or InvalidProof(kind), and
// always stops at the first violated check).
func (proof *LogStarProof) Verify(stmt *LogStarStatement, rp *RingPedersenParams) (bool, error) {
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

	g := stmt.base()
	e := proof.GetChallenge(stmt, rp)

	if IsZero(proof.A) {
		return false, common.EqualityCheckFailed(3)
	}

	// check (1+N0)^z1 * z2^N0 mod N0^2 == A * C^e mod N0^2
	pkN0 := &paillier.PublicKey{N: stmt.N0}
	left1 := pkN0.EncryptWithRandomnessNoErrChk(proof.Z1, proof.Z2)
	right1 := ATimesBToTheCModN(proof.A, stmt.C, e, pkN0.NSquare())
	if left1.Cmp(right1) != 0 {
		return false, common.EqualityCheckFailed(4)
	}

	// check g^z1 == Y + X^e
	left2 := g.ScalarMult(proof.Z1)
	right2 := stmt.X.ScalarMult(e).Add(proof.Y)
	if !left2.Equals(right2) {
		return false, common.EqualityCheckFailed(5)
	}

	// check s^z1 * t^z3 == D * S^e mod Nhat
	left3 := rp.Commit(proof.Z1, proof.Z3)
	right3 := ATimesBToTheCModN(proof.D, proof.S, e, rp.N)
	if left3.Cmp(right3) != 0 {
		return false, common.EqualityCheckFailed(6)
	}

	return true, nil
}

// GetChallenge hashes the curve-aware transcript, in the order (Ell, N0,
// C, X, g, Aux = (N̂, s, t), S, A, Y, D), into a scalar mod the curve
// order, per spec.md §4.1's
// curve-keyed transcript flavor (distinct from the Paillier-only
// SHA-512/256 transcript the other three proofs use).
func (proof *LogStarProof) GetChallenge(stmt *LogStarStatement, rp *RingPedersenParams) *big.Int {
	g := stmt.base()
	msg := []*big.Int{
		stmt.Ell, stmt.N0, stmt.C, stmt.X.X(), stmt.X.Y(), g.X(), g.Y(),
		rp.N, rp.S, rp.T,
		proof.S, proof.A, proof.Y.X(), proof.Y.Y(), proof.D,
	}
	q := stmt.X.Curve().Params().N
	return common.HashToScalarTagged("cggmp21-zkproofs/logstar", q, msg...)
}

// IsNil reports whether the proof is unset.
func (proof *LogStarProof) IsNil() bool {
	if proof == nil {
		return true
	}
	return proof.S == nil || proof.A == nil || proof.Y == nil || proof.D == nil ||
		proof.Z1 == nil || proof.Z2 == nil || proof.Z3 == nil
}

func (proof *LogStarProof) Parts() int {
	return LogStarProofParts
}

func (proof *LogStarProof) Bytes() [][]byte {
	return [][]byte{
		proof.S.Bytes(),
		proof.A.Bytes(),
		proof.Y.X().Bytes(),
		proof.Y.Y().Bytes(),
		proof.D.Bytes(),
		proof.Z1.Bytes(),
		proof.Z2.Bytes(),
		proof.Z3.Bytes(),
	}
}

func (proof *LogStarProof) ProofFromBytes(ec elliptic.Curve, bzs [][]byte) (Proof, error) {
	if !common.NonEmptyMultiBytes(bzs, LogStarProofParts) {
		return nil, fmt.Errorf("expected %d byte parts to construct LogStarProof", LogStarProofParts)
	}
	point, err := crypto.NewECPoint(ec, new(big.Int).SetBytes(bzs[2]), new(big.Int).SetBytes(bzs[3]))
	if err != nil {
		return nil, err
	}
	return &LogStarProof{
		S:  new(big.Int).SetBytes(bzs[0]),
		A:  new(big.Int).SetBytes(bzs[1]),
		Y:  point,
		D:  new(big.Int).SetBytes(bzs[4]),
		Z1: new(big.Int).SetBytes(bzs[5]),
		Z2: new(big.Int).SetBytes(bzs[6]),
		Z3: new(big.Int).SetBytes(bzs[7]),
	}, nil
}
