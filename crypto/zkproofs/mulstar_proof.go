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
// This file implements proof mul* in CGG21 Appendix C.2 Figure 29. The
// prover has secret input (x, rho) such that
//  D = C^x * rho^N0 mod N0^2
//  X = g^x
// unlike Πmul, Πmul* binds x to a range with a Ring-Pedersen commitment
// rather than relying on the verifier already trusting x came from a
// valid encryption; it is the building block behind MtA's "multiply
// this ciphertext by my share, in range" step.

package zkproofs

import (
	"crypto/elliptic"
	"fmt"
	"math/big"

	"github.com/cggmp21/zkproofs/common"
	"github.com/cggmp21/zkproofs/crypto"
)

const (
	MulStarProofParts = 8
)

type MulStarProof struct {
	S  *big.Int
	A  *big.Int
	Y  *crypto.ECPoint
	E  *big.Int
	Z1 *big.Int
	Z2 *big.Int
	Z3 *big.Int
}

type MulStarStatement struct {
	Ell *big.Int
	N0  *big.Int
	C   *big.Int
	D   *big.Int
	X   *crypto.ECPoint
}

type MulStarWitness struct {
	X   *big.Int
	Rho *big.Int
}

// mul* in CGG21 Appendix C.2 Figure 29.
func NewMulStarProof(wit *MulStarWitness, stmt *MulStarStatement, rp *RingPedersenParams) *MulStarProof {
	ecpc := NewEll(stmt.Ell, new(big.Int).Mul(stmt.Ell, big.NewInt(2)))
	N0Squared := new(big.Int).Mul(stmt.N0, stmt.N0)
	modN0Squared := common.ModInt(N0Squared)

	alpha := common.GetRandomPositiveInt(ecpc.TwoPowEllPlusEpsilon)
	r := common.GetRandomPositiveRelativelyPrimeInt(stmt.N0)
	gammaRange := new(big.Int).Mul(ecpc.TwoPowEllPlusEpsilon, rp.N)
	gamma := common.GetRandomPositiveInt(gammaRange)
	mRange := new(big.Int).Mul(ecpc.TwoPowEll, rp.N)
	m := common.GetRandomPositiveInt(mRange)

	// A = C^alpha * r^N0 mod N0^2
	A := modN0Squared.Exp(stmt.C, alpha)
	A = modN0Squared.Mul(A, modN0Squared.Exp(r, stmt.N0))

	// Y = g^alpha
	Y := crypto.ScalarBaseMult(stmt.X.Curve(), new(big.Int).Mod(alpha, stmt.X.Curve().Params().N))

	// E = s^alpha * t^gamma mod Nhat
	E := rp.Commit(alpha, gamma)

	// S = s^x * t^m mod Nhat
	S := rp.Commit(wit.X, m)

	proof := &MulStarProof{S: S, A: A, Y: Y, E: E}

	e := proof.GetChallenge(stmt, rp)

	proof.Z1 = APlusBC(alpha, e, wit.X)
	proof.Z2 = ATimesBToTheCModN(r, wit.Rho, e, stmt.N0)
	proof.Z3 = APlusBC(gamma, e, m)

	return proof
}

// mul* in CGG21 Appendix C.2 Figure 29. Verify reports the first
// violated check via a *common.InvalidProofError wrapping its 1-based
// index.
func (proof *MulStarProof) Verify(stmt *MulStarStatement, rp *RingPedersenParams) (bool, error) {
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

	N0Squared := new(big.Int).Mul(stmt.N0, stmt.N0)
	modN0Squared := common.ModInt(N0Squared)

	// check C^z1 * z2^N0 == A * D^e mod N0^2
	left1 := modN0Squared.Exp(stmt.C, proof.Z1)
	left1 = modN0Squared.Mul(left1, modN0Squared.Exp(proof.Z2, stmt.N0))
	right1 := ATimesBToTheCModN(proof.A, stmt.D, e, N0Squared)
	if left1.Cmp(right1) != 0 {
		return false, common.EqualityCheckFailed(3)
	}

	// check g^z1 == Y + X^e
	z1ModQ := new(big.Int).Mod(proof.Z1, stmt.X.Curve().Params().N)
	left2 := crypto.ScalarBaseMult(stmt.X.Curve(), z1ModQ)
	right2 := stmt.X.ScalarMult(e).Add(proof.Y)
	if !left2.Equals(right2) {
		return false, common.EqualityCheckFailed(4)
	}

	// check s^z1 * t^z3 == E * S^e mod Nhat
	left3 := rp.Commit(proof.Z1, proof.Z3)
	right3 := ATimesBToTheCModN(proof.E, proof.S, e, rp.N)
	if left3.Cmp(right3) != 0 {
		return false, common.EqualityCheckFailed(5)
	}

	return true, nil
}

func (proof *MulStarProof) GetChallenge(stmt *MulStarStatement, rp *RingPedersenParams) *big.Int {
	msg := []*big.Int{
		stmt.Ell, stmt.N0, stmt.C, stmt.D, stmt.X.X(), stmt.X.Y(),
		rp.N, rp.S, rp.T,
		proof.S, proof.A, proof.Y.X(), proof.Y.Y(), proof.E,
	}
	return common.SHA512_256i(msg...)
}

// IsNil reports whether the proof is unset.
func (proof *MulStarProof) IsNil() bool {
	if proof == nil {
		return true
	}
	return proof.S == nil || proof.A == nil || proof.Y == nil || proof.E == nil ||
		proof.Z1 == nil || proof.Z2 == nil || proof.Z3 == nil
}

// Nil is an alias of IsNil; both report the same thing. No other proof
// type in this package has it.
func (proof *MulStarProof) Nil() bool {
	return proof.IsNil()
}

func (proof *MulStarProof) Parts() int {
	return MulStarProofParts
}

func (proof *MulStarProof) Bytes() [][]byte {
	return [][]byte{
		proof.S.Bytes(),
		proof.A.Bytes(),
		proof.Y.X().Bytes(),
		proof.Y.Y().Bytes(),
		proof.E.Bytes(),
		proof.Z1.Bytes(),
		proof.Z2.Bytes(),
		proof.Z3.Bytes(),
	}
}

func (proof *MulStarProof) ProofFromBytes(ec elliptic.Curve, bzs [][]byte) (Proof, error) {
	if !common.NonEmptyMultiBytes(bzs, MulStarProofParts) {
		return nil, fmt.Errorf("expected %d byte parts to construct MulStarProof", MulStarProofParts)
	}
	point, err := crypto.NewECPoint(ec, new(big.Int).SetBytes(bzs[2]), new(big.Int).SetBytes(bzs[3]))
	if err != nil {
		return nil, err
	}
	return &MulStarProof{
		S:  new(big.Int).SetBytes(bzs[0]),
		A:  new(big.Int).SetBytes(bzs[1]),
		Y:  point,
		E:  new(big.Int).SetBytes(bzs[4]),
		Z1: new(big.Int).SetBytes(bzs[5]),
		Z2: new(big.Int).SetBytes(bzs[6]),
		Z3: new(big.Int).SetBytes(bzs[7]),
	}, nil
}
