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
// This file implements proof aff-g in CGG21 Appendix C.3 Figure 15. The
// prover has secret input (x, y, rho, rhoy) such that
//  C   is a Paillier ciphertext under N0 (not necessarily known to the prover)
//  D   = C^x * (1+N0)^y * rho^N0 mod N0^2
//  Y   = (1+N1)^y * rhoy^N1 mod N1^2
//  X   = g^x
// x ranges over ±2^ell, y ranges over ±2^ellPrime: this is the "affine
// operation with a group commitment in range" proof used by the MtA
// subprotocol to let one party add a share to another's ciphertext
// while proving the addend and the multiplier both stayed in range.

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
	AffGProofParts = 14
)

type AffGProof struct {
	S, T, A  *big.Int
	Bx       *crypto.ECPoint
	By, E, F *big.Int
	Z1, Z2, Z3, Z4, W, Wy *big.Int
}

type AffGStatement struct {
	C, D     *big.Int
	X        *crypto.ECPoint
	Y        *big.Int
	N0, N1   *big.Int
	Ell      *big.Int
	EllPrime *big.Int
}

type AffGWitness struct {
	X, Y, Rho, Rhoy *big.Int
}

// aff-g in CGG21 Appendix C.3 Figure 15.
func NewAffGProof(wit *AffGWitness, stmt *AffGStatement, rp *RingPedersenParams) (*AffGProof, error) {
	ecpcX := NewEll(stmt.Ell, new(big.Int).Mul(stmt.Ell, big.NewInt(2)))
	ecpcY := NewEll(stmt.EllPrime, new(big.Int).Mul(stmt.EllPrime, big.NewInt(2)))

	// 1. Prover samples alpha, beta, r, ry, gamma, m, delta, mu
	alpha := common.GetRandomPositiveInt(ecpcX.TwoPowEllPlusEpsilon)
	beta := common.GetRandomPositiveInt(ecpcY.TwoPowEllPlusEpsilon)
	r := common.GetRandomPositiveRelativelyPrimeInt(stmt.N0)
	ry := common.GetRandomPositiveRelativelyPrimeInt(stmt.N1)
	gamma := common.GetRandomPositiveInt(new(big.Int).Mul(ecpcX.TwoPowEllPlusEpsilon, rp.N))
	m := common.GetRandomPositiveInt(new(big.Int).Mul(ecpcX.TwoPowEll, rp.N))
	delta := common.GetRandomPositiveInt(new(big.Int).Mul(ecpcY.TwoPowEllPlusEpsilon, rp.N))
	mu := common.GetRandomPositiveInt(new(big.Int).Mul(ecpcY.TwoPowEll, rp.N))

	// A = C^alpha * (1+N0)^beta * r^N0 mod N0^2
	pkN0 := &paillier.PublicKey{N: stmt.N0}
	modN0Squared := common.ModInt(pkN0.NSquare())
	A := modN0Squared.Exp(stmt.C, alpha)
	A = modN0Squared.Mul(A, pkN0.EncryptWithRandomnessNoErrChk(beta, r))

	// Bx = g^alpha
	BxPoint := crypto.ScalarBaseMult(stmt.X.Curve(), new(big.Int).Mod(alpha, stmt.X.Curve().Params().N))

	// By = (1+N1)^beta * ry^N1 mod N1^2
	pkN1 := &paillier.PublicKey{N: stmt.N1}
	By := pkN1.EncryptWithRandomnessNoErrChk(beta, ry)

	E := rp.Commit(alpha, gamma)
	S := rp.Commit(wit.X, m)
	F := rp.Commit(beta, delta)
	T := rp.Commit(wit.Y, mu)

	proof := &AffGProof{S: S, T: T, A: A, Bx: BxPoint, By: By, E: E, F: F}

	e := proof.GetChallenge(stmt, rp)

	proof.Z1 = APlusBC(alpha, e, wit.X)
	proof.Z2 = APlusBC(beta, e, wit.Y)
	proof.Z3 = APlusBC(gamma, e, m)
	proof.Z4 = APlusBC(delta, e, mu)
	proof.W = ATimesBToTheCModN(r, wit.Rho, e, stmt.N0)
	proof.Wy = ATimesBToTheCModN(ry, wit.Rhoy, e, stmt.N1)

	return proof, nil
}

// aff-g in CGG21 Appendix C.3 Figure 15. Verify reports the first
// violated check via a *common.InvalidProofError wrapping its 1-based
// index.
func (proof *AffGProof) Verify(stmt *AffGStatement, rp *RingPedersenParams) (bool, error) {
	if proof == nil || proof.IsNil() {
		return false, common.EqualityCheckFailed(0)
	}

	ecpcX := NewEll(stmt.Ell, new(big.Int).Mul(stmt.Ell, big.NewInt(2)))
	ecpcY := NewEll(stmt.EllPrime, new(big.Int).Mul(stmt.EllPrime, big.NewInt(2)))
	if !ecpcX.InRange(proof.Z1) || !ecpcY.InRange(proof.Z2) {
		return false, common.RangeCheckFailed(1)
	}

	e := proof.GetChallenge(stmt, rp)

	pkN0 := &paillier.PublicKey{N: stmt.N0}
	pkN1 := &paillier.PublicKey{N: stmt.N1}

	// check C^z1 * (1+N0)^z2 * w^N0 == A * D^e mod N0^2
	{
		modN0Squared := common.ModInt(pkN0.NSquare())
		left := modN0Squared.Exp(stmt.C, proof.Z1)
		left = modN0Squared.Mul(left, pkN0.EncryptWithRandomnessNoErrChk(proof.Z2, proof.W))
		right := ATimesBToTheCModN(proof.A, stmt.D, e, pkN0.NSquare())
		if left.Cmp(right) != 0 {
			return false, common.EqualityCheckFailed(2)
		}
	}

	// check g^z1 == X^e + Bx
	{
		z1ModQ := new(big.Int).Mod(proof.Z1, stmt.X.Curve().Params().N)
		left := crypto.ScalarBaseMult(stmt.X.Curve(), z1ModQ)
		right := stmt.X.ScalarMult(e).Add(proof.Bx)
		if !left.Equals(right) {
			return false, common.EqualityCheckFailed(3)
		}
	}

	// check (1+N1)^z2 * wy^N1 == By * Y^e mod N1^2
	{
		left := pkN1.EncryptWithRandomnessNoErrChk(proof.Z2, proof.Wy)
		right := ATimesBToTheCModN(proof.By, stmt.Y, e, pkN1.NSquare())
		if left.Cmp(right) != 0 {
			return false, common.EqualityCheckFailed(4)
		}
	}

	// check s^z1 * t^z3 == E * S^e mod Nhat
	{
		left := rp.Commit(proof.Z1, proof.Z3)
		right := ATimesBToTheCModN(proof.E, proof.S, e, rp.N)
		if left.Cmp(right) != 0 {
			return false, common.EqualityCheckFailed(5)
		}
	}

	// check s^z2 * t^z4 == F * T^e mod Nhat
	{
		left := rp.Commit(proof.Z2, proof.Z4)
		right := ATimesBToTheCModN(proof.F, proof.T, e, rp.N)
		if left.Cmp(right) != 0 {
			return false, common.EqualityCheckFailed(6)
		}
	}

	return true, nil
}

func (proof *AffGProof) GetChallenge(stmt *AffGStatement, rp *RingPedersenParams) *big.Int {
	msg := []*big.Int{
		stmt.N0, stmt.N1, stmt.Y, stmt.X.X(), stmt.X.Y(), stmt.C, stmt.D,
		proof.Bx.X(), proof.Bx.Y(), proof.By,
		rp.N, rp.S, rp.T,
		proof.S, proof.T, proof.A, proof.E, proof.F,
	}
	return common.SHA512_256i(msg...)
}

// IsNil reports whether the proof is unset.
func (proof *AffGProof) IsNil() bool {
	if proof == nil {
		return true
	}
	return proof.S == nil || proof.T == nil || proof.A == nil || proof.Bx == nil || proof.By == nil ||
		proof.E == nil || proof.F == nil || proof.Z1 == nil || proof.Z2 == nil || proof.Z3 == nil ||
		proof.Z4 == nil || proof.W == nil || proof.Wy == nil
}

func (proof *AffGProof) Parts() int {
	return AffGProofParts
}

func (proof *AffGProof) Bytes() [][]byte {
	return [][]byte{
		proof.S.Bytes(),
		proof.T.Bytes(),
		proof.A.Bytes(),
		proof.Bx.X().Bytes(),
		proof.Bx.Y().Bytes(),
		proof.By.Bytes(),
		proof.E.Bytes(),
		proof.F.Bytes(),
		proof.Z1.Bytes(),
		proof.Z2.Bytes(),
		proof.Z3.Bytes(),
		proof.Z4.Bytes(),
		proof.W.Bytes(),
		proof.Wy.Bytes(),
	}
}

func (proof *AffGProof) ProofFromBytes(ec elliptic.Curve, bzs [][]byte) (Proof, error) {
	if !common.NonEmptyMultiBytes(bzs, AffGProofParts) {
		return nil, fmt.Errorf("expected %d byte parts to construct AffGProof", AffGProofParts)
	}
	point, err := crypto.NewECPoint(ec, new(big.Int).SetBytes(bzs[3]), new(big.Int).SetBytes(bzs[4]))
	if err != nil {
		return nil, err
	}
	return &AffGProof{
		S:  new(big.Int).SetBytes(bzs[0]),
		T:  new(big.Int).SetBytes(bzs[1]),
		A:  new(big.Int).SetBytes(bzs[2]),
		Bx: point,
		By: new(big.Int).SetBytes(bzs[5]),
		E:  new(big.Int).SetBytes(bzs[6]),
		F:  new(big.Int).SetBytes(bzs[7]),
		Z1: new(big.Int).SetBytes(bzs[8]),
		Z2: new(big.Int).SetBytes(bzs[9]),
		Z3: new(big.Int).SetBytes(bzs[10]),
		Z4: new(big.Int).SetBytes(bzs[11]),
		W:  new(big.Int).SetBytes(bzs[12]),
		Wy: new(big.Int).SetBytes(bzs[13]),
	}, nil
}
