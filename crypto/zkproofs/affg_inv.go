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
// AffGInvProof is the single-Paillier-key specialization of aff-g used
// when the prover's own key serves both as N0 and N1 (e.g. one party
// adding its own share to a ciphertext it encrypted itself, rather than
// MtA against a counterparty's key). It is the same relation as
// AffGProof with N0 = N1; the constructors here just build the matching
// witness and statement from the raw (x, y, C) values so callers don't
// have to compute D by hand.

package zkproofs

import (
	"crypto/elliptic"

	"math/big"

	"github.com/cggmp21/zkproofs/common"
	"github.com/cggmp21/zkproofs/crypto"
	"github.com/cggmp21/zkproofs/crypto/paillier"
)

// NewAffGInvWitness builds the witness and statement for the
// single-key aff-g relation D = C^x * Encrypt(y), X = g^x, Y =
// Encrypt(y), given x, y and an existing ciphertext C encrypted under
// pub. priv is accepted for symmetry with the prover's usual calling
// convention (it owns both N0 and N1) but is not otherwise required,
// since every value computed here only uses the public key.
func NewAffGInvWitness(ec elliptic.Curve, priv *paillier.PrivateKey, pub *paillier.PublicKey, x, y, C *big.Int) (*AffGWitness, *AffGStatement, error) {
	rho := common.GetRandomPositiveRelativelyPrimeInt(pub.N)
	Dprime, err := pub.EncryptWithRandomness(y, rho)
	if err != nil {
		return nil, nil, err
	}
	D := ATimesBToTheCModN(Dprime, C, x, pub.NSquare())

	Y, rhoy, err := pub.EncryptAndReturnRandomness(y)
	if err != nil {
		return nil, nil, err
	}

	X := crypto.ScalarBaseMult(ec, x)

	params := DefaultParams()
	witness := &AffGWitness{X: x, Y: y, Rho: rho, Rhoy: rhoy}
	statement := &AffGStatement{
		C:        C,
		D:        D,
		X:        X,
		Y:        Y,
		N0:       pub.N,
		N1:       pub.N,
		Ell:      big.NewInt(int64(params.L)),
		EllPrime: big.NewInt(int64(params.EllPrime)),
	}
	return witness, statement, nil
}

// AffGInvProof is an AffGProof produced over a single-key statement.
// It exists as a distinct type purely so callers deserializing wire
// bytes get back the right Go type; the relation it proves is
// identical to AffGProof's.
type AffGInvProof struct {
	*AffGProof
}

func NewAffGInvProof(wit *AffGWitness, stmt *AffGStatement, rp *RingPedersenParams) (*AffGInvProof, error) {
	inner, err := NewAffGProof(wit, stmt, rp)
	if err != nil {
		return nil, err
	}
	return &AffGInvProof{inner}, nil
}

func (proof *AffGInvProof) ProofFromBytes(ec elliptic.Curve, bzs [][]byte) (Proof, error) {
	inner, err := new(AffGProof).ProofFromBytes(ec, bzs)
	if err != nil {
		return nil, err
	}
	return &AffGInvProof{inner.(*AffGProof)}, nil
}
