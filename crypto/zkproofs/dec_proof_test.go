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

package zkproofs_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cggmp21/zkproofs/common"
	"github.com/cggmp21/zkproofs/crypto/zkproofs"
)

func GenerateDecData(t *testing.T) (*zkproofs.DecWitness, *zkproofs.DecStatement) {
	y := common.GetRandomPositiveInt(q)
	C, rho, err := publicKey.EncryptAndReturnRandomness(y)
	assert.NoError(t, err, "encrypt C must not error")

	x := new(big.Int).Mod(y, q)
	witness := &zkproofs.DecWitness{Y: y, Rho: rho}
	statement := &zkproofs.DecStatement{Q: q, Ell: ell, N0: publicKey.N, C: C, X: x}
	return witness, statement
}

func TestDecProof(t *testing.T) {
	setUp(t)
	witness, statement := GenerateDecData(t)

	proof := zkproofs.NewDecProof(witness, statement, ringPedersen)
	assert.False(t, proof.IsNil())
	ok, err := proof.Verify(statement, ringPedersen)
	assert.True(t, ok, "proof failed to verify")
	assert.NoError(t, err)
}

func TestDecProofRejectsWrongX(t *testing.T) {
	setUp(t)
	witness, statement := GenerateDecData(t)
	proof := zkproofs.NewDecProof(witness, statement, ringPedersen)

	wrong := &zkproofs.DecStatement{Q: q, Ell: ell, N0: publicKey.N, C: statement.C, X: new(big.Int).Add(statement.X, big.NewInt(1))}
	ok, err := proof.Verify(wrong, ringPedersen)
	assert.False(t, ok)
	assert.Error(t, err)
	var invalid *common.InvalidProofError
	assert.ErrorAs(t, err, &invalid)
}

func TestDecProofBytes(t *testing.T) {
	setUp(t)
	witness, statement := GenerateDecData(t)
	proof := zkproofs.NewDecProof(witness, statement, ringPedersen)
	ok, err := proof.Verify(statement, ringPedersen)
	assert.True(t, ok)
	assert.NoError(t, err)

	bz := proof.Bytes()
	np, err := new(zkproofs.DecProof).ProofFromBytes(ec, bz)
	assert.NoError(t, err)
	newProof := np.(*zkproofs.DecProof)
	assert.False(t, newProof.IsNil())
	ok, err = newProof.Verify(statement, ringPedersen)
	assert.True(t, ok)
	assert.NoError(t, err)
}
