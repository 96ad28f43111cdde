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
// The six scenarios below reproduce the concrete literal examples: each
// pins L and the witness to the values given there so a reader can
// check the proof machinery against worked numbers instead of only
// randomized property tests. The oversized witnesses are built from
// L+EPSILON = 228+322, but the proofs themselves derive epsilon as
// 2*Ell, so with Ell = 228 they check z1 against 2^(228+456).

package zkproofs_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cggmp21/zkproofs/common"
	"github.com/cggmp21/zkproofs/crypto"
	"github.com/cggmp21/zkproofs/crypto/zkproofs"
)

func scenarioParams() *zkproofs.Params {
	return &zkproofs.Params{L: 228, EllPrime: 848, Epsilon: 322, M: 13}
}

// Scenario 1: Πlog* passing, curve = Secp256r1, plaintext = 228.
func TestScenario1LogStarPass(t *testing.T) {
	setUp(t)
	p256 := crypto.P256()

	x := big.NewInt(228)
	rho := common.GetRandomPositiveRelativelyPrimeInt(publicKey.N)
	witness := &zkproofs.LogStarWitness{X: x, Rho: rho}

	X := crypto.ScalarBaseMult(p256, x)
	C, err := publicKey.EncryptWithRandomness(x, rho)
	require.NoError(t, err)

	statement := &zkproofs.LogStarStatement{
		Ell: big.NewInt(228),
		N0:  publicKey.N,
		C:   C,
		X:   X,
	}

	proof := zkproofs.NewLogStarProof(witness, statement, ringPedersen)
	ok, err := proof.Verify(statement, ringPedersen)
	assert.True(t, ok)
	assert.NoError(t, err)
}

// Scenario 2: same parameters, but the plaintext exceeds 2^(L+EPSILON) —
// verification must fail the Z1 range check.
func TestScenario2LogStarRangeFail(t *testing.T) {
	setUp(t)
	p256 := crypto.P256()

	ellEpsilon := uint(228 + 322)
	x := new(big.Int).Add(new(big.Int).Lsh(big.NewInt(1), ellEpsilon), big.NewInt(1))
	rho := common.GetRandomPositiveRelativelyPrimeInt(publicKey.N)
	witness := &zkproofs.LogStarWitness{X: x, Rho: rho}

	X := crypto.ScalarBaseMult(p256, x)
	C, err := publicKey.EncryptWithRandomness(new(big.Int).Mod(x, publicKey.N), rho)
	require.NoError(t, err)

	statement := &zkproofs.LogStarStatement{
		Ell: big.NewInt(228),
		N0:  publicKey.N,
		C:   C,
		X:   X,
	}

	proof := zkproofs.NewLogStarProof(witness, statement, ringPedersen)
	ok, err := proof.Verify(statement, ringPedersen)
	assert.False(t, ok)
	var invalid *common.InvalidProofError
	require.ErrorAs(t, err, &invalid)
	assert.True(t, invalid.Range, "oversized witness must fail a range check, not an equality check")
}

// Scenario 3: Πaff-g passing, c = 100, x = 2, y = 28.
func TestScenario3AffGPass(t *testing.T) {
	setUp(t)

	c := big.NewInt(100)
	x := big.NewInt(2)
	y := big.NewInt(28)
	rho := common.GetRandomPositiveRelativelyPrimeInt(publicKey.N)
	rhoy := common.GetRandomPositiveRelativelyPrimeInt(publicKey.N)

	C, err := publicKey.Encrypt(c)
	require.NoError(t, err)
	Dprime, err := publicKey.EncryptWithRandomness(y, rho)
	require.NoError(t, err)
	D := zkproofs.ATimesBToTheCModN(Dprime, C, x, publicKey.NSquare())
	Y, err := publicKey.EncryptWithRandomness(y, rhoy)
	require.NoError(t, err)
	X := crypto.ScalarBaseMult(ec, x)

	witness := &zkproofs.AffGWitness{X: x, Y: y, Rho: rho, Rhoy: rhoy}
	statement := &zkproofs.AffGStatement{
		C: C, D: D, X: X, Y: Y,
		N0: publicKey.N, N1: publicKey.N,
		Ell: ell, EllPrime: ell,
	}

	proof, err := zkproofs.NewAffGProof(witness, statement, ringPedersen)
	require.NoError(t, err)
	ok, verifyErr := proof.Verify(statement, ringPedersen)
	assert.True(t, ok)
	assert.NoError(t, verifyErr)
}

// Scenario 4: Πaff-g failing, x and y oversized past 2^(L+EPSILON).
func TestScenario4AffGRangeFail(t *testing.T) {
	setUp(t)

	ellEpsilon := uint(228 + 322)
	x := new(big.Int).Add(new(big.Int).Lsh(big.NewInt(1), ellEpsilon), big.NewInt(1))
	y := new(big.Int).Add(new(big.Int).Lsh(big.NewInt(1), ellEpsilon), big.NewInt(2))
	c := big.NewInt(100)
	rho := common.GetRandomPositiveRelativelyPrimeInt(publicKey.N)
	rhoy := common.GetRandomPositiveRelativelyPrimeInt(publicKey.N)

	xModN := new(big.Int).Mod(x, publicKey.N)
	yModN := new(big.Int).Mod(y, publicKey.N)

	C, err := publicKey.Encrypt(c)
	require.NoError(t, err)
	Dprime, err := publicKey.EncryptWithRandomness(yModN, rho)
	require.NoError(t, err)
	D := zkproofs.ATimesBToTheCModN(Dprime, C, xModN, publicKey.NSquare())
	Y, err := publicKey.EncryptWithRandomness(yModN, rhoy)
	require.NoError(t, err)
	X := crypto.ScalarBaseMult(ec, xModN)

	witness := &zkproofs.AffGWitness{X: x, Y: y, Rho: rho, Rhoy: rhoy}
	statement := &zkproofs.AffGStatement{
		C: C, D: D, X: X, Y: Y,
		N0: publicKey.N, N1: publicKey.N,
		Ell: big.NewInt(228), EllPrime: big.NewInt(228),
	}

	proof, err := zkproofs.NewAffGProof(witness, statement, ringPedersen)
	require.NoError(t, err)
	ok, verifyErr := proof.Verify(statement, ringPedersen)
	assert.False(t, ok)
	var invalid *common.InvalidProofError
	require.ErrorAs(t, verifyErr, &invalid)
	assert.True(t, invalid.Range, "oversized witness must fail a range check, not an equality check")
}

// Scenario 5: Πenc round-trip with k = 42; flipping the low bit of A
// breaks the Fiat-Shamir binding and verification fails.
func TestScenario5EncRoundTripAndBitFlip(t *testing.T) {
	setUp(t)

	k := big.NewInt(42)
	K, rho, err := publicKey.EncryptAndReturnRandomness(k)
	require.NoError(t, err)

	witness := &zkproofs.EncWitness{K: k, Rho: rho}
	statement := &zkproofs.EncStatement{Ell: ell, N0: publicKey.N, K: K}

	proof := zkproofs.NewEncProof(witness, statement, ringPedersen)
	ok, verifyErr := proof.Verify(statement, ringPedersen)
	require.True(t, ok)
	require.NoError(t, verifyErr)

	proof.A = new(big.Int).Xor(proof.A, big.NewInt(1))
	ok, verifyErr = proof.Verify(statement, ringPedersen)
	assert.False(t, ok)
	assert.Error(t, verifyErr)
}

// Scenario 6: Πmod with an honestly generated N passes; substituting
// N' = N + 2 must fail at least one per-challenge check.
func TestScenario6ModSubstitutedN(t *testing.T) {
	setUp(t)

	proof, err := zkproofs.NewModProof(scenarioParams(), publicKey.N, privateKey.P, privateKey.Q)
	require.NoError(t, err)
	ok, verifyErr := proof.Verify(scenarioParams(), publicKey.N)
	assert.True(t, ok)
	assert.NoError(t, verifyErr)

	nPrime := new(big.Int).Add(publicKey.N, big.NewInt(2))
	ok, verifyErr = proof.Verify(scenarioParams(), nPrime)
	assert.False(t, ok)
	assert.Error(t, verifyErr)
}
