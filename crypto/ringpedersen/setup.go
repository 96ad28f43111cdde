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
// Package ringpedersen generates the auxiliary commitment key every
// proof in zkproofs verifies against: N̂ = p̂q̂ for safe primes p̂, q̂, a
// quadratic residue t modulo N̂, a secret exponent λ, and s = t^λ mod N̂.
// Knowledge of λ lets the key's owner open Commit(x, r) for any x it
// likes, which is why the key is generated once by the verifier and
// never by the prover.
package ringpedersen

import (
	"context"
	"math/big"

	"github.com/cggmp21/zkproofs/common"
	"github.com/cggmp21/zkproofs/crypto/zkproofs"
)

// SecretParams is the trapdoor behind a RingPedersenParams: the prime
// factorization of N̂ and the discrete log λ of s base t. It must never
// leave the party that generated the public parameters.
type SecretParams struct {
	Phi    *big.Int // (p̂-1)(q̂-1)
	Lambda *big.Int // s = t^Lambda mod N̂
}

// GenerateParams samples a fresh (N̂, s, t) Ring-Pedersen key of the
// given bit length for N̂, returning both the public parameters and the
// trapdoor that generated them.
func GenerateParams(ctx context.Context, bitLen int) (*zkproofs.RingPedersenParams, *SecretParams, error) {
	safePrimeBits := bitLen / 2
	primes := common.GetRandomSafePrimesConcurrent(safePrimeBits, 2, 4)

	select {
	case <-ctx.Done():
		return nil, nil, ctx.Err()
	default:
	}

	pHat, qHat := primes[0], primes[1]
	nHat := new(big.Int).Mul(pHat, qHat)

	one := big.NewInt(1)
	phi := new(big.Int).Mul(new(big.Int).Sub(pHat, one), new(big.Int).Sub(qHat, one))

	lambda := common.GetRandomPositiveInt(phi)
	t := common.GetRandomQuadraticNonResidue(nHat)
	// square t so it becomes a quadratic residue: t itself must be a QR
	// for discrete logs base t to cover the whole cyclic subgroup s lives in.
	t = common.ModInt(nHat).Exp(t, big.NewInt(2))
	s := common.ModInt(nHat).Exp(t, lambda)

	pub := &zkproofs.RingPedersenParams{N: nHat, S: s, T: t}
	secret := &SecretParams{Phi: phi, Lambda: lambda}
	return pub, secret, nil
}
