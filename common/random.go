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

package common

import (
	"crypto/rand"
	"math/big"
)

var one = big.NewInt(1)

// MustGetRandomInt returns a uniformly random non-negative integer with
// at most bitLen bits. Panics if the system RNG fails, matching the
// convention of the proof constructors which treat RNG failure as fatal
// rather than part of the protocol's error taxonomy.
func MustGetRandomInt(bitLen int) *big.Int {
	if bitLen <= 0 {
		return big.NewInt(0)
	}
	max := new(big.Int).Lsh(one, uint(bitLen))
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		panic(err)
	}
	return n
}

// GetRandomPositiveInt samples uniformly from [0, max).
func GetRandomPositiveInt(max *big.Int) *big.Int {
	if max == nil || max.Sign() <= 0 {
		return big.NewInt(0)
	}
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		panic(err)
	}
	return n
}

// GetRandomPositiveRelativelyPrimeInt samples a uniformly random element
// of (Z/nZ)*: the spec's gen_inversible. It draws from [0, n) and retries
// when gcd(., n) != 1.
func GetRandomPositiveRelativelyPrimeInt(n *big.Int) *big.Int {
	for {
		candidate := GetRandomPositiveInt(n)
		if candidate.Sign() == 0 {
			continue
		}
		if new(big.Int).GCD(nil, nil, candidate, n).Cmp(one) == 0 {
			return candidate
		}
	}
}

// GetRandomPrimeInt returns a random prime with exactly bitLen bits.
func GetRandomPrimeInt(bitLen int) *big.Int {
	p, err := rand.Prime(rand.Reader, bitLen)
	if err != nil {
		panic(err)
	}
	return p
}

// GetRandomSafePrimesConcurrent generates count safe primes (p such that
// (p-1)/2 is also prime) of the given bit length, searching in parallel.
// Used by Paillier and Ring-Pedersen key generation, neither of which is
// on the ZK core's soundness-critical path (spec.md Non-goals excludes
// key generation from scope; this remains test/example tooling).
func GetRandomSafePrimesConcurrent(bitLen, count int, workers int) []*big.Int {
	if workers <= 0 {
		workers = 1
	}
	results := make(chan *big.Int, count)
	done := make(chan struct{})
	defer close(done)

	for w := 0; w < workers; w++ {
		go func() {
			for {
				select {
				case <-done:
					return
				default:
				}
				p := GetRandomPrimeInt(bitLen)
				halfP := new(big.Int).Rsh(p, 1)
				if halfP.ProbablyPrime(20) {
					select {
					case results <- p:
					case <-done:
						return
					}
				}
			}
		}()
	}

	primes := make([]*big.Int, 0, count)
	for len(primes) < count {
		primes = append(primes, <-results)
	}
	return primes
}

// GetRandomQuadraticNonResidue samples w in (Z/NZ)* with Jacobi symbol -1,
// as required by Πmod's commitment step.
func GetRandomQuadraticNonResidue(n *big.Int) *big.Int {
	for {
		w := GetRandomPositiveInt(n)
		if w.Sign() == 0 {
			continue
		}
		if big.Jacobi(w, n) == -1 {
			return w
		}
	}
}

// IsNumberInMultiplicativeGroup reports whether x is a unit mod n, i.e.
// gcd(x, n) == 1 and 0 < x < n.
func IsNumberInMultiplicativeGroup(n, x *big.Int) bool {
	if x.Sign() <= 0 || x.Cmp(n) >= 0 {
		return false
	}
	return new(big.Int).GCD(nil, nil, x, n).Cmp(one) == 0
}
