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

package crypto

import (
	"crypto/elliptic"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// P256 is the curve used in the spec's worked Πlog* scenario (§8).
func P256() elliptic.Curve {
	return elliptic.P256()
}

// Secp256k1 is the threshold-ECDSA curve the teacher's wider module
// signs over; Πlog* is exercised over it to demonstrate the proof's
// curve-polymorphism (spec.md §9 "Polymorphism over the curve").
func Secp256k1() elliptic.Curve {
	return secp256k1.S256()
}
