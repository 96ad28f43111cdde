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

import "math/big"

// Int is a modulus-scoped big.Int arithmetic helper. All results are
// normalized into [0, modulus).
type Int struct {
	modulus *big.Int
}

// ModInt binds arithmetic to the given modulus.
func ModInt(modulus *big.Int) *Int {
	return &Int{modulus: modulus}
}

func (mi *Int) normalize(x *big.Int) *big.Int {
	return new(big.Int).Mod(x, mi.modulus)
}

func (mi *Int) Add(x, y *big.Int) *big.Int {
	return mi.normalize(new(big.Int).Add(x, y))
}

func (mi *Int) Sub(x, y *big.Int) *big.Int {
	return mi.normalize(new(big.Int).Sub(x, y))
}

func (mi *Int) Mul(x, y *big.Int) *big.Int {
	return mi.normalize(new(big.Int).Mul(x, y))
}

func (mi *Int) Exp(x, y *big.Int) *big.Int {
	return new(big.Int).Exp(x, y, mi.modulus)
}

func (mi *Int) ModInverse(x *big.Int) *big.Int {
	return new(big.Int).ModInverse(x, mi.modulus)
}

// IsCongruent reports whether x ≡ y (mod modulus).
func (mi *Int) IsCongruent(x, y *big.Int) bool {
	return mi.normalize(x).Cmp(mi.normalize(y)) == 0
}

// IsAdditiveInverse reports whether x + y ≡ 0 (mod modulus).
func (mi *Int) IsAdditiveInverse(x, y *big.Int) bool {
	return mi.IsCongruent(new(big.Int).Add(x, y), big.NewInt(0))
}

// Combine computes a^x * b^y mod m — the spec's `combine` primitive.
// Exponents may exceed m in magnitude; only the final product is reduced.
func Combine(a, x, b, y, m *big.Int) *big.Int {
	modM := ModInt(m)
	ax := modM.Exp(a, x)
	by := modM.Exp(b, y)
	return modM.Mul(ax, by)
}

// APlusBC returns a + b*c, unreduced (used for Fiat-Shamir responses that
// must not be taken modulo a proof-specific modulus).
func APlusBC(a, b, c *big.Int) *big.Int {
	bc := new(big.Int).Mul(b, c)
	return new(big.Int).Add(a, bc)
}

// ATimesBToTheCModN returns a * (b^c) mod n.
func ATimesBToTheCModN(a, b, c, n *big.Int) *big.Int {
	modN := ModInt(n)
	bc := modN.Exp(b, c)
	return modN.Mul(a, bc)
}
