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
	"fmt"
	"math/big"
)

// ECPoint is a point on a prime-order curve, the spec's "curve C". It is
// curve-agnostic: Πlog* is parameterized over any elliptic.Curve
// implementation, giving the "polymorphism over the curve" the spec's
// design notes ask for (expressed as a value, in the teacher's idiom,
// rather than a Go generic type parameter).
type ECPoint struct {
	curve elliptic.Curve
	x, y  *big.Int
}

// NewECPoint validates that (x, y) lies on the curve before returning a point.
func NewECPoint(curve elliptic.Curve, x, y *big.Int) (*ECPoint, error) {
	if x == nil || y == nil {
		return nil, fmt.Errorf("crypto: nil coordinate")
	}
	if x.Sign() == 0 && y.Sign() == 0 {
		return &ECPoint{curve: curve, x: x, y: y}, nil
	}
	if !curve.IsOnCurve(x, y) {
		return nil, fmt.Errorf("crypto: point (%s, %s) is not on curve", x, y)
	}
	return &ECPoint{curve: curve, x: x, y: y}, nil
}

// NewECPointNoCurveCheck skips the on-curve check, for deserialization
// paths where the curve membership is re-validated elsewhere (or, as in
// the teacher's usage, trusted because it was just computed locally).
func NewECPointNoCurveCheck(curve elliptic.Curve, x, y *big.Int) *ECPoint {
	return &ECPoint{curve: curve, x: x, y: y}
}

// ScalarBaseMult returns k * G for the curve's base point.
func ScalarBaseMult(curve elliptic.Curve, k *big.Int) *ECPoint {
	x, y := curve.ScalarBaseMult(new(big.Int).Mod(k, curve.Params().N).Bytes())
	return &ECPoint{curve: curve, x: x, y: y}
}

// ScalarMult returns k * p.
func (p *ECPoint) ScalarMult(k *big.Int) *ECPoint {
	x, y := p.curve.ScalarMult(p.x, p.y, new(big.Int).Mod(k, p.curve.Params().N).Bytes())
	return &ECPoint{curve: p.curve, x: x, y: y}
}

// Add returns p + q.
func (p *ECPoint) Add(q *ECPoint) *ECPoint {
	x, y := p.curve.Add(p.x, p.y, q.x, q.y)
	return &ECPoint{curve: p.curve, x: x, y: y}
}

func (p *ECPoint) X() *big.Int { return p.x }
func (p *ECPoint) Y() *big.Int { return p.y }
func (p *ECPoint) Curve() elliptic.Curve { return p.curve }

// Equals compares two points by coordinate, ignoring curve identity
// (callers are expected to only ever compare points on the same curve).
func (p *ECPoint) Equals(q *ECPoint) bool {
	if p == nil || q == nil {
		return p == q
	}
	return p.x.Cmp(q.x) == 0 && p.y.Cmp(q.y) == 0
}

// Bytes returns the compressed SEC1 encoding of the point, the spec's
// canonical point encoding for transcript hashing.
func (p *ECPoint) Bytes() []byte {
	return elliptic.MarshalCompressed(p.curve, p.x, p.y)
}

// ECPointFromBytes decodes a compressed SEC1 point on the given curve.
func ECPointFromBytes(curve elliptic.Curve, data []byte) (*ECPoint, error) {
	x, y := elliptic.UnmarshalCompressed(curve, data)
	if x == nil {
		return nil, fmt.Errorf("crypto: invalid compressed point encoding")
	}
	return &ECPoint{curve: curve, x: x, y: y}, nil
}
