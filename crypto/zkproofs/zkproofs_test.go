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
	"context"
	"crypto/elliptic"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/cggmp21/zkproofs/crypto"
	"github.com/cggmp21/zkproofs/crypto/paillier"
	"github.com/cggmp21/zkproofs/crypto/ringpedersen"
	"github.com/cggmp21/zkproofs/crypto/zkproofs"
)

const testPaillierKeyLength = 1024

var (
	ec           elliptic.Curve
	q            *big.Int
	ell          *big.Int
	privateKey   *paillier.PrivateKey
	publicKey    *paillier.PublicKey
	ringPedersen *zkproofs.RingPedersenParams
)

func setUp(t *testing.T) {
	if privateKey != nil && publicKey != nil {
		return
	}

	ec = crypto.Secp256k1()
	q = ec.Params().N
	ell = big.NewInt(int64(ec.Params().BitSize))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	var err error
	privateKey, publicKey, err = paillier.GenerateKeyPair(ctx, testPaillierKeyLength)
	assert.NoError(t, err)

	ringPedersen, _, err = ringpedersen.GenerateParams(ctx, testPaillierKeyLength)
	assert.NoError(t, err)
}
