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
	"fmt"

	"github.com/pkg/errors"
)

// ErrEncryptionFailed is returned when the external Paillier primitive
// rejects an encryption request (e.g. a plaintext out of [0, N)).
var ErrEncryptionFailed = errors.New("paillier encryption failed")

// ErrHashFailed is returned when a hash-to-scalar operation could not
// produce a usable challenge.
var ErrHashFailed = errors.New("hash-to-scalar failed")

// WrapEncryptionFailed attaches context to ErrEncryptionFailed without
// discarding the underlying cause.
func WrapEncryptionFailed(cause error) error {
	if cause == nil {
		return ErrEncryptionFailed
	}
	return errors.Wrap(cause, ErrEncryptionFailed.Error())
}

// InvalidProofError reports which verification check failed. Checks are
// numbered in the order they are described in the protocol's spec: the
// verifier always stops at the first violated one.
type InvalidProofError struct {
	// Check is the 1-based index of the failed check. The Verify methods
	// in zkproofs report Check 0 for a nil proof or one with unset fields.
	Check int
	// Range is true when the failed check is a bit-length bound rather
	// than an algebraic equality.
	Range bool
}

func (e *InvalidProofError) Error() string {
	if e.Range {
		return fmt.Sprintf("range check %d failed", e.Check)
	}
	return fmt.Sprintf("equality check %d failed", e.Check)
}

// EqualityCheckFailed builds an InvalidProofError for the i-th equality check.
func EqualityCheckFailed(i int) *InvalidProofError {
	return &InvalidProofError{Check: i}
}

// RangeCheckFailed builds an InvalidProofError for the i-th range check.
func RangeCheckFailed(i int) *InvalidProofError {
	return &InvalidProofError{Check: i, Range: true}
}
