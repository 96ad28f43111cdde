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

package zkproofs

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/cggmp21/zkproofs/common"
)

// VerifyFunc is a single named verification step, deferred so callers
// can batch heterogeneous proof types (Πenc, Πlog*, Πaff-g, Πmod, ...)
// behind one call. Verify returns the within-proof *common.InvalidProofError
// its protocol reported, if any.
type VerifyFunc struct {
	Name   string
	Verify func() (bool, error)
}

// VerifyAll runs every check and collects every failure rather than
// stopping at the first one, so a caller auditing a full signing round
// finds out about every bad proof in a single pass instead of one at a
// time across repeated calls. Each failure's error wraps the Verify
// call's own *common.InvalidProofError (the within-proof check index),
// not just this batch's position i.
func VerifyAll(checks ...VerifyFunc) error {
	var result *multierror.Error
	for i, c := range checks {
		ok, err := c.Verify()
		if ok {
			continue
		}
		if err == nil {
			err = &common.InvalidProofError{Check: i}
		}
		var invalid *common.InvalidProofError
		if errors.As(err, &invalid) {
			common.LogInvalidProof(c.Name, invalid)
		}
		result = multierror.Append(result, fmt.Errorf("%s: %w", c.Name, err))
	}
	return result.ErrorOrNil()
}
