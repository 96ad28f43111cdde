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
	logging "github.com/ipfs/go-log"
)

var log = logging.Logger("cggmp21-zkproofs")

// LogInvalidProof emits a single debug-level line naming which check
// failed verification. It never logs witness material, and is the only
// logging this otherwise-pure library performs: a failed proof is an
// expected outcome, not an operational error, so it is never logged
// above Debug.
func LogInvalidProof(protocol string, err *InvalidProofError) {
	log.Debugw("proof verification failed", "protocol", protocol, "check", err.Check, "range", err.Range)
}
