// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package pta

import (
	"fmt"

	"git.amazon.com/pkg/PTA-GoAnalyzer/ir"
)

// unresolvedCallError records a call site the solver could not resolve to any method: an
// unregistered declaring type, or no matching subsignature anywhere in the receiver's class
// chain. Collected rather than fatal (spec 7), so one bad call site never aborts the run.
type unresolvedCallError struct {
	site *ir.Invoke
}

func (e unresolvedCallError) Error() string {
	return fmt.Sprintf("pta: unresolved call to %s", e.site.Call.Method.String())
}
