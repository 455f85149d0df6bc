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

// Package funcutil holds small generic collection helpers shared by the analysis packages and
// cmd/tacgo's report formatting.
package funcutil

import (
	"sort"

	"golang.org/x/exp/constraints"
)

// Map returns a new slice b such that for every i < len(a), b[i] = f(a[i]).
func Map[T any, S any](a []T, f func(T) S) []S {
	b := make([]S, 0, len(a))
	for _, x := range a {
		b = append(b, f(x))
	}
	return b
}

// Sorted returns a's elements in ascending order. The analyses report reachable methods, edges
// and variables in discovery order; callers that print a result sort it first with this so the
// output is ordered by name rather than by the order the solver happened to find things.
func Sorted[T constraints.Ordered](a []T) []T {
	s := make([]T, len(a))
	copy(s, a)
	sort.Slice(s, func(i, j int) bool { return s[i] < s[j] })
	return s
}
