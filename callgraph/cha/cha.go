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

// Package cha builds a whole-program call graph via Class Hierarchy Analysis (spec 4.4).
package cha

import (
	"git.amazon.com/pkg/PTA-GoAnalyzer/callgraph"
	"git.amazon.com/pkg/PTA-GoAnalyzer/classhierarchy"
	"git.amazon.com/pkg/PTA-GoAnalyzer/ir"
)

// Resolver resolves a CallSite's declaring type to a *classhierarchy.Class, needed because
// CallSite.Method only names a type by string (spec 6's MethodRef is IR-level, not
// hierarchy-level). A typical Resolver is World.Lookup.
type Resolver interface {
	Lookup(typeName string) *classhierarchy.Class
}

// Build runs the CHA worklist of spec 4.4 starting at entry, and returns the resulting call
// graph. hierarchy and resolver are external collaborators (spec 1/6); Build never inspects
// points-to information.
func Build(entry *ir.Method, hierarchy classhierarchy.Hierarchy, resolver Resolver) *callgraph.Graph {
	g := callgraph.New()
	g.AddEntryMethod(entry)

	queue := []*ir.Method{entry}
	for len(queue) > 0 {
		m := queue[0]
		queue = queue[1:]

		for _, stmt := range m.GetStmts() {
			invoke, ok := stmt.(*ir.Invoke)
			if !ok {
				continue
			}
			for _, callee := range Resolve(invoke.Call, hierarchy, resolver) {
				e := callgraph.Edge{Kind: invoke.Call.Kind, Site: invoke, Caller: m, Callee: callee}
				g.AddEdge(e)
				if g.AddReachableMethod(callee) {
					queue = append(queue, callee)
				}
			}
		}
	}
	return g
}

// Resolve computes the CHA target set of a call site (spec 4.4): STATIC resolves to the
// statically declared method; SPECIAL dispatches up the superclass chain from the declaring
// class; VIRTUAL/INTERFACE dispatch every type in the declaring type's subtype closure.
func Resolve(site *ir.CallSite, hierarchy classhierarchy.Hierarchy, resolver Resolver) []*ir.Method {
	declaring := resolver.Lookup(site.Method.DeclaringType)
	if declaring == nil {
		return nil
	}
	subsig := site.Method.Subsignature

	switch site.Kind {
	case ir.StaticCall:
		if m := hierarchy.DeclaredMethod(declaring, subsig); m != nil {
			return []*ir.Method{m}
		}
		return nil
	case ir.SpecialCall:
		if m := classhierarchy.Dispatch(hierarchy, declaring, subsig); m != nil {
			return []*ir.Method{m}
		}
		return nil
	case ir.VirtualCall, ir.InterfaceCall:
		var out []*ir.Method
		seen := map[*ir.Method]bool{}
		for _, t := range SubtypeClosure(declaring, hierarchy) {
			if m := classhierarchy.Dispatch(hierarchy, t, subsig); m != nil && !seen[m] {
				seen[m] = true
				out = append(out, m)
			}
		}
		return out
	default:
		return nil
	}
}

// SubtypeClosure computes the smallest set containing c and closed under direct
// subinterfaces, direct implementors, and direct subclasses (spec 4.4).
func SubtypeClosure(c *classhierarchy.Class, hierarchy classhierarchy.Hierarchy) []*classhierarchy.Class {
	seen := map[*classhierarchy.Class]bool{c: true}
	stack := []*classhierarchy.Class{c}
	closure := []*classhierarchy.Class{c}

	expand := func(next func(*classhierarchy.Class) []*classhierarchy.Class) {
		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for _, n := range next(cur) {
				if !seen[n] {
					seen[n] = true
					closure = append(closure, n)
					stack = append(stack, n)
				}
			}
		}
	}

	stack = []*classhierarchy.Class{c}
	expand(hierarchy.DirectSubinterfacesOf)
	stack = append([]*classhierarchy.Class{}, closure...)
	expand(hierarchy.DirectImplementorsOf)
	stack = append([]*classhierarchy.Class{}, closure...)
	expand(hierarchy.DirectSubclassesOf)

	return closure
}
