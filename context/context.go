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

// Package context declares the Context/ContextSelector contracts of spec 4.6/6, plus three
// concrete selector policies (empty, k-CFA, object-sensitive) that the context-sensitive
// pointer solver (pta/cs) is parameterized over.
package context

import (
	"fmt"
	"strings"

	"git.amazon.com/pkg/PTA-GoAnalyzer/heap"
	"git.amazon.com/pkg/PTA-GoAnalyzer/ir"
)

// Context is an opaque, hashable, equatable token (spec 3). The core only ever compares
// Contexts for equality; this implementation interns a descriptive key so that Context values
// remain valid map keys (Go maps require comparable types) without the core needing to know
// anything about what a selector packs into one.
type Context struct{ key string }

// Empty returns the distinguished empty context under which entry methods run (spec 4.6).
func Empty() Context { return Context{} }

func (c Context) String() string {
	if c.key == "" {
		return "[]"
	}
	return "[" + c.key + "]"
}

// extend appends an element to a context's key, used by selector implementations to build
// new Contexts from an existing one plus one new piece of calling-context information.
func (c Context) extend(elem string, limit int) Context {
	if limit <= 0 {
		return Empty()
	}
	parts := splitNonEmpty(c.key)
	parts = append(parts, elem)
	if len(parts) > limit {
		parts = parts[len(parts)-limit:]
	}
	return Context{key: strings.Join(parts, "|")}
}

func splitNonEmpty(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "|")
}

// CSCallSite pairs a call site with the context it executes under.
type CSCallSite struct {
	Context Context
	Call    *ir.Invoke
}

// CSMethod pairs a method with the context one of its invocations executes under.
type CSMethod struct {
	Context Context
	Method  *ir.Method
}

// Selector is the ContextSelector contract of spec 6: emptyContext, selectContext (two
// overloads distinguished here by method name since Go has no overloading), and
// selectHeapContext.
type Selector interface {
	Empty() Context
	// SelectContext computes the callee's context for a STATIC/SPECIAL call site.
	SelectContext(site CSCallSite, callee *ir.Method) Context
	// SelectContextForInstance computes the callee's context for a VIRTUAL/INTERFACE call
	// site, given the resolved receiver object.
	SelectContextForInstance(site CSCallSite, recv *heap.Obj, callee *ir.Method) Context
	// SelectHeapContext computes the context an allocation site's Obj is distinguished by.
	SelectHeapContext(method CSMethod, obj *heap.Obj) Context
}

// EmptySelector is context-insensitivity realized as a Selector: every method runs under the
// single Empty context. Wiring the context-sensitive solver (pta/cs) with EmptySelector makes
// it behave identically to the context-insensitive solver (pta), which is a useful property
// test (spec 8, "order independence"/"soundness" should hold regardless of selector).
type EmptySelector struct{}

func (EmptySelector) Empty() Context { return Empty() }
func (EmptySelector) SelectContext(CSCallSite, *ir.Method) Context { return Empty() }
func (EmptySelector) SelectContextForInstance(CSCallSite, *heap.Obj, *ir.Method) Context {
	return Empty()
}
func (EmptySelector) SelectHeapContext(CSMethod, *heap.Obj) Context { return Empty() }

// KCFASelector implements call-site-sensitivity: a callee's context is the caller's context
// extended with the call site's identity, truncated to the last K elements.
type KCFASelector struct{ K int }

func (s KCFASelector) Empty() Context { return Empty() }

func (s KCFASelector) SelectContext(site CSCallSite, _ *ir.Method) Context {
	return site.Context.extend(callSiteKey(site.Call), s.K)
}

func (s KCFASelector) SelectContextForInstance(site CSCallSite, _ *heap.Obj, _ *ir.Method) Context {
	return site.Context.extend(callSiteKey(site.Call), s.K)
}

func (s KCFASelector) SelectHeapContext(method CSMethod, _ *heap.Obj) Context {
	return method.Context
}

func callSiteKey(call *ir.Invoke) string { return fmt.Sprintf("cs%d", call.Idx()) }

// ObjectSensitiveSelector implements object-sensitivity: a virtual callee's context is the
// receiver object alone (the empty context when H <= 0). The receiver's own allocation context
// is not included, so a context holds at most one element whatever H is. Static/special calls
// inherit the caller's context unchanged, and
// allocation sites are distinguished by the context of the method performing the allocation.
type ObjectSensitiveSelector struct{ H int }

func (s ObjectSensitiveSelector) Empty() Context { return Empty() }

func (s ObjectSensitiveSelector) SelectContext(site CSCallSite, _ *ir.Method) Context {
	return site.Context
}

func (s ObjectSensitiveSelector) SelectContextForInstance(_ CSCallSite, recv *heap.Obj, _ *ir.Method) Context {
	return Empty().extend(objKey(recv), s.H)
}

func (s ObjectSensitiveSelector) SelectHeapContext(method CSMethod, _ *heap.Obj) Context {
	return method.Context
}

func objKey(o *heap.Obj) string { return fmt.Sprintf("obj%d", o.ID()) }
