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

package irbuilder

import "git.amazon.com/pkg/PTA-GoAnalyzer/classhierarchy"

// Program bundles a classhierarchy.World with the methods declared on it, the toy "whole
// program" fixture that CHA, pointer analysis, the ICFG builder and taint all need (a
// Hierarchy plus a Resolver, per spec 6's external collaborators).
type Program struct {
	World *classhierarchy.World
}

// NewProgram returns an empty Program.
func NewProgram() *Program { return &Program{World: classhierarchy.NewWorld()} }

// Class registers a new class (or interface) named name, with the given super (nil for none)
// and directly-implemented/extended interfaces, and returns it for Declare calls.
func (p *Program) Class(name string, isInterface bool, super *classhierarchy.Class, interfaces ...*classhierarchy.Class) *classhierarchy.Class {
	c := classhierarchy.NewClass(name, isInterface)
	c.Super = super
	c.Interfaces = interfaces
	p.World.AddClass(c)
	return c
}

// Declare registers m as directly declared on c under subsignature, so CHA/virtual dispatch
// can find it via classhierarchy.Dispatch.
func (p *Program) Declare(c *classhierarchy.Class, subsignature string, m *MethodBuilder) {
	c.Declare(subsignature, m.Method())
}

// Lookup satisfies cha.Resolver, so a Program can be passed directly to cha.Build/cha.Resolve.
func (p *Program) Lookup(typeName string) *classhierarchy.Class { return p.World.Lookup(typeName) }
