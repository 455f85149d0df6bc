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

// Package classhierarchy declares the ClassHierarchy contract CHA and virtual dispatch
// consume (spec 6), plus a small in-memory implementation used by the IR builder and tests.
// Building the hierarchy from real source/bytecode is out of scope (spec 1).
package classhierarchy

import "git.amazon.com/pkg/PTA-GoAnalyzer/ir"

// Class is a minimal class/interface node: a name, whether it's an interface, its direct
// superclass (nil for interfaces and for Object), the interfaces it directly implements or
// extends, and the methods it directly declares (by subsignature).
type Class struct {
	Name        string
	IsInterface bool
	Super       *Class
	Interfaces  []*Class
	declared    map[string]*ir.Method
}

// NewClass allocates an empty Class.
func NewClass(name string, isInterface bool) *Class {
	return &Class{Name: name, IsInterface: isInterface, declared: map[string]*ir.Method{}}
}

// Declare registers a method as directly declared on c.
func (c *Class) Declare(subsig string, m *ir.Method) { c.declared[subsig] = m }

func (c *Class) String() string { return c.Name }

// Hierarchy is the ClassHierarchy contract of spec 6.
type Hierarchy interface {
	DirectSubclassesOf(c *Class) []*Class
	DirectSubinterfacesOf(c *Class) []*Class
	DirectImplementorsOf(c *Class) []*Class
	// DeclaredMethod returns the method c itself declares with this subsignature, or nil.
	DeclaredMethod(c *Class, subsignature string) *ir.Method
	SuperClass(c *Class) *Class
}

// World is a simple in-memory Hierarchy: every edge is recorded explicitly when a Class is
// added, rather than being derived from parsed source (spec 1 keeps IR/hierarchy construction
// external; World is the toy stand-in used to exercise the core against built-in scenarios).
type World struct {
	classes        map[string]*Class
	subclasses     map[*Class][]*Class
	subinterfaces  map[*Class][]*Class
	implementors   map[*Class][]*Class
}

// NewWorld returns an empty World.
func NewWorld() *World {
	return &World{
		classes:       map[string]*Class{},
		subclasses:    map[*Class][]*Class{},
		subinterfaces: map[*Class][]*Class{},
		implementors:  map[*Class][]*Class{},
	}
}

// AddClass registers c and wires it into its declared relationships (Super / Interfaces),
// maintaining the direct-subclass/subinterface/implementor indexes used by CHA.
func (w *World) AddClass(c *Class) {
	w.classes[c.Name] = c
	if c.Super != nil {
		w.subclasses[c.Super] = append(w.subclasses[c.Super], c)
	}
	for _, iface := range c.Interfaces {
		if c.IsInterface {
			w.subinterfaces[iface] = append(w.subinterfaces[iface], c)
		} else {
			w.implementors[iface] = append(w.implementors[iface], c)
		}
	}
}

// Lookup returns the class registered under name, or nil.
func (w *World) Lookup(name string) *Class { return w.classes[name] }

func (w *World) DirectSubclassesOf(c *Class) []*Class    { return w.subclasses[c] }
func (w *World) DirectSubinterfacesOf(c *Class) []*Class  { return w.subinterfaces[c] }
func (w *World) DirectImplementorsOf(c *Class) []*Class   { return w.implementors[c] }
func (w *World) SuperClass(c *Class) *Class               { return c.Super }

func (w *World) DeclaredMethod(c *Class, subsignature string) *ir.Method {
	if c == nil {
		return nil
	}
	return c.declared[subsignature]
}

// Dispatch walks up the superclass chain from c looking for the first concrete declaration of
// subsignature (spec 4.4's SPECIAL/virtual dispatch primitive).
func Dispatch(h Hierarchy, c *Class, subsignature string) *ir.Method {
	for cur := c; cur != nil; cur = h.SuperClass(cur) {
		if m := h.DeclaredMethod(cur, subsignature); m != nil {
			return m
		}
	}
	return nil
}
