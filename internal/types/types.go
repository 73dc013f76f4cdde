// Package types implements the Vesper type lattice: primitives, class and
// generic instances, unions, hierarchies, and metaclasses, plus merge and
// subtype operations over them.
package types

import (
	"sort"
	"strings"
)

// Type is implemented by every member of the lattice.
type Type interface {
	String() string
	// Identical reports object/structural identity, not subtyping —
	// the same notion the dependency graph uses to decide whether a
	// cell's value actually changed.
	Identical(other Type) bool
}

// PrimitiveKind enumerates the built-in scalar kinds.
type PrimitiveKind string

const (
	KindNil    PrimitiveKind = "Nil"
	KindBool   PrimitiveKind = "Bool"
	KindChar   PrimitiveKind = "Char"
	KindInt8   PrimitiveKind = "Int8"
	KindInt16  PrimitiveKind = "Int16"
	KindInt32  PrimitiveKind = "Int32"
	KindInt64  PrimitiveKind = "Int64"
	KindFloat32 PrimitiveKind = "Float32"
	KindFloat64 PrimitiveKind = "Float64"
	KindString PrimitiveKind = "String"
	KindSymbol PrimitiveKind = "Symbol"
	KindVoid   PrimitiveKind = "Void"
)

// Primitive is an interned built-in scalar type.
type Primitive struct {
	Kind PrimitiveKind
}

func (p *Primitive) String() string { return string(p.Kind) }
func (p *Primitive) Identical(o Type) bool {
	op, ok := o.(*Primitive)
	return ok && op.Kind == p.Kind
}

// Interned primitive singletons — identity comparison works because
// there is exactly one *Primitive per kind (see Prim).
var primitives = map[PrimitiveKind]*Primitive{}

func init() {
	for _, k := range []PrimitiveKind{
		KindNil, KindBool, KindChar, KindInt8, KindInt16, KindInt32, KindInt64,
		KindFloat32, KindFloat64, KindString, KindSymbol, KindVoid,
	} {
		primitives[k] = &Primitive{Kind: k}
	}
}

// Prim returns the single interned Primitive for a kind.
func Prim(k PrimitiveKind) *Primitive { return primitives[k] }

// Class is the descriptor for a class or module (see Data Model §3).
// Two Class descriptors are identical by object identity — there is
// never more than one Class value per declared name in a Registry.
type Class struct {
	Name         string
	Super        *Class
	TypeParams   []string
	Methods      map[string][]*Method
	InstanceVars map[string]*InstanceVarCell
	Subclasses   []*Class
	Abstract     bool
	IsModule     bool
}

// InstanceVarCell is the inferred type slot for an instance variable,
// owned by whichever class in the hierarchy first assigns to it (see
// Data Model invariant 4, "instance-var hoisting").
type InstanceVarCell struct {
	Name string
	Typ  Type
}

// Method is one overload of a method definition. Body/params live in
// the ast package; Method only carries what the lattice needs to
// identify and cache instantiations.
type Method struct {
	Name   string
	Owner  *Class
	Arity  int
	Variadic bool
}

// ClassInstance is a concrete reference to a Class descriptor.
type ClassInstance struct {
	Class *Class
}

func (c *ClassInstance) String() string { return c.Class.Name }
func (c *ClassInstance) Identical(o Type) bool {
	oc, ok := o.(*ClassInstance)
	return ok && oc.Class == c.Class
}

// GenericInstance is a Class descriptor applied to concrete type
// arguments, e.g. Array(Int32).
type GenericInstance struct {
	Class     *Class
	TypeArgs  []Type
}

func (g *GenericInstance) String() string {
	parts := make([]string, len(g.TypeArgs))
	for i, t := range g.TypeArgs {
		parts[i] = t.String()
	}
	return g.Class.Name + "(" + strings.Join(parts, ", ") + ")"
}

func (g *GenericInstance) Identical(o Type) bool {
	og, ok := o.(*GenericInstance)
	if !ok || og.Class != g.Class || len(og.TypeArgs) != len(g.TypeArgs) {
		return false
	}
	for i := range g.TypeArgs {
		if !g.TypeArgs[i].Identical(og.TypeArgs[i]) {
			return false
		}
	}
	return true
}

// Union is a canonicalized, unordered set of two or more distinct types.
// A Union never holds a single member and never nests another Union —
// both are enforced by Merge, never by this type itself.
type Union struct {
	Members []Type
}

func (u *Union) String() string {
	parts := make([]string, len(u.Members))
	for i, m := range u.Members {
		parts[i] = m.String()
	}
	sort.Strings(parts)
	return "(" + strings.Join(parts, " | ") + ")"
}

func (u *Union) Identical(o Type) bool {
	ou, ok := o.(*Union)
	if !ok || len(ou.Members) != len(u.Members) {
		return false
	}
	for _, m := range u.Members {
		if !containsIdentical(ou.Members, m) {
			return false
		}
	}
	return true
}

func containsIdentical(set []Type, t Type) bool {
	for _, m := range set {
		if m.Identical(t) {
			return true
		}
	}
	return false
}

// Hierarchy stands for "Class or any transitive concrete subclass of
// it" — the normalized form a Union collapses to when every member
// shares a common open (subclassable) superclass (Data Model invariant 3).
type Hierarchy struct {
	Class *Class
}

func (h *Hierarchy) String() string { return h.Class.Name + "+" }
func (h *Hierarchy) Identical(o Type) bool {
	oh, ok := o.(*Hierarchy)
	return ok && oh.Class == h.Class
}

// Metaclass is the type of a class value itself (e.g. the type of the
// expression `Foo`, as opposed to `Foo.new`).
type Metaclass struct {
	Class *Class
}

func (m *Metaclass) String() string { return m.Class.Name + ".class" }
func (m *Metaclass) Identical(o Type) bool {
	om, ok := o.(*Metaclass)
	return ok && om.Class == m.Class
}
