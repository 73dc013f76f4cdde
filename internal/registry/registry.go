// Package registry implements the Type Registry: nested class/module
// scopes, ::-qualified name resolution, subclass-list maintenance for
// Hierarchy closures, and the separate `lib` foreign-declaration scope
// that never participates in method inference.
package registry

import (
	"fmt"
	"strings"

	"github.com/vesperlang/vesper/internal/ast"
	"github.com/vesperlang/vesper/internal/types"
)

// Scope is one class or module's namespace: its own declarations plus
// a link to the enclosing scope for nested `::`-qualified lookup
// (e.g. `Foo::Bar` resolves Bar inside Foo's scope, falling back to the
// root when Foo itself is the root).
type Scope struct {
	Name     string
	Class    *types.Class // nil for the anonymous root scope
	Outer    *Scope
	Children map[string]*Scope
}

func newScope(name string, class *types.Class, outer *Scope) *Scope {
	return &Scope{Name: name, Class: class, Outer: outer, Children: make(map[string]*Scope)}
}

// Registry is the compilation-wide symbol table: the root scope tree,
// a flat name index for fast top-level lookup, and the separate lib
// scope holding foreign fun/struct/union/enum declarations.
type Registry struct {
	root *Scope

	// classes indexes every declared class/module by its fully
	// qualified name ("Foo::Bar") for direct lookup without walking
	// the scope tree.
	classes map[string]*types.Class

	lib *LibScope

	defs map[*types.Method]*ast.Def
}

// LibScope holds `lib` block declarations. These never enter the
// class/module tree and are never visited by the inference visitor's
// call-resolution rules — they describe an external ABI surface only.
type LibScope struct {
	Funs    map[string]*ast.FunDecl
	Structs map[string]*ast.StructDecl
	Unions  map[string]*ast.UnionDecl
	Enums   map[string]*ast.EnumDecl
}

func newLibScope() *LibScope {
	return &LibScope{
		Funs:    make(map[string]*ast.FunDecl),
		Structs: make(map[string]*ast.StructDecl),
		Unions:  make(map[string]*ast.UnionDecl),
		Enums:   make(map[string]*ast.EnumDecl),
	}
}

// New builds an empty Registry seeded with the built-in root classes
// (Object, Exception) that every user class implicitly descends from
// or can rescue without an explicit declaration.
func New() *Registry {
	r := &Registry{
		root:    newScope("", nil, nil),
		classes: make(map[string]*types.Class),
		lib:     newLibScope(),
	}
	r.seedBuiltins()
	return r
}

func (r *Registry) seedBuiltins() {
	object := &types.Class{Name: "Object", Methods: map[string][]*types.Method{}, InstanceVars: map[string]*types.InstanceVarCell{}}
	exception := &types.Class{Name: "Exception", Super: object, Methods: map[string][]*types.Method{}, InstanceVars: map[string]*types.InstanceVarCell{}}
	object.Subclasses = append(object.Subclasses, exception)
	r.classes["Object"] = object
	r.classes["Exception"] = exception
	r.root.Children["Object"] = newScope("Object", object, r.root)
	r.root.Children["Exception"] = newScope("Exception", exception, r.root)
}

// Object returns the root built-in class every class implicitly
// descends from when it declares no explicit superclass.
func (r *Registry) Object() *types.Class { return r.classes["Object"] }

// Exception returns the root built-in exception class.
func (r *Registry) Exception() *types.Class { return r.classes["Exception"] }

// Declare registers a class or module under the given enclosing scope
// (nil for the root). It links Super's Subclasses list so Hierarchy
// closures (types.Merge, Subtype) stay accurate as classes are
// declared, and defaults an unspecified Super to Object for a
// non-module class.
func (r *Registry) Declare(outer *Scope, def *ast.ClassDef) (*Scope, *types.Class, error) {
	if outer == nil {
		outer = r.root
	}
	qualified := qualifiedName(outer, def.Name)
	if _, exists := r.classes[qualified]; exists {
		return nil, nil, fmt.Errorf("%s: class %q already declared", def.Pos(), qualified)
	}

	var super *types.Class
	if def.Super != nil {
		var err error
		super, err = r.ResolveClass(outer, def.Super.Name)
		if err != nil {
			return nil, nil, err
		}
	} else if !def.Module {
		super = r.Object()
	}

	class := &types.Class{
		Name:         qualified,
		Super:        super,
		TypeParams:   append([]string(nil), def.GenericParams...),
		Methods:      make(map[string][]*types.Method),
		InstanceVars: make(map[string]*types.InstanceVarCell),
		Abstract:     def.Abstract,
		IsModule:     def.Module,
	}
	if super != nil {
		super.Subclasses = append(super.Subclasses, class)
	}

	r.classes[qualified] = class
	scope := newScope(def.Name, class, outer)
	outer.Children[def.Name] = scope
	return scope, class, nil
}

// ResolveClass resolves a possibly `::`-qualified type name starting
// the search at scope, falling back outward through enclosing scopes
// to the root, the way an unqualified constant reference in Ruby
// resolves through its lexical nesting before failing. A leading `::`
// anchors the search at the root scope.
func (r *Registry) ResolveClass(scope *Scope, name string) (*types.Class, error) {
	if strings.HasPrefix(name, "::") {
		name = strings.TrimPrefix(name, "::")
		scope = r.root
	}
	parts := strings.Split(name, "::")

	for s := scope; s != nil; s = s.Outer {
		if class, ok := r.resolveFrom(s, parts); ok {
			return class, nil
		}
	}
	if class, ok := r.classes[name]; ok {
		return class, nil
	}
	return nil, fmt.Errorf("undeclared type %q", name)
}

func (r *Registry) resolveFrom(s *Scope, parts []string) (*types.Class, bool) {
	cur := s
	for i, part := range parts {
		child, ok := cur.Children[part]
		if !ok {
			return nil, false
		}
		cur = child
		if i == len(parts)-1 {
			return cur.Class, cur.Class != nil
		}
	}
	return nil, false
}

func qualifiedName(scope *Scope, name string) string {
	if scope == nil || scope.Name == "" {
		return name
	}
	return qualifiedName(scope.Outer, scope.Name) + "::" + name
}

// Root returns the anonymous top-level scope.
func (r *Registry) Root() *Scope { return r.root }

// Lib returns the registry's foreign-declaration scope.
func (r *Registry) Lib() *LibScope { return r.lib }

// DeclareFun registers a `fun` declaration in the lib scope.
func (r *Registry) DeclareFun(d *ast.FunDecl) { r.lib.Funs[d.Name] = d }

// DeclareStruct registers a `struct` declaration in the lib scope.
func (r *Registry) DeclareStruct(d *ast.StructDecl) { r.lib.Structs[d.Name] = d }

// DeclareUnion registers a `union` declaration in the lib scope.
func (r *Registry) DeclareUnion(d *ast.UnionDecl) { r.lib.Unions[d.Name] = d }

// DeclareEnum registers an `enum` declaration in the lib scope.
func (r *Registry) DeclareEnum(d *ast.EnumDecl) { r.lib.Enums[d.Name] = d }

// AllClasses returns every declared class keyed by fully qualified
// name, used by the `infer` CLI command's report to enumerate the
// whole program's class set.
func (r *Registry) AllClasses() map[string]*types.Class { return r.classes }
