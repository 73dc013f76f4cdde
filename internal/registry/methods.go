package registry

import (
	"github.com/vesperlang/vesper/internal/ast"
	"github.com/vesperlang/vesper/internal/types"
)

// RegisterMethod adds one Def as an overload of class.Methods[def.Name],
// wiring def.Owner back to the declaring ClassDef so later passes (the
// call resolver, diagnostics) can walk from a resolved Method back to
// its source body without a second lookup table. types.Method itself
// stays free of any ast import (to avoid a package cycle, since ast
// already imports types), so the Method -> Def link lives here instead.
func (r *Registry) RegisterMethod(class *types.Class, owner *ast.ClassDef, def *ast.Def) *types.Method {
	def.Owner = owner
	m := &types.Method{
		Name:     def.Name,
		Owner:    class,
		Arity:    requiredArity(def.Params),
		Variadic: false,
	}
	class.Methods[def.Name] = append(class.Methods[def.Name], m)
	if r.defs == nil {
		r.defs = make(map[*types.Method]*ast.Def)
	}
	r.defs[m] = def
	return m
}

// DefFor returns the Def backing a resolved Method.
func (r *Registry) DefFor(m *types.Method) *ast.Def { return r.defs[m] }

func requiredArity(params []*ast.Param) int {
	n := 0
	for _, p := range params {
		if p.Default == nil {
			n++
		}
	}
	return n
}

// LookupMethod walks class's Super chain looking for the nearest
// declaration of name, the same override-resolution order a Ruby-style
// single-inheritance method lookup uses.
func (r *Registry) LookupMethod(class *types.Class, name string) ([]*types.Method, *types.Class) {
	for c := class; c != nil; c = c.Super {
		if ms, ok := c.Methods[name]; ok {
			return ms, c
		}
	}
	return nil, nil
}

// HoistInstanceVar resolves which class in owner's ancestor chain owns
// the cell for @name, per the stricter hoisting rule: the cell belongs
// to the nearest *strict* ancestor that also writes to @name somewhere
// in its own method bodies, not merely reads it; owner itself owns the
// cell only when no ancestor writes it too, even if owner is itself a
// writer. writers maps a class to the set of ivar names it assigns to
// anywhere in its body, computed by the inference visitor's first pass
// over each class's method bodies before cell-binding begins.
func HoistInstanceVar(owner *types.Class, name string, writers map[*types.Class]map[string]bool) *types.Class {
	for c := owner.Super; c != nil; c = c.Super {
		if w, ok := writers[c]; ok && w[name] {
			if _, declared := c.InstanceVars[name]; !declared {
				c.InstanceVars[name] = &types.InstanceVarCell{Name: name}
			}
			return c
		}
	}
	if _, declared := owner.InstanceVars[name]; !declared {
		owner.InstanceVars[name] = &types.InstanceVarCell{Name: name}
	}
	return owner
}

// HasWritingDescendant reports whether any strict descendant of class
// writes @name, per writers. Paired with a check that class itself does
// not write @name, this detects the divergent case the stricter hoisting
// rule can't resolve on its own: an ancestor that only *reads* @name
// while a subclass independently writes it ends up with two separate
// cells (the reader's own, and wherever the writer's hoist walk lands),
// since HoistInstanceVar never looks downward from a read site.
func HasWritingDescendant(class *types.Class, name string, writers map[*types.Class]map[string]bool) bool {
	for _, sub := range class.Subclasses {
		if w, ok := writers[sub]; ok && w[name] {
			return true
		}
		if HasWritingDescendant(sub, name, writers) {
			return true
		}
	}
	return false
}
