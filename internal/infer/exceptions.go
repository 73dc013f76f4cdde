package infer

import (
	"github.com/vesperlang/vesper/internal/ast"
	"github.com/vesperlang/vesper/internal/types"
)

// visitBegin binds to the body's last value and to each rescue
// clause's last value; Else contributes only when reached (no rescue
// fired), and Ensure never contributes a type since it runs either way
// and its value is discarded.
func (v *Visitor) visitBegin(n *ast.Begin) {
	v.locals = newLocalScope(v.locals)
	v.visitStmts(n.Body)
	v.locals = v.locals.outer
	if last := v.lastExprCell(n.Body); last != nil {
		n.Cell().BindTo(last)
	} else {
		n.Cell().SetType(types.Prim(types.KindNil))
	}

	for i := range n.Rescues {
		r := &n.Rescues[i]
		v.locals = newLocalScope(v.locals)
		if r.ExVar != "" {
			cell := v.locals.define(r.ExVar)
			cell.SetType(v.rescueBindingType(r))
		}
		v.visitStmts(r.Body)
		v.locals = v.locals.outer
		if last := v.lastExprCell(r.Body); last != nil {
			n.Cell().BindTo(last)
		}
	}

	if n.Else != nil {
		v.locals = newLocalScope(v.locals)
		v.visitStmts(n.Else)
		v.locals = v.locals.outer
		if last := v.lastExprCell(n.Else); last != nil {
			n.Cell().BindTo(last)
		}
	}

	if n.Ensure != nil {
		v.locals = newLocalScope(v.locals)
		v.visitStmts(n.Ensure)
		v.locals = v.locals.outer
	}
}

// rescueBindingType resolves a typed `rescue ex : Type1, Type2` binding
// to the union of the listed exception classes, or to the root
// Exception class when the clause lists no types.
func (v *Visitor) rescueBindingType(r *ast.RescueClause) types.Type {
	if len(r.Types) == 0 {
		return &types.ClassInstance{Class: v.Reg.Exception()}
	}
	members := make([]types.Type, 0, len(r.Types))
	for _, t := range r.Types {
		class, err := v.Reg.ResolveClass(v.Reg.Root(), t.Name)
		if err != nil {
			v.errorf("%s: %s", t.Pos(), err)
			continue
		}
		members = append(members, &types.ClassInstance{Class: class})
	}
	if len(members) == 0 {
		return &types.ClassInstance{Class: v.Reg.Exception()}
	}
	return types.Merge(members)
}

// visitRaise types as Nil (control never returns past a raise that
// actually fires, but inference still needs a concrete type for the
// node since it can appear in expression position, e.g. `x || raise "no x"`).
func (v *Visitor) visitRaise(n *ast.Raise) {
	if n.Value != nil {
		v.visitExpr(n.Value)
	}
	n.Cell().SetType(types.Prim(types.KindNil))
}
