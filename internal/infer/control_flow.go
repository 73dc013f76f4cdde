package infer

import (
	"github.com/vesperlang/vesper/internal/ast"
	"github.com/vesperlang/vesper/internal/graph"
	"github.com/vesperlang/vesper/internal/types"
)

// visitIf binds the expression's cell to both arms' last-value cells;
// a missing Else contributes Nil, since falling off the end of an if
// with no else yields nil the same as Ruby.
func (v *Visitor) visitIf(n *ast.If) {
	v.visitExpr(n.Cond)

	v.locals = newLocalScope(v.locals)
	v.visitStmts(n.Then)
	v.locals = v.locals.outer

	if then := v.lastExprCell(n.Then); then != nil {
		n.Cell().BindTo(then)
	} else {
		n.Cell().BindTo(nilCell())
	}

	if n.Else != nil {
		v.locals = newLocalScope(v.locals)
		v.visitStmts(n.Else)
		v.locals = v.locals.outer
		if els := v.lastExprCell(n.Else); els != nil {
			n.Cell().BindTo(els)
		}
	} else {
		n.Cell().BindTo(nilCell())
	}
}

// nilCell returns a fresh cell already typed Nil, suitable for BindTo so
// a missing branch's contribution merges with whatever other branches
// already bound instead of overwriting them (see visitIf, visitCase).
func nilCell() *graph.Cell {
	c := graph.NewCell()
	c.SetType(types.Prim(types.KindNil))
	return c
}

// visitCase binds to every `when` arm's last value plus the else arm,
// mirroring If's "missing branch contributes Nil" rule for a missing
// else.
func (v *Visitor) visitCase(n *ast.Case) {
	if n.Subject != nil {
		v.visitExpr(n.Subject)
	}

	for _, w := range n.Whens {
		for _, c := range w.Conditions {
			v.visitExpr(c)
		}
		v.locals = newLocalScope(v.locals)
		v.visitStmts(w.Body)
		v.locals = v.locals.outer
		if last := v.lastExprCell(w.Body); last != nil {
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
	} else {
		n.Cell().BindTo(nilCell())
	}
}

// visitWhile always types Nil: only its condition and body are visited
// for their own internal effects (and so `break value` inside the body
// can still be inferred, even though the loop's own value is Nil).
func (v *Visitor) visitWhile(n *ast.While) {
	v.visitExpr(n.Cond)
	v.locals = newLocalScope(v.locals)
	v.visitStmts(n.Body)
	v.locals = v.locals.outer
	n.Cell().SetType(types.Prim(types.KindNil))
}
