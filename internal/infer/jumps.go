package infer

import (
	"github.com/vesperlang/vesper/internal/ast"
	"github.com/vesperlang/vesper/internal/types"
)

// visitReturn contributes its value (Nil for a bare `return`) to the
// enclosing Def's return channel; the Return node itself stays untyped,
// since control never continues past it within the same body.
func (v *Visitor) visitReturn(n *ast.Return) {
	if n.Value != nil {
		v.visitExpr(n.Value)
		if v.ret != nil {
			v.ret.cell.BindTo(n.Value.Cell())
		}
	} else if v.ret != nil {
		v.ret.cell.SetType(types.Prim(types.KindNil))
	}
}

// visitBreak visits its value and binds it to the returnChannel's
// breakCell when one is set. Nothing in this package sets breakCell,
// so a break value does not flow into any loop's or Def's type. The
// Break node itself stays untyped.
func (v *Visitor) visitBreak(n *ast.Break) {
	if n.Value != nil {
		v.visitExpr(n.Value)
		if v.ret != nil && v.ret.breakCell != nil {
			v.ret.breakCell.BindTo(n.Value.Cell())
		}
	}
}

// visitNext contributes its value to the enclosing Def's return channel
// (v.ret). Blocks open no channel of their own, so a `next` inside a
// block feeds the surrounding Def's return type, not the block's value.
// The Next node itself stays untyped.
func (v *Visitor) visitNext(n *ast.Next) {
	if n.Value != nil {
		v.visitExpr(n.Value)
		if v.ret != nil {
			v.ret.cell.BindTo(n.Value.Cell())
		}
	}
}

// visitYield wires each yielded argument (so it can flow into the
// block's Params cells once resolved against the call site's attached
// Block, see calls.go) and binds the yield expression's own cell to
// whatever the block returns.
func (v *Visitor) visitYield(n *ast.Yield) {
	for _, a := range n.Args {
		v.visitExpr(a)
	}
	if v.yieldReturn != nil {
		n.Cell().BindTo(v.yieldReturn)
	} else {
		n.Cell().SetType(types.Prim(types.KindNil))
	}
}
