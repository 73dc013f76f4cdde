package infer

import (
	"github.com/vesperlang/vesper/internal/ast"
	"github.com/vesperlang/vesper/internal/graph"
)

// visitBlock wires a `do |params| ... end` literal standing alone
// (bound to params whose types come from wherever the block is passed,
// filled in by the call resolver after this runs — see bindCallBlock
// and bindBlockParams in calls.go; each param's local cell chains off
// p.Cell(), so those types still reach the body). The block's own cell
// binds to its body's last expression, the value `break`-less control
// flow yields.
func (v *Visitor) visitBlock(n *ast.Block) {
	v.locals = newLocalScope(v.locals)
	for _, p := range n.Params {
		cell := v.locals.define(p.Name)
		if p.Restriction != nil {
			v.visitTypeRef(p.Restriction)
			p.Cell().BindTo(p.Restriction.Cell())
		}
		// The block body resolves p.Name through this local cell, not
		// through p.Cell() directly, so it must chain off p.Cell() —
		// the same cell bindBlockParams binds the concrete yielded
		// argument type into — or a yielded value never reaches the
		// body that reads the param by name.
		cell.BindTo(p.Cell())
	}
	v.visitStmts(n.Body)
	v.locals = v.locals.outer

	if last := v.lastExprCell(n.Body); last != nil {
		n.Cell().BindTo(last)
	}
}

// bindBlockParams binds a Call's attached block's parameters directly
// to the cells the resolver determines from the target Def's
// block-signature restriction. visitCall has already run visitBlock by
// then; the bound types reach the body through the local cells that
// visitBlock chained off each p.Cell().
func bindBlockParams(block *ast.Block, paramTypes []*graph.Cell) {
	for i, p := range block.Params {
		if i >= len(paramTypes) {
			break
		}
		p.Cell().BindTo(paramTypes[i])
	}
}
