// Package ast defines the Abstract Syntax Tree produced by the parser and
// consumed by the inference visitor. Every node carries a type cell and
// participates in the dependency graph (internal/graph) uniformly via an
// embedded *graph.Cell, per the "closed tagged union" design note in the
// core spec: the five propagation operations live once on graph.Cell
// rather than being reimplemented per node variant.
package ast

import (
	"github.com/vesperlang/vesper/internal/graph"
	"github.com/vesperlang/vesper/internal/lexer"
)

// Node is the base interface every AST node satisfies.
type Node interface {
	Pos() lexer.Position
	String() string
	Cell() *graph.Cell
}

// Expression is any node that produces a value.
type Expression interface {
	Node
	expressionNode()
}

// Statement is any node that performs an action.
type Statement interface {
	Node
	statementNode()
}

// Base is embedded by every concrete node; it supplies Pos() and Cell()
// so individual node types only need to implement String().
type Base struct {
	Position lexer.Position
	TypeCell *graph.Cell
}

func NewBase(pos lexer.Position) Base {
	return Base{Position: pos, TypeCell: graph.NewCell()}
}

func (b *Base) Pos() lexer.Position { return b.Position }
func (b *Base) Cell() *graph.Cell   { return b.TypeCell }

// Program is the root node: a sequence of top-level statements.
type Program struct {
	Statements []Statement
}

func (p *Program) Pos() lexer.Position {
	if len(p.Statements) > 0 {
		return p.Statements[0].Pos()
	}
	return lexer.Position{Line: 1, Column: 1}
}

func (p *Program) String() string {
	out := ""
	for _, s := range p.Statements {
		out += s.String() + "\n"
	}
	return out
}

func (p *Program) Cell() *graph.Cell {
	if len(p.Statements) == 0 {
		return graph.NewCell()
	}
	return p.Statements[len(p.Statements)-1].Cell()
}
