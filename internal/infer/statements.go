package infer

import (
	"github.com/vesperlang/vesper/internal/ast"
	"github.com/vesperlang/vesper/internal/graph"
)

// visitStmt wires one statement. Most statement nodes are also
// Expressions (If, Case, While, Begin, Call, Assign, ...) and are
// handled by visitExpr; the remaining pure-statement forms (ClassDef,
// Def, Include, lib declarations) are handled here.
func (v *Visitor) visitStmt(s ast.Statement) {
	switch n := s.(type) {
	case ast.Expression:
		v.visitExpr(n)
	case *ast.ExprStatement:
		v.visitExpr(n.Expr)
	case *ast.ClassDef:
		v.visitClassDef(n)
	case *ast.Def:
		v.visitDef(n)
	case *ast.Include:
		v.visitInclude(n)
	case *ast.LibDef, *ast.FunDecl, *ast.StructDecl, *ast.UnionDecl, *ast.EnumDecl:
		// lib declarations never participate in inference.
	default:
		v.errorf("%s: unhandled statement node", s.Pos())
	}
}

func (v *Visitor) visitStmts(stmts []ast.Statement) {
	for _, s := range stmts {
		v.visitStmt(s)
	}
}

// lastExprCell returns the graph.Cell a statement sequence's implicit
// value flows through: the last statement's cell if it is an
// Expression, or nil when the sequence is empty or ends in a pure
// statement (ClassDef, Def, ...), in which case callers bind to Nil.
func (v *Visitor) lastExprCell(stmts []ast.Statement) *graph.Cell {
	if len(stmts) == 0 {
		return nil
	}
	switch e := stmts[len(stmts)-1].(type) {
	case ast.Expression:
		return e.Cell()
	case *ast.ExprStatement:
		return e.Expr.Cell()
	}
	return nil
}
