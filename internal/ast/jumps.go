package ast

import "github.com/vesperlang/vesper/internal/lexer"

// Return/Break/Next feed their argument's type into a "return channel"
// cell (see internal/infer/jumps.go for where each one flows); the jump
// expression itself has no type (it never produces a value at its own
// site). Yield types as the value of the block attached at the call site.

type Return struct {
	Base
	Value Expression // nil for a bare `return`
}

func NewReturn(pos lexer.Position, v Expression) *Return { return &Return{NewBase(pos), v} }
func (*Return) expressionNode()                          {}
func (*Return) statementNode()                           {}
func (*Return) String() string                           { return "return" }

type Break struct {
	Base
	Value Expression
}

func NewBreak(pos lexer.Position, v Expression) *Break { return &Break{NewBase(pos), v} }
func (*Break) expressionNode()                         {}
func (*Break) statementNode()                          {}
func (*Break) String() string                          { return "break" }

type Next struct {
	Base
	Value Expression
}

func NewNext(pos lexer.Position, v Expression) *Next { return &Next{NewBase(pos), v} }
func (*Next) expressionNode()                        {}
func (*Next) statementNode()                         {}
func (*Next) String() string                         { return "next" }

// Yield is `yield` or `yield(args...)`; zero-arg yield has Args == nil.
type Yield struct {
	Base
	Args []Expression
}

func NewYield(pos lexer.Position, args []Expression) *Yield { return &Yield{NewBase(pos), args} }
func (*Yield) expressionNode()                              {}
func (*Yield) statementNode()                                {}
func (*Yield) String() string                                { return "yield" }

// ExprStatement wraps a bare expression used as a statement.
type ExprStatement struct {
	Base
	Expr Expression
}

func NewExprStatement(e Expression) *ExprStatement {
	return &ExprStatement{Base{Position: e.Pos(), TypeCell: e.Cell()}, e}
}
func (*ExprStatement) statementNode()  {}
func (e *ExprStatement) String() string { return e.Expr.String() }
