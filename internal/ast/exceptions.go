package ast

import "github.com/vesperlang/vesper/internal/lexer"

// RescueClause is `rescue [ex :] Type1, Type2 \n body`. A typed binding
// (ExVar non-empty) binds to a Union of the listed exception classes, or
// to the root exception class when the clause lists no types.
type RescueClause struct {
	ExVar    string // empty when untyped
	Types    []*TypeRef
	Body     []Statement
}

// Begin is `begin body rescue ... else ... ensure ... end`. The Begin
// node binds to the body and to each rescue clause's body; Else
// contributes only when no rescue fires; Ensure never contributes a
// type (it always runs, success or failure, and its value is discarded).
type Begin struct {
	Base
	Body    []Statement
	Rescues []RescueClause
	Else    []Statement
	Ensure  []Statement
}

func NewBegin(pos lexer.Position, body []Statement, rescues []RescueClause, els, ensure []Statement) *Begin {
	return &Begin{NewBase(pos), body, rescues, els, ensure}
}
func (*Begin) expressionNode() {}
func (*Begin) statementNode()  {}
func (*Begin) String() string  { return "begin ... end" }

// Raise is `raise "message"` or `raise SomeError.new(...)`.
type Raise struct {
	Base
	Value Expression // nil for a bare re-raise inside a rescue
}

func NewRaise(pos lexer.Position, v Expression) *Raise { return &Raise{NewBase(pos), v} }
func (*Raise) expressionNode()                         {}
func (*Raise) statementNode()                          {}
func (*Raise) String() string                          { return "raise" }
