package ast

import "github.com/vesperlang/vesper/internal/lexer"

// If covers both `if` and `unless` (Unless is represented as If with
// Negated set); the expression node binds to each branch's last
// expression, and a missing Else contributes Nil.
type If struct {
	Base
	Cond     Expression
	Negated  bool // true for `unless`
	Then     []Statement
	Else     []Statement // nil if there is no else branch
}

func NewIf(pos lexer.Position, cond Expression, negated bool, then, els []Statement) *If {
	return &If{NewBase(pos), cond, negated, then, els}
}
func (*If) expressionNode() {}
func (*If) statementNode()  {}
func (i *If) String() string {
	kw := "if"
	if i.Negated {
		kw = "unless"
	}
	return kw + " " + i.Cond.String() + " ... end"
}

// WhenClause is one `when expr1, expr2 then ...` arm of a Case.
type WhenClause struct {
	Conditions []Expression
	Body       []Statement
}

// Case is `case subject; when ...; else ...; end`.
type Case struct {
	Base
	Subject Expression // nil for a subject-less `case` used as chained `if`
	Whens   []WhenClause
	Else    []Statement
}

func NewCase(pos lexer.Position, subject Expression, whens []WhenClause, els []Statement) *Case {
	return &Case{NewBase(pos), subject, whens, els}
}
func (*Case) expressionNode() {}
func (*Case) statementNode()  {}
func (*Case) String() string  { return "case ... end" }

// While is `while cond; body; end` (and `until`, via Negated). The
// expression's own type is always Nil; only the body is visited for
// its own inner effects.
type While struct {
	Base
	Cond    Expression
	Negated bool // true for `until`
	Body    []Statement
}

func NewWhile(pos lexer.Position, cond Expression, negated bool, body []Statement) *While {
	return &While{NewBase(pos), cond, negated, body}
}
func (*While) expressionNode() {}
func (*While) statementNode()  {}
func (*While) String() string  { return "while ... end" }
