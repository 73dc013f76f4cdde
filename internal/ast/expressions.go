package ast

import "github.com/vesperlang/vesper/internal/lexer"

// Identifier is a variable read (or, syntactically indistinguishable
// until resolved, a zero-arg method call — the inference visitor decides
// which based on lexical scope, same as the teacher's identifier
// resolution rule).
type Identifier struct {
	Base
	Name string
}

func NewIdentifier(pos lexer.Position, name string) *Identifier { return &Identifier{NewBase(pos), name} }
func (*Identifier) expressionNode()                             {}
func (i *Identifier) String() string                            { return i.Name }

// Self refers to the current receiver in scope.
type Self struct{ Base }

func NewSelf(pos lexer.Position) *Self { return &Self{NewBase(pos)} }
func (*Self) expressionNode()          {}
func (*Self) String() string           { return "self" }

// InstanceVar is `@name`, read or written. Target resolves against the
// owning class's instance-var table; see internal/infer for the
// hoisting rule (Data Model invariant 4).
type InstanceVar struct {
	Base
	Name string
}

func NewInstanceVar(pos lexer.Position, name string) *InstanceVar {
	return &InstanceVar{NewBase(pos), name}
}
func (*InstanceVar) expressionNode() {}
func (v *InstanceVar) String() string { return "@" + v.Name }

// ClassVar is `@@name`, a per-class (not per-instance) variable.
type ClassVar struct {
	Base
	Name string
}

func NewClassVar(pos lexer.Position, name string) *ClassVar { return &ClassVar{NewBase(pos), name} }
func (*ClassVar) expressionNode()                            {}
func (v *ClassVar) String() string                           { return "@@" + v.Name }

// Assign is `target = value`; the assignment node's own type binds to
// the target's cell (which binds to value's cell).
type Assign struct {
	Base
	Target Expression
	Value  Expression
}

func NewAssign(pos lexer.Position, target, value Expression) *Assign {
	return &Assign{NewBase(pos), target, value}
}
func (*Assign) expressionNode() {}
func (a *Assign) String() string { return a.Target.String() + " = " + a.Value.String() }

// BinOp covers arithmetic/comparison operators — these desugar to method
// calls on the receiver (see internal/infer/calls.go) except And/Or,
// which have dedicated short-circuit nodes below because their wiring
// rule is different from an ordinary call.
type BinOp struct {
	Base
	Op          string
	Left, Right Expression
}

func NewBinOp(pos lexer.Position, op string, l, r Expression) *BinOp {
	return &BinOp{NewBase(pos), op, l, r}
}
func (*BinOp) expressionNode() {}
func (b *BinOp) String() string { return "(" + b.Left.String() + " " + b.Op + " " + b.Right.String() + ")" }

// And binds to its second operand only (left-to-right evaluation means
// a false left short-circuits, so only the right side's type escapes
// when both sides run; and if the left is falsy the whole expression IS
// the left's value — spec.md's wiring rule calls for this asymmetry
// between And and Or).
type And struct {
	Base
	Left, Right Expression
}

func NewAnd(pos lexer.Position, l, r Expression) *And { return &And{NewBase(pos), l, r} }
func (*And) expressionNode()                          {}
func (a *And) String() string                         { return a.Left.String() + " && " + a.Right.String() }

// Or binds to both operands: short-circuit can yield either side.
type Or struct {
	Base
	Left, Right Expression
}

func NewOr(pos lexer.Position, l, r Expression) *Or { return &Or{NewBase(pos), l, r} }
func (*Or) expressionNode()                         {}
func (o *Or) String() string                        { return o.Left.String() + " || " + o.Right.String() }

// Not is unary logical negation; always types Bool.
type Not struct {
	Base
	Operand Expression
}

func NewNot(pos lexer.Position, e Expression) *Not { return &Not{NewBase(pos), e} }
func (*Not) expressionNode()                       {}
func (n *Not) String() string                      { return "!" + n.Operand.String() }

// IsA is `expr.is_a?(Type)`; always types Bool.
type IsA struct {
	Base
	Target Expression
	Type   *TypeRef
}

func NewIsA(pos lexer.Position, target Expression, t *TypeRef) *IsA { return &IsA{NewBase(pos), target, t} }
func (*IsA) expressionNode()                                        {}
func (i *IsA) String() string                                       { return i.Target.String() + ".is_a?(" + i.Type.String() + ")" }

// PointerOf is `pointerof(expr)`; types to a pointer-to-referent type.
type PointerOf struct {
	Base
	Referent Expression
}

func NewPointerOf(pos lexer.Position, e Expression) *PointerOf { return &PointerOf{NewBase(pos), e} }
func (*PointerOf) expressionNode()                             {}
func (p *PointerOf) String() string                            { return "pointerof(" + p.Referent.String() + ")" }
