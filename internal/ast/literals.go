package ast

import "github.com/vesperlang/vesper/internal/lexer"

// NilLit, BoolLit, ... are leaf literal expressions. The inference
// visitor sets their type cell directly (SetType) to the corresponding
// primitive or generic instance; literals have no dependencies of their
// own.

type NilLit struct{ Base }

func NewNilLit(pos lexer.Position) *NilLit { return &NilLit{NewBase(pos)} }
func (*NilLit) expressionNode()            {}
func (*NilLit) String() string             { return "nil" }

type BoolLit struct {
	Base
	Value bool
}

func NewBoolLit(pos lexer.Position, v bool) *BoolLit { return &BoolLit{NewBase(pos), v} }
func (*BoolLit) expressionNode()                     {}
func (b *BoolLit) String() string {
	if b.Value {
		return "true"
	}
	return "false"
}

// IntLit carries the literal text and an explicit suffix (e.g. "_i64"),
// empty when the literal is a bare integer (which types as Int32).
type IntLit struct {
	Base
	Literal string
	Suffix  string
}

func NewIntLit(pos lexer.Position, lit, suffix string) *IntLit {
	return &IntLit{NewBase(pos), lit, suffix}
}
func (*IntLit) expressionNode() {}
func (i *IntLit) String() string { return i.Literal }

// FloatLit mirrors IntLit; a bare float literal types as Float64.
type FloatLit struct {
	Base
	Literal string
	Suffix  string
}

func NewFloatLit(pos lexer.Position, lit, suffix string) *FloatLit {
	return &FloatLit{NewBase(pos), lit, suffix}
}
func (*FloatLit) expressionNode()  {}
func (f *FloatLit) String() string { return f.Literal }

type CharLit struct {
	Base
	Value rune
}

func NewCharLit(pos lexer.Position, v rune) *CharLit { return &CharLit{NewBase(pos), v} }
func (*CharLit) expressionNode()                     {}
func (c *CharLit) String() string                    { return "'" + string(c.Value) + "'" }

// StringPart is either literal text or an interpolated expression,
// supporting Vesper's "#{expr}" string interpolation.
type StringPart struct {
	Text string
	Expr Expression // nil when Text is plain literal text
}

type StringLit struct {
	Base
	Parts []StringPart
}

func NewStringLit(pos lexer.Position, parts []StringPart) *StringLit {
	return &StringLit{NewBase(pos), parts}
}
func (*StringLit) expressionNode() {}
func (s *StringLit) String() string {
	out := ""
	for _, p := range s.Parts {
		if p.Expr != nil {
			out += "#{" + p.Expr.String() + "}"
		} else {
			out += p.Text
		}
	}
	return `"` + out + `"`
}

type SymbolLit struct {
	Base
	Name string
}

func NewSymbolLit(pos lexer.Position, name string) *SymbolLit { return &SymbolLit{NewBase(pos), name} }
func (*SymbolLit) expressionNode()                            {}
func (s *SymbolLit) String() string                            { return ":" + s.Name }

type RegexLit struct {
	Base
	Pattern string
}

func NewRegexLit(pos lexer.Position, pattern string) *RegexLit {
	return &RegexLit{NewBase(pos), pattern}
}
func (*RegexLit) expressionNode()  {}
func (r *RegexLit) String() string { return "/" + r.Pattern + "/" }

// RangeLit is `lo..hi` (inclusive) or `lo...hi` (exclusive).
type RangeLit struct {
	Base
	Low, High   Expression
	Exclusive   bool
}

func NewRangeLit(pos lexer.Position, low, high Expression, exclusive bool) *RangeLit {
	return &RangeLit{NewBase(pos), low, high, exclusive}
}
func (*RangeLit) expressionNode() {}
func (r *RangeLit) String() string {
	op := ".."
	if r.Exclusive {
		op = "..."
	}
	return r.Low.String() + op + r.High.String()
}

// ArrayLit is an array literal, optionally with an explicit `of T`
// element-type annotation (TypeRef may be nil, in which case the
// element type is the merge of the element expressions' types).
type ArrayLit struct {
	Base
	Elements []Expression
	OfType   *TypeRef
}

func NewArrayLit(pos lexer.Position, elems []Expression, of *TypeRef) *ArrayLit {
	return &ArrayLit{NewBase(pos), elems, of}
}
func (*ArrayLit) expressionNode() {}
func (a *ArrayLit) String() string { return "[...]" }

// HashEntry is one `key => value` (or shorthand `key:`) pair.
type HashEntry struct {
	Key, Value Expression
}

type HashLit struct {
	Base
	Entries    []HashEntry
	OfKeyType  *TypeRef
	OfValType  *TypeRef
}

func NewHashLit(pos lexer.Position, entries []HashEntry, k, v *TypeRef) *HashLit {
	return &HashLit{NewBase(pos), entries, k, v}
}
func (*HashLit) expressionNode()  {}
func (h *HashLit) String() string { return "{...}" }

// TypeRef is a syntactic reference to a type, as written in source
// (a param restriction, a declared return type, a generic argument, an
// `of T` annotation). The registry resolves it to a concrete types.Type.
type TypeRef struct {
	Base
	Name string   // e.g. "Int32", "Foo"
	Args []*TypeRef // generic arguments, e.g. Foo(T, U)
	Union []*TypeRef // `T | U` restriction syntax
}

func NewTypeRef(pos lexer.Position, name string, args, union []*TypeRef) *TypeRef {
	return &TypeRef{NewBase(pos), name, args, union}
}
func (*TypeRef) expressionNode() {}
func (t *TypeRef) String() string { return t.Name }
