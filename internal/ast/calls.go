package ast

import (
	"github.com/vesperlang/vesper/internal/lexer"
	"github.com/vesperlang/vesper/internal/types"
)

// Arg is one call argument; Name is non-empty for a named argument
// (`foo(bar: 1)`).
type Arg struct {
	Name  string
	Value Expression
}

// Call is a method call: `receiver.name(args) { block }`. Receiver is
// nil for an implicit-self call. After resolution the call resolver
// records its chosen overload(s) in TargetDefs — a Hierarchy receiver
// dispatches to more than one concrete Def, per the virtual-dispatch
// design note, so this is a slice even though the common case holds
// exactly one entry. MangledNames holds one resolver.CacheKey-shaped
// name per TargetDefs entry, precomputed per spec.md §6's output
// contract so a code generator never has to re-derive the same name.
type Call struct {
	Base
	Receiver Expression // nil for implicit self
	Name     string
	Args     []Arg
	Block    *Block // nil when the call has no block

	TargetDefs   []*Def
	MangledNames []string
}

func NewCall(pos lexer.Position, recv Expression, name string, args []Arg, block *Block) *Call {
	return &Call{NewBase(pos), recv, name, args, block, nil, nil}
}
func (*Call) expressionNode() {}
func (*Call) statementNode()  {}
func (c *Call) String() string {
	out := c.Name + "(...)"
	if c.Receiver != nil {
		out = c.Receiver.String() + "." + out
	}
	return out
}

// ResolvedType holds a call's static return type, as distinct from the
// call's propagated cell value. Call has no ResolvedType field, and the
// call resolver does not construct one.
type ResolvedType struct {
	Type types.Type
}
