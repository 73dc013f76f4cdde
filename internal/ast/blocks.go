package ast

import "github.com/vesperlang/vesper/internal/lexer"

// Param is one method or block parameter: an optional declared type
// restriction, an optional default-value expression, and flags for the
// `out` and block (function-type) forms.
type Param struct {
	Base
	Name        string
	Restriction *TypeRef // nil when unrestricted
	Default     Expression // nil when required
	Out         bool
	BlockSig    *TypeRef // non-nil when this is a block-argument parameter
}

func NewParam(pos lexer.Position, name string, restriction *TypeRef, def Expression, out bool, blockSig *TypeRef) *Param {
	return &Param{NewBase(pos), name, restriction, def, out, blockSig}
}
func (*Param) expressionNode() {}
func (p *Param) String() string { return p.Name }

// Block is `do |params| ... end` or `{ |params| ... }` attached to a
// call. The block's yielded-value cell binds to its body's last
// expression.
type Block struct {
	Base
	Params []*Param
	Body   []Statement
}

func NewBlock(pos lexer.Position, params []*Param, body []Statement) *Block {
	return &Block{NewBase(pos), params, body}
}
func (*Block) expressionNode() {}
func (*Block) String() string  { return "do ... end" }
