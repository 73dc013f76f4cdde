package ast

import "github.com/vesperlang/vesper/internal/lexer"

// LibDef is `lib Name \n ... \n end`, a foreign-declaration scope: its
// contents (FunDecl/StructDecl/UnionDecl/EnumDecl) describe an external
// ABI surface and never participate in method-call inference — the
// registry keeps them in a scope distinct from the class/module tree.
type LibDef struct {
	Base
	Name string
	Body []Statement
}

func NewLibDef(pos lexer.Position, name string, body []Statement) *LibDef {
	return &LibDef{NewBase(pos), name, body}
}
func (*LibDef) statementNode()  {}
func (l *LibDef) String() string { return "lib " + l.Name }

// FunDecl is `fun name(params) : RetType` inside a lib block — a
// foreign function signature, never given a body.
type FunDecl struct {
	Base
	Name     string
	Params   []*Param
	Restrict *TypeRef
}

func NewFunDecl(pos lexer.Position, name string, params []*Param, restrict *TypeRef) *FunDecl {
	return &FunDecl{NewBase(pos), name, params, restrict}
}
func (*FunDecl) statementNode()  {}
func (f *FunDecl) String() string { return "fun " + f.Name }

// FieldDecl is one `name : Type` field inside a StructDecl/UnionDecl.
type FieldDecl struct {
	Name string
	Type *TypeRef
}

// StructDecl is `struct Name \n field : Type ... end` inside a lib.
type StructDecl struct {
	Base
	Name   string
	Fields []FieldDecl
}

func NewStructDecl(pos lexer.Position, name string, fields []FieldDecl) *StructDecl {
	return &StructDecl{NewBase(pos), name, fields}
}
func (*StructDecl) statementNode()  {}
func (s *StructDecl) String() string { return "struct " + s.Name }

// UnionDecl mirrors StructDecl but for a C-style overlapping union.
type UnionDecl struct {
	Base
	Name   string
	Fields []FieldDecl
}

func NewUnionDecl(pos lexer.Position, name string, fields []FieldDecl) *UnionDecl {
	return &UnionDecl{NewBase(pos), name, fields}
}
func (*UnionDecl) statementNode()  {}
func (u *UnionDecl) String() string { return "union " + u.Name }

// EnumDecl is `enum Name \n Member \n ... end`, optionally with an
// explicit backing type (e.g. `enum Name : UInt8`).
type EnumDecl struct {
	Base
	Name    string
	Backing *TypeRef // nil defaults to Int32
	Members []string
}

func NewEnumDecl(pos lexer.Position, name string, backing *TypeRef, members []string) *EnumDecl {
	return &EnumDecl{NewBase(pos), name, backing, members}
}
func (*EnumDecl) statementNode()  {}
func (e *EnumDecl) String() string { return "enum " + e.Name }
