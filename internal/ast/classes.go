package ast

import "github.com/vesperlang/vesper/internal/lexer"

// Def is a method definition: `def name(params) : RetType \n body \n end`.
// SelfMethod marks a class/static method (`def self.name`).
type Def struct {
	Base
	Name       string
	Params     []*Param
	Restrict   *TypeRef // declared return type, nil when inferred
	Body       []Statement
	SelfMethod bool // true for `def self.name`
	Abstract   bool // true when the body is empty and the owner is abstract

	Owner *ClassDef // set by the registry when the def is registered
}

func NewDef(pos lexer.Position, name string, params []*Param, restrict *TypeRef, body []Statement, selfMethod bool) *Def {
	return &Def{NewBase(pos), name, params, restrict, body, selfMethod, false, nil}
}
func (*Def) statementNode()  {}
func (d *Def) String() string { return "def " + d.Name }

// Include is `include ModuleName` inside a class or module body.
type Include struct {
	Base
	Module *TypeRef
}

func NewInclude(pos lexer.Position, mod *TypeRef) *Include { return &Include{NewBase(pos), mod} }
func (*Include) statementNode()                            {}
func (i *Include) String() string                          { return "include " + i.Module.String() }

// ClassDef is `[abstract] class Name < Super \n body \n end`, or, when
// Module is true, `module Name \n body \n end` (modules carry no
// instance state and cannot be instantiated). Generic parameters name
// the type variables introduced by `class Name(T, U)`.
type ClassDef struct {
	Base
	Name         string
	Super        *TypeRef // nil for a class with no explicit superclass
	Abstract     bool
	Module       bool
	GenericParams []string
	Body         []Statement

	IVars map[string]*InstanceVarCellRef
}

// InstanceVarCellRef names the class that owns a given @ivar's cell, per
// the hoisting rule: the cell lives on the nearest ancestor class that
// also assigns to that ivar in some method body.
type InstanceVarCellRef struct {
	OwnerClass string
}

func NewClassDef(pos lexer.Position, name string, super *TypeRef, abstract, module bool, generics []string, body []Statement) *ClassDef {
	return &ClassDef{NewBase(pos), name, super, abstract, module, generics, body, nil}
}
func (*ClassDef) statementNode() {}
func (c *ClassDef) String() string {
	if c.Module {
		return "module " + c.Name
	}
	return "class " + c.Name
}
