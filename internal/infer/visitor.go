// Package infer implements the inference visitor: one wiring rule per
// AST construct, each binding the construct's graph.Cell to whatever
// cells its value depends on, then letting the dependency graph
// propagate types to a fixpoint (internal/graph).
package infer

import (
	"fmt"

	"github.com/vesperlang/vesper/internal/ast"
	"github.com/vesperlang/vesper/internal/diag"
	"github.com/vesperlang/vesper/internal/graph"
	"github.com/vesperlang/vesper/internal/registry"
	"github.com/vesperlang/vesper/internal/resolver"
	"github.com/vesperlang/vesper/internal/types"
)

// localScope is a lexical chain of variable bindings, one per method
// body / block / control-flow arm that introduces new locals.
type localScope struct {
	vars  map[string]*graph.Cell
	outer *localScope
}

func newLocalScope(outer *localScope) *localScope {
	return &localScope{vars: make(map[string]*graph.Cell), outer: outer}
}

func (s *localScope) lookup(name string) (*graph.Cell, bool) {
	for ls := s; ls != nil; ls = ls.outer {
		if c, ok := ls.vars[name]; ok {
			return c, true
		}
	}
	return nil, false
}

func (s *localScope) define(name string) *graph.Cell {
	c := graph.NewCell()
	s.vars[name] = c
	return c
}

// returnChannel is the cell a Def's body feeds through `return`,
// `next`, or an implicit last-expression value (visitBlock opens no
// channel of its own). Jump nodes bind into it but never produce a
// value of their own.
type returnChannel struct {
	cell      *graph.Cell
	breakCell *graph.Cell // slot `break` binds into; nothing sets it, so it is always nil
}

// Visitor walks a Program and wires every node's cell. Source/File are
// carried only for diagnostic formatting.
type Visitor struct {
	Reg    *registry.Registry
	Source string
	File   string

	// res caches resolved overloads keyed on (owner, name, argTypes, blockSig)
	// so a call site reached repeatedly (a loop body, a method called
	// from several places) re-ranks candidates once rather than on every
	// visit; see resolveInstanceCall.
	res *resolver.Resolver

	// inferDepth counts Defs currently mid-inference on this visitor's
	// own call stack, guarding inferDefInContext against a recursive
	// method with no base case (see maxInferDepth in calls.go).
	inferDepth int

	class   *types.Class  // enclosing ClassDef's descriptor, nil at top level
	classDef *ast.ClassDef
	locals  *localScope
	ret     *returnChannel

	// classCells backs every @ivar/@@cvar slot with one persistent
	// graph.Cell per (owning class, name), shared across every method
	// body that references it.
	classCells map[*types.Class]map[string]*graph.Cell

	// yieldReturn is the currently active block's yielded-value cell,
	// set while visiting a Def's body that is being (re-)inferred for a
	// specific call site carrying a block (see calls.go); nil when
	// the Def has no block attached at its current instantiation.
	yieldReturn *graph.Cell

	// pendingYield is set by bindCallBlock just before a Def body is
	// (re-)visited, so visitDef can pick it up as that invocation's
	// yieldReturn without the Def's own nil-reset clobbering it.
	pendingYield *graph.Cell

	// writers accumulates, per class, the set of @ivar names assigned
	// anywhere in that class's own method bodies — computed by the
	// collectWriters pre-pass before any body is wired, since a method
	// can reference an ivar hoisted by a sibling method visited later in
	// source order.
	writers map[*types.Class]map[string]bool

	diags []*diag.Diagnostic
}

// New creates a Visitor bound to reg, ready to infer one Program.
func New(reg *registry.Registry, source, file string) *Visitor {
	return &Visitor{
		Reg:     reg,
		Source:  source,
		File:    file,
		res:     resolver.New(reg),
		locals:  newLocalScope(nil),
		writers: make(map[*types.Class]map[string]bool),
	}
}

// Diagnostics returns every diagnostic raised so far.
func (v *Visitor) Diagnostics() []*diag.Diagnostic { return v.diags }

func (v *Visitor) errorf(format string, args ...any) {
	v.diags = append(v.diags, &diag.Diagnostic{
		Message: fmt.Sprintf(format, args...),
		Source:  v.Source,
		File:    v.File,
	})
}

func (v *Visitor) raiseFrom(d *graph.Diagnostic) {
	v.diags = append(v.diags, diag.FromCell(d, v.Source, v.File))
}

// Run performs a first pass collecting every class/module declaration
// (so forward references resolve), then a second pass wiring bodies.
func (v *Visitor) Run(prog *ast.Program) {
	v.collectDecls(prog.Statements, nil)
	v.collectWriters(prog.Statements, nil)
	for _, s := range prog.Statements {
		v.visitStmt(s)
	}
	v.syncInstanceVarTypes()
}

// syncInstanceVarTypes copies each class's instance-var cells' inferred
// types back into the registry's types.InstanceVarCell.Typ slots, since
// those are the only ones callers outside this package (e.g. the CLI's
// `infer` command) can see; classCells itself is private wiring state.
func (v *Visitor) syncInstanceVarTypes() {
	for class, table := range v.classCells {
		for name, cell := range table {
			ivc, declared := class.InstanceVars[name]
			if !declared {
				continue
			}
			ivc.Typ = cell.Type()
		}
	}
}

// collectDecls pre-registers every ClassDef/LibDef so that a method
// body can reference a class declared later in the same file.
func (v *Visitor) collectDecls(stmts []ast.Statement, outer *registry.Scope) {
	for _, s := range stmts {
		switch n := s.(type) {
		case *ast.ClassDef:
			scope, class, err := v.Reg.Declare(outer, n)
			if err != nil {
				v.diags = append(v.diags, &diag.Diagnostic{Message: err.Error(), Source: v.Source, File: v.File})
				continue
			}
			v.collectDecls(n.Body, scope)
			v.registerMethods(n, class)
		case *ast.LibDef:
			v.collectLib(n)
		case *ast.Def:
			// A top-level `def` is a private instance method of Object,
			// same as Ruby's top-level-method convention.
			v.Reg.RegisterMethod(v.Reg.Object(), nil, n)
		}
	}
}

func (v *Visitor) registerMethods(n *ast.ClassDef, class *types.Class) {
	for _, s := range n.Body {
		if def, ok := s.(*ast.Def); ok {
			v.Reg.RegisterMethod(class, n, def)
		}
	}
}

func (v *Visitor) collectLib(lib *ast.LibDef) {
	for _, s := range lib.Body {
		switch n := s.(type) {
		case *ast.FunDecl:
			v.Reg.DeclareFun(n)
		case *ast.StructDecl:
			v.Reg.DeclareStruct(n)
		case *ast.UnionDecl:
			v.Reg.DeclareUnion(n)
		case *ast.EnumDecl:
			v.Reg.DeclareEnum(n)
		}
	}
}

// collectWriters records which @ivars each class assigns to directly
// in its own bodies, feeding registry.HoistInstanceVar's stricter rule
// (write, not merely read, in an ancestor).
func (v *Visitor) collectWriters(stmts []ast.Statement, class *types.Class) {
	for _, s := range stmts {
		switch n := s.(type) {
		case *ast.ClassDef:
			c, err := v.Reg.ResolveClass(v.Reg.Root(), n.Name)
			if err != nil {
				continue
			}
			v.collectWriters(n.Body, c)
		case *ast.Def:
			v.collectWritersInBody(n.Body, class)
		}
	}
}

func (v *Visitor) collectWritersInBody(stmts []ast.Statement, class *types.Class) {
	if class == nil {
		return
	}
	var walk func(ast.Node)
	mark := func(name string) {
		w, ok := v.writers[class]
		if !ok {
			w = make(map[string]bool)
			v.writers[class] = w
		}
		w[name] = true
	}
	walk = func(n ast.Node) {
		switch e := n.(type) {
		case *ast.Assign:
			if iv, ok := e.Target.(*ast.InstanceVar); ok {
				mark(iv.Name)
			}
			walk(e.Value)
		case *ast.If:
			walk(e.Cond)
			walkStmts(e.Then, walk)
			walkStmts(e.Else, walk)
		case *ast.While:
			walk(e.Cond)
			walkStmts(e.Body, walk)
		case *ast.Begin:
			walkStmts(e.Body, walk)
			for _, r := range e.Rescues {
				walkStmts(r.Body, walk)
			}
			walkStmts(e.Else, walk)
			walkStmts(e.Ensure, walk)
		case *ast.Block:
			walkStmts(e.Body, walk)
		case *ast.Call:
			if e.Receiver != nil {
				walk(e.Receiver)
			}
			for _, a := range e.Args {
				walk(a.Value)
			}
			if e.Block != nil {
				walk(e.Block)
			}
		}
	}
	walkStmts(stmts, walk)
}

func walkStmts(stmts []ast.Statement, walk func(ast.Node)) {
	for _, s := range stmts {
		if e, ok := s.(ast.Expression); ok {
			walk(e)
			continue
		}
		if es, ok := s.(*ast.ExprStatement); ok {
			walk(es.Expr)
			continue
		}
		walk(s)
	}
}
