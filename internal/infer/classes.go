package infer

import (
	"github.com/vesperlang/vesper/internal/ast"
	"github.com/vesperlang/vesper/internal/graph"
	"github.com/vesperlang/vesper/internal/types"
)

// visitClassDef wires the body of a class/module already registered by
// collectDecls, so nested classes and methods see a fully-populated
// Registry regardless of declaration order in the source file.
func (v *Visitor) visitClassDef(n *ast.ClassDef) {
	class, err := v.Reg.ResolveClass(v.Reg.Root(), n.Name)
	if err != nil {
		v.errorf("%s: %s", n.Pos(), err)
		return
	}

	outerClass, outerDef := v.class, v.classDef
	v.class, v.classDef = class, n
	v.visitStmts(n.Body)
	v.class, v.classDef = outerClass, outerDef
}

// visitDef wires a method body. It runs when the enclosing class body
// is visited, and again from inferDefInContext (calls.go) at a call
// site while the Def's return cell is still untyped. Each parameter's
// local cell chains off the Param's own cell (which bindArgDefaults
// binds to each call site's argument) and, when given, its restriction
// and default; the Def's own cell is the method's inferred return type,
// bound to every `return` in the body plus the implicit fall-through
// value.
func (v *Visitor) visitDef(n *ast.Def) {
	if n.Abstract || len(n.Body) == 0 {
		if n.Restrict != nil {
			v.visitTypeRef(n.Restrict)
			n.Cell().BindTo(n.Restrict.Cell())
		} else {
			n.Cell().SetType(types.Prim(types.KindNil))
		}
		return
	}

	outerLocals, outerRet, outerYield := v.locals, v.ret, v.yieldReturn
	v.locals = newLocalScope(nil)
	v.ret = &returnChannel{cell: graph.NewCell()}
	v.yieldReturn = v.pendingYield
	v.pendingYield = nil

	for _, p := range n.Params {
		cell := v.locals.define(p.Name)
		cell.BindTo(p.Cell())
		if p.Restriction != nil {
			v.visitTypeRef(p.Restriction)
			cell.BindTo(p.Restriction.Cell())
		}
		if p.Default != nil {
			v.visitExpr(p.Default)
			cell.BindTo(p.Default.Cell())
		}
	}

	v.visitStmts(n.Body)
	if last := v.lastExprCell(n.Body); last != nil {
		v.ret.cell.BindTo(last)
	}

	n.Cell().BindTo(v.ret.cell)
	if n.Restrict != nil {
		v.visitTypeRef(n.Restrict)
		n.Cell().BindTo(n.Restrict.Cell())
	}

	v.locals, v.ret, v.yieldReturn = outerLocals, outerRet, outerYield
}

// visitInclude copies each of Module's methods whose name the enclosing
// class does not already define into the class's method table, so a
// lookup finds the class's own method first and the module's before
// any superclass's, the way Ruby's `include` orders method resolution.
// A name the class already defines is not merged with the module's.
func (v *Visitor) visitInclude(n *ast.Include) {
	if v.class == nil {
		v.errorf("%s: include used outside a class body", n.Pos())
		return
	}
	mod, err := v.Reg.ResolveClass(v.Reg.Root(), n.Module.Name)
	if err != nil {
		v.errorf("%s: %s", n.Pos(), err)
		return
	}
	for name, methods := range mod.Methods {
		if _, exists := v.class.Methods[name]; exists {
			continue // a class's own method wins over an included one
		}
		v.class.Methods[name] = methods
	}
}
