package infer

import (
	"github.com/vesperlang/vesper/internal/ast"
	"github.com/vesperlang/vesper/internal/graph"
	"github.com/vesperlang/vesper/internal/registry"
	"github.com/vesperlang/vesper/internal/types"
)

// visitIdentifier binds a variable read to its local cell. Failing
// that, a name that resolves to a declared class is a bare constant
// reference (`Foo` standing for the class itself, as in `Foo.new`) and
// types to that class's Metaclass; anything else is treated as a
// zero-arg implicit-self call (the identifier/call ambiguity the
// parser leaves for inference to settle, same as the teacher's
// symbol-table rule for bare names).
func (v *Visitor) visitIdentifier(n *ast.Identifier) {
	if cell, ok := v.locals.lookup(n.Name); ok {
		n.Cell().BindTo(cell)
		return
	}
	if class, err := v.Reg.ResolveClass(v.Reg.Root(), n.Name); err == nil {
		n.Cell().SetType(&types.Metaclass{Class: class})
		return
	}
	call := ast.NewCall(n.Pos(), nil, n.Name, nil, nil)
	v.visitCall(call)
	n.Cell().BindTo(call.Cell())
}

func (v *Visitor) visitSelf(n *ast.Self) {
	if v.class != nil {
		n.Cell().SetType(&types.ClassInstance{Class: v.class})
		return
	}
	n.Cell().SetType(&types.ClassInstance{Class: v.Reg.Object()})
}

// visitInstanceVar resolves @name against the owning class determined
// by registry.HoistInstanceVar, then binds to that class's persistent
// cell-backed slot. Since types.InstanceVarCell carries only a Type
// (not a graph.Cell), each class keeps a side table of instance-var
// cells so repeated reads/writes of the same @ivar across different
// methods share one cell, the way a single local variable does.
func (v *Visitor) visitInstanceVar(n *ast.InstanceVar) {
	if v.class == nil {
		v.errorf("%s: @%s used outside a class body", n.Pos(), n.Name)
		n.Cell().SetType(types.Prim(types.KindNil))
		return
	}
	owner := registry.HoistInstanceVar(v.class, n.Name, v.writers)
	if owner == v.class && !v.writers[v.class][n.Name] && registry.HasWritingDescendant(v.class, n.Name, v.writers) {
		v.errorf("ErrInstanceVarReadNotWrite: %s: @%s is read in %s but only assigned by a subclass; the read and the write would own separate cells", n.Pos(), n.Name, v.class.Name)
	}
	cell := v.ivarCell(owner, n.Name)
	n.Cell().BindTo(cell)
}

// ivarCell returns the shared cell backing owner's @name slot, lazily
// created on first reference so every method that touches @name
// reads/writes the same cell.
func (v *Visitor) ivarCell(owner *types.Class, name string) *graph.Cell {
	if v.classCells == nil {
		v.classCells = make(map[*types.Class]map[string]*graph.Cell)
	}
	table, ok := v.classCells[owner]
	if !ok {
		table = make(map[string]*graph.Cell)
		v.classCells[owner] = table
	}
	cell, ok := table[name]
	if !ok {
		cell = graph.NewCell()
		table[name] = cell
	}
	return cell
}

func (v *Visitor) visitClassVar(n *ast.ClassVar) {
	if v.class == nil {
		v.errorf("%s: @@%s used outside a class body", n.Pos(), n.Name)
		n.Cell().SetType(types.Prim(types.KindNil))
		return
	}
	cell := v.ivarCell(v.class, "@@"+n.Name)
	n.Cell().BindTo(cell)
}

// visitAssign wires target = value: the target's cell binds from
// value's cell (an instance-var or local write updates its persistent
// slot), and the assignment expression's own cell binds to the
// target's, since `x = (y = 1)` must itself type as the assigned value.
func (v *Visitor) visitAssign(n *ast.Assign) {
	v.visitExpr(n.Value)

	switch t := n.Target.(type) {
	case *ast.Identifier:
		cell, ok := v.locals.lookup(t.Name)
		if !ok {
			cell = v.locals.define(t.Name)
		}
		cell.BindTo(n.Value.Cell())
		t.Cell().BindTo(cell)
	case *ast.InstanceVar:
		if v.class == nil {
			v.errorf("%s: @%s assigned outside a class body", t.Pos(), t.Name)
			break
		}
		owner := registry.HoistInstanceVar(v.class, t.Name, v.writers)
		cell := v.ivarCell(owner, t.Name)
		cell.BindTo(n.Value.Cell())
		t.Cell().BindTo(cell)
	case *ast.ClassVar:
		if v.class == nil {
			v.errorf("%s: @@%s assigned outside a class body", t.Pos(), t.Name)
			break
		}
		cell := v.ivarCell(v.class, "@@"+t.Name)
		cell.BindTo(n.Value.Cell())
		t.Cell().BindTo(cell)
	default:
		v.visitExpr(t)
	}

	n.Cell().BindTo(n.Target.Cell())
}

// visitBinOp desugars an operator to a zero/one-arg method call on the
// left operand (`a + b` is `a.+(b)`), matching how the call resolver's
// overload machinery already handles every other method dispatch.
func (v *Visitor) visitBinOp(n *ast.BinOp) {
	v.visitExpr(n.Left)
	v.visitExpr(n.Right)
	call := ast.NewCall(n.Pos(), n.Left, n.Op, []ast.Arg{{Value: n.Right}}, nil)
	v.visitCall(call)
	n.Cell().BindTo(call.Cell())
}

func (v *Visitor) visitAnd(n *ast.And) {
	v.visitExpr(n.Left)
	v.visitExpr(n.Right)
	n.Cell().BindTo(n.Right.Cell())
}

func (v *Visitor) visitOr(n *ast.Or) {
	v.visitExpr(n.Left)
	v.visitExpr(n.Right)
	n.Cell().BindTo(n.Left.Cell())
	n.Cell().BindTo(n.Right.Cell())
}
