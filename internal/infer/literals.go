package infer

import (
	"github.com/vesperlang/vesper/internal/ast"
	"github.com/vesperlang/vesper/internal/graph"
	"github.com/vesperlang/vesper/internal/types"
)

// visitExpr wires e's cell and returns it. Every branch either calls
// SetType directly (a leaf with no dependencies) or BindTo (a node
// whose value flows from one or more sub-cells).
func (v *Visitor) visitExpr(e ast.Expression) *graph.Cell {
	switch n := e.(type) {
	case *ast.NilLit:
		n.Cell().SetType(types.Prim(types.KindNil))
	case *ast.BoolLit:
		n.Cell().SetType(types.Prim(types.KindBool))
	case *ast.IntLit:
		n.Cell().SetType(intLitType(n.Suffix))
	case *ast.FloatLit:
		n.Cell().SetType(floatLitType(n.Suffix))
	case *ast.CharLit:
		n.Cell().SetType(types.Prim(types.KindChar))
	case *ast.SymbolLit:
		n.Cell().SetType(types.Prim(types.KindSymbol))
	case *ast.RegexLit:
		n.Cell().SetType(v.classInstance("Regex"))
	case *ast.StringLit:
		v.visitStringLit(n)
	case *ast.RangeLit:
		v.visitRangeLit(n)
	case *ast.ArrayLit:
		v.visitArrayLit(n)
	case *ast.HashLit:
		v.visitHashLit(n)
	case *ast.Identifier:
		v.visitIdentifier(n)
	case *ast.Self:
		v.visitSelf(n)
	case *ast.InstanceVar:
		v.visitInstanceVar(n)
	case *ast.ClassVar:
		v.visitClassVar(n)
	case *ast.Assign:
		v.visitAssign(n)
	case *ast.BinOp:
		v.visitBinOp(n)
	case *ast.And:
		v.visitAnd(n)
	case *ast.Or:
		v.visitOr(n)
	case *ast.Not:
		n.Cell().SetType(types.Prim(types.KindBool))
		v.visitExpr(n.Operand)
	case *ast.IsA:
		n.Cell().SetType(types.Prim(types.KindBool))
		v.visitExpr(n.Target)
	case *ast.PointerOf:
		v.visitExpr(n.Referent)
		n.Cell().BindTo(n.Referent.Cell())
	case *ast.If:
		v.visitIf(n)
	case *ast.Case:
		v.visitCase(n)
	case *ast.While:
		v.visitWhile(n)
	case *ast.Begin:
		v.visitBegin(n)
	case *ast.Raise:
		v.visitRaise(n)
	case *ast.Return:
		v.visitReturn(n)
	case *ast.Break:
		v.visitBreak(n)
	case *ast.Next:
		v.visitNext(n)
	case *ast.Yield:
		v.visitYield(n)
	case *ast.Block:
		v.visitBlock(n)
	case *ast.Call:
		v.visitCall(n)
	case *ast.TypeRef:
		v.visitTypeRef(n)
	default:
		v.errorf("%s: unhandled expression node", e.Pos())
	}
	return e.Cell()
}

func intLitType(suffix string) types.Type {
	switch suffix {
	case "i8":
		return types.Prim(types.KindInt8)
	case "i16":
		return types.Prim(types.KindInt16)
	case "i64":
		return types.Prim(types.KindInt64)
	default:
		return types.Prim(types.KindInt32)
	}
}

func floatLitType(suffix string) types.Type {
	if suffix == "f32" {
		return types.Prim(types.KindFloat32)
	}
	return types.Prim(types.KindFloat64)
}

func (v *Visitor) visitStringLit(n *ast.StringLit) {
	for _, part := range n.Parts {
		if part.Expr != nil {
			v.visitExpr(part.Expr)
		}
	}
	n.Cell().SetType(types.Prim(types.KindString))
}

func (v *Visitor) visitRangeLit(n *ast.RangeLit) {
	v.visitExpr(n.Low)
	v.visitExpr(n.High)
	n.Cell().SetType(v.classInstance("Range"))
}

func (v *Visitor) visitArrayLit(n *ast.ArrayLit) {
	for _, el := range n.Elements {
		v.visitExpr(el)
	}
	elemType := v.elementType(n)
	n.Cell().SetType(v.genericInstance("Array", elemType))
}

func (v *Visitor) elementType(n *ast.ArrayLit) types.Type {
	if n.OfType != nil {
		v.visitTypeRef(n.OfType)
		return n.OfType.Cell().Type()
	}
	if len(n.Elements) == 0 {
		return types.Prim(types.KindNil)
	}
	ts := make([]types.Type, 0, len(n.Elements))
	for _, el := range n.Elements {
		if t := el.Cell().Type(); t != nil {
			ts = append(ts, t)
		}
	}
	return types.Merge(ts)
}

func (v *Visitor) visitHashLit(n *ast.HashLit) {
	keyTypes := make([]types.Type, 0, len(n.Entries))
	valTypes := make([]types.Type, 0, len(n.Entries))
	for _, entry := range n.Entries {
		v.visitExpr(entry.Key)
		v.visitExpr(entry.Value)
		keyTypes = append(keyTypes, entry.Key.Cell().Type())
		valTypes = append(valTypes, entry.Value.Cell().Type())
	}
	keyType := types.Merge(keyTypes)
	valType := types.Merge(valTypes)
	if n.OfKeyType != nil {
		v.visitTypeRef(n.OfKeyType)
		keyType = n.OfKeyType.Cell().Type()
	}
	if n.OfValType != nil {
		v.visitTypeRef(n.OfValType)
		valType = n.OfValType.Cell().Type()
	}
	n.Cell().SetType(v.genericInstance("Hash", keyType, valType))
}

func (v *Visitor) visitTypeRef(n *ast.TypeRef) {
	t, err := v.resolveTypeRef(n)
	if err != nil {
		v.errorf("%s: %s", n.Pos(), err)
		return
	}
	n.Cell().SetType(t)
}

// resolveTypeRef turns a syntactic TypeRef into a concrete types.Type,
// handling generic arguments and `T | U` union restriction syntax.
func (v *Visitor) resolveTypeRef(n *ast.TypeRef) (types.Type, error) {
	if len(n.Union) > 0 {
		members := make([]types.Type, 0, len(n.Union))
		for _, u := range n.Union {
			t, err := v.resolveTypeRef(u)
			if err != nil {
				return nil, err
			}
			members = append(members, t)
		}
		return types.Merge(members), nil
	}
	if prim, ok := primitiveByName[n.Name]; ok {
		return types.Prim(prim), nil
	}
	class, err := v.Reg.ResolveClass(v.Reg.Root(), n.Name)
	if err != nil {
		return nil, err
	}
	if len(n.Args) == 0 {
		return &types.ClassInstance{Class: class}, nil
	}
	args := make([]types.Type, 0, len(n.Args))
	for _, a := range n.Args {
		t, err := v.resolveTypeRef(a)
		if err != nil {
			return nil, err
		}
		args = append(args, t)
	}
	return &types.GenericInstance{Class: class, TypeArgs: args}, nil
}

var primitiveByName = map[string]types.PrimitiveKind{
	"Nil": types.KindNil, "Bool": types.KindBool, "Char": types.KindChar,
	"Int8": types.KindInt8, "Int16": types.KindInt16, "Int32": types.KindInt32, "Int64": types.KindInt64,
	"Float32": types.KindFloat32, "Float64": types.KindFloat64,
	"String": types.KindString, "Symbol": types.KindSymbol, "Void": types.KindVoid,
}

// classInstance resolves a builtin class by name for literal types
// (Range, Regex) that the language always provides.
func (v *Visitor) classInstance(name string) types.Type {
	class, err := v.Reg.ResolveClass(v.Reg.Root(), name)
	if err != nil {
		// Builtin not declared in this program's source (a freestanding
		// fixture that never opens core.vsp) — fall back to Object so
		// inference still proceeds instead of aborting the whole run.
		return &types.ClassInstance{Class: v.Reg.Object()}
	}
	return &types.ClassInstance{Class: class}
}

func (v *Visitor) genericInstance(name string, args ...types.Type) types.Type {
	class, err := v.Reg.ResolveClass(v.Reg.Root(), name)
	if err != nil {
		return &types.ClassInstance{Class: v.Reg.Object()}
	}
	return &types.GenericInstance{Class: class, TypeArgs: args}
}
