package infer

import (
	"github.com/vesperlang/vesper/internal/ast"
	"github.com/vesperlang/vesper/internal/graph"
	"github.com/vesperlang/vesper/internal/resolver"
	"github.com/vesperlang/vesper/internal/types"
)

// visitCall wires a method call: visits the receiver and arguments,
// resolves the target overload(s) against their inferred types, and
// binds the call's own cell to the resolved return type(s) — a
// Hierarchy receiver fans out across every concrete subclass's own
// resolution and merges the results (virtual dispatch).
func (v *Visitor) visitCall(n *ast.Call) {
	var receiverType types.Type
	if n.Receiver != nil {
		v.visitExpr(n.Receiver)
		receiverType = n.Receiver.Cell().Type()
	}
	for _, a := range n.Args {
		v.visitExpr(a.Value)
	}
	if n.Block != nil {
		v.visitBlock(n.Block)
	}

	if receiverType == nil && n.Receiver == nil {
		v.resolveImplicitSelf(n)
		return
	}
	if receiverType == nil {
		// The receiver has no inferred type yet (an unrestricted,
		// never-called parameter); the call stays untyped.
		return
	}

	if prim, ok := receiverType.(*types.Primitive); ok {
		v.resolvePrimitiveOp(n, prim)
		return
	}

	if meta, ok := receiverType.(*types.Metaclass); ok {
		v.resolveConstructorOrClassMethod(n, meta.Class)
		return
	}

	v.resolveInstanceCall(n, receiverType)
}

func (v *Visitor) resolveImplicitSelf(n *ast.Call) {
	if v.class != nil {
		v.resolveInstanceCall(n, &types.ClassInstance{Class: v.class})
		return
	}
	v.resolveInstanceCall(n, &types.ClassInstance{Class: v.Reg.Object()})
}

// resolveInstanceCall looks up n.Name against every concrete class in
// receiverType's closure (one class for an ordinary ClassInstance, many
// for a Hierarchy), resolves each independently, and merges their
// return types.
func (v *Visitor) resolveInstanceCall(n *ast.Call, receiverType types.Type) {
	argTypes := v.argTypes(n)
	branches := resolver.ExpandHierarchy(receiverType)

	var results []types.Type
	var targets []*ast.Def
	var mangled []string
	for _, branch := range branches {
		class := classOfType(branch)
		if class == nil {
			v.errorf("%s: cannot call %q on %s", n.Pos(), n.Name, branch.String())
			continue
		}
		methods, _ := v.Reg.LookupMethod(class, n.Name)
		if methods == nil {
			v.errorf("%s: undefined method %q for %s", n.Pos(), n.Name, class.Name)
			continue
		}
		owner := &types.ClassInstance{Class: class}
		blockSig := blockSigOf(n.Block)
		key := resolver.CacheKey(owner, n.Name, argTypes, blockSig)
		var def *ast.Def
		if inst, ok := v.res.Lookup(key); ok {
			def = inst.Def
		} else {
			cands := v.candidatesFor(methods)
			chosen, err := resolver.Resolve(cands, argTypes, blockSig)
			if err != nil {
				v.errorf("%s: %s for %q", n.Pos(), err, n.Name)
				continue
			}
			def = chosen.Def
			v.res.Store(key, &resolver.Instantiation{Method: chosen.Method, Def: def, ArgTypes: argTypes})
		}
		// Precomputed per spec.md §6's output contract ("mangled names
		// are precomputed"); a code generator would use the same name
		// the cache key is built from (see resolver.CacheKey).
		mangled = append(mangled, key)
		v.bindArgDefaults(n, def)
		if n.Block != nil {
			v.bindCallBlock(n.Block, def)
		}
		if def.Cell().Type() == nil {
			v.inferDefInContext(def, class)
		}
		results = append(results, def.Cell().Type())
		targets = append(targets, def)
	}

	n.TargetDefs = targets
	n.MangledNames = mangled
	if len(results) == 0 {
		n.Cell().SetType(types.Prim(types.KindNil))
		return
	}
	n.Cell().SetType(types.Merge(results))
}

func (v *Visitor) resolveConstructorOrClassMethod(n *ast.Call, class *types.Class) {
	if n.Name == "new" {
		n.Cell().SetType(&types.ClassInstance{Class: class})
		return
	}
	v.resolveInstanceCall(n, &types.Metaclass{Class: class})
}

// resolvePrimitiveOp types a call whose receiver is already a
// primitive scalar (the desugared form of a BinOp): arithmetic widens
// to the wider of the two operand kinds, comparisons always yield
// Bool, matching how the lattice's own primitives are ordered.
func (v *Visitor) resolvePrimitiveOp(n *ast.Call, recv *types.Primitive) {
	switch n.Name {
	case "==", "!=", "<", ">", "<=", ">=":
		n.Cell().SetType(types.Prim(types.KindBool))
		return
	}
	var rhsKind types.PrimitiveKind = recv.Kind
	if len(n.Args) == 1 {
		if rp, ok := n.Args[0].Value.Cell().Type().(*types.Primitive); ok {
			rhsKind = widestNumeric(recv.Kind, rp.Kind)
		}
	}
	n.Cell().SetType(types.Prim(rhsKind))
}

func widestNumeric(a, b types.PrimitiveKind) types.PrimitiveKind {
	rank := map[types.PrimitiveKind]int{
		types.KindInt8: 1, types.KindInt16: 2, types.KindInt32: 3, types.KindInt64: 4,
		types.KindFloat32: 5, types.KindFloat64: 6,
	}
	ra, oka := rank[a]
	rb, okb := rank[b]
	if !oka {
		return b
	}
	if !okb {
		return a
	}
	if ra >= rb {
		return a
	}
	return b
}

func classOfType(t types.Type) *types.Class {
	switch v := t.(type) {
	case *types.ClassInstance:
		return v.Class
	case *types.GenericInstance:
		return v.Class
	case *types.Metaclass:
		return v.Class
	}
	return nil
}

func (v *Visitor) argTypes(n *ast.Call) []types.Type {
	ts := make([]types.Type, len(n.Args))
	for i, a := range n.Args {
		ts[i] = a.Value.Cell().Type()
	}
	return ts
}

func (v *Visitor) candidatesFor(methods []*types.Method) []resolver.Candidate {
	cands := make([]resolver.Candidate, 0, len(methods))
	for _, m := range methods {
		if def := v.Reg.DefFor(m); def != nil {
			cands = append(cands, resolver.Candidate{Method: m, Def: def})
		}
	}
	return cands
}

// bindArgDefaults binds a call's supplied arguments to the resolved
// Def's parameter cells directly, so the callee's param types narrow
// to exactly this call site's argument types in addition to whatever
// the Def's own restriction declared.
func (v *Visitor) bindArgDefaults(n *ast.Call, def *ast.Def) {
	for i, a := range n.Args {
		if i >= len(def.Params) {
			break
		}
		def.Params[i].Cell().BindTo(a.Value.Cell())
	}
}

// maxInferDepth bounds how many Defs may be mid-inference on the
// visitor's own call stack at once — a direct or mutually recursive
// method with no base case (spec.md §7's "Recursion without base case")
// would otherwise recurse through inferDefInContext -> visitDef ->
// visitCall -> inferDefInContext forever, since a Def's own Cell stays
// nil (and so looks uninferred to every recursive call site) until its
// body finishes visiting.
const maxInferDepth = 256

// inferDefInContext re-visits a Def's body from a call site whose
// resolved Def still has an untyped return cell (the body was already
// visited once with its class); once that cell is typed, later calls
// reuse it via graph propagation rather than re-visiting the body. Guards against unbounded recursion (see
// maxInferDepth) by bailing to Nil once the visitor's own in-progress
// inference stack gets implausibly deep, rather than overflowing the
// Go call stack.
func (v *Visitor) inferDefInContext(def *ast.Def, class *types.Class) {
	if v.inferDepth >= maxInferDepth {
		v.errorf("%s: recursion without base case inferring %q (depth limit %d exceeded)", def.Pos(), def.Name, maxInferDepth)
		def.Cell().SetType(types.Prim(types.KindNil))
		return
	}
	v.inferDepth++
	outerClass, outerDef := v.class, v.classDef
	v.class = class
	v.visitDef(def)
	v.class, v.classDef = outerClass, outerDef
	v.inferDepth--
}

// bindCallBlock binds a call's attached block's parameter cells to the
// declaring Def's block-signature parameter, the function-type
// restriction written as `blk : (Int32) -> Int32` — the first Param
// carrying a non-nil BlockSig is the block-parameter slot.
func (v *Visitor) bindCallBlock(block *ast.Block, def *ast.Def) {
	for _, p := range def.Params {
		if p.BlockSig == nil {
			continue
		}
		cells := make([]*graph.Cell, 0, len(p.BlockSig.Args))
		for _, argRef := range p.BlockSig.Args {
			t, err := v.resolveTypeRef(argRef)
			if err != nil {
				continue
			}
			c := graph.NewCell()
			c.SetType(t)
			cells = append(cells, c)
		}
		bindBlockParams(block, cells)
		v.pendingYield = block.Cell()
		return
	}
}

func blockSigOf(b *ast.Block) string {
	if b == nil {
		return ""
	}
	sig := ""
	for i, p := range b.Params {
		if i > 0 {
			sig += ","
		}
		sig += p.Name
	}
	return sig
}
