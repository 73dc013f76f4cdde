package resolver

import (
	"testing"

	"github.com/vesperlang/vesper/internal/ast"
	"github.com/vesperlang/vesper/internal/lexer"
	"github.com/vesperlang/vesper/internal/types"
)

func typedParam(name string, t types.Type) *ast.Param {
	p := ast.NewParam(lexer.Position{}, name, ast.NewTypeRef(lexer.Position{}, name+"Type", nil, nil), nil, false, nil)
	p.Restriction.Cell().SetType(t)
	return p
}

func unrestrictedParam(name string) *ast.Param {
	return ast.NewParam(lexer.Position{}, name, nil, nil, false, nil)
}

func TestSignatureDistanceExactMatch(t *testing.T) {
	params := []*ast.Param{typedParam("x", types.Prim(types.KindInt32))}
	dist := SignatureDistance([]types.Type{types.Prim(types.KindInt32)}, params)
	if dist != 0 {
		t.Fatalf("expected distance 0 for an exact match, got %d", dist)
	}
}

func TestSignatureDistanceSubtypeMatch(t *testing.T) {
	animal := &types.Class{Name: "Animal", Methods: map[string][]*types.Method{}, InstanceVars: map[string]*types.InstanceVarCell{}}
	dog := &types.Class{Name: "Dog", Super: animal, Methods: map[string][]*types.Method{}, InstanceVars: map[string]*types.InstanceVarCell{}}
	animal.Subclasses = []*types.Class{dog}

	params := []*ast.Param{typedParam("a", &types.ClassInstance{Class: animal})}
	dist := SignatureDistance([]types.Type{&types.ClassInstance{Class: dog}}, params)
	if dist != 1 {
		t.Fatalf("expected distance 1 for a subtype match, got %d", dist)
	}
}

func TestSignatureDistanceNoMatch(t *testing.T) {
	params := []*ast.Param{typedParam("x", types.Prim(types.KindInt32))}
	dist := SignatureDistance([]types.Type{types.Prim(types.KindString)}, params)
	if dist != -1 {
		t.Fatalf("expected -1 for an incompatible argument, got %d", dist)
	}
}

func TestSignatureDistanceUnrestrictedParam(t *testing.T) {
	params := []*ast.Param{unrestrictedParam("x")}
	dist := SignatureDistance([]types.Type{types.Prim(types.KindString)}, params)
	if dist != 1 {
		t.Fatalf("expected distance 1 for an unrestricted param, got %d", dist)
	}
}

func TestSignatureDistanceArityMismatch(t *testing.T) {
	params := []*ast.Param{typedParam("x", types.Prim(types.KindInt32))}
	if dist := SignatureDistance(nil, params); dist != -1 {
		t.Fatalf("expected -1 for too few arguments, got %d", dist)
	}
	if dist := SignatureDistance([]types.Type{types.Prim(types.KindInt32), types.Prim(types.KindInt32)}, params); dist != -1 {
		t.Fatalf("expected -1 for too many arguments, got %d", dist)
	}
}

func TestResolvePicksLowestDistance(t *testing.T) {
	animal := &types.Class{Name: "Animal", Methods: map[string][]*types.Method{}, InstanceVars: map[string]*types.InstanceVarCell{}}
	dog := &types.Class{Name: "Dog", Super: animal, Methods: map[string][]*types.Method{}, InstanceVars: map[string]*types.InstanceVarCell{}}
	animal.Subclasses = []*types.Class{dog}

	exact := Candidate{Method: &types.Method{Name: "speak"}, Def: ast.NewDef(lexer.Position{}, "speak", []*ast.Param{typedParam("a", &types.ClassInstance{Class: dog})}, nil, nil, false)}
	wide := Candidate{Method: &types.Method{Name: "speak"}, Def: ast.NewDef(lexer.Position{}, "speak", []*ast.Param{typedParam("a", &types.ClassInstance{Class: animal})}, nil, nil, false)}

	best, err := Resolve([]Candidate{wide, exact}, []types.Type{&types.ClassInstance{Class: dog}}, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if best.Def != exact.Def {
		t.Fatal("expected the exact-match overload to win over the wider one")
	}
}

func TestResolveAmbiguous(t *testing.T) {
	a := Candidate{Method: &types.Method{Name: "f"}, Def: ast.NewDef(lexer.Position{}, "f", []*ast.Param{unrestrictedParam("x")}, nil, nil, false)}
	b := Candidate{Method: &types.Method{Name: "f"}, Def: ast.NewDef(lexer.Position{}, "f", []*ast.Param{unrestrictedParam("y")}, nil, nil, false)}

	_, err := Resolve([]Candidate{a, b}, []types.Type{types.Prim(types.KindInt32)}, "")
	if err == nil {
		t.Fatal("expected an ambiguous-call error")
	}
}

func TestResolveNoMatch(t *testing.T) {
	params := []*ast.Param{typedParam("x", types.Prim(types.KindInt32))}
	cand := Candidate{Method: &types.Method{Name: "f"}, Def: ast.NewDef(lexer.Position{}, "f", params, nil, nil, false)}
	_, err := Resolve([]Candidate{cand}, []types.Type{types.Prim(types.KindString)}, "")
	if err == nil {
		t.Fatal("expected a no-overload-matches error")
	}
}

func TestExpandHierarchyIncludesConcreteNonLeafAncestor(t *testing.T) {
	base := &types.Class{Name: "Base", Methods: map[string][]*types.Method{}, InstanceVars: map[string]*types.InstanceVarCell{}}
	mid := &types.Class{Name: "Mid", Super: base, Methods: map[string][]*types.Method{}, InstanceVars: map[string]*types.InstanceVarCell{}}
	leaf := &types.Class{Name: "Leaf", Super: mid, Methods: map[string][]*types.Method{}, InstanceVars: map[string]*types.InstanceVarCell{}}
	base.Subclasses = []*types.Class{mid}
	mid.Subclasses = []*types.Class{leaf}

	got := ExpandHierarchy(&types.Hierarchy{Class: base})
	if len(got) != 3 {
		t.Fatalf("expected 3 concrete classes (Base, Mid, Leaf), got %d", len(got))
	}
}

func TestExpandHierarchySkipsAbstractAncestor(t *testing.T) {
	base := &types.Class{Name: "Base", Abstract: true, Methods: map[string][]*types.Method{}, InstanceVars: map[string]*types.InstanceVarCell{}}
	dog := &types.Class{Name: "Dog", Super: base, Methods: map[string][]*types.Method{}, InstanceVars: map[string]*types.InstanceVarCell{}}
	cat := &types.Class{Name: "Cat", Super: base, Methods: map[string][]*types.Method{}, InstanceVars: map[string]*types.InstanceVarCell{}}
	base.Subclasses = []*types.Class{dog, cat}

	got := ExpandHierarchy(&types.Hierarchy{Class: base})
	if len(got) != 2 {
		t.Fatalf("expected 2 concrete classes (Dog, Cat), got %d", len(got))
	}
}

func TestExpandHierarchyNonHierarchyPassesThrough(t *testing.T) {
	got := ExpandHierarchy(types.Prim(types.KindInt32))
	if len(got) != 1 || !got[0].Identical(types.Prim(types.KindInt32)) {
		t.Fatalf("expected a single pass-through type, got %v", got)
	}
}

func TestCacheKeyDeterministic(t *testing.T) {
	owner := &types.ClassInstance{Class: &types.Class{Name: "Box"}}
	k1 := CacheKey(owner, "get", []types.Type{types.Prim(types.KindInt32)}, "")
	k2 := CacheKey(owner, "get", []types.Type{types.Prim(types.KindInt32)}, "")
	if k1 != k2 {
		t.Fatalf("expected identical cache keys, got %q vs %q", k1, k2)
	}
}

func TestResolverLookupStore(t *testing.T) {
	r := New(nil)
	inst := &Instantiation{Method: &types.Method{Name: "f"}}
	r.Store("key", inst)
	got, ok := r.Lookup("key")
	if !ok || got != inst {
		t.Fatal("expected Lookup to return the stored instantiation")
	}
	if _, ok := r.Lookup("missing"); ok {
		t.Fatal("expected Lookup to report a miss for an unstored key")
	}
}
