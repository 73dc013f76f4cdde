package types

import "testing"

func classHierarchy() (animal, dog, cat *Class) {
	animal = &Class{Name: "Animal", Abstract: true, Methods: map[string][]*Method{}, InstanceVars: map[string]*InstanceVarCell{}}
	dog = &Class{Name: "Dog", Super: animal, Methods: map[string][]*Method{}, InstanceVars: map[string]*InstanceVarCell{}}
	cat = &Class{Name: "Cat", Super: animal, Methods: map[string][]*Method{}, InstanceVars: map[string]*InstanceVarCell{}}
	animal.Subclasses = []*Class{dog, cat}
	return
}

func TestMergeSingleType(t *testing.T) {
	got := Merge([]Type{Prim(KindInt32)})
	if !got.Identical(Prim(KindInt32)) {
		t.Fatalf("expected Int32, got %s", got.String())
	}
}

func TestMergeDropsDuplicates(t *testing.T) {
	got := Merge([]Type{Prim(KindInt32), Prim(KindInt32)})
	if _, ok := got.(*Primitive); !ok {
		t.Fatalf("expected a single Primitive, got %T", got)
	}
}

func TestMergeCollapsesToHierarchy(t *testing.T) {
	_, dog, cat := classHierarchy()
	got := Merge([]Type{&ClassInstance{Class: dog}, &ClassInstance{Class: cat}})
	h, ok := got.(*Hierarchy)
	if !ok {
		t.Fatalf("expected Hierarchy, got %T (%s)", got, got.String())
	}
	if h.Class.Name != "Animal" {
		t.Fatalf("expected Hierarchy(Animal), got Hierarchy(%s)", h.Class.Name)
	}
}

func TestMergePartialSubsetStaysUnion(t *testing.T) {
	_, dog, _ := classHierarchy()
	// Only Dog present, not the full Animal closure (Cat missing) — must
	// not collapse since the union isn't the whole hierarchy.
	got := Merge([]Type{&ClassInstance{Class: dog}, Prim(KindString)})
	u, ok := got.(*Union)
	if !ok {
		t.Fatalf("expected Union, got %T", got)
	}
	if len(u.Members) != 2 {
		t.Fatalf("expected 2 members, got %d", len(u.Members))
	}
}

func TestMergeUnrelatedTypesStaysUnion(t *testing.T) {
	got := Merge([]Type{Prim(KindInt32), Prim(KindString)})
	if _, ok := got.(*Union); !ok {
		t.Fatalf("expected Union, got %T", got)
	}
}

func TestSubtypeIdentity(t *testing.T) {
	if !Subtype(Prim(KindInt32), Prim(KindInt32)) {
		t.Fatal("expected Int32 subtype of itself")
	}
}

func TestSubtypeClassInstance(t *testing.T) {
	animal, dog, _ := classHierarchy()
	if !Subtype(&ClassInstance{Class: dog}, &ClassInstance{Class: animal}) {
		t.Fatal("expected Dog to be a subtype of Animal")
	}
	if Subtype(&ClassInstance{Class: animal}, &ClassInstance{Class: dog}) {
		t.Fatal("did not expect Animal to be a subtype of Dog")
	}
}

func TestSubtypeHierarchy(t *testing.T) {
	animal, dog, _ := classHierarchy()
	h := &Hierarchy{Class: animal}
	if !Subtype(&ClassInstance{Class: dog}, h) {
		t.Fatal("expected Dog to be a subtype of Hierarchy(Animal)")
	}
	if Subtype(Prim(KindString), h) {
		t.Fatal("did not expect String to be a subtype of Hierarchy(Animal)")
	}
}

func TestSubtypeUnionOnRight(t *testing.T) {
	u := &Union{Members: []Type{Prim(KindInt32), Prim(KindString)}}
	if !Subtype(Prim(KindString), u) {
		t.Fatal("expected String to be a subtype of (Int32 | String)")
	}
	if Subtype(Prim(KindBool), u) {
		t.Fatal("did not expect Bool to be a subtype of (Int32 | String)")
	}
}

func TestSubtypeUnionOnLeft(t *testing.T) {
	u := &Union{Members: []Type{Prim(KindInt32), Prim(KindString)}}
	// every member of the left-hand union must itself be a subtype of b
	if !Subtype(u, u) {
		t.Fatal("expected a union to be a subtype of an identical union")
	}
}
