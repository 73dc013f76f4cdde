package registry

import (
	"testing"

	"github.com/vesperlang/vesper/internal/ast"
	"github.com/vesperlang/vesper/internal/lexer"
	"github.com/vesperlang/vesper/internal/types"
)

func writersFor(class *types.Class, name string) map[*types.Class]map[string]bool {
	return map[*types.Class]map[string]bool{class: {name: true}}
}

func classDef(name string, super string) *ast.ClassDef {
	var superRef *ast.TypeRef
	if super != "" {
		superRef = ast.NewTypeRef(lexer.Position{}, super, nil, nil)
	}
	return ast.NewClassDef(lexer.Position{}, name, superRef, false, false, nil, nil)
}

func TestSeedBuiltins(t *testing.T) {
	r := New()
	if r.Object() == nil || r.Object().Name != "Object" {
		t.Fatal("expected a seeded Object class")
	}
	if r.Exception() == nil || r.Exception().Super != r.Object() {
		t.Fatal("expected Exception to descend from Object")
	}
	found := false
	for _, sub := range r.Object().Subclasses {
		if sub == r.Exception() {
			found = true
		}
	}
	if !found {
		t.Fatal("expected Object.Subclasses to include Exception")
	}
}

func TestDeclareDefaultsSuperToObject(t *testing.T) {
	r := New()
	_, class, err := r.Declare(nil, classDef("Foo", ""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if class.Super != r.Object() {
		t.Fatalf("expected Foo's super to default to Object, got %v", class.Super)
	}
}

func TestDeclareExplicitSuper(t *testing.T) {
	r := New()
	_, animal, _ := r.Declare(nil, classDef("Animal", ""))
	_, dog, err := r.Declare(nil, classDef("Dog", "Animal"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dog.Super != animal {
		t.Fatal("expected Dog's super to be Animal")
	}
	found := false
	for _, s := range animal.Subclasses {
		if s == dog {
			found = true
		}
	}
	if !found {
		t.Fatal("expected Animal.Subclasses to include Dog")
	}
}

func TestDeclareDuplicateNameErrors(t *testing.T) {
	r := New()
	if _, _, err := r.Declare(nil, classDef("Foo", "")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, _, err := r.Declare(nil, classDef("Foo", "")); err == nil {
		t.Fatal("expected an error declaring Foo twice")
	}
}

func TestResolveClassQualified(t *testing.T) {
	r := New()
	outerScope, _, err := r.Declare(nil, classDef("Outer", ""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, inner, err := r.Declare(outerScope, classDef("Inner", ""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := r.ResolveClass(r.Root(), "Outer::Inner")
	if err != nil {
		t.Fatalf("unexpected error resolving Outer::Inner: %v", err)
	}
	if got != inner {
		t.Fatalf("expected to resolve Inner, got %v", got)
	}
}

func TestResolveClassUndeclaredErrors(t *testing.T) {
	r := New()
	if _, err := r.ResolveClass(r.Root(), "Nope"); err == nil {
		t.Fatal("expected an error resolving an undeclared class")
	}
}

func TestRegisterMethodAndDefFor(t *testing.T) {
	r := New()
	_, class, _ := r.Declare(nil, classDef("Foo", ""))
	def := ast.NewDef(lexer.Position{}, "bar", nil, nil, nil, false)
	m := r.RegisterMethod(class, nil, def)

	if got := r.DefFor(m); got != def {
		t.Fatalf("expected DefFor to return the original Def, got %v", got)
	}
	if len(class.Methods["bar"]) != 1 {
		t.Fatalf("expected one registered overload of bar, got %d", len(class.Methods["bar"]))
	}
}

func TestLookupMethodWalksSuperChain(t *testing.T) {
	r := New()
	_, animal, _ := r.Declare(nil, classDef("Animal", ""))
	_, dog, _ := r.Declare(nil, classDef("Dog", "Animal"))
	def := ast.NewDef(lexer.Position{}, "speak", nil, nil, nil, false)
	r.RegisterMethod(animal, nil, def)

	methods, owner := r.LookupMethod(dog, "speak")
	if owner != animal {
		t.Fatalf("expected speak to resolve on Animal, got %v", owner)
	}
	if len(methods) != 1 {
		t.Fatalf("expected 1 method, got %d", len(methods))
	}
}

func TestHoistInstanceVarWriteBased(t *testing.T) {
	r := New()
	_, animal, _ := r.Declare(nil, classDef("Animal", ""))
	_, dog, _ := r.Declare(nil, classDef("Dog", "Animal"))

	owner := HoistInstanceVar(dog, "name", writersFor(dog, "name"))
	if owner != dog {
		t.Fatalf("expected Dog to own @name since only Dog writes it, got %v", owner.Name)
	}

	owner2 := HoistInstanceVar(dog, "name", writersFor(animal, "name"))
	if owner2 != animal {
		t.Fatalf("expected Animal to own @name since Animal writes it, got %v", owner2.Name)
	}
}

func TestHasWritingDescendant(t *testing.T) {
	r := New()
	_, animal, _ := r.Declare(nil, classDef("Animal", ""))
	_, dog, _ := r.Declare(nil, classDef("Dog", "Animal"))
	_, puppy, _ := r.Declare(nil, classDef("Puppy", "Dog"))

	if HasWritingDescendant(animal, "name", nil) {
		t.Fatal("expected no writing descendant with an empty writers map")
	}
	if !HasWritingDescendant(animal, "name", writersFor(dog, "name")) {
		t.Fatal("expected Dog (a direct subclass) to count as a writing descendant")
	}
	if !HasWritingDescendant(animal, "name", writersFor(puppy, "name")) {
		t.Fatal("expected Puppy (a transitive subclass) to count as a writing descendant")
	}
	if HasWritingDescendant(dog, "name", writersFor(animal, "name")) {
		t.Fatal("Animal is an ancestor of Dog, not a descendant — should not count")
	}
}
