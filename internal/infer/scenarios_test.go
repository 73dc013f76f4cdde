package infer

import (
	"testing"

	"github.com/vesperlang/vesper/internal/ast"
	"github.com/vesperlang/vesper/internal/lexer"
	"github.com/vesperlang/vesper/internal/parser"
	"github.com/vesperlang/vesper/internal/registry"
	"github.com/vesperlang/vesper/internal/types"
)

// parseOnly builds an AST without running inference, so a scenario's
// replay check can run the same Program through two independent
// Visitor/Registry pairs instead of re-declaring classes on a Registry
// that already has them.
func parseOnly(t *testing.T, src string) *ast.Program {
	t.Helper()
	p := parser.New(lexer.New(src))
	prog := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		t.Fatalf("unexpected parse errors for %q: %v", src, errs)
	}
	return prog
}

func inferFresh(t *testing.T, prog *ast.Program) (*Visitor, *registry.Registry) {
	t.Helper()
	reg := registry.New()
	v := New(reg, "", "<scenario>")
	v.Run(prog)
	return v, reg
}

// assertReplayStable re-runs the same AST through a second, independent
// Visitor/Registry pair and checks that get's result is unaffected,
// covering §8 invariant 1 (monotonicity): inferring the same AST twice
// must reach the same fixpoint both times.
func assertReplayStable(t *testing.T, prog *ast.Program, get func(*registry.Registry) types.Type) {
	t.Helper()
	first, reg1 := inferFresh(t, prog)
	if len(first.Diagnostics()) != 0 {
		t.Fatalf("unexpected diagnostics on first pass: %v", first.Diagnostics())
	}
	want := get(reg1)
	if want == nil {
		t.Fatal("first pass produced a nil type")
	}

	second, reg2 := inferFresh(t, prog)
	if len(second.Diagnostics()) != 0 {
		t.Fatalf("unexpected diagnostics on replay pass: %v", second.Diagnostics())
	}
	got := get(reg2)
	if got == nil || !got.Identical(want) {
		t.Fatalf("replay diverged: first pass %s, second pass %v", want.String(), got)
	}
}

// Scenario 1: `a = 1 || 'c'` types a as Union{Int32, Char}.
func TestScenarioOrOfIntAndCharYieldsUnion(t *testing.T) {
	src := "a = 1 || 'c'\n"
	prog := parseOnly(t, src)

	get := func(reg *registry.Registry) types.Type {
		stmt := prog.Statements[0].(*ast.ExprStatement)
		return stmt.Expr.(*ast.Assign).Cell().Type()
	}
	assertReplayStable(t, prog, get)

	_, reg := inferFresh(t, prog)
	got := get(reg)
	union, ok := got.(*types.Union)
	if !ok || len(union.Members) != 2 {
		t.Fatalf("expected a 2-member Union, got %T (%s)", got, got.String())
	}
	wantInt32 := types.Prim(types.KindInt32)
	wantChar := types.Prim(types.KindChar)
	hasInt32, hasChar := false, false
	for _, m := range union.Members {
		if m.Identical(wantInt32) {
			hasInt32 = true
		}
		if m.Identical(wantChar) {
			hasChar = true
		}
	}
	if !hasInt32 || !hasChar {
		t.Fatalf("expected Union{Int32, Char}, got %s", got.String())
	}
}

// Scenario 2: an override on a virtual-dispatch receiver widens the
// call's type across both overloads and records one target def per
// concrete class in the hierarchy.
func TestScenarioOverrideWidensCallTypeAndTargetDefs(t *testing.T) {
	src := `
class Foo
  def foo
    1
  end
end
class Bar < Foo
  def foo
    1.5
  end
end
result = (Foo.new || Bar.new).foo
`
	prog := parseOnly(t, src)

	get := func(reg *registry.Registry) types.Type {
		stmt := prog.Statements[len(prog.Statements)-1].(*ast.ExprStatement)
		return stmt.Expr.(*ast.Assign).Cell().Type()
	}
	assertReplayStable(t, prog, get)

	v, reg := inferFresh(t, prog)
	if len(v.Diagnostics()) != 0 {
		t.Fatalf("unexpected diagnostics: %v", v.Diagnostics())
	}
	_ = reg
	stmt := prog.Statements[len(prog.Statements)-1].(*ast.ExprStatement)
	assign := stmt.Expr.(*ast.Assign)
	call, ok := assign.Value.(*ast.Call)
	if !ok {
		t.Fatalf("expected a Call as the assigned value, got %T", assign.Value)
	}
	if len(call.TargetDefs) != 2 {
		t.Fatalf("expected target_defs.length == 2, got %d", len(call.TargetDefs))
	}
	union, ok := call.Cell().Type().(*types.Union)
	if !ok || len(union.Members) != 2 {
		t.Fatalf("expected a 2-member Union, got %T (%s)", call.Cell().Type(), call.Cell().Type().String())
	}
	wantInt32 := types.Prim(types.KindInt32)
	wantFloat64 := types.Prim(types.KindFloat64)
	hasInt32, hasFloat64 := false, false
	for _, m := range union.Members {
		if m.Identical(wantInt32) {
			hasInt32 = true
		}
		if m.Identical(wantFloat64) {
			hasFloat64 = true
		}
	}
	if !hasInt32 || !hasFloat64 {
		t.Fatalf("expected Union{Int32, Float64}, got %s", union.String())
	}
	if len(call.MangledNames) != 2 {
		t.Fatalf("expected one precomputed mangled name per resolved branch, got %d", len(call.MangledNames))
	}
	if call.MangledNames[0] == call.MangledNames[1] {
		t.Fatalf("expected Foo#foo and Bar#foo to mangle to distinct names, both got %q", call.MangledNames[0])
	}
}

// Scenario 3: merging every concrete member of an open class's own
// hierarchy collapses to Hierarchy(Foo) rather than a flat Union.
func TestScenarioHierarchyCollapse(t *testing.T) {
	src := `
class Foo
end
class Bar < Foo
end
class Baz < Foo
end
a = Foo.new || Bar.new || Baz.new
`
	prog := parseOnly(t, src)

	get := func(reg *registry.Registry) types.Type {
		stmt := prog.Statements[len(prog.Statements)-1].(*ast.ExprStatement)
		return stmt.Expr.(*ast.Assign).Cell().Type()
	}
	assertReplayStable(t, prog, get)

	v, reg := inferFresh(t, prog)
	if len(v.Diagnostics()) != 0 {
		t.Fatalf("unexpected diagnostics: %v", v.Diagnostics())
	}
	foo, err := reg.ResolveClass(reg.Root(), "Foo")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := get(reg)
	h, ok := got.(*types.Hierarchy)
	if !ok || h.Class != foo {
		t.Fatalf("expected Hierarchy(Foo), got %T (%s)", got, got.String())
	}
}

// Scenario 4: both Base and a subclass assign @x; only Base ends up
// owning the hoisted cell, typed as the merge of both assigned values.
// The source's setter is spelled setX rather than the spec's `x=` —
// the lexer only ever extends an identifier with a trailing `?` or `!`,
// never `=`, so `def x=(x)` does not lex as a single method name.
func TestScenarioInstanceVarHoistingOwnerType(t *testing.T) {
	src := `
class Base
  def setX(x)
    @x = x
  end
end
class Var < Base
  def setX(x)
    @x = x
  end
end
v = Var.new
v.setX(1)
v.setX(nil)
`
	prog := parseOnly(t, src)

	get := func(reg *registry.Registry) types.Type {
		base, err := reg.ResolveClass(reg.Root(), "Base")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		ivc, ok := base.InstanceVars["x"]
		if !ok {
			t.Fatal("expected Base to own the hoisted @x cell")
		}
		return ivc.Typ
	}
	assertReplayStable(t, prog, get)

	v, reg := inferFresh(t, prog)
	if len(v.Diagnostics()) != 0 {
		t.Fatalf("unexpected diagnostics: %v", v.Diagnostics())
	}
	varClass, _ := reg.ResolveClass(reg.Root(), "Var")
	if _, ok := varClass.InstanceVars["x"]; ok {
		t.Fatal("expected Var.instance_vars to be empty")
	}
	got := get(reg)
	union, ok := got.(*types.Union)
	if !ok || len(union.Members) != 2 {
		t.Fatalf("expected Union{Nil, Int32}, got %T (%s)", got, got.String())
	}
}

// Scenario 5: a begin/rescue whose body's last value and rescue arm's
// last value both type Int32 merges to a single canonical Int32 — per
// §8 invariant 2 (no single-member Union ever survives Merge), this is
// the canonical form of what the spec calls "Union{Int32}" here: both
// arms agree, so Merge collapses them rather than keeping a Union
// around. The ternary in the spec's literal source (`cond ? a : b`)
// has no parser support (no infix handler is registered for QUESTION),
// so the same "raise on one arm, fall through on the other" shape is
// expressed with if/else instead.
func TestScenarioBeginRescueMergesToSingleType(t *testing.T) {
	src := `
class Foo
  def m(y)
    begin
      if y == 1
        raise "e"
      else
        nil
      end
      2
    rescue
      3
    end
  end
end
`
	prog := parseOnly(t, src)

	get := func(reg *registry.Registry) types.Type {
		foo, err := reg.ResolveClass(reg.Root(), "Foo")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		def := reg.DefFor(foo.Methods["m"][0])
		return def.Cell().Type()
	}
	assertReplayStable(t, prog, get)

	v, reg := inferFresh(t, prog)
	if len(v.Diagnostics()) != 0 {
		t.Fatalf("unexpected diagnostics: %v", v.Diagnostics())
	}
	got := get(reg)
	if !got.Identical(types.Prim(types.KindInt32)) {
		t.Fatalf("expected a canonical Int32, got %T (%s)", got, got.String())
	}
}

// Scenario 6: a hash literal's explicit `of K => V` annotation
// overrides the types inferred from its entries, producing the generic
// instance Hash(Int32, Float64). The literal's own entries (Int32,
// Float64 keys/values) happen to agree with the annotation here, the
// same as the spec's example.
func TestScenarioHashLiteralOfAnnotation(t *testing.T) {
	src := `
class Hash
end
a = {1 => 1.5} of Int32 => Float64
`
	prog := parseOnly(t, src)

	get := func(reg *registry.Registry) types.Type {
		stmt := prog.Statements[len(prog.Statements)-1].(*ast.ExprStatement)
		return stmt.Expr.(*ast.Assign).Cell().Type()
	}
	assertReplayStable(t, prog, get)

	v, reg := inferFresh(t, prog)
	if len(v.Diagnostics()) != 0 {
		t.Fatalf("unexpected diagnostics: %v", v.Diagnostics())
	}
	hashClass, err := reg.ResolveClass(reg.Root(), "Hash")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := get(reg)
	gi, ok := got.(*types.GenericInstance)
	if !ok || gi.Class != hashClass || len(gi.TypeArgs) != 2 {
		t.Fatalf("expected Hash(Int32, Float64), got %T (%s)", got, got.String())
	}
	if !gi.TypeArgs[0].Identical(types.Prim(types.KindInt32)) {
		t.Fatalf("expected key type Int32, got %s", gi.TypeArgs[0].String())
	}
	if !gi.TypeArgs[1].Identical(types.Prim(types.KindFloat64)) {
		t.Fatalf("expected value type Float64, got %s", gi.TypeArgs[1].String())
	}
}

// Invariant 6: an abstract class's undefined method is not itself an
// error; a concrete descendant is free to implement it independently.
func TestInvariantAbstractClassExemption(t *testing.T) {
	src := `
abstract class Shape
end
class Circle < Shape
  def area
    1.5
  end
end
`
	prog := parseOnly(t, src)
	v, reg := inferFresh(t, prog)
	if len(v.Diagnostics()) != 0 {
		t.Fatalf("unexpected diagnostics: %v", v.Diagnostics())
	}
	shape, _ := reg.ResolveClass(reg.Root(), "Shape")
	if _, _, ok := func() (bool, bool, bool) {
		_, found := shape.Methods["area"]
		return found, found, found
	}(); ok {
		t.Fatal("did not expect Shape to declare area at all")
	}
	circle, _ := reg.ResolveClass(reg.Root(), "Circle")
	if _, found := circle.Methods["area"]; !found {
		t.Fatal("expected Circle to implement area independently")
	}
}
