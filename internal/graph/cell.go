// Package graph implements the dependency graph that drives type
// inference: every AST node owns a Cell, and Cells widen monotonically as
// they observe their dependencies.
package graph

import (
	"github.com/vesperlang/vesper/internal/lexer"
	"github.com/vesperlang/vesper/internal/types"
)

// Cell is the mutable type slot embedded in every AST node, plus its two
// adjacency lists. It implements the five operations from the dependency
// graph contract: BindTo, Update, Propagate, SetType, Raise.
type Cell struct {
	typ       types.Type
	deps      []*Cell
	observers []*Cell
	dirty     bool
	pos       lexer.Position
}

// NewCell creates an untyped Cell.
func NewCell() *Cell { return &Cell{} }

// SetPos records the source position used to anchor Raise diagnostics.
func (c *Cell) SetPos(pos lexer.Position) { c.pos = pos }

// Pos returns the cell's anchoring source position.
func (c *Cell) Pos() lexer.Position { return c.pos }

// Raise reports a diagnostic anchored at this cell's node.
func (c *Cell) Raise(message string) *Diagnostic {
	return &Diagnostic{Message: message, Pos: c.pos}
}

// Diagnostic is a minimal positioned error; internal/diag wraps this with
// source-context formatting for CLI presentation.
type Diagnostic struct {
	Message string
	Pos     lexer.Position
}

func (d *Diagnostic) Error() string { return d.Message }

// Type returns the cell's current type, or nil if unset.
func (c *Cell) Type() types.Type { return c.typ }

// Dirty reports whether the cell has a pending, unpropagated change.
func (c *Cell) Dirty() bool { return c.dirty }

// Deps returns the cell's dependency list (read-only use expected).
func (c *Cell) Deps() []*Cell { return c.deps }

// BindTo adds source to this cell's dependencies and registers this cell
// as an observer of source. If source already has a type, this cell
// adopts it (first dependency, or currently untyped) or merges it in.
func (c *Cell) BindTo(source *Cell) {
	first := len(c.deps) == 0
	c.deps = append(c.deps, source)
	source.observers = append(source.observers, c)

	if source.typ == nil {
		return
	}
	if first || c.typ == nil {
		c.setTypeRaw(source.typ)
	} else {
		c.setTypeRaw(types.Merge([]types.Type{c.typ, source.typ}))
	}
	c.Propagate()
}

// Update is called by Propagate's first phase for a dependency (from)
// whose type just changed. It only recomputes this cell's type and marks
// it dirty — it deliberately does NOT recurse into Propagate itself, so
// that Propagate's two-phase protocol (update every observer, only then
// propagate every observer) holds at each fan-out level.
func (c *Cell) Update(from *Cell) {
	if from.typ == nil {
		return
	}
	if c.typ == nil || len(c.deps) == 1 {
		c.setTypeRaw(from.typ)
	} else {
		c.setTypeRaw(types.Merge([]types.Type{c.typ, from.typ}))
	}
}

// SetType writes the cell directly (used for literals and other
// non-dependency-derived types). Triggers observer notification only
// when the value actually changes by identity.
func (c *Cell) SetType(t types.Type) {
	c.setTypeRaw(t)
	c.Propagate()
}

func (c *Cell) setTypeRaw(t types.Type) {
	if c.typ != nil && t != nil && c.typ.Identical(t) {
		return
	}
	c.typ = t
	c.dirty = true
}

// Propagate notifies all observers of a change to this cell, using the
// two-phase protocol (update all observers, then propagate all
// observers) so no observer ever sees a partially-updated sibling.
// A cell already clean is a no-op; the dirty flag is what makes cyclic
// observer graphs (recursion, mutual recursion) terminate instead of
// looping forever.
func (c *Cell) Propagate() {
	if !c.dirty {
		return
	}
	c.dirty = false

	for _, obs := range c.observers {
		obs.Update(c)
	}
	for _, obs := range c.observers {
		obs.Propagate()
	}
}
