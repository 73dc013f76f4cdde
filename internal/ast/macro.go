package ast

import "github.com/vesperlang/vesper/internal/lexer"

// Macro is a `macro name(params) \n body \n end` definition, or a
// `{{ expr }}`/`{% stmt %}` macro expression at a use site. Macro
// carries its raw source text rather than a type cell. The parser never
// constructs a Macro and no pass expands macro bodies, so the inference
// visitor never sees one.
type Macro struct {
	Position lexer.Position
	Name     string
	Raw      string
}

func (m *Macro) Pos() lexer.Position { return m.Position }
func (m *Macro) String() string      { return "macro " + m.Name }
