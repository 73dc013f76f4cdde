// Package resolver implements overload resolution and generic
// instantiation caching for method calls: filtering candidate Methods
// by subtype-matching their declared parameter restrictions, ranking
// surviving candidates by distance, expanding Hierarchy receivers into
// a virtual-dispatch fan-out, and mangling the winning overload's name.
package resolver

import (
	"fmt"

	"github.com/vesperlang/vesper/internal/ast"
	"github.com/vesperlang/vesper/internal/registry"
	"github.com/vesperlang/vesper/internal/types"
)

// Resolver resolves call sites against a Registry's declared methods.
// It caches generic instantiations keyed by (owner, method name,
// argument types, block signature) so repeated calls with the same concrete type tuple
// reuse one inferred instantiation rather than re-deriving it.
type Resolver struct {
	reg   *registry.Registry
	cache map[string]*Instantiation
}

// Instantiation is one cached resolution of a generic method against a
// concrete argument-type tuple.
type Instantiation struct {
	Method   *types.Method
	Def      *ast.Def
	ArgTypes []types.Type
}

// New creates a Resolver bound to reg.
func New(reg *registry.Registry) *Resolver {
	return &Resolver{reg: reg, cache: make(map[string]*Instantiation)}
}

// Candidate pairs a registered Method with the Def carrying its body
// and parameter restrictions, since types.Method alone doesn't carry
// AST-level parameter info.
type Candidate struct {
	Method *types.Method
	Def    *ast.Def
}

// Resolve ranks candidates against argTypes (the already-inferred
// types of the call's arguments) by SignatureDistance, returning the
// single best match. When receiver is a Hierarchy, callers should
// invoke Resolve once per concrete subclass in the hierarchy's closure
// and union the results (virtual dispatch), rather than passing the
// Hierarchy type itself into a candidate's restriction match.
//
// blockSig is accepted for callers that want to fold it into their own
// instantiation-cache key (see CacheKey); plain overload ranking here
// does not vary by it.
func Resolve(candidates []Candidate, argTypes []types.Type, blockSig string) (*Candidate, error) {
	best := -1
	bestDist := -1
	ambiguous := false

	for i, c := range candidates {
		dist := SignatureDistance(argTypes, c.Def.Params)
		if dist < 0 {
			continue
		}
		if best == -1 || dist < bestDist {
			best = i
			bestDist = dist
			ambiguous = false
		} else if dist == bestDist {
			ambiguous = true
		}
	}

	if best == -1 {
		return nil, fmt.Errorf("no overload accepts the given argument types")
	}
	if ambiguous {
		return nil, fmt.Errorf("ambiguous call: more than one overload matches equally well")
	}
	return &candidates[best], nil
}

// SignatureDistance scores how well argTypes match params: 0 for an
// exact restriction match, 1 for a subtype match, and -1 when a
// required parameter has no compatible argument. An unrestricted
// parameter (no declared type) always matches at distance 1, same as
// an implicit widening conversion, since it imposes no constraint to
// exactly satisfy. A parameter carrying a BlockSig is the block slot
// and takes no positional argument.
func SignatureDistance(argTypes []types.Type, allParams []*ast.Param) int {
	params := make([]*ast.Param, 0, len(allParams))
	for _, p := range allParams {
		if p.BlockSig == nil {
			params = append(params, p)
		}
	}
	required := 0
	for _, p := range params {
		if p.Default == nil {
			required++
		}
	}
	if len(argTypes) < required || len(argTypes) > len(params) {
		return -1
	}

	total := 0
	for i, arg := range argTypes {
		if i >= len(params) {
			return -1
		}
		p := params[i]
		if p.Restriction == nil {
			total++
			continue
		}
		restrictionType := p.Restriction.Cell().Type()
		if restrictionType == nil {
			total++
			continue
		}
		if arg.Identical(restrictionType) {
			continue
		}
		if types.Subtype(arg, restrictionType) {
			total++
			continue
		}
		return -1
	}
	return total
}

// ExpandHierarchy returns receiverType unchanged unless it is a
// Hierarchy, in which case it returns one ClassInstance per concrete
// subclass in the hierarchy's closure — the fan-out a virtual call
// dispatches across (Data Model invariant 3: a Hierarchy receiver
// resolves to the union of each concrete subclass's own resolution).
func ExpandHierarchy(t types.Type) []types.Type {
	h, ok := t.(*types.Hierarchy)
	if !ok {
		return []types.Type{t}
	}
	var out []types.Type
	var walk func(c *types.Class)
	walk = func(c *types.Class) {
		if !c.Abstract {
			out = append(out, &types.ClassInstance{Class: c})
		}
		for _, s := range c.Subclasses {
			walk(s)
		}
	}
	walk(h.Class)
	if len(out) == 0 {
		out = append(out, &types.ClassInstance{Class: h.Class})
	}
	return out
}

// CacheKey builds the instantiation-cache key for a generic method call
// from its owner type, method name, argument types, and block signature
// (empty string when the call has no block). The owner/name/args
// portion is exactly types.MangleMethod's stable mangled form (receiver
// self is the same as owner for an instance call, return type is not
// yet known at call-resolution time so it's left out of the tuple) —
// the cache key and a code generator's symbol name are built from the
// same mangling so the two never drift apart.
func CacheKey(owner types.Type, name string, argTypes []types.Type, blockSig string) string {
	key := types.MangleMethod(owner, name, owner, argTypes, nil)
	if blockSig != "" {
		key += "{" + blockSig + "}"
	}
	return key
}

// Lookup returns a cached instantiation for key, if one exists.
func (r *Resolver) Lookup(key string) (*Instantiation, bool) {
	inst, ok := r.cache[key]
	return inst, ok
}

// Store records a resolved instantiation under key for reuse by later
// calls with the identical (owner, name, arg-types, block-sig) tuple.
func (r *Resolver) Store(key string, inst *Instantiation) {
	r.cache[key] = inst
}
