package types

// Merge computes the least upper bound of a non-empty set of types,
// following spec's ordered rules: drop duplicates by identity; if one
// remains, return it; if all remaining instance/generic types share a
// nearest common open superclass, collapse to Hierarchy; otherwise
// return a canonical Union.
func Merge(ts []Type) Type {
	if len(ts) == 0 {
		return nil
	}

	unique := make([]Type, 0, len(ts))
	for _, t := range ts {
		if t == nil {
			continue
		}
		flat := flatten(t)
		for _, f := range flat {
			if !containsIdentical(unique, f) {
				unique = append(unique, f)
			}
		}
	}
	if len(unique) == 0 {
		return nil
	}
	if len(unique) == 1 {
		return unique[0]
	}

	if common := commonOpenSuper(unique); common != nil {
		return &Hierarchy{Class: common}
	}

	return &Union{Members: unique}
}

// flatten expands a Union into its members (Merge never nests Unions)
// and expands a Hierarchy into its own set of concrete classes so that
// merging a Hierarchy with an unrelated type can still find a (possibly
// different) common ancestor instead of masking the members.
func flatten(t Type) []Type {
	switch v := t.(type) {
	case *Union:
		out := make([]Type, 0, len(v.Members))
		for _, m := range v.Members {
			out = append(out, flatten(m)...)
		}
		return out
	case *Hierarchy:
		concrete := concreteDescendants(v.Class)
		if len(concrete) == 0 {
			return []Type{t}
		}
		out := make([]Type, 0, len(concrete))
		for _, c := range concrete {
			out = append(out, &ClassInstance{Class: c})
		}
		return out
	default:
		return []Type{t}
	}
}

// commonOpenSuper returns the nearest common ancestor of a set of
// instance/generic-instance types, provided that ancestor is "open"
// (has at least one recorded subclass) and the set is exactly the
// ancestor plus all of its transitive concrete subclasses — i.e. the
// union IS the hierarchy, not merely a subset of it. Returns nil if the
// members aren't all class-shaped, or no such ancestor exists.
func commonOpenSuper(ts []Type) *Class {
	classes := make([]*Class, 0, len(ts))
	for _, t := range ts {
		switch v := t.(type) {
		case *ClassInstance:
			classes = append(classes, v.Class)
		case *GenericInstance:
			classes = append(classes, v.Class)
		case *Hierarchy:
			classes = append(classes, v.Class)
		default:
			return nil
		}
	}
	if len(classes) == 0 {
		return nil
	}

	anc := ancestors(classes[0])
	for _, c := range classes[1:] {
		anc = intersect(anc, ancestors(c))
	}
	// nearest = the one with the most ancestors of its own (deepest)
	var nearest *Class
	for _, c := range anc {
		if nearest == nil || depth(c) > depth(nearest) {
			nearest = c
		}
	}
	if nearest == nil || len(nearest.Subclasses) == 0 {
		return nil
	}

	concrete := concreteDescendants(nearest)
	if !sameClassSet(classes, concrete) {
		return nil
	}
	return nearest
}

func ancestors(c *Class) []*Class {
	var out []*Class
	for cur := c; cur != nil; cur = cur.Super {
		out = append(out, cur)
	}
	return out
}

func depth(c *Class) int {
	d := 0
	for cur := c.Super; cur != nil; cur = cur.Super {
		d++
	}
	return d
}

func intersect(a, b []*Class) []*Class {
	var out []*Class
	for _, x := range a {
		for _, y := range b {
			if x == y {
				out = append(out, x)
				break
			}
		}
	}
	return out
}

// concreteDescendants returns c (if not abstract) plus all transitive
// concrete subclasses — the membership that defines Hierarchy(c).
func concreteDescendants(c *Class) []*Class {
	var out []*Class
	if !c.Abstract {
		out = append(out, c)
	}
	for _, sub := range c.Subclasses {
		out = append(out, concreteDescendants(sub)...)
	}
	return out
}

func sameClassSet(types []*Class, classes []*Class) bool {
	if len(types) != len(classes) {
		return false
	}
	for _, t := range types {
		found := false
		for _, c := range classes {
			if t == c {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Subtype reports whether a is a subtype of b: identity, membership in
// a Union, or falling within a Hierarchy's closure.
func Subtype(a, b Type) bool {
	if a.Identical(b) {
		return true
	}
	switch bv := b.(type) {
	case *Union:
		for _, m := range bv.Members {
			if Subtype(a, m) {
				return true
			}
		}
		return false
	case *Hierarchy:
		return classOf(a) != nil && isDescendantOf(classOf(a), bv.Class)
	case *ClassInstance:
		ac := classOf(a)
		return ac != nil && isDescendantOf(ac, bv.Class)
	}
	if av, ok := a.(*Union); ok {
		for _, m := range av.Members {
			if !Subtype(m, b) {
				return false
			}
		}
		return true
	}
	return false
}

func classOf(t Type) *Class {
	switch v := t.(type) {
	case *ClassInstance:
		return v.Class
	case *GenericInstance:
		return v.Class
	case *Hierarchy:
		return v.Class
	}
	return nil
}

func isDescendantOf(c, ancestor *Class) bool {
	for cur := c; cur != nil; cur = cur.Super {
		if cur == ancestor {
			return true
		}
	}
	return false
}
