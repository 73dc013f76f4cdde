package types

import "strings"

// LLVMName returns the stable mangled identifier a code generator would
// use for t. This repo never emits IR (code generation is an external
// collaborator per the core's scope) — LLVMName exists only so the Call
// Resolver's instantiation cache key and a hypothetical backend would
// agree, exactly as spec.md's Call Resolver/mangling contract requires.
func LLVMName(t Type) string {
	switch v := t.(type) {
	case *Primitive:
		return strings.ToLower(string(v.Kind))
	case *ClassInstance:
		return v.Class.Name
	case *GenericInstance:
		parts := make([]string, len(v.TypeArgs))
		for i, a := range v.TypeArgs {
			parts[i] = LLVMName(a)
		}
		return v.Class.Name + "_" + strings.Join(parts, "_")
	case *Union:
		parts := make([]string, len(v.Members))
		for i, m := range v.Members {
			parts[i] = LLVMName(m)
		}
		return "union_" + strings.Join(parts, "_")
	case *Hierarchy:
		return v.Class.Name + "_hierarchy"
	case *Metaclass:
		return v.Class.Name + "_class"
	}
	return "unknown"
}

// MangleMethod builds the deterministic identifier for a (owner, name,
// self, argument-types, return) tuple: owner type, name (with '@' turned
// into '.' as spec.md's Call Resolver mangling rule requires), receiver
// type, argument-type tuple, and return type. Stable across runs so the
// Call Resolver's instantiation cache and a code generator would agree.
func MangleMethod(owner Type, name string, self Type, args []Type, ret Type) string {
	var b strings.Builder
	b.WriteString(LLVMName(owner))
	b.WriteString("#")
	b.WriteString(strings.ReplaceAll(name, "@", "."))
	b.WriteString("#")
	b.WriteString(LLVMName(self))
	b.WriteString("(")
	for i, a := range args {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString(LLVMName(a))
	}
	b.WriteString(")->")
	if ret != nil {
		b.WriteString(LLVMName(ret))
	} else {
		b.WriteString("void")
	}
	return b.String()
}
