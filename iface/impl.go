package iface

import (
	"fmt"
	"strings"

	"github.com/tokenschema/tokenschema-go-base/types"
)

// VerNo is the interface-binding format version.
type VerNo uint8

const V1 VerNo = 1

type (
	// NamedGlobal binds an interface field name to a schema global-state key.
	NamedGlobal struct {
		_    struct{} `cbor:",toarray"`
		Type types.GlobalStateType
		Name string
	}

	// NamedAssignment binds an interface field name to a schema owned-state key.
	NamedAssignment struct {
		_    struct{} `cbor:",toarray"`
		Type types.AssignmentType
		Name string
	}

	// NamedTransition binds an interface operation name to a schema transition key.
	NamedTransition struct {
		_    struct{} `cbor:",toarray"`
		Type types.TransitionType
		Name string
	}

	// NamedMeta binds an interface metadata name to a schema meta key.
	NamedMeta struct {
		_    struct{} `cbor:",toarray"`
		Type types.MetaType
		Name string
	}

	// NamedVariant gives a symbolic name to one numeric error code raised by
	// the schema's validation programs.
	NamedVariant struct {
		_     struct{} `cbor:",toarray"`
		Errno uint8
		Name  string
	}
)

/*
IfaceImpl is the binding of one schema to one interface: a total,
collision-free renaming of the interface's symbolic field names onto the
schema's numeric state keys, plus the symbolic error variants. The binding
is only meaningful for the (schema, interface) pair it was built for and
must pass Check against both.
*/
type IfaceImpl struct {
	Version     VerNo
	SchemaID    types.SchemaID
	IfaceID     IfaceID
	Timestamp   int64
	GlobalState []NamedGlobal
	Assignments []NamedAssignment
	Transitions []NamedTransition
	Metadata    []NamedMeta
	Errors      []NamedVariant
}

// GlobalType resolves an interface field name to the bound schema key.
func (impl IfaceImpl) GlobalType(name string) (types.GlobalStateType, bool) {
	for _, b := range impl.GlobalState {
		if b.Name == name {
			return b.Type, true
		}
	}
	return 0, false
}

// AssignmentType resolves an interface field name to the bound schema key.
func (impl IfaceImpl) AssignmentType(name string) (types.AssignmentType, bool) {
	for _, b := range impl.Assignments {
		if b.Name == name {
			return b.Type, true
		}
	}
	return 0, false
}

// TransitionType resolves an interface operation name to the bound schema key.
func (impl IfaceImpl) TransitionType(name string) (types.TransitionType, bool) {
	for _, b := range impl.Transitions {
		if b.Name == name {
			return b.Type, true
		}
	}
	return 0, false
}

// ErrorName translates a validation program errno to its symbolic name.
func (impl IfaceImpl) ErrorName(errno uint8) (string, bool) {
	for _, v := range impl.Errors {
		if v.Errno == errno {
			return v.Name, true
		}
	}
	return "", false
}

// ConformanceError reports every way a binding fails to implement its
// interface. Mismatches are collected, not short-circuited, so one check
// run reports all problems.
type ConformanceError struct {
	Mismatches []string
}

func (e *ConformanceError) Error() string {
	return fmt.Sprintf("binding does not implement interface: %s",
		strings.Join(e.Mismatches, "; "))
}

/*
Check verifies that the binding is a legal implementation of the interface
for the given schema: every mandatory interface field is bound to an
existing schema slot of assignable shape, no binding names a field the
interface does not declare, names and error codes are unique. Returns nil
or a *ConformanceError listing every mismatch found.
*/
func (impl IfaceImpl) Check(ifc Iface, schema *types.Schema) error {
	var mismatches []string
	report := func(format string, args ...any) {
		mismatches = append(mismatches, fmt.Sprintf(format, args...))
	}

	if !impl.IfaceID.Eq(ifc.ID()) {
		report("binding targets interface %s, not %s", impl.IfaceID, ifc.ID())
	}
	if !impl.SchemaID.Eq(schema.ID()) {
		report("binding targets schema %s, not %s", impl.SchemaID, schema.ID())
	}

	impl.checkGlobals(ifc, schema, report)
	impl.checkAssignments(ifc, schema, report)
	impl.checkTransitions(ifc, schema, report)
	impl.checkMetadata(ifc, schema, report)
	impl.checkErrors(report)

	if len(mismatches) > 0 {
		return &ConformanceError{Mismatches: mismatches}
	}
	return nil
}

func (impl IfaceImpl) checkGlobals(ifc Iface, schema *types.Schema, report func(string, ...any)) {
	seen := map[string]bool{}
	for _, b := range impl.GlobalState {
		if seen[b.Name] {
			report("global field %q bound twice", b.Name)
			continue
		}
		seen[b.Name] = true
		decl, ok := ifc.global(b.Name)
		if !ok {
			report("global field %q not declared by interface", b.Name)
			continue
		}
		slot, ok := schema.GlobalTypes[b.Type]
		if !ok {
			report("global field %q bound to undeclared %s", b.Name, b.Type)
			continue
		}
		if len(decl.SemID) != 0 && !slot.SemID.Eq(decl.SemID) {
			report("global field %q: schema slot type %s not assignable to %s",
				b.Name, slot.SemID, decl.SemID)
		}
	}
	for _, decl := range ifc.Globals {
		if decl.Required && !seen[decl.Name] {
			report("mandatory global field %q not bound", decl.Name)
		}
	}
}

func (impl IfaceImpl) checkAssignments(ifc Iface, schema *types.Schema, report func(string, ...any)) {
	seen := map[string]bool{}
	for _, b := range impl.Assignments {
		if seen[b.Name] {
			report("owned field %q bound twice", b.Name)
			continue
		}
		seen[b.Name] = true
		decl, ok := ifc.assignment(b.Name)
		if !ok {
			report("owned field %q not declared by interface", b.Name)
			continue
		}
		slot, ok := schema.OwnedTypes[b.Type]
		if !ok {
			report("owned field %q bound to undeclared %s", b.Name, b.Type)
			continue
		}
		switch decl.Kind {
		case KindFungible:
			if !slot.IsFungible() {
				report("owned field %q: schema slot is structured, interface wants fungible", b.Name)
			}
		case KindStructured:
			if slot.IsFungible() {
				report("owned field %q: schema slot is fungible, interface wants structured", b.Name)
			} else if len(decl.SemID) != 0 && !slot.SemID.Eq(decl.SemID) {
				report("owned field %q: schema slot type %s not assignable to %s",
					b.Name, slot.SemID, decl.SemID)
			}
		}
	}
	for _, decl := range ifc.Assignments {
		if decl.Required && !seen[decl.Name] {
			report("mandatory owned field %q not bound", decl.Name)
		}
	}
}

func (impl IfaceImpl) checkTransitions(ifc Iface, schema *types.Schema, report func(string, ...any)) {
	seen := map[string]bool{}
	for _, b := range impl.Transitions {
		if seen[b.Name] {
			report("transition %q bound twice", b.Name)
			continue
		}
		seen[b.Name] = true
		if _, ok := ifc.transition(b.Name); !ok {
			report("transition %q not declared by interface", b.Name)
			continue
		}
		if _, ok := schema.Transitions[b.Type]; !ok {
			report("transition %q bound to undeclared %s", b.Name, b.Type)
		}
	}
	for _, decl := range ifc.Transitions {
		if decl.Required && !seen[decl.Name] {
			report("mandatory transition %q not bound", decl.Name)
		}
	}
}

func (impl IfaceImpl) checkMetadata(ifc Iface, schema *types.Schema, report func(string, ...any)) {
	seen := map[string]bool{}
	for _, b := range impl.Metadata {
		if seen[b.Name] {
			report("metadata field %q bound twice", b.Name)
			continue
		}
		seen[b.Name] = true
		decl, ok := ifc.meta(b.Name)
		if !ok {
			report("metadata field %q not declared by interface", b.Name)
			continue
		}
		id, ok := schema.MetaTypes[b.Type]
		if !ok {
			report("metadata field %q bound to undeclared %s", b.Name, b.Type)
			continue
		}
		if len(decl.SemID) != 0 && !id.Eq(decl.SemID) {
			report("metadata field %q: schema slot type %s not assignable to %s",
				b.Name, id, decl.SemID)
		}
	}
	for _, decl := range ifc.Metadata {
		if decl.Required && !seen[decl.Name] {
			report("mandatory metadata field %q not bound", decl.Name)
		}
	}
}

func (impl IfaceImpl) checkErrors(report func(string, ...any)) {
	codes := map[uint8]string{}
	names := map[string]bool{}
	for _, v := range impl.Errors {
		if prev, ok := codes[v.Errno]; ok {
			report("errno %d named both %q and %q", v.Errno, prev, v.Name)
		}
		codes[v.Errno] = v.Name
		if names[v.Name] {
			report("error variant %q declared twice", v.Name)
		}
		names[v.Name] = true
	}
}
