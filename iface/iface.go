/*
Package iface defines abstract, reusable contract interfaces and their
bindings to concrete schemas.

An Iface declares named fields (global state, owned state, transitions,
metadata) with the shapes an implementing schema must provide. An IfaceImpl
binds those names to one schema's numeric state keys and gives symbolic
names to the error codes the schema's validation programs may raise. The
conformance checker verifies that a binding is a legal implementation of
its interface.
*/
package iface

import (
	"bytes"
	"crypto"
	"fmt"

	"github.com/tokenschema/tokenschema-go-base/hash"
	"github.com/tokenschema/tokenschema-go-base/types"
)

// IfaceID is the content-derived identifier of an interface declaration.
type IfaceID []byte

func (id IfaceID) Eq(other IfaceID) bool { return bytes.Equal(id, other) }

func (id IfaceID) String() string { return fmt.Sprintf("%X", []byte(id)) }

// StateKind is the declared shape of an owned-state field.
type StateKind uint8

const (
	KindFungible StateKind = iota + 1
	KindStructured
)

func (k StateKind) String() string {
	switch k {
	case KindFungible:
		return "fungible"
	case KindStructured:
		return "structured"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

type (
	// GlobalField is one named global-state field of an interface. SemID
	// constrains the semantic type of the bound schema slot.
	GlobalField struct {
		_        struct{} `cbor:",toarray"`
		Name     string
		SemID    types.SemID
		Required bool
	}

	// AssignmentField is one named owned-state field. For structured fields
	// SemID constrains the allocation type, for fungible fields it is nil.
	AssignmentField struct {
		_        struct{} `cbor:",toarray"`
		Name     string
		Kind     StateKind
		SemID    types.SemID
		Required bool
	}

	// TransitionField is one named state-update operation.
	TransitionField struct {
		_        struct{} `cbor:",toarray"`
		Name     string
		Required bool
	}

	// MetaField is one named operation-metadata field.
	MetaField struct {
		_        struct{} `cbor:",toarray"`
		Name     string
		SemID    types.SemID
		Required bool
	}
)

// Iface is an abstract contract interface: the vocabulary wallets and other
// external consumers use to read and drive contracts of any schema bound to
// it.
type Iface struct {
	Name        string
	Globals     []GlobalField
	Assignments []AssignmentField
	Transitions []TransitionField
	Metadata    []MetaField
}

func (i Iface) ID() IfaceID {
	return IfaceID(hash.Sum(crypto.SHA256,
		i.Name, i.Globals, i.Assignments, i.Transitions, i.Metadata))
}

func (i Iface) global(name string) (GlobalField, bool) {
	for _, f := range i.Globals {
		if f.Name == name {
			return f, true
		}
	}
	return GlobalField{}, false
}

func (i Iface) assignment(name string) (AssignmentField, bool) {
	for _, f := range i.Assignments {
		if f.Name == name {
			return f, true
		}
	}
	return AssignmentField{}, false
}

func (i Iface) transition(name string) (TransitionField, bool) {
	for _, f := range i.Transitions {
		if f.Name == name {
			return f, true
		}
	}
	return TransitionField{}, false
}

func (i Iface) meta(name string) (MetaField, bool) {
	for _, f := range i.Metadata {
		if f.Name == name {
			return f, true
		}
	}
	return MetaField{}, false
}
