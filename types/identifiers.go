package types

import (
	"bytes"
	"fmt"
)

/*
Numeric state keys are schema-scoped identifiers of state slots. Every
asset-class family draws its keys from a reserved, non-overlapping range
(see the schemes key registry), so schemas can be composed and extended
without renumbering.
*/
type (
	// GlobalStateType identifies one slot of contract-wide metadata.
	GlobalStateType uint16
	// AssignmentType identifies one class of spendable, seal-bound state.
	AssignmentType uint16
	// TransitionType identifies one state-update operation of a schema.
	TransitionType uint16
	// MetaType identifies one slot of free-standing operation metadata.
	MetaType uint16
)

func (t GlobalStateType) String() string { return fmt.Sprintf("global(%d)", uint16(t)) }
func (t AssignmentType) String() string  { return fmt.Sprintf("owned(%d)", uint16(t)) }
func (t TransitionType) String() string  { return fmt.Sprintf("transition(%d)", uint16(t)) }
func (t MetaType) String() string        { return fmt.Sprintf("meta(%d)", uint16(t)) }

// SemID is the content-derived identifier of a semantic type shape. It is
// assigned by the type catalog, never computed here; identical (name,
// structure) declarations always yield the same id.
type SemID []byte

func (id SemID) Eq(other SemID) bool { return bytes.Equal(id, other) }

func (id SemID) String() string { return fmt.Sprintf("%X", []byte(id)) }

// SchemaID is the content-derived identifier of a contract schema.
type SchemaID []byte

func (id SchemaID) Eq(other SchemaID) bool { return bytes.Equal(id, other) }

func (id SchemaID) String() string { return fmt.Sprintf("%X", []byte(id)) }

// TypeResolver is the part of the type catalog a schema needs for
// verification: membership of semantic type ids.
type TypeResolver interface {
	Contains(id SemID) bool
}
