/*
Package contract carries the operation model built on top of the schema
layer: genesis and state-transition instances with their committed state,
builders composing them, and the validation driver running schema shape
checks and the schema's validation programs against them.

The package deliberately knows nothing about persistence or chain
commitments; operations are validated as self-contained values and the
caller decides what to do with the verdict.
*/
package contract

import (
	"bytes"
	"crypto"
	"fmt"

	"github.com/tokenschema/tokenschema-go-base/hash"
	"github.com/tokenschema/tokenschema-go-base/types"
)

// ContractID is the content-derived identifier of a contract instance:
// the hash of its genesis. Two parties constructing the same genesis
// independently arrive at the same contract.
type ContractID []byte

func (id ContractID) Eq(other ContractID) bool { return bytes.Equal(id, other) }

func (id ContractID) String() string { return fmt.Sprintf("%X", []byte(id)) }

type (
	// GlobalValue is one instance of a global state slot.
	GlobalValue struct {
		_    struct{} `cbor:",toarray"`
		Type types.GlobalStateType
		Data []byte
	}

	// MetaValue is one free-standing metadata value of an operation.
	MetaValue struct {
		_    struct{} `cbor:",toarray"`
		Type types.MetaType
		Data []byte
	}

	// Assignment is one produced piece of owned state, bound to a seal.
	Assignment struct {
		_     struct{} `cbor:",toarray"`
		Type  types.AssignmentType
		Seal  Outpoint
		State []byte
	}

	// Input consumes a previously produced assignment. The consumed state
	// blob travels with the input so the operation validates self-contained.
	Input struct {
		_     struct{} `cbor:",toarray"`
		Type  types.AssignmentType
		Prev  Outpoint
		State []byte
	}
)

// Genesis is the state-creation operation of a contract instance.
type Genesis struct {
	_           struct{} `cbor:",toarray"`
	SchemaID    types.SchemaID
	Timestamp   int64
	Metadata    []MetaValue
	Globals     []GlobalValue
	Assignments []Assignment
}

// ContractID derives the contract identifier from the genesis content.
func (g *Genesis) ContractID() ContractID {
	return ContractID(hash.Sum(crypto.SHA256, g))
}

// Transition is one state-update operation of a contract instance.
type Transition struct {
	_           struct{} `cbor:",toarray"`
	Contract    ContractID
	Type        types.TransitionType
	Metadata    []MetaValue
	Globals     []GlobalValue
	Inputs      []Input
	Assignments []Assignment
}

// Contract is a genesis together with the transitions applied to it, in
// application order.
type Contract struct {
	Genesis     Genesis
	Transitions []Transition
}

func (c *Contract) ID() ContractID { return c.Genesis.ContractID() }
