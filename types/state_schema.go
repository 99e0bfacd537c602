package types

import "fmt"

// FungibleType is the numeric width of a fungible owned-state amount.
// Only 64-bit unsigned amounts are defined.
type FungibleType uint8

const FungibleUnsigned64 FungibleType = 64

// GlobalStateSchema declares one slot of contract-wide state: the semantic
// type of the values the slot holds.
type GlobalStateSchema struct {
	_     struct{} `cbor:",toarray"`
	SemID SemID
}

func GlobalOf(id SemID) GlobalStateSchema {
	return GlobalStateSchema{SemID: id}
}

/*
OwnedStateSchema declares one class of owned (seal-bound, spendable) state.
A slot is either fungible, holding a blinded numeric amount of a fixed bit
width, or structured, holding an arbitrary encoded value of a declared
semantic type (e.g. a token allocation record). Exactly one of the two
shapes is set.
*/
type OwnedStateSchema struct {
	_        struct{}     `cbor:",toarray"`
	Fungible FungibleType `cbor:",omitempty"`
	SemID    SemID        `cbor:",omitempty"`
}

func FungibleState() OwnedStateSchema {
	return OwnedStateSchema{Fungible: FungibleUnsigned64}
}

func StructuredState(id SemID) OwnedStateSchema {
	return OwnedStateSchema{SemID: id}
}

func (s OwnedStateSchema) IsFungible() bool { return s.Fungible != 0 }

func (s OwnedStateSchema) verify() error {
	switch {
	case s.Fungible != 0 && len(s.SemID) != 0:
		return fmt.Errorf("owned state declared both fungible and structured")
	case s.Fungible == 0 && len(s.SemID) == 0:
		return fmt.Errorf("owned state declared neither fungible nor structured")
	case s.Fungible != 0 && s.Fungible != FungibleUnsigned64:
		return fmt.Errorf("unsupported fungible width %d", s.Fungible)
	}
	return nil
}
