package types

import (
	"crypto"
	"errors"
	"fmt"

	"github.com/tokenschema/tokenschema-go-base/hash"
	"github.com/tokenschema/tokenschema-go-base/vm"
)

// GenesisSchema declares the shape of the initial state-creation operation:
// which metadata, global slots and assignments it must carry, with their
// occurrence constraints, and the optional validation entry point run once
// at issuance. A nil validator means no check beyond the generic shape
// checks - the operation is accepted unconditionally by the machine.
type GenesisSchema struct {
	_           struct{} `cbor:",toarray"`
	Metadata    []MetaType
	Globals     map[GlobalStateType]Occurrences
	Assignments map[AssignmentType]Occurrences
	Validator   *vm.LibSite
}

// TransitionSchema declares the shape of one state-update operation: the
// assignment types it consumes and produces, optional global-state updates,
// and the optional validation entry point run at every occurrence.
type TransitionSchema struct {
	_           struct{} `cbor:",toarray"`
	Metadata    []MetaType
	Globals     map[GlobalStateType]Occurrences
	Inputs      map[AssignmentType]Occurrences
	Assignments map[AssignmentType]Occurrences
	Validator   *vm.LibSite
}

/*
Schema is the complete declaration of one contract type: its state slots,
the genesis shape, the transition shapes and the validation libraries the
shapes reference by content id. A schema is immutable once built; Verify
establishes the internal consistency invariants and must pass before the
schema is used for anything.
*/
type Schema struct {
	Name         string
	Timestamp    int64
	TypeSystemID SemID
	MetaTypes    map[MetaType]SemID
	GlobalTypes  map[GlobalStateType]GlobalStateSchema
	OwnedTypes   map[AssignmentType]OwnedStateSchema
	Genesis      GenesisSchema
	Transitions  map[TransitionType]TransitionSchema
	Libs         []*vm.Lib
}

// ID returns the content-derived schema identifier. Everything that defines
// the schema's semantics contributes to it, including the validation code.
func (s *Schema) ID() SchemaID {
	libCodes := make([][]byte, len(s.Libs))
	for i, lib := range s.Libs {
		libCodes[i] = lib.Code()
	}
	return SchemaID(hash.Sum(crypto.SHA256,
		s.Name, s.Timestamp, s.TypeSystemID,
		s.MetaTypes, s.GlobalTypes, s.OwnedTypes,
		s.Genesis, s.Transitions, libCodes,
	))
}

// Lib resolves an attached validation library by content id.
func (s *Schema) Lib(id vm.LibID) (*vm.Lib, bool) {
	for _, lib := range s.Libs {
		if lib.ID().Eq(id) {
			return lib, true
		}
	}
	return nil, false
}

// TransitionLib resolves the validator of a transition type, nil when the
// transition carries no additional check.
func (s *Schema) TransitionLib(t TransitionType) (*vm.Lib, uint16, error) {
	ts, ok := s.Transitions[t]
	if !ok {
		return nil, 0, fmt.Errorf("unknown transition type %s", t)
	}
	return s.resolveValidator(ts.Validator)
}

// GenesisLib resolves the genesis validator, nil when genesis carries no
// additional check.
func (s *Schema) GenesisLib() (*vm.Lib, uint16, error) {
	return s.resolveValidator(s.Genesis.Validator)
}

func (s *Schema) resolveValidator(site *vm.LibSite) (*vm.Lib, uint16, error) {
	if site == nil {
		return nil, 0, nil
	}
	lib, ok := s.Lib(site.Lib)
	if !ok {
		return nil, 0, fmt.Errorf("validator references unattached library %s", site.Lib)
	}
	return lib, site.Offset, nil
}

/*
Verify establishes the schema construction invariants: every state key
referenced by a shape exists in the corresponding slot map, every occurrence
constraint is well formed, every semantic type id resolves in the attached
type catalog and every validator entry point lands on a declared subroutine
start of an attached library. All violations found are reported together.
*/
func (s *Schema) Verify(resolver TypeResolver) error {
	var errs []error
	report := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if s.Name == "" {
		report("schema name is empty")
	}
	for mt, id := range s.MetaTypes {
		if !resolver.Contains(id) {
			report("%s: semantic type %s not in type catalog", mt, id)
		}
	}
	for gt, gs := range s.GlobalTypes {
		if !resolver.Contains(gs.SemID) {
			report("%s: semantic type %s not in type catalog", gt, gs.SemID)
		}
	}
	for at, os := range s.OwnedTypes {
		if err := os.verify(); err != nil {
			report("%s: %v", at, err)
		} else if !os.IsFungible() && !resolver.Contains(os.SemID) {
			report("%s: semantic type %s not in type catalog", at, os.SemID)
		}
	}

	s.verifyOperation("genesis", s.Genesis.Metadata, s.Genesis.Globals,
		nil, s.Genesis.Assignments, s.Genesis.Validator, report)
	for tt, ts := range s.Transitions {
		if len(ts.Inputs) == 0 {
			report("%s: declares no inputs", tt)
		}
		s.verifyOperation(tt.String(), ts.Metadata, ts.Globals,
			ts.Inputs, ts.Assignments, ts.Validator, report)
	}

	return errors.Join(errs...)
}

func (s *Schema) verifyOperation(
	op string,
	metadata []MetaType,
	globals map[GlobalStateType]Occurrences,
	inputs, assignments map[AssignmentType]Occurrences,
	validator *vm.LibSite,
	report func(string, ...any),
) {
	for _, mt := range metadata {
		if _, ok := s.MetaTypes[mt]; !ok {
			report("%s: references undeclared %s", op, mt)
		}
	}
	for gt, occ := range globals {
		if _, ok := s.GlobalTypes[gt]; !ok {
			report("%s: references undeclared %s", op, gt)
		}
		if !occ.Valid() {
			report("%s: %s has invalid occurrence constraint", op, gt)
		}
	}
	for at, occ := range inputs {
		if _, ok := s.OwnedTypes[at]; !ok {
			report("%s: input references undeclared %s", op, at)
		}
		if !occ.Valid() {
			report("%s: input %s has invalid occurrence constraint", op, at)
		}
	}
	for at, occ := range assignments {
		if _, ok := s.OwnedTypes[at]; !ok {
			report("%s: references undeclared %s", op, at)
		}
		if !occ.Valid() {
			report("%s: %s has invalid occurrence constraint", op, at)
		}
	}
	if validator != nil {
		lib, ok := s.Lib(validator.Lib)
		if !ok {
			report("%s: validator references unattached library %s", op, validator.Lib)
		} else if !lib.IsEntryPoint(validator.Offset) {
			report("%s: validator offset %d is not a subroutine start", op, validator.Offset)
		}
	}
}
