package types

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tokenschema/tokenschema-go-base/vm"
)

// catalog is a TypeResolver accepting exactly the ids it holds.
type catalog [][]byte

func (c catalog) Contains(id SemID) bool {
	for _, known := range c {
		if id.Eq(known) {
			return true
		}
	}
	return false
}

var (
	amountID = SemID([]byte{1, 1, 1})
	specID   = SemID([]byte{2, 2, 2})

	testCatalog = catalog{amountID, specID}
)

func testLib(t *testing.T) *vm.Lib {
	t.Helper()
	a := vm.NewAssembler()
	a.Entry("genesis")
	a.Put(vm.A8(0), 1)
	a.Ret()
	a.Entry("transfer")
	a.Ret()
	return vm.MustAssemble(a)
}

func validSchema(t *testing.T) *Schema {
	t.Helper()
	lib := testLib(t)
	genesisSite := vm.Site(lib, "genesis")
	transferSite := vm.Site(lib, "transfer")
	return &Schema{
		Name:         "TestAsset",
		Timestamp:    1719887551,
		TypeSystemID: specID,
		GlobalTypes: map[GlobalStateType]GlobalStateSchema{
			2000: GlobalOf(specID),
			2002: GlobalOf(amountID),
		},
		OwnedTypes: map[AssignmentType]OwnedStateSchema{
			4000: FungibleState(),
		},
		Genesis: GenesisSchema{
			Globals: map[GlobalStateType]Occurrences{
				2000: Once,
				2002: Once,
			},
			Assignments: map[AssignmentType]Occurrences{4000: OnceOrMore},
			Validator:   &genesisSite,
		},
		Transitions: map[TransitionType]TransitionSchema{
			10000: {
				Inputs:      map[AssignmentType]Occurrences{4000: OnceOrMore},
				Assignments: map[AssignmentType]Occurrences{4000: OnceOrMore},
				Validator:   &transferSite,
			},
		},
		Libs: []*vm.Lib{lib},
	}
}

func TestSchema_Verify(t *testing.T) {
	t.Run("valid schema passes", func(t *testing.T) {
		require.NoError(t, validSchema(t).Verify(testCatalog))
	})

	cases := []struct {
		name   string
		mutate func(s *Schema)
		errMsg string
	}{
		{
			name:   "empty name",
			mutate: func(s *Schema) { s.Name = "" },
			errMsg: "schema name is empty",
		},
		{
			name:   "unknown semantic type",
			mutate: func(s *Schema) { s.GlobalTypes[2000] = GlobalOf(SemID{9, 9}) },
			errMsg: "global(2000): semantic type",
		},
		{
			name: "genesis references undeclared global",
			mutate: func(s *Schema) {
				s.Genesis.Globals[2001] = Once
			},
			errMsg: "genesis: references undeclared global(2001)",
		},
		{
			name: "invalid occurrence constraint",
			mutate: func(s *Schema) {
				s.Genesis.Globals[2000] = Occurrences(9)
			},
			errMsg: "global(2000) has invalid occurrence constraint",
		},
		{
			name: "transition without inputs",
			mutate: func(s *Schema) {
				ts := s.Transitions[10000]
				ts.Inputs = nil
				s.Transitions[10000] = ts
			},
			errMsg: "transition(10000): declares no inputs",
		},
		{
			name: "transition consumes undeclared owned state",
			mutate: func(s *Schema) {
				ts := s.Transitions[10000]
				ts.Inputs[4001] = Once
			},
			errMsg: "transition(10000): input references undeclared owned(4001)",
		},
		{
			name: "validator references unattached library",
			mutate: func(s *Schema) {
				s.Genesis.Validator = &vm.LibSite{Lib: vm.LibID{1, 2, 3}, Offset: 0}
			},
			errMsg: "genesis: validator references unattached library",
		},
		{
			name: "validator lands between subroutines",
			mutate: func(s *Schema) {
				site := *s.Genesis.Validator
				site.Offset++
				s.Genesis.Validator = &site
			},
			errMsg: "genesis: validator offset 1 is not a subroutine start",
		},
		{
			name: "owned state both fungible and structured",
			mutate: func(s *Schema) {
				s.OwnedTypes[4000] = OwnedStateSchema{Fungible: FungibleUnsigned64, SemID: amountID}
			},
			errMsg: "owned(4000): owned state declared both fungible and structured",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := validSchema(t)
			tc.mutate(s)
			require.ErrorContains(t, s.Verify(testCatalog), tc.errMsg)
		})
	}
}

func TestSchema_ID(t *testing.T) {
	require.Equal(t, validSchema(t).ID(), validSchema(t).ID(),
		"identical schemas must share an id")

	changed := validSchema(t)
	changed.Name = "OtherAsset"
	require.False(t, changed.ID().Eq(validSchema(t).ID()))

	// the validation code is part of the schema semantics
	noLib := validSchema(t)
	noLib.Genesis.Validator = nil
	noLib.Transitions[10000] = TransitionSchema{
		Inputs:      map[AssignmentType]Occurrences{4000: OnceOrMore},
		Assignments: map[AssignmentType]Occurrences{4000: OnceOrMore},
	}
	noLib.Libs = nil
	require.False(t, noLib.ID().Eq(validSchema(t).ID()))
}

func TestSchema_LibResolution(t *testing.T) {
	s := validSchema(t)

	lib, offset, err := s.GenesisLib()
	require.NoError(t, err)
	require.NotNil(t, lib)
	require.True(t, lib.IsEntryPoint(offset))

	lib, offset, err = s.TransitionLib(10000)
	require.NoError(t, err)
	require.NotNil(t, lib)
	require.True(t, lib.IsEntryPoint(offset))

	_, _, err = s.TransitionLib(9999)
	require.ErrorContains(t, err, "unknown transition type transition(9999)")

	s.Genesis.Validator = nil
	lib, _, err = s.GenesisLib()
	require.NoError(t, err)
	require.Nil(t, lib)
}

func TestOccurrences_Check(t *testing.T) {
	cases := []struct {
		occ    Occurrences
		count  int
		errMsg string
	}{
		{Once, 1, ""},
		{Once, 0, "0 occurrences where at least 1 required"},
		{Once, 2, "2 occurrences where at most 1 allowed"},
		{NoneOrOnce, 0, ""},
		{NoneOrOnce, 1, ""},
		{NoneOrOnce, 2, "2 occurrences where at most 1 allowed"},
		{OnceOrMore, 1, ""},
		{OnceOrMore, 100, ""},
		{OnceOrMore, 0, "0 occurrences where at least 1 required"},
		{Occurrences(0), 1, "invalid occurrence constraint 0"},
	}

	for _, tc := range cases {
		err := tc.occ.Check(tc.count)
		if tc.errMsg == "" {
			require.NoError(t, err, "%s count %d", tc.occ, tc.count)
		} else {
			require.ErrorContains(t, err, tc.errMsg, "%s count %d", tc.occ, tc.count)
		}
	}
}
