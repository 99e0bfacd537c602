package iface

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tokenschema/tokenschema-go-base/types"
	"github.com/tokenschema/tokenschema-go-base/typesystem"
)

func testIface() Iface {
	std := typesystem.Standard()
	return Iface{
		Name: "TestToken",
		Globals: []GlobalField{
			{Name: "supply", SemID: std.Get(typesystem.TypeAmount), Required: true},
			{Name: "notes", SemID: std.Get(typesystem.TypeDetails)},
		},
		Assignments: []AssignmentField{
			{Name: "owner", Kind: KindFungible, Required: true},
		},
		Transitions: []TransitionField{
			{Name: "move", Required: true},
		},
	}
}

func testSchema() *types.Schema {
	std := typesystem.Standard()
	return &types.Schema{
		Name:         "TestAsset",
		TypeSystemID: std.ID(),
		GlobalTypes: map[types.GlobalStateType]types.GlobalStateSchema{
			10: types.GlobalOf(std.Get(typesystem.TypeAmount)),
			11: types.GlobalOf(std.Get(typesystem.TypeDetails)),
		},
		OwnedTypes: map[types.AssignmentType]types.OwnedStateSchema{
			20: types.FungibleState(),
			21: types.StructuredState(std.Get(typesystem.TypeAllocation)),
		},
		Transitions: map[types.TransitionType]types.TransitionSchema{
			30: {Inputs: map[types.AssignmentType]types.Occurrences{20: types.OnceOrMore}},
		},
	}
}

func testImpl(ifc Iface, schema *types.Schema) IfaceImpl {
	return IfaceImpl{
		Version:  V1,
		SchemaID: schema.ID(),
		IfaceID:  ifc.ID(),
		GlobalState: []NamedGlobal{
			{Type: 10, Name: "supply"},
		},
		Assignments: []NamedAssignment{
			{Type: 20, Name: "owner"},
		},
		Transitions: []NamedTransition{
			{Type: 30, Name: "move"},
		},
		Errors: []NamedVariant{
			{Errno: 1, Name: "mismatch"},
		},
	}
}

func TestCheck(t *testing.T) {
	t.Run("conforming binding passes", func(t *testing.T) {
		ifc, schema := testIface(), testSchema()
		impl := testImpl(ifc, schema)
		require.NoError(t, impl.Check(ifc, schema))
	})

	cases := []struct {
		name   string
		mutate func(impl *IfaceImpl)
		errMsg string
	}{
		{
			name: "mandatory global unbound",
			mutate: func(impl *IfaceImpl) {
				impl.GlobalState = nil
			},
			errMsg: `mandatory global field "supply" not bound`,
		},
		{
			name: "global bound twice",
			mutate: func(impl *IfaceImpl) {
				impl.GlobalState = append(impl.GlobalState, NamedGlobal{Type: 11, Name: "supply"})
			},
			errMsg: `global field "supply" bound twice`,
		},
		{
			name: "undeclared field bound",
			mutate: func(impl *IfaceImpl) {
				impl.GlobalState = append(impl.GlobalState, NamedGlobal{Type: 11, Name: "bogus"})
			},
			errMsg: `global field "bogus" not declared by interface`,
		},
		{
			name: "bound to nonexistent slot",
			mutate: func(impl *IfaceImpl) {
				impl.GlobalState = []NamedGlobal{{Type: 99, Name: "supply"}}
			},
			errMsg: `global field "supply" bound to undeclared global(99)`,
		},
		{
			name: "wrong semantic type",
			mutate: func(impl *IfaceImpl) {
				impl.GlobalState = []NamedGlobal{{Type: 11, Name: "supply"}}
			},
			errMsg: `global field "supply": schema slot type`,
		},
		{
			name: "structured slot where fungible wanted",
			mutate: func(impl *IfaceImpl) {
				impl.Assignments = []NamedAssignment{{Type: 21, Name: "owner"}}
			},
			errMsg: `owned field "owner": schema slot is structured, interface wants fungible`,
		},
		{
			name: "transition bound to undeclared key",
			mutate: func(impl *IfaceImpl) {
				impl.Transitions = []NamedTransition{{Type: 31, Name: "move"}}
			},
			errMsg: `transition "move" bound to undeclared transition(31)`,
		},
		{
			name: "duplicate errno",
			mutate: func(impl *IfaceImpl) {
				impl.Errors = append(impl.Errors, NamedVariant{Errno: 1, Name: "other"})
			},
			errMsg: `errno 1 named both "mismatch" and "other"`,
		},
		{
			name: "duplicate error name",
			mutate: func(impl *IfaceImpl) {
				impl.Errors = append(impl.Errors, NamedVariant{Errno: 2, Name: "mismatch"})
			},
			errMsg: `error variant "mismatch" declared twice`,
		},
		{
			name: "wrong interface id",
			mutate: func(impl *IfaceImpl) {
				impl.IfaceID = IfaceID{1, 2, 3}
			},
			errMsg: "binding targets interface",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ifc, schema := testIface(), testSchema()
			impl := testImpl(ifc, schema)
			tc.mutate(&impl)

			err := impl.Check(ifc, schema)
			require.ErrorContains(t, err, tc.errMsg)

			var cerr *ConformanceError
			require.ErrorAs(t, err, &cerr)
		})
	}
}

func TestCheck_CollectsAllMismatches(t *testing.T) {
	ifc, schema := testIface(), testSchema()
	impl := testImpl(ifc, schema)
	impl.GlobalState = nil
	impl.Transitions = nil

	err := impl.Check(ifc, schema)
	var cerr *ConformanceError
	require.ErrorAs(t, err, &cerr)
	require.Len(t, cerr.Mismatches, 2)
}

func TestLookups(t *testing.T) {
	ifc, schema := testIface(), testSchema()
	impl := testImpl(ifc, schema)

	gt, ok := impl.GlobalType("supply")
	require.True(t, ok)
	require.EqualValues(t, 10, gt)

	at, ok := impl.AssignmentType("owner")
	require.True(t, ok)
	require.EqualValues(t, 20, at)

	tt, ok := impl.TransitionType("move")
	require.True(t, ok)
	require.EqualValues(t, 30, tt)

	name, ok := impl.ErrorName(1)
	require.True(t, ok)
	require.Equal(t, "mismatch", name)

	_, ok = impl.ErrorName(99)
	require.False(t, ok)
}
