/*
Package fsa ships the fixed-supply fungible asset class: a schema whose
total supply is declared once at genesis and only ever moved by transfers,
the fungible-token interface binding for it and the validation program
enforcing amount conservation.
*/
package fsa

import (
	"sync"

	"github.com/tokenschema/tokenschema-go-base/iface"
	"github.com/tokenschema/tokenschema-go-base/schemes"
	"github.com/tokenschema/tokenschema-go-base/types"
	"github.com/tokenschema/tokenschema-go-base/typesystem"
	"github.com/tokenschema/tokenschema-go-base/vm"
)

// Timestamp identifies this revision of the shipped schema and binding.
const Timestamp int64 = 1719887551

var (
	once   sync.Once
	lib    *vm.Lib
	schema *types.Schema
)

func build() {
	lib = buildLib()

	std := typesystem.Standard()
	genesisSite := vm.Site(lib, "genesis")
	transferSite := vm.Site(lib, "transfer")

	schema = schemes.MustSchema(schemes.Config{
		Name:      "FixedSupplyAsset",
		Timestamp: Timestamp,
		Types:     std,
		Globals: map[types.GlobalStateType]types.GlobalStateSchema{
			schemes.GlobalSpec:         types.GlobalOf(std.Get(typesystem.TypeAssetSpec)),
			schemes.GlobalTerms:        types.GlobalOf(std.Get(typesystem.TypeTerms)),
			schemes.GlobalIssuedSupply: types.GlobalOf(std.Get(typesystem.TypeAmount)),
		},
		Owned: map[types.AssignmentType]types.OwnedStateSchema{
			schemes.OwnedAsset: types.FungibleState(),
		},
		Genesis: types.GenesisSchema{
			Globals: map[types.GlobalStateType]types.Occurrences{
				schemes.GlobalSpec:         types.Once,
				schemes.GlobalTerms:        types.Once,
				schemes.GlobalIssuedSupply: types.Once,
			},
			Assignments: map[types.AssignmentType]types.Occurrences{
				schemes.OwnedAsset: types.OnceOrMore,
			},
			Validator: &genesisSite,
		},
		Transitions: map[types.TransitionType]types.TransitionSchema{
			schemes.TransitionTransfer: {
				Inputs: map[types.AssignmentType]types.Occurrences{
					schemes.OwnedAsset: types.OnceOrMore,
				},
				Assignments: map[types.AssignmentType]types.Occurrences{
					schemes.OwnedAsset: types.OnceOrMore,
				},
				Validator: &transferSite,
			},
		},
		Libs: []*vm.Lib{lib},
	})
}

/*
buildLib assembles the conservation checks.

Genesis: the sum of committed amounts across the initial asset assignments
must equal the publicly declared issued supply. Transfer: the sum across
consumed assignments must equal the sum across produced ones.
*/
func buildLib() *vm.Lib {
	a := vm.NewAssembler()

	a.Entry("genesis")
	a.Put(vm.A8(0), uint64(schemes.ErrnoAmountOverflow))
	a.Put(vm.A16(15), schemes.OwnedKey(schemes.OwnedAsset))
	a.Call("sum.outputs")
	schemes.EmitLoadGlobalAmount(a, schemes.GlobalKey(schemes.GlobalIssuedSupply), vm.A64(0))
	a.Put(vm.A8(0), uint64(schemes.ErrnoIssuedMismatch))
	a.Eq(vm.A64(0), vm.A64(1))
	a.Test()
	a.Ret()

	a.Entry("transfer")
	a.Put(vm.A8(0), uint64(schemes.ErrnoAmountOverflow))
	a.Put(vm.A16(15), schemes.OwnedKey(schemes.OwnedAsset))
	a.Call("sum.inputs")
	a.Call("sum.outputs")
	a.Put(vm.A8(0), uint64(schemes.ErrnoNonEqualAmounts))
	a.Eq(vm.A64(0), vm.A64(1))
	a.Test()
	a.Ret()

	schemes.EmitSumSubroutines(a)
	return vm.MustAssemble(a)
}

// Lib returns the validation library of the class. The collectible class
// reuses it by content id.
func Lib() *vm.Lib {
	once.Do(build)
	return lib
}

// Schema returns the contract schema of the class.
func Schema() *types.Schema {
	once.Do(build)
	return schema
}

// Iface returns the interface the class implements.
func Iface() iface.Iface {
	return iface.FungibleToken(iface.FungibleBase)
}

// IfaceImpl returns the binding of the class schema to its interface.
func IfaceImpl() iface.IfaceImpl {
	s := Schema()
	return iface.IfaceImpl{
		Version:   iface.V1,
		SchemaID:  s.ID(),
		IfaceID:   Iface().ID(),
		Timestamp: Timestamp,
		GlobalState: []iface.NamedGlobal{
			{Type: schemes.GlobalSpec, Name: "spec"},
			{Type: schemes.GlobalTerms, Name: "terms"},
			{Type: schemes.GlobalIssuedSupply, Name: "issuedSupply"},
		},
		Assignments: []iface.NamedAssignment{
			{Type: schemes.OwnedAsset, Name: "assetOwner"},
		},
		Transitions: []iface.NamedTransition{
			{Type: schemes.TransitionTransfer, Name: "transfer"},
		},
		Errors: schemes.ErrorVariants(
			schemes.ErrnoIssuedMismatch,
			schemes.ErrnoNonEqualAmounts,
			schemes.ErrnoAmountOverflow,
		),
	}
}
