/*
Package ifa ships the inflatable fungible asset class. On top of the
fixed-supply conservation rules, genesis additionally commits an inflation
allowance and the issue transition mints new supply against it: the minted
amount must match the declared incremental issuance and the consumed
allowance must cover the mint exactly, with the unspent remainder
reassigned. Minting exactly the remaining allowance is valid. The issue
transition also publicly declares the consumed allowance in its metadata,
and the declaration is checked against the commitments.
*/
package ifa

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
	issueSite := vm.Site(lib, "issue")

	schema = schemes.MustSchema(schemes.Config{
		Name:      "InflatableAsset",
		Timestamp: Timestamp,
		Types:     std,
		MetaTypes: map[types.MetaType]types.SemID{
			schemes.MetaAllowedInflation: std.Get(typesystem.TypeAmount),
		},
		Globals: map[types.GlobalStateType]types.GlobalStateSchema{
			schemes.GlobalSpec:         types.GlobalOf(std.Get(typesystem.TypeAssetSpec)),
			schemes.GlobalTerms:        types.GlobalOf(std.Get(typesystem.TypeTerms)),
			schemes.GlobalIssuedSupply: types.GlobalOf(std.Get(typesystem.TypeAmount)),
			schemes.GlobalMaxSupply:    types.GlobalOf(std.Get(typesystem.TypeAmount)),
		},
		Owned: map[types.AssignmentType]types.OwnedStateSchema{
			schemes.OwnedAsset:              types.FungibleState(),
			schemes.OwnedInflationAllowance: types.FungibleState(),
		},
		Genesis: types.GenesisSchema{
			Globals: map[types.GlobalStateType]types.Occurrences{
				schemes.GlobalSpec:         types.Once,
				schemes.GlobalTerms:        types.Once,
				schemes.GlobalIssuedSupply: types.Once,
				schemes.GlobalMaxSupply:    types.Once,
			},
			Assignments: map[types.AssignmentType]types.Occurrences{
				schemes.OwnedAsset:              types.OnceOrMore,
				schemes.OwnedInflationAllowance: types.OnceOrMore,
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
			schemes.TransitionIssue: {
				Metadata: []types.MetaType{schemes.MetaAllowedInflation},
				Globals: map[types.GlobalStateType]types.Occurrences{
					schemes.GlobalIssuedSupply: types.Once,
				},
				Inputs: map[types.AssignmentType]types.Occurrences{
					schemes.OwnedInflationAllowance: types.OnceOrMore,
				},
				Assignments: map[types.AssignmentType]types.Occurrences{
					schemes.OwnedAsset:              types.OnceOrMore,
					schemes.OwnedInflationAllowance: types.NoneOrOnce,
				},
				Validator: &issueSite,
			},
		},
		Libs: []*vm.Lib{lib},
	})
}

func buildLib() *vm.Lib {
	a := vm.NewAssembler()

	// Genesis: asset outputs must sum to the declared issued supply, and
	// allowance outputs plus issued supply must sum to the declared max
	// supply (the allowance is exactly the headroom left to mint).
	a.Entry("genesis")
	a.Put(vm.A8(0), uint64(schemes.ErrnoAmountOverflow))
	a.Put(vm.A16(15), schemes.OwnedKey(schemes.OwnedAsset))
	a.Call("sum.outputs")
	schemes.EmitLoadGlobalAmount(a, schemes.GlobalKey(schemes.GlobalIssuedSupply), vm.A64(0))
	a.Put(vm.A8(0), uint64(schemes.ErrnoIssuedMismatch))
	a.Eq(vm.A64(0), vm.A64(1))
	a.Test()
	a.Put(vm.A8(0), uint64(schemes.ErrnoAmountOverflow))
	a.Put(vm.A16(15), schemes.OwnedKey(schemes.OwnedInflationAllowance))
	a.Call("sum.outputs")
	schemes.EmitLoadGlobalAmount(a, schemes.GlobalKey(schemes.GlobalIssuedSupply), vm.A64(14))
	a.Addo(vm.A64(1), vm.A64(14))
	schemes.EmitLoadGlobalAmount(a, schemes.GlobalKey(schemes.GlobalMaxSupply), vm.A64(0))
	a.Put(vm.A8(0), uint64(schemes.ErrnoInflationMismatch))
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

	// Issue: minted asset outputs must equal the incremental issuance
	// declared in the transition's global update, and the consumed
	// allowance must equal reissued allowance plus the mint. The second
	// equation makes the allowance a hard cap, inclusive at the boundary.
	// The allowance declared in the transition metadata must match the
	// consumed allowance, so the public figure cannot misstate the mint.
	a.Entry("issue")
	a.Put(vm.A8(0), uint64(schemes.ErrnoAmountOverflow))
	a.Put(vm.A16(15), schemes.OwnedKey(schemes.OwnedAsset))
	a.Call("sum.outputs")
	schemes.EmitLoadGlobalAmount(a, schemes.GlobalKey(schemes.GlobalIssuedSupply), vm.A64(0))
	a.Put(vm.A8(0), uint64(schemes.ErrnoIssuedMismatch))
	a.Eq(vm.A64(0), vm.A64(1))
	a.Test()
	a.Put(vm.A8(0), uint64(schemes.ErrnoAmountOverflow))
	a.Put(vm.A16(15), schemes.OwnedKey(schemes.OwnedInflationAllowance))
	a.Call("sum.inputs")
	a.Call("sum.outputs")
	schemes.EmitLoadGlobalAmount(a, schemes.GlobalKey(schemes.GlobalIssuedSupply), vm.A64(14))
	a.Addo(vm.A64(1), vm.A64(14))
	a.Put(vm.A8(0), uint64(schemes.ErrnoInflationExcess))
	a.Eq(vm.A64(0), vm.A64(1))
	a.Test()
	a.Put(vm.A8(0), uint64(schemes.ErrnoInflationMismatch))
	schemes.EmitLoadMetaAmount(a, schemes.MetaKey(schemes.MetaAllowedInflation), vm.A64(1))
	a.Eq(vm.A64(0), vm.A64(1))
	a.Test()
	a.Ret()

	schemes.EmitSumSubroutines(a)
	return vm.MustAssemble(a)
}

// Lib returns the validation library of the class.
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
	return iface.FungibleToken(iface.FungibleInflatable)
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
			{Type: schemes.GlobalMaxSupply, Name: "maxSupply"},
		},
		Assignments: []iface.NamedAssignment{
			{Type: schemes.OwnedAsset, Name: "assetOwner"},
			{Type: schemes.OwnedInflationAllowance, Name: "inflationAllowance"},
		},
		Transitions: []iface.NamedTransition{
			{Type: schemes.TransitionTransfer, Name: "transfer"},
			{Type: schemes.TransitionIssue, Name: "issue"},
		},
		Metadata: []iface.NamedMeta{
			{Type: schemes.MetaAllowedInflation, Name: "allowedInflation"},
		},
		Errors: schemes.ErrorVariants(
			schemes.ErrnoIssuedMismatch,
			schemes.ErrnoNonEqualAmounts,
			schemes.ErrnoInflationMismatch,
			schemes.ErrnoInflationExcess,
			schemes.ErrnoAmountOverflow,
		),
	}
}
