/*
Package uta ships the unique token class: a single non-fungible token whose
metadata is declared once at genesis and whose ownership moves as a whole.
The validation program checks token identity instead of summing amounts:
the allocation must reference the token index declared in the global token
metadata (or, on transfer, the index carried by the consumed allocation)
and must own the full, undivided fraction of it.
*/
package uta

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
		Name:      "UniqueToken",
		Timestamp: Timestamp,
		Types:     std,
		Globals: map[types.GlobalStateType]types.GlobalStateSchema{
			schemes.GlobalSpec:       types.GlobalOf(std.Get(typesystem.TypeAssetSpec)),
			schemes.GlobalTerms:      types.GlobalOf(std.Get(typesystem.TypeTerms)),
			schemes.GlobalTokens:     types.GlobalOf(std.Get(typesystem.TypeTokenData)),
			schemes.GlobalAttachment: types.GlobalOf(std.Get(typesystem.TypeAttachment)),
		},
		Owned: map[types.AssignmentType]types.OwnedStateSchema{
			schemes.OwnedAsset: types.StructuredState(std.Get(typesystem.TypeAllocation)),
		},
		Genesis: types.GenesisSchema{
			Globals: map[types.GlobalStateType]types.Occurrences{
				schemes.GlobalSpec:       types.Once,
				schemes.GlobalTerms:      types.Once,
				schemes.GlobalTokens:     types.Once,
				schemes.GlobalAttachment: types.NoneOrOnce,
			},
			Assignments: map[types.AssignmentType]types.Occurrences{
				schemes.OwnedAsset: types.Once,
			},
			Validator: &genesisSite,
		},
		Transitions: map[types.TransitionType]types.TransitionSchema{
			schemes.TransitionTransfer: {
				Inputs: map[types.AssignmentType]types.Occurrences{
					schemes.OwnedAsset: types.Once,
				},
				Assignments: map[types.AssignmentType]types.Occurrences{
					schemes.OwnedAsset: types.Once,
				},
				Validator: &transferSite,
			},
		},
		Libs: []*vm.Lib{lib},
	})
}

/*
buildLib assembles the identity checks.

Both entries land on the shared "check" tail with the expected token index
in a32[0] and the produced allocation blob in s[15]. Genesis takes the
expected index from the token metadata declared in global state; transfer
takes it from the allocation being consumed, so the token referenced can
never change across transfers.

Allocation and token metadata blobs both carry their 32-bit token index at
byte offset 0; the allocation carries the owned 64-bit fraction at offset
4. Both blobs are at least 16 bytes, which lets the checks extract one wide
field per blob and project the index and the fraction out of it.
*/
func buildLib() *vm.Lib {
	a := vm.NewAssembler()

	a.Entry("genesis")
	a.Put(vm.A8(0), uint64(schemes.ErrnoUnknownToken))
	a.Put(vm.A16(15), schemes.GlobalKey(schemes.GlobalTokens))
	a.Put(vm.A16(14), 0)
	a.Ldg(vm.A16(15), vm.A16(14), vm.S(14))
	a.Put(vm.A16(12), schemes.TokenIndexOffset)
	a.Extr(vm.S(14), 16, vm.A16(12), vm.W(0))
	a.Spy(vm.A32(0), vm.W(0))
	a.Put(vm.A16(15), schemes.OwnedKey(schemes.OwnedAsset))
	a.Put(vm.A16(14), 0)
	a.Ldo(vm.A16(15), vm.A16(14), vm.S(15))
	a.Jmp("check")

	a.Entry("transfer")
	a.Put(vm.A8(0), uint64(schemes.ErrnoUnknownToken))
	a.Put(vm.A16(15), schemes.OwnedKey(schemes.OwnedAsset))
	a.Put(vm.A16(14), 0)
	a.Ldp(vm.A16(15), vm.A16(14), vm.S(14))
	a.Put(vm.A16(12), schemes.TokenIndexOffset)
	a.Extr(vm.S(14), 16, vm.A16(12), vm.W(0))
	a.Spy(vm.A32(0), vm.W(0))
	a.Ldo(vm.A16(15), vm.A16(14), vm.S(15))
	a.Jmp("check")

	a.Label("check")
	a.Put(vm.A16(12), schemes.TokenIndexOffset)
	a.Extr(vm.S(15), 16, vm.A16(12), vm.W(1))
	a.Spy(vm.A32(1), vm.W(1))
	a.Eq(vm.A32(0), vm.A32(1))
	a.Test()
	a.Put(vm.A8(0), uint64(schemes.ErrnoFractionalToken))
	a.Put(vm.A16(12), schemes.FractionOffset)
	a.Extr(vm.S(15), 16, vm.A16(12), vm.W(1))
	a.Spy(vm.A64(1), vm.W(1))
	a.Put(vm.A64(0), 1)
	a.Eq(vm.A64(0), vm.A64(1))
	a.Test()
	a.Ret()

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
	return iface.UniqueToken()
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
			{Type: schemes.GlobalTokens, Name: "tokens"},
			{Type: schemes.GlobalAttachment, Name: "attachment"},
		},
		Assignments: []iface.NamedAssignment{
			{Type: schemes.OwnedAsset, Name: "assetOwner"},
		},
		Transitions: []iface.NamedTransition{
			{Type: schemes.TransitionTransfer, Name: "transfer"},
		},
		Errors: schemes.ErrorVariants(
			schemes.ErrnoUnknownToken,
			schemes.ErrnoFractionalToken,
		),
	}
}
