/*
Package cfa ships the collectible fungible asset class: fixed-supply
fungible semantics with the asset naming unbundled into separate global
slots (article, name, details, precision) instead of a single packed
specification record. The conservation rules are identical to the
fixed-supply class, so its validation library is reused by content id.
*/
package cfa

import (
	"sync"

	"github.com/tokenschema/tokenschema-go-base/iface"
	"github.com/tokenschema/tokenschema-go-base/schemes"
	"github.com/tokenschema/tokenschema-go-base/schemes/fsa"
	"github.com/tokenschema/tokenschema-go-base/types"
	"github.com/tokenschema/tokenschema-go-base/typesystem"
	"github.com/tokenschema/tokenschema-go-base/vm"
)

// Timestamp identifies this revision of the shipped schema and binding.
const Timestamp int64 = 1719887551

var (
	once   sync.Once
	schema *types.Schema
)

func build() {
	lib := fsa.Lib()

	std := typesystem.Standard()
	genesisSite := vm.Site(lib, "genesis")
	transferSite := vm.Site(lib, "transfer")

	schema = schemes.MustSchema(schemes.Config{
		Name:      "CollectibleAsset",
		Timestamp: Timestamp,
		Types:     std,
		Globals: map[types.GlobalStateType]types.GlobalStateSchema{
			schemes.GlobalArticle:      types.GlobalOf(std.Get(typesystem.TypeArticle)),
			schemes.GlobalName:         types.GlobalOf(std.Get(typesystem.TypeName)),
			schemes.GlobalDetails:      types.GlobalOf(std.Get(typesystem.TypeDetails)),
			schemes.GlobalPrecision:    types.GlobalOf(std.Get(typesystem.TypePrecision)),
			schemes.GlobalTerms:        types.GlobalOf(std.Get(typesystem.TypeTerms)),
			schemes.GlobalIssuedSupply: types.GlobalOf(std.Get(typesystem.TypeAmount)),
		},
		Owned: map[types.AssignmentType]types.OwnedStateSchema{
			schemes.OwnedAsset: types.FungibleState(),
		},
		Genesis: types.GenesisSchema{
			Globals: map[types.GlobalStateType]types.Occurrences{
				schemes.GlobalArticle:      types.NoneOrOnce,
				schemes.GlobalName:         types.Once,
				schemes.GlobalDetails:      types.NoneOrOnce,
				schemes.GlobalPrecision:    types.Once,
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

// Schema returns the contract schema of the class.
func Schema() *types.Schema {
	once.Do(build)
	return schema
}

// Lib returns the validation library of the class, shared with the
// fixed-supply class.
func Lib() *vm.Lib {
	return fsa.Lib()
}

// Iface returns the interface the class implements.
func Iface() iface.Iface {
	return iface.CollectibleToken()
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
			{Type: schemes.GlobalArticle, Name: "article"},
			{Type: schemes.GlobalName, Name: "name"},
			{Type: schemes.GlobalDetails, Name: "details"},
			{Type: schemes.GlobalPrecision, Name: "precision"},
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
