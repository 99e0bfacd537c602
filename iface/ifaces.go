package iface

import (
	"github.com/tokenschema/tokenschema-go-base/typesystem"
)

// FungibleFeatures selects the optional capabilities of the fungible token
// interface.
type FungibleFeatures uint8

const (
	FungibleBase       FungibleFeatures = 0
	FungibleInflatable FungibleFeatures = 1 << 0
)

// FungibleToken is the interface implemented by fungible asset schemas:
// an asset specification, contract terms, a declared issued supply and
// amount-bearing owned state moved by a transfer operation. The inflatable
// feature adds a tracked inflation allowance and an issue operation.
func FungibleToken(features FungibleFeatures) Iface {
	std := typesystem.Standard()
	ifc := Iface{
		Name: "FungibleToken",
		Globals: []GlobalField{
			{Name: "spec", SemID: std.Get(typesystem.TypeAssetSpec), Required: true},
			{Name: "terms", SemID: std.Get(typesystem.TypeTerms), Required: true},
			{Name: "issuedSupply", SemID: std.Get(typesystem.TypeAmount), Required: true},
		},
		Assignments: []AssignmentField{
			{Name: "assetOwner", Kind: KindFungible, Required: true},
		},
		Transitions: []TransitionField{
			{Name: "transfer", Required: true},
		},
	}
	if features&FungibleInflatable != 0 {
		ifc.Name = "FungibleToken.Inflatable"
		ifc.Globals = append(ifc.Globals,
			GlobalField{Name: "maxSupply", SemID: std.Get(typesystem.TypeAmount), Required: true})
		ifc.Assignments = append(ifc.Assignments,
			AssignmentField{Name: "inflationAllowance", Kind: KindFungible, Required: true})
		ifc.Transitions = append(ifc.Transitions,
			TransitionField{Name: "issue", Required: true})
		ifc.Metadata = append(ifc.Metadata,
			MetaField{Name: "allowedInflation", SemID: std.Get(typesystem.TypeAmount)})
	}
	return ifc
}

// CollectibleToken is the interface implemented by collectible fungible
// asset schemas; the nominal is split into separate name, article, details
// and precision fields instead of a single asset specification.
func CollectibleToken() Iface {
	std := typesystem.Standard()
	return Iface{
		Name: "CollectibleToken",
		Globals: []GlobalField{
			{Name: "name", SemID: std.Get(typesystem.TypeName), Required: true},
			{Name: "article", SemID: std.Get(typesystem.TypeArticle)},
			{Name: "details", SemID: std.Get(typesystem.TypeDetails)},
			{Name: "precision", SemID: std.Get(typesystem.TypePrecision), Required: true},
			{Name: "terms", SemID: std.Get(typesystem.TypeTerms), Required: true},
			{Name: "issuedSupply", SemID: std.Get(typesystem.TypeAmount), Required: true},
		},
		Assignments: []AssignmentField{
			{Name: "assetOwner", Kind: KindFungible, Required: true},
		},
		Transitions: []TransitionField{
			{Name: "transfer", Required: true},
		},
	}
}

// UniqueToken is the interface implemented by unique (non-fungible) token
// schemas: token metadata in global state and a structured allocation as
// owned state.
func UniqueToken() Iface {
	std := typesystem.Standard()
	return Iface{
		Name: "UniqueToken",
		Globals: []GlobalField{
			{Name: "spec", SemID: std.Get(typesystem.TypeAssetSpec), Required: true},
			{Name: "terms", SemID: std.Get(typesystem.TypeTerms), Required: true},
			{Name: "tokens", SemID: std.Get(typesystem.TypeTokenData), Required: true},
			{Name: "attachment", SemID: std.Get(typesystem.TypeAttachment)},
		},
		Assignments: []AssignmentField{
			{Name: "assetOwner", Kind: KindStructured,
				SemID: std.Get(typesystem.TypeAllocation), Required: true},
		},
		Transitions: []TransitionField{
			{Name: "transfer", Required: true},
		},
	}
}
