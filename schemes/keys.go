package schemes

import "github.com/tokenschema/tokenschema-go-base/types"

// The module-wide registry and the key ranges reserved per asset-class
// family. The shared family carries the slots every fungible class uses;
// class families only add what their class introduces.
var (
	registry = NewRegistry()

	shared = registry.MustFamily("shared", Ranges{
		Global:     Span{2000, 2100},
		Owned:      Span{4000, 4100},
		Transition: Span{10000, 10100},
		Meta:       Span{1000, 1100},
	})
	unique = registry.MustFamily("unique", Ranges{
		Global:     Span{2100, 2200},
		Owned:      Span{4100, 4200},
		Transition: Span{10100, 10200},
		Meta:       Span{1100, 1200},
	})
	inflatable = registry.MustFamily("inflatable", Ranges{
		Global:     Span{2200, 2300},
		Owned:      Span{4200, 4300},
		Transition: Span{10200, 10300},
		Meta:       Span{1200, 1300},
	})
	collectible = registry.MustFamily("collectible", Ranges{
		Global:     Span{3000, 3100},
		Owned:      Span{4300, 4400},
		Transition: Span{10300, 10400},
		Meta:       Span{1300, 1400},
	})
)

// Shared slots, used by every fungible class.
var (
	GlobalSpec         = shared.Global(0) // asset specification
	GlobalTerms        = shared.Global(1) // contract terms
	GlobalIssuedSupply = shared.Global(2) // publicly declared issued supply

	OwnedAsset = shared.Owned(0) // the asset amount / allocation itself

	TransitionTransfer = shared.Transition(0)
)

// Inflatable family slots.
var (
	GlobalMaxSupply         = inflatable.Global(0)
	OwnedInflationAllowance = inflatable.Owned(0)
	TransitionIssue         = inflatable.Transition(0)
	MetaAllowedInflation    = inflatable.Meta(0)
)

// Unique-token family slots.
var (
	GlobalTokens     = unique.Global(0) // token metadata
	GlobalAttachment = unique.Global(1) // optional media attachment
)

// Collectible family slots.
var (
	GlobalArticle   = collectible.Global(0)
	GlobalName      = collectible.Global(1)
	GlobalDetails   = collectible.Global(2)
	GlobalPrecision = collectible.Global(3)
)

// All key namespaces a schema references are uint16 under the hood; the
// validation programs take them as immediates.
func GlobalKey(t types.GlobalStateType) uint64    { return uint64(t) }
func OwnedKey(t types.AssignmentType) uint64      { return uint64(t) }
func TransitionKey(t types.TransitionType) uint64 { return uint64(t) }
func MetaKey(t types.MetaType) uint64             { return uint64(t) }
