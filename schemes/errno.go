package schemes

import "github.com/tokenschema/tokenschema-go-base/iface"

// Validation failure codes raised by the shipped validation programs. The
// machine is agnostic to their meaning; interface bindings translate them
// to the symbolic names below.
const (
	ErrnoIssuedMismatch uint8 = iota + 1
	ErrnoNonEqualAmounts
	ErrnoInflationMismatch
	ErrnoInflationExcess
	ErrnoUnknownToken
	ErrnoFractionalToken
	ErrnoAmountOverflow
)

var errnoNames = map[uint8]string{
	ErrnoIssuedMismatch:    "issuedMismatch",
	ErrnoNonEqualAmounts:   "nonEqualAmounts",
	ErrnoInflationMismatch: "inflationMismatch",
	ErrnoInflationExcess:   "inflationExceedsAllowance",
	ErrnoUnknownToken:      "unknownToken",
	ErrnoFractionalToken:   "nonFractionalToken",
	ErrnoAmountOverflow:    "amountOverflow",
}

// ErrorVariants builds the named error variant set of a binding from the
// errnos its schema's programs can actually raise.
func ErrorVariants(errnos ...uint8) []iface.NamedVariant {
	variants := make([]iface.NamedVariant, 0, len(errnos))
	for _, e := range errnos {
		variants = append(variants, iface.NamedVariant{Errno: e, Name: errnoNames[e]})
	}
	return variants
}
