package schemes

import (
	"fmt"
)

// ParamError rejects a human-provided issuance parameter before anything is
// composed or validated.
type ParamError struct {
	Field  string
	Reason string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Issuance parameter bounds shared by the asset classes.
const (
	MinTickerLen = 1
	MaxTickerLen = 8
	MaxNameLen   = 40
	MaxPrecision = 18
)

// AssetSpec is the packed nominal of the fungible and unique-token classes,
// stored CBOR-encoded in the asset specification global slot.
type AssetSpec struct {
	_         struct{} `cbor:",toarray"`
	Ticker    string
	Name      string
	Precision uint8
}

// CheckTicker verifies a ticker: uppercase ASCII letters and digits,
// starting with a letter, at most eight characters.
func CheckTicker(ticker string) error {
	if len(ticker) < MinTickerLen || len(ticker) > MaxTickerLen {
		return &ParamError{"ticker", fmt.Sprintf("length %d outside [%d, %d]",
			len(ticker), MinTickerLen, MaxTickerLen)}
	}
	for i := 0; i < len(ticker); i++ {
		c := ticker[i]
		switch {
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
			if i == 0 {
				return &ParamError{"ticker", "must start with a letter"}
			}
		default:
			return &ParamError{"ticker", fmt.Sprintf("character %q not allowed", c)}
		}
	}
	return nil
}

// CheckName verifies an asset name: non-empty printable ASCII of bounded
// length.
func CheckName(name string) error {
	if name == "" {
		return &ParamError{"name", "empty"}
	}
	if len(name) > MaxNameLen {
		return &ParamError{"name", fmt.Sprintf("length %d exceeds %d", len(name), MaxNameLen)}
	}
	for i := 0; i < len(name); i++ {
		if name[i] < 0x20 || name[i] > 0x7e {
			return &ParamError{"name", fmt.Sprintf("character %q not printable", name[i])}
		}
	}
	return nil
}

// CheckPrecision verifies a decimal precision.
func CheckPrecision(precision uint8) error {
	if precision > MaxPrecision {
		return &ParamError{"precision", fmt.Sprintf("%d exceeds %d", precision, MaxPrecision)}
	}
	return nil
}
