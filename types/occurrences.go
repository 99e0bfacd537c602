package types

import "fmt"

// Occurrences is the cardinality rule for a state slot within a genesis or
// transition: how many instances of the slot the operation must carry.
type Occurrences uint8

const (
	Once Occurrences = iota + 1
	NoneOrOnce
	OnceOrMore
)

func (o Occurrences) String() string {
	switch o {
	case Once:
		return "once"
	case NoneOrOnce:
		return "noneOrOnce"
	case OnceOrMore:
		return "onceOrMore"
	}
	return fmt.Sprintf("occurrences(%d)", uint8(o))
}

// Valid reports whether o is one of the declared constraints. The zero value
// is not: a required context with zero permitted occurrences is nonsensical
// and is rejected at schema build time.
func (o Occurrences) Valid() bool {
	return o >= Once && o <= OnceOrMore
}

// Min returns the smallest permitted instance count.
func (o Occurrences) Min() int {
	if o == Once || o == OnceOrMore {
		return 1
	}
	return 0
}

// Max returns the largest permitted instance count; unbounded is false for
// once-or-more.
func (o Occurrences) Max() (count int, bounded bool) {
	if o == OnceOrMore {
		return 0, false
	}
	return 1, true
}

// Check verifies an actual instance count against the constraint.
func (o Occurrences) Check(count int) error {
	if !o.Valid() {
		return fmt.Errorf("invalid occurrence constraint %d", uint8(o))
	}
	if count < o.Min() {
		return fmt.Errorf("%d occurrences where at least %d required", count, o.Min())
	}
	if max, bounded := o.Max(); bounded && count > max {
		return fmt.Errorf("%d occurrences where at most %d allowed", count, max)
	}
	return nil
}
