/*
Package schemes holds the building blocks shared by the shipped asset-class
schemas: the numeric-key registry handing out collision-free state keys per
asset-class family, the common validation errnos, the parameterized schema
builder and the reusable arithmetic subroutines of the validation programs.
*/
package schemes

import (
	"fmt"

	"github.com/tokenschema/tokenschema-go-base/types"
)

// Span is a half-open range [Start, End) of numeric keys reserved for one
// family within one key namespace.
type Span struct {
	Start, End uint16
}

func (s Span) contains(k uint16) bool { return k >= s.Start && k < s.End }

func (s Span) overlaps(o Span) bool { return s.Start < o.End && o.Start < s.End }

// Ranges reserves one key span per namespace for a family.
type Ranges struct {
	Global     Span
	Owned      Span
	Transition Span
	Meta       Span
}

/*
Registry allocates numeric state keys from non-overlapping ranges reserved
per asset-class family. Families never share a range, so schemas of
different classes can be composed and extended without renumbering, and a
key requested twice within a family is a build-time panic rather than a
silent collision.
*/
type Registry struct {
	families map[string]*Family
}

func NewRegistry() *Registry {
	return &Registry{families: map[string]*Family{}}
}

// Family reserves the given ranges for a named family. Overlap with an
// already reserved family range is an error.
func (r *Registry) Family(name string, ranges Ranges) (*Family, error) {
	if _, ok := r.families[name]; ok {
		return nil, fmt.Errorf("family %q already registered", name)
	}
	for other, f := range r.families {
		switch {
		case ranges.Global.overlaps(f.ranges.Global):
			return nil, fmt.Errorf("family %q global range overlaps %q", name, other)
		case ranges.Owned.overlaps(f.ranges.Owned):
			return nil, fmt.Errorf("family %q owned range overlaps %q", name, other)
		case ranges.Transition.overlaps(f.ranges.Transition):
			return nil, fmt.Errorf("family %q transition range overlaps %q", name, other)
		case ranges.Meta.overlaps(f.ranges.Meta):
			return nil, fmt.Errorf("family %q meta range overlaps %q", name, other)
		}
	}
	f := &Family{name: name, ranges: ranges, used: map[string]bool{}}
	r.families[name] = f
	return f, nil
}

// MustFamily is Family for the init-time registrations of the shipped
// classes, where a range clash is a programming error.
func (r *Registry) MustFamily(name string, ranges Ranges) *Family {
	f, err := r.Family(name, ranges)
	if err != nil {
		panic(err)
	}
	return f
}

// Family allocates typed keys from its reserved ranges. Allocation is by
// offset into the range; requesting the same offset twice panics, keeping
// every shipped key distinct by construction.
type Family struct {
	name   string
	ranges Ranges
	used   map[string]bool
}

func (f *Family) Global(off uint16) types.GlobalStateType {
	return types.GlobalStateType(f.allocate("global", f.ranges.Global, off))
}

func (f *Family) Owned(off uint16) types.AssignmentType {
	return types.AssignmentType(f.allocate("owned", f.ranges.Owned, off))
}

func (f *Family) Transition(off uint16) types.TransitionType {
	return types.TransitionType(f.allocate("transition", f.ranges.Transition, off))
}

func (f *Family) Meta(off uint16) types.MetaType {
	return types.MetaType(f.allocate("meta", f.ranges.Meta, off))
}

func (f *Family) allocate(ns string, span Span, off uint16) uint16 {
	key := span.Start + off
	if !span.contains(key) || key < span.Start {
		panic(fmt.Sprintf("family %q: %s offset %d outside reserved range [%d,%d)",
			f.name, ns, off, span.Start, span.End))
	}
	tag := fmt.Sprintf("%s/%d", ns, key)
	if f.used[tag] {
		panic(fmt.Sprintf("family %q: %s key %d allocated twice", f.name, ns, key))
	}
	f.used[tag] = true
	return key
}
