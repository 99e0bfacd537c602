package contract

import (
	"errors"
	"fmt"

	"github.com/tokenschema/tokenschema-go-base/iface"
	"github.com/tokenschema/tokenschema-go-base/types"
	"github.com/tokenschema/tokenschema-go-base/vm"
)

// ValidationError is a validation program rejecting an operation,
// translated to the symbolic error name of the interface binding. The name
// is empty when the binding does not declare the errno.
type ValidationError struct {
	Errno uint8
	Name  string
}

func (e *ValidationError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("validation failed: errno %d", e.Errno)
	}
	return fmt.Sprintf("validation failed: %s (errno %d)", e.Name, e.Errno)
}

// ValidateGenesis shape-checks a genesis against the schema and runs the
// genesis validation program.
func ValidateGenesis(schema *types.Schema, impl iface.IfaceImpl, g *Genesis) error {
	if !g.SchemaID.Eq(schema.ID()) {
		return fmt.Errorf("genesis targets schema %s, not %s", g.SchemaID, schema.ID())
	}
	if err := checkGenesisShape(schema, g); err != nil {
		return err
	}
	lib, offset, err := schema.GenesisLib()
	if err != nil || lib == nil {
		return err
	}
	return runValidator(lib, offset, impl, &opView{
		globals: groupGlobals(g.Globals),
		outputs: groupAssignments(g.Assignments),
		meta:    groupMeta(g.Metadata),
	})
}

// ValidateTransition shape-checks a transition against its declared shape
// and runs the transition's validation program.
func ValidateTransition(schema *types.Schema, impl iface.IfaceImpl, t *Transition) error {
	if err := checkTransitionShape(schema, t); err != nil {
		return err
	}
	lib, offset, err := schema.TransitionLib(t.Type)
	if err != nil || lib == nil {
		return err
	}
	return runValidator(lib, offset, impl, &opView{
		globals: groupGlobals(t.Globals),
		inputs:  groupInputs(t.Inputs),
		outputs: groupAssignments(t.Assignments),
		meta:    groupMeta(t.Metadata),
	})
}

// Validate checks a whole contract: the genesis and every transition, in
// application order.
func Validate(schema *types.Schema, impl iface.IfaceImpl, c *Contract) error {
	if err := ValidateGenesis(schema, impl, &c.Genesis); err != nil {
		return fmt.Errorf("genesis: %w", err)
	}
	id := c.ID()
	for i := range c.Transitions {
		t := &c.Transitions[i]
		if !t.Contract.Eq(id) {
			return fmt.Errorf("transition %d targets contract %s, not %s", i, t.Contract, id)
		}
		if err := ValidateTransition(schema, impl, t); err != nil {
			return fmt.Errorf("transition %d: %w", i, err)
		}
	}
	return nil
}

func runValidator(lib *vm.Lib, offset uint16, impl iface.IfaceImpl, view vm.StateView) error {
	err := vm.Run(lib, offset, view)
	var failure *vm.Failure
	if errors.As(err, &failure) {
		name, _ := impl.ErrorName(failure.Errno)
		return &ValidationError{Errno: failure.Errno, Name: name}
	}
	return err
}

/*
Shape checks enforce the occurrence constraints the schema declares for an
operation before any program runs: every instance belongs to a declared
slot and every declared constraint holds for the actual instance count.
Metadata slots listed by the shape are each carried exactly once.
*/
func checkGenesisShape(schema *types.Schema, g *Genesis) error {
	var errs []error
	report := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	checkMetadata(schema.Genesis.Metadata, g.Metadata, report)
	checkCounts("genesis", schema.Genesis.Globals, countGlobals(g.Globals), report)
	checkCounts("genesis", schema.Genesis.Assignments, countAssignments(g.Assignments), report)

	return errors.Join(errs...)
}

func checkTransitionShape(schema *types.Schema, t *Transition) error {
	ts, ok := schema.Transitions[t.Type]
	if !ok {
		return fmt.Errorf("schema declares no %s", t.Type)
	}

	var errs []error
	report := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	op := t.Type.String()
	checkMetadata(ts.Metadata, t.Metadata, report)
	checkCounts(op, ts.Globals, countGlobals(t.Globals), report)
	checkCounts(op+" input", ts.Inputs, countInputs(t.Inputs), report)
	checkCounts(op, ts.Assignments, countAssignments(t.Assignments), report)

	return errors.Join(errs...)
}

func checkMetadata(declared []types.MetaType, values []MetaValue, report func(string, ...any)) {
	allowed := make(map[types.MetaType]bool, len(declared))
	for _, mt := range declared {
		allowed[mt] = true
	}
	seen := map[types.MetaType]bool{}
	for _, v := range values {
		if !allowed[v.Type] {
			report("%s not permitted by the operation shape", v.Type)
			continue
		}
		if seen[v.Type] {
			report("%s carried twice", v.Type)
		}
		seen[v.Type] = true
	}
	for _, mt := range declared {
		if !seen[mt] {
			report("%s required by the operation shape", mt)
		}
	}
}

func checkCounts[T ~uint16](
	op string, declared map[T]types.Occurrences, counts map[T]int,
	report func(string, ...any),
) {
	for t, occ := range declared {
		if err := occ.Check(counts[t]); err != nil {
			report("%s %s: %v", op, t, err)
		}
	}
	for t := range counts {
		if _, ok := declared[t]; !ok {
			report("%s %s not permitted by the operation shape", op, t)
		}
	}
}

func countGlobals(values []GlobalValue) map[types.GlobalStateType]int {
	counts := map[types.GlobalStateType]int{}
	for _, v := range values {
		counts[v.Type]++
	}
	return counts
}

func countAssignments(values []Assignment) map[types.AssignmentType]int {
	counts := map[types.AssignmentType]int{}
	for _, v := range values {
		counts[v.Type]++
	}
	return counts
}

func countInputs(values []Input) map[types.AssignmentType]int {
	counts := map[types.AssignmentType]int{}
	for _, v := range values {
		counts[v.Type]++
	}
	return counts
}

/*
opView adapts one operation to the machine's state-view interface. Instance
order within a state type follows the order the operation carries them in,
which is what makes validation outcomes reproducible. The previous state of
a consumed assignment is the state blob the input carries.
*/
type opView struct {
	globals map[uint16][][]byte
	inputs  map[uint16][][]byte
	outputs map[uint16][][]byte
	meta    map[uint16][]byte
}

func (v *opView) GlobalCount(st uint16) int { return len(v.globals[st]) }
func (v *opView) InputCount(st uint16) int  { return len(v.inputs[st]) }
func (v *opView) OutputCount(st uint16) int { return len(v.outputs[st]) }

func (v *opView) Global(st uint16, idx int) ([]byte, bool) { return pick(v.globals, st, idx) }
func (v *opView) Input(st uint16, idx int) ([]byte, bool)  { return pick(v.inputs, st, idx) }
func (v *opView) Output(st uint16, idx int) ([]byte, bool) { return pick(v.outputs, st, idx) }
func (v *opView) Prev(st uint16, idx int) ([]byte, bool)   { return pick(v.inputs, st, idx) }

func (v *opView) Meta(mt uint16) ([]byte, bool) {
	blob, ok := v.meta[mt]
	return blob, ok
}

func pick(m map[uint16][][]byte, st uint16, idx int) ([]byte, bool) {
	blobs := m[st]
	if idx < 0 || idx >= len(blobs) {
		return nil, false
	}
	return blobs[idx], true
}

func groupGlobals(values []GlobalValue) map[uint16][][]byte {
	m := map[uint16][][]byte{}
	for _, v := range values {
		m[uint16(v.Type)] = append(m[uint16(v.Type)], v.Data)
	}
	return m
}

func groupAssignments(values []Assignment) map[uint16][][]byte {
	m := map[uint16][][]byte{}
	for _, v := range values {
		m[uint16(v.Type)] = append(m[uint16(v.Type)], v.State)
	}
	return m
}

func groupMeta(values []MetaValue) map[uint16][]byte {
	m := map[uint16][]byte{}
	for _, v := range values {
		m[uint16(v.Type)] = v.Data
	}
	return m
}

func groupInputs(values []Input) map[uint16][][]byte {
	m := map[uint16][][]byte{}
	for _, v := range values {
		m[uint16(v.Type)] = append(m[uint16(v.Type)], v.State)
	}
	return m
}
