package contract

import (
	"fmt"

	"github.com/tokenschema/tokenschema-go-base/types"
	"github.com/tokenschema/tokenschema-go-base/util"
)

// GenesisBuilder accumulates the content of a genesis and checks it against
// the schema's genesis shape on Build.
type GenesisBuilder struct {
	schema *types.Schema
	g      Genesis
}

func NewGenesisBuilder(schema *types.Schema, timestamp int64) *GenesisBuilder {
	return &GenesisBuilder{
		schema: schema,
		g:      Genesis{SchemaID: schema.ID(), Timestamp: timestamp},
	}
}

func (b *GenesisBuilder) Meta(t types.MetaType, data []byte) *GenesisBuilder {
	b.g.Metadata = append(b.g.Metadata, MetaValue{Type: t, Data: data})
	return b
}

func (b *GenesisBuilder) Global(t types.GlobalStateType, data []byte) *GenesisBuilder {
	b.g.Globals = append(b.g.Globals, GlobalValue{Type: t, Data: data})
	return b
}

func (b *GenesisBuilder) Assign(t types.AssignmentType, seal Outpoint, state []byte) *GenesisBuilder {
	b.g.Assignments = append(b.g.Assignments, Assignment{Type: t, Seal: seal, State: state})
	return b
}

// Build shape-checks the accumulated genesis and returns it. The builder
// stays usable; the returned value is a copy.
func (b *GenesisBuilder) Build() (*Genesis, error) {
	if err := checkGenesisShape(b.schema, &b.g); err != nil {
		return nil, err
	}
	g := b.g
	return &g, nil
}

// TransitionBuilder accumulates the content of a state transition and
// checks it against the transition's declared shape on Build.
type TransitionBuilder struct {
	schema *types.Schema
	t      Transition
}

func NewTransitionBuilder(schema *types.Schema, contract ContractID, tt types.TransitionType) *TransitionBuilder {
	return &TransitionBuilder{
		schema: schema,
		t:      Transition{Contract: contract, Type: tt},
	}
}

func (b *TransitionBuilder) Meta(t types.MetaType, data []byte) *TransitionBuilder {
	b.t.Metadata = append(b.t.Metadata, MetaValue{Type: t, Data: data})
	return b
}

func (b *TransitionBuilder) Global(t types.GlobalStateType, data []byte) *TransitionBuilder {
	b.t.Globals = append(b.t.Globals, GlobalValue{Type: t, Data: data})
	return b
}

func (b *TransitionBuilder) Consume(in Input) *TransitionBuilder {
	b.t.Inputs = append(b.t.Inputs, in)
	return b
}

func (b *TransitionBuilder) Assign(t types.AssignmentType, seal Outpoint, state []byte) *TransitionBuilder {
	b.t.Assignments = append(b.t.Assignments, Assignment{Type: t, Seal: seal, State: state})
	return b
}

func (b *TransitionBuilder) Build() (*Transition, error) {
	if err := checkTransitionShape(b.schema, &b.t); err != nil {
		return nil, err
	}
	t := b.t
	return &t, nil
}

// InsufficientStateError reports a payment the consumed assignments cannot
// cover. It is a composition-time error; no validation program has run.
type InsufficientStateError struct {
	Available uint64
	Needed    uint64
}

func (e *InsufficientStateError) Error() string {
	return fmt.Sprintf("insufficient state: %d available, %d needed", e.Available, e.Needed)
}

/*
Transfer composes a fungible transfer: it sums the consumed assignments,
commits the paid amount to the beneficiary seal and, when the inputs carry
more than the payment, the remainder to the change seal. The produced
transition conserves the consumed sum by construction; validation will
still re-derive that from the commitments alone.
*/
func Transfer(
	schema *types.Schema, contract ContractID,
	tt types.TransitionType, at types.AssignmentType,
	inputs []Input, amount uint64, to, change Outpoint,
) (*Transition, error) {
	var available uint64
	for _, in := range inputs {
		v, err := AmountOf(in.State)
		if err != nil {
			return nil, fmt.Errorf("input %s: %w", in.Prev, err)
		}
		sum, ok := util.SafeAdd(available, v)
		if !ok {
			return nil, fmt.Errorf("input amounts overflow")
		}
		available = sum
	}
	if available < amount {
		return nil, &InsufficientStateError{Available: available, Needed: amount}
	}

	b := NewTransitionBuilder(schema, contract, tt)
	for _, in := range inputs {
		b.Consume(in)
	}
	b.Assign(at, to, CommitAmount(amount, DeriveBlinding(to, 0)))
	if rest := available - amount; rest > 0 {
		b.Assign(at, change, CommitAmount(rest, DeriveBlinding(change, 1)))
	}
	return b.Build()
}
