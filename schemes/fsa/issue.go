package fsa

import (
	"fmt"

	"github.com/tokenschema/tokenschema-go-base/cbor"
	"github.com/tokenschema/tokenschema-go-base/contract"
	"github.com/tokenschema/tokenschema-go-base/schemes"
	"github.com/tokenschema/tokenschema-go-base/util"
)

// Allocation gives one beneficiary seal its share of the issued supply.
type Allocation struct {
	Seal   contract.Outpoint
	Amount uint64
}

// IssueParams are the human-provided parameters of a fixed-supply issuance.
// The issued supply is the sum of the allocations; it is never declared
// separately, so it cannot disagree with them.
type IssueParams struct {
	Ticker      string
	Name        string
	Precision   uint8
	Terms       string
	Timestamp   int64
	Allocations []Allocation
}

func (p IssueParams) check() (total uint64, err error) {
	if err := schemes.CheckTicker(p.Ticker); err != nil {
		return 0, err
	}
	if err := schemes.CheckName(p.Name); err != nil {
		return 0, err
	}
	if err := schemes.CheckPrecision(p.Precision); err != nil {
		return 0, err
	}
	if len(p.Allocations) == 0 {
		return 0, &schemes.ParamError{Field: "allocations", Reason: "none given"}
	}
	total, ok := util.AddUint64(util.TransformSlice(p.Allocations,
		func(al Allocation) uint64 { return al.Amount })...)
	if !ok {
		return 0, &schemes.ParamError{Field: "allocations", Reason: "amounts overflow"}
	}
	return total, nil
}

// Issue composes the genesis of a fixed-supply asset. Parameter problems
// are reported as ParamErrors before anything is composed; the returned
// contract still has to pass Validate like any other.
func Issue(p IssueParams) (*contract.Contract, error) {
	total, err := p.check()
	if err != nil {
		return nil, err
	}
	spec, err := cbor.Marshal(schemes.AssetSpec{
		Ticker: p.Ticker, Name: p.Name, Precision: p.Precision,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding asset spec: %w", err)
	}
	terms, err := cbor.Marshal(p.Terms)
	if err != nil {
		return nil, fmt.Errorf("encoding terms: %w", err)
	}

	b := contract.NewGenesisBuilder(Schema(), p.Timestamp).
		Global(schemes.GlobalSpec, spec).
		Global(schemes.GlobalTerms, terms).
		Global(schemes.GlobalIssuedSupply, contract.DeclaredAmount(total))
	for i, al := range p.Allocations {
		b.Assign(schemes.OwnedAsset, al.Seal,
			contract.CommitAmount(al.Amount, contract.DeriveBlinding(al.Seal, i)))
	}
	g, err := b.Build()
	if err != nil {
		return nil, err
	}
	return &contract.Contract{Genesis: *g}, nil
}
