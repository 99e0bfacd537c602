package ifa

import (
	"fmt"

	"github.com/tokenschema/tokenschema-go-base/cbor"
	"github.com/tokenschema/tokenschema-go-base/contract"
	"github.com/tokenschema/tokenschema-go-base/schemes"
	"github.com/tokenschema/tokenschema-go-base/util"
)

// Allocation gives one beneficiary seal its share of the issued supply or
// of the inflation allowance.
type Allocation struct {
	Seal   contract.Outpoint
	Amount uint64
}

// IssueParams are the human-provided parameters of an inflatable issuance.
// The asset allocations carry the initially issued supply; the inflation
// allocations carry the right to mint the rest, so the two must sum to the
// declared max supply exactly.
type IssueParams struct {
	Ticker      string
	Name        string
	Precision   uint8
	Terms       string
	Timestamp   int64
	MaxSupply   uint64
	Allocations []Allocation
	Inflation   []Allocation
}

func (p IssueParams) check() (issued, allowance uint64, err error) {
	if err := schemes.CheckTicker(p.Ticker); err != nil {
		return 0, 0, err
	}
	if err := schemes.CheckName(p.Name); err != nil {
		return 0, 0, err
	}
	if err := schemes.CheckPrecision(p.Precision); err != nil {
		return 0, 0, err
	}
	if len(p.Allocations) == 0 {
		return 0, 0, &schemes.ParamError{Field: "allocations", Reason: "none given"}
	}
	if len(p.Inflation) == 0 {
		return 0, 0, &schemes.ParamError{Field: "inflation", Reason: "none given"}
	}
	amount := func(al Allocation) uint64 { return al.Amount }
	issued, ok := util.AddUint64(util.TransformSlice(p.Allocations, amount)...)
	if !ok {
		return 0, 0, &schemes.ParamError{Field: "allocations", Reason: "amounts overflow"}
	}
	allowance, ok = util.AddUint64(util.TransformSlice(p.Inflation, amount)...)
	if !ok {
		return 0, 0, &schemes.ParamError{Field: "inflation", Reason: "amounts overflow"}
	}
	total, ok := util.SafeAdd(issued, allowance)
	if !ok || total != p.MaxSupply {
		return 0, 0, &schemes.ParamError{Field: "maxSupply",
			Reason: fmt.Sprintf("issued %d plus allowance %d does not equal %d",
				issued, allowance, p.MaxSupply)}
	}
	return issued, allowance, nil
}

// Issue composes the genesis of an inflatable asset.
func Issue(p IssueParams) (*contract.Contract, error) {
	issued, _, err := p.check()
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
		Global(schemes.GlobalIssuedSupply, contract.DeclaredAmount(issued)).
		Global(schemes.GlobalMaxSupply, contract.DeclaredAmount(p.MaxSupply))
	for i, al := range p.Allocations {
		b.Assign(schemes.OwnedAsset, al.Seal,
			contract.CommitAmount(al.Amount, contract.DeriveBlinding(al.Seal, i)))
	}
	for i, al := range p.Inflation {
		b.Assign(schemes.OwnedInflationAllowance, al.Seal,
			contract.CommitAmount(al.Amount, contract.DeriveBlinding(al.Seal, len(p.Allocations)+i)))
	}
	g, err := b.Build()
	if err != nil {
		return nil, err
	}
	return &contract.Contract{Genesis: *g}, nil
}

/*
Mint composes an issue transition: it consumes inflation allowance, mints
the given amount of new supply to the beneficiary and reassigns the unspent
allowance to the change seal. Minting exactly the consumed allowance leaves
no change and needs no change seal; minting more than the consumed
allowance is rejected here and, independently, by the validation program.
*/
func Mint(
	id contract.ContractID, inputs []contract.Input,
	mint uint64, to contract.Outpoint, change *contract.Outpoint,
) (*contract.Transition, error) {
	var consumed uint64
	for _, in := range inputs {
		v, err := contract.AmountOf(in.State)
		if err != nil {
			return nil, fmt.Errorf("input %s: %w", in.Prev, err)
		}
		sum, ok := util.SafeAdd(consumed, v)
		if !ok {
			return nil, fmt.Errorf("input amounts overflow")
		}
		consumed = sum
	}
	rest, ok := util.SafeSub(consumed, mint)
	if !ok {
		return nil, &contract.InsufficientStateError{Available: consumed, Needed: mint}
	}
	if rest > 0 && change == nil {
		return nil, &schemes.ParamError{Field: "change",
			Reason: fmt.Sprintf("%d allowance left over and no change seal", rest)}
	}

	b := contract.NewTransitionBuilder(Schema(), id, schemes.TransitionIssue).
		Meta(schemes.MetaAllowedInflation, contract.DeclaredAmount(consumed)).
		Global(schemes.GlobalIssuedSupply, contract.DeclaredAmount(mint))
	for _, in := range inputs {
		b.Consume(in)
	}
	b.Assign(schemes.OwnedAsset, to, contract.CommitAmount(mint, contract.DeriveBlinding(to, 0)))
	if rest > 0 {
		b.Assign(schemes.OwnedInflationAllowance, *change,
			contract.CommitAmount(rest, contract.DeriveBlinding(*change, 1)))
	}
	return b.Build()
}
