package cfa

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

// IssueParams are the human-provided parameters of a collectible issuance.
// Collectibles carry no ticker; article and details are optional.
type IssueParams struct {
	Name        string
	Article     string
	Details     string
	Precision   uint8
	Terms       string
	Timestamp   int64
	Allocations []Allocation
}

func (p IssueParams) check() (total uint64, err error) {
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

// Issue composes the genesis of a collectible asset.
func Issue(p IssueParams) (*contract.Contract, error) {
	total, err := p.check()
	if err != nil {
		return nil, err
	}
	terms, err := cbor.Marshal(p.Terms)
	if err != nil {
		return nil, fmt.Errorf("encoding terms: %w", err)
	}
	name, err := cbor.Marshal(p.Name)
	if err != nil {
		return nil, fmt.Errorf("encoding name: %w", err)
	}

	b := contract.NewGenesisBuilder(Schema(), p.Timestamp).
		Global(schemes.GlobalName, name).
		Global(schemes.GlobalPrecision, []byte{p.Precision}).
		Global(schemes.GlobalTerms, terms).
		Global(schemes.GlobalIssuedSupply, contract.DeclaredAmount(total))
	if p.Article != "" {
		article, err := cbor.Marshal(p.Article)
		if err != nil {
			return nil, fmt.Errorf("encoding article: %w", err)
		}
		b.Global(schemes.GlobalArticle, article)
	}
	if p.Details != "" {
		details, err := cbor.Marshal(p.Details)
		if err != nil {
			return nil, fmt.Errorf("encoding details: %w", err)
		}
		b.Global(schemes.GlobalDetails, details)
	}
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
