package uta

import (
	"fmt"

	"github.com/tokenschema/tokenschema-go-base/cbor"
	"github.com/tokenschema/tokenschema-go-base/contract"
	"github.com/tokenschema/tokenschema-go-base/schemes"
)

// TokenPayload is the descriptive part of the token metadata, stored after
// the fixed blob header. Every field is optional.
type TokenPayload struct {
	_       struct{} `cbor:",toarray"`
	Name    string
	Details string
	Preview []byte
}

// IssueParams are the human-provided parameters of a unique-token issuance.
// Exactly one token is created and assigned whole to one seal.
type IssueParams struct {
	Ticker     string
	Name       string
	Terms      string
	Timestamp  int64
	TokenIndex uint32
	Payload    TokenPayload
	Attachment []byte
	Seal       contract.Outpoint
}

func (p IssueParams) check() error {
	if err := schemes.CheckTicker(p.Ticker); err != nil {
		return err
	}
	return schemes.CheckName(p.Name)
}

// Issue composes the genesis of a unique token.
func Issue(p IssueParams) (*contract.Contract, error) {
	if err := p.check(); err != nil {
		return nil, err
	}
	// unique tokens are indivisible, precision is fixed at zero
	spec, err := cbor.Marshal(schemes.AssetSpec{Ticker: p.Ticker, Name: p.Name})
	if err != nil {
		return nil, fmt.Errorf("encoding asset spec: %w", err)
	}
	terms, err := cbor.Marshal(p.Terms)
	if err != nil {
		return nil, fmt.Errorf("encoding terms: %w", err)
	}
	tokens, err := contract.TokenDataBlob(p.TokenIndex, p.Payload)
	if err != nil {
		return nil, err
	}

	b := contract.NewGenesisBuilder(Schema(), p.Timestamp).
		Global(schemes.GlobalSpec, spec).
		Global(schemes.GlobalTerms, terms).
		Global(schemes.GlobalTokens, tokens)
	if len(p.Attachment) > 0 {
		b.Global(schemes.GlobalAttachment, p.Attachment)
	}
	b.Assign(schemes.OwnedAsset, p.Seal, contract.AllocationBlob(p.TokenIndex, 1))
	g, err := b.Build()
	if err != nil {
		return nil, err
	}
	return &contract.Contract{Genesis: *g}, nil
}

// TransferToken composes a transfer moving the whole token to a new seal.
// The token index travels unchanged from the consumed allocation.
func TransferToken(id contract.ContractID, in contract.Input, to contract.Outpoint) (*contract.Transition, error) {
	index, _, err := contract.AllocationOf(in.State)
	if err != nil {
		return nil, fmt.Errorf("input %s: %w", in.Prev, err)
	}
	return contract.NewTransitionBuilder(Schema(), id, schemes.TransitionTransfer).
		Consume(in).
		Assign(schemes.OwnedAsset, to, contract.AllocationBlob(index, 1)).
		Build()
}
