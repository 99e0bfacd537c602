package cfa

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tokenschema/tokenschema-go-base/contract"
	"github.com/tokenschema/tokenschema-go-base/schemes"
	"github.com/tokenschema/tokenschema-go-base/schemes/fsa"
	teststate "github.com/tokenschema/tokenschema-go-base/testutils/state"
)

func TestConformance(t *testing.T) {
	require.NoError(t, IfaceImpl().Check(Iface(), Schema()))
}

func TestSharedValidationLib(t *testing.T) {
	// same conservation rules, same program, same content id
	require.True(t, Lib().ID().Eq(fsa.Lib().ID()))
	require.False(t, Schema().ID().Eq(fsa.Schema().ID()))
}

func TestIssueAndTransfer(t *testing.T) {
	issuerSeal := teststate.SealWithSuffix(1)
	c, err := Issue(IssueParams{
		Name:      "Collectible card",
		Article:   "CARD-001",
		Details:   "First print run",
		Precision: 0,
		Terms:     "collect them all",
		Timestamp: Timestamp,
		Allocations: []Allocation{
			{Seal: issuerSeal, Amount: 10_000},
		},
	})
	require.NoError(t, err)
	require.NoError(t, contract.Validate(Schema(), IfaceImpl(), c))

	inputs := []contract.Input{{
		Type:  schemes.OwnedAsset,
		Prev:  issuerSeal,
		State: c.Genesis.Assignments[0].State,
	}}
	tr, err := contract.Transfer(Schema(), c.ID(),
		schemes.TransitionTransfer, schemes.OwnedAsset,
		inputs, 2_500, teststate.SealWithSuffix(2), teststate.SealWithSuffix(3))
	require.NoError(t, err)
	require.NoError(t, contract.ValidateTransition(Schema(), IfaceImpl(), tr))
}

func TestIssueWithoutOptionalFields(t *testing.T) {
	c, err := Issue(IssueParams{
		Name:      "Plain collectible",
		Precision: 2,
		Terms:     "terms",
		Timestamp: Timestamp,
		Allocations: []Allocation{
			{Seal: teststate.SealWithSuffix(1), Amount: 100},
		},
	})
	require.NoError(t, err)
	require.NoError(t, contract.Validate(Schema(), IfaceImpl(), c))

	// article and details are absent, not empty
	for _, g := range c.Genesis.Globals {
		require.NotEqual(t, schemes.GlobalArticle, g.Type)
		require.NotEqual(t, schemes.GlobalDetails, g.Type)
	}
}

func TestIssueParamChecks(t *testing.T) {
	_, err := Issue(IssueParams{
		Precision: 2,
		Timestamp: Timestamp,
		Allocations: []Allocation{
			{Seal: teststate.SealWithSuffix(1), Amount: 100},
		},
	})
	var perr *schemes.ParamError
	require.ErrorAs(t, err, &perr)
	require.Equal(t, "name", perr.Field)
}
