package fsa

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tokenschema/tokenschema-go-base/contract"
	"github.com/tokenschema/tokenschema-go-base/schemes"
	teststate "github.com/tokenschema/tokenschema-go-base/testutils/state"
)

func requireErrno(t *testing.T, err error, name string) {
	t.Helper()
	var verr *contract.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, name, verr.Name)
}

func buildGenesis(t *testing.T, declared uint64, amounts ...uint64) *contract.Genesis {
	t.Helper()
	b := contract.NewGenesisBuilder(Schema(), Timestamp).
		Global(schemes.GlobalSpec, []byte("spec")).
		Global(schemes.GlobalTerms, []byte("terms")).
		Global(schemes.GlobalIssuedSupply, contract.DeclaredAmount(declared))
	for i, amount := range amounts {
		b.Assign(schemes.OwnedAsset, teststate.SealWithSuffix(byte(i)),
			contract.CommitAmount(amount, teststate.Blinding(byte(i))))
	}
	g, err := b.Build()
	require.NoError(t, err)
	return g
}

func TestConformance(t *testing.T) {
	require.NoError(t, IfaceImpl().Check(Iface(), Schema()))
	require.NotEmpty(t, Schema().ID())
	require.True(t, Lib().ID().Eq(Lib().ID()))
}

func TestIssueAndTransfer(t *testing.T) {
	// 1000 coins with 8 decimals, issued whole to a single seal
	const total = 100_000_000_000
	issuerSeal := teststate.SealWithSuffix(1)

	c, err := Issue(IssueParams{
		Ticker:    "TEST",
		Name:      "Test asset",
		Precision: 8,
		Terms:     "Free as in freedom",
		Timestamp: Timestamp,
		Allocations: []Allocation{
			{Seal: issuerSeal, Amount: total},
		},
	})
	require.NoError(t, err)
	require.NoError(t, contract.Validate(Schema(), IfaceImpl(), c))

	inputs := []contract.Input{{
		Type:  schemes.OwnedAsset,
		Prev:  issuerSeal,
		State: c.Genesis.Assignments[0].State,
	}}

	t.Run("balanced transfer passes", func(t *testing.T) {
		tr, err := contract.Transfer(Schema(), c.ID(),
			schemes.TransitionTransfer, schemes.OwnedAsset,
			inputs, 60_000_000_000, teststate.SealWithSuffix(2), teststate.SealWithSuffix(3))
		require.NoError(t, err)
		require.NoError(t, contract.ValidateTransition(Schema(), IfaceImpl(), tr))

		require.Len(t, tr.Assignments, 2)
		paid, err := contract.AmountOf(tr.Assignments[0].State)
		require.NoError(t, err)
		change, err := contract.AmountOf(tr.Assignments[1].State)
		require.NoError(t, err)
		require.EqualValues(t, 60_000_000_000, paid)
		require.EqualValues(t, 40_000_000_000, change)
	})

	t.Run("unbalanced transfer rejected", func(t *testing.T) {
		b := contract.NewTransitionBuilder(Schema(), c.ID(), schemes.TransitionTransfer)
		for _, in := range inputs {
			b.Consume(in)
		}
		b.Assign(schemes.OwnedAsset, teststate.SealWithSuffix(2),
			contract.CommitAmount(60_000_000_000, teststate.Blinding(2)))
		b.Assign(schemes.OwnedAsset, teststate.SealWithSuffix(3),
			contract.CommitAmount(39_999_999_999, teststate.Blinding(3)))
		tr, err := b.Build()
		require.NoError(t, err)

		err = contract.ValidateTransition(Schema(), IfaceImpl(), tr)
		requireErrno(t, err, "nonEqualAmounts")
	})

	t.Run("payment above inputs rejected before validation", func(t *testing.T) {
		_, err := contract.Transfer(Schema(), c.ID(),
			schemes.TransitionTransfer, schemes.OwnedAsset,
			inputs, total+1, teststate.SealWithSuffix(2), teststate.SealWithSuffix(3))
		var ierr *contract.InsufficientStateError
		require.ErrorAs(t, err, &ierr)
		require.EqualValues(t, total, ierr.Available)
		require.EqualValues(t, total+1, ierr.Needed)
	})
}

func TestGenesisConservation(t *testing.T) {
	impl := IfaceImpl()

	t.Run("outputs equal declared supply", func(t *testing.T) {
		g := buildGenesis(t, 1000, 400, 600)
		require.NoError(t, contract.ValidateGenesis(Schema(), impl, g))
	})

	t.Run("one unit short", func(t *testing.T) {
		g := buildGenesis(t, 1000, 400, 599)
		requireErrno(t, contract.ValidateGenesis(Schema(), impl, g), "issuedMismatch")
	})

	t.Run("one unit over", func(t *testing.T) {
		g := buildGenesis(t, 1000, 400, 601)
		requireErrno(t, contract.ValidateGenesis(Schema(), impl, g), "issuedMismatch")
	})

	t.Run("output sum overflow", func(t *testing.T) {
		g := buildGenesis(t, 0, math.MaxUint64, 1)
		requireErrno(t, contract.ValidateGenesis(Schema(), impl, g), "amountOverflow")
	})
}

func TestContractIDDeterminism(t *testing.T) {
	params := IssueParams{
		Ticker:    "TEST",
		Name:      "Test asset",
		Precision: 8,
		Timestamp: Timestamp,
		Allocations: []Allocation{
			{Seal: teststate.SealWithSuffix(1), Amount: 600},
			{Seal: teststate.SealWithSuffix(2), Amount: 400},
		},
	}
	a, err := Issue(params)
	require.NoError(t, err)
	b, err := Issue(params)
	require.NoError(t, err)
	require.True(t, a.ID().Eq(b.ID()),
		"identical issuance parameters must derive identical contract ids")

	g1 := buildGenesis(t, 1000, 1000)
	g2 := buildGenesis(t, 1000, 1000)
	require.True(t, g1.ContractID().Eq(g2.ContractID()),
		"same genesis content must derive the same contract id")

	g3 := buildGenesis(t, 1001, 1001)
	require.False(t, g1.ContractID().Eq(g3.ContractID()))
}

func TestIssueParamChecks(t *testing.T) {
	valid := func() IssueParams {
		return IssueParams{
			Ticker:    "TEST",
			Name:      "Test asset",
			Precision: 8,
			Timestamp: Timestamp,
			Allocations: []Allocation{
				{Seal: teststate.SealWithSuffix(1), Amount: 1000},
			},
		}
	}

	cases := []struct {
		name   string
		mutate func(p *IssueParams)
		errMsg string
	}{
		{
			name:   "lowercase ticker",
			mutate: func(p *IssueParams) { p.Ticker = "test" },
			errMsg: "invalid ticker",
		},
		{
			name:   "precision too high",
			mutate: func(p *IssueParams) { p.Precision = 19 },
			errMsg: "invalid precision",
		},
		{
			name:   "no allocations",
			mutate: func(p *IssueParams) { p.Allocations = nil },
			errMsg: "invalid allocations: none given",
		},
		{
			name: "allocation overflow",
			mutate: func(p *IssueParams) {
				p.Allocations = []Allocation{
					{Seal: teststate.SealWithSuffix(1), Amount: math.MaxUint64},
					{Seal: teststate.SealWithSuffix(2), Amount: 1},
				}
			},
			errMsg: "invalid allocations: amounts overflow",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := valid()
			tc.mutate(&p)
			_, err := Issue(p)
			var perr *schemes.ParamError
			require.ErrorAs(t, err, &perr)
			require.ErrorContains(t, err, tc.errMsg)
		})
	}
}
