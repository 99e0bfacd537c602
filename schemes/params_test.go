package schemes

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCheckTicker(t *testing.T) {
	for _, ticker := range []string{"A", "TEST", "USDT", "A1B2C3D4", "X999"} {
		require.NoError(t, CheckTicker(ticker), ticker)
	}

	cases := []struct {
		ticker string
		errMsg string
	}{
		{"", "length 0"},
		{"TOOLONGTICKER", "length 13"},
		{"test", `character 't' not allowed`},
		{"TE ST", `character ' ' not allowed`},
		{"1ABC", "must start with a letter"},
	}
	for _, tc := range cases {
		err := CheckTicker(tc.ticker)
		require.ErrorContains(t, err, tc.errMsg, tc.ticker)
		var perr *ParamError
		require.True(t, errors.As(err, &perr))
		require.Equal(t, "ticker", perr.Field)
	}
}

func TestCheckName(t *testing.T) {
	require.NoError(t, CheckName("Test asset"))
	require.ErrorContains(t, CheckName(""), "empty")
	require.ErrorContains(t, CheckName(strings.Repeat("x", MaxNameLen+1)), "exceeds 40")
	require.ErrorContains(t, CheckName("bad\nname"), "not printable")
}

func TestCheckPrecision(t *testing.T) {
	require.NoError(t, CheckPrecision(0))
	require.NoError(t, CheckPrecision(MaxPrecision))
	require.ErrorContains(t, CheckPrecision(MaxPrecision+1), "19 exceeds 18")
}
