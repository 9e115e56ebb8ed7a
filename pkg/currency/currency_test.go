package currency

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	f := NewFormatter("GHS", "GH₵")

	require.Equal(t, "GH₵0.00", f.Format(decimal.Zero))
	require.Equal(t, "GH₵945.00", f.Format(decimal.RequireFromString("945")))
	require.Equal(t, "GH₵1,150.00", f.Format(decimal.RequireFromString("1150")))
	require.Equal(t, "GH₵1,234,567.89", f.Format(decimal.RequireFromString("1234567.891")))
	require.Equal(t, "-GH₵172.50", f.Format(decimal.RequireFromString("-172.5")))
}

func TestNewFormatterDefaults(t *testing.T) {
	f := NewFormatter("", "")
	require.Equal(t, "GHS", f.Code())
	require.Equal(t, "GH₵25.00", f.Format(decimal.NewFromInt(25)))
}
