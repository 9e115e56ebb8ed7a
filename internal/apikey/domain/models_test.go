package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateAPIKey(t *testing.T) {
	first, err := GenerateAPIKey()
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(first, "prk_"))

	second, err := GenerateAPIKey()
	require.NoError(t, err)
	require.NotEqual(t, first, second)
}

func TestHashAPIKeyDeterministic(t *testing.T) {
	require.Equal(t, HashAPIKey("prk_abc"), HashAPIKey("prk_abc"))
	require.NotEqual(t, HashAPIKey("prk_abc"), HashAPIKey("prk_abd"))
	require.Len(t, HashAPIKey("prk_abc"), 64)
}

func TestValidRole(t *testing.T) {
	require.True(t, ValidRole(RoleAdmin))
	require.True(t, ValidRole(RoleViewer))
	require.False(t, ValidRole("role:root"))
}
