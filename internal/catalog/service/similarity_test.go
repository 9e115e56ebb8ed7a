package service

import (
	"testing"

	catalogdomain "github.com/pressratelabs/pressrate/internal/catalog/domain"
	"github.com/stretchr/testify/require"
)

func TestNormalizeName(t *testing.T) {
	require.Equal(t, "DAILY GRAPHIC", normalizeName("  daily   graphic "))
	require.Equal(t, "FULL PAGE", normalizeName("Full Page"))
	require.Equal(t, "", normalizeName("   "))
}

func TestSimilarityScoreExactMatchOnly100(t *testing.T) {
	require.Equal(t, 100, similarityScore("DAILY GRAPHIC", "DAILY GRAPHIC"))

	// Near-identical names must stay below 100 so exact match is unambiguous.
	score := similarityScore("DAILY GRAPHIK", "DAILY GRAPHIC")
	require.Less(t, score, 100)
	require.GreaterOrEqual(t, score, 85)
}

func TestSimilarityScoreDistantNames(t *testing.T) {
	score := similarityScore("BACK PAGE", "FRONT PAGE SOLUS")
	require.Less(t, score, 85)
}

func TestRankMatchesOrdersBestFirst(t *testing.T) {
	entries := []catalogdomain.DimensionEntity{
		{ID: 1, Name: "GHANAIAN TIMES"},
		{ID: 2, Name: "DAILY GRAPHIC"},
		{ID: 3, Name: "GRAPHIC SPORTS"},
	}

	matches := rankMatches("DAILY GRAPHIC", entries)
	require.Len(t, matches, 3)
	require.Equal(t, "DAILY GRAPHIC", matches[0].Name)
	require.Equal(t, 100, matches[0].Score)
	require.GreaterOrEqual(t, matches[1].Score, matches[2].Score)
}

func TestRankMatchesTiesBreakByID(t *testing.T) {
	entries := []catalogdomain.DimensionEntity{
		{ID: 9, Name: "HALF PAGE"},
		{ID: 4, Name: "HALF PAGE"},
	}

	matches := rankMatches("HALF PAGE", entries)
	require.Equal(t, int64(4), int64(matches[0].ID))
	require.Equal(t, int64(9), int64(matches[1].ID))
}
