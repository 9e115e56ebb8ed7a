package pagination

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCursorRoundTrip(t *testing.T) {
	token, err := EncodeCursor(Cursor{ID: "123", CreatedAt: "2026-01-01T00:00:00Z"})
	require.NoError(t, err)

	decoded, err := DecodeCursor(token)
	require.NoError(t, err)
	require.Equal(t, "123", decoded.ID)
	require.Equal(t, "2026-01-01T00:00:00Z", decoded.CreatedAt)
}

func TestDecodeCursorRejectsGarbage(t *testing.T) {
	_, err := DecodeCursor("")
	require.Error(t, err)

	_, err = DecodeCursor("not base64 ???")
	require.Error(t, err)
}

func TestBuildCursorPageInfoTrimsOverfetch(t *testing.T) {
	items := []string{"a", "b", "c", "d"}

	trimmed, info := BuildCursorPageInfo(items, 3, func(s string) string { return "cursor-" + s })
	require.Equal(t, []string{"a", "b", "c"}, trimmed)
	require.True(t, info.HasMore)
	require.Equal(t, "cursor-c", info.NextPageToken)
}

func TestBuildCursorPageInfoLastPage(t *testing.T) {
	items := []string{"a", "b"}

	trimmed, info := BuildCursorPageInfo(items, 3, func(s string) string { return s })
	require.Equal(t, items, trimmed)
	require.False(t, info.HasMore)
	require.Empty(t, info.NextPageToken)
}
