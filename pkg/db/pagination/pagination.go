// Package pagination implements cursor-based pagination for list endpoints.
package pagination

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
)

type Pagination struct {
	PageToken string
	PageSize  int
}

type PageInfo struct {
	NextPageToken string `json:"next_page_token,omitempty"`
	HasMore       bool   `json:"has_more"`
}

type Cursor struct {
	ID        string `json:"id"`
	CreatedAt string `json:"created_at"`
}

func EncodeCursor(c Cursor) (string, error) {
	raw, err := json.Marshal(c)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

func DecodeCursor(token string) (Cursor, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Cursor{}, errors.New("empty page token")
	}
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return Cursor{}, err
	}
	var c Cursor
	if err := json.Unmarshal(raw, &c); err != nil {
		return Cursor{}, err
	}
	return c, nil
}

// BuildCursorPageInfo trims an over-fetched result set (pageSize+1 rows) and
// derives the next-page token from the last visible item.
func BuildCursorPageInfo[T any](items []T, pageSize int32, cursorFor func(T) string) ([]T, *PageInfo) {
	info := &PageInfo{}
	if pageSize <= 0 || len(items) <= int(pageSize) {
		return items, info
	}
	items = items[:pageSize]
	info.HasMore = true
	info.NextPageToken = cursorFor(items[len(items)-1])
	return items, info
}
