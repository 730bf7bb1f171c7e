package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorRoundTrip(t *testing.T) {
	created := time.Date(2026, 3, 14, 9, 26, 53, 589793000, time.UTC)
	cursor := Cursor{CreatedAt: created, ID: 42}

	decoded := DecodeCursor(cursor.Encode())
	require.NotNil(t, decoded)
	assert.True(t, decoded.CreatedAt.Equal(created))
	assert.Equal(t, uint(42), decoded.ID)
}

func TestDecodeCursorInvalid(t *testing.T) {
	cases := []struct {
		name   string
		cursor string
	}{
		{"empty", ""},
		{"not base64", "!!not-base64!!"},
		{"missing delimiter", "MjAyNi0wMy0xNFQwOToyNjo1M1o"},
		{"bad timestamp", "bm90LWEtdGltZXwxMjM="},
		{"bad id", "MjAyNi0wMy0xNFQwOToyNjo1M1p8YWJj"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Nil(t, DecodeCursor(tc.cursor))
		})
	}
}

func TestBuildPageWithNext(t *testing.T) {
	last := Cursor{CreatedAt: time.Now().UTC(), ID: 7}
	page := BuildPage(10, 10, true, last, "")

	assert.True(t, page.HasNext)
	assert.False(t, page.HasPrev)
	require.NotNil(t, page.NextCursor)
	assert.Equal(t, last.Encode(), *page.NextCursor)
	assert.Nil(t, page.PrevCursor)
	assert.Equal(t, 10, page.Count)
}

func TestBuildPageLastPage(t *testing.T) {
	page := BuildPage(10, 3, false, Cursor{}, "prev-token")

	assert.False(t, page.HasNext)
	assert.True(t, page.HasPrev)
	assert.Nil(t, page.NextCursor)
	require.NotNil(t, page.PrevCursor)
	assert.Equal(t, "prev-token", *page.PrevCursor)
}
