package traderjoes

import (
	"net/url"
	"testing"

	"github.com/pantry-scan/pantryscan/extract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveURL(t *testing.T) {
	base, err := url.Parse("https://www.traderjoes.com/home/products/category/food-8")
	require.NoError(t, err)

	tests := []struct {
		name string
		href string
		want string
	}{
		{"relative", "/home/products/pdp/x-1", "https://www.traderjoes.com/home/products/pdp/x-1"},
		{"absolute", "https://www.traderjoes.com/home/products/pdp/x-2", "https://www.traderjoes.com/home/products/pdp/x-2"},
		{"fragment stripped", "/home/products/pdp/x-3#reviews", "https://www.traderjoes.com/home/products/pdp/x-3"},
		{"javascript rejected", "javascript:void(0)", ""},
		{"mailto rejected", "mailto:a@b.c", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolveURL(base, tt.href))
		})
	}
}

func TestNextPageURL(t *testing.T) {
	base, err := url.Parse("https://www.traderjoes.com/home/products/category/food-8")
	require.NoError(t, err)

	page := `<html><body>
<a rel="next" href="/home/products/category/food-8?page=2">Next</a>
</body></html>`
	doc, err := extract.NewDocument(page)
	require.NoError(t, err)

	assert.Equal(t,
		"https://www.traderjoes.com/home/products/category/food-8?page=2",
		nextPageURL(doc, base),
	)
}

func TestNextPageURL_NoPagination(t *testing.T) {
	doc, err := extract.NewDocument(`<html><body><p>last page</p></body></html>`)
	require.NoError(t, err)

	assert.Empty(t, nextPageURL(doc, nil))
}
