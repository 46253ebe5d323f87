package goquery_test

import (
	"context"
	"testing"

	"github.com/fwojciec/dealscan"
	"github.com/fwojciec/dealscan/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticDocument(t *testing.T) {
	t.Parallel()

	t.Run("returns visible text one line per block", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head><title>ignored</title><style>body { color: red; }</style></head>
<body>
<script>var tracked = true;</script>
<div>Hello <span>world</span></div>
<p>Second line</p>
</body>
</html>`

		doc, err := goquery.NewStaticDocument(html, "https://example.com/listing")
		require.NoError(t, err)

		text, err := doc.VisibleText(context.Background())
		require.NoError(t, err)

		lines := dealscan.SplitVisibleLines(text)
		assert.Equal(t, []string{"Hello world", "Second line"}, lines)
	})

	t.Run("resolves relative image sources against the page URL", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<img src="/photos/table.jpg" width="640" height="480">
<img src="https://cdn.example.com/chair.jpg">
</body></html>`

		doc, err := goquery.NewStaticDocument(html, "https://example.com/listing/123")
		require.NoError(t, err)

		images, err := doc.Images(context.Background(), "img")
		require.NoError(t, err)
		require.Len(t, images, 2)

		assert.Equal(t, "https://example.com/photos/table.jpg", images[0].URL)
		assert.Equal(t, 640, images[0].NaturalWidth)
		assert.Equal(t, 480, images[0].NaturalHeight)
		assert.True(t, images[0].Complete)

		assert.Equal(t, "https://cdn.example.com/chair.jpg", images[1].URL)
		assert.Equal(t, 0, images[1].NaturalWidth)
		assert.Equal(t, 0, images[1].NaturalHeight)
	})

	t.Run("text spans are not implemented", func(t *testing.T) {
		t.Parallel()

		doc, err := goquery.NewStaticDocument("<html><body></body></html>", "https://example.com")
		require.NoError(t, err)

		_, err = doc.TextSpans(context.Background(), "span")
		assert.Equal(t, dealscan.ENOTIMPLEMENTED, dealscan.ErrorCode(err))
	})

	t.Run("image capture is not implemented", func(t *testing.T) {
		t.Parallel()

		doc, err := goquery.NewStaticDocument("<html><body></body></html>", "https://example.com")
		require.NoError(t, err)

		_, err = doc.CaptureImage(context.Background(), "https://example.com/a.jpg", 800, 0.7)
		assert.Equal(t, dealscan.ENOTIMPLEMENTED, dealscan.ErrorCode(err))
	})

	t.Run("rejects an invalid page URL", func(t *testing.T) {
		t.Parallel()

		_, err := goquery.NewStaticDocument("<html></html>", "://not-a-url")
		assert.Equal(t, dealscan.EINVALID, dealscan.ErrorCode(err))
	})
}
