package goquery_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/fwojciec/dealscan"
	"github.com/fwojciec/dealscan/goquery"
	"github.com/fwojciec/dealscan/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFacebookStrategy_ExtractFields(t *testing.T) {
	t.Parallel()

	t.Run("extracts fields from structured metadata on a static snapshot", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head>
<meta property="og:title" content="IKEA Mörbylånga Table">
<meta property="product:price:amount" content="49.99">
</head>
<body>
<div><span>IKEA Mörbylånga Table</span></div>
<div><span>$49.99</span></div>
<div>Message seller</div>
<div>Solid oak table in great condition.</div>
</body>
</html>`

		doc, err := goquery.NewStaticDocument(html, "https://www.facebook.com/marketplace/item/1")
		require.NoError(t, err)

		strategy := goquery.NewFacebookStrategy()
		fields, err := strategy.ExtractFields(context.Background(), doc)

		require.NoError(t, err)
		assert.Equal(t, "IKEA Mörbylånga Table", fields.Title)
		assert.Equal(t, "$49.99", fields.Price)
		assert.Equal(t, "Solid oak table in great condition.", fields.Description)
	})

	t.Run("falls back to heading when metadata is missing", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<h1>Herman Miller Aeron Chair</h1>
<div><span>$450</span></div>
</body></html>`

		doc, err := goquery.NewStaticDocument(html, "https://www.facebook.com/marketplace/item/2")
		require.NoError(t, err)

		strategy := goquery.NewFacebookStrategy()
		fields, err := strategy.ExtractFields(context.Background(), doc)

		require.NoError(t, err)
		assert.Equal(t, "Herman Miller Aeron Chair", fields.Title)
		assert.Equal(t, "$450", fields.Price)
	})

	t.Run("extraction degrades to empty fields, never fails", func(t *testing.T) {
		t.Parallel()

		doc, err := goquery.NewStaticDocument("<html><body></body></html>", "https://www.facebook.com/marketplace/item/3")
		require.NoError(t, err)

		strategy := goquery.NewFacebookStrategy()
		fields, err := strategy.ExtractFields(context.Background(), doc)

		require.NoError(t, err)
		assert.Empty(t, fields.Title)
		assert.Empty(t, fields.Price)
		assert.Empty(t, fields.Description)
	})
}

func TestFacebookStrategy_HarvestImages(t *testing.T) {
	t.Parallel()

	t.Run("captures admitted images as inline payloads", func(t *testing.T) {
		t.Parallel()

		doc := &mock.Document{
			ImagesFn: func(_ context.Context, selector string) ([]dealscan.PageImage, error) {
				if selector != `img[src*="scontent"]` {
					return nil, nil
				}
				return []dealscan.PageImage{
					{URL: "https://scontent.example.com/photo1.jpg", NaturalWidth: 1200, NaturalHeight: 900, Complete: true},
					{URL: "https://scontent.example.com/icon/badge.png", NaturalWidth: 1200, NaturalHeight: 900, Complete: true},
					{URL: "https://scontent.example.com/photo2.jpg", NaturalWidth: 800, NaturalHeight: 600, Complete: true},
					{URL: "https://scontent.example.com/broken.jpg", NaturalWidth: 800, NaturalHeight: 600, Complete: true},
				}, nil
			},
			CaptureImageFn: func(_ context.Context, url string, maxEdge int, quality float64) (string, error) {
				assert.Equal(t, 800, maxEdge)
				assert.InDelta(t, 0.7, quality, 0.001)
				if url == "https://scontent.example.com/broken.jpg" {
					return "", fmt.Errorf("image failed to load")
				}
				return "data:image/jpeg;base64,ZmFrZQ==", nil
			},
		}

		strategy := goquery.NewFacebookStrategy()
		refs, err := strategy.HarvestImages(context.Background(), doc, 10)

		require.NoError(t, err)
		require.Len(t, refs, 2)
		for _, ref := range refs {
			assert.Equal(t, dealscan.ImageInline, ref.Kind)
			assert.Equal(t, "data:image/jpeg;base64,ZmFrZQ==", ref.Data)
		}
	})

	t.Run("rejects images below the minimum edge", func(t *testing.T) {
		t.Parallel()

		doc := &mock.Document{
			ImagesFn: func(_ context.Context, selector string) ([]dealscan.PageImage, error) {
				if selector != `img[src*="scontent"]` {
					return nil, nil
				}
				return []dealscan.PageImage{
					{URL: "https://scontent.example.com/thumb.jpg", NaturalWidth: 50, NaturalHeight: 50, Complete: true},
				}, nil
			},
			CaptureImageFn: func(_ context.Context, url string, maxEdge int, quality float64) (string, error) {
				t.Fatalf("capture should not run for rejected image %s", url)
				return "", nil
			},
		}

		strategy := goquery.NewFacebookStrategy()
		refs, err := strategy.HarvestImages(context.Background(), doc, 10)

		require.NoError(t, err)
		assert.Empty(t, refs)
	})

	t.Run("degrades to no images on a static snapshot", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<img src="https://scontent.example.com/photo1.jpg" width="1200" height="900">
</body></html>`

		doc, err := goquery.NewStaticDocument(html, "https://www.facebook.com/marketplace/item/4")
		require.NoError(t, err)

		strategy := goquery.NewFacebookStrategy()
		refs, err := strategy.HarvestImages(context.Background(), doc, 10)

		require.NoError(t, err)
		assert.Empty(t, refs)
	})
}
