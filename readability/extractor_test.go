package readability_test

import (
	"testing"

	"github.com/fwojciec/dealscan"
	"github.com/fwojciec/dealscan/readability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Extractor implements dealscan.ContentExtractor at compile time.
var _ dealscan.ContentExtractor = (*readability.Extractor)(nil)

func TestExtractor_ExtractText(t *testing.T) {
	t.Parallel()

	t.Run("extracts main content as plain text", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head><title>Nintendo Switch OLED - For Sale</title></head>
<body>
<nav><a href="/">Home</a></nav>
<article>
<h1>Nintendo Switch OLED</h1>
<p>Console in great shape with original box, dock and both Joy-Cons. Screen has no scratches, always used with a tempered glass protector.</p>
<p>Comes with three games and a carrying case.</p>
</article>
<footer>Copyright 2026</footer>
</body>
</html>`

		ext := readability.NewExtractor()
		text, err := ext.ExtractText(html)

		require.NoError(t, err)
		assert.Contains(t, text, "original box")
		assert.Contains(t, text, "carrying case")
		assert.NotContains(t, text, "<p>")
	})

	t.Run("empty input is invalid", func(t *testing.T) {
		t.Parallel()

		ext := readability.NewExtractor()
		_, err := ext.ExtractText("")

		assert.Equal(t, dealscan.EINVALID, dealscan.ErrorCode(err))
	})
}
