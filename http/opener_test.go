package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fwojciec/dealscan"
	dealscanhttp "github.com/fwojciec/dealscan/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticOpener_Open(t *testing.T) {
	t.Parallel()

	t.Run("returns a static document for the fetched page", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.NotEmpty(t, r.Header.Get("User-Agent"))
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte(`<html><body><h1>Hall Tree with Bench</h1></body></html>`))
		}))
		defer srv.Close()

		opener := dealscanhttp.NewStaticOpener()
		defer opener.Close()

		doc, err := opener.Open(context.Background(), srv.URL+"/listing/1")
		require.NoError(t, err)

		assert.Equal(t, srv.URL+"/listing/1", doc.URL())

		text, err := doc.VisibleText(context.Background())
		require.NoError(t, err)
		assert.Contains(t, text, "Hall Tree with Bench")

		// No rendering: visual heuristics are unavailable.
		_, err = doc.TextSpans(context.Background(), "span")
		assert.Equal(t, dealscan.ENOTIMPLEMENTED, dealscan.ErrorCode(err))
	})

	t.Run("follows redirects and reports the final URL", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		mux.HandleFunc("/old", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/new", http.StatusMovedPermanently)
		})
		mux.HandleFunc("/new", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<html><body>moved</body></html>`))
		})
		srv := httptest.NewServer(mux)
		defer srv.Close()

		opener := dealscanhttp.NewStaticOpener()
		defer opener.Close()

		doc, err := opener.Open(context.Background(), srv.URL+"/old")
		require.NoError(t, err)
		assert.Equal(t, srv.URL+"/new", doc.URL())
	})

	t.Run("non-200 responses fail", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		opener := dealscanhttp.NewStaticOpener()
		defer opener.Close()

		_, err := opener.Open(context.Background(), srv.URL)
		assert.Equal(t, dealscan.EINTERNAL, dealscan.ErrorCode(err))
	})
}
