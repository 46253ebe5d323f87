package rod

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/go-rod/rod"

	"github.com/fwojciec/dealscan"
)

// captureWaitMS bounds how long a capture waits for an image to finish
// loading before giving up.
const captureWaitMS = 2000

// Ensure RenderedDocument implements dealscan.Document at compile time.
var _ dealscan.Document = (*RenderedDocument)(nil)

// RenderedDocument is a dealscan.Document backed by a live browser page.
// It supports the full surface: visible text comes from the rendered
// layout, text spans carry computed font sizes, and images can be
// rasterized onto an offscreen canvas for proxy-mode harvesting.
type RenderedDocument struct {
	page *rod.Page
	url  string
}

// URL returns the page's resolved URL.
func (d *RenderedDocument) URL() string {
	return d.url
}

// HTML returns the rendered markup.
func (d *RenderedDocument) HTML(ctx context.Context) (string, error) {
	html, err := d.page.Context(ctx).HTML()
	if err != nil {
		return "", dealscan.Errorf(dealscan.EINTERNAL, "reading page HTML: %v", err)
	}
	return html, nil
}

const visibleTextJS = `() => document.body ? document.body.innerText : ''`

// VisibleText returns the page's visible text as the rendered layout
// presents it, one line per block-level run.
func (d *RenderedDocument) VisibleText(ctx context.Context) (string, error) {
	obj, err := d.page.Context(ctx).Eval(visibleTextJS)
	if err != nil {
		return "", dealscan.Errorf(dealscan.EINTERNAL, "reading visible text: %v", err)
	}
	return obj.Value.Str(), nil
}

const textSpansJS = `(selector) => Array.from(document.querySelectorAll(selector)).map((el, i) => ({
	text: el.innerText || el.textContent || '',
	fontSizePx: parseFloat(window.getComputedStyle(el).fontSize) || 0,
	position: i,
}))`

// TextSpans returns the elements matching the selector with their
// computed font sizes, in document order.
func (d *RenderedDocument) TextSpans(ctx context.Context, selector string) ([]dealscan.TextSpan, error) {
	obj, err := d.page.Context(ctx).Eval(textSpansJS, selector)
	if err != nil {
		return nil, dealscan.Errorf(dealscan.EINTERNAL, "reading text spans: %v", err)
	}

	var spans []dealscan.TextSpan
	if err := json.Unmarshal([]byte(obj.Value.JSON("", "")), &spans); err != nil {
		return nil, dealscan.Errorf(dealscan.EINTERNAL, "decoding text spans: %v", err)
	}
	return spans, nil
}

const imagesJS = `(selector) => Array.from(document.querySelectorAll(selector)).map((img) => ({
	url: img.src || '',
	naturalWidth: img.naturalWidth || 0,
	naturalHeight: img.naturalHeight || 0,
	complete: !!img.complete,
}))`

// Images returns candidate images matching the selector with their
// intrinsic dimensions and load state.
func (d *RenderedDocument) Images(ctx context.Context, selector string) ([]dealscan.PageImage, error) {
	obj, err := d.page.Context(ctx).Eval(imagesJS, selector)
	if err != nil {
		return nil, dealscan.Errorf(dealscan.EINTERNAL, "reading images: %v", err)
	}

	var images []dealscan.PageImage
	if err := json.Unmarshal([]byte(obj.Value.JSON("", "")), &images); err != nil {
		return nil, dealscan.Errorf(dealscan.EINTERNAL, "decoding images: %v", err)
	}
	return images, nil
}

const captureImageJS = `(src, maxEdge, quality, waitMs) => new Promise((resolve) => {
	const img = new Image();
	img.crossOrigin = 'anonymous';
	const timer = setTimeout(() => resolve(''), waitMs);
	img.onload = () => {
		clearTimeout(timer);
		try {
			const scale = Math.min(1, maxEdge / Math.max(img.naturalWidth, img.naturalHeight));
			const canvas = document.createElement('canvas');
			canvas.width = Math.round(img.naturalWidth * scale);
			canvas.height = Math.round(img.naturalHeight * scale);
			canvas.getContext('2d').drawImage(img, 0, 0, canvas.width, canvas.height);
			resolve(canvas.toDataURL('image/jpeg', quality));
		} catch (e) {
			resolve('');
		}
	};
	img.onerror = () => { clearTimeout(timer); resolve(''); };
	img.src = src;
})`

// CaptureImage rasterizes the image at url onto an offscreen canvas,
// downscaled to maxEdge pixels, and returns a JPEG data URL encoded at
// the given quality. The page's session authenticates the image request,
// which is what lets proxy-mode harvesting reach session-gated CDNs.
func (d *RenderedDocument) CaptureImage(ctx context.Context, url string, maxEdge int, quality float64) (string, error) {
	obj, err := d.page.Context(ctx).Evaluate(rod.Eval(captureImageJS, url, maxEdge, quality, captureWaitMS).ByPromise())
	if err != nil {
		return "", dealscan.Errorf(dealscan.EINTERNAL, "capturing image: %v", err)
	}

	data := obj.Value.Str()
	if !strings.HasPrefix(data, "data:image") {
		return "", dealscan.Errorf(dealscan.EINTERNAL, "image %s did not produce a capturable payload", url)
	}
	return data, nil
}

// Close releases the underlying page.
func (d *RenderedDocument) Close() error {
	return d.page.Close()
}
