// Package gemini implements the inference stages of the analysis
// pipeline using Google Gemini: product identification and the final
// deal synthesis.
package gemini

import (
	"errors"
	"net/http"

	"google.golang.org/genai"

	"github.com/fwojciec/dealscan"
)

const model = "gemini-2.5-flash"

// translateAPIError maps provider HTTP failures onto the domain error
// codes the pipeline treats as terminal.
func translateAPIError(err error) error {
	var apiErr genai.APIError
	if !errors.As(err, &apiErr) {
		return err
	}
	switch apiErr.Code {
	case http.StatusUnauthorized, http.StatusForbidden:
		return dealscan.Errorf(dealscan.EUNAUTHORIZED, "invalid API key")
	case http.StatusTooManyRequests:
		return dealscan.Errorf(dealscan.ERATELIMIT, "rate limit exceeded, retry in a minute")
	default:
		return dealscan.Errorf(dealscan.EINTERNAL, "inference request failed: %s", apiErr.Message)
	}
}

// imagePart materializes an ImageRef as an inline request part.
func imagePart(data []byte, mimeType string) *genai.Part {
	return &genai.Part{InlineData: &genai.Blob{MIMEType: mimeType, Data: data}}
}
