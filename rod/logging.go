package rod

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/dealscan"
)

// Ensure LoggingOpener implements dealscan.DocumentOpener.
var _ dealscan.DocumentOpener = (*LoggingOpener)(nil)

// LoggingOpener wraps a DocumentOpener with debug logging.
type LoggingOpener struct {
	next   dealscan.DocumentOpener
	logger *slog.Logger
}

// NewLoggingOpener creates a new LoggingOpener.
func NewLoggingOpener(next dealscan.DocumentOpener, logger *slog.Logger) *LoggingOpener {
	return &LoggingOpener{next: next, logger: logger}
}

// Open logs the URL being opened and delegates to the wrapped opener.
func (o *LoggingOpener) Open(ctx context.Context, url string) (doc dealscan.Document, err error) {
	defer func(begin time.Time) {
		o.logger.Info("open",
			"url", url,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return o.next.Open(ctx, url)
}

// Close delegates to the wrapped opener.
func (o *LoggingOpener) Close() error {
	return o.next.Close()
}
