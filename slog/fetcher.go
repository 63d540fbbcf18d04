// Package slog provides logging decorators for docdex services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docdex"
)

// Ensure LoggingFetcher implements docdex.Fetcher at compile time.
var _ docdex.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with request logging.
type LoggingFetcher struct {
	next   docdex.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next docdex.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (string, error) {
	begin := time.Now()
	html, err := f.next.Fetch(ctx, url)
	if err != nil {
		f.logger.Error("fetch", "url", url, "duration", time.Since(begin), "err", err)
		return "", err
	}
	f.logger.Info("fetch", "url", url, "bytes", len(html), "duration", time.Since(begin))
	return html, nil
}

func (f *LoggingFetcher) Exists(ctx context.Context, url string) bool {
	ok := f.next.Exists(ctx, url)
	f.logger.Debug("probe", "url", url, "exists", ok)
	return ok
}

func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
