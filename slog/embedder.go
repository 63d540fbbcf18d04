package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docdex"
)

// Ensure LoggingEmbedder implements docdex.Embedder at compile time.
var _ docdex.Embedder = (*LoggingEmbedder)(nil)

// LoggingEmbedder wraps an Embedder with batch logging.
type LoggingEmbedder struct {
	next   docdex.Embedder
	logger *slog.Logger
}

// NewLoggingEmbedder creates a new LoggingEmbedder.
func NewLoggingEmbedder(next docdex.Embedder, logger *slog.Logger) *LoggingEmbedder {
	return &LoggingEmbedder{next: next, logger: logger}
}

func (e *LoggingEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	begin := time.Now()
	vectors, err := e.next.Embed(ctx, texts)
	if err != nil {
		e.logger.Error("embed", "texts", len(texts), "duration", time.Since(begin), "err", err)
		return nil, err
	}
	e.logger.Debug("embed", "texts", len(texts), "duration", time.Since(begin))
	return vectors, nil
}

func (e *LoggingEmbedder) Close() error {
	return e.next.Close()
}
