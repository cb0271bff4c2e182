package service

import (
	"context"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/infohub/server/internal/client"
	"github.com/infohub/server/internal/models"
	"github.com/infohub/server/internal/observability"
)

// QuoteService serves one random motivational quote. Any upstream failure is
// absorbed silently: a random embedded quote is returned with no marker, so
// callers cannot tell fallback from live data.
type QuoteService struct {
	client client.QuoteClient
	pick   func(n int) int
}

// NewQuoteService creates a QuoteService.
func NewQuoteService(c client.QuoteClient) *QuoteService {
	return &QuoteService{client: c, pick: rand.Intn}
}

// Random returns a quote, live if possible, embedded otherwise.
func (s *QuoteService) Random(ctx context.Context) models.Quote {
	start := time.Now()
	q, err := s.client.RandomQuote(ctx)
	recordUpstream("quote", start, err)
	if err == nil {
		return q
	}

	if logger := loggerFromContext(ctx); logger != nil {
		logger.Debug("quote upstream failed, serving embedded quote", zap.Error(err))
	}
	observability.FallbackServesTotal.WithLabelValues("quote").Inc()
	return fallbackQuotes[s.pick(len(fallbackQuotes))]
}
