package service

import (
	"context"
	"testing"

	"github.com/infohub/server/internal/client"
	"github.com/infohub/server/internal/models"
)

type mockQuoteClient struct {
	quote models.Quote
	err   error
}

func (m *mockQuoteClient) RandomQuote(ctx context.Context) (models.Quote, error) {
	return m.quote, m.err
}

// TestQuoteService_Random_Live verifies the upstream quote passes through
// unchanged.
func TestQuoteService_Random_Live(t *testing.T) {
	want := models.Quote{Text: "Do or do not.", Author: "Yoda"}
	svc := NewQuoteService(&mockQuoteClient{quote: want})

	got := svc.Random(context.Background())
	if got != want {
		t.Errorf("Random() = %+v, want %+v", got, want)
	}
}

// TestQuoteService_Random_Fallback verifies upstream failures are absorbed
// silently with a non-empty embedded quote.
func TestQuoteService_Random_Fallback(t *testing.T) {
	svc := NewQuoteService(&mockQuoteClient{err: client.ErrUnavailable})

	got := svc.Random(context.Background())
	if got.Text == "" || got.Author == "" {
		t.Errorf("Random() fallback = %+v, want non-empty text and author", got)
	}
}

// TestQuoteService_Random_FallbackCoversPool verifies every embedded quote is
// reachable through the selector.
func TestQuoteService_Random_FallbackCoversPool(t *testing.T) {
	svc := NewQuoteService(&mockQuoteClient{err: client.ErrUpstream})

	for i := range fallbackQuotes {
		svc.pick = func(n int) int { return i }
		got := svc.Random(context.Background())
		if got != fallbackQuotes[i] {
			t.Errorf("Random() with pick=%d = %+v, want %+v", i, got, fallbackQuotes[i])
		}
	}
}
