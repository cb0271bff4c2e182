package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/infohub/server/internal/client"
	"github.com/infohub/server/internal/models"
	"github.com/infohub/server/internal/observability"
)

// baseCurrency is the fixed source currency for conversions.
const baseCurrency = "INR"

// CurrencyService converts INR amounts to USD and EUR at live rates, falling
// back to fixed rates when the rate upstream fails. Rates are fetched fresh
// on every call; there is no caching on this path.
type CurrencyService struct {
	rates client.RateClient
}

// NewCurrencyService creates a CurrencyService.
func NewCurrencyService(rates client.RateClient) *CurrencyService {
	return &CurrencyService{rates: rates}
}

// Convert computes the USD/EUR equivalents of amount. It always produces a
// payload: on any upstream failure the fallback rates are substituted and the
// result carries note and error markers.
func (s *CurrencyService) Convert(ctx context.Context, amount float64) models.CurrencyConversion {
	start := time.Now()
	rates, err := s.rates.LatestRates(ctx, baseCurrency)
	recordUpstream("currency", start, err)

	if err == nil {
		usd, okUSD := rates["USD"]
		eur, okEUR := rates["EUR"]
		if okUSD && okEUR {
			return buildConversion(amount, usd, eur)
		}
		err = fmt.Errorf("%w: rate table missing USD or EUR", client.ErrUpstream)
	}

	if logger := loggerFromContext(ctx); logger != nil {
		logger.Warn("rate upstream failed, using fallback rates", zap.Error(err))
	}
	observability.FallbackServesTotal.WithLabelValues("currency").Inc()

	conv := buildConversion(amount, fallbackUSDRate, fallbackEURRate)
	conv.Note = "Using fallback rates due to API unavailability"
	conv.Error = "Failed to fetch data"
	return conv
}

func buildConversion(amount, usdRate, eurRate float64) models.CurrencyConversion {
	return models.CurrencyConversion{
		Amount: amount,
		From:   baseCurrency,
		Conversions: models.Conversions{
			USD: round2(amount * usdRate),
			EUR: round2(amount * eurRate),
		},
		Rates: models.Rates{
			USD: fmt.Sprintf("%.4f", usdRate),
			EUR: fmt.Sprintf("%.4f", eurRate),
		},
	}
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
