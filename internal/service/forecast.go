package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/infohub/server/internal/cache"
	"github.com/infohub/server/internal/client"
	"github.com/infohub/server/internal/models"
	"github.com/infohub/server/internal/observability"
)

// ErrAPIKeyMissing is returned when no weather API key is configured. The
// forecast endpoint has no static fallback; the handler turns this into a
// soft {error} payload.
var ErrAPIKeyMissing = errors.New("API key not configured")

// forecastSamples is the upstream window size: 24 three-hourly samples,
// enough to span three calendar days.
const forecastSamples = 24

// forecastDays caps the number of days in the output.
const forecastDays = 3

// Day key and label formats are part of the response contract.
const (
	dayKeyFormat   = "Mon Jan 02 2006"
	dayLabelFormat = "Mon, Jan 2"
)

// ForecastService serves the 3-day forecast with the same cache-aside pattern
// as WeatherService.
type ForecastService struct {
	client      client.WeatherClient
	cache       cache.Cache
	ttl         time.Duration
	hasAPIKey   bool
	defaultCity string
}

// NewForecastService creates a ForecastService. defaultCity is used when the
// caller omits the city parameter.
func NewForecastService(c client.WeatherClient, cache cache.Cache, ttl time.Duration, hasAPIKey bool, defaultCity string) *ForecastService {
	return &ForecastService{
		client:      c,
		cache:       cache,
		ttl:         ttl,
		hasAPIKey:   hasAPIKey,
		defaultCity: defaultCity,
	}
}

// DefaultCity returns the city used when none is requested.
func (s *ForecastService) DefaultCity() string {
	return s.defaultCity
}

// Forecast returns the marshaled Forecast payload for the city (or the
// default city if blank). All errors are soft for the caller: the handler
// converts them into 200 {error} responses.
func (s *ForecastService) Forecast(ctx context.Context, city string) (json.RawMessage, error) {
	if city == "" {
		city = s.defaultCity
	}
	if !s.hasAPIKey {
		observability.FallbackServesTotal.WithLabelValues("forecast").Inc()
		return nil, ErrAPIKeyMissing
	}

	key := "forecast:" + city
	logger := loggerFromContext(ctx)

	if cached, ok, err := s.cache.Get(ctx, key); err == nil && ok {
		observability.CacheHitsTotal.WithLabelValues("forecast").Inc()
		if logger != nil {
			logger.Debug("cache hit", zap.String("key", key))
		}
		return cached, nil
	} else if err != nil && logger != nil {
		logger.Warn("cache get failed", zap.String("key", key), zap.Error(err))
	}

	start := time.Now()
	window, err := s.client.ForecastWindow(ctx, city, forecastSamples)
	recordUpstream("forecast", start, err)
	if err != nil {
		return nil, fmt.Errorf("fetch forecast for %s: %w", city, err)
	}

	payload, err := marshalPayload(groupForecast(window))
	if err != nil {
		return nil, err
	}

	if setErr := s.cache.Set(ctx, key, payload, s.ttl); setErr != nil && logger != nil {
		logger.Warn("cache set failed", zap.String("key", key), zap.Error(setErr))
	}
	return payload, nil
}

// groupForecast buckets samples by calendar day (process-local time) in
// encounter order and keeps the first sample of each of the first three days
// as that day's representative reading.
func groupForecast(window client.ForecastResult) models.Forecast {
	out := models.Forecast{City: window.City, Forecast: []models.ForecastDay{}}
	seen := make(map[string]struct{}, forecastDays)

	for _, sample := range window.Samples {
		dayKey := sample.Time.Format(dayKeyFormat)
		if _, ok := seen[dayKey]; ok {
			continue
		}
		if len(out.Forecast) == forecastDays {
			break
		}
		seen[dayKey] = struct{}{}
		out.Forecast = append(out.Forecast, models.ForecastDay{
			Date:        dayKey,
			Day:         sample.Time.Format(dayLabelFormat),
			Temperature: int(math.Round(sample.TempC)),
			Description: sample.Description,
			Icon:        sample.Icon,
			Humidity:    sample.Humidity,
			WindSpeed:   int(math.Round(sample.WindMS * 3.6)),
		})
	}
	return out
}
