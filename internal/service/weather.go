package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/infohub/server/internal/cache"
	"github.com/infohub/server/internal/client"
	"github.com/infohub/server/internal/models"
	"github.com/infohub/server/internal/observability"
)

// WeatherService serves normalized current conditions using a cache-aside
// pattern. Without a configured API key it short-circuits to a fixed fallback
// payload (marked with a note) before any upstream call; fallback payloads
// are never cached.
type WeatherService struct {
	client    client.WeatherClient
	cache     cache.Cache
	ttl       time.Duration
	hasAPIKey bool
}

// NewWeatherService creates a WeatherService. ttl is the cache expiration for
// normalized payloads. hasAPIKey false enables the fallback short-circuit.
func NewWeatherService(c client.WeatherClient, cache cache.Cache, ttl time.Duration, hasAPIKey bool) *WeatherService {
	return &WeatherService{
		client:    c,
		cache:     cache,
		ttl:       ttl,
		hasAPIKey: hasAPIKey,
	}
}

// Current returns the marshaled NormalizedWeather payload for the query.
// Cached payloads are replayed byte-identical. Upstream failures are returned
// as classified client errors; the handler maps them to HTTP statuses.
func (s *WeatherService) Current(ctx context.Context, q client.Query) (json.RawMessage, error) {
	key := q.CacheKey()
	logger := loggerFromContext(ctx)
	observability.RecordWeatherQuery(q.City)

	if cached, ok, err := s.cache.Get(ctx, key); err == nil && ok {
		observability.CacheHitsTotal.WithLabelValues("weather").Inc()
		if logger != nil {
			logger.Debug("cache hit", zap.String("key", key))
		}
		return cached, nil
	} else if err != nil && logger != nil {
		logger.Warn("cache get failed", zap.String("key", key), zap.Error(err))
	}

	if !s.hasAPIKey {
		observability.FallbackServesTotal.WithLabelValues("weather").Inc()
		if logger != nil {
			logger.Warn("no weather API key configured, serving fallback data", zap.String("key", key))
		}
		return marshalPayload(fallbackWeather(q))
	}

	start := time.Now()
	cond, err := s.client.CurrentWeather(ctx, q)
	recordUpstream("weather", start, err)
	if err != nil {
		return nil, fmt.Errorf("fetch weather for %s: %w", key, err)
	}

	payload, err := marshalPayload(normalizeWeather(cond, q))
	if err != nil {
		return nil, err
	}

	if setErr := s.cache.Set(ctx, key, payload, s.ttl); setErr != nil && logger != nil {
		logger.Warn("cache set failed", zap.String("key", key), zap.Error(setErr))
	}
	return payload, nil
}

// normalizeWeather reshapes an upstream reading into the stable output
// schema: whole °C and wind converted from m/s to km/h.
func normalizeWeather(cond client.CurrentConditions, q client.Query) models.Weather {
	city := cond.City
	if city == "" {
		if q.HasCoords {
			city = coordLocationName
		} else {
			city = q.City
		}
	}
	return models.Weather{
		City:        city,
		Temperature: int(math.Round(cond.TempC)),
		Description: cond.Description,
		Humidity:    cond.Humidity,
		WindSpeed:   int(math.Round(cond.WindMS * 3.6)),
		Icon:        cond.Icon,
	}
}

// fallbackWeather builds the fixed degraded payload for a query. The note
// lets callers distinguish it from a live reading.
func fallbackWeather(q client.Query) models.Weather {
	city := q.City
	if q.HasCoords {
		city = coordLocationName
	}
	return models.Weather{
		City:        city,
		Temperature: fallbackTemperature,
		Description: fallbackDescription,
		Humidity:    fallbackHumidity,
		WindSpeed:   fallbackWindSpeed,
		Icon:        fallbackIcon,
		Note:        "API key not configured - using fallback data",
	}
}

func marshalPayload(v any) (json.RawMessage, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}
	return b, nil
}

// recordUpstream records call count and latency for an upstream service.
func recordUpstream(service string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = string(client.CategorizeError(err))
	}
	observability.UpstreamCallsTotal.WithLabelValues(service, status).Inc()
	observability.UpstreamDuration.WithLabelValues(service, status).Observe(time.Since(start).Seconds())
}
