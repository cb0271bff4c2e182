package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/infohub/server/internal/cache"
	"github.com/infohub/server/internal/client"
	"github.com/infohub/server/internal/models"
)

// window24h builds 24 hourly samples starting at start, temperature rising
// one degree per hour so each sample is distinguishable.
func window24h(city string, start time.Time) client.ForecastResult {
	w := client.ForecastResult{City: city}
	for i := 0; i < 24; i++ {
		w.Samples = append(w.Samples, client.ForecastSample{
			Time:        start.Add(time.Duration(i) * time.Hour),
			TempC:       20 + float64(i),
			Description: "clear sky",
			Icon:        "01d",
			Humidity:    50,
			WindMS:      2.5,
		})
	}
	return w
}

// TestForecastService_GroupsByDay verifies 24 hourly samples spanning three
// calendar days produce exactly three entries, each from that day's earliest
// sample.
func TestForecastService_GroupsByDay(t *testing.T) {
	// Start at 22:00 local so the window crosses two midnights.
	start := time.Date(2025, 6, 1, 22, 0, 0, 0, time.Local)
	mock := &mockWeatherClient{window: window24h("Mumbai", start)}
	svc := NewForecastService(mock, cache.NewInMemoryCache(), 10*time.Minute, true, "Mumbai")

	payload, err := svc.Forecast(context.Background(), "Mumbai")
	if err != nil {
		t.Fatalf("Forecast() error = %v", err)
	}

	var got models.Forecast
	if err := json.Unmarshal(payload, &got); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}

	if got.City != "Mumbai" {
		t.Errorf("City = %q, want Mumbai", got.City)
	}
	if len(got.Forecast) != 3 {
		t.Fatalf("len(Forecast) = %d, want 3", len(got.Forecast))
	}

	// Day 1 representative is the very first sample (22:00, 20°C).
	if got.Forecast[0].Temperature != 20 {
		t.Errorf("day 1 temperature = %d, want 20 (first sample)", got.Forecast[0].Temperature)
	}
	// Day 2 starts at midnight, two hours in (22°C).
	if got.Forecast[1].Temperature != 22 {
		t.Errorf("day 2 temperature = %d, want 22 (first sample of day)", got.Forecast[1].Temperature)
	}

	seen := map[string]bool{}
	for _, day := range got.Forecast {
		if seen[day.Date] {
			t.Errorf("duplicate day %q in output", day.Date)
		}
		seen[day.Date] = true
		if day.Day == "" {
			t.Error("day label missing")
		}
		if day.WindSpeed != 9 { // 2.5 m/s = 9 km/h
			t.Errorf("WindSpeed = %d, want 9", day.WindSpeed)
		}
	}
}

// TestForecastService_DefaultCity verifies a blank city falls back to the
// configured default.
func TestForecastService_DefaultCity(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.Local)
	mock := &mockWeatherClient{window: window24h("Mumbai", start)}
	svc := NewForecastService(mock, cache.NewInMemoryCache(), 10*time.Minute, true, "Mumbai")

	payload, err := svc.Forecast(context.Background(), "")
	if err != nil {
		t.Fatalf("Forecast() error = %v", err)
	}

	var got models.Forecast
	_ = json.Unmarshal(payload, &got)
	if got.City != "Mumbai" {
		t.Errorf("City = %q, want the default city", got.City)
	}
}

// TestForecastService_CacheHit verifies the second identical request is
// served from cache.
func TestForecastService_CacheHit(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.Local)
	mock := &mockWeatherClient{window: window24h("Mumbai", start)}
	svc := NewForecastService(mock, cache.NewInMemoryCache(), 10*time.Minute, true, "Mumbai")
	ctx := context.Background()

	_, _ = svc.Forecast(ctx, "Mumbai")
	_, _ = svc.Forecast(ctx, "Mumbai")

	if mock.forecastCalls != 1 {
		t.Errorf("upstream calls = %d, want 1", mock.forecastCalls)
	}
}

// TestForecastService_NoAPIKey verifies the missing-key sentinel, returned
// without any upstream call.
func TestForecastService_NoAPIKey(t *testing.T) {
	mock := &mockWeatherClient{}
	svc := NewForecastService(mock, cache.NewInMemoryCache(), 10*time.Minute, false, "Mumbai")

	_, err := svc.Forecast(context.Background(), "Mumbai")
	if !errors.Is(err, ErrAPIKeyMissing) {
		t.Errorf("Forecast() error = %v, want ErrAPIKeyMissing", err)
	}
	if mock.forecastCalls != 0 {
		t.Errorf("upstream calls = %d, want 0", mock.forecastCalls)
	}
}

// TestForecastService_UpstreamError verifies upstream failures surface as
// errors for the handler's soft {error} conversion.
func TestForecastService_UpstreamError(t *testing.T) {
	mock := &mockWeatherClient{err: client.ErrUpstream}
	svc := NewForecastService(mock, cache.NewInMemoryCache(), 10*time.Minute, true, "Mumbai")

	_, err := svc.Forecast(context.Background(), "Mumbai")
	if !errors.Is(err, client.ErrUpstream) {
		t.Errorf("Forecast() error = %v, want ErrUpstream", err)
	}
}
