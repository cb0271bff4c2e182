package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const currentBody = `{
	"name": "Mumbai",
	"main": {"temp": 28.46, "humidity": 65},
	"weather": [{"description": "haze", "icon": "50d"}],
	"wind": {"speed": 3.4}
}`

// TestOpenWeatherClient_CurrentWeather_City verifies field mapping and the
// city query parameter on a successful call.
func TestOpenWeatherClient_CurrentWeather_City(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(currentBody))
	}))
	defer srv.Close()

	c := NewOpenWeatherClient("test-key", srv.URL, srv.URL, time.Second)
	cond, err := c.CurrentWeather(context.Background(), CityQuery("Mumbai"))
	if err != nil {
		t.Fatalf("CurrentWeather() error = %v", err)
	}

	if cond.City != "Mumbai" {
		t.Errorf("City = %q, want %q", cond.City, "Mumbai")
	}
	if cond.TempC != 28.46 {
		t.Errorf("TempC = %v, want 28.46", cond.TempC)
	}
	if cond.Humidity != 65 {
		t.Errorf("Humidity = %d, want 65", cond.Humidity)
	}
	if cond.WindMS != 3.4 {
		t.Errorf("WindMS = %v, want 3.4", cond.WindMS)
	}
	if cond.Description != "haze" || cond.Icon != "50d" {
		t.Errorf("Description/Icon = %q/%q, want haze/50d", cond.Description, cond.Icon)
	}

	req, _ := http.NewRequest("GET", "/?"+gotQuery, nil)
	q := req.URL.Query()
	if q.Get("q") != "Mumbai" {
		t.Errorf("query q = %q, want Mumbai", q.Get("q"))
	}
	if q.Get("lat") != "" || q.Get("lon") != "" {
		t.Error("city query must not send coordinates")
	}
	if q.Get("units") != "metric" {
		t.Errorf("query units = %q, want metric", q.Get("units"))
	}
}

// TestOpenWeatherClient_CurrentWeather_Coords verifies the coordinate branch
// sends lat/lon and no city parameter.
func TestOpenWeatherClient_CurrentWeather_Coords(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(currentBody))
	}))
	defer srv.Close()

	c := NewOpenWeatherClient("test-key", srv.URL, srv.URL, time.Second)
	if _, err := c.CurrentWeather(context.Background(), CoordQuery(19.07, 72.88)); err != nil {
		t.Fatalf("CurrentWeather() error = %v", err)
	}

	req, _ := http.NewRequest("GET", "/?"+gotQuery, nil)
	q := req.URL.Query()
	if q.Get("lat") != "19.07" || q.Get("lon") != "72.88" {
		t.Errorf("query lat/lon = %q/%q, want 19.07/72.88", q.Get("lat"), q.Get("lon"))
	}
	if q.Get("q") != "" {
		t.Error("coordinate query must not send a city name")
	}
}

// TestOpenWeatherClient_StatusClassification verifies HTTP status codes map
// to the sentinel error taxonomy.
func TestOpenWeatherClient_StatusClassification(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{"404 not found", http.StatusNotFound, ErrNotFound},
		{"400 grouped with not found", http.StatusBadRequest, ErrNotFound},
		{"401 unauthorized", http.StatusUnauthorized, ErrUnauthorized},
		{"408 timeout", http.StatusRequestTimeout, ErrTimeout},
		{"504 timeout", http.StatusGatewayTimeout, ErrTimeout},
		{"500 upstream", http.StatusInternalServerError, ErrUpstream},
		{"429 upstream", http.StatusTooManyRequests, ErrUpstream},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			c := NewOpenWeatherClient("test-key", srv.URL, srv.URL, time.Second)
			_, err := c.CurrentWeather(context.Background(), CityQuery("Atlantis"))
			if !errors.Is(err, tt.want) {
				t.Errorf("CurrentWeather() error = %v, want %v", err, tt.want)
			}
		})
	}
}

// TestOpenWeatherClient_Timeout verifies a slow upstream surfaces ErrTimeout.
func TestOpenWeatherClient_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(currentBody))
	}))
	defer srv.Close()

	c := NewOpenWeatherClient("test-key", srv.URL, srv.URL, 20*time.Millisecond)
	_, err := c.CurrentWeather(context.Background(), CityQuery("Mumbai"))
	if !errors.Is(err, ErrTimeout) {
		t.Errorf("CurrentWeather() error = %v, want ErrTimeout", err)
	}
}

// TestOpenWeatherClient_Unavailable verifies a refused connection surfaces
// ErrUnavailable.
func TestOpenWeatherClient_Unavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listening anymore

	c := NewOpenWeatherClient("test-key", srv.URL, srv.URL, time.Second)
	_, err := c.CurrentWeather(context.Background(), CityQuery("Mumbai"))
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("CurrentWeather() error = %v, want ErrUnavailable", err)
	}
}

// TestOpenWeatherClient_ForecastWindow verifies sample decoding and the cnt
// parameter.
func TestOpenWeatherClient_ForecastWindow(t *testing.T) {
	const forecastBody = `{
		"city": {"name": "Mumbai"},
		"list": [
			{"dt": 1755043200, "main": {"temp": 27.3, "humidity": 80},
			 "weather": [{"description": "light rain", "icon": "10d"}],
			 "wind": {"speed": 5.1}},
			{"dt": 1755054000, "main": {"temp": 29.8, "humidity": 70},
			 "weather": [{"description": "scattered clouds", "icon": "03d"}],
			 "wind": {"speed": 4.0}}
		]
	}`

	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(forecastBody))
	}))
	defer srv.Close()

	c := NewOpenWeatherClient("test-key", srv.URL, srv.URL, time.Second)
	result, err := c.ForecastWindow(context.Background(), "Mumbai", 24)
	if err != nil {
		t.Fatalf("ForecastWindow() error = %v", err)
	}

	if result.City != "Mumbai" {
		t.Errorf("City = %q, want Mumbai", result.City)
	}
	if len(result.Samples) != 2 {
		t.Fatalf("len(Samples) = %d, want 2", len(result.Samples))
	}
	first := result.Samples[0]
	if first.TempC != 27.3 || first.Humidity != 80 || first.WindMS != 5.1 {
		t.Errorf("first sample = %+v, want temp 27.3 humidity 80 wind 5.1", first)
	}
	if first.Time.Unix() != 1755043200 {
		t.Errorf("first sample time = %v, want unix 1755043200", first.Time)
	}

	req, _ := http.NewRequest("GET", "/?"+gotQuery, nil)
	if cnt := req.URL.Query().Get("cnt"); cnt != "24" {
		t.Errorf("query cnt = %q, want 24", cnt)
	}
}

// TestQuery_CacheKey verifies cache key formats for both query branches.
func TestQuery_CacheKey(t *testing.T) {
	if got := CityQuery("Mumbai").CacheKey(); got != "city:Mumbai" {
		t.Errorf("CityQuery CacheKey() = %q, want city:Mumbai", got)
	}
	if got := CoordQuery(19.07, 72.88).CacheKey(); got != "coord:19.07,72.88" {
		t.Errorf("CoordQuery CacheKey() = %q, want coord:19.07,72.88", got)
	}
}
