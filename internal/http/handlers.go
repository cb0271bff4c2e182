package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/infohub/server/internal/client"
	"github.com/infohub/server/internal/service"
	"github.com/infohub/server/internal/validation"
)

// Handler holds dependencies for the API handlers.
type Handler struct {
	weather  *service.WeatherService
	forecast *service.ForecastService
	currency *service.CurrencyService
	quote    *service.QuoteService
	logger   *zap.Logger
	// cachePing, when set, is called by the health handler to check cache
	// reachability. Set when the backend is memcached.
	cachePing func() error
}

// NewHandler returns a new Handler.
func NewHandler(
	weather *service.WeatherService,
	forecast *service.ForecastService,
	currency *service.CurrencyService,
	quote *service.QuoteService,
	logger *zap.Logger,
	cachePing func() error,
) *Handler {
	return &Handler{
		weather:   weather,
		forecast:  forecast,
		currency:  currency,
		quote:     quote,
		logger:    logger,
		cachePing: cachePing,
	}
}

// GetWeather handles GET /api/weather?city=... or ?lat=...&lon=...
func (h *Handler) GetWeather(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	var query client.Query
	city, cityErr := validation.ValidateCity(params.Get("city"))
	if cityErr == nil {
		query = client.CityQuery(city)
	} else if lat, lon, ok := validation.ParseCoordinates(params.Get("lat"), params.Get("lon")); ok {
		query = client.CoordQuery(lat, lon)
	} else {
		writeError(w, http.StatusBadRequest, errorBody{
			Error:   "Invalid city name",
			Message: "Please provide a valid city name or coordinates.",
		})
		return
	}

	payload, err := h.weather.Current(r.Context(), query)
	if err != nil {
		h.writeWeatherError(w, r, query, err)
		return
	}
	writeRawJSON(w, http.StatusOK, payload)
}

// writeWeatherError maps a classified upstream error to the endpoint's
// documented status and message. Nothing on this path touches the cache.
func (h *Handler) writeWeatherError(w http.ResponseWriter, r *http.Request, q client.Query, err error) {
	if logger := loggerFrom(r); logger != nil {
		logger.Warn("weather lookup failed", zap.String("key", q.CacheKey()), zap.Error(err))
	}

	switch {
	case errors.Is(err, client.ErrNotFound):
		writeError(w, http.StatusNotFound, errorBody{
			Error:      "Invalid city name",
			Message:    fmt.Sprintf("City %q not found. Please try a different city name.", q.City),
			Suggestion: `Try using a specific city name (e.g., "Shimla" instead of "Himachal Pradesh")`,
		})
	case errors.Is(err, client.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, errorBody{
			Error:   "Invalid API key",
			Message: "Invalid API key. Please check your OpenWeatherMap API key configuration.",
		})
	case errors.Is(err, client.ErrTimeout):
		writeError(w, http.StatusRequestTimeout, errorBody{
			Error:   "Failed to fetch data",
			Message: "Request timeout. Please check your internet connection and try again.",
		})
	case errors.Is(err, client.ErrUnavailable):
		writeError(w, http.StatusServiceUnavailable, errorBody{
			Error:   "Failed to fetch data",
			Message: "Unable to connect to weather service. Please try again later.",
		})
	default:
		writeError(w, http.StatusInternalServerError, errorBody{
			Error:   "Failed to fetch data",
			Message: "Unable to fetch weather data. Please try again later.",
			Note:    "Using fallback data due to API unavailability",
		})
	}
}

// GetForecast handles GET /api/weather/forecast?city=...
// This endpoint never answers non-200: every failure becomes an {error}
// payload and the forecast is simply absent.
func (h *Handler) GetForecast(w http.ResponseWriter, r *http.Request) {
	city := r.URL.Query().Get("city")

	payload, err := h.forecast.Forecast(r.Context(), city)
	if err != nil {
		msg := "Could not fetch forecast"
		if errors.Is(err, service.ErrAPIKeyMissing) {
			msg = "API key not configured"
		} else if logger := loggerFrom(r); logger != nil {
			logger.Warn("forecast lookup failed", zap.String("city", city), zap.Error(err))
		}
		writeJSON(w, http.StatusOK, map[string]string{"error": msg})
		return
	}
	writeRawJSON(w, http.StatusOK, payload)
}

// GetCurrency handles GET /api/currency?amount=...
// After amount validation this endpoint always answers 200, degraded or not.
func (h *Handler) GetCurrency(w http.ResponseWriter, r *http.Request) {
	amount, err := validation.ParseAmount(r.URL.Query().Get("amount"))
	if err != nil {
		writeError(w, http.StatusBadRequest, errorBody{
			Error:   "Invalid amount",
			Message: "Please provide a valid positive amount (INR).",
		})
		return
	}

	writeJSON(w, http.StatusOK, h.currency.Convert(r.Context(), amount))
}

// GetQuote handles GET /api/quote.
func (h *Handler) GetQuote(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.quote.Random(r.Context()))
}

// GetHealth handles GET /api/health. The status is always OK; when a remote
// cache backend is configured its reachability is reported as a check.
func (h *Handler) GetHealth(w http.ResponseWriter, r *http.Request) {
	resp := map[string]interface{}{
		"status":  "OK",
		"message": "InfoHub API is running",
	}
	if h.cachePing != nil {
		if h.cachePing() == nil {
			resp["checks"] = map[string]string{"cache": "healthy"}
		} else {
			resp["checks"] = map[string]string{"cache": "unhealthy"}
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// errorBody is the error payload shape shared by all endpoints.
type errorBody struct {
	Error      string `json:"error"`
	Message    string `json:"message,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
	Note       string `json:"note,omitempty"`
}

// writeJSON writes a JSON response with the specified HTTP status code.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeRawJSON writes an already-marshaled payload, preserving the cached
// bytes exactly.
func writeRawJSON(w http.ResponseWriter, status int, payload json.RawMessage) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(payload)
}

func writeError(w http.ResponseWriter, status int, body errorBody) {
	writeJSON(w, status, body)
}

// loggerFrom extracts the request-scoped logger installed by the correlation
// middleware, or nil.
func loggerFrom(r *http.Request) *zap.Logger {
	if logger, ok := r.Context().Value("logger").(*zap.Logger); ok {
		return logger
	}
	return nil
}
