package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Query identifies a location for a current-conditions lookup: a free-text
// city name or a coordinate pair, never both.
type Query struct {
	City      string
	Lat, Lon  float64
	HasCoords bool
}

// CityQuery builds a city-name query.
func CityQuery(city string) Query {
	return Query{City: city}
}

// CoordQuery builds a coordinate query.
func CoordQuery(lat, lon float64) Query {
	return Query{Lat: lat, Lon: lon, HasCoords: true}
}

// CacheKey returns the cache key for this query: "city:<name>" or
// "coord:<lat>,<lon>".
func (q Query) CacheKey() string {
	if q.HasCoords {
		return "coord:" + formatCoord(q.Lat) + "," + formatCoord(q.Lon)
	}
	return "city:" + q.City
}

func formatCoord(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// CurrentConditions is the decoded current-weather reading, units as the
// upstream reports them (°C, m/s). Normalization happens in the service layer.
type CurrentConditions struct {
	City        string
	TempC       float64
	Description string
	Humidity    int
	WindMS      float64
	Icon        string
}

// ForecastSample is one forecast window sample from the upstream.
type ForecastSample struct {
	Time        time.Time
	TempC       float64
	Description string
	Icon        string
	Humidity    int
	WindMS      float64
}

// ForecastResult is the raw forecast window: the resolved city name and the
// samples in upstream order.
type ForecastResult struct {
	City    string
	Samples []ForecastSample
}

// WeatherClient fetches current conditions and forecast windows from the
// weather upstream.
type WeatherClient interface {
	CurrentWeather(ctx context.Context, q Query) (CurrentConditions, error)
	ForecastWindow(ctx context.Context, city string, samples int) (ForecastResult, error)
}

// OpenWeatherClient implements WeatherClient against the OpenWeatherMap API.
// One attempt per call: a failure is classified and returned, the caller
// decides between fallback and error.
type OpenWeatherClient struct {
	apiKey      string
	weatherURL  string
	forecastURL string
	client      *http.Client
}

// NewOpenWeatherClient returns a client with the given endpoints and per-call
// timeout. The API key is assumed present; callers without one short-circuit
// to fallback data before reaching the client.
func NewOpenWeatherClient(apiKey, weatherURL, forecastURL string, timeout time.Duration) *OpenWeatherClient {
	return &OpenWeatherClient{
		apiKey:      apiKey,
		weatherURL:  weatherURL,
		forecastURL: forecastURL,
		client:      &http.Client{Timeout: timeout},
	}
}

type openWeatherCurrent struct {
	Name string `json:"name"`
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
}

type openWeatherForecast struct {
	City struct {
		Name string `json:"name"`
	} `json:"city"`
	List []struct {
		Dt   int64 `json:"dt"`
		Main struct {
			Temp     float64 `json:"temp"`
			Humidity int     `json:"humidity"`
		} `json:"main"`
		Weather []struct {
			Description string `json:"description"`
			Icon        string `json:"icon"`
		} `json:"weather"`
		Wind struct {
			Speed float64 `json:"speed"`
		} `json:"wind"`
	} `json:"list"`
}

// CurrentWeather fetches current conditions for the query.
func (c *OpenWeatherClient) CurrentWeather(ctx context.Context, q Query) (CurrentConditions, error) {
	params := url.Values{}
	params.Set("appid", c.apiKey)
	params.Set("units", "metric")
	if q.HasCoords {
		params.Set("lat", formatCoord(q.Lat))
		params.Set("lon", formatCoord(q.Lon))
	} else {
		params.Set("q", q.City)
	}

	body, err := c.get(ctx, c.weatherURL, params)
	if err != nil {
		return CurrentConditions{}, err
	}

	var resp openWeatherCurrent
	if err := json.Unmarshal(body, &resp); err != nil {
		return CurrentConditions{}, fmt.Errorf("%w: parse response: %v", ErrUpstream, err)
	}

	cond := CurrentConditions{
		City:     resp.Name,
		TempC:    resp.Main.Temp,
		Humidity: resp.Main.Humidity,
		WindMS:   resp.Wind.Speed,
	}
	if len(resp.Weather) > 0 {
		cond.Description = resp.Weather[0].Description
		cond.Icon = resp.Weather[0].Icon
	}
	return cond, nil
}

// ForecastWindow fetches up to samples forecast entries for the city.
func (c *OpenWeatherClient) ForecastWindow(ctx context.Context, city string, samples int) (ForecastResult, error) {
	params := url.Values{}
	params.Set("q", city)
	params.Set("appid", c.apiKey)
	params.Set("units", "metric")
	params.Set("cnt", strconv.Itoa(samples))

	body, err := c.get(ctx, c.forecastURL, params)
	if err != nil {
		return ForecastResult{}, err
	}

	var resp openWeatherForecast
	if err := json.Unmarshal(body, &resp); err != nil {
		return ForecastResult{}, fmt.Errorf("%w: parse response: %v", ErrUpstream, err)
	}

	result := ForecastResult{City: resp.City.Name}
	for _, item := range resp.List {
		sample := ForecastSample{
			Time:     time.Unix(item.Dt, 0),
			TempC:    item.Main.Temp,
			Humidity: item.Main.Humidity,
			WindMS:   item.Wind.Speed,
		}
		if len(item.Weather) > 0 {
			sample.Description = item.Weather[0].Description
			sample.Icon = item.Weather[0].Icon
		}
		result.Samples = append(result.Samples, sample)
	}
	return result, nil
}

// get performs the request and classifies failures into the sentinel taxonomy.
func (c *OpenWeatherClient) get(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	base, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid API URL: %w", err)
	}
	base.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, classifyTransport(err)
	}
	defer resp.Body.Close()

	if err := classifyWeatherStatus(resp.StatusCode); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response body: %v", ErrUpstream, err)
	}
	return body, nil
}

// classifyWeatherStatus maps OpenWeather HTTP statuses to sentinels. 400 is
// grouped with 404 because OpenWeather answers 400 for unknown city names.
func classifyWeatherStatus(code int) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusNotFound || code == http.StatusBadRequest:
		return fmt.Errorf("%w: HTTP %d", ErrNotFound, code)
	case code == http.StatusUnauthorized:
		return fmt.Errorf("%w: HTTP %d", ErrUnauthorized, code)
	case code == http.StatusRequestTimeout || code == http.StatusGatewayTimeout:
		return fmt.Errorf("%w: HTTP %d", ErrTimeout, code)
	default:
		return fmt.Errorf("%w: HTTP %d", ErrUpstream, code)
	}
}
