package models

// Weather is the normalized current-conditions payload served by /api/weather.
// Temperature is whole °C, WindSpeed is whole km/h. Note is set only when the
// payload was produced by the fallback path (no API key configured).
type Weather struct {
	City        string `json:"city"`
	Temperature int    `json:"temperature"`
	Description string `json:"description"`
	Humidity    int    `json:"humidity"`
	WindSpeed   int    `json:"windSpeed"`
	Icon        string `json:"icon"`
	Note        string `json:"note,omitempty"`
}

// ForecastDay is one calendar day in a Forecast, built from that day's first
// upstream sample.
type ForecastDay struct {
	Date        string `json:"date"`
	Day         string `json:"day"`
	Temperature int    `json:"temperature"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Humidity    int    `json:"humidity"`
	WindSpeed   int    `json:"windSpeed"`
}

// Forecast is the /api/weather/forecast payload: up to three days in
// upstream encounter order.
type Forecast struct {
	City     string        `json:"city"`
	Forecast []ForecastDay `json:"forecast"`
}

// Conversions holds the converted amounts, rounded to 2 decimals.
type Conversions struct {
	USD float64 `json:"usd"`
	EUR float64 `json:"eur"`
}

// Rates holds the exchange rates used, formatted to 4 decimals.
type Rates struct {
	USD string `json:"usd"`
	EUR string `json:"eur"`
}

// CurrencyConversion is the /api/currency payload. Note and Error are set
// only when fallback rates were substituted for live ones.
type CurrencyConversion struct {
	Amount      float64     `json:"amount"`
	From        string      `json:"from"`
	Conversions Conversions `json:"conversions"`
	Rates       Rates       `json:"rates"`
	Note        string      `json:"note,omitempty"`
	Error       string      `json:"error,omitempty"`
}

// Quote is the /api/quote payload. Fallback quotes carry no marker and are
// indistinguishable from live ones.
type Quote struct {
	Text   string `json:"text"`
	Author string `json:"author"`
}
