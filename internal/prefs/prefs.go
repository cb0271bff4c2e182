package prefs

import (
	"encoding/json"
	"time"

	"github.com/infohub/server/internal/models"
)

// MaxHistoryEntries caps the conversion history, newest first.
const MaxHistoryEntries = 50

// FavoriteQuote is a saved quote with the time it was favorited.
type FavoriteQuote struct {
	models.Quote
	SavedAt time.Time `json:"savedAt"`
}

// ConversionRecord is one conversion history entry.
type ConversionRecord struct {
	models.CurrencyConversion
	Timestamp time.Time `json:"timestamp"`
}

// Prefs exposes the dashboard's persisted records over a Store. Every reader
// returns a usable default when the record is absent or corrupt; persistence
// failures never propagate past this layer.
type Prefs struct {
	store Store
	now   func() time.Time
}

// New returns Prefs over the store using the wall clock.
func New(store Store) *Prefs {
	return &Prefs{store: store, now: time.Now}
}

// NewWithClock returns Prefs with a caller-supplied clock. For tests.
func NewWithClock(store Store, now func() time.Time) *Prefs {
	return &Prefs{store: store, now: now}
}

// getJSON decodes the record at key, returning def when absent or corrupt.
func getJSON[T any](s Store, key string, def T) T {
	data, ok, err := s.Get(key)
	if err != nil || !ok {
		return def
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return def
	}
	return v
}

// setJSON encodes and stores v at key. Returns false on any failure.
func setJSON(s Store, key string, v any) bool {
	data, err := json.Marshal(v)
	if err != nil {
		return false
	}
	return s.Set(key, data) == nil
}

// FavoriteCities returns the saved city list, oldest first.
func (p *Prefs) FavoriteCities() []string {
	return getJSON(p.store, KeyFavoriteCities, []string{})
}

// AddFavoriteCity appends the city if not already saved. Returns true when
// the list changed.
func (p *Prefs) AddFavoriteCity(city string) bool {
	cities := p.FavoriteCities()
	for _, c := range cities {
		if c == city {
			return false
		}
	}
	return setJSON(p.store, KeyFavoriteCities, append(cities, city))
}

// RemoveFavoriteCity removes the city if present.
func (p *Prefs) RemoveFavoriteCity(city string) {
	cities := p.FavoriteCities()
	filtered := cities[:0]
	for _, c := range cities {
		if c != city {
			filtered = append(filtered, c)
		}
	}
	setJSON(p.store, KeyFavoriteCities, filtered)
}

// IsFavoriteCity reports whether the city is saved.
func (p *Prefs) IsFavoriteCity(city string) bool {
	for _, c := range p.FavoriteCities() {
		if c == city {
			return true
		}
	}
	return false
}

// FavoriteQuotes returns the saved quotes, oldest first.
func (p *Prefs) FavoriteQuotes() []FavoriteQuote {
	return getJSON(p.store, KeyFavoriteQuotes, []FavoriteQuote{})
}

// AddFavoriteQuote saves the quote if not already present. Identity is the
// text and author pair. Returns true when the list changed.
func (p *Prefs) AddFavoriteQuote(q models.Quote) bool {
	quotes := p.FavoriteQuotes()
	for _, saved := range quotes {
		if saved.Text == q.Text && saved.Author == q.Author {
			return false
		}
	}
	quotes = append(quotes, FavoriteQuote{Quote: q, SavedAt: p.now()})
	return setJSON(p.store, KeyFavoriteQuotes, quotes)
}

// RemoveFavoriteQuote removes the quote matching by text and author.
func (p *Prefs) RemoveFavoriteQuote(q models.Quote) {
	quotes := p.FavoriteQuotes()
	filtered := quotes[:0]
	for _, saved := range quotes {
		if !(saved.Text == q.Text && saved.Author == q.Author) {
			filtered = append(filtered, saved)
		}
	}
	setJSON(p.store, KeyFavoriteQuotes, filtered)
}

// IsFavoriteQuote reports whether the quote is saved, matching by text and
// author.
func (p *Prefs) IsFavoriteQuote(q models.Quote) bool {
	for _, saved := range p.FavoriteQuotes() {
		if saved.Text == q.Text && saved.Author == q.Author {
			return true
		}
	}
	return false
}

// ConversionHistory returns saved conversions, newest first.
func (p *Prefs) ConversionHistory() []ConversionRecord {
	return getJSON(p.store, KeyConversionHistory, []ConversionRecord{})
}

// AddConversion prepends a conversion, keeping at most MaxHistoryEntries.
func (p *Prefs) AddConversion(conv models.CurrencyConversion) {
	record := ConversionRecord{CurrencyConversion: conv, Timestamp: p.now()}
	history := append([]ConversionRecord{record}, p.ConversionHistory()...)
	if len(history) > MaxHistoryEntries {
		history = history[:MaxHistoryEntries]
	}
	setJSON(p.store, KeyConversionHistory, history)
}

// ClearConversionHistory empties the history.
func (p *Prefs) ClearConversionHistory() {
	setJSON(p.store, KeyConversionHistory, []ConversionRecord{})
}

// Last-viewed singleton slots. Readers return the zero value (and ok=false)
// when nothing was saved.

func (p *Prefs) LastWeather() (models.Weather, bool) {
	return lastSlot[models.Weather](p.store, KeyLastWeather)
}

func (p *Prefs) SaveLastWeather(w models.Weather) {
	setJSON(p.store, KeyLastWeather, w)
}

func (p *Prefs) LastForecast() (models.Forecast, bool) {
	return lastSlot[models.Forecast](p.store, KeyLastForecast)
}

func (p *Prefs) SaveLastForecast(f models.Forecast) {
	setJSON(p.store, KeyLastForecast, f)
}

func (p *Prefs) LastConversion() (models.CurrencyConversion, bool) {
	return lastSlot[models.CurrencyConversion](p.store, KeyLastConversion)
}

func (p *Prefs) SaveLastConversion(c models.CurrencyConversion) {
	setJSON(p.store, KeyLastConversion, c)
}

func (p *Prefs) LastQuote() (models.Quote, bool) {
	return lastSlot[models.Quote](p.store, KeyLastQuote)
}

func (p *Prefs) SaveLastQuote(q models.Quote) {
	setJSON(p.store, KeyLastQuote, q)
}

func (p *Prefs) LastCity() string {
	return getJSON(p.store, KeyLastCity, "")
}

func (p *Prefs) SaveLastCity(city string) {
	setJSON(p.store, KeyLastCity, city)
}

func (p *Prefs) LastTab() string {
	return getJSON(p.store, KeyLastTab, "")
}

func (p *Prefs) SaveLastTab(tab string) {
	setJSON(p.store, KeyLastTab, tab)
}

func lastSlot[T any](s Store, key string) (T, bool) {
	var zero T
	data, ok, err := s.Get(key)
	if err != nil || !ok {
		return zero, false
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return zero, false
	}
	return v, true
}
