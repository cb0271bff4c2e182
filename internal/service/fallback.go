package service

import "github.com/infohub/server/internal/models"

// Fallback data served when an upstream cannot be used. The values are part
// of the documented API behavior and must not drift.

// Fallback current-conditions reading used when no weather API key is
// configured.
const (
	fallbackTemperature = 28
	fallbackDescription = "Partly cloudy"
	fallbackHumidity    = 65
	fallbackWindSpeed   = 12
	fallbackIcon        = "02d"

	// coordLocationName labels coordinate queries in fallback payloads,
	// where there is no upstream to resolve a city name.
	coordLocationName = "Your Location"
)

// Fallback exchange rates substituted when the rate upstream fails.
const (
	fallbackUSDRate = 0.012
	fallbackEURRate = 0.011
)

// fallbackQuotes is served uniformly at random when the quote upstream fails.
var fallbackQuotes = []models.Quote{
	{Text: "The only way to do great work is to love what you do.", Author: "Steve Jobs"},
	{Text: "Innovation distinguishes between a leader and a follower.", Author: "Steve Jobs"},
	{Text: "Life is what happens to you while you're busy making other plans.", Author: "John Lennon"},
	{Text: "The future belongs to those who believe in the beauty of their dreams.", Author: "Eleanor Roosevelt"},
	{Text: "It is during our darkest moments that we must focus to see the light.", Author: "Aristotle"},
	{Text: "The only impossible journey is the one you never begin.", Author: "Tony Robbins"},
	{Text: "In the middle of difficulty lies opportunity.", Author: "Albert Einstein"},
	{Text: "Success is not final, failure is not fatal: it is the courage to continue that counts.", Author: "Winston Churchill"},
}
