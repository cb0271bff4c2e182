package prefs

import "math"

// Temperature units for the last-unit slot.
const (
	UnitCelsius    = "celsius"
	UnitFahrenheit = "fahrenheit"
)

// CelsiusToFahrenheit converts whole °C to whole °F, rounding to nearest.
func CelsiusToFahrenheit(celsius int) int {
	return int(math.Round(float64(celsius)*9/5 + 32))
}

// FahrenheitToCelsius converts whole °F to whole °C, rounding to nearest.
func FahrenheitToCelsius(fahrenheit int) int {
	return int(math.Round(float64(fahrenheit-32) * 5 / 9))
}

// LastUnit returns the saved temperature unit, defaulting to Celsius.
func (p *Prefs) LastUnit() string {
	unit := getJSON(p.store, KeyLastUnit, UnitCelsius)
	if unit != UnitCelsius && unit != UnitFahrenheit {
		return UnitCelsius
	}
	return unit
}

// SaveLastUnit saves the temperature unit.
func (p *Prefs) SaveLastUnit(unit string) {
	setJSON(p.store, KeyLastUnit, unit)
}
