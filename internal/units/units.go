// Package units defines the closed set of measurement units a reading may
// carry. The set is fixed at compile time; anything else is rejected at the
// validation boundary and never persisted.
package units

import "strings"

// All accepted unit symbols, grouped by quantity. Order is stable so error
// messages and docs enumerate the same way every time.
var symbols = []string{
	// length
	"m", "cm", "mm", "km",
	// temperature
	"°C", "°F", "K",
	// pressure
	"Pa", "hPa", "bar", "psi",
	// motion
	"m/s", "m/s^2", "g",
	// magnetic / electric
	"T", "V", "A", "W",
	// light / sound
	"lx", "dB",
	// gas concentration
	"ppm", "ppb", "%",
}

var valid = func() map[string]struct{} {
	m := make(map[string]struct{}, len(symbols))
	for _, s := range symbols {
		m[s] = struct{}{}
	}
	return m
}()

// Valid reports whether symbol is a member of the enumeration. Matching is
// exact, by stored symbol.
func Valid(symbol string) bool {
	_, ok := valid[symbol]
	return ok
}

// All returns the accepted symbols in enumeration order.
func All() []string {
	out := make([]string, len(symbols))
	copy(out, symbols)
	return out
}

// List returns the accepted symbols as a comma-separated string, for use in
// rejection messages.
func List() string {
	return strings.Join(symbols, ", ")
}
