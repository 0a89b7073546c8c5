package market

import "time"

// PricePoint is one daily close observation.
type PricePoint struct {
	Date  time.Time `json:"date" msgpack:"date"`
	Close float64   `json:"close" msgpack:"close"`
}

// Asset captures display-ready data for one symbol.
type Asset struct {
	Symbol           string    `json:"symbol"`
	Name             string    `json:"name"`
	CurrentPrice     float64   `json:"currentPrice"`
	PreviousClose    float64   `json:"previousClose"`
	DayChange        float64   `json:"dayChange"`
	DayChangePercent float64   `json:"dayChangePercent"`
	ExpectedReturn   float64   `json:"expectedReturn"` // annualized
	Volatility       float64   `json:"volatility"`     // annualized std
	LastUpdated      time.Time `json:"lastUpdated"`
}

// Day truncates a timestamp to day precision in UTC, the resolution price
// history is aligned on.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
