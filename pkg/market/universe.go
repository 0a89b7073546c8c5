package market

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Universe holds the predefined symbol lists offered to callers, plus
// display names for known symbols.
type Universe struct {
	Default []string            `yaml:"default"`
	Lists   map[string][]string `yaml:"lists"`
	Names   map[string]string   `yaml:"names"`
}

// LoadUniverse reads a universe definition from a YAML file.
func LoadUniverse(path string) (*Universe, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load universe %s: %w", path, err)
	}
	var u Universe
	if err := yaml.Unmarshal(raw, &u); err != nil {
		return nil, fmt.Errorf("parse universe %s: %w", path, err)
	}
	if len(u.Default) == 0 {
		return nil, fmt.Errorf("universe %s: default list is empty", path)
	}
	return &u, nil
}

// DefaultUniverse returns the built-in symbol lists used when no universe
// file is configured.
func DefaultUniverse() *Universe {
	def := []string{"NOK", "NDA-FI.HE", "FORTUM.HE", "UPM.HE", "KONE.HE", "AAPL", "GOOGL", "MSFT", "AMZN", "TSLA"}
	return &Universe{
		Default: def,
		Lists: map[string][]string{
			"finnish":     {"NOK", "NDA-FI.HE", "FORTUM.HE", "UPM.HE", "KONE.HE", "KESKOB.HE"},
			"tech_giants": {"AAPL", "GOOGL", "MSFT", "AMZN", "META", "NVDA"},
			"eu_banks":    {"NDA-FI.HE", "DBK.DE", "BNP.PA", "SAN.MC", "INGA.AS", "GLE.PA"},
			"all":         def,
		},
		Names: map[string]string{
			"NOK":       "Nokia",
			"NDA-FI.HE": "Nordea Bank",
			"FORTUM.HE": "Fortum",
			"UPM.HE":    "UPM-Kymmene",
			"KONE.HE":   "Kone",
			"KESKOB.HE": "Kesko",
			"AAPL":      "Apple",
			"GOOGL":     "Alphabet",
			"MSFT":      "Microsoft",
			"AMZN":      "Amazon",
			"TSLA":      "Tesla",
			"META":      "Meta Platforms",
			"NVDA":      "NVIDIA",
		},
	}
}

// Name returns the display name for a symbol, falling back to the symbol.
func (u *Universe) Name(symbol string) string {
	if u != nil {
		if name, ok := u.Names[symbol]; ok && name != "" {
			return name
		}
	}
	return symbol
}

// List resolves a predefined list by id. The id "all" (or empty) returns the
// default list.
func (u *Universe) List(id string) ([]string, bool) {
	if u == nil {
		return nil, false
	}
	if id == "" || id == "all" {
		return u.Default, true
	}
	symbols, ok := u.Lists[id]
	return symbols, ok
}
