package types

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
)

// Default installation parameters.
const (
	DefaultWordsPerMinute  = 225
	DefaultSecondsPerAsset = 10
	DefaultSecondsPerEntry = 10
	DefaultAllowOverride   = true
)

// Config holds the installation parameters used by every computation.
// It is read once per session and never changes during a computation.
type Config struct {
	// WordsPerMinute is the reading speed. Must be positive.
	WordsPerMinute int `yaml:"words_per_minute" json:"wordsPerMinute"`

	// SecondsPerAsset is added to the total for each embedded asset.
	SecondsPerAsset int `yaml:"seconds_per_asset" json:"secondsPerAsset"`

	// SecondsPerEntry is added to the total for each embedded entry.
	SecondsPerEntry int `yaml:"seconds_per_entry" json:"secondsPerEntry"`

	// AllowOverride enables the manual override flow.
	AllowOverride bool `yaml:"allow_override" json:"allowOverride"`
}

// DefaultConfig returns a Config with every parameter at its default.
func DefaultConfig() Config {
	return Config{
		WordsPerMinute:  DefaultWordsPerMinute,
		SecondsPerAsset: DefaultSecondsPerAsset,
		SecondsPerEntry: DefaultSecondsPerEntry,
		AllowOverride:   DefaultAllowOverride,
	}
}

// Validate checks the numeric constraints on c.
func (c Config) Validate() error {
	if c.WordsPerMinute <= 0 {
		return fmt.Errorf("words_per_minute must be positive, got %d", c.WordsPerMinute)
	}
	if c.SecondsPerAsset < 0 {
		return fmt.Errorf("seconds_per_asset must not be negative, got %d", c.SecondsPerAsset)
	}
	if c.SecondsPerEntry < 0 {
		return fmt.Errorf("seconds_per_entry must not be negative, got %d", c.SecondsPerEntry)
	}
	return nil
}

// unsignedInt matches the values accepted by the installation form.
var unsignedInt = regexp.MustCompile(`^[0-9]+$`)

// ConfigFromParameters builds a Config from raw installation parameters as
// the host hands them over. Numeric parameters may arrive as JSON numbers or
// as strings of digits; absent parameters keep their defaults.
func ConfigFromParameters(params map[string]any) (Config, error) {
	cfg := DefaultConfig()

	ints := []struct {
		key string
		dst *int
	}{
		{"wordsPerMinute", &cfg.WordsPerMinute},
		{"secondsPerAsset", &cfg.SecondsPerAsset},
		{"secondsPerEntry", &cfg.SecondsPerEntry},
	}
	for _, p := range ints {
		raw, ok := params[p.key]
		if !ok || raw == nil {
			continue
		}
		n, err := paramInt(raw)
		if err != nil {
			return Config{}, fmt.Errorf("parameter %s: %w", p.key, err)
		}
		*p.dst = n
	}

	if raw, ok := params["allowOverride"]; ok && raw != nil {
		switch v := raw.(type) {
		case bool:
			cfg.AllowOverride = v
		case string:
			b, err := strconv.ParseBool(v)
			if err != nil {
				return Config{}, fmt.Errorf("parameter allowOverride: %w", err)
			}
			cfg.AllowOverride = b
		default:
			return Config{}, fmt.Errorf("parameter allowOverride: unsupported type %T", raw)
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func paramInt(raw any) (int, error) {
	switch v := raw.(type) {
	case int:
		if v < 0 {
			return 0, fmt.Errorf("%d is negative", v)
		}
		return v, nil
	case float64:
		if v < 0 || v != math.Trunc(v) {
			return 0, fmt.Errorf("%v is not a whole number", v)
		}
		return int(v), nil
	case string:
		if !unsignedInt.MatchString(v) {
			return 0, fmt.Errorf("%q is not a whole number", v)
		}
		return strconv.Atoi(v)
	default:
		return 0, fmt.Errorf("unsupported type %T", raw)
	}
}
