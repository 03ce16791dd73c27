package types

import "testing"

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.WordsPerMinute != 225 || cfg.SecondsPerAsset != 10 || cfg.SecondsPerEntry != 10 || !cfg.AllowOverride {
		t.Errorf("DefaultConfig: got %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate(default): %v", err)
	}
}

func TestConfigFromParameters(t *testing.T) {
	tests := []struct {
		name    string
		params  map[string]any
		want    Config
		wantErr bool
	}{
		{
			name:   "empty, defaults",
			params: map[string]any{},
			want:   DefaultConfig(),
		},
		{
			name: "string values from the config screen",
			params: map[string]any{
				"wordsPerMinute":  "200",
				"secondsPerAsset": "12",
				"secondsPerEntry": "0",
				"allowOverride":   false,
			},
			want: Config{WordsPerMinute: 200, SecondsPerAsset: 12, SecondsPerEntry: 0, AllowOverride: false},
		},
		{
			name:   "json numbers",
			params: map[string]any{"wordsPerMinute": float64(300)},
			want:   Config{WordsPerMinute: 300, SecondsPerAsset: 10, SecondsPerEntry: 10, AllowOverride: true},
		},
		{
			name:    "non-numeric string",
			params:  map[string]any{"wordsPerMinute": "fast"},
			wantErr: true,
		},
		{
			name:    "fractional number",
			params:  map[string]any{"secondsPerAsset": 1.5},
			wantErr: true,
		},
		{
			name:    "zero words per minute",
			params:  map[string]any{"wordsPerMinute": "0"},
			wantErr: true,
		},
		{
			name:    "bad allowOverride",
			params:  map[string]any{"allowOverride": "maybe"},
			wantErr: true,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ConfigFromParameters(tc.params)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got config %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ConfigFromParameters: %v", err)
			}
			if got != tc.want {
				t.Errorf("got %+v, want %+v", got, tc.want)
			}
		})
	}
}
