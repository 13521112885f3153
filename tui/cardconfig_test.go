package tui

import "testing"

func TestApplyDefaults(t *testing.T) {
	tests := []struct {
		name     string
		cfg      CardConfig
		expected CardConfig
	}{
		{
			name:     "empty gets all defaults",
			cfg:      CardConfig{},
			expected: CardConfig{Title: DefaultCardTitle, Limit: DefaultCardLimit},
		},
		{
			name:     "explicit values kept",
			cfg:      CardConfig{Title: "Alerts", Limit: 25},
			expected: CardConfig{Title: "Alerts", Limit: 25},
		},
		{
			name:     "zero limit replaced",
			cfg:      CardConfig{Title: "Alerts"},
			expected: CardConfig{Title: "Alerts", Limit: DefaultCardLimit},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.cfg.ApplyDefaults()
			if got != tt.expected {
				t.Errorf("ApplyDefaults: got %+v, expected %+v", got, tt.expected)
			}
			// merging twice must not change the result
			if again := got.ApplyDefaults(); again != got {
				t.Errorf("ApplyDefaults not idempotent: %+v then %+v", got, again)
			}
		})
	}
}

func TestParseLimit(t *testing.T) {
	tests := []struct {
		input    string
		expected int
	}{
		{"10", 10},
		{"1", 1},
		{"0", DefaultCardLimit},
		{"-3", DefaultCardLimit},
		{"abc", DefaultCardLimit},
		{"", DefaultCardLimit},
	}

	for _, tt := range tests {
		if got := parseLimit(tt.input); got != tt.expected {
			t.Errorf("parseLimit(%q): got %d, expected %d", tt.input, got, tt.expected)
		}
	}
}
