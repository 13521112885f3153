package config

import "testing"

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		host     string
		token    string
		expected bool
	}{
		{"complete", "hass.local:8123", "token", true},
		{"missing host", "", "token", false},
		{"missing token", "hass.local:8123", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conf := Hushctl{}
			conf.HomeAssistant.Host = tt.host
			conf.HomeAssistant.Token = tt.token
			if got := conf.Validate(); got != tt.expected {
				t.Errorf("Validate: got %v, expected %v", got, tt.expected)
			}
		})
	}
}
