package config

import (
	"path/filepath"
	"time"

	homedir "github.com/mitchellh/go-homedir"
)

// Hushctl is the struct to unmarshal the client configuration file
// It is using mapstructure for a compatibility with Viper config files
type Hushctl struct {
	// LogLevel is the log level configured
	LogLevel string `mapstructure:"log_level"`
	// LogFile is where logs are written, the TUI owns the terminal
	LogFile string `mapstructure:"log_file"`

	// HomeAssistant server related options
	HomeAssistant struct {
		Host       string `mapstructure:"host"`
		Token      string `mapstructure:"token"`
		TLSEnabled bool   `mapstructure:"tls_enabled"`
	} `mapstructure:"home_assistant"`

	// History configures the history card
	History struct {
		Title           string        `mapstructure:"title"`
		Limit           int           `mapstructure:"limit"`
		RefreshInterval time.Duration `mapstructure:"refresh_interval"`
	} `mapstructure:"history"`

	// Connectivity configures the host reachability checker
	Connectivity struct {
		PingHost string        `mapstructure:"ping_host"`
		Interval time.Duration `mapstructure:"interval"`
	} `mapstructure:"connectivity"`
}

// Validate indicates whether or not the config is valid for hushctl to run
func (h Hushctl) Validate() bool {
	return h.HomeAssistant.Host != "" && h.HomeAssistant.Token != ""
}

// DefaultConfigFile returns the default configuration file location
func DefaultConfigFile() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "hushctl", "hushctl.yaml"), nil
}
