package config

import (
	"fmt"

	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"
)

// Settings is the resolved configuration snapshot rendered by the
// `config` subcommand.
type Settings struct {
	LogLevel        string `json:"log_level"`
	UserAgent       string `json:"user_agent"`
	WeatherBaseURL  string `json:"weather_base_url"`
	BrowserHeadless bool   `json:"browser_headless"`
	BrowserBin      string `json:"browser_bin,omitempty"`
	BrowserStealth  bool   `json:"browser_stealth"`
}

func Resolve() Settings {
	return Settings{
		LogLevel:        LogLevel(),
		UserAgent:       UserAgent(),
		WeatherBaseURL:  WeatherBaseURL(),
		BrowserHeadless: BrowserHeadless(),
		BrowserBin:      BrowserBin(),
		BrowserStealth:  BrowserStealth(),
	}
}

// NewShowCommand returns the shared `config` subcommand that prints the
// resolved settings as YAML.
func NewShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print resolved configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := yaml.Marshal(Resolve())
			if err != nil {
				return fmt.Errorf("marshal settings: %w", err)
			}
			cmd.Print(string(out))
			return nil
		},
	}
}
