package config

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func Init(root *cobra.Command) {
	viper.AutomaticEnv()
	_ = godotenv.Load(".env")
	if root != nil {
		_ = viper.BindPFlags(root.PersistentFlags())
	}
	setDefaults()
}

func setDefaults() {
	viper.SetDefault(KeyLogLevel, "info")
	viper.SetDefault(KeyUserAgent, "mcp-adapters/1.0 (+https://github.com/roivaz/mcp-adapters)")
	viper.SetDefault(KeyWeatherBaseURL, "https://api.weather.gov")
	viper.SetDefault(KeyBrowserHeadless, true)
	viper.SetDefault(KeyBrowserBin, "")
	viper.SetDefault(KeyBrowserStealth, true)
}

func LogLevel() string       { return viper.GetString(KeyLogLevel) }
func UserAgent() string      { return viper.GetString(KeyUserAgent) }
func WeatherBaseURL() string { return viper.GetString(KeyWeatherBaseURL) }
func BrowserHeadless() bool  { return viper.GetBool(KeyBrowserHeadless) }
func BrowserBin() string     { return viper.GetString(KeyBrowserBin) }
func BrowserStealth() bool   { return viper.GetBool(KeyBrowserStealth) }
