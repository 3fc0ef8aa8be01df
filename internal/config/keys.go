package config

const (
	KeyLogLevel        = "log_level"
	KeyUserAgent       = "user_agent"
	KeyWeatherBaseURL  = "weather_base_url"
	KeyBrowserHeadless = "browser_headless"
	KeyBrowserBin      = "browser_bin"
	KeyBrowserStealth  = "browser_stealth"
)
