package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/roivaz/mcp-adapters/internal/browser"
	"github.com/roivaz/mcp-adapters/internal/config"
	"github.com/roivaz/mcp-adapters/internal/fetch"
	"github.com/roivaz/mcp-adapters/internal/logging"
	"github.com/roivaz/mcp-adapters/internal/mcp/tools"
	"github.com/roivaz/mcp-adapters/internal/thinking"
	"github.com/roivaz/mcp-adapters/internal/weather"
)

const Version = "1.0.0"

func defaultOptions() []server.StreamableHTTPOption {
	return []server.StreamableHTTPOption{
		server.WithEndpointPath("/mcp"),
		server.WithStateLess(true),
	}
}

// FetchConfig wires the fetch pipeline behind the "fetch" tool.
func FetchConfig(log logging.Logger) Config {
	pipeline := fetch.NewPipeline(config.UserAgent(), log)
	return Config{
		Name:    "fetch-server",
		Version: Version,
		Tools: []Registration{
			{Tool: tools.FetchTool(), Adapter: &tools.FetchHandler{Service: pipeline}},
		},
		Options: defaultOptions(),
	}
}

// BrowserConfig wires a shared browser session arena behind the
// browser_* tools. The arena shuts the browser down when the server
// closes.
func BrowserConfig(log logging.Logger) Config {
	manager := browser.NewManager(browser.Config{
		Headless: config.BrowserHeadless(),
		Bin:      config.BrowserBin(),
		Stealth:  config.BrowserStealth(),
	}, log)
	return Config{
		Name:    "browser-server",
		Version: Version,
		Tools: []Registration{
			{Tool: tools.BrowserOpenTool(), Adapter: &tools.BrowserOpenHandler{Service: manager}},
			{Tool: tools.BrowserNavigateTool(), Adapter: &tools.BrowserNavigateHandler{Service: manager}},
			{Tool: tools.BrowserClickTool(), Adapter: &tools.BrowserClickHandler{Service: manager}},
			{Tool: tools.BrowserFillTool(), Adapter: &tools.BrowserFillHandler{Service: manager}},
			{Tool: tools.BrowserEvalTool(), Adapter: &tools.BrowserEvalHandler{Service: manager}},
			{Tool: tools.BrowserScreenshotTool(), Adapter: &tools.BrowserScreenshotHandler{Service: manager}},
			{Tool: tools.BrowserCloseTool(), Adapter: &tools.BrowserCloseHandler{Service: manager}},
		},
		Options: defaultOptions(),
		OnClose: manager.Shutdown,
	}
}

// ThinkingConfig wires an in-memory thought tracker behind the "think"
// tool.
func ThinkingConfig(log logging.Logger) Config {
	tracker := thinking.NewTracker(log)
	return Config{
		Name:    "thinking-server",
		Version: Version,
		Tools: []Registration{
			{Tool: tools.ThinkTool(), Adapter: &tools.ThinkHandler{Service: tracker}},
		},
		Options: defaultOptions(),
	}
}

// WeatherConfig wires the NWS client behind the weather tools.
func WeatherConfig(log logging.Logger) Config {
	client := weather.NewClient(config.WeatherBaseURL(), config.UserAgent(), log)
	return Config{
		Name:    "weather-server",
		Version: Version,
		Tools: []Registration{
			{Tool: tools.ForecastTool(), Adapter: &tools.ForecastHandler{Service: client}},
			{Tool: tools.AlertsTool(), Adapter: &tools.AlertsHandler{Service: client}},
		},
		Options: defaultOptions(),
	}
}
