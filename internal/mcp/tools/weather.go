package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// WeatherService resolves forecasts and active alerts from the NWS API.
type WeatherService interface {
	Forecast(ctx context.Context, latitude, longitude float64) (string, error)
	Alerts(ctx context.Context, state string) (string, error)
}

func ForecastTool() mcp.Tool {
	return mcp.NewTool("get_forecast",
		mcp.WithDescription("Get the weather forecast for a location in the United States."),
		mcp.WithNumber("latitude", mcp.Required(), mcp.Description("Latitude of the location")),
		mcp.WithNumber("longitude", mcp.Required(), mcp.Description("Longitude of the location")),
	)
}

func AlertsTool() mcp.Tool {
	return mcp.NewTool("get_alerts",
		mcp.WithDescription("Get active weather alerts for a US state."),
		mcp.WithString("state", mcp.Required(), mcp.Description("Two-letter US state code, e.g. CA or NY")),
	)
}

type ForecastHandler struct{ Service WeatherService }

func (h *ForecastHandler) ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	lat, err := parseNumberArgument(args["latitude"], "latitude")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	lon, err := parseNumberArgument(args["longitude"], "longitude")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	forecast, err := h.Service.Forecast(ctx, lat, lon)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(forecast), nil
}

type AlertsHandler struct{ Service WeatherService }

func (h *AlertsHandler) ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	state, _ := req.GetArguments()["state"].(string)
	if state == "" {
		return mcp.NewToolResultError("state parameter is required"), nil
	}
	alerts, err := h.Service.Alerts(ctx, state)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(alerts), nil
}
