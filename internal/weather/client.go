package weather

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/roivaz/mcp-adapters/internal/logging"
)

// Client talks to the National Weather Service API. It holds no state
// beyond the HTTP client; every lookup is independent.
type Client struct {
	baseURL   string
	userAgent string
	http      *http.Client
	log       logging.Logger
}

func NewClient(baseURL, userAgent string, log logging.Logger) *Client {
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
		http:      &http.Client{Timeout: 30 * time.Second},
		log:       log.WithName("weather"),
	}
}

// Forecast resolves the forecast endpoint for a coordinate and renders
// its period forecast.
func (c *Client) Forecast(ctx context.Context, latitude, longitude float64) (string, error) {
	pointURL := fmt.Sprintf("%s/points/%.4f,%.4f", c.baseURL, latitude, longitude)
	c.log.Debug("resolving point", "url", pointURL)
	points, err := c.get(ctx, pointURL)
	if err != nil {
		return "", err
	}

	forecastURL := gjson.Get(points, "properties.forecast").Str
	if forecastURL == "" {
		return "", fmt.Errorf("no forecast endpoint for %.4f,%.4f", latitude, longitude)
	}

	body, err := c.get(ctx, forecastURL)
	if err != nil {
		return "", err
	}
	periods := gjson.Get(body, "properties.periods").Array()
	if len(periods) == 0 {
		return "", fmt.Errorf("forecast response contained no periods")
	}

	var sb strings.Builder
	for i, p := range periods {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "%s:\nTemperature: %d°%s\nWind: %s %s\nForecast: %s\n",
			p.Get("name").Str,
			p.Get("temperature").Int(),
			p.Get("temperatureUnit").Str,
			p.Get("windSpeed").Str,
			p.Get("windDirection").Str,
			p.Get("shortForecast").Str,
		)
	}
	return sb.String(), nil
}

// Alerts renders the active alerts for a two-letter state code.
func (c *Client) Alerts(ctx context.Context, state string) (string, error) {
	code := strings.ToUpper(strings.TrimSpace(state))
	if len(code) != 2 {
		return "", fmt.Errorf("state must be a two-letter code, got %q", state)
	}

	body, err := c.get(ctx, fmt.Sprintf("%s/alerts/active/area/%s", c.baseURL, code))
	if err != nil {
		return "", err
	}

	features := gjson.Get(body, "features").Array()
	if len(features) == 0 {
		return fmt.Sprintf("No active alerts for %s.", code), nil
	}

	var sb strings.Builder
	for i, f := range features {
		if i > 0 {
			sb.WriteString("\n---\n")
		}
		props := f.Get("properties")
		fmt.Fprintf(&sb, "Event: %s\nArea: %s\nSeverity: %s\nStatus: %s\nHeadline: %s\n",
			props.Get("event").Str,
			props.Get("areaDesc").Str,
			props.Get("severity").Str,
			props.Get("status").Str,
			props.Get("headline").Str,
		)
	}
	return sb.String(), nil
}

func (c *Client) get(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/geo+json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("request %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("request %s: unexpected status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	return string(body), nil
}
