package tools

import (
	"context"
	"errors"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/roivaz/mcp-adapters/internal/fetch"
)

// FetchService runs one fetch pipeline call.
type FetchService interface {
	Run(ctx context.Context, req fetch.Request) (string, error)
}

type FetchHandler struct {
	Service FetchService
}

// FetchTool declares the fetch tool schema.
func FetchTool() mcp.Tool {
	return mcp.NewTool("fetch",
		mcp.WithDescription("Fetch a URL and return its content simplified to markdown-like text, paginated with start_index/max_length."),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("URL to fetch"),
		),
		mcp.WithNumber("max_length",
			mcp.Description("Maximum number of characters to return (default: 5000, max: 999999)"),
		),
		mcp.WithNumber("start_index",
			mcp.Description("Character offset to resume from; use the cursor a truncated call reports (default: 0)"),
		),
		mcp.WithBoolean("raw",
			mcp.Description("Return the raw content without HTML simplification (default: false)"),
		),
		mcp.WithNumber("timeout",
			mcp.Description("Per-attempt timeout in milliseconds (default: 10000, max: 60000)"),
		),
		mcp.WithNumber("retries",
			mcp.Description("Retries after transient failures (default: 2, max: 5)"),
		),
	)
}

func (h *FetchHandler) ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()

	rawURL, _ := args["url"].(string)
	r := fetch.NewRequest(rawURL)
	if v, ok := args["max_length"].(float64); ok {
		r.MaxLength = int(v)
	}
	if v, ok := args["start_index"].(float64); ok {
		r.StartIndex = int(v)
	}
	if v, ok := args["raw"].(bool); ok {
		r.Raw = v
	}
	if v, ok := args["timeout"].(float64); ok {
		r.Timeout = time.Duration(v) * time.Millisecond
	}
	if v, ok := args["retries"].(float64); ok {
		r.Retries = int(v)
	}

	result, err := h.Service.Run(ctx, r)
	if err != nil {
		var vErr *fetch.ValidationError
		if errors.As(err, &vErr) {
			return mcp.NewToolResultError(vErr.Error()), nil
		}
		return nil, err
	}
	return mcp.NewToolResultText(result), nil
}
