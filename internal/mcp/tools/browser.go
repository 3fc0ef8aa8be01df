package tools

import (
	"context"
	"encoding/base64"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/roivaz/mcp-adapters/internal/browser"
)

// BrowserService is the session arena the browser tools drive.
type BrowserService interface {
	Open(ctx context.Context, url string) (string, error)
	Navigate(ctx context.Context, id, url string) (browser.PageInfo, error)
	Click(ctx context.Context, id, selector string) error
	Fill(ctx context.Context, id, selector, value string) error
	Eval(ctx context.Context, id, script string) (string, error)
	Screenshot(ctx context.Context, id string, fullPage bool) ([]byte, error)
	Close(id string) error
}

func BrowserOpenTool() mcp.Tool {
	return mcp.NewTool("browser_open",
		mcp.WithDescription("Open a new browser session and return its session_id. Optionally navigates to a URL."),
		mcp.WithString("url", mcp.Description("URL to load after opening the session")),
	)
}

func BrowserNavigateTool() mcp.Tool {
	return mcp.NewTool("browser_navigate",
		mcp.WithDescription("Navigate a session to a URL and return the final URL and page title."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session id from browser_open")),
		mcp.WithString("url", mcp.Required(), mcp.Description("URL to load")),
	)
}

func BrowserClickTool() mcp.Tool {
	return mcp.NewTool("browser_click",
		mcp.WithDescription("Click the first element matching a CSS selector."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session id from browser_open")),
		mcp.WithString("selector", mcp.Required(), mcp.Description("CSS selector of the element to click")),
	)
}

func BrowserFillTool() mcp.Tool {
	return mcp.NewTool("browser_fill",
		mcp.WithDescription("Replace the value of the first element matching a CSS selector."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session id from browser_open")),
		mcp.WithString("selector", mcp.Required(), mcp.Description("CSS selector of the input element")),
		mcp.WithString("value", mcp.Required(), mcp.Description("Value to type into the element")),
	)
}

func BrowserEvalTool() mcp.Tool {
	return mcp.NewTool("browser_eval",
		mcp.WithDescription("Evaluate a JavaScript function in the page and return its JSON-encoded result."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session id from browser_open")),
		mcp.WithString("script", mcp.Required(), mcp.Description("JavaScript function to run, e.g. () => document.title")),
	)
}

func BrowserScreenshotTool() mcp.Tool {
	return mcp.NewTool("browser_screenshot",
		mcp.WithDescription("Capture the page as a PNG image."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session id from browser_open")),
		mcp.WithBoolean("full_page", mcp.Description("Capture the full scrollable page (default: false)")),
	)
}

func BrowserCloseTool() mcp.Tool {
	return mcp.NewTool("browser_close",
		mcp.WithDescription("Dispose a browser session."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session id from browser_open")),
	)
}

type BrowserOpenHandler struct{ Service BrowserService }

func (h *BrowserOpenHandler) ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	url, _ := req.GetArguments()["url"].(string)
	id, err := h.Service.Open(ctx, url)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	response := struct {
		SessionID string `json:"session_id"`
	}{SessionID: id}
	return mcp.NewToolResultText(string(mustMarshal(response))), nil
}

type BrowserNavigateHandler struct{ Service BrowserService }

func (h *BrowserNavigateHandler) ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	id, _ := args["session_id"].(string)
	url, _ := args["url"].(string)
	if id == "" {
		return mcp.NewToolResultError("session_id parameter is required"), nil
	}
	if url == "" {
		return mcp.NewToolResultError("url parameter is required"), nil
	}
	info, err := h.Service.Navigate(ctx, id, url)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(mustMarshal(info))), nil
}

type BrowserClickHandler struct{ Service BrowserService }

func (h *BrowserClickHandler) ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	id, _ := args["session_id"].(string)
	selector, _ := args["selector"].(string)
	if id == "" || selector == "" {
		return mcp.NewToolResultError("session_id and selector parameters are required"), nil
	}
	if err := h.Service.Click(ctx, id, selector); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText("clicked " + selector), nil
}

type BrowserFillHandler struct{ Service BrowserService }

func (h *BrowserFillHandler) ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	id, _ := args["session_id"].(string)
	selector, _ := args["selector"].(string)
	value, _ := args["value"].(string)
	if id == "" || selector == "" {
		return mcp.NewToolResultError("session_id and selector parameters are required"), nil
	}
	if err := h.Service.Fill(ctx, id, selector, value); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText("filled " + selector), nil
}

type BrowserEvalHandler struct{ Service BrowserService }

func (h *BrowserEvalHandler) ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	id, _ := args["session_id"].(string)
	script, _ := args["script"].(string)
	if id == "" || script == "" {
		return mcp.NewToolResultError("session_id and script parameters are required"), nil
	}
	result, err := h.Service.Eval(ctx, id, script)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(result), nil
}

type BrowserScreenshotHandler struct{ Service BrowserService }

func (h *BrowserScreenshotHandler) ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	id, _ := args["session_id"].(string)
	if id == "" {
		return mcp.NewToolResultError("session_id parameter is required"), nil
	}
	fullPage, _ := args["full_page"].(bool)
	data, err := h.Service.Screenshot(ctx, id, fullPage)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultImage("screenshot", base64.StdEncoding.EncodeToString(data), "image/png"), nil
}

type BrowserCloseHandler struct{ Service BrowserService }

func (h *BrowserCloseHandler) ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, _ := req.GetArguments()["session_id"].(string)
	if id == "" {
		return mcp.NewToolResultError("session_id parameter is required"), nil
	}
	if err := h.Service.Close(id); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText("session closed"), nil
}
