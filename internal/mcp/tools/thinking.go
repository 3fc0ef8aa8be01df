package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/roivaz/mcp-adapters/internal/thinking"
)

// ThinkingService records thoughts and reports session state.
type ThinkingService interface {
	Record(t thinking.Thought) (thinking.State, error)
}

func ThinkTool() mcp.Tool {
	return mcp.NewTool("think",
		mcp.WithDescription("A detailed tool for dynamic and reflective problem-solving through thoughts. "+
			"Each thought can build on, question, or revise previous insights as understanding deepens. "+
			"You can adjust total_thoughts up or down as you progress, express uncertainty, branch into "+
			"alternative approaches, and mark revisions of earlier thoughts. Only set next_thought_needed "+
			"to false when truly done."),
		mcp.WithString("thought", mcp.Required(), mcp.Description("Your current thinking step")),
		mcp.WithNumber("thought_number", mcp.Required(), mcp.Description("Current thought number (minimum 1)")),
		mcp.WithNumber("total_thoughts", mcp.Required(), mcp.Description("Estimated total thoughts needed (minimum 1)")),
		mcp.WithBoolean("next_thought_needed", mcp.Required(), mcp.Description("Whether another thought step is needed")),
		mcp.WithBoolean("is_revision", mcp.Description("Whether this revises previous thinking")),
		mcp.WithNumber("revises_thought", mcp.Description("Which thought number is being reconsidered")),
		mcp.WithNumber("branch_from_thought", mcp.Description("Branching point thought number")),
		mcp.WithString("branch_id", mcp.Description("Branch identifier")),
		mcp.WithBoolean("needs_more_thoughts", mcp.Description("If more thoughts are needed beyond the estimate")),
	)
}

type ThinkHandler struct{ Service ThinkingService }

func (h *ThinkHandler) ToolAdapter(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()

	thought, ok := args["thought"].(string)
	if !ok || thought == "" {
		return mcp.NewToolResultError("thought parameter is required"), nil
	}
	number, err := parseNumberArgument(args["thought_number"], "thought_number")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	total, err := parseNumberArgument(args["total_thoughts"], "total_thoughts")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	nextNeeded, ok := args["next_thought_needed"].(bool)
	if !ok {
		return mcp.NewToolResultError("next_thought_needed parameter is required"), nil
	}

	t := thinking.Thought{
		Thought:    thought,
		Number:     int(number),
		Total:      int(total),
		NextNeeded: nextNeeded,
	}
	if v, ok := args["is_revision"].(bool); ok {
		t.IsRevision = v
	}
	if v, ok := args["revises_thought"].(float64); ok {
		t.RevisesThought = int(v)
	}
	if v, ok := args["branch_from_thought"].(float64); ok {
		t.BranchFromThought = int(v)
	}
	if v, ok := args["branch_id"].(string); ok {
		t.BranchID = v
	}
	if v, ok := args["needs_more_thoughts"].(bool); ok {
		t.NeedsMoreThoughts = v
	}

	state, err := h.Service.Record(t)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(mustMarshal(state))), nil
}
