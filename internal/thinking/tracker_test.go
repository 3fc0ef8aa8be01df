package thinking

import (
	"strings"
	"testing"

	"github.com/go-logr/logr"

	"github.com/roivaz/mcp-adapters/internal/logging"
)

func testTracker() *Tracker {
	return NewTracker(logging.New(logr.Discard()))
}

func TestRecordSequence(t *testing.T) {
	tr := testTracker()
	state, err := tr.Record(Thought{Thought: "first", Number: 1, Total: 3, NextNeeded: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state.ThoughtNumber != 1 || state.TotalThoughts != 3 || !state.NextThoughtNeeded {
		t.Fatalf("unexpected state %+v", state)
	}
	if state.ThoughtHistoryLength != 1 {
		t.Fatalf("expected history length 1, got %d", state.ThoughtHistoryLength)
	}

	state, err = tr.Record(Thought{Thought: "second", Number: 2, Total: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state.ThoughtHistoryLength != 2 {
		t.Fatalf("expected history length 2, got %d", state.ThoughtHistoryLength)
	}
}

func TestRecordRaisesTotal(t *testing.T) {
	tr := testTracker()
	state, err := tr.Record(Thought{Thought: "overrun", Number: 5, Total: 3, NextNeeded: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state.TotalThoughts != 5 {
		t.Fatalf("total must rise to the thought number, got %d", state.TotalThoughts)
	}
}

func TestRecordBranches(t *testing.T) {
	tr := testTracker()
	if _, err := tr.Record(Thought{Thought: "root", Number: 1, Total: 2}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	state, err := tr.Record(Thought{
		Thought:           "alternative",
		Number:            2,
		Total:             2,
		BranchFromThought: 1,
		BranchID:          "alt-1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(state.Branches) != 1 || state.Branches[0] != "alt-1" {
		t.Fatalf("unexpected branches %v", state.Branches)
	}
}

func TestRecordValidation(t *testing.T) {
	tr := testTracker()
	if _, err := tr.Record(Thought{Thought: "  ", Number: 1, Total: 1}); err == nil {
		t.Fatalf("blank thought must be rejected")
	}
	if _, err := tr.Record(Thought{Thought: "x", Number: 0, Total: 1}); err == nil {
		t.Fatalf("zero thought_number must be rejected")
	}
	if _, err := tr.Record(Thought{Thought: "x", Number: 1, Total: 0}); err == nil {
		t.Fatalf("zero total_thoughts must be rejected")
	}
	if tr.HistoryLength() != 0 {
		t.Fatalf("rejected thoughts must not be recorded")
	}
}

func TestFormatThought(t *testing.T) {
	out := formatThought(Thought{Thought: "check the cache", Number: 2, Total: 4, IsRevision: true, RevisesThought: 1})
	if !strings.Contains(out, "Revision 2/4 (revising thought 1)") {
		t.Fatalf("unexpected header in %q", out)
	}
	if !strings.Contains(out, "check the cache") {
		t.Fatalf("thought text missing from %q", out)
	}
}
