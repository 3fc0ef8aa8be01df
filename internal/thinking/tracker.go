package thinking

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/roivaz/mcp-adapters/internal/logging"
)

// Thought is one step in a thinking session.
type Thought struct {
	Thought           string
	Number            int
	Total             int
	NextNeeded        bool
	IsRevision        bool
	RevisesThought    int
	BranchFromThought int
	BranchID          string
	NeedsMoreThoughts bool
}

// State summarizes the tracker after a thought has been recorded.
type State struct {
	ThoughtNumber        int      `json:"thought_number"`
	TotalThoughts        int      `json:"total_thoughts"`
	NextThoughtNeeded    bool     `json:"next_thought_needed"`
	Branches             []string `json:"branches"`
	ThoughtHistoryLength int      `json:"thought_history_length"`
}

// Tracker keeps the in-memory history and branch index of a thinking
// session. There is no persistence; the session lives and dies with the
// process.
type Tracker struct {
	mu       sync.Mutex
	history  []Thought
	branches map[string][]Thought
	log      logging.Logger
}

func NewTracker(log logging.Logger) *Tracker {
	return &Tracker{
		branches: make(map[string][]Thought),
		log:      log.WithName("thinking"),
	}
}

// Record validates and appends t, returning the session state. When the
// caller runs past its own estimate, total_thoughts is raised to the
// current thought number.
func (tr *Tracker) Record(t Thought) (State, error) {
	if strings.TrimSpace(t.Thought) == "" {
		return State{}, fmt.Errorf("thought must not be empty")
	}
	if t.Number < 1 {
		return State{}, fmt.Errorf("thought_number must be at least 1")
	}
	if t.Total < 1 {
		return State{}, fmt.Errorf("total_thoughts must be at least 1")
	}
	if t.Number > t.Total {
		t.Total = t.Number
	}

	tr.mu.Lock()
	defer tr.mu.Unlock()

	tr.history = append(tr.history, t)
	if t.BranchID != "" {
		tr.branches[t.BranchID] = append(tr.branches[t.BranchID], t)
	}

	tr.log.Info("thought recorded", "trace", "\n"+formatThought(t))

	branches := make([]string, 0, len(tr.branches))
	for id := range tr.branches {
		branches = append(branches, id)
	}
	sort.Strings(branches)

	return State{
		ThoughtNumber:        t.Number,
		TotalThoughts:        t.Total,
		NextThoughtNeeded:    t.NextNeeded,
		Branches:             branches,
		ThoughtHistoryLength: len(tr.history),
	}, nil
}

// HistoryLength reports how many thoughts the session holds.
func (tr *Tracker) HistoryLength() int {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	return len(tr.history)
}

// formatThought renders the bordered trace of a single thought.
func formatThought(t Thought) string {
	header := fmt.Sprintf("Thought %d/%d", t.Number, t.Total)
	switch {
	case t.IsRevision:
		header = fmt.Sprintf("Revision %d/%d (revising thought %d)", t.Number, t.Total, t.RevisesThought)
	case t.BranchID != "":
		header = fmt.Sprintf("Branch %d/%d (from thought %d, id %s)", t.Number, t.Total, t.BranchFromThought, t.BranchID)
	}

	lines := strings.Split(t.Thought, "\n")
	width := len(header)
	for _, line := range lines {
		if len(line) > width {
			width = len(line)
		}
	}

	border := strings.Repeat("-", width+2)
	var sb strings.Builder
	fmt.Fprintf(&sb, "+%s+\n| %-*s |\n+%s+\n", border, width, header, border)
	for _, line := range lines {
		fmt.Fprintf(&sb, "| %-*s |\n", width, line)
	}
	fmt.Fprintf(&sb, "+%s+", border)
	return sb.String()
}
