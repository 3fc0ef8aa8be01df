package browser

import (
	"context"
	"strings"
	"testing"

	"github.com/go-logr/logr"

	"github.com/roivaz/mcp-adapters/internal/logging"
)

func testManager() *Manager {
	return NewManager(Config{Headless: true}, logging.New(logr.Discard()))
}

func TestUnknownSessionIDs(t *testing.T) {
	m := testManager()
	if _, err := m.Navigate(context.Background(), "nope", "https://example.com"); err == nil {
		t.Fatalf("navigate on an unknown id must fail")
	}
	if err := m.Click(context.Background(), "nope", "a"); err == nil {
		t.Fatalf("click on an unknown id must fail")
	}
	if err := m.Close("nope"); err == nil {
		t.Fatalf("close on an unknown id must fail")
	} else if !strings.Contains(err.Error(), "unknown session id") {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestSessionCountStartsEmpty(t *testing.T) {
	m := testManager()
	if got := m.SessionCount(); got != 0 {
		t.Fatalf("expected no sessions, got %d", got)
	}
}

func TestShutdownWithoutBrowserIsSafe(t *testing.T) {
	m := testManager()
	m.Shutdown()
	m.Shutdown()
}
