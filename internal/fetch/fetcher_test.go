package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-logr/logr"

	"github.com/roivaz/mcp-adapters/internal/logging"
)

func testFetcher() *Fetcher {
	f := NewFetcher("test-agent", logging.New(logr.Discard()))
	f.retryPause = time.Millisecond
	return f
}

func TestFetchSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); got != "test-agent" {
			t.Errorf("unexpected user agent %q", got)
		}
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("hello"))
	}))
	defer srv.Close()

	out, err := testFetcher().Fetch(context.Background(), srv.URL, time.Second, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Body != "hello" || out.ContentType != "text/plain" {
		t.Fatalf("unexpected outcome %+v", out)
	}
}

func TestFetchNonOKIsTerminal(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := testFetcher().Fetch(context.Background(), srv.URL, time.Second, 5)
	var terminal *TerminalError
	if !errors.As(err, &terminal) {
		t.Fatalf("expected terminal error, got %v", err)
	}
	if terminal.Error() != "HTTP error! status: 404" {
		t.Fatalf("unexpected message %q", terminal.Error())
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("expected exactly 1 attempt, got %d", got)
	}
}

func TestFetchRetriesNetworkErrors(t *testing.T) {
	// a closed server refuses every connection
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	out, err := testFetcher().Fetch(context.Background(), url, time.Second, 2)
	if err != nil {
		t.Fatalf("exhausted retries must fold into an outcome, got error %v", err)
	}
	if !strings.Contains(out.Body, "after 3 attempts") {
		t.Fatalf("expected 3 attempts reported in %q", out.Body)
	}
	if !strings.HasPrefix(out.Body, "<e>") || !strings.HasSuffix(out.Body, "</e>") {
		t.Fatalf("failure body must be tagged, got %q", out.Body)
	}
	if out.ContentType != "text/plain" {
		t.Fatalf("synthetic failure body must be plain text, got %q", out.ContentType)
	}
}

func TestFetchTimeoutMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer srv.Close()

	out, err := testFetcher().Fetch(context.Background(), srv.URL, 20*time.Millisecond, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.Body, "Request timed out") {
		t.Fatalf("expected timeout wording in %q", out.Body)
	}
	if !strings.Contains(out.Body, "after 1 attempts") {
		t.Fatalf("expected single attempt reported in %q", out.Body)
	}
}
