package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/roivaz/mcp-adapters/internal/logging"
)

// Outcome is what a fetch produces: the decoded body text and the
// declared content type, empty when the server sent none.
type Outcome struct {
	Body        string
	ContentType string
}

// TerminalError marks a failure retrying cannot help with. The message
// is surfaced to the caller verbatim.
type TerminalError struct {
	Status int
}

func (e *TerminalError) Error() string {
	return fmt.Sprintf("HTTP error! status: %d", e.Status)
}

// Fetcher performs GET requests with an independent deadline per
// attempt and a bounded number of retries for transient failures.
type Fetcher struct {
	client     *http.Client
	userAgent  string
	retryPause time.Duration
	log        logging.Logger
}

func NewFetcher(userAgent string, log logging.Logger) *Fetcher {
	return &Fetcher{
		client:     &http.Client{},
		userAgent:  userAgent,
		retryPause: time.Second,
		log:        log.WithName("fetcher"),
	}
}

// Fetch GETs rawURL. A non-2xx status is terminal and returned as a
// *TerminalError without retrying. Network errors and timeouts are
// retried up to retries additional times with a fixed pause between
// attempts; once attempts are exhausted the failure is folded into a
// plain-text Outcome so it flows through the rest of the pipeline.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string, timeout time.Duration, retries int) (Outcome, error) {
	attempts := retries + 1
	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return f.failureOutcome(rawURL, attempt, ctx.Err()), nil
			case <-time.After(f.retryPause):
			}
		}
		out, err := f.attempt(ctx, rawURL, timeout)
		if err == nil {
			return out, nil
		}
		var terminal *TerminalError
		if errors.As(err, &terminal) {
			f.log.Debug("terminal status", "url", rawURL, "status", terminal.Status)
			return Outcome{}, terminal
		}
		lastErr = err
		f.log.Debug("attempt failed", "url", rawURL, "attempt", attempt+1, "error", err)
	}
	return f.failureOutcome(rawURL, attempts, lastErr), nil
}

// attempt issues a single GET bounded by its own deadline.
func (f *Fetcher) attempt(ctx context.Context, rawURL string, timeout time.Duration) (Outcome, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return Outcome{}, err
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return Outcome{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Outcome{}, &TerminalError{Status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{Body: string(body), ContentType: resp.Header.Get("Content-Type")}, nil
}

func (f *Fetcher) failureOutcome(rawURL string, attempts int, err error) Outcome {
	reason := "unknown error"
	if err != nil {
		reason = err.Error()
	}
	if isTimeout(err) {
		reason = "Request timed out"
	}
	f.log.Info("fetch failed", "url", rawURL, "attempts", attempts, "reason", reason)
	return Outcome{
		Body:        fmt.Sprintf("<e>Failed to fetch %s after %d attempts: %s</e>", rawURL, attempts, reason),
		ContentType: "text/plain",
	}
}

func isTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
