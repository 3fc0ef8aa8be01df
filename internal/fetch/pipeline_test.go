package fetch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-logr/logr"

	"github.com/roivaz/mcp-adapters/internal/logging"
)

func testPipeline() *Pipeline {
	p := NewPipeline("test-agent", logging.New(logr.Discard()))
	p.fetcher.retryPause = 0
	return p
}

func serveContent(t *testing.T, contentType, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if contentType != "" {
			w.Header().Set("Content-Type", contentType)
		}
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestPipelineValidation(t *testing.T) {
	cases := []struct {
		name string
		req  Request
		want string
	}{
		{"missing url", Request{MaxLength: 10, Timeout: DefaultTimeout}, "url is required"},
		{"relative url", mutate(NewRequest("not-a-url")), "well-formed"},
		{"oversized max_length", mutate(NewRequest("https://example.com"), func(r *Request) { r.MaxLength = 2_000_000 }), "max_length"},
		{"negative start_index", mutate(NewRequest("https://example.com"), func(r *Request) { r.StartIndex = -1 }), "start_index"},
		{"excessive retries", mutate(NewRequest("https://example.com"), func(r *Request) { r.Retries = 9 }), "retries"},
	}
	p := testPipeline()
	for _, tc := range cases {
		_, err := p.Run(context.Background(), tc.req)
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("%s: expected validation error, got %v", tc.name, err)
		}
		if !strings.Contains(vErr.Error(), tc.want) {
			t.Fatalf("%s: expected %q in %q", tc.name, tc.want, vErr.Error())
		}
	}
}

func mutate(r Request, fns ...func(*Request)) Request {
	for _, fn := range fns {
		fn(&r)
	}
	return r
}

func TestPipelinePlainText(t *testing.T) {
	srv := serveContent(t, "text/plain; charset=utf-8", "hello world")
	out, err := testPipeline().Run(context.Background(), NewRequest(srv.URL))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantHeader := fmt.Sprintf("Content-Type: text/plain; charset=utf-8\nContent size: 11 characters\nContents of %s:\n\nhello world", srv.URL)
	if out != wantHeader {
		t.Fatalf("unexpected envelope:\n%s", out)
	}
}

func TestPipelineBinaryRefusal(t *testing.T) {
	srv := serveContent(t, "image/png", "\x89PNG\r\n")
	out, err := testPipeline().Run(context.Background(), NewRequest(srv.URL))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "image/png") {
		t.Fatalf("refusal must name the content type:\n%s", out)
	}
	if !strings.Contains(out, "raw=true") {
		t.Fatalf("refusal must point at raw mode:\n%s", out)
	}
}

func TestPipelineBinaryRawMode(t *testing.T) {
	srv := serveContent(t, "application/octet-stream", "rawbytes")
	req := NewRequest(srv.URL)
	req.Raw = true
	out, err := testPipeline().Run(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "rawbytes") {
		t.Fatalf("raw mode must pass the payload through:\n%s", out)
	}
}

func TestPipelineHTMLSimplified(t *testing.T) {
	srv := serveContent(t, "text/html", articleHTML)
	out, err := testPipeline().Run(context.Background(), NewRequest(srv.URL))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "# Gopher News") {
		t.Fatalf("expected simplified heading in envelope:\n%s", out)
	}
	if strings.Contains(out, "<article>") {
		t.Fatalf("html must not leak into simplified output:\n%s", out)
	}
}

func TestPipelineRawHTML(t *testing.T) {
	srv := serveContent(t, "text/html", articleHTML)
	req := NewRequest(srv.URL)
	req.Raw = true
	out, err := testPipeline().Run(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "<article>") {
		t.Fatalf("raw mode must return the original html:\n%s", out)
	}
}

func TestPipelineSimplifyFailureIsPaginated(t *testing.T) {
	srv := serveContent(t, "text/html", "<html><body></body></html>")
	out, err := testPipeline().Run(context.Background(), NewRequest(srv.URL))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, simplifyFailure) {
		t.Fatalf("expected literal failure text in envelope:\n%s", out)
	}
}

func TestPipelineTerminalFailureBecomesText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	out, err := testPipeline().Run(context.Background(), NewRequest(srv.URL))
	if err != nil {
		t.Fatalf("terminal fetch failures must not surface as errors: %v", err)
	}
	if !strings.Contains(out, "HTTP error! status: 500") {
		t.Fatalf("expected status message in envelope:\n%s", out)
	}
}

func TestPipelinePaginationExhaustion(t *testing.T) {
	srv := serveContent(t, "text/plain", "short")
	req := NewRequest(srv.URL)
	req.StartIndex = 50
	out, err := testPipeline().Run(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "No more content available.") {
		t.Fatalf("expected exhaustion sentinel:\n%s", out)
	}
}

func TestPipelineTruncationCursorResumes(t *testing.T) {
	body := strings.Repeat("0123456789", 200)
	srv := serveContent(t, "text/plain", body)

	p := testPipeline()
	req := NewRequest(srv.URL)
	req.MaxLength = 700

	first, err := p.Run(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(first, "start_index=700") {
		t.Fatalf("expected resume cursor in first page:\n%s", first)
	}

	req.StartIndex = 700
	second, err := p.Run(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(second, body[700:710]) {
		t.Fatalf("second page must continue where the first stopped")
	}
}
