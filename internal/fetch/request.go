package fetch

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultMaxLength = 5000
	DefaultTimeout   = 10 * time.Second
	DefaultRetries   = 2

	maxMaxLength = 1_000_000
	maxTimeout   = 60 * time.Second
	maxRetries   = 5
)

// Request carries the parameters of a single fetch call. It is built
// once per call and never mutated by the pipeline.
type Request struct {
	URL        string
	MaxLength  int
	StartIndex int
	Raw        bool
	Timeout    time.Duration
	Retries    int
}

// NewRequest returns a Request for rawURL with every optional parameter
// at its default.
func NewRequest(rawURL string) Request {
	return Request{
		URL:       rawURL,
		MaxLength: DefaultMaxLength,
		Timeout:   DefaultTimeout,
		Retries:   DefaultRetries,
	}
}

// Validate returns the list of violated constraints, empty when the
// request is well formed.
func (r Request) Validate() []string {
	var violations []string
	if strings.TrimSpace(r.URL) == "" {
		violations = append(violations, "url is required")
	} else if u, err := url.Parse(r.URL); err != nil || u.Scheme == "" || u.Host == "" {
		violations = append(violations, "url must be a well-formed absolute URL")
	}
	if r.MaxLength <= 0 || r.MaxLength >= maxMaxLength {
		violations = append(violations, fmt.Sprintf("max_length must be between 1 and %d", maxMaxLength-1))
	}
	if r.StartIndex < 0 {
		violations = append(violations, "start_index must be non-negative")
	}
	if r.Timeout <= 0 || r.Timeout > maxTimeout {
		violations = append(violations, "timeout must be between 1 and 60000 milliseconds")
	}
	if r.Retries < 0 || r.Retries > maxRetries {
		violations = append(violations, fmt.Sprintf("retries must be between 0 and %d", maxRetries))
	}
	return violations
}

// ValidationError reports every constraint a request violated. It is
// the only failure the pipeline surfaces as an error; everything else
// is recovered into the response text.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return "invalid request: " + strings.Join(e.Violations, "; ")
}
