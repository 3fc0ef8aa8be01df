package fetch

import (
	"context"
	"fmt"
	"net/url"

	"github.com/roivaz/mcp-adapters/internal/logging"
)

// Pipeline runs the fetch → classify → simplify → paginate chain for
// one request. Calls are independent; the pipeline keeps no state
// between them and is safe for concurrent use.
type Pipeline struct {
	fetcher    *Fetcher
	simplifier *Simplifier
	log        logging.Logger
}

func NewPipeline(userAgent string, log logging.Logger) *Pipeline {
	return &Pipeline{
		fetcher:    NewFetcher(userAgent, log),
		simplifier: NewSimplifier(),
		log:        log.WithName("pipeline"),
	}
}

// Run executes req and returns the response envelope. Fetch,
// simplification and pagination failures are all recovered into the
// envelope text; only request validation surfaces as an error.
func (p *Pipeline) Run(ctx context.Context, req Request) (string, error) {
	if violations := req.Validate(); len(violations) > 0 {
		return "", &ValidationError{Violations: violations}
	}

	content, contentType := p.resolveContent(ctx, req)
	view := Paginate(content, req.StartIndex, req.MaxLength)

	p.log.Info("fetched", "url", req.URL, "contentType", contentType,
		"size", len(content), "tokens", estimateTokens(content))

	return fmt.Sprintf("Content-Type: %s\nContent size: %d characters\nContents of %s:\n\n%s",
		contentType, len(content), req.URL, view.Render()), nil
}

// resolveContent produces the text pagination operates on together with
// the content type reported in the envelope.
func (p *Pipeline) resolveContent(ctx context.Context, req Request) (string, string) {
	outcome, err := p.fetcher.Fetch(ctx, req.URL, req.Timeout, req.Retries)
	if err != nil {
		return fmt.Sprintf("<e>%s</e>", err), "text/plain"
	}

	kind := Classify(outcome.Body, outcome.ContentType)
	switch {
	case kind == KindBinary && !req.Raw:
		return fmt.Sprintf(
			"<e>Content type %s is binary and was not converted to text. Set raw=true to retrieve the raw binary data.</e>",
			outcome.ContentType), outcome.ContentType
	case kind == KindHTML && !req.Raw:
		pageURL, _ := url.Parse(req.URL)
		article, err := p.simplifier.Simplify(outcome.Body, pageURL)
		if err != nil {
			p.log.Debug("simplification failed", "url", req.URL, "error", err)
			return fmt.Sprintf("<e>%s</e>", err), outcome.ContentType
		}
		return article.Body, outcome.ContentType
	default:
		return outcome.Body, outcome.ContentType
	}
}
