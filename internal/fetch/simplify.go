package fetch

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	readability "github.com/go-shiori/go-readability"
	"golang.org/x/net/html"
)

// simplifyFailure is the exact text surfaced (and then paginated) when
// extraction yields no article content.
const simplifyFailure = "Page failed to be simplified from HTML"

const fallbackTitle = "Untitled Page"

// Article is the simplified form of an HTML page.
type Article struct {
	Title    string
	SiteName string
	Body     string
}

// Simplifier extracts the readable article from an HTML document and
// renders it to a markdown-like text form.
type Simplifier struct {
	conv *converter.Converter
}

func NewSimplifier() *Simplifier {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(
				commonmark.WithHeadingStyle(commonmark.HeadingStyleATX),
				commonmark.WithCodeBlockFence("```"),
				commonmark.WithBulletListMarker("-"),
				commonmark.WithEmDelimiter("_"),
				commonmark.WithStrongDelimiter("**"),
			),
		),
	)
	// pre and code always become fenced blocks, inline occurrences
	// included, so code samples survive extraction intact.
	conv.Register.RendererFor("pre", converter.TagTypeBlock, renderFenced, converter.PriorityStandard)
	conv.Register.RendererFor("code", converter.TagTypeBlock, renderFenced, converter.PriorityStandard)
	return &Simplifier{conv: conv}
}

// Simplify extracts the main article from htmlText. On failure the
// returned error text is exactly what the pipeline presents as content.
func (s *Simplifier) Simplify(htmlText string, pageURL *url.URL) (Article, error) {
	parser := readability.NewParser()
	parser.CharThresholds = 20
	parser.ClassesToPreserve = []string{"code"}
	parser.KeepClasses = false
	parser.Debug = false

	article, err := parser.Parse(strings.NewReader(htmlText), pageURL)
	if err != nil {
		return Article{}, fmt.Errorf("%s: %s", simplifyFailure, err)
	}
	if strings.TrimSpace(article.Content) == "" {
		return Article{}, errors.New(simplifyFailure)
	}

	markdown, err := s.conv.ConvertString(article.Content)
	if err != nil {
		return Article{}, fmt.Errorf("%s: %s", simplifyFailure, err)
	}

	title := strings.TrimSpace(article.Title)
	if title == "" {
		title = documentTitle(htmlText)
	}
	if title == "" {
		title = fallbackTitle
	}

	heading := "# " + title
	if article.SiteName != "" {
		heading += " | " + article.SiteName
	}

	return Article{
		Title:    title,
		SiteName: article.SiteName,
		Body:     heading + "\n\n" + markdown,
	}, nil
}

func renderFenced(ctx converter.Context, w converter.Writer, node *html.Node) converter.RenderStatus {
	var sb strings.Builder
	collectText(node, &sb)
	w.WriteString("\n```\n")
	w.WriteString(sb.String())
	w.WriteString("\n```\n")
	return converter.RenderSuccess
}

func collectText(n *html.Node, sb *strings.Builder) {
	if n.Type == html.TextNode {
		sb.WriteString(n.Data)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, sb)
	}
}

// documentTitle pulls the document's own <title> as a fallback when
// extraction produced none.
func documentTitle(htmlText string) string {
	doc, err := html.Parse(strings.NewReader(htmlText))
	if err != nil {
		return ""
	}
	var title string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if title != "" {
			return
		}
		if n.Type == html.ElementNode && n.Data == "title" {
			var sb strings.Builder
			collectText(n, &sb)
			title = strings.TrimSpace(sb.String())
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return title
}
