// Package trafilatura implements a content-extraction fallback on top of
// go-trafilatura, used when the heuristic cleaner finds nothing.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/markusmobius/go-trafilatura"
	"github.com/mstolarski/siteqa"
	"github.com/mstolarski/siteqa/htmltomarkdown"
	"golang.org/x/net/html"
)

// minContentLength is the threshold below which a page is treated as
// having no extractable content.
const minContentLength = 10

var _ siteqa.Cleaner = (*Cleaner)(nil)

// Cleaner locates a page's main content with trafilatura and converts it
// to Markdown. Heavier than the heuristic cleaner but handles pages whose
// markup defeats tag-based extraction. All failures surface as an empty
// result so the caller skips the page instead of aborting the scrape.
type Cleaner struct {
	conv siteqa.Converter
}

// NewCleaner creates a Cleaner. A nil converter defaults to
// htmltomarkdown.NewConverter.
func NewCleaner(conv siteqa.Converter) *Cleaner {
	if conv == nil {
		conv = htmltomarkdown.NewConverter()
	}
	return &Cleaner{conv: conv}
}

// Clean implements siteqa.Cleaner.
func (c *Cleaner) Clean(rawHTML string) (string, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return "", nil
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), trafilatura.Options{
		EnableFallback: true,
	})
	if err != nil || result.ContentNode == nil {
		return "", nil
	}

	contentHTML, err := renderNode(result.ContentNode)
	if err != nil {
		return "", nil
	}

	markdown, err := c.conv.Convert(contentHTML)
	if err != nil {
		return "", nil
	}
	markdown = strings.TrimSpace(markdown)

	// Trafilatura pulls the title out of the content, re-attach it as the
	// top-level heading when the content has none of its own.
	if title := strings.TrimSpace(result.Metadata.Title); title != "" && !strings.HasPrefix(markdown, "#") {
		markdown = "# " + title + "\n\n" + markdown
	}

	if len(markdown) < minContentLength {
		return "", nil
	}
	return markdown, nil
}

// renderNode converts an html.Node back to an HTML string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
