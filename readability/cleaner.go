// Package readability implements a content-extraction fallback on top of
// go-readability, a port of the Firefox Reader Mode heuristics.
package readability

import (
	"strings"

	"github.com/go-shiori/go-readability"
	"github.com/mstolarski/siteqa"
	"github.com/mstolarski/siteqa/htmltomarkdown"
)

// minContentLength is the threshold below which a page is treated as
// having no extractable content.
const minContentLength = 10

var _ siteqa.Cleaner = (*Cleaner)(nil)

// Cleaner locates a page's main content with go-readability and converts
// it to Markdown. Reader Mode heuristics favor long article-like text, so
// this is the last resort of the cleaner chain. All failures surface as
// an empty result so the caller skips the page instead of aborting the
// scrape.
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

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil || strings.TrimSpace(article.Content) == "" {
		return "", nil
	}

	markdown, err := c.conv.Convert(article.Content)
	if err != nil {
		return "", nil
	}
	markdown = strings.TrimSpace(markdown)

	if title := strings.TrimSpace(article.Title); title != "" && !strings.HasPrefix(markdown, "#") {
		markdown = "# " + title + "\n\n" + markdown
	}

	if len(markdown) < minContentLength {
		return "", nil
	}
	return markdown, nil
}
