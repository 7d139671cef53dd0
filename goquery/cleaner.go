// Package goquery implements HTML content extraction and link discovery
// using the goquery DOM library.
package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mstolarski/siteqa"
	"golang.org/x/net/html"
)

// removeTags are stripped wholesale before extraction. They carry no
// extractable text or are pure navigation chrome.
var removeTags = []string{
	"script", "style", "noscript", "iframe", "object", "embed",
	"nav", "header", "footer", "aside", "menu",
	"form", "input", "button", "select", "textarea",
	"svg", "path", "canvas",
}

// navKeywords flag elements whose class or id marks them as UI chrome
// that survived the tag-name removal.
var navKeywords = []string{
	"nav", "navigation", "menu", "header", "footer", "sidebar",
	"breadcrumb", "pagination", "cookie", "banner", "modal",
	"popup", "overlay", "share", "social", "ad", "advertisement",
}

// protectedTags are never removed by the keyword sweep, whatever their
// class or id says.
var protectedTags = map[string]bool{
	"html":    true,
	"body":    true,
	"main":    true,
	"article": true,
}

// contentTags are collected from the content root in document order.
const contentTags = "h1, h2, h3, h4, h5, h6, p, li, dd, dt"

// minContentLength is the threshold below which a page is treated as
// having no extractable content.
const minContentLength = 10

var _ siteqa.Cleaner = (*Cleaner)(nil)

// Cleaner extracts markdown-like text from raw HTML using a fixed set of
// noise-removal heuristics. Pages with no extractable content clean to an
// empty string rather than an error, so a single bad page never aborts a
// site-wide scrape.
type Cleaner struct{}

// NewCleaner creates a new Cleaner.
func NewCleaner() *Cleaner {
	return &Cleaner{}
}

// Clean implements siteqa.Cleaner.
func (c *Cleaner) Clean(rawHTML string) (string, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return "", nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		// Unparseable page, skip it.
		return "", nil
	}

	doc.Find(strings.Join(removeTags, ", ")).Remove()
	removeChrome(doc)

	root := contentRoot(doc)

	var lines []string
	seen := make(map[string]bool)
	root.Find(contentTags).Each(func(_ int, sel *goquery.Selection) {
		text := normalizeText(elementText(sel))
		if text == "" || seen[text] {
			return
		}
		seen[text] = true
		lines = append(lines, formatLine(goquery.NodeName(sel), text))
	})

	cleaned := strings.TrimSpace(strings.Join(lines, "\n"))
	if len(cleaned) < minContentLength {
		return "", nil
	}
	return cleaned, nil
}

// removeChrome drops elements whose class or id contains a navigation
// keyword. Structural elements are exempt so an over-eager keyword match
// can never empty the whole page.
func removeChrome(doc *goquery.Document) {
	doc.Find("*").Each(func(_ int, sel *goquery.Selection) {
		if protectedTags[goquery.NodeName(sel)] {
			return
		}
		attrs := strings.ToLower(sel.AttrOr("class", "") + " " + sel.AttrOr("id", ""))
		for _, kw := range navKeywords {
			if strings.Contains(attrs, kw) {
				sel.Remove()
				return
			}
		}
	})
}

// contentRoot locates the element to extract from, preferring semantic
// HTML5 containers over the document as a whole.
func contentRoot(doc *goquery.Document) *goquery.Selection {
	for _, tag := range []string{"main", "article", "body"} {
		if sel := doc.Find(tag).First(); sel.Length() > 0 {
			return sel
		}
	}
	return doc.Selection
}

// elementText returns the visible text of an element, joining descendant
// text nodes with single spaces.
func elementText(sel *goquery.Selection) string {
	var parts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				parts = append(parts, t)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range sel.Nodes {
		walk(n)
	}
	return strings.Join(parts, " ")
}

// formatLine renders an extracted element as a markdown line.
func formatLine(tag, text string) string {
	if len(tag) == 2 && tag[0] == 'h' && tag[1] >= '1' && tag[1] <= '6' {
		return strings.Repeat("#", int(tag[1]-'0')) + " " + text
	}
	if tag == "li" {
		return "- " + text
	}
	return text
}

var (
	whitespaceRE = regexp.MustCompile(`\s+`)
	strayPunctRE = regexp.MustCompile(`\s+[^\w\s]\s+`)

	repeatedPunct = []struct {
		re   *regexp.Regexp
		repl string
	}{
		{regexp.MustCompile(`\.{2,}`), "."},
		{regexp.MustCompile(`!{2,}`), "!"},
		{regexp.MustCompile(`\?{2,}`), "?"},
		{regexp.MustCompile(`,{2,}`), ","},
	}
)

// normalizeText collapses whitespace runs, repeated punctuation, stray
// isolated punctuation tokens, and short words stuttered three or more
// times in a row, a common artifact of badly marked-up UI widgets.
func normalizeText(text string) string {
	text = whitespaceRE.ReplaceAllString(text, " ")
	for _, p := range repeatedPunct {
		text = p.re.ReplaceAllString(text, p.repl)
	}
	text = strayPunctRE.ReplaceAllString(text, " ")
	text = dropStutteredWords(text)
	return strings.TrimSpace(text)
}

// dropStutteredWords removes runs of three or more identical words of at
// most two characters.
func dropStutteredWords(text string) string {
	words := strings.Fields(text)
	var out []string
	for i := 0; i < len(words); {
		j := i
		for j < len(words) && words[j] == words[i] {
			j++
		}
		if run := j - i; run < 3 || len(words[i]) > 2 {
			out = append(out, words[i:j]...)
		}
		i = j
	}
	return strings.Join(out, " ")
}
