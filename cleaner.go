package siteqa

// Cleaner transforms raw HTML into markdown-like text with navigation
// chrome and boilerplate removed.
type Cleaner interface {
	// Clean returns the page's extractable content as markdown.
	// An empty string means the page has no extractable content and
	// should be skipped; it is not an error. Parse failures are
	// likewise surfaced as an empty result, never as an error that
	// would abort a whole-site scrape.
	Clean(html string) (string, error)
}

// CleanerChain tries each cleaner in order and returns the first
// non-empty result. An empty result from every cleaner means the page
// has no extractable content.
type CleanerChain []Cleaner

// Clean implements Cleaner.
func (c CleanerChain) Clean(html string) (string, error) {
	for _, cleaner := range c {
		out, err := cleaner.Clean(html)
		if err != nil {
			return "", err
		}
		if out != "" {
			return out, nil
		}
	}
	return "", nil
}

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms HTML content into Markdown.
	// The input should be clean HTML (e.g., a content root located by
	// an extraction step). Returns the Markdown representation.
	Convert(html string) (string, error)
}
