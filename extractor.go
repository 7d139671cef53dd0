package siteqa

import "context"

// Extractor turns unstructured page markdown into structured data. It
// derives a JSON field schema from the scraping purpose, then applies
// that schema to page content.
type Extractor interface {
	// GenerateSchema proposes an extraction schema for the given purpose
	// based on a sample of page markdown. The returned map has a "fields"
	// key describing field names, types and descriptions.
	GenerateSchema(ctx context.Context, purpose, markdown string) (map[string]any, error)

	// Extract pulls data matching the schema out of page markdown.
	Extract(ctx context.Context, schema map[string]any, markdown string) (map[string]any, error)
}
