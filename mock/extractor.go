package mock

import (
	"context"

	"github.com/mstolarski/siteqa"
)

var _ siteqa.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of siteqa.Extractor.
type Extractor struct {
	GenerateSchemaFn func(ctx context.Context, purpose, markdown string) (map[string]any, error)
	ExtractFn        func(ctx context.Context, schema map[string]any, markdown string) (map[string]any, error)
}

func (e *Extractor) GenerateSchema(ctx context.Context, purpose, markdown string) (map[string]any, error) {
	return e.GenerateSchemaFn(ctx, purpose, markdown)
}

func (e *Extractor) Extract(ctx context.Context, schema map[string]any, markdown string) (map[string]any, error) {
	return e.ExtractFn(ctx, schema, markdown)
}
