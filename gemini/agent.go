package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mstolarski/siteqa"
	"google.golang.org/genai"
)

const (
	// maxSchemaSample caps how much markdown is sent when proposing a
	// schema; a page prefix is enough to see the content shape.
	maxSchemaSample = 5000

	// maxExtractionInput caps how much markdown a single extraction
	// call sees.
	maxExtractionInput = 10000
)

// AgentConfig parameterizes a single structured-output model call.
type AgentConfig struct {
	SystemPrompt    string
	Model           string
	MaxOutputTokens int32
	Temperature     float32
}

// Agent runs prompts against Gemini and parses the response as a JSON
// object.
type Agent struct {
	client *genai.Client
	config AgentConfig
}

// NewAgent creates a new Agent with the given config.
func NewAgent(client *genai.Client, config AgentConfig) *Agent {
	return &Agent{client: client, config: config}
}

// Run sends the prompt and returns the model's response parsed as a
// JSON object.
func (a *Agent) Run(ctx context.Context, prompt string) (map[string]any, error) {
	if prompt == "" {
		return nil, siteqa.Errorf(siteqa.EINVALID, "prompt required")
	}

	temp := a.config.Temperature
	config := &genai.GenerateContentConfig{
		Temperature:      &temp,
		MaxOutputTokens:  a.config.MaxOutputTokens,
		ResponseMIMEType: "application/json",
	}
	if a.config.SystemPrompt != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: a.config.SystemPrompt}},
		}
	}

	result, err := a.client.Models.GenerateContent(ctx, a.config.Model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		config,
	)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, siteqa.Errorf(siteqa.EINTERNAL, "gemini returned nil result")
	}

	return ParseJSONObject(result.Text())
}

// SchemaAgentConfig returns the config for schema generation.
func SchemaAgentConfig() AgentConfig {
	return AgentConfig{
		SystemPrompt:    "You are a schema generation expert. You analyze page content and produce JSON schemas describing what data should be extracted.",
		Model:           "gemini-2.5-pro",
		MaxOutputTokens: 2048,
		Temperature:     0.2,
	}
}

// ExtractionAgentConfig returns the config for content extraction.
func ExtractionAgentConfig() AgentConfig {
	return AgentConfig{
		SystemPrompt:    "You extract structured data from page content according to a JSON schema. You are exhaustive: you scan the entire page and return every matching item, not just prominent ones.",
		Model:           "gemini-2.5-flash",
		MaxOutputTokens: 4096,
		Temperature:     0,
	}
}

// Ensure Extractor implements siteqa.Extractor at compile time.
var _ siteqa.Extractor = (*Extractor)(nil)

// Extractor implements siteqa.Extractor with two Agents, one proposing
// schemas and one applying them.
type Extractor struct {
	schema  *Agent
	extract *Agent
}

// NewExtractor creates a new Extractor with the default agent configs.
func NewExtractor(client *genai.Client) *Extractor {
	return &Extractor{
		schema:  NewAgent(client, SchemaAgentConfig()),
		extract: NewAgent(client, ExtractionAgentConfig()),
	}
}

// GenerateSchema proposes an extraction schema for the purpose based on
// a sample of page markdown.
func (e *Extractor) GenerateSchema(ctx context.Context, purpose, markdown string) (map[string]any, error) {
	if purpose == "" {
		return nil, siteqa.Errorf(siteqa.EINVALID, "purpose required")
	}
	if markdown == "" {
		return nil, siteqa.Errorf(siteqa.EINVALID, "markdown required")
	}

	schema, err := e.schema.Run(ctx, BuildSchemaPrompt(purpose, markdown))
	if err != nil {
		return nil, err
	}
	if _, ok := schema["fields"]; !ok {
		return nil, siteqa.Errorf(siteqa.EINTERNAL, "model returned schema without fields")
	}
	return schema, nil
}

// Extract pulls data matching the schema out of page markdown.
func (e *Extractor) Extract(ctx context.Context, schema map[string]any, markdown string) (map[string]any, error) {
	if len(schema) == 0 {
		return nil, siteqa.Errorf(siteqa.EINVALID, "schema required")
	}
	if markdown == "" {
		return nil, siteqa.Errorf(siteqa.EINVALID, "markdown required")
	}

	prompt, err := BuildExtractionPrompt(schema, markdown)
	if err != nil {
		return nil, err
	}
	return e.extract.Run(ctx, prompt)
}

// BuildSchemaPrompt builds the schema generation prompt. Long markdown
// is truncated to a leading sample.
func BuildSchemaPrompt(purpose, markdown string) string {
	markdown = truncate(markdown, maxSchemaSample)

	var sb strings.Builder
	fmt.Fprintf(&sb, "Purpose: %s\n\n", purpose)
	fmt.Fprintf(&sb, "Page content:\n```\n%s\n```\n\n", markdown)
	sb.WriteString(`Based on the purpose and the page content, generate a JSON schema that defines:
1. Field names (descriptive, snake_case)
2. Field types (string, number, boolean, array, object)
3. Brief descriptions of what each field should contain
4. Whether fields are required or optional

Return ONLY a valid JSON object with this structure:
{
  "fields": {
    "field_name": {
      "type": "string|number|boolean|array|object",
      "description": "What this field contains",
      "required": true|false
    }
  }
}`)
	return sb.String()
}

// BuildExtractionPrompt builds the extraction prompt for a schema and
// page markdown. Long markdown is truncated to a leading sample.
func BuildExtractionPrompt(schema map[string]any, markdown string) (string, error) {
	schemaJSON, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return "", siteqa.Errorf(siteqa.EINVALID, "invalid schema: %v", err)
	}
	markdown = truncate(markdown, maxExtractionInput)

	var sb strings.Builder
	fmt.Fprintf(&sb, "Schema (defines what to extract):\n```json\n%s\n```\n\n", schemaJSON)
	fmt.Fprintf(&sb, "Page content:\n```\n%s\n```\n\n", markdown)
	sb.WriteString(`Instructions:
1. Scan the ENTIRE page content, including lists and minor sections.
2. For each field in the schema, find ALL relevant information, be exhaustive rather than picking only prominent items.
3. Extract the data in the correct type (string, number, array, etc.).
4. If the information is not found, use null for required fields and omit optional fields.

Return ONLY a valid JSON object with the extracted data.`)
	return sb.String(), nil
}

// ParseJSONObject parses a model response as a JSON object, tolerating
// a markdown code fence around the JSON.
func ParseJSONObject(text string) (map[string]any, error) {
	text = strings.TrimSpace(text)
	if i := strings.Index(text, "```"); i >= 0 {
		text = text[i+3:]
		text = strings.TrimPrefix(text, "json")
		if j := strings.Index(text, "```"); j >= 0 {
			text = text[:j]
		}
		text = strings.TrimSpace(text)
	}

	var obj map[string]any
	if err := json.Unmarshal([]byte(text), &obj); err != nil {
		return nil, siteqa.Errorf(siteqa.EINTERNAL, "model did not return a JSON object: %v", err)
	}
	return obj, nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "\n... (truncated)"
}
