package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/mstolarski/siteqa"
	"google.golang.org/genai"
)

const (
	askModel    = "gemini-2.5-flash"
	defaultTopK = 5
)

// Ensure Asker implements siteqa.Asker at compile time.
var _ siteqa.Asker = (*Asker)(nil)

// Asker implements siteqa.Asker using Google Gemini. It embeds the
// question, retrieves the closest chunks from the vector index, and
// synthesizes an answer grounded in those chunks.
type Asker struct {
	client   *genai.Client
	embedder siteqa.Embedder
	index    siteqa.VectorIndex
}

// NewAsker creates a new Asker.
func NewAsker(client *genai.Client, embedder siteqa.Embedder, index siteqa.VectorIndex) *Asker {
	return &Asker{client: client, embedder: embedder, index: index}
}

// Ask answers a natural language question about indexed site content.
func (a *Asker) Ask(ctx context.Context, question string, topK int, filter *siteqa.SearchFilter) (string, error) {
	if question == "" {
		return "", siteqa.Errorf(siteqa.EINVALID, "question required")
	}
	if topK <= 0 {
		topK = defaultTopK
	}

	embedding, err := a.embedder.Embed(ctx, question)
	if err != nil {
		return "", err
	}

	chunks, err := a.index.Query(ctx, embedding, topK, filter)
	if err != nil {
		return "", err
	}
	if len(chunks) == 0 {
		return "", siteqa.Errorf(siteqa.ENOTFOUND, "no indexed content matches the question")
	}

	prompt := BuildUserPrompt(chunks, question)
	config := BuildConfig()

	result, err := a.client.Models.GenerateContent(ctx, askModel,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		config,
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", siteqa.Errorf(siteqa.EINTERNAL, "gemini returned nil result")
	}

	return result.Text(), nil
}

// BuildConfig returns the GenerateContentConfig for answer synthesis.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.4)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You are a helpful assistant answering questions about scraped website content. Answer based only on the excerpts provided, and cite the page URLs of the excerpts you used. If the answer is not in the excerpts, say so.",
			}},
		},
		Temperature: &temp,
	}
}

// BuildUserPrompt builds the user prompt containing retrieved excerpts
// and the question.
func BuildUserPrompt(chunks []siteqa.SearchResult, question string) string {
	var sb strings.Builder
	sb.WriteString("<excerpts>\n")
	for i, chunk := range chunks {
		name := chunk.Metadata.PageName
		if name == "" {
			name = chunk.Metadata.PageURL
		}
		sb.WriteString("<excerpt>\n")
		fmt.Fprintf(&sb, "<index>%d</index>\n", i+1)
		fmt.Fprintf(&sb, "<page>%s</page>\n", name)
		fmt.Fprintf(&sb, "<source>%s</source>\n", chunk.Metadata.PageURL)
		fmt.Fprintf(&sb, "<content>%s</content>\n", chunk.Text)
		sb.WriteString("</excerpt>\n")
	}
	sb.WriteString("</excerpts>\n\n")
	fmt.Fprintf(&sb, "Question: %s", question)
	return sb.String()
}
