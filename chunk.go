package siteqa

import (
	"fmt"
	"strings"
)

// Chunking limits.
const (
	// DefaultChunkSize is the target chunk size for markdown chunking.
	DefaultChunkSize = 4000

	// HardChunkLimit is the absolute ceiling on chunk text length,
	// dictated by the embedding backend's payload limit. Chunks are
	// truncated to this length before storage.
	HardChunkLimit = 8000
)

// Chunk is a bounded-size span of page text plus metadata, the unit
// stored in and retrieved from the vector index.
type Chunk struct {
	Text     string `json:"text"`
	Heading  string `json:"heading"`
	PageName string `json:"page_name"`

	// Truncated is set when the text was cut at HardChunkLimit.
	// Callers should count truncations for observability; the trailing
	// content is lost.
	Truncated bool `json:"-"`
}

// ChunkID builds the deterministic identifier {domain}_{page}_{index}.
// Re-embedding the same page with the same chunk count produces the same
// IDs, making upserts idempotent.
func ChunkID(domain, pageName string, index int) string {
	return fmt.Sprintf("%s_%s_%d", domain, pageName, index)
}

// SplitMarkdown splits markdown into chunks of at most maxChunkSize
// characters, scanning line by line. The most recently seen heading line
// is attached as metadata to each chunk; heading lines remain part of
// the chunk body. A line is never split across chunks, so a single line
// longer than maxChunkSize becomes its own oversized chunk, truncated at
// HardChunkLimit.
//
// Concatenating all chunk texts in order reproduces the input's
// non-blank content modulo whitespace trimming and the HardChunkLimit
// truncation. No returned chunk has empty trimmed text.
//
// maxChunkSize <= 0 selects DefaultChunkSize.
func SplitMarkdown(markdown, pageName string, maxChunkSize int) []Chunk {
	if strings.TrimSpace(markdown) == "" {
		return nil
	}
	if maxChunkSize <= 0 {
		maxChunkSize = DefaultChunkSize
	}

	var chunks []Chunk
	var buf []string
	size := 0
	heading := ""

	flush := func() {
		text := strings.TrimSpace(strings.Join(buf, "\n"))
		if text == "" {
			return
		}
		c := Chunk{Text: text, Heading: heading, PageName: pageName}
		if len(c.Text) > HardChunkLimit {
			c.Text = c.Text[:HardChunkLimit]
			c.Truncated = true
		}
		chunks = append(chunks, c)
	}

	for _, line := range strings.Split(markdown, "\n") {
		lineLen := len(line) + 1 // +1 for newline

		if size+lineLen > maxChunkSize && len(buf) > 0 {
			flush()
			buf = buf[:0]
			size = 0
		}

		// Update after the flush so a chunk cut at a heading boundary
		// keeps the heading it was written under.
		if strings.HasPrefix(line, "#") {
			heading = strings.TrimSpace(strings.TrimLeft(line, "#"))
		}

		buf = append(buf, line)
		size += lineLen
	}

	flush()
	return chunks
}

// SplitTextOverlap splits plain text into word-based chunks with overlap
// carried across boundaries. It is the variant used for non-markdown
// text, where no headings exist to provide local context: the trailing
// overlap/chunkSize fraction of each chunk's words is repeated at the
// start of the next. The heading is prefixed to each chunk body and
// attached as metadata.
//
// Text no longer than chunkSize is returned as a single chunk.
func SplitTextOverlap(text, heading, pageName string, chunkSize, overlap int) []Chunk {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	build := func(body string) Chunk {
		c := Chunk{
			Text:     heading + "\n\n" + body,
			Heading:  heading,
			PageName: pageName,
		}
		if heading == "" {
			c.Text = body
		}
		if len(c.Text) > HardChunkLimit {
			c.Text = c.Text[:HardChunkLimit]
			c.Truncated = true
		}
		return c
	}

	if len(text) <= chunkSize {
		return []Chunk{build(text)}
	}

	var chunks []Chunk
	words := strings.Fields(text)
	var current []string
	length := 0

	for _, word := range words {
		current = append(current, word)
		length += len(word) + 1 // +1 for space

		if length >= chunkSize {
			chunks = append(chunks, build(strings.Join(current, " ")))

			// Carry trailing words into the next chunk for context.
			carry := 0
			if overlap > 0 {
				carry = len(current) * overlap / chunkSize
			}
			if carry > 0 && carry < len(current) {
				current = append([]string(nil), current[len(current)-carry:]...)
			} else {
				current = nil
			}
			length = 0
			for _, w := range current {
				length += len(w) + 1
			}
		}
	}

	if len(current) > 0 {
		if body := strings.Join(current, " "); len(body) >= minContentLength {
			chunks = append(chunks, build(body))
		}
	}

	return chunks
}

// minContentLength is the threshold below which extracted text is
// considered noise rather than content.
const minContentLength = 10
