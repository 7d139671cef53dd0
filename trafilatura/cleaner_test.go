package trafilatura_test

import (
	"strings"
	"testing"

	"github.com/mstolarski/siteqa/trafilatura"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// articleHTML is a page with enough body text for trafilatura's content
// scoring to latch onto.
const articleHTML = `<!DOCTYPE html>
<html>
<head><title>Deploying the Collector</title></head>
<body>
<nav><a href="/">Home</a><a href="/docs">Docs</a></nav>
<article>
<h1>Deploying the Collector</h1>
<p>The collector runs as a single binary and reads its configuration from
the environment. Start it with the serve subcommand and point it at your
storage backend of choice.</p>
<p>For production deployments we recommend running at least two replicas
behind a load balancer, with health checks on the status endpoint.</p>
</article>
<footer>Copyright notice and unrelated boilerplate text.</footer>
</body>
</html>`

func TestCleaner_Clean_ExtractsMainContent(t *testing.T) {
	t.Parallel()

	got, err := trafilatura.NewCleaner(nil).Clean(articleHTML)

	require.NoError(t, err)
	assert.Contains(t, got, "The collector runs as a single binary")
	assert.Contains(t, got, "at least two replicas")
	assert.NotContains(t, got, "Copyright notice")
}

func TestCleaner_Clean_EmitsMarkdownStructure(t *testing.T) {
	t.Parallel()

	got, err := trafilatura.NewCleaner(nil).Clean(articleHTML)

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(got, "#"), "content should lead with a heading, got: %q", got)
}

func TestCleaner_Clean_EmptyResults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		html string
	}{
		{"empty input", ""},
		{"whitespace only", "  \n  "},
		{"no content", `<html><body><nav><a href="/">Home</a></nav></body></html>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := trafilatura.NewCleaner(nil).Clean(tt.html)
			require.NoError(t, err)
			assert.Empty(t, got)
		})
	}
}
