package goquery_test

import (
	"strings"
	"testing"

	"github.com/mstolarski/siteqa/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleaner_Clean_FormatsMarkdown(t *testing.T) {
	t.Parallel()

	html := `<html><body><main>
		<h1>Getting Started</h1>
		<p>Install the package with your package manager.</p>
		<h2>Configuration</h2>
		<ul>
			<li>Set the API key</li>
			<li>Choose a region</li>
		</ul>
	</main></body></html>`

	got, err := goquery.NewCleaner().Clean(html)

	require.NoError(t, err)
	assert.Equal(t, strings.Join([]string{
		"# Getting Started",
		"Install the package with your package manager.",
		"## Configuration",
		"- Set the API key",
		"- Choose a region",
	}, "\n"), got)
}

func TestCleaner_Clean_RemovesNoiseTags(t *testing.T) {
	t.Parallel()

	html := `<html><body>
		<script>analytics.track("pageview")</script>
		<style>.hidden { display: none }</style>
		<nav><a href="/pricing">Pricing</a></nav>
		<main><p>The only paragraph that should survive cleaning.</p></main>
		<footer><p>All rights reserved forever and ever.</p></footer>
	</body></html>`

	got, err := goquery.NewCleaner().Clean(html)

	require.NoError(t, err)
	assert.Equal(t, "The only paragraph that should survive cleaning.", got)
}

func TestCleaner_Clean_RemovesChromeByClassAndID(t *testing.T) {
	t.Parallel()

	html := `<html><body><main>
		<div class="cookie-consent"><p>We use cookies to improve things.</p></div>
		<div id="site-breadcrumb"><p>Docs / Guides / Intro</p></div>
		<p>Real content stays in the output untouched.</p>
	</main></body></html>`

	got, err := goquery.NewCleaner().Clean(html)

	require.NoError(t, err)
	assert.Equal(t, "Real content stays in the output untouched.", got)
}

func TestCleaner_Clean_ProtectsStructuralElements(t *testing.T) {
	t.Parallel()

	// A main element whose class happens to contain a chrome keyword must
	// not be swept away.
	html := `<html><body class="site-menu-open"><main class="menu-root">
		<p>Content inside a suspiciously classed main element.</p>
	</main></body></html>`

	got, err := goquery.NewCleaner().Clean(html)

	require.NoError(t, err)
	assert.Equal(t, "Content inside a suspiciously classed main element.", got)
}

func TestCleaner_Clean_ContentRootPriority(t *testing.T) {
	t.Parallel()

	t.Run("prefers main over body", func(t *testing.T) {
		t.Parallel()
		html := `<html><body>
			<p>Outside text that must not appear.</p>
			<main><p>Inside the main container only.</p></main>
		</body></html>`

		got, err := goquery.NewCleaner().Clean(html)

		require.NoError(t, err)
		assert.Equal(t, "Inside the main container only.", got)
	})

	t.Run("prefers article when main is absent", func(t *testing.T) {
		t.Parallel()
		html := `<html><body>
			<p>Outside text that must not appear.</p>
			<article><p>Inside the article container only.</p></article>
		</body></html>`

		got, err := goquery.NewCleaner().Clean(html)

		require.NoError(t, err)
		assert.Equal(t, "Inside the article container only.", got)
	})

	t.Run("falls back to body", func(t *testing.T) {
		t.Parallel()
		html := `<html><body><p>Plain body text is still content.</p></body></html>`

		got, err := goquery.NewCleaner().Clean(html)

		require.NoError(t, err)
		assert.Equal(t, "Plain body text is still content.", got)
	})
}

func TestCleaner_Clean_DeduplicatesRepeatedText(t *testing.T) {
	t.Parallel()

	// Desktop and mobile variants of the same copy appear once.
	html := `<html><body><main>
		<div class="desktop-view"><p>Sign up for the newsletter today.</p></div>
		<div class="mobile-view"><p>Sign up for the newsletter today.</p></div>
		<p>Unique closing paragraph.</p>
	</main></body></html>`

	got, err := goquery.NewCleaner().Clean(html)

	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(got, "Sign up for the newsletter today."))
	assert.Contains(t, got, "Unique closing paragraph.")
}

func TestCleaner_Clean_NormalizesText(t *testing.T) {
	t.Parallel()

	html := `<html><body><main>
		<p>Spaced     out

		text!!! Wait... what???</p>
	</main></body></html>`

	got, err := goquery.NewCleaner().Clean(html)

	require.NoError(t, err)
	assert.Equal(t, "Spaced out text! Wait. what?", got)
}

func TestCleaner_Clean_DropsStutteredShortWords(t *testing.T) {
	t.Parallel()

	html := `<html><body><main>
		<p>Toggle on on on the feature flag before deploying.</p>
	</main></body></html>`

	got, err := goquery.NewCleaner().Clean(html)

	require.NoError(t, err)
	assert.Equal(t, "Toggle the feature flag before deploying.", got)
}

func TestCleaner_Clean_JoinsInlineText(t *testing.T) {
	t.Parallel()

	html := `<html><body><main>
		<p>Use the <code>scrape</code> command to <b>start</b> a session.</p>
	</main></body></html>`

	got, err := goquery.NewCleaner().Clean(html)

	require.NoError(t, err)
	assert.Equal(t, "Use the scrape command to start a session.", got)
}

func TestCleaner_Clean_EmptyResults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		html string
	}{
		{"empty input", ""},
		{"whitespace only", "   \n\t  "},
		{"no content elements", `<html><body><div>bare div text is ignored</div></body></html>`},
		{"below minimum length", `<html><body><main><p>tiny</p></main></body></html>`},
		{"everything removed", `<html><body><nav><p>Menu menu menu navigation items here</p></nav></body></html>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := goquery.NewCleaner().Clean(tt.html)
			require.NoError(t, err)
			assert.Empty(t, got)
		})
	}
}
