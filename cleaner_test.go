package siteqa_test

import (
	"errors"
	"testing"

	"github.com/mstolarski/siteqa"
	"github.com/mstolarski/siteqa/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanerChain(t *testing.T) {
	t.Parallel()

	t.Run("first non-empty result wins", func(t *testing.T) {
		t.Parallel()

		var secondCalled bool
		chain := siteqa.CleanerChain{
			&mock.Cleaner{CleanFn: func(string) (string, error) { return "primary content", nil }},
			&mock.Cleaner{CleanFn: func(string) (string, error) {
				secondCalled = true
				return "fallback content", nil
			}},
		}

		got, err := chain.Clean("<html></html>")

		require.NoError(t, err)
		assert.Equal(t, "primary content", got)
		assert.False(t, secondCalled)
	})

	t.Run("falls through on empty result", func(t *testing.T) {
		t.Parallel()

		chain := siteqa.CleanerChain{
			&mock.Cleaner{CleanFn: func(string) (string, error) { return "", nil }},
			&mock.Cleaner{CleanFn: func(string) (string, error) { return "fallback content", nil }},
		}

		got, err := chain.Clean("<html></html>")

		require.NoError(t, err)
		assert.Equal(t, "fallback content", got)
	})

	t.Run("all empty means no content", func(t *testing.T) {
		t.Parallel()

		chain := siteqa.CleanerChain{
			&mock.Cleaner{CleanFn: func(string) (string, error) { return "", nil }},
			&mock.Cleaner{CleanFn: func(string) (string, error) { return "", nil }},
		}

		got, err := chain.Clean("<html></html>")

		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("propagates errors", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("boom")
		chain := siteqa.CleanerChain{
			&mock.Cleaner{CleanFn: func(string) (string, error) { return "", boom }},
		}

		_, err := chain.Clean("<html></html>")

		assert.ErrorIs(t, err, boom)
	})
}
