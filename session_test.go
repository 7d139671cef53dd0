package siteqa_test

import (
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/mstolarski/siteqa"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSessionID_Format(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 11, 24, 0, 15, 45, 0, time.UTC)
	id := siteqa.NewSessionID(now)

	require.True(t, strings.HasPrefix(id, "20251124_001545_"))
	assert.Len(t, id, len("20251124_001545_")+8)
}

func TestNewSessionID_Unique(t *testing.T) {
	t.Parallel()

	now := time.Now()
	assert.NotEqual(t, siteqa.NewSessionID(now), siteqa.NewSessionID(now))
}

func TestNewSessionID_SortsByCreationTime(t *testing.T) {
	t.Parallel()

	ids := []string{
		siteqa.NewSessionID(time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)),
		siteqa.NewSessionID(time.Date(2025, 1, 15, 9, 30, 0, 0, time.UTC)),
		siteqa.NewSessionID(time.Date(2025, 7, 4, 23, 59, 59, 0, time.UTC)),
	}

	sorted := append([]string(nil), ids...)
	sort.Sort(sort.Reverse(sort.StringSlice(sorted)))

	assert.Equal(t, []string{ids[2], ids[0], ids[1]}, sorted)
}

func TestScrapeRequest_Validate(t *testing.T) {
	t.Parallel()

	req := &siteqa.ScrapeRequest{URL: "https://example.com", Mode: siteqa.ModeWholeSite}
	assert.NoError(t, req.Validate())

	req = &siteqa.ScrapeRequest{Mode: siteqa.ModeSinglePage}
	assert.Equal(t, siteqa.EINVALID, siteqa.ErrorCode(req.Validate()))

	req = &siteqa.ScrapeRequest{URL: "https://example.com", Mode: "bulk"}
	assert.Equal(t, siteqa.EINVALID, siteqa.ErrorCode(req.Validate()))
}
