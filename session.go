package siteqa

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SessionStatus represents the lifecycle state of a scrape session.
// Transitions are one-directional: pending → in_progress → completed or
// failed. The terminal states are never left.
type SessionStatus string

// Session statuses.
const (
	StatusPending    SessionStatus = "pending"
	StatusInProgress SessionStatus = "in_progress"
	StatusCompleted  SessionStatus = "completed"
	StatusFailed     SessionStatus = "failed"
)

// ScrapeMode selects between scraping a single page and discovering a
// whole site.
type ScrapeMode string

// Scrape modes.
const (
	ModeSinglePage ScrapeMode = "single-page"
	ModeWholeSite  ScrapeMode = "whole-site"
)

// ScrapeRequest describes a scrape to be performed.
type ScrapeRequest struct {
	URL     string     `json:"url"`
	Purpose string     `json:"purpose"`
	Mode    ScrapeMode `json:"mode"`
}

// Validate returns an error if the request contains invalid fields.
func (r *ScrapeRequest) Validate() error {
	if r.URL == "" {
		return Errorf(EINVALID, "request URL required")
	}
	if r.Mode != ModeSinglePage && r.Mode != ModeWholeSite {
		return Errorf(EINVALID, "invalid scrape mode %q", r.Mode)
	}
	return nil
}

// Session represents the persisted state of one scrape request.
// It is created once per request and mutated in place by the orchestrator
// as each phase completes. Sessions are never deleted automatically.
type Session struct {
	ID           string         `json:"session_id"`
	Status       SessionStatus  `json:"status"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	URL          string         `json:"url"`
	Purpose      string         `json:"purpose"`
	Mode         ScrapeMode     `json:"mode"`
	TotalPages   int            `json:"total_pages"`
	PagesScraped int            `json:"pages_scraped"`
	Sources      []string       `json:"sources,omitempty"`
	Schema       map[string]any `json:"schema,omitempty"`
	Extracted    map[string]any `json:"extracted_data,omitempty"`
	ErrorMessage string         `json:"error_message,omitempty"`
}

// NewSessionID generates a unique session identifier in the form
// {timestamp}_{random-suffix}. IDs sort lexicographically by creation
// time, so a reverse sort lists sessions newest-first.
func NewSessionID(now time.Time) string {
	return now.Format("20060102_150405") + "_" + uuid.New().String()[:8]
}

// SessionService manages session lifecycle and the flat-file artifacts
// belonging to each session.
type SessionService interface {
	// CreateSession initializes a session for the request and persists
	// its metadata and the original request.
	CreateSession(ctx context.Context, req *ScrapeRequest) (*Session, error)

	// FindSessionByID loads a session.
	// Returns ENOTFOUND if the session does not exist.
	FindSessionByID(ctx context.Context, id string) (*Session, error)

	// ListSessions returns all session IDs, newest first.
	ListSessions(ctx context.Context) ([]string, error)

	// UpdateStatus transitions the session to a new status. The error
	// message is recorded when the status is StatusFailed.
	UpdateStatus(ctx context.Context, id string, status SessionStatus, errorMessage string) error

	// UpdateProgress records page counters for the session.
	UpdateProgress(ctx context.Context, id string, totalPages, pagesScraped int) error

	// SaveSources records the discovered URL list.
	SaveSources(ctx context.Context, id string, sources []string) error

	// SaveRawHTML persists the fetched pages as the raw_html.json artifact.
	SaveRawHTML(ctx context.Context, id string, pages []*Page) error

	// SaveSchema persists a generated extraction schema.
	SaveSchema(ctx context.Context, id string, schema map[string]any) error

	// SaveExtracted persists structured data extracted from the pages.
	SaveExtracted(ctx context.Context, id string, data map[string]any) error

	// DeleteSession permanently removes a session and its artifacts.
	// Returns ENOTFOUND if the session does not exist.
	DeleteSession(ctx context.Context, id string) error
}
