package fs

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/mstolarski/siteqa"
)

// Session artifact file names.
const (
	metadataFile  = "metadata.json"
	requestFile   = "request.json"
	sourcesFile   = "sources.json"
	rawHTMLFile   = "raw_html.json"
	schemaFile    = "schema.json"
	extractedFile = "extracted_data.json"
)

var _ siteqa.SessionService = (*SessionService)(nil)

// SessionService stores each session as a directory of flat JSON
// documents under a base directory. The directory name is the session ID,
// so a reverse-sorted directory listing is a newest-first session list.
//
// SessionService is safe for concurrent use; updates are serialized and
// each file is written atomically.
type SessionService struct {
	baseDir string
	now     func() time.Time
	mu      sync.Mutex
}

// SessionOption configures a SessionService.
type SessionOption func(*SessionService)

// WithClock sets the time source. Used in tests for deterministic
// session IDs and timestamps.
func WithClock(now func() time.Time) SessionOption {
	return func(s *SessionService) {
		s.now = now
	}
}

// NewSessionService creates a SessionService rooted at baseDir, creating
// the directory if needed.
func NewSessionService(baseDir string, opts ...SessionOption) (*SessionService, error) {
	s := &SessionService{baseDir: baseDir, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, siteqa.Errorf(siteqa.EINTERNAL, "creating session directory: %v", err)
	}
	return s, nil
}

func (s *SessionService) sessionDir(id string) string {
	return filepath.Join(s.baseDir, id)
}

// CreateSession implements siteqa.SessionService.
func (s *SessionService) CreateSession(ctx context.Context, req *siteqa.ScrapeRequest) (*siteqa.Session, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()
	session := &siteqa.Session{
		ID:        siteqa.NewSessionID(now),
		Status:    siteqa.StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
		URL:       req.URL,
		Purpose:   req.Purpose,
		Mode:      req.Mode,
	}

	dir := s.sessionDir(session.ID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, siteqa.Errorf(siteqa.EINTERNAL, "creating session %s: %v", session.ID, err)
	}
	if err := writeJSON(filepath.Join(dir, metadataFile), session); err != nil {
		return nil, siteqa.Errorf(siteqa.EINTERNAL, "writing session metadata: %v", err)
	}
	if err := writeJSON(filepath.Join(dir, requestFile), req); err != nil {
		return nil, siteqa.Errorf(siteqa.EINTERNAL, "writing session request: %v", err)
	}
	return session, nil
}

// FindSessionByID implements siteqa.SessionService. The returned session
// is composed from the metadata document plus the optional sources,
// schema, and extracted-data artifacts.
func (s *SessionService) FindSessionByID(ctx context.Context, id string) (*siteqa.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadSession(id)
}

// loadSession must be called with mu held.
func (s *SessionService) loadSession(id string) (*siteqa.Session, error) {
	dir := s.sessionDir(id)

	var session siteqa.Session
	if err := readJSON(filepath.Join(dir, metadataFile), &session); err != nil {
		if os.IsNotExist(err) {
			return nil, siteqa.Errorf(siteqa.ENOTFOUND, "session %q not found", id)
		}
		return nil, siteqa.Errorf(siteqa.EINTERNAL, "reading session %s: %v", id, err)
	}

	var sources struct {
		Sources []string `json:"sources"`
	}
	if err := readJSON(filepath.Join(dir, sourcesFile), &sources); err == nil {
		session.Sources = sources.Sources
	}

	var schema map[string]any
	if err := readJSON(filepath.Join(dir, schemaFile), &schema); err == nil {
		session.Schema = schema
	}

	var extracted map[string]any
	if err := readJSON(filepath.Join(dir, extractedFile), &extracted); err == nil {
		session.Extracted = extracted
	}

	return &session, nil
}

// ListSessions implements siteqa.SessionService.
func (s *SessionService) ListSessions(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, siteqa.Errorf(siteqa.EINTERNAL, "listing sessions: %v", err)
	}

	ids := []string{}
	for _, entry := range entries {
		if !entry.IsDir() || entry.Name()[0] == '.' {
			continue
		}
		ids = append(ids, entry.Name())
	}

	// Session IDs start with the creation timestamp, so a reverse sort
	// is newest-first.
	sort.Sort(sort.Reverse(sort.StringSlice(ids)))
	return ids, nil
}

// UpdateStatus implements siteqa.SessionService. Transitions out of a
// terminal status are rejected with ECONFLICT.
func (s *SessionService) UpdateStatus(ctx context.Context, id string, status siteqa.SessionStatus, errorMessage string) error {
	return s.updateMetadata(id, func(session *siteqa.Session) error {
		if terminal(session.Status) && session.Status != status {
			return siteqa.Errorf(siteqa.ECONFLICT, "session %s is already %s", id, session.Status)
		}
		session.Status = status
		if status == siteqa.StatusFailed {
			session.ErrorMessage = errorMessage
		}
		return nil
	})
}

// UpdateProgress implements siteqa.SessionService.
func (s *SessionService) UpdateProgress(ctx context.Context, id string, totalPages, pagesScraped int) error {
	return s.updateMetadata(id, func(session *siteqa.Session) error {
		session.TotalPages = totalPages
		session.PagesScraped = pagesScraped
		return nil
	})
}

// SaveSources implements siteqa.SessionService.
func (s *SessionService) SaveSources(ctx context.Context, id string, sources []string) error {
	return s.saveArtifact(id, sourcesFile, map[string]any{"sources": sources})
}

// SaveRawHTML implements siteqa.SessionService.
func (s *SessionService) SaveRawHTML(ctx context.Context, id string, pages []*siteqa.Page) error {
	return s.saveArtifact(id, rawHTMLFile, map[string]any{"pages": pages})
}

// SaveSchema implements siteqa.SessionService.
func (s *SessionService) SaveSchema(ctx context.Context, id string, schema map[string]any) error {
	return s.saveArtifact(id, schemaFile, schema)
}

// SaveExtracted implements siteqa.SessionService.
func (s *SessionService) SaveExtracted(ctx context.Context, id string, data map[string]any) error {
	return s.saveArtifact(id, extractedFile, data)
}

// DeleteSession implements siteqa.SessionService.
func (s *SessionService) DeleteSession(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir := s.sessionDir(id)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return siteqa.Errorf(siteqa.ENOTFOUND, "session %q not found", id)
	}
	if err := os.RemoveAll(dir); err != nil {
		return siteqa.Errorf(siteqa.EINTERNAL, "deleting session %s: %v", id, err)
	}
	return nil
}

func (s *SessionService) updateMetadata(id string, update func(*siteqa.Session) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.loadSession(id)
	if err != nil {
		return err
	}
	if err := update(session); err != nil {
		return err
	}
	session.UpdatedAt = s.now().UTC()

	// Only the metadata document carries these fields; the artifacts own
	// their own files.
	session.Sources = nil
	session.Schema = nil
	session.Extracted = nil

	if err := writeJSON(filepath.Join(s.sessionDir(id), metadataFile), session); err != nil {
		return siteqa.Errorf(siteqa.EINTERNAL, "writing session metadata: %v", err)
	}
	return nil
}

func (s *SessionService) saveArtifact(id, name string, v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir := s.sessionDir(id)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return siteqa.Errorf(siteqa.ENOTFOUND, "session %q not found", id)
	}
	if err := writeJSON(filepath.Join(dir, name), v); err != nil {
		return siteqa.Errorf(siteqa.EINTERNAL, "writing %s: %v", name, err)
	}
	return nil
}

func terminal(status siteqa.SessionStatus) bool {
	return status == siteqa.StatusCompleted || status == siteqa.StatusFailed
}
