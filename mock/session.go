package mock

import (
	"context"

	"github.com/mstolarski/siteqa"
)

var _ siteqa.SessionService = (*SessionService)(nil)

// SessionService is a mock implementation of siteqa.SessionService.
type SessionService struct {
	CreateSessionFn   func(ctx context.Context, req *siteqa.ScrapeRequest) (*siteqa.Session, error)
	FindSessionByIDFn func(ctx context.Context, id string) (*siteqa.Session, error)
	ListSessionsFn    func(ctx context.Context) ([]string, error)
	UpdateStatusFn    func(ctx context.Context, id string, status siteqa.SessionStatus, errorMessage string) error
	UpdateProgressFn  func(ctx context.Context, id string, totalPages, pagesScraped int) error
	SaveSourcesFn     func(ctx context.Context, id string, sources []string) error
	SaveRawHTMLFn     func(ctx context.Context, id string, pages []*siteqa.Page) error
	SaveSchemaFn      func(ctx context.Context, id string, schema map[string]any) error
	SaveExtractedFn   func(ctx context.Context, id string, data map[string]any) error
	DeleteSessionFn   func(ctx context.Context, id string) error
}

func (s *SessionService) CreateSession(ctx context.Context, req *siteqa.ScrapeRequest) (*siteqa.Session, error) {
	return s.CreateSessionFn(ctx, req)
}

func (s *SessionService) FindSessionByID(ctx context.Context, id string) (*siteqa.Session, error) {
	return s.FindSessionByIDFn(ctx, id)
}

func (s *SessionService) ListSessions(ctx context.Context) ([]string, error) {
	return s.ListSessionsFn(ctx)
}

func (s *SessionService) UpdateStatus(ctx context.Context, id string, status siteqa.SessionStatus, errorMessage string) error {
	return s.UpdateStatusFn(ctx, id, status, errorMessage)
}

func (s *SessionService) UpdateProgress(ctx context.Context, id string, totalPages, pagesScraped int) error {
	return s.UpdateProgressFn(ctx, id, totalPages, pagesScraped)
}

func (s *SessionService) SaveSources(ctx context.Context, id string, sources []string) error {
	return s.SaveSourcesFn(ctx, id, sources)
}

func (s *SessionService) SaveRawHTML(ctx context.Context, id string, pages []*siteqa.Page) error {
	return s.SaveRawHTMLFn(ctx, id, pages)
}

func (s *SessionService) SaveSchema(ctx context.Context, id string, schema map[string]any) error {
	return s.SaveSchemaFn(ctx, id, schema)
}

func (s *SessionService) SaveExtracted(ctx context.Context, id string, data map[string]any) error {
	return s.SaveExtractedFn(ctx, id, data)
}

func (s *SessionService) DeleteSession(ctx context.Context, id string) error {
	return s.DeleteSessionFn(ctx, id)
}
