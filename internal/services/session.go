package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"alfredoptarigan/resume-builder/internal/models"
	"alfredoptarigan/resume-builder/internal/repositories"
)

var (
	ErrSessionNotFound = errors.New("session not found or expired")
	ErrNoScore         = errors.New("session has no ATS score yet")
	ErrNoResume        = errors.New("session has no resume yet")
	ErrStaleScore      = errors.New("session was re-scored while feedback was generated")
)

// SessionService keeps the working draft of one user between requests.
type SessionService interface {
	Create() (*models.Session, error)
	Get(id uuid.UUID) (*models.Session, error)
	SaveResume(id uuid.UUID, resume *models.Resume) error
	// SaveAtsResult replaces any previous result, detailed feedback included.
	SaveAtsResult(id uuid.UUID, result *models.AtsResult) error
	// AppendDetailedFeedback attaches feedback to the result it was written
	// for. It fails with ErrNoScore before the session has been scored and
	// with ErrStaleScore once the stored result no longer matches basis.
	AppendDetailedFeedback(id uuid.UUID, basis *models.AtsResult, feedback string) (*models.AtsResult, error)
}

type sessionService struct {
	repo repositories.SessionRepository
	ttl  time.Duration
	now  func() time.Time
}

func NewSessionService(repo repositories.SessionRepository, ttl time.Duration) SessionService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &sessionService{repo: repo, ttl: ttl, now: time.Now}
}

func (s *sessionService) Create() (*models.Session, error) {
	now := s.now()
	session := &models.Session{
		ID:        uuid.New(),
		Resume:    models.NewResume(),
		ExpiresAt: now.Add(s.ttl),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *sessionService) Get(id uuid.UUID) (*models.Session, error) {
	session, err := s.repo.FindActive(id, s.now())
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	return session, nil
}

func (s *sessionService) SaveResume(id uuid.UUID, resume *models.Resume) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.mapNotFound(s.repo.UpdateResume(id, resume))
}

func (s *sessionService) SaveAtsResult(id uuid.UUID, result *models.AtsResult) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	fresh := *result
	fresh.DetailedFeedback = ""
	return s.mapNotFound(s.repo.UpdateAtsResult(id, &fresh))
}

func (s *sessionService) AppendDetailedFeedback(id uuid.UUID, basis *models.AtsResult, feedback string) (*models.AtsResult, error) {
	session, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if session.AtsResult == nil {
		return nil, ErrNoScore
	}
	if basis != nil && !sameScore(session.AtsResult, basis) {
		return nil, ErrStaleScore
	}

	updated := *session.AtsResult
	updated.DetailedFeedback = feedback
	if err := s.mapNotFound(s.repo.UpdateAtsResult(id, &updated)); err != nil {
		return nil, fmt.Errorf("failed to store detailed feedback: %w", err)
	}
	return &updated, nil
}

func sameScore(a, b *models.AtsResult) bool {
	return a.AtsScore == b.AtsScore && a.Feedback == b.Feedback
}

func (s *sessionService) mapNotFound(err error) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrSessionNotFound
	}
	return err
}
