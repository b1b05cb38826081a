package services

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/resume-builder/internal/models"
	"alfredoptarigan/resume-builder/internal/repositories"
)

// memSessionRepo is an in-memory SessionRepository.
type memSessionRepo struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*models.Session
}

func newMemSessionRepo() *memSessionRepo {
	return &memSessionRepo{sessions: make(map[uuid.UUID]*models.Session)}
}

func (r *memSessionRepo) Create(session *models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *session
	r.sessions[session.ID] = &copied
	return nil
}

func (r *memSessionRepo) FindActive(id uuid.UUID, now time.Time) (*models.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok || s.Expired(now) {
		return nil, repositories.ErrNotFound
	}
	copied := *s
	return &copied, nil
}

func (r *memSessionRepo) UpdateResume(id uuid.UUID, resume *models.Resume) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return repositories.ErrNotFound
	}
	s.Resume = resume
	return nil
}

func (r *memSessionRepo) UpdateAtsResult(id uuid.UUID, result *models.AtsResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return repositories.ErrNotFound
	}
	s.AtsResult = result
	return nil
}

func (r *memSessionRepo) FindExpired(now time.Time, limit int) ([]uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ids []uuid.UUID
	for id, s := range r.sessions {
		if len(ids) == limit {
			break
		}
		if s.Expired(now) {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (r *memSessionRepo) Delete(ids []uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range ids {
		delete(r.sessions, id)
	}
	return nil
}

func TestSessionService_CreateAndGet(t *testing.T) {
	svc := NewSessionService(newMemSessionRepo(), time.Hour)

	session, err := svc.Create()
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, session.ID)
	require.NotNil(t, session.Resume)
	assert.Equal(t, []string{}, session.Resume.CoreSkills)
	assert.Nil(t, session.AtsResult)

	got, err := svc.Get(session.ID)
	require.NoError(t, err)
	assert.Equal(t, session.ID, got.ID)
}

func TestSessionService_Expiry(t *testing.T) {
	svc := NewSessionService(newMemSessionRepo(), time.Hour).(*sessionService)
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return start }

	session, err := svc.Create()
	require.NoError(t, err)

	svc.now = func() time.Time { return start.Add(time.Hour) }
	_, err = svc.Get(session.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionService_UnknownSession(t *testing.T) {
	svc := NewSessionService(newMemSessionRepo(), time.Hour)

	_, err := svc.Get(uuid.New())
	assert.ErrorIs(t, err, ErrSessionNotFound)

	err = svc.SaveResume(uuid.New(), models.NewResume())
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionService_FeedbackNeedsScore(t *testing.T) {
	svc := NewSessionService(newMemSessionRepo(), time.Hour)
	session, err := svc.Create()
	require.NoError(t, err)

	_, err = svc.AppendDetailedFeedback(session.ID, nil, "more metrics")
	assert.ErrorIs(t, err, ErrNoScore)

	scored := &models.AtsResult{AtsScore: 61, Feedback: "ok"}
	require.NoError(t, svc.SaveAtsResult(session.ID, scored))

	result, err := svc.AppendDetailedFeedback(session.ID, scored, "more metrics")
	require.NoError(t, err)
	assert.Equal(t, 61, result.AtsScore)
	assert.Equal(t, "more metrics", result.DetailedFeedback)

	stored, err := svc.Get(session.ID)
	require.NoError(t, err)
	assert.Equal(t, "more metrics", stored.AtsResult.DetailedFeedback)
}

func TestSessionService_RescoreClearsDetailedFeedback(t *testing.T) {
	svc := NewSessionService(newMemSessionRepo(), time.Hour)
	session, err := svc.Create()
	require.NoError(t, err)

	require.NoError(t, svc.SaveAtsResult(session.ID, &models.AtsResult{AtsScore: 40}))
	_, err = svc.AppendDetailedFeedback(session.ID, nil, "old advice")
	require.NoError(t, err)

	require.NoError(t, svc.SaveAtsResult(session.ID, &models.AtsResult{AtsScore: 70, DetailedFeedback: "stale"}))

	stored, err := svc.Get(session.ID)
	require.NoError(t, err)
	assert.Equal(t, 70, stored.AtsResult.AtsScore)
	assert.Empty(t, stored.AtsResult.DetailedFeedback)
}

func TestSessionService_FeedbackForReplacedScoreIsRejected(t *testing.T) {
	svc := NewSessionService(newMemSessionRepo(), time.Hour)
	session, err := svc.Create()
	require.NoError(t, err)

	first := &models.AtsResult{AtsScore: 40, Feedback: "thin"}
	require.NoError(t, svc.SaveAtsResult(session.ID, first))
	require.NoError(t, svc.SaveAtsResult(session.ID, &models.AtsResult{AtsScore: 75, Feedback: "solid"}))

	_, err = svc.AppendDetailedFeedback(session.ID, first, "advice for 40")
	assert.ErrorIs(t, err, ErrStaleScore)

	stored, err := svc.Get(session.ID)
	require.NoError(t, err)
	assert.Equal(t, 75, stored.AtsResult.AtsScore)
	assert.Empty(t, stored.AtsResult.DetailedFeedback)
}

func TestSessionService_SaveResume(t *testing.T) {
	svc := NewSessionService(newMemSessionRepo(), time.Hour)
	session, err := svc.Create()
	require.NoError(t, err)

	r := models.NewResume()
	r.Name = "Jane Doe"
	require.NoError(t, svc.SaveResume(session.ID, r))

	stored, err := svc.Get(session.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", stored.Resume.Name)
}

type failingSessionRepo struct {
	memSessionRepo
}

func (r *failingSessionRepo) FindExpired(time.Time, int) ([]uuid.UUID, error) {
	return nil, errors.New("db down")
}
