package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/resume-builder/internal/models"
	"alfredoptarigan/resume-builder/internal/repositories"
	"alfredoptarigan/resume-builder/internal/services"
)

type memSessionRepo struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*models.Session
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

func (r *memSessionRepo) FindExpired(time.Time, int) ([]uuid.UUID, error) {
	return nil, nil
}

func (r *memSessionRepo) Delete([]uuid.UUID) error {
	return nil
}

type memDocumentRepo struct {
	mu   sync.Mutex
	docs []models.Document
}

func (r *memDocumentRepo) Create(doc *models.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.docs = append(r.docs, *doc)
	return nil
}

func (r *memDocumentRepo) FindByID(id uuid.UUID) (*models.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.docs {
		if d.ID == id {
			doc := d
			return &doc, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *memDocumentRepo) FindBySession(sessionID uuid.UUID) ([]models.Document, error) {
	return r.FindBySessions([]uuid.UUID{sessionID})
}

func (r *memDocumentRepo) FindBySessions(ids []uuid.UUID) ([]models.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Document
	for _, d := range r.docs {
		for _, id := range ids {
			if d.SessionID != nil && *d.SessionID == id {
				out = append(out, d)
			}
		}
	}
	return out, nil
}

func (r *memDocumentRepo) Delete([]uuid.UUID) error {
	return nil
}

// fakeAI stands in for the model-backed flows.
type fakeAI struct {
	resume    *models.Resume
	ats       *models.AtsResult
	feedback  string
	text      string
	err       error
	scoreSeen []services.ScoreInput
	calls     int

	// onFeedback runs while feedback is being generated.
	onFeedback func()
}

func (f *fakeAI) ExtractResume(context.Context, string) (*models.Resume, error) {
	f.calls++
	return f.resume, f.err
}

func (f *fakeAI) ScoreResume(_ context.Context, input services.ScoreInput) (*models.AtsResult, error) {
	f.calls++
	f.scoreSeen = append(f.scoreSeen, input)
	return f.ats, f.err
}

func (f *fakeAI) DetailedFeedback(context.Context, string, int) (string, error) {
	f.calls++
	if f.onFeedback != nil {
		f.onFeedback()
	}
	return f.feedback, f.err
}

func (f *fakeAI) GenerateResumeFromPortfolio(_ context.Context, docs []models.PortfolioDocument) (*models.Resume, error) {
	if len(docs) == 0 {
		return nil, services.ErrNoDocuments
	}
	f.calls++
	return f.resume, f.err
}

func (f *fakeAI) SynthesizePortfolioText(_ context.Context, docs []models.PortfolioDocument) (string, error) {
	if len(docs) == 0 {
		return "", services.ErrNoDocuments
	}
	f.calls++
	return f.text, f.err
}

type testEnv struct {
	app      *fiber.App
	ai       *fakeAI
	sessions services.SessionService
	lock     services.ActionLock
	archive  services.DocumentArchive
}

func newTestEnv(t *testing.T, ai *fakeAI) *testEnv {
	t.Helper()

	sessions := services.NewSessionService(&memSessionRepo{sessions: make(map[uuid.UUID]*models.Session)}, time.Hour)
	lock := services.NewMemoryLock()
	tracker := services.NewActionTracker(lock, services.NewNoopPublisher())
	extractor := services.NewTextExtractor(nil)
	exporter := services.NewExporter(nil)
	storage, err := services.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	archive := services.NewDocumentArchive(&memDocumentRepo{}, storage)

	app := NewApp(AppOptions{BodyLimit: 1 << 20}, Handlers{
		Session:   NewSessionHandler(sessions),
		Extract:   NewExtractHandler(ai, extractor, archive, sessions, tracker, 1<<20),
		Ats:       NewAtsHandler(ai, sessions, tracker),
		Portfolio: NewPortfolioHandler(ai, sessions, tracker),
		Export:    NewExportHandler(exporter, archive, sessions, tracker),
		Document:  NewDocumentHandler(archive, sessions),
	})

	return &testEnv{app: app, ai: ai, sessions: sessions, lock: lock, archive: archive}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, ok := body.(string)
		if !ok {
			encoded, err := json.Marshal(body)
			require.NoError(t, err)
			raw = string(encoded)
		}
		reader = bytes.NewBufferString(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	return e.send(t, req)
}

func (e *testEnv) send(t *testing.T, req *http.Request) (int, map[string]any) {
	t.Helper()

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(data) > 0 {
		require.NoError(t, json.Unmarshal(data, &out), "body: %s", data)
	}
	return resp.StatusCode, out
}

func (e *testEnv) newSession(t *testing.T) *models.Session {
	t.Helper()
	session, err := e.sessions.Create()
	require.NoError(t, err)
	return session
}

func janeDoe() *models.Resume {
	r := models.NewResume()
	r.Name = "Jane Doe"
	r.Email = "jane@x.com"
	r.CoreSkills = []string{"Go", "Rust"}
	return r
}
