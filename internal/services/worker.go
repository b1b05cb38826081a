package services

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"alfredoptarigan/resume-builder/internal/repositories"
)

type Worker interface {
	Start(ctx context.Context)
	Stop()
}

// sessionJanitor purges expired sessions and the documents archived for them.
type sessionJanitor struct {
	sessionRepo repositories.SessionRepository
	docRepo     repositories.DocumentRepository
	storage     StorageService
	interval    time.Duration
	batchSize   int
	wg          sync.WaitGroup
	stopChan    chan struct{}
	stopOnce    sync.Once
}

func NewSessionJanitor(
	sessionRepo repositories.SessionRepository,
	docRepo repositories.DocumentRepository,
	storage StorageService,
	interval time.Duration,
) Worker {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &sessionJanitor{
		sessionRepo: sessionRepo,
		docRepo:     docRepo,
		storage:     storage,
		interval:    interval,
		batchSize:   100,
		stopChan:    make(chan struct{}),
	}
}

// Start implements Worker.
func (w *sessionJanitor) Start(ctx context.Context) {
	w.wg.Add(1)
	go w.poll(ctx)

	log.Printf("✅ Session janitor started (every %s)\n", w.interval)
}

// Stop implements Worker.
func (w *sessionJanitor) Stop() {
	w.stopOnce.Do(func() {
		log.Println("🛑 Stopping session janitor...")
		close(w.stopChan)
		w.wg.Wait()
		log.Println("✅ Session janitor stopped")
	})
}

func (w *sessionJanitor) poll(ctx context.Context) {
	defer w.wg.Done()
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopChan:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.purge(ctx, time.Now())
		}
	}
}

// purge drains expired sessions in batches. Documents and their stored objects
// go first; a session is only deleted once nothing it owns is left behind.
func (w *sessionJanitor) purge(ctx context.Context, now time.Time) int {
	total := 0
	for {
		ids, err := w.sessionRepo.FindExpired(now, w.batchSize)
		if err != nil {
			log.Printf("⚠️  Failed to find expired sessions: %v\n", err)
			return total
		}
		if len(ids) == 0 {
			break
		}

		cleared, err := w.purgeDocuments(ctx, ids)
		if err != nil {
			log.Printf("⚠️  Failed to purge session documents: %v\n", err)
			return total
		}
		if err := w.sessionRepo.Delete(cleared); err != nil {
			log.Printf("⚠️  Failed to delete expired sessions: %v\n", err)
			return total
		}
		total += len(cleared)

		// Blocked sessions stay expired; the next tick retries them.
		if len(cleared) < len(ids) || len(ids) < w.batchSize {
			break
		}
	}

	if total > 0 {
		log.Printf("🧹 Purged %d expired sessions\n", total)
	}
	return total
}

// purgeDocuments removes the documents of the given sessions and returns the
// sessions that no longer own anything.
func (w *sessionJanitor) purgeDocuments(ctx context.Context, sessionIDs []uuid.UUID) ([]uuid.UUID, error) {
	docs, err := w.docRepo.FindBySessions(sessionIDs)
	if err != nil {
		return nil, err
	}

	blocked := make(map[uuid.UUID]bool)
	removed := make([]uuid.UUID, 0, len(docs))
	for _, doc := range docs {
		if err := w.storage.Delete(ctx, doc.StorageKey); err != nil {
			log.Printf("⚠️  Failed to delete stored object %s: %v\n", doc.StorageKey, err)
			if doc.SessionID != nil {
				blocked[*doc.SessionID] = true
			}
			continue
		}
		removed = append(removed, doc.ID)
	}

	if err := w.docRepo.Delete(removed); err != nil {
		return nil, err
	}

	cleared := make([]uuid.UUID, 0, len(sessionIDs))
	for _, id := range sessionIDs {
		if !blocked[id] {
			cleared = append(cleared, id)
		}
	}
	return cleared, nil
}
