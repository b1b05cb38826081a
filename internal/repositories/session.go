package repositories

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/resume-builder/internal/models"
)

var ErrNotFound = errors.New("record not found")

type SessionRepository interface {
	Create(session *models.Session) error
	// FindActive returns ErrNotFound for missing and expired sessions alike.
	FindActive(id uuid.UUID, now time.Time) (*models.Session, error)
	UpdateResume(id uuid.UUID, resume *models.Resume) error
	UpdateAtsResult(id uuid.UUID, result *models.AtsResult) error
	// FindExpired returns up to limit expired session ids, oldest first.
	FindExpired(now time.Time, limit int) ([]uuid.UUID, error)
	Delete(ids []uuid.UUID) error
}

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(session *models.Session) error {
	if err := r.db.Create(session).Error; err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

func (r *sessionRepository) FindActive(id uuid.UUID, now time.Time) (*models.Session, error) {
	var session models.Session
	err := r.db.Where("id = ? AND expires_at > ?", id, now).First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find session: %w", err)
	}
	return &session, nil
}

func (r *sessionRepository) UpdateResume(id uuid.UUID, resume *models.Resume) error {
	return r.update(id, "resume", models.Session{Resume: resume})
}

func (r *sessionRepository) UpdateAtsResult(id uuid.UUID, result *models.AtsResult) error {
	return r.update(id, "ats_result", models.Session{AtsResult: result})
}

// update goes through a struct so the json serializer applies to the column.
func (r *sessionRepository) update(id uuid.UUID, column string, values models.Session) error {
	values.UpdatedAt = time.Now()

	result := r.db.Model(&models.Session{ID: id}).
		Select(column, "updated_at").
		Updates(&values)
	if result.Error != nil {
		return fmt.Errorf("failed to update session %s: %w", column, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *sessionRepository) FindExpired(now time.Time, limit int) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.Model(&models.Session{}).
		Where("expires_at <= ?", now).
		Order("expires_at").
		Limit(limit).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find expired sessions: %w", err)
	}
	return ids, nil
}

func (r *sessionRepository) Delete(ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	if err := r.db.Where("id IN ?", ids).Delete(&models.Session{}).Error; err != nil {
		return fmt.Errorf("failed to delete sessions: %w", err)
	}
	return nil
}
