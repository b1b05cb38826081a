package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/resume-builder/internal/models"
)

type DocumentRepository interface {
	Create(document *models.Document) error
	FindByID(id uuid.UUID) (*models.Document, error)
	FindBySession(sessionID uuid.UUID) ([]models.Document, error)
	FindBySessions(sessionIDs []uuid.UUID) ([]models.Document, error)
	Delete(ids []uuid.UUID) error
}

type documentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{db: db}
}

// Create implements DocumentRepository.
func (d *documentRepository) Create(document *models.Document) error {
	if document.ID == uuid.Nil {
		document.ID = uuid.New()
	}
	if err := d.db.Create(document).Error; err != nil {
		return fmt.Errorf("failed to create document: %w", err)
	}

	return nil
}

// FindByID implements DocumentRepository.
func (d *documentRepository) FindByID(id uuid.UUID) (*models.Document, error) {
	var doc models.Document
	err := d.db.Where("id = ?", id).First(&doc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find document: %w", err)
	}

	return &doc, nil
}

// FindBySession implements DocumentRepository.
func (d *documentRepository) FindBySession(sessionID uuid.UUID) ([]models.Document, error) {
	var docs []models.Document
	if err := d.db.Where("session_id = ?", sessionID).Order("created_at").Find(&docs).Error; err != nil {
		return nil, fmt.Errorf("failed to find documents: %w", err)
	}

	return docs, nil
}

// FindBySessions implements DocumentRepository.
func (d *documentRepository) FindBySessions(sessionIDs []uuid.UUID) ([]models.Document, error) {
	if len(sessionIDs) == 0 {
		return nil, nil
	}

	var docs []models.Document
	if err := d.db.Where("session_id IN ?", sessionIDs).Find(&docs).Error; err != nil {
		return nil, fmt.Errorf("failed to find session documents: %w", err)
	}

	return docs, nil
}

// Delete implements DocumentRepository.
func (d *documentRepository) Delete(ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	if err := d.db.Where("id IN ?", ids).Delete(&models.Document{}).Error; err != nil {
		return fmt.Errorf("failed to delete documents: %w", err)
	}

	return nil
}
