package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"alfredoptarigan/resume-builder/internal/models"
	"alfredoptarigan/resume-builder/internal/repositories"
)

var ErrDocumentNotFound = errors.New("document not found")

// DocumentArchive stores a file and records it. Uploads land under
// "uploads/", exports under "exports/".
type DocumentArchive interface {
	Archive(ctx context.Context, sessionID *uuid.UUID, purpose models.DocumentPurpose, fileName, mimeType string, data []byte) (*models.Document, error)
	List(sessionID uuid.UUID) ([]models.Document, error)
	// Open returns the record and its stored bytes.
	Open(ctx context.Context, id uuid.UUID) (*models.Document, []byte, error)
}

type documentArchive struct {
	docRepo repositories.DocumentRepository
	storage StorageService
}

func NewDocumentArchive(docRepo repositories.DocumentRepository, storage StorageService) DocumentArchive {
	return &documentArchive{docRepo: docRepo, storage: storage}
}

func (a *documentArchive) Archive(ctx context.Context, sessionID *uuid.UUID, purpose models.DocumentPurpose, fileName, mimeType string, data []byte) (*models.Document, error) {
	key := NewStorageKey(string(purpose)+"s", fileName)

	if err := a.storage.Save(ctx, key, mimeType, data); err != nil {
		return nil, fmt.Errorf("failed to store %s: %w", fileName, err)
	}

	now := time.Now()
	doc := &models.Document{
		ID:               uuid.New(),
		SessionID:        sessionID,
		Purpose:          purpose,
		OriginalFileName: fileName,
		MimeType:         mimeType,
		StorageKey:       key,
		SizeBytes:        int64(len(data)),
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := a.docRepo.Create(doc); err != nil {
		// Cleanup stored object if database insert fails
		if delErr := a.storage.Delete(ctx, key); delErr != nil {
			log.Printf("⚠️  Failed to clean up %s: %v\n", key, delErr)
		}
		return nil, err
	}

	return doc, nil
}

func (a *documentArchive) List(sessionID uuid.UUID) ([]models.Document, error) {
	return a.docRepo.FindBySession(sessionID)
}

func (a *documentArchive) Open(ctx context.Context, id uuid.UUID) (*models.Document, []byte, error) {
	doc, err := a.docRepo.FindByID(id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, nil, ErrDocumentNotFound
	}
	if err != nil {
		return nil, nil, err
	}

	data, err := a.storage.Load(ctx, doc.StorageKey)
	if errors.Is(err, ErrObjectNotFound) {
		return nil, nil, ErrDocumentNotFound
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load %s: %w", doc.StorageKey, err)
	}
	return doc, data, nil
}
