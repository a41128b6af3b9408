package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"lakehouse-scheduler/internal/logger"
	"lakehouse-scheduler/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MaxDocumentSize caps uploads at 10MB.
const MaxDocumentSize = 10 << 20

// BlobStore is the external byte store; documents keep only metadata in
// the database and reference their bytes by stored name.
type BlobStore interface {
	Save(name string, data []byte) error
	Read(name string) ([]byte, error)
	Delete(name string) error
}

type DocumentService struct {
	db    *gorm.DB
	blobs BlobStore
}

func NewDocumentService(db *gorm.DB, blobs BlobStore) *DocumentService {
	return &DocumentService{db: db, blobs: blobs}
}

func (s *DocumentService) Upload(ctx context.Context, uploaderID uint, originalName, contentType string, data []byte, description string) (*model.Document, error) {
	if len(data) == 0 {
		return nil, Validation("file", "file is empty")
	}
	if len(data) > MaxDocumentSize {
		return nil, Validation("file", "file size must be less than 10MB")
	}
	if originalName == "" {
		return nil, Validation("file", "file name is missing")
	}

	stored := uuid.New().String() + filepath.Ext(originalName)
	if err := s.blobs.Save(stored, data); err != nil {
		return nil, fmt.Errorf("store document bytes: %w", err)
	}

	doc := &model.Document{
		FileName:         stored,
		OriginalFileName: originalName,
		ContentType:      contentType,
		FileSize:         int64(len(data)),
		UserID:           uploaderID,
		Description:      description,
		UploadedAt:       time.Now(),
	}
	if err := s.db.WithContext(ctx).Create(doc).Error; err != nil {
		if derr := s.blobs.Delete(stored); derr != nil {
			logger.Error("document.orphaned_bytes", "file", stored, "err", derr)
		}
		return nil, fmt.Errorf("insert document metadata: %w", err)
	}
	return doc, nil
}

func (s *DocumentService) Get(ctx context.Context, id uint) (*model.Document, error) {
	var doc model.Document
	if err := s.db.WithContext(ctx).First(&doc, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("document")
		}
		return nil, fmt.Errorf("load document %d: %w", id, err)
	}
	return &doc, nil
}

func (s *DocumentService) List(ctx context.Context) ([]model.Document, error) {
	var out []model.Document
	if err := s.db.WithContext(ctx).Order("uploaded_at desc").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return out, nil
}

func (s *DocumentService) ByUploader(ctx context.Context, uploaderID uint) ([]model.Document, error) {
	var out []model.Document
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", uploaderID).Order("uploaded_at desc").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list documents for user %d: %w", uploaderID, err)
	}
	return out, nil
}

func (s *DocumentService) Search(ctx context.Context, fragment string) ([]model.Document, error) {
	var out []model.Document
	if err := s.db.WithContext(ctx).
		Where("original_file_name LIKE ?", "%"+fragment+"%").
		Order("uploaded_at desc").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("search documents: %w", err)
	}
	return out, nil
}

// Download returns the metadata together with the stored bytes.
func (s *DocumentService) Download(ctx context.Context, id uint) (*model.Document, []byte, error) {
	doc, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	data, err := s.blobs.Read(doc.FileName)
	if err != nil {
		return nil, nil, fmt.Errorf("read document bytes: %w", err)
	}
	return doc, data, nil
}

// Delete removes the metadata row, then releases the stored bytes. A
// failure after the row is gone surfaces as a partial failure so a sweep
// can reconcile the orphaned bytes; it is never reported as success.
func (s *DocumentService) Delete(ctx context.Context, id uint) error {
	doc, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(&model.Document{}, id).Error; err != nil {
		return fmt.Errorf("delete document %d: %w", id, err)
	}
	if err := s.blobs.Delete(doc.FileName); err != nil {
		logger.Error("document.orphaned_bytes", "file", doc.FileName, "err", err)
		return PartialFailure("document metadata removed but stored bytes could not be deleted", err)
	}
	return nil
}
