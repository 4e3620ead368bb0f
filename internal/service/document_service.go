package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/waynemwendwa/TMS-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// --- DTOs ---

type UploadDocumentInput struct {
	FileName    string
	ContentType string
	ProjectID   string
	OrderID     string
	UploadedBy  string
}

// --- Interface ---

type DocumentService interface {
	Upload(ctx context.Context, input UploadDocumentInput, content io.Reader) (*model.Document, error)
	List(ctx context.Context, projectID, orderID string, page, limit int) ([]model.Document, int64, error)
	Get(ctx context.Context, id string) (*model.Document, error)
	// Open returns the stored file for streaming; the caller closes it.
	Open(ctx context.Context, id string) (*model.Document, *os.File, error)
	Delete(ctx context.Context, id string) error
}

type documentService struct {
	db        *gorm.DB
	uploadDir string
}

func NewDocumentService(db *gorm.DB, uploadDir string) DocumentService {
	return &documentService{db: db, uploadDir: uploadDir}
}

// --- Implementation ---

func (s *documentService) Upload(ctx context.Context, input UploadDocumentInput, content io.Reader) (*model.Document, error) {
	if input.FileName == "" {
		return nil, fmt.Errorf("%w: file name is required", ErrValidation)
	}

	doc := model.Document{
		FileName:    filepath.Base(input.FileName),
		ContentType: input.ContentType,
	}

	if input.ProjectID != "" {
		pid, err := uuid.Parse(input.ProjectID)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid project_id", ErrValidation)
		}
		doc.ProjectID = &pid
	}
	if input.OrderID != "" {
		oid, err := uuid.Parse(input.OrderID)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid order_id", ErrValidation)
		}
		doc.OrderID = &oid
	}
	if parsed, err := uuid.Parse(input.UploadedBy); err == nil {
		doc.UploadedBy = &parsed
	}

	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to prepare upload directory: %w", err)
	}

	// Stored name is random so uploads can never collide or traverse paths.
	doc.ID = uuid.New()
	storedName := doc.ID.String() + filepath.Ext(doc.FileName)
	doc.StoredPath = filepath.Join(s.uploadDir, storedName)

	out, err := os.Create(doc.StoredPath)
	if err != nil {
		return nil, fmt.Errorf("failed to store file: %w", err)
	}
	written, err := io.Copy(out, content)
	closeErr := out.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(doc.StoredPath)
		return nil, fmt.Errorf("failed to store file: %w", err)
	}
	doc.SizeBytes = written

	if err := s.db.WithContext(ctx).Create(&doc).Error; err != nil {
		_ = os.Remove(doc.StoredPath)
		return nil, fmt.Errorf("failed to save document: %w", err)
	}

	return &doc, nil
}

func (s *documentService) List(ctx context.Context, projectID, orderID string, page, limit int) ([]model.Document, int64, error) {
	db := s.db.WithContext(ctx).Model(&model.Document{})

	if projectID != "" {
		pid, err := uuid.Parse(projectID)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: invalid project_id", ErrValidation)
		}
		db = db.Where("project_id = ?", pid)
	}
	if orderID != "" {
		oid, err := uuid.Parse(orderID)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: invalid order_id", ErrValidation)
		}
		db = db.Where("order_id = ?", oid)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	offset := (page - 1) * limit

	var docs []model.Document
	if err := db.Order("created_at desc").Offset(offset).Limit(limit).Find(&docs).Error; err != nil {
		return nil, 0, err
	}

	return docs, total, nil
}

func (s *documentService) Get(ctx context.Context, id string) (*model.Document, error) {
	docID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: document %s", ErrNotFound, id)
	}

	var doc model.Document
	if err := s.db.WithContext(ctx).First(&doc, "id = ?", docID).Error; err != nil {
		return nil, orNotFound(err, "document "+id)
	}

	return &doc, nil
}

func (s *documentService) Open(ctx context.Context, id string) (*model.Document, *os.File, error) {
	doc, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	file, err := os.Open(doc.StoredPath)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: document file missing", ErrNotFound)
	}

	return doc, file, nil
}

func (s *documentService) Delete(ctx context.Context, id string) error {
	doc, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.db.WithContext(ctx).Delete(&model.Document{}, "id = ?", doc.ID).Error; err != nil {
		return err
	}

	// Row is gone; a failed unlink just leaves an orphan file behind.
	_ = os.Remove(doc.StoredPath)
	return nil
}
