package service

import (
	"context"
	"fmt"

	"github.com/waynemwendwa/TMS-sub000/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// --- DTOs ---

type TemplateItemInput struct {
	Description string          `json:"description" binding:"required"`
	Unit        string          `json:"unit"`
	Quantity    int             `json:"quantity" binding:"required,gt=0"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
}

type CreateTemplateInput struct {
	Title       string              `json:"title" binding:"required"`
	Description string              `json:"description"`
	ProjectID   *string             `json:"project_id"`
	Items       []TemplateItemInput `json:"items" binding:"required,min=1,dive"`
}

// --- Interface ---

type TemplateService interface {
	Create(ctx context.Context, userID string, req CreateTemplateInput) (*model.OrderTemplate, error)
	List(ctx context.Context, page, limit int) ([]model.OrderTemplate, int64, error)
	Get(ctx context.Context, id string) (*model.OrderTemplate, error)
	Delete(ctx context.Context, id string) error
}

type templateService struct {
	db *gorm.DB
}

func NewTemplateService(db *gorm.DB) TemplateService {
	return &templateService{db: db}
}

// --- Implementation ---

func (s *templateService) Create(ctx context.Context, userID string, req CreateTemplateInput) (*model.OrderTemplate, error) {
	template := model.OrderTemplate{
		Title:       req.Title,
		Description: req.Description,
	}

	if parsed, err := uuid.Parse(userID); err == nil {
		template.CreatedBy = &parsed
	}

	if req.ProjectID != nil && *req.ProjectID != "" {
		pid, err := uuid.Parse(*req.ProjectID)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid project_id", ErrValidation)
		}
		template.ProjectID = &pid
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if createErr := tx.Omit("Items").Create(&template).Error; createErr != nil {
			return fmt.Errorf("failed to create template: %w", createErr)
		}

		for _, itemReq := range req.Items {
			item := model.OrderTemplateItem{
				OrderTemplateID: template.ID,
				Description:     itemReq.Description,
				Unit:            itemReq.Unit,
				Quantity:        itemReq.Quantity,
				Amount:          itemReq.Amount,
			}
			if itemErr := tx.Create(&item).Error; itemErr != nil {
				return fmt.Errorf("failed to create template item: %w", itemErr)
			}
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return s.Get(ctx, template.ID.String())
}

func (s *templateService) List(ctx context.Context, page, limit int) ([]model.OrderTemplate, int64, error) {
	var templates []model.OrderTemplate
	var total int64

	if err := s.db.WithContext(ctx).Model(&model.OrderTemplate{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	offset := (page - 1) * limit

	if err := s.db.WithContext(ctx).
		Preload("Items").
		Preload("Project").
		Order("created_at desc").
		Offset(offset).Limit(limit).
		Find(&templates).Error; err != nil {
		return nil, 0, err
	}

	return templates, total, nil
}

func (s *templateService) Get(ctx context.Context, id string) (*model.OrderTemplate, error) {
	templateID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: template %s", ErrNotFound, id)
	}

	var template model.OrderTemplate
	if err := s.db.WithContext(ctx).
		Preload("Items").
		Preload("Project").
		First(&template, "id = ?", templateID).Error; err != nil {
		return nil, orNotFound(err, "template "+id)
	}

	return &template, nil
}

func (s *templateService) Delete(ctx context.Context, id string) error {
	template, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_template_id = ?", template.ID).Delete(&model.OrderTemplateItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.OrderTemplate{}, "id = ?", template.ID).Error
	})
}
