package service

import (
	"context"
	"fmt"
	"time"

	"github.com/waynemwendwa/TMS-sub000/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// --- DTOs ---

type PlanItemInput struct {
	Description   string          `json:"description" binding:"required"`
	Unit          string          `json:"unit"`
	Quantity      int             `json:"quantity" binding:"required,gt=0"`
	EstimatedCost decimal.Decimal `json:"estimated_cost" binding:"required"`
	TargetDate    *time.Time      `json:"target_date"`
}

type CreatePlanInput struct {
	ProjectID   string          `json:"project_id" binding:"required"`
	Title       string          `json:"title" binding:"required"`
	PeriodStart time.Time       `json:"period_start" binding:"required"`
	PeriodEnd   time.Time       `json:"period_end" binding:"required"`
	Items       []PlanItemInput `json:"items" binding:"omitempty,dive"`
}

// --- Interface ---

type PlanService interface {
	Create(ctx context.Context, userID string, req CreatePlanInput) (*model.ProcurementPlan, error)
	List(ctx context.Context, projectID string, page, limit int) ([]model.ProcurementPlan, int64, error)
	Get(ctx context.Context, id string) (*model.ProcurementPlan, error)
	Finalize(ctx context.Context, id string) (*model.ProcurementPlan, error)
	AddItem(ctx context.Context, planID string, req PlanItemInput) (*model.ProcurementPlanItem, error)
	Delete(ctx context.Context, id string) error
}

type planService struct {
	db *gorm.DB
}

func NewPlanService(db *gorm.DB) PlanService {
	return &planService{db: db}
}

// --- Implementation ---

func (s *planService) Create(ctx context.Context, userID string, req CreatePlanInput) (*model.ProcurementPlan, error) {
	projectID, err := uuid.Parse(req.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid project_id", ErrValidation)
	}

	if !req.PeriodEnd.After(req.PeriodStart) {
		return nil, fmt.Errorf("%w: period_end must be after period_start", ErrValidation)
	}

	var project model.Project
	if err := s.db.WithContext(ctx).First(&project, "id = ?", projectID).Error; err != nil {
		return nil, orNotFound(err, "project "+req.ProjectID)
	}

	plan := model.ProcurementPlan{
		ProjectID:   projectID,
		Title:       req.Title,
		Status:      model.PlanStatusDraft,
		PeriodStart: req.PeriodStart,
		PeriodEnd:   req.PeriodEnd,
	}
	if parsed, parseErr := uuid.Parse(userID); parseErr == nil {
		plan.CreatedBy = &parsed
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if createErr := tx.Omit("Items").Create(&plan).Error; createErr != nil {
			return fmt.Errorf("failed to create plan: %w", createErr)
		}

		for _, itemReq := range req.Items {
			item := model.ProcurementPlanItem{
				PlanID:        plan.ID,
				Description:   itemReq.Description,
				Unit:          itemReq.Unit,
				Quantity:      itemReq.Quantity,
				EstimatedCost: itemReq.EstimatedCost,
				TargetDate:    itemReq.TargetDate,
			}
			if itemErr := tx.Create(&item).Error; itemErr != nil {
				return fmt.Errorf("failed to create plan item: %w", itemErr)
			}
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return s.Get(ctx, plan.ID.String())
}

func (s *planService) List(ctx context.Context, projectID string, page, limit int) ([]model.ProcurementPlan, int64, error) {
	db := s.db.WithContext(ctx).Model(&model.ProcurementPlan{})

	if projectID != "" {
		pid, err := uuid.Parse(projectID)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: invalid project_id", ErrValidation)
		}
		db = db.Where("project_id = ?", pid)
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

	var plans []model.ProcurementPlan
	if err := db.
		Preload("Items").
		Preload("Project").
		Order("period_start desc").
		Offset(offset).Limit(limit).
		Find(&plans).Error; err != nil {
		return nil, 0, err
	}

	return plans, total, nil
}

func (s *planService) Get(ctx context.Context, id string) (*model.ProcurementPlan, error) {
	planID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: plan %s", ErrNotFound, id)
	}

	var plan model.ProcurementPlan
	if err := s.db.WithContext(ctx).
		Preload("Items").
		Preload("Project").
		First(&plan, "id = ?", planID).Error; err != nil {
		return nil, orNotFound(err, "plan "+id)
	}

	return &plan, nil
}

// Finalize locks a draft plan. A FINAL plan accepts no further items.
func (s *planService) Finalize(ctx context.Context, id string) (*model.ProcurementPlan, error) {
	plan, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if plan.Status == model.PlanStatusFinal {
		return nil, fmt.Errorf("%w: plan is already final", ErrInvalidTransition)
	}

	plan.Status = model.PlanStatusFinal
	if err := s.db.WithContext(ctx).Model(&model.ProcurementPlan{}).
		Where("id = ?", plan.ID).
		Update("status", model.PlanStatusFinal).Error; err != nil {
		return nil, fmt.Errorf("failed to finalize plan: %w", err)
	}

	return plan, nil
}

func (s *planService) AddItem(ctx context.Context, planID string, req PlanItemInput) (*model.ProcurementPlanItem, error) {
	plan, err := s.Get(ctx, planID)
	if err != nil {
		return nil, err
	}

	if plan.Status == model.PlanStatusFinal {
		return nil, fmt.Errorf("%w: cannot add items to a final plan", ErrInvalidTransition)
	}

	item := model.ProcurementPlanItem{
		PlanID:        plan.ID,
		Description:   req.Description,
		Unit:          req.Unit,
		Quantity:      req.Quantity,
		EstimatedCost: req.EstimatedCost,
		TargetDate:    req.TargetDate,
	}

	if err := s.db.WithContext(ctx).Create(&item).Error; err != nil {
		return nil, fmt.Errorf("failed to create plan item: %w", err)
	}

	return &item, nil
}

func (s *planService) Delete(ctx context.Context, id string) error {
	plan, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("plan_id = ?", plan.ID).Delete(&model.ProcurementPlanItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.ProcurementPlan{}, "id = ?", plan.ID).Error
	})
}
