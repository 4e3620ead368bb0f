package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/waynemwendwa/TMS-sub000/internal/model"
	"github.com/waynemwendwa/TMS-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// --- DTOs ---

type ProjectInput struct {
	Name        string     `json:"name" binding:"required"`
	Code        string     `json:"code" binding:"required"`
	Location    string     `json:"location"`
	Description string     `json:"description"`
	Status      string     `json:"status" binding:"omitempty,oneof=ACTIVE ON_HOLD COMPLETED"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
}

type AssignSupervisorInput struct {
	UserID string `json:"user_id" binding:"required"`
}

type BOQItemInput struct {
	Section     string          `json:"section"`
	ItemCode    string          `json:"item_code" binding:"required"`
	Description string          `json:"description" binding:"required"`
	Unit        string          `json:"unit"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	Rate        decimal.Decimal `json:"rate" binding:"required"`
}

// BOQSummary aggregates a project's bill of quantities
type BOQSummary struct {
	Items []model.BOQItem `json:"items"`
	Total decimal.Decimal `json:"total"`
}

// --- Interface ---

type ProjectService interface {
	Create(ctx context.Context, req ProjectInput) (*model.Project, error)
	List(ctx context.Context, page, limit int) ([]model.Project, int64, error)
	Get(ctx context.Context, id string) (*model.Project, error)
	Update(ctx context.Context, id string, req ProjectInput) (*model.Project, error)
	Delete(ctx context.Context, id string) error
	AssignSupervisor(ctx context.Context, actorID, projectID string, req AssignSupervisorInput) (*model.ProjectAssignment, error)
	AddBOQItem(ctx context.Context, projectID string, req BOQItemInput) (*model.BOQItem, error)
	BOQ(ctx context.Context, projectID string) (*BOQSummary, error)
}

type projectService struct {
	projectRepo repository.ProjectRepository
	userRepo    repository.UserRepository
	auditRepo   repository.AuditRepository
	txManager   repository.TransactionManager
	db          *gorm.DB
}

func NewProjectService(
	projectRepo repository.ProjectRepository,
	userRepo repository.UserRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
	db *gorm.DB,
) ProjectService {
	return &projectService{
		projectRepo: projectRepo,
		userRepo:    userRepo,
		auditRepo:   auditRepo,
		txManager:   txManager,
		db:          db,
	}
}

// --- Implementation ---

func (s *projectService) Create(ctx context.Context, req ProjectInput) (*model.Project, error) {
	status := req.Status
	if status == "" {
		status = model.ProjectStatusActive
	}

	project := model.Project{
		Name:        req.Name,
		Code:        req.Code,
		Location:    req.Location,
		Description: req.Description,
		Status:      status,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	}

	if err := s.projectRepo.Create(ctx, &project); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: project code already exists", ErrValidation)
		}
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return &project, nil
}

func (s *projectService) List(ctx context.Context, page, limit int) ([]model.Project, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	return s.projectRepo.List(ctx, page, limit)
}

func (s *projectService) Get(ctx context.Context, id string) (*model.Project, error) {
	projectID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: project %s", ErrNotFound, id)
	}

	project, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return nil, orNotFound(err, "project "+id)
	}
	return project, nil
}

func (s *projectService) Update(ctx context.Context, id string, req ProjectInput) (*model.Project, error) {
	project, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	project.Name = req.Name
	project.Code = req.Code
	project.Location = req.Location
	project.Description = req.Description
	if req.Status != "" {
		project.Status = req.Status
	}
	project.StartDate = req.StartDate
	project.EndDate = req.EndDate

	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	return project, nil
}

func (s *projectService) Delete(ctx context.Context, id string) error {
	project, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	return s.projectRepo.Delete(ctx, project.ID)
}

// AssignSupervisor binds a site supervisor to this project, replacing any
// previous assignment so the one-project invariant holds.
func (s *projectService) AssignSupervisor(ctx context.Context, actorID, projectID string, req AssignSupervisorInput) (*model.ProjectAssignment, error) {
	project, err := s.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		return nil, orNotFound(err, "user "+req.UserID)
	}
	if user.Role != model.RoleSiteSupervisor {
		return nil, fmt.Errorf("%w: only site supervisors can be assigned to projects", ErrValidation)
	}

	var actor *uuid.UUID
	if parsed, parseErr := uuid.Parse(actorID); parseErr == nil {
		actor = &parsed
	}

	var assignment *model.ProjectAssignment
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		existing, findErr := s.projectRepo.AssignmentForUser(txCtx, user.ID)
		switch {
		case findErr == nil:
			existing.ProjectID = project.ID
			assignment = existing
		case errors.Is(findErr, gorm.ErrRecordNotFound):
			assignment = &model.ProjectAssignment{UserID: user.ID, ProjectID: project.ID}
		default:
			return findErr
		}

		if saveErr := s.projectRepo.SaveAssignment(txCtx, assignment); saveErr != nil {
			return fmt.Errorf("failed to save assignment: %w", saveErr)
		}

		details, _ := json.Marshal(map[string]interface{}{
			"user_id":    user.ID.String(),
			"project_id": project.ID.String(),
		})
		audit := &model.AuditLog{
			UserID:     actor,
			Action:     model.ActionAssignSupervisor,
			EntityID:   project.Code,
			EntityName: project.Name,
			Details:    string(details),
		}
		return s.auditRepo.Log(txCtx, audit)
	})

	if err != nil {
		return nil, err
	}

	return assignment, nil
}

func (s *projectService) AddBOQItem(ctx context.Context, projectID string, req BOQItemInput) (*model.BOQItem, error) {
	project, err := s.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}

	item := model.BOQItem{
		ProjectID:   project.ID,
		Section:     req.Section,
		ItemCode:    req.ItemCode,
		Description: req.Description,
		Unit:        req.Unit,
		Quantity:    req.Quantity,
		Rate:        req.Rate,
		Amount:      req.Quantity.Mul(req.Rate),
	}

	if err := s.db.WithContext(ctx).Create(&item).Error; err != nil {
		return nil, fmt.Errorf("failed to create BOQ item: %w", err)
	}

	return &item, nil
}

func (s *projectService) BOQ(ctx context.Context, projectID string) (*BOQSummary, error) {
	project, err := s.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}

	var items []model.BOQItem
	if err := s.db.WithContext(ctx).
		Where("project_id = ?", project.ID).
		Order("section asc, item_code asc").
		Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch BOQ: %w", err)
	}

	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Amount)
	}

	return &BOQSummary{Items: items, Total: total}, nil
}
