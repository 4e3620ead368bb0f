package repository

import (
	"context"

	"github.com/waynemwendwa/TMS-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProjectRepository interface {
	Create(ctx context.Context, project *model.Project) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Project, error)
	List(ctx context.Context, page, limit int) ([]model.Project, int64, error)
	Update(ctx context.Context, project *model.Project) error
	Delete(ctx context.Context, id uuid.UUID) error
	AssignmentForUser(ctx context.Context, userID uuid.UUID) (*model.ProjectAssignment, error)
	SaveAssignment(ctx context.Context, assignment *model.ProjectAssignment) error
}

type projectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) Create(ctx context.Context, project *model.Project) error {
	return GetDB(ctx, r.db).Create(project).Error
}

func (r *projectRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	var project model.Project
	if err := GetDB(ctx, r.db).First(&project, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *projectRepository) List(ctx context.Context, page, limit int) ([]model.Project, int64, error) {
	var projects []model.Project
	var total int64

	db := GetDB(ctx, r.db)
	if err := db.Model(&model.Project{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Order("created_at desc").Offset(offset).Limit(limit).Find(&projects).Error; err != nil {
		return nil, 0, err
	}

	return projects, total, nil
}

func (r *projectRepository) Update(ctx context.Context, project *model.Project) error {
	return GetDB(ctx, r.db).Save(project).Error
}

func (r *projectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Delete(&model.Project{}, "id = ?", id).Error
}

// AssignmentForUser returns the single project assignment for a supervisor,
// or gorm.ErrRecordNotFound when none exists.
func (r *projectRepository) AssignmentForUser(ctx context.Context, userID uuid.UUID) (*model.ProjectAssignment, error) {
	var assignment model.ProjectAssignment
	if err := GetDB(ctx, r.db).Preload("Project").First(&assignment, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (r *projectRepository) SaveAssignment(ctx context.Context, assignment *model.ProjectAssignment) error {
	return GetDB(ctx, r.db).Save(assignment).Error
}
