package service

import (
	"context"
	"testing"

	"github.com/waynemwendwa/TMS-sub000/internal/model"
	"github.com/waynemwendwa/TMS-sub000/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newProjectService(db *gorm.DB) ProjectService {
	return NewProjectService(
		repository.NewProjectRepository(db),
		repository.NewUserRepository(db),
		repository.NewAuditRepository(db),
		repository.NewTransactionManager(db),
		db,
	)
}

func TestProjectCreateRejectsDuplicateCode(t *testing.T) {
	db := setupTestDB(t)
	svc := newProjectService(db)
	ctx := context.Background()

	_, err := svc.Create(ctx, ProjectInput{Name: "Tower A", Code: "PRJ-001"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, ProjectInput{Name: "Tower B", Code: "PRJ-001"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAssignSupervisorEnforcesRole(t *testing.T) {
	db := setupTestDB(t)
	svc := newProjectService(db)
	ctx := context.Background()

	admin := seedUser(t, db, "Chairman PA", model.RoleChairmanPA)
	procurement := seedUser(t, db, "Procurement Officer", model.RoleProcurement)
	project := seedProject(t, db, "PRJ-001")

	_, err := svc.AssignSupervisor(ctx, admin.ID.String(), project.ID.String(), AssignSupervisorInput{
		UserID: procurement.ID.String(),
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAssignSupervisorMovesExistingAssignment(t *testing.T) {
	db := setupTestDB(t)
	svc := newProjectService(db)
	ctx := context.Background()

	admin := seedUser(t, db, "Chairman PA", model.RoleChairmanPA)
	supervisor := seedUser(t, db, "Site Supervisor", model.RoleSiteSupervisor)
	first := seedProject(t, db, "PRJ-001")
	second := seedProject(t, db, "PRJ-002")

	assignment, err := svc.AssignSupervisor(ctx, admin.ID.String(), first.ID.String(), AssignSupervisorInput{
		UserID: supervisor.ID.String(),
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, assignment.ProjectID)

	// Reassigning moves the single assignment rather than adding a second
	assignment, err = svc.AssignSupervisor(ctx, admin.ID.String(), second.ID.String(), AssignSupervisorInput{
		UserID: supervisor.ID.String(),
	})
	require.NoError(t, err)
	assert.Equal(t, second.ID, assignment.ProjectID)

	var count int64
	require.NoError(t, db.Model(&model.ProjectAssignment{}).Where("user_id = ?", supervisor.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestBOQAmountsAndTotal(t *testing.T) {
	db := setupTestDB(t)
	svc := newProjectService(db)
	ctx := context.Background()

	project := seedProject(t, db, "PRJ-001")
	id := project.ID.String()

	item, err := svc.AddBOQItem(ctx, id, BOQItemInput{
		ItemCode:    "CONC-C25",
		Description: "Concrete C25",
		Unit:        "m3",
		Quantity:    decimal.NewFromInt(10),
		Rate:        decimal.NewFromInt(150),
	})
	require.NoError(t, err)
	assert.True(t, item.Amount.Equal(decimal.NewFromInt(1500)), item.Amount.String())

	_, err = svc.AddBOQItem(ctx, id, BOQItemInput{
		ItemCode:    "RBR-Y12",
		Description: "Rebar Y12",
		Unit:        "pc",
		Quantity:    decimal.NewFromInt(100),
		Rate:        decimal.NewFromFloat(8.5),
	})
	require.NoError(t, err)

	summary, err := svc.BOQ(ctx, id)
	require.NoError(t, err)
	assert.Len(t, summary.Items, 2)
	assert.True(t, summary.Total.Equal(decimal.NewFromInt(2350)), summary.Total.String())
}
