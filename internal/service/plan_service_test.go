package service

import (
	"context"
	"testing"
	"time"

	"github.com/waynemwendwa/TMS-sub000/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanLifecycle(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPlanService(db)
	ctx := context.Background()

	officer := seedUser(t, db, "Procurement Officer", model.RoleProcurement)
	project := seedProject(t, db, "PRJ-001")

	start := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	plan, err := svc.Create(ctx, officer.ID.String(), CreatePlanInput{
		ProjectID:   project.ID.String(),
		Title:       "Q3 sourcing plan",
		PeriodStart: start,
		PeriodEnd:   start.AddDate(0, 3, 0),
		Items: []PlanItemInput{
			{Description: "Cement", Quantity: 1000, EstimatedCost: decimal.NewFromInt(9000)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, model.PlanStatusDraft, plan.Status)
	assert.Len(t, plan.Items, 1)

	_, err = svc.AddItem(ctx, plan.ID.String(), PlanItemInput{
		Description:   "Rebar",
		Quantity:      500,
		EstimatedCost: decimal.NewFromInt(4000),
	})
	require.NoError(t, err)

	plan, err = svc.Finalize(ctx, plan.ID.String())
	require.NoError(t, err)
	assert.Equal(t, model.PlanStatusFinal, plan.Status)

	// Final plans accept no further items and no second finalize
	_, err = svc.AddItem(ctx, plan.ID.String(), PlanItemInput{Description: "Sand", Quantity: 1, EstimatedCost: decimal.NewFromInt(10)})
	assert.ErrorIs(t, err, ErrInvalidTransition)
	_, err = svc.Finalize(ctx, plan.ID.String())
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestPlanPeriodValidation(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPlanService(db)

	officer := seedUser(t, db, "Procurement Officer", model.RoleProcurement)
	project := seedProject(t, db, "PRJ-001")

	start := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	_, err := svc.Create(context.Background(), officer.ID.String(), CreatePlanInput{
		ProjectID:   project.ID.String(),
		Title:       "Backwards period",
		PeriodStart: start,
		PeriodEnd:   start.AddDate(0, -1, 0),
	})
	assert.ErrorIs(t, err, ErrValidation)
}
