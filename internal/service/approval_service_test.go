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

func seedTemplate(t *testing.T, db *gorm.DB, amounts ...int64) *model.OrderTemplate {
	t.Helper()

	template := &model.OrderTemplate{Title: "Steel package"}
	require.NoError(t, db.Create(template).Error)
	for _, amount := range amounts {
		item := &model.OrderTemplateItem{
			OrderTemplateID: template.ID,
			Description:     "Line item",
			Quantity:        1,
			Amount:          decimal.NewFromInt(amount),
		}
		require.NoError(t, db.Create(item).Error)
	}
	return template
}

func TestApprovalCreateDerivesTotalAndNotifiesChairman(t *testing.T) {
	db := setupTestDB(t)
	svc := NewApprovalService(db, repository.NewUserRepository(db), nil)
	ctx := context.Background()

	procurement := seedUser(t, db, "Procurement Officer", model.RoleProcurement)
	chairman := seedUser(t, db, "The Chairman", model.RoleChairman)
	template := seedTemplate(t, db, 1500, 2500)

	templateID := template.ID.String()
	approval, err := svc.Create(ctx, procurement.ID.String(), procurement.Role, CreateApprovalRequestInput{
		Title:           "Q3 steel purchase",
		Priority:        model.PriorityHigh,
		OrderTemplateID: &templateID,
	})
	require.NoError(t, err)

	assert.Equal(t, model.ApprovalPending, approval.Status)
	assert.Equal(t, model.PriorityHigh, approval.Priority)
	require.NotNil(t, approval.TotalAmount)
	assert.True(t, approval.TotalAmount.Equal(decimal.NewFromInt(4000)), approval.TotalAmount.String())

	notifs, err := svc.UnreadNotifications(ctx, chairman.ID.String())
	require.NoError(t, err)
	require.Len(t, notifs, 1)
	assert.Equal(t, model.NotifTypeApprovalRequest, notifs[0].Type)
	assert.Equal(t, approval.ID, notifs[0].ApprovalRequestID)
}

func TestApprovalCreateWithoutChairmanStillSucceeds(t *testing.T) {
	db := setupTestDB(t)
	svc := NewApprovalService(db, repository.NewUserRepository(db), nil)

	procurement := seedUser(t, db, "Procurement Officer", model.RoleProcurement)

	approval, err := svc.Create(context.Background(), procurement.ID.String(), procurement.Role, CreateApprovalRequestInput{
		Title: "No chairman yet",
	})
	require.NoError(t, err)
	assert.Equal(t, model.ApprovalPending, approval.Status)
	assert.Nil(t, approval.TotalAmount)

	var notifCount int64
	require.NoError(t, db.Model(&model.ApprovalNotification{}).Count(&notifCount).Error)
	assert.EqualValues(t, 0, notifCount)
}

func TestApprovalCreateRequiresProcurementTier(t *testing.T) {
	db := setupTestDB(t)
	svc := NewApprovalService(db, repository.NewUserRepository(db), nil)

	supervisor := seedUser(t, db, "Site Supervisor", model.RoleSiteSupervisor)

	_, err := svc.Create(context.Background(), supervisor.ID.String(), supervisor.Role, CreateApprovalRequestInput{Title: "Nope"})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestApprovalDecide(t *testing.T) {
	db := setupTestDB(t)
	svc := NewApprovalService(db, repository.NewUserRepository(db), nil)
	ctx := context.Background()

	procurement := seedUser(t, db, "Procurement Officer", model.RoleProcurement)
	chairman := seedUser(t, db, "The Chairman", model.RoleChairman)
	pa := seedUser(t, db, "Chairman PA", model.RoleChairmanPA)

	approval, err := svc.Create(ctx, procurement.ID.String(), procurement.Role, CreateApprovalRequestInput{Title: "Q3 purchase"})
	require.NoError(t, err)
	id := approval.ID.String()

	// Only the chairman decides; the PA reads but does not rule
	_, err = svc.Decide(ctx, pa.ID.String(), pa.Role, id, DecideApprovalInput{Status: model.ApprovalApproved})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Decide(ctx, chairman.ID.String(), chairman.Role, id, DecideApprovalInput{Status: "MAYBE"})
	assert.ErrorIs(t, err, ErrValidation)

	approval, err = svc.Decide(ctx, chairman.ID.String(), chairman.Role, id, DecideApprovalInput{
		Status:   model.ApprovalApproved,
		Comments: "Go ahead",
	})
	require.NoError(t, err)
	assert.Equal(t, model.ApprovalApproved, approval.Status)
	require.NotNil(t, approval.ReviewedBy)
	assert.Equal(t, chairman.ID, *approval.ReviewedBy)
	assert.NotNil(t, approval.ReviewedAt)
	assert.Equal(t, "Go ahead", approval.Comments)

	notifs, err := svc.UnreadNotifications(ctx, procurement.ID.String())
	require.NoError(t, err)
	require.Len(t, notifs, 1)
	assert.Equal(t, model.NotifTypeApprovalApproved, notifs[0].Type)

	// A decided request can be re-decided
	approval, err = svc.Decide(ctx, chairman.ID.String(), chairman.Role, id, DecideApprovalInput{Status: model.ApprovalRejected})
	require.NoError(t, err)
	assert.Equal(t, model.ApprovalRejected, approval.Status)
}

func TestApprovalUnderReviewCarriesRejectedNotificationType(t *testing.T) {
	db := setupTestDB(t)
	svc := NewApprovalService(db, repository.NewUserRepository(db), nil)
	ctx := context.Background()

	procurement := seedUser(t, db, "Procurement Officer", model.RoleProcurement)
	chairman := seedUser(t, db, "The Chairman", model.RoleChairman)

	approval, err := svc.Create(ctx, procurement.ID.String(), procurement.Role, CreateApprovalRequestInput{Title: "Parked request"})
	require.NoError(t, err)

	approval, err = svc.Decide(ctx, chairman.ID.String(), chairman.Role, approval.ID.String(), DecideApprovalInput{
		Status: model.ApprovalUnderReview,
	})
	require.NoError(t, err)
	assert.Equal(t, model.ApprovalUnderReview, approval.Status)

	notifs, err := svc.UnreadNotifications(ctx, procurement.ID.String())
	require.NoError(t, err)
	require.Len(t, notifs, 1)
	assert.Equal(t, model.NotifTypeApprovalRejected, notifs[0].Type)
}

func TestApprovalListVisibility(t *testing.T) {
	db := setupTestDB(t)
	svc := NewApprovalService(db, repository.NewUserRepository(db), nil)
	ctx := context.Background()

	first := seedUser(t, db, "First Officer", model.RoleProcurement)
	second := seedUser(t, db, "Second Officer", model.RoleFinanceProcurement)
	chairman := seedUser(t, db, "The Chairman", model.RoleChairman)

	_, err := svc.Create(ctx, first.ID.String(), first.Role, CreateApprovalRequestInput{Title: "From first"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, second.ID.String(), second.Role, CreateApprovalRequestInput{Title: "From second"})
	require.NoError(t, err)

	all, err := svc.List(ctx, chairman.ID.String(), chairman.Role, ApprovalListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	mine, err := svc.List(ctx, first.ID.String(), first.Role, ApprovalListFilter{})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "From first", mine[0].Title)

	// Requesters cannot open each other's requests either
	_, err = svc.Get(ctx, first.ID.String(), first.Role, all[0].ID.String())
	if all[0].RequestedBy != first.ID {
		assert.ErrorIs(t, err, ErrForbidden)
	}
}

func TestApprovalNotificationReadFlow(t *testing.T) {
	db := setupTestDB(t)
	svc := NewApprovalService(db, repository.NewUserRepository(db), nil)
	ctx := context.Background()

	procurement := seedUser(t, db, "Procurement Officer", model.RoleProcurement)
	chairman := seedUser(t, db, "The Chairman", model.RoleChairman)
	other := seedUser(t, db, "Chairman PA", model.RoleChairmanPA)

	_, err := svc.Create(ctx, procurement.ID.String(), procurement.Role, CreateApprovalRequestInput{Title: "First"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, procurement.ID.String(), procurement.Role, CreateApprovalRequestInput{Title: "Second"})
	require.NoError(t, err)

	notifs, err := svc.UnreadNotifications(ctx, chairman.ID.String())
	require.NoError(t, err)
	require.Len(t, notifs, 2)

	// Someone else's notification id behaves like a missing record
	err = svc.MarkNotificationRead(ctx, other.ID.String(), notifs[0].ID.String())
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, svc.MarkNotificationRead(ctx, chairman.ID.String(), notifs[0].ID.String()))

	notifs, err = svc.UnreadNotifications(ctx, chairman.ID.String())
	require.NoError(t, err)
	assert.Len(t, notifs, 1)

	// read-all clears the rest and is idempotent
	require.NoError(t, svc.MarkAllNotificationsRead(ctx, chairman.ID.String()))
	require.NoError(t, svc.MarkAllNotificationsRead(ctx, chairman.ID.String()))

	notifs, err = svc.UnreadNotifications(ctx, chairman.ID.String())
	require.NoError(t, err)
	assert.Empty(t, notifs)
}
