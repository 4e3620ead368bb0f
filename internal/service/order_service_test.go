package service

import (
	"context"
	"strings"
	"testing"

	"github.com/waynemwendwa/TMS-sub000/internal/model"
	"github.com/waynemwendwa/TMS-sub000/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newOrderService(db *gorm.DB) OrderService {
	return NewOrderService(
		repository.NewOrderRepository(db),
		repository.NewProjectRepository(db),
		repository.NewAuditRepository(db),
		repository.NewTransactionManager(db),
	)
}

func sampleOrderRequest(projectID string) CreateOrderRequest {
	return CreateOrderRequest{
		ProjectID: projectID,
		Title:     "Cement restock",
		Items: []OrderItemInput{
			{ItemCode: "CEM-42.5", Description: "Cement 42.5N 50kg", Unit: "bag", Quantity: 200},
			{ItemCode: "RBR-Y12", Description: "Rebar Y12", Unit: "pc", Quantity: 500},
		},
	}
}

func TestOrderCreate(t *testing.T) {
	db := setupTestDB(t)
	svc := newOrderService(db)
	ctx := context.Background()

	supervisor := seedUser(t, db, "Site Supervisor", model.RoleSiteSupervisor)
	project := seedProject(t, db, "PRJ-001")
	seedAssignment(t, db, supervisor, project)

	order, err := svc.Create(ctx, supervisor.ID.String(), supervisor.Role, sampleOrderRequest(project.ID.String()))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(order.OrderNo, "ORD-"), order.OrderNo)
	assert.Equal(t, model.OrderStatusPendingProcurement, order.Status)
	assert.Equal(t, supervisor.ID, order.RequestedBy)
	assert.Len(t, order.Items, 2)

	var auditCount int64
	require.NoError(t, db.Model(&model.AuditLog{}).Where("action = ?", model.ActionCreateOrder).Count(&auditCount).Error)
	assert.EqualValues(t, 1, auditCount)
}

func TestOrderCreateRequiresSupervisorRole(t *testing.T) {
	db := setupTestDB(t)
	svc := newOrderService(db)

	procurement := seedUser(t, db, "Procurement Officer", model.RoleProcurement)
	project := seedProject(t, db, "PRJ-001")

	_, err := svc.Create(context.Background(), procurement.ID.String(), procurement.Role, sampleOrderRequest(project.ID.String()))
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestOrderCreateRequiresAssignment(t *testing.T) {
	db := setupTestDB(t)
	svc := newOrderService(db)
	ctx := context.Background()

	supervisor := seedUser(t, db, "Unassigned Supervisor", model.RoleSiteSupervisor)
	project := seedProject(t, db, "PRJ-001")

	_, err := svc.Create(ctx, supervisor.ID.String(), supervisor.Role, sampleOrderRequest(project.ID.String()))
	assert.ErrorIs(t, err, ErrForbidden)

	// Assigned to a different project is just as forbidden
	other := seedProject(t, db, "PRJ-002")
	seedAssignment(t, db, supervisor, other)

	_, err = svc.Create(ctx, supervisor.ID.String(), supervisor.Role, sampleOrderRequest(project.ID.String()))
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestOrderApprovalLifecycle(t *testing.T) {
	db := setupTestDB(t)
	svc := newOrderService(db)
	ctx := context.Background()

	supervisor := seedUser(t, db, "Site Supervisor", model.RoleSiteSupervisor)
	procurement := seedUser(t, db, "Procurement Officer", model.RoleProcurement)
	chairman := seedUser(t, db, "The Chairman", model.RoleChairman)
	project := seedProject(t, db, "PRJ-001")
	seedAssignment(t, db, supervisor, project)

	order, err := svc.Create(ctx, supervisor.ID.String(), supervisor.Role, sampleOrderRequest(project.ID.String()))
	require.NoError(t, err)
	id := order.ID.String()

	// Supervisor cannot run the procurement approval
	_, err = svc.ApproveProcurement(ctx, supervisor.ID.String(), supervisor.Role, id)
	assert.ErrorIs(t, err, ErrForbidden)

	// Chairman cannot decide before procurement has approved
	_, err = svc.ApproveChairman(ctx, chairman.ID.String(), chairman.Role, id, true)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	order, err = svc.ApproveProcurement(ctx, procurement.ID.String(), procurement.Role, id)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusPendingChairman, order.Status)
	require.NotNil(t, order.ProcurementApprovedBy)
	assert.Equal(t, procurement.ID, *order.ProcurementApprovedBy)
	assert.NotNil(t, order.ProcurementApprovedAt)

	// Second procurement approval is a status mismatch now
	_, err = svc.ApproveProcurement(ctx, procurement.ID.String(), procurement.Role, id)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	order, err = svc.ApproveChairman(ctx, chairman.ID.String(), chairman.Role, id, true)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusApproved, order.Status)
	require.NotNil(t, order.ChairmanApprovedBy)
	assert.Equal(t, chairman.ID, *order.ChairmanApprovedBy)

	order, err = svc.Source(ctx, procurement.ID.String(), procurement.Role, id)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusSourcing, order.Status)
	require.NotNil(t, order.ProcurementSourcedBy)

	order, err = svc.MarkSourced(ctx, procurement.ID.String(), procurement.Role, id)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusSourced, order.Status)

	order, err = svc.UpdateStatus(ctx, procurement.ID.String(), procurement.Role, id, model.OrderStatusInProgress)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusInProgress, order.Status)

	order, err = svc.UpdateStatus(ctx, procurement.ID.String(), procurement.Role, id, model.OrderStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusCompleted, order.Status)

	// COMPLETED is terminal
	_, err = svc.UpdateStatus(ctx, procurement.ID.String(), procurement.Role, id, model.OrderStatusSourcing)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	var transitionCount int64
	require.NoError(t, db.Model(&model.AuditLog{}).Where("action = ?", model.ActionOrderTransition).Count(&transitionCount).Error)
	assert.EqualValues(t, 6, transitionCount)
}

func TestOrderChairmanRejection(t *testing.T) {
	db := setupTestDB(t)
	svc := newOrderService(db)
	ctx := context.Background()

	supervisor := seedUser(t, db, "Site Supervisor", model.RoleSiteSupervisor)
	procurement := seedUser(t, db, "Procurement Officer", model.RoleProcurement)
	chairman := seedUser(t, db, "The Chairman", model.RoleChairman)
	project := seedProject(t, db, "PRJ-001")
	seedAssignment(t, db, supervisor, project)

	order, err := svc.Create(ctx, supervisor.ID.String(), supervisor.Role, sampleOrderRequest(project.ID.String()))
	require.NoError(t, err)
	id := order.ID.String()

	_, err = svc.ApproveProcurement(ctx, procurement.ID.String(), procurement.Role, id)
	require.NoError(t, err)

	order, err = svc.ApproveChairman(ctx, chairman.ID.String(), chairman.Role, id, false)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusRejected, order.Status)

	// Rejected is terminal; sourcing can never start
	_, err = svc.Source(ctx, procurement.ID.String(), procurement.Role, id)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestOrderSupervisorCancelsOwnOrder(t *testing.T) {
	db := setupTestDB(t)
	svc := newOrderService(db)
	ctx := context.Background()

	supervisor := seedUser(t, db, "Site Supervisor", model.RoleSiteSupervisor)
	project := seedProject(t, db, "PRJ-001")
	seedAssignment(t, db, supervisor, project)

	order, err := svc.Create(ctx, supervisor.ID.String(), supervisor.Role, sampleOrderRequest(project.ID.String()))
	require.NoError(t, err)

	order, err = svc.UpdateStatus(ctx, supervisor.ID.String(), supervisor.Role, order.ID.String(), model.OrderStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusCancelled, order.Status)

	// Cancelling is the only generic move a supervisor has
	second, err := svc.Create(ctx, supervisor.ID.String(), supervisor.Role, sampleOrderRequest(project.ID.String()))
	require.NoError(t, err)
	_, err = svc.UpdateStatus(ctx, supervisor.ID.String(), supervisor.Role, second.ID.String(), model.OrderStatusPendingChairman)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestOrderDeleteGuards(t *testing.T) {
	db := setupTestDB(t)
	svc := newOrderService(db)
	ctx := context.Background()

	supervisor := seedUser(t, db, "Site Supervisor", model.RoleSiteSupervisor)
	intruder := seedUser(t, db, "Other Supervisor", model.RoleSiteSupervisor)
	procurement := seedUser(t, db, "Procurement Officer", model.RoleProcurement)
	chairman := seedUser(t, db, "The Chairman", model.RoleChairman)
	project := seedProject(t, db, "PRJ-001")
	seedAssignment(t, db, supervisor, project)

	order, err := svc.Create(ctx, supervisor.ID.String(), supervisor.Role, sampleOrderRequest(project.ID.String()))
	require.NoError(t, err)
	id := order.ID.String()

	// Another supervisor may not delete it
	err = svc.Delete(ctx, intruder.ID.String(), intruder.Role, id)
	assert.ErrorIs(t, err, ErrForbidden)

	// Once past procurement, creator deletion is off the table
	_, err = svc.ApproveProcurement(ctx, procurement.ID.String(), procurement.Role, id)
	require.NoError(t, err)
	_, err = svc.ApproveChairman(ctx, chairman.ID.String(), chairman.Role, id, true)
	require.NoError(t, err)
	err = svc.Delete(ctx, supervisor.ID.String(), supervisor.Role, id)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	// A fresh pending order deletes cleanly, items included
	order, err = svc.Create(ctx, supervisor.ID.String(), supervisor.Role, sampleOrderRequest(project.ID.String()))
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, supervisor.ID.String(), supervisor.Role, order.ID.String()))

	var itemCount int64
	require.NoError(t, db.Model(&model.OrderItem{}).Where("order_id = ?", order.ID).Count(&itemCount).Error)
	assert.EqualValues(t, 0, itemCount)
}

func TestOrderListVisibility(t *testing.T) {
	db := setupTestDB(t)
	svc := newOrderService(db)
	ctx := context.Background()

	first := seedUser(t, db, "First Supervisor", model.RoleSiteSupervisor)
	second := seedUser(t, db, "Second Supervisor", model.RoleSiteSupervisor)
	procurement := seedUser(t, db, "Procurement Officer", model.RoleProcurement)
	projectA := seedProject(t, db, "PRJ-001")
	projectB := seedProject(t, db, "PRJ-002")
	seedAssignment(t, db, first, projectA)
	seedAssignment(t, db, second, projectB)

	_, err := svc.Create(ctx, first.ID.String(), first.Role, sampleOrderRequest(projectA.ID.String()))
	require.NoError(t, err)
	_, err = svc.Create(ctx, second.ID.String(), second.Role, sampleOrderRequest(projectB.ID.String()))
	require.NoError(t, err)

	mine, total, err := svc.List(ctx, first.ID.String(), first.Role, OrderListFilter{}, 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, mine, 1)
	assert.Equal(t, first.ID, mine[0].RequestedBy)

	all, total, err := svc.List(ctx, procurement.ID.String(), procurement.Role, OrderListFilter{}, 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, all, 2)

	// Supervisors cannot read each other's orders either
	_, err = svc.Get(ctx, second.ID.String(), second.Role, mine[0].ID.String())
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestOrderGetIncludesDeliveryCount(t *testing.T) {
	db := setupTestDB(t)
	svc := newOrderService(db)
	ctx := context.Background()

	supervisor := seedUser(t, db, "Site Supervisor", model.RoleSiteSupervisor)
	project := seedProject(t, db, "PRJ-001")
	seedAssignment(t, db, supervisor, project)

	order, err := svc.Create(ctx, supervisor.ID.String(), supervisor.Role, sampleOrderRequest(project.ID.String()))
	require.NoError(t, err)

	require.NoError(t, db.Create(&model.Delivery{OrderID: order.ID, DeliveredAt: order.CreatedAt}).Error)
	require.NoError(t, db.Create(&model.Delivery{OrderID: order.ID, DeliveredAt: order.CreatedAt}).Error)

	detail, err := svc.Get(ctx, supervisor.ID.String(), supervisor.Role, order.ID.String())
	require.NoError(t, err)
	assert.EqualValues(t, 2, detail.DeliveryCount)
}
