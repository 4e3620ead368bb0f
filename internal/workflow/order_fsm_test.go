package workflow

import (
	"testing"

	"github.com/waynemwendwa/TMS-sub000/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestGuardRoleCheckedBeforeStatus(t *testing.T) {
	// A supervisor on a wrong-status order must get the role error, not a
	// status hint.
	err := Guard(OpApproveProcurement, model.RoleSiteSupervisor, model.OrderStatusApproved)
	assert.ErrorIs(t, err, ErrRoleNotAllowed)
}

func TestGuardHappyPath(t *testing.T) {
	assert.NoError(t, Guard(OpApproveProcurement, model.RoleProcurement, model.OrderStatusPendingProcurement))
	assert.NoError(t, Guard(OpApproveProcurement, model.RoleFinanceProcurement, model.OrderStatusPendingProcurement))
	assert.NoError(t, Guard(OpApproveChairman, model.RoleChairman, model.OrderStatusPendingChairman))
	assert.NoError(t, Guard(OpApproveChairman, model.RoleChairmanPA, model.OrderStatusPendingChairman))
	assert.NoError(t, Guard(OpSource, model.RoleProcurement, model.OrderStatusApproved))
	assert.NoError(t, Guard(OpMarkSourced, model.RoleProcurement, model.OrderStatusSourcing))
}

func TestGuardStatusMismatch(t *testing.T) {
	err := Guard(OpApproveChairman, model.RoleChairman, model.OrderStatusPendingProcurement)
	assert.ErrorIs(t, err, ErrStatusMismatch)

	err = Guard(OpSource, model.RoleProcurement, model.OrderStatusPendingProcurement)
	assert.ErrorIs(t, err, ErrStatusMismatch)
}

func TestGuardDelete(t *testing.T) {
	assert.NoError(t, Guard(OpDelete, model.RoleSiteSupervisor, model.OrderStatusPendingProcurement))
	assert.NoError(t, Guard(OpDelete, model.RoleChairman, model.OrderStatusPendingChairman))

	// Once approved the order is part of the sourcing record
	err := Guard(OpDelete, model.RoleSiteSupervisor, model.OrderStatusApproved)
	assert.ErrorIs(t, err, ErrStatusMismatch)

	err = Guard(OpDelete, model.RoleProcurement, model.OrderStatusPendingProcurement)
	assert.ErrorIs(t, err, ErrRoleNotAllowed)
}

func TestTerminalStatesHaveNoExits(t *testing.T) {
	for _, status := range []string{model.OrderStatusRejected, model.OrderStatusCompleted, model.OrderStatusCancelled} {
		assert.True(t, IsTerminal(status), status)
		for target := range transitions {
			assert.False(t, CanTransition(status, target), "%s -> %s", status, target)
		}
	}
}

func TestCancelReachableFromEveryNonTerminalState(t *testing.T) {
	for status := range transitions {
		if IsTerminal(status) {
			continue
		}
		assert.True(t, CanTransition(status, model.OrderStatusCancelled), status)
	}
}

func TestGuardStatusUpdateSupervisor(t *testing.T) {
	// Supervisors can only cancel
	assert.NoError(t, GuardStatusUpdate(model.RoleSiteSupervisor, model.OrderStatusPendingProcurement, model.OrderStatusCancelled))

	err := GuardStatusUpdate(model.RoleSiteSupervisor, model.OrderStatusPendingProcurement, model.OrderStatusPendingChairman)
	assert.ErrorIs(t, err, ErrRoleNotAllowed)
}

func TestGuardStatusUpdateProcurementPipeline(t *testing.T) {
	assert.NoError(t, GuardStatusUpdate(model.RoleProcurement, model.OrderStatusSourced, model.OrderStatusInProgress))
	assert.NoError(t, GuardStatusUpdate(model.RoleProcurement, model.OrderStatusInProgress, model.OrderStatusCompleted))

	// Reachability still applies even for allowed targets
	err := GuardStatusUpdate(model.RoleProcurement, model.OrderStatusPendingProcurement, model.OrderStatusSourcing)
	assert.ErrorIs(t, err, ErrStatusMismatch)
}

func TestGuardStatusUpdateUnknownTarget(t *testing.T) {
	err := GuardStatusUpdate(model.RoleChairman, model.OrderStatusApproved, "SHIPPED")
	assert.ErrorIs(t, err, ErrUnknownStatus)
}
