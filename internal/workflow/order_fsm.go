package workflow

import (
	"errors"
	"fmt"
	"strings"

	"github.com/waynemwendwa/TMS-sub000/internal/model"
)

// Guard failures. Services translate these into the HTTP-facing taxonomy.
var (
	ErrRoleNotAllowed = errors.New("role not allowed for this operation")
	ErrStatusMismatch = errors.New("order status does not permit this operation")
	ErrUnknownStatus  = errors.New("unknown order status")
)

// Operation identifies one order workflow operation
type Operation string

const (
	OpApproveProcurement Operation = "approve-procurement"
	OpApproveChairman    Operation = "approve-chairman"
	OpSource             Operation = "source"
	OpMarkSourced        Operation = "sourced"
	OpDelete             Operation = "delete"
)

// rule is one row of the permission table: which roles may run the
// operation and which current statuses permit it.
type rule struct {
	roles []string
	from  []string
}

var rules = map[Operation]rule{
	OpApproveProcurement: {
		roles: []string{model.RoleProcurement, model.RoleFinanceProcurement},
		from:  []string{model.OrderStatusPendingProcurement},
	},
	OpApproveChairman: {
		roles: []string{model.RoleChairman, model.RoleChairmanPA},
		from:  []string{model.OrderStatusPendingChairman},
	},
	OpSource: {
		roles: []string{model.RoleProcurement, model.RoleFinanceProcurement},
		from:  []string{model.OrderStatusApproved},
	},
	OpMarkSourced: {
		roles: []string{model.RoleProcurement, model.RoleFinanceProcurement},
		from:  []string{model.OrderStatusSourcing},
	},
	OpDelete: {
		// Creator ownership for supervisors is checked by the service;
		// the table covers the role and status dimensions.
		roles: []string{model.RoleSiteSupervisor, model.RoleChairman, model.RoleChairmanPA},
		from:  []string{model.OrderStatusPendingProcurement, model.OrderStatusPendingChairman},
	},
}

// transitions is the adjacency map of the order state machine. CANCELLED is
// reachable from every non-terminal state.
var transitions = map[string][]string{
	model.OrderStatusPendingProcurement: {model.OrderStatusPendingChairman, model.OrderStatusCancelled},
	model.OrderStatusPendingChairman:    {model.OrderStatusApproved, model.OrderStatusRejected, model.OrderStatusCancelled},
	model.OrderStatusApproved:           {model.OrderStatusSourcing, model.OrderStatusCancelled},
	model.OrderStatusSourcing:           {model.OrderStatusSourced, model.OrderStatusCancelled},
	model.OrderStatusSourced:            {model.OrderStatusInProgress, model.OrderStatusCancelled},
	model.OrderStatusInProgress:         {model.OrderStatusCompleted, model.OrderStatusCancelled},
	model.OrderStatusRejected:           {},
	model.OrderStatusCompleted:          {},
	model.OrderStatusCancelled:          {},
}

// genericTargets is the allow-list for the generic status-update path:
// which target statuses each role may request.
var genericTargets = map[string][]string{
	model.RoleSiteSupervisor:     {model.OrderStatusCancelled},
	model.RoleProcurement:        {model.OrderStatusSourcing, model.OrderStatusSourced, model.OrderStatusInProgress, model.OrderStatusCompleted},
	model.RoleFinanceProcurement: {model.OrderStatusSourcing, model.OrderStatusSourced, model.OrderStatusInProgress, model.OrderStatusCompleted},
	model.RoleChairman: {
		model.OrderStatusPendingProcurement, model.OrderStatusPendingChairman,
		model.OrderStatusApproved, model.OrderStatusRejected,
		model.OrderStatusSourcing, model.OrderStatusSourced,
		model.OrderStatusInProgress, model.OrderStatusCompleted,
		model.OrderStatusCancelled,
	},
	model.RoleChairmanPA: {
		model.OrderStatusPendingProcurement, model.OrderStatusPendingChairman,
		model.OrderStatusApproved, model.OrderStatusRejected,
		model.OrderStatusSourcing, model.OrderStatusSourced,
		model.OrderStatusInProgress, model.OrderStatusCompleted,
		model.OrderStatusCancelled,
	},
}

// IsKnownStatus reports whether status is one of the defined order states
func IsKnownStatus(status string) bool {
	_, ok := transitions[status]
	return ok
}

// IsTerminal reports whether status permits no further transitions
func IsTerminal(status string) bool {
	next, ok := transitions[status]
	return ok && len(next) == 0
}

// CanTransition reports whether the state machine permits from → to
func CanTransition(from, to string) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Guard is the single gate for the dedicated transition operations.
// It checks the role allow-list first, then the current-status precondition,
// so a denied role never learns about status internals.
func Guard(op Operation, role, current string) error {
	r, ok := rules[op]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownStatus, op)
	}
	if !contains(r.roles, role) {
		return fmt.Errorf("%w: %s may not %s", ErrRoleNotAllowed, role, op)
	}
	if !contains(r.from, current) {
		return fmt.Errorf("%w: %s requires status %s, order is %s",
			ErrStatusMismatch, op, strings.Join(r.from, " or "), current)
	}
	return nil
}

// GuardStatusUpdate gates the generic status-update path: the target must be
// on the caller's role allow-list and reachable from the current status.
func GuardStatusUpdate(role, current, target string) error {
	if !IsKnownStatus(target) {
		return fmt.Errorf("%w: %q", ErrUnknownStatus, target)
	}
	if !contains(genericTargets[role], target) {
		return fmt.Errorf("%w: %s may not set status %s", ErrRoleNotAllowed, role, target)
	}
	if !CanTransition(current, target) {
		return fmt.Errorf("%w: cannot move from %s to %s", ErrStatusMismatch, current, target)
	}
	return nil
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
