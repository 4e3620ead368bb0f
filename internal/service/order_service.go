package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/waynemwendwa/TMS-sub000/internal/model"
	"github.com/waynemwendwa/TMS-sub000/internal/repository"
	"github.com/waynemwendwa/TMS-sub000/internal/workflow"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// --- DTOs ---

type OrderItemInput struct {
	ItemCode    string           `json:"item_code" binding:"required"`
	Description string           `json:"description" binding:"required"`
	Unit        string           `json:"unit"`
	Quantity    int              `json:"quantity" binding:"required,gte=0"`
	UnitPrice   *decimal.Decimal `json:"unit_price"`
	TotalPrice  *decimal.Decimal `json:"total_price"`
	Remarks     string           `json:"remarks"`
}

type CreateOrderRequest struct {
	ProjectID    string           `json:"project_id" binding:"required"`
	Title        string           `json:"title" binding:"required"`
	Description  string           `json:"description"`
	RequiredDate *time.Time       `json:"required_date"`
	TotalAmount  *decimal.Decimal `json:"total_amount"`
	Remarks      string           `json:"remarks"`
	Items        []OrderItemInput `json:"items" binding:"required,min=1,dive"`
}

type OrderListFilter struct {
	Status    string
	ProjectID string
}

// OrderDetail decorates an order with its delivery count
type OrderDetail struct {
	model.Order
	DeliveryCount int64 `json:"delivery_count"`
}

// --- Interface ---

type OrderService interface {
	Create(ctx context.Context, userID, role string, req CreateOrderRequest) (*model.Order, error)
	List(ctx context.Context, userID, role string, filter OrderListFilter, page, limit int) ([]model.Order, int64, error)
	Get(ctx context.Context, userID, role, id string) (*OrderDetail, error)
	ApproveProcurement(ctx context.Context, userID, role, id string) (*model.Order, error)
	ApproveChairman(ctx context.Context, userID, role, id string, approved bool) (*model.Order, error)
	Source(ctx context.Context, userID, role, id string) (*model.Order, error)
	MarkSourced(ctx context.Context, userID, role, id string) (*model.Order, error)
	UpdateStatus(ctx context.Context, userID, role, id, target string) (*model.Order, error)
	Delete(ctx context.Context, userID, role, id string) error
}

type orderService struct {
	orderRepo   repository.OrderRepository
	projectRepo repository.ProjectRepository
	auditRepo   repository.AuditRepository
	txManager   repository.TransactionManager
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	projectRepo repository.ProjectRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
) OrderService {
	return &orderService{
		orderRepo:   orderRepo,
		projectRepo: projectRepo,
		auditRepo:   auditRepo,
		txManager:   txManager,
	}
}

// --- Order number generation ---

const orderNoCharset = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// generateOrderNo builds the user-visible order number: ORD- plus the last
// six digits of the epoch-millisecond clock plus three random base36 chars.
// Uniqueness is enforced by the index on order_no, not by this format.
func generateOrderNo() string {
	suffix := make([]byte, 3)
	for i := range suffix {
		suffix[i] = orderNoCharset[rand.IntN(len(orderNoCharset))]
	}
	return fmt.Sprintf("ORD-%06d-%s", time.Now().UnixMilli()%1_000_000, suffix)
}

// --- Implementation ---

func (s *orderService) Create(ctx context.Context, userID, role string, req CreateOrderRequest) (*model.Order, error) {
	if role != model.RoleSiteSupervisor {
		return nil, fmt.Errorf("%w: only site supervisors create orders", ErrForbidden)
	}

	actor, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user id", ErrValidation)
	}

	projectID, err := uuid.Parse(req.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid project_id", ErrValidation)
	}

	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: order needs at least one item", ErrValidation)
	}

	// Single-project invariant: the supervisor must hold an assignment for
	// exactly the target project.
	assignment, err := s.projectRepo.AssignmentForUser(ctx, actor)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: no project assignment", ErrForbidden)
		}
		return nil, fmt.Errorf("failed to resolve project assignment: %w", err)
	}
	if assignment.ProjectID != projectID {
		return nil, fmt.Errorf("%w: not assigned to this project", ErrForbidden)
	}

	var order model.Order

	// The unique index on order_no closes the collision window of the
	// timestamp+random format; on a duplicate the whole transaction is
	// retried with a fresh number.
	for attempt := 0; ; attempt++ {
		order = model.Order{
			OrderNo:      generateOrderNo(),
			ProjectID:    projectID,
			Title:        req.Title,
			Description:  req.Description,
			Status:       model.OrderStatusPendingProcurement,
			RequiredDate: req.RequiredDate,
			TotalAmount:  req.TotalAmount,
			Remarks:      req.Remarks,
			RequestedBy:  actor,
		}

		err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
			if createErr := s.orderRepo.Create(txCtx, &order); createErr != nil {
				return createErr
			}

			for _, itemReq := range req.Items {
				item := &model.OrderItem{
					OrderID:     order.ID,
					ItemCode:    itemReq.ItemCode,
					Description: itemReq.Description,
					Unit:        itemReq.Unit,
					Quantity:    itemReq.Quantity,
					UnitPrice:   itemReq.UnitPrice,
					TotalPrice:  itemReq.TotalPrice,
					Remarks:     itemReq.Remarks,
				}
				if itemErr := s.orderRepo.CreateItem(txCtx, item); itemErr != nil {
					return fmt.Errorf("failed to create order item: %w", itemErr)
				}
			}

			details, _ := json.Marshal(map[string]interface{}{
				"order_no":   order.OrderNo,
				"project_id": projectID.String(),
				"items":      len(req.Items),
			})
			audit := &model.AuditLog{
				UserID:     &actor,
				Action:     model.ActionCreateOrder,
				EntityID:   order.OrderNo,
				EntityName: order.Title,
				Details:    string(details),
			}
			return s.auditRepo.Log(txCtx, audit)
		})

		if err == nil {
			break
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) && attempt < 2 {
			continue
		}
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	return s.orderRepo.FindByIDWithItems(ctx, order.ID)
}

func (s *orderService) List(ctx context.Context, userID, role string, filter OrderListFilter, page, limit int) ([]model.Order, int64, error) {
	actor, err := uuid.Parse(userID)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: invalid user id", ErrValidation)
	}

	repoFilter := repository.OrderFilter{Status: filter.Status}

	// Requester tiers only ever see their own orders; procurement and
	// chairman tiers see everything.
	if role == model.RoleSiteSupervisor || role == model.RoleSupplier {
		repoFilter.RequestedBy = &actor
	}

	if filter.ProjectID != "" {
		pid, parseErr := uuid.Parse(filter.ProjectID)
		if parseErr != nil {
			return nil, 0, fmt.Errorf("%w: invalid project_id", ErrValidation)
		}
		repoFilter.ProjectID = &pid
	}

	return s.orderRepo.List(ctx, repoFilter, page, limit)
}

func (s *orderService) Get(ctx context.Context, userID, role, id string) (*OrderDetail, error) {
	orderID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: order %s", ErrNotFound, id)
	}

	order, err := s.orderRepo.FindByIDWithItems(ctx, orderID)
	if err != nil {
		return nil, orNotFound(err, "order "+id)
	}

	if role == model.RoleSiteSupervisor && order.RequestedBy.String() != userID {
		return nil, fmt.Errorf("%w: not your order", ErrForbidden)
	}

	deliveries, err := s.orderRepo.CountDeliveries(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to count deliveries: %w", err)
	}

	return &OrderDetail{Order: *order, DeliveryCount: deliveries}, nil
}

func (s *orderService) ApproveProcurement(ctx context.Context, userID, role, id string) (*model.Order, error) {
	return s.transition(ctx, userID, role, id, workflow.OpApproveProcurement,
		func(o *model.Order, actor uuid.UUID, now time.Time) {
			o.Status = model.OrderStatusPendingChairman
			o.ProcurementApprovedBy = &actor
			o.ProcurementApprovedAt = &now
		})
}

func (s *orderService) ApproveChairman(ctx context.Context, userID, role, id string, approved bool) (*model.Order, error) {
	target := model.OrderStatusApproved
	if !approved {
		target = model.OrderStatusRejected
	}
	return s.transition(ctx, userID, role, id, workflow.OpApproveChairman,
		func(o *model.Order, actor uuid.UUID, now time.Time) {
			o.Status = target
			o.ChairmanApprovedBy = &actor
			o.ChairmanApprovedAt = &now
		})
}

func (s *orderService) Source(ctx context.Context, userID, role, id string) (*model.Order, error) {
	return s.transition(ctx, userID, role, id, workflow.OpSource,
		func(o *model.Order, actor uuid.UUID, now time.Time) {
			o.Status = model.OrderStatusSourcing
			o.ProcurementSourcedBy = &actor
			o.ProcurementSourcedAt = &now
		})
}

func (s *orderService) MarkSourced(ctx context.Context, userID, role, id string) (*model.Order, error) {
	return s.transition(ctx, userID, role, id, workflow.OpMarkSourced,
		func(o *model.Order, actor uuid.UUID, now time.Time) {
			o.Status = model.OrderStatusSourced
		})
}

// transition runs one guarded state-machine operation: load, guard, apply,
// save, audit — all inside a single transaction.
func (s *orderService) transition(
	ctx context.Context,
	userID, role, id string,
	op workflow.Operation,
	apply func(o *model.Order, actor uuid.UUID, now time.Time),
) (*model.Order, error) {
	orderID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: order %s", ErrNotFound, id)
	}

	actor, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user id", ErrValidation)
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		order, findErr := s.orderRepo.FindByIDWithItems(txCtx, orderID)
		if findErr != nil {
			return orNotFound(findErr, "order "+id)
		}

		if guardErr := workflow.Guard(op, role, order.Status); guardErr != nil {
			return fromGuard(guardErr)
		}

		from := order.Status
		apply(order, actor, time.Now())

		if saveErr := s.orderRepo.Save(txCtx, order); saveErr != nil {
			return fmt.Errorf("failed to update order: %w", saveErr)
		}

		details, _ := json.Marshal(map[string]interface{}{
			"operation": string(op),
			"from":      from,
			"to":        order.Status,
		})
		audit := &model.AuditLog{
			UserID:     &actor,
			Action:     model.ActionOrderTransition,
			EntityID:   order.OrderNo,
			EntityName: order.Title,
			Details:    string(details),
		}
		return s.auditRepo.Log(txCtx, audit)
	})

	if err != nil {
		return nil, err
	}

	return s.orderRepo.FindByIDWithItems(ctx, orderID)
}

func (s *orderService) UpdateStatus(ctx context.Context, userID, role, id, target string) (*model.Order, error) {
	orderID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: order %s", ErrNotFound, id)
	}

	actor, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user id", ErrValidation)
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		order, findErr := s.orderRepo.FindByIDWithItems(txCtx, orderID)
		if findErr != nil {
			return orNotFound(findErr, "order "+id)
		}

		// Supervisors can only touch their own orders
		if role == model.RoleSiteSupervisor && order.RequestedBy != actor {
			return fmt.Errorf("%w: not your order", ErrForbidden)
		}

		if guardErr := workflow.GuardStatusUpdate(role, order.Status, target); guardErr != nil {
			return fromGuard(guardErr)
		}

		from := order.Status
		order.Status = target

		if saveErr := s.orderRepo.Save(txCtx, order); saveErr != nil {
			return fmt.Errorf("failed to update order status: %w", saveErr)
		}

		details, _ := json.Marshal(map[string]interface{}{
			"operation": "update-status",
			"from":      from,
			"to":        target,
		})
		audit := &model.AuditLog{
			UserID:     &actor,
			Action:     model.ActionOrderTransition,
			EntityID:   order.OrderNo,
			EntityName: order.Title,
			Details:    string(details),
		}
		return s.auditRepo.Log(txCtx, audit)
	})

	if err != nil {
		return nil, err
	}

	return s.orderRepo.FindByIDWithItems(ctx, orderID)
}

func (s *orderService) Delete(ctx context.Context, userID, role, id string) error {
	orderID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("%w: order %s", ErrNotFound, id)
	}

	actor, err := uuid.Parse(userID)
	if err != nil {
		return fmt.Errorf("%w: invalid user id", ErrValidation)
	}

	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		order, findErr := s.orderRepo.FindByIDWithItems(txCtx, orderID)
		if findErr != nil {
			return orNotFound(findErr, "order "+id)
		}

		if guardErr := workflow.Guard(workflow.OpDelete, role, order.Status); guardErr != nil {
			return fromGuard(guardErr)
		}

		// Supervisors may only delete orders they created
		if role == model.RoleSiteSupervisor && order.RequestedBy != actor {
			return fmt.Errorf("%w: not your order", ErrForbidden)
		}

		if delErr := s.orderRepo.Delete(txCtx, orderID); delErr != nil {
			return fmt.Errorf("failed to delete order: %w", delErr)
		}

		details, _ := json.Marshal(map[string]interface{}{
			"order_no": order.OrderNo,
			"status":   order.Status,
		})
		audit := &model.AuditLog{
			UserID:     &actor,
			Action:     model.ActionDeleteOrder,
			EntityID:   order.OrderNo,
			EntityName: order.Title,
			Details:    string(details),
		}
		return s.auditRepo.Log(txCtx, audit)
	})
}
