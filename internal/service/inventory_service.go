package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/waynemwendwa/TMS-sub000/internal/model"
	"github.com/waynemwendwa/TMS-sub000/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// --- DTOs ---

type CreateInventoryItemRequest struct {
	Code         string  `json:"code" binding:"required"`
	Name         string  `json:"name" binding:"required"`
	Unit         string  `json:"unit"`
	ReorderLevel int     `json:"reorder_level" binding:"omitempty,gte=0"`
	ProjectID    *string `json:"project_id"`
}

type UpdateInventoryItemRequest struct {
	Code         string `json:"code" binding:"required"`
	Name         string `json:"name" binding:"required"`
	Unit         string `json:"unit"`
	ReorderLevel int    `json:"reorder_level" binding:"omitempty,gte=0"`
}

// AdjustStockRequest moves stock in (positive delta) or out (negative delta)
type AdjustStockRequest struct {
	Delta   int     `json:"delta" binding:"required"`
	Reason  string  `json:"reason"`
	OrderID *string `json:"order_id"`
}

// --- Interface ---

type InventoryService interface {
	CreateItem(ctx context.Context, userID string, req CreateInventoryItemRequest) (*model.InventoryItem, error)
	ListItems(ctx context.Context, page, limit int) ([]model.InventoryItem, int64, error)
	UpdateItem(ctx context.Context, userID, id string, req UpdateInventoryItemRequest) (*model.InventoryItem, error)
	DeleteItem(ctx context.Context, userID, id string) error
	AdjustStock(ctx context.Context, userID, id string, req AdjustStockRequest) (*model.InventoryItem, error)
	StockLogs(ctx context.Context, id string, page, limit int) ([]model.StockLog, int64, error)
}

type inventoryService struct {
	inventoryRepo repository.InventoryRepository
	auditRepo     repository.AuditRepository
	txManager     repository.TransactionManager
}

func NewInventoryService(
	inventoryRepo repository.InventoryRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
) InventoryService {
	return &inventoryService{
		inventoryRepo: inventoryRepo,
		auditRepo:     auditRepo,
		txManager:     txManager,
	}
}

// --- Implementation ---

func (s *inventoryService) CreateItem(ctx context.Context, userID string, req CreateInventoryItemRequest) (*model.InventoryItem, error) {
	item := model.InventoryItem{
		Code:         req.Code,
		Name:         req.Name,
		Unit:         req.Unit,
		ReorderLevel: req.ReorderLevel,
	}

	if req.ProjectID != nil && *req.ProjectID != "" {
		pid, err := uuid.Parse(*req.ProjectID)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid project_id", ErrValidation)
		}
		item.ProjectID = &pid
	}

	if err := s.inventoryRepo.Create(ctx, &item); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: item code already exists", ErrValidation)
		}
		return nil, fmt.Errorf("failed to create inventory item: %w", err)
	}

	return &item, nil
}

func (s *inventoryService) ListItems(ctx context.Context, page, limit int) ([]model.InventoryItem, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	return s.inventoryRepo.List(ctx, page, limit)
}

func (s *inventoryService) UpdateItem(ctx context.Context, userID, id string, req UpdateInventoryItemRequest) (*model.InventoryItem, error) {
	itemID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: inventory item %s", ErrNotFound, id)
	}

	item, err := s.inventoryRepo.FindByID(ctx, itemID)
	if err != nil {
		return nil, orNotFound(err, "inventory item "+id)
	}

	item.Code = req.Code
	item.Name = req.Name
	item.Unit = req.Unit
	item.ReorderLevel = req.ReorderLevel

	if err := s.inventoryRepo.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to update inventory item: %w", err)
	}

	return item, nil
}

func (s *inventoryService) DeleteItem(ctx context.Context, userID, id string) error {
	itemID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("%w: inventory item %s", ErrNotFound, id)
	}

	if _, err := s.inventoryRepo.FindByID(ctx, itemID); err != nil {
		return orNotFound(err, "inventory item "+id)
	}

	return s.inventoryRepo.Delete(ctx, itemID)
}

// AdjustStock applies the delta to the item and writes the stock log in one
// transaction; the pair is all-or-nothing.
func (s *inventoryService) AdjustStock(ctx context.Context, userID, id string, req AdjustStockRequest) (*model.InventoryItem, error) {
	itemID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: inventory item %s", ErrNotFound, id)
	}

	var actor *uuid.UUID
	if parsed, parseErr := uuid.Parse(userID); parseErr == nil {
		actor = &parsed
	}

	var orderID *uuid.UUID
	if req.OrderID != nil && *req.OrderID != "" {
		oid, parseErr := uuid.Parse(*req.OrderID)
		if parseErr != nil {
			return nil, fmt.Errorf("%w: invalid order_id", ErrValidation)
		}
		orderID = &oid
	}

	var item *model.InventoryItem
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		var findErr error
		item, findErr = s.inventoryRepo.FindByIDForUpdate(txCtx, itemID)
		if findErr != nil {
			return orNotFound(findErr, "inventory item "+id)
		}

		after := item.QuantityOnHand + req.Delta
		if after < 0 {
			return fmt.Errorf("%w: insufficient stock (current: %d, requested: %d)",
				ErrValidation, item.QuantityOnHand, req.Delta)
		}

		item.QuantityOnHand = after
		if updateErr := s.inventoryRepo.Update(txCtx, item); updateErr != nil {
			return fmt.Errorf("failed to update stock: %w", updateErr)
		}

		direction := model.StockIn
		if req.Delta < 0 {
			direction = model.StockOut
		}

		entry := &model.StockLog{
			ItemID:          item.ID,
			OrderID:         orderID,
			Direction:       direction,
			QuantityChanged: req.Delta,
			QuantityAfter:   after,
			AdjustedBy:      actor,
			Reason:          req.Reason,
		}
		if logErr := s.inventoryRepo.CreateStockLog(txCtx, entry); logErr != nil {
			return fmt.Errorf("failed to record stock log: %w", logErr)
		}

		details, _ := json.Marshal(map[string]interface{}{
			"delta":  req.Delta,
			"after":  after,
			"reason": req.Reason,
		})
		audit := &model.AuditLog{
			UserID:     actor,
			Action:     model.ActionStockAdjust,
			EntityID:   item.Code,
			EntityName: item.Name,
			Details:    string(details),
		}
		return s.auditRepo.Log(txCtx, audit)
	})

	if err != nil {
		return nil, err
	}

	return item, nil
}

func (s *inventoryService) StockLogs(ctx context.Context, id string, page, limit int) ([]model.StockLog, int64, error) {
	itemID, err := uuid.Parse(id)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: inventory item %s", ErrNotFound, id)
	}
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	return s.inventoryRepo.ListStockLogs(ctx, itemID, page, limit)
}
