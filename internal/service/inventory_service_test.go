package service

import (
	"context"
	"testing"

	"github.com/waynemwendwa/TMS-sub000/internal/model"
	"github.com/waynemwendwa/TMS-sub000/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newInventoryService(db *gorm.DB) InventoryService {
	return NewInventoryService(
		repository.NewInventoryRepository(db),
		repository.NewAuditRepository(db),
		repository.NewTransactionManager(db),
	)
}

func TestInventoryCreateAndDuplicateCode(t *testing.T) {
	db := setupTestDB(t)
	svc := newInventoryService(db)
	ctx := context.Background()

	keeper := seedUser(t, db, "Store Keeper", model.RoleSiteSupervisor)

	item, err := svc.CreateItem(ctx, keeper.ID.String(), CreateInventoryItemRequest{
		Code: "CEM-42.5",
		Name: "Cement 42.5N",
		Unit: "bag",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, item.QuantityOnHand)

	_, err = svc.CreateItem(ctx, keeper.ID.String(), CreateInventoryItemRequest{
		Code: "CEM-42.5",
		Name: "Duplicate",
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestInventoryAdjustStock(t *testing.T) {
	db := setupTestDB(t)
	svc := newInventoryService(db)
	ctx := context.Background()

	keeper := seedUser(t, db, "Store Keeper", model.RoleSiteSupervisor)

	item, err := svc.CreateItem(ctx, keeper.ID.String(), CreateInventoryItemRequest{Code: "RBR-Y12", Name: "Rebar Y12"})
	require.NoError(t, err)
	id := item.ID.String()

	item, err = svc.AdjustStock(ctx, keeper.ID.String(), id, AdjustStockRequest{Delta: 100, Reason: "delivery"})
	require.NoError(t, err)
	assert.Equal(t, 100, item.QuantityOnHand)

	item, err = svc.AdjustStock(ctx, keeper.ID.String(), id, AdjustStockRequest{Delta: -30, Reason: "issued to site"})
	require.NoError(t, err)
	assert.Equal(t, 70, item.QuantityOnHand)

	logs, total, err := svc.StockLogs(ctx, id, 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, logs, 2)

	byDirection := map[string]model.StockLog{}
	for _, entry := range logs {
		byDirection[entry.Direction] = entry
	}
	assert.Equal(t, 100, byDirection[model.StockIn].QuantityChanged)
	assert.Equal(t, 100, byDirection[model.StockIn].QuantityAfter)
	assert.Equal(t, -30, byDirection[model.StockOut].QuantityChanged)
	assert.Equal(t, 70, byDirection[model.StockOut].QuantityAfter)
}

func TestInventoryAdjustStockRejectsNegativeBalance(t *testing.T) {
	db := setupTestDB(t)
	svc := newInventoryService(db)
	ctx := context.Background()

	keeper := seedUser(t, db, "Store Keeper", model.RoleSiteSupervisor)

	item, err := svc.CreateItem(ctx, keeper.ID.String(), CreateInventoryItemRequest{Code: "SND-01", Name: "River sand"})
	require.NoError(t, err)
	id := item.ID.String()

	_, err = svc.AdjustStock(ctx, keeper.ID.String(), id, AdjustStockRequest{Delta: 10})
	require.NoError(t, err)

	_, err = svc.AdjustStock(ctx, keeper.ID.String(), id, AdjustStockRequest{Delta: -11})
	assert.ErrorIs(t, err, ErrValidation)

	// The failed adjustment must leave no trace: quantity and logs unchanged
	var reloaded model.InventoryItem
	require.NoError(t, db.First(&reloaded, "id = ?", item.ID).Error)
	assert.Equal(t, 10, reloaded.QuantityOnHand)

	var logCount int64
	require.NoError(t, db.Model(&model.StockLog{}).Where("item_id = ?", item.ID).Count(&logCount).Error)
	assert.EqualValues(t, 1, logCount)
}
