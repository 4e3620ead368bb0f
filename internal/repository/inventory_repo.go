package repository

import (
	"context"

	"github.com/waynemwendwa/TMS-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type InventoryRepository interface {
	Create(ctx context.Context, item *model.InventoryItem) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.InventoryItem, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.InventoryItem, error)
	List(ctx context.Context, page, limit int) ([]model.InventoryItem, int64, error)
	Update(ctx context.Context, item *model.InventoryItem) error
	Delete(ctx context.Context, id uuid.UUID) error
	CreateStockLog(ctx context.Context, entry *model.StockLog) error
	ListStockLogs(ctx context.Context, itemID uuid.UUID, page, limit int) ([]model.StockLog, int64, error)
}

type inventoryRepository struct {
	db *gorm.DB
}

func NewInventoryRepository(db *gorm.DB) InventoryRepository {
	return &inventoryRepository{db: db}
}

func (r *inventoryRepository) Create(ctx context.Context, item *model.InventoryItem) error {
	return GetDB(ctx, r.db).Create(item).Error
}

func (r *inventoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.InventoryItem, error) {
	var item model.InventoryItem
	if err := GetDB(ctx, r.db).First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// FindByIDForUpdate takes a row lock so concurrent stock adjustments
// serialize on the item. SQLite has no SELECT FOR UPDATE; its writes are
// serialized by the database itself.
func (r *inventoryRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.InventoryItem, error) {
	db := GetDB(ctx, r.db)
	if db.Dialector.Name() != "sqlite" {
		db = db.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var item model.InventoryItem
	if err := db.First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *inventoryRepository) List(ctx context.Context, page, limit int) ([]model.InventoryItem, int64, error) {
	var items []model.InventoryItem
	var total int64

	db := GetDB(ctx, r.db)
	if err := db.Model(&model.InventoryItem{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Order("code asc").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (r *inventoryRepository) Update(ctx context.Context, item *model.InventoryItem) error {
	return GetDB(ctx, r.db).Save(item).Error
}

func (r *inventoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Delete(&model.InventoryItem{}, "id = ?", id).Error
}

func (r *inventoryRepository) CreateStockLog(ctx context.Context, entry *model.StockLog) error {
	return GetDB(ctx, r.db).Create(entry).Error
}

func (r *inventoryRepository) ListStockLogs(ctx context.Context, itemID uuid.UUID, page, limit int) ([]model.StockLog, int64, error) {
	var logs []model.StockLog
	var total int64

	db := GetDB(ctx, r.db).Model(&model.StockLog{}).Where("item_id = ?", itemID)
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Order("created_at desc").Offset(offset).Limit(limit).Find(&logs).Error; err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}
