package repository

import (
	"context"

	"github.com/waynemwendwa/TMS-sub000/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderFilter narrows order listings. Zero values mean "no filter".
type OrderFilter struct {
	RequestedBy *uuid.UUID
	ProjectID   *uuid.UUID
	Status      string
}

type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	CreateItem(ctx context.Context, item *model.OrderItem) error
	FindByIDWithItems(ctx context.Context, id uuid.UUID) (*model.Order, error)
	Save(ctx context.Context, order *model.Order) error
	List(ctx context.Context, filter OrderFilter, page, limit int) ([]model.Order, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CountDeliveries(ctx context.Context, id uuid.UUID) (int64, error)
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(ctx context.Context, order *model.Order) error {
	// Omit associations so items are inserted explicitly, one row at a time,
	// inside the caller's transaction.
	return GetDB(ctx, r.db).Omit("Items").Create(order).Error
}

func (r *orderRepository) CreateItem(ctx context.Context, item *model.OrderItem) error {
	return GetDB(ctx, r.db).Create(item).Error
}

func (r *orderRepository) FindByIDWithItems(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	var order model.Order
	if err := GetDB(ctx, r.db).
		Preload("Items").
		Preload("Project").
		Preload("Requester").
		First(&order, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) Save(ctx context.Context, order *model.Order) error {
	return GetDB(ctx, r.db).Omit("Items", "Deliveries").Save(order).Error
}

func (r *orderRepository) List(ctx context.Context, filter OrderFilter, page, limit int) ([]model.Order, int64, error) {
	var orders []model.Order
	var total int64

	db := GetDB(ctx, r.db).Model(&model.Order{})
	if filter.RequestedBy != nil {
		db = db.Where("requested_by = ?", *filter.RequestedBy)
	}
	if filter.ProjectID != nil {
		db = db.Where("project_id = ?", *filter.ProjectID)
	}
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.
		Preload("Items").
		Preload("Project").
		Preload("Requester").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&orders).Error; err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

func (r *orderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	db := GetDB(ctx, r.db)
	if err := db.Where("order_id = ?", id).Delete(&model.OrderItem{}).Error; err != nil {
		return err
	}
	return db.Delete(&model.Order{}, "id = ?", id).Error
}

func (r *orderRepository) CountDeliveries(ctx context.Context, id uuid.UUID) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.Delivery{}).Where("order_id = ?", id).Count(&count).Error
	return count, err
}
