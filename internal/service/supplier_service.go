package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/waynemwendwa/TMS-sub000/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// --- DTOs ---

type SupplierInput struct {
	Name          string           `json:"name" binding:"required"`
	CompanyName   string           `json:"company_name"`
	TaxCode       string           `json:"tax_code"`
	ContactPerson string           `json:"contact_person"`
	Phone         string           `json:"phone"`
	Email         string           `json:"email" binding:"omitempty,email"`
	Rating        *decimal.Decimal `json:"rating"`
	IsActive      *bool            `json:"is_active"`
}

type CreateQuoteInput struct {
	SupplierID   string          `json:"supplier_id" binding:"required"`
	OrderID      string          `json:"order_id" binding:"required"`
	Price        decimal.Decimal `json:"price" binding:"required"`
	LeadTimeDays int             `json:"lead_time_days" binding:"required,gt=0"`
	Notes        string          `json:"notes"`
}

// QuoteComparison decorates one quote with its weighted score
type QuoteComparison struct {
	Quote model.SupplierQuote `json:"quote"`
	Score decimal.Decimal     `json:"score"`
}

// --- Interface ---

type SupplierService interface {
	Create(ctx context.Context, req SupplierInput) (*model.Supplier, error)
	List(ctx context.Context, page, limit int) ([]model.Supplier, int64, error)
	Get(ctx context.Context, id string) (*model.Supplier, error)
	Update(ctx context.Context, id string, req SupplierInput) (*model.Supplier, error)
	Delete(ctx context.Context, id string) error
	CreateQuote(ctx context.Context, req CreateQuoteInput) (*model.SupplierQuote, error)
	CompareQuotes(ctx context.Context, orderID string) ([]QuoteComparison, error)
}

type supplierService struct {
	db *gorm.DB
}

func NewSupplierService(db *gorm.DB) SupplierService {
	return &supplierService{db: db}
}

// --- Implementation ---

func (s *supplierService) Create(ctx context.Context, req SupplierInput) (*model.Supplier, error) {
	supplier := model.Supplier{
		Name:          req.Name,
		CompanyName:   req.CompanyName,
		TaxCode:       req.TaxCode,
		ContactPerson: req.ContactPerson,
		Phone:         req.Phone,
		Email:         req.Email,
		IsActive:      true,
	}
	if req.Rating != nil {
		supplier.Rating = *req.Rating
	}
	if req.IsActive != nil {
		supplier.IsActive = *req.IsActive
	}

	if err := s.db.WithContext(ctx).Create(&supplier).Error; err != nil {
		return nil, fmt.Errorf("failed to create supplier: %w", err)
	}

	return &supplier, nil
}

func (s *supplierService) List(ctx context.Context, page, limit int) ([]model.Supplier, int64, error) {
	var suppliers []model.Supplier
	var total int64

	if err := s.db.WithContext(ctx).Model(&model.Supplier{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	offset := (page - 1) * limit

	if err := s.db.WithContext(ctx).
		Order("name asc").
		Offset(offset).Limit(limit).
		Find(&suppliers).Error; err != nil {
		return nil, 0, err
	}

	return suppliers, total, nil
}

func (s *supplierService) Get(ctx context.Context, id string) (*model.Supplier, error) {
	supplierID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: supplier %s", ErrNotFound, id)
	}

	var supplier model.Supplier
	if err := s.db.WithContext(ctx).First(&supplier, "id = ?", supplierID).Error; err != nil {
		return nil, orNotFound(err, "supplier "+id)
	}

	return &supplier, nil
}

func (s *supplierService) Update(ctx context.Context, id string, req SupplierInput) (*model.Supplier, error) {
	supplier, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	supplier.Name = req.Name
	supplier.CompanyName = req.CompanyName
	supplier.TaxCode = req.TaxCode
	supplier.ContactPerson = req.ContactPerson
	supplier.Phone = req.Phone
	supplier.Email = req.Email
	if req.Rating != nil {
		supplier.Rating = *req.Rating
	}
	if req.IsActive != nil {
		supplier.IsActive = *req.IsActive
	}

	if err := s.db.WithContext(ctx).Save(supplier).Error; err != nil {
		return nil, fmt.Errorf("failed to update supplier: %w", err)
	}

	return supplier, nil
}

func (s *supplierService) Delete(ctx context.Context, id string) error {
	supplier, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Delete(supplier).Error
}

func (s *supplierService) CreateQuote(ctx context.Context, req CreateQuoteInput) (*model.SupplierQuote, error) {
	supplierID, err := uuid.Parse(req.SupplierID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid supplier_id", ErrValidation)
	}
	orderID, err := uuid.Parse(req.OrderID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid order_id", ErrValidation)
	}

	if !req.Price.IsPositive() {
		return nil, fmt.Errorf("%w: price must be positive", ErrValidation)
	}

	var supplier model.Supplier
	if err := s.db.WithContext(ctx).First(&supplier, "id = ?", supplierID).Error; err != nil {
		return nil, orNotFound(err, "supplier "+req.SupplierID)
	}

	quote := model.SupplierQuote{
		SupplierID:   supplierID,
		OrderID:      orderID,
		Price:        req.Price,
		LeadTimeDays: req.LeadTimeDays,
		Notes:        req.Notes,
	}
	if err := s.db.WithContext(ctx).Create(&quote).Error; err != nil {
		return nil, fmt.Errorf("failed to create quote: %w", err)
	}

	return &quote, nil
}

// Comparison weights: cheapest price carries half the score, shortest lead
// time 30%, supplier rating the remaining 20%.
var (
	priceWeight  = decimal.NewFromInt(50)
	leadWeight   = decimal.NewFromInt(30)
	ratingWeight = decimal.NewFromInt(4) // rating is 0-5, so x4 caps at 20
)

// CompareQuotes scores all quotes submitted for an order and returns them
// best-first. The best price and best lead time each earn the full weight;
// worse offers earn a proportional share.
func (s *supplierService) CompareQuotes(ctx context.Context, orderID string) ([]QuoteComparison, error) {
	oid, err := uuid.Parse(orderID)
	if err != nil {
		return nil, fmt.Errorf("%w: order %s", ErrNotFound, orderID)
	}

	var quotes []model.SupplierQuote
	if err := s.db.WithContext(ctx).
		Preload("Supplier").
		Where("order_id = ?", oid).
		Find(&quotes).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch quotes: %w", err)
	}

	if len(quotes) == 0 {
		return []QuoteComparison{}, nil
	}

	bestPrice := quotes[0].Price
	bestLead := quotes[0].LeadTimeDays
	for _, q := range quotes[1:] {
		if q.Price.LessThan(bestPrice) {
			bestPrice = q.Price
		}
		if q.LeadTimeDays < bestLead {
			bestLead = q.LeadTimeDays
		}
	}

	result := make([]QuoteComparison, 0, len(quotes))
	for _, q := range quotes {
		score := decimal.Zero

		if q.Price.IsPositive() {
			score = score.Add(bestPrice.Div(q.Price).Mul(priceWeight))
		}
		if q.LeadTimeDays > 0 {
			ratio := decimal.NewFromInt(int64(bestLead)).Div(decimal.NewFromInt(int64(q.LeadTimeDays)))
			score = score.Add(ratio.Mul(leadWeight))
		}
		if q.Supplier != nil {
			score = score.Add(q.Supplier.Rating.Mul(ratingWeight))
		}

		result = append(result, QuoteComparison{Quote: q, Score: score.Round(2)})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Score.GreaterThan(result[j].Score)
	})

	return result, nil
}
