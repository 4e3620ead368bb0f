package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Supplier represents a vendor the procurement office sources from
type Supplier struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Name          string          `gorm:"type:varchar(255);not null" json:"name"`
	CompanyName   string          `gorm:"type:varchar(255)" json:"company_name"`
	TaxCode       string          `gorm:"type:varchar(50)" json:"tax_code"`
	ContactPerson string          `gorm:"type:varchar(255)" json:"contact_person"`
	Phone         string          `gorm:"type:varchar(50)" json:"phone"`
	Email         string          `gorm:"type:varchar(255)" json:"email"`
	Rating        decimal.Decimal `gorm:"type:decimal(3,1);default:0" json:"rating"` // 0.0 - 5.0
	IsActive      bool            `gorm:"default:true" json:"is_active"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (s *Supplier) BeforeCreate(*gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// SupplierQuote is one supplier's offer for sourcing an approved order
type SupplierQuote struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	SupplierID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"supplier_id"`
	Supplier     *Supplier       `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
	OrderID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"order_id"`
	Price        decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"price"`
	LeadTimeDays int             `gorm:"type:int;not null" json:"lead_time_days"`
	ValidUntil   *time.Time      `json:"valid_until"`
	Notes        string          `gorm:"type:text" json:"notes"`
	CreatedAt    time.Time       `json:"created_at"`
}

func (q *SupplierQuote) BeforeCreate(*gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}
