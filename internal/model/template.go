package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderTemplate is the itemized document approval requests are raised over.
// It is a separate, simpler aggregate than Order.
type OrderTemplate struct {
	ID          uuid.UUID           `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string              `gorm:"type:varchar(255);not null" json:"title"`
	Description string              `gorm:"type:text" json:"description"`
	ProjectID   *uuid.UUID          `gorm:"type:uuid;index" json:"project_id"`
	Project     *Project            `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	CreatedBy   *uuid.UUID          `gorm:"type:uuid" json:"created_by"`
	Items       []OrderTemplateItem `gorm:"foreignKey:OrderTemplateID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

func (t *OrderTemplate) BeforeCreate(*gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// OrderTemplateItem is one costed line of a template; Amount feeds the
// derived total of an ApprovalRequest.
type OrderTemplateItem struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	OrderTemplateID uuid.UUID       `gorm:"type:uuid;not null;index" json:"order_template_id"`
	Description     string          `gorm:"type:text;not null" json:"description"`
	Unit            string          `gorm:"type:varchar(20)" json:"unit"`
	Quantity        int             `gorm:"type:int;not null" json:"quantity"`
	Amount          decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"amount"`
	CreatedAt       time.Time       `json:"created_at"`
}

func (i *OrderTemplateItem) BeforeCreate(*gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
