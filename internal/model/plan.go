package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProcurementPlanStatus enum constants
const (
	PlanStatusDraft = "DRAFT"
	PlanStatusFinal = "FINAL"
)

// ProcurementPlan is a periodic sourcing plan for a project
type ProcurementPlan struct {
	ID          uuid.UUID             `gorm:"type:uuid;primaryKey" json:"id"`
	ProjectID   uuid.UUID             `gorm:"type:uuid;not null;index" json:"project_id"`
	Project     *Project              `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Title       string                `gorm:"type:varchar(255);not null" json:"title"`
	Status      string                `gorm:"type:varchar(10);not null;default:'DRAFT'" json:"status"`
	PeriodStart time.Time             `gorm:"not null" json:"period_start"`
	PeriodEnd   time.Time             `gorm:"not null" json:"period_end"`
	CreatedBy   *uuid.UUID            `gorm:"type:uuid" json:"created_by"`
	Items       []ProcurementPlanItem `gorm:"foreignKey:PlanID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt   time.Time             `json:"created_at"`
	UpdatedAt   time.Time             `json:"updated_at"`
}

func (p *ProcurementPlan) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// ProcurementPlanItem is one planned purchase line
type ProcurementPlanItem struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	PlanID        uuid.UUID       `gorm:"type:uuid;not null;index" json:"plan_id"`
	Description   string          `gorm:"type:text;not null" json:"description"`
	Unit          string          `gorm:"type:varchar(20)" json:"unit"`
	Quantity      int             `gorm:"type:int;not null" json:"quantity"`
	EstimatedCost decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"estimated_cost"`
	TargetDate    *time.Time      `json:"target_date"`
	CreatedAt     time.Time       `json:"created_at"`
}

func (i *ProcurementPlanItem) BeforeCreate(*gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
