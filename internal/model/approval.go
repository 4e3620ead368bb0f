package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ApprovalStatus enum constants
const (
	ApprovalPending     = "PENDING"
	ApprovalApproved    = "APPROVED"
	ApprovalRejected    = "REJECTED"
	ApprovalUnderReview = "UNDER_REVIEW"
)

// ApprovalPriority enum constants
const (
	PriorityLow    = "LOW"
	PriorityMedium = "MEDIUM"
	PriorityHigh   = "HIGH"
	PriorityUrgent = "URGENT"
)

// Notification type constants
const (
	NotifTypeApprovalRequest  = "APPROVAL_REQUEST"
	NotifTypeApprovalApproved = "APPROVAL_APPROVED"
	NotifTypeApprovalRejected = "APPROVAL_REJECTED"
)

// ApprovalRequest represents a single pending chairman decision over an
// order-template-linked procurement proposal.
type ApprovalRequest struct {
	ID              uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	Title           string           `gorm:"type:varchar(255);not null" json:"title"`
	Description     string           `gorm:"type:text" json:"description"`
	TotalAmount     *decimal.Decimal `gorm:"type:decimal(14,2)" json:"total_amount"`
	Status          string           `gorm:"type:varchar(20);not null;default:'PENDING';index" json:"status"`
	Priority        string           `gorm:"type:varchar(10);not null;default:'MEDIUM';index" json:"priority"`
	OrderTemplateID *uuid.UUID       `gorm:"type:uuid;index" json:"order_template_id"`
	OrderTemplate   *OrderTemplate   `gorm:"foreignKey:OrderTemplateID" json:"order_template,omitempty"`
	ProjectID       *uuid.UUID       `gorm:"type:uuid;index" json:"project_id"`
	Project         *Project         `gorm:"foreignKey:ProjectID" json:"project,omitempty"`

	RequestedBy uuid.UUID  `gorm:"type:uuid;not null;index" json:"requested_by"`
	Requester   *User      `gorm:"foreignKey:RequestedBy" json:"requester,omitempty"`
	ReviewedBy  *uuid.UUID `gorm:"type:uuid" json:"reviewed_by"`
	Reviewer    *User      `gorm:"foreignKey:ReviewedBy" json:"reviewer,omitempty"`
	ReviewedAt  *time.Time `json:"reviewed_at"`
	Comments    string     `gorm:"type:text" json:"comments"`

	Notifications []ApprovalNotification `gorm:"foreignKey:ApprovalRequestID" json:"notifications,omitempty"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *ApprovalRequest) BeforeCreate(*gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// ApprovalNotification is a fire-and-forget message to one user about one
// approval request; it only ever mutates by being marked read.
type ApprovalNotification struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ApprovalRequestID uuid.UUID `gorm:"type:uuid;not null;index" json:"approval_request_id"`
	UserID            uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Type              string    `gorm:"type:varchar(30);not null" json:"type"`
	Title             string    `gorm:"type:varchar(255);not null" json:"title"`
	Message           string    `gorm:"type:text;not null" json:"message"`
	IsRead            bool      `gorm:"not null;default:false;index" json:"is_read"`
	CreatedAt         time.Time `json:"created_at"`
}

func (n *ApprovalNotification) BeforeCreate(*gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
