package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderStatus constants. Terminal states never transition again.
const (
	OrderStatusPendingProcurement = "PENDING_PROCUREMENT"
	OrderStatusPendingChairman    = "PENDING_CHAIRMAN"
	OrderStatusApproved           = "APPROVED"
	OrderStatusRejected           = "REJECTED"
	OrderStatusSourcing           = "SOURCING"
	OrderStatusSourced            = "SOURCED"
	OrderStatusInProgress         = "IN_PROGRESS"
	OrderStatusCompleted          = "COMPLETED"
	OrderStatusCancelled          = "CANCELLED"
)

// Order represents a procurement request raised by a site supervisor.
// The order number is immutable once created; status moves only through
// the workflow transitions.
type Order struct {
	ID           uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	OrderNo      string           `gorm:"type:varchar(30);uniqueIndex;not null" json:"order_no"`
	ProjectID    uuid.UUID        `gorm:"type:uuid;not null;index" json:"project_id"`
	Project      *Project         `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Title        string           `gorm:"type:varchar(255);not null" json:"title"`
	Description  string           `gorm:"type:text" json:"description"`
	Status       string           `gorm:"type:varchar(30);not null;default:'PENDING_PROCUREMENT';index" json:"status"`
	RequiredDate *time.Time       `json:"required_date"`
	TotalAmount  *decimal.Decimal `gorm:"type:decimal(14,2)" json:"total_amount"`
	Remarks      string           `gorm:"type:text" json:"remarks"`

	RequestedBy uuid.UUID `gorm:"type:uuid;not null;index" json:"requested_by"`
	Requester   *User     `gorm:"foreignKey:RequestedBy" json:"requester,omitempty"`

	// Stamp pairs: each By/At is set together by exactly one transition
	ProcurementApprovedBy *uuid.UUID `gorm:"type:uuid" json:"procurement_approved_by"`
	ProcurementApprover   *User      `gorm:"foreignKey:ProcurementApprovedBy" json:"procurement_approver,omitempty"`
	ProcurementApprovedAt *time.Time `json:"procurement_approved_at"`

	ChairmanApprovedBy *uuid.UUID `gorm:"type:uuid" json:"chairman_approved_by"`
	ChairmanApprover   *User      `gorm:"foreignKey:ChairmanApprovedBy" json:"chairman_approver,omitempty"`
	ChairmanApprovedAt *time.Time `json:"chairman_approved_at"`

	ProcurementSourcedBy *uuid.UUID `gorm:"type:uuid" json:"procurement_sourced_by"`
	ProcurementSourcer   *User      `gorm:"foreignKey:ProcurementSourcedBy" json:"procurement_sourcer,omitempty"`
	ProcurementSourcedAt *time.Time `json:"procurement_sourced_at"`

	Items      []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	Deliveries []Delivery  `gorm:"foreignKey:OrderID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (o *Order) BeforeCreate(*gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// OrderItem is a line item owned exclusively by one Order, created
// atomically with it and never independently afterwards.
type OrderItem struct {
	ID          uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID     uuid.UUID        `gorm:"type:uuid;not null;index" json:"order_id"`
	ItemCode    string           `gorm:"type:varchar(50);not null" json:"item_code"`
	Description string           `gorm:"type:text;not null" json:"description"`
	Unit        string           `gorm:"type:varchar(20)" json:"unit"`
	Quantity    int              `gorm:"type:int;not null" json:"quantity"`
	UnitPrice   *decimal.Decimal `gorm:"type:decimal(14,2)" json:"unit_price"`
	TotalPrice  *decimal.Decimal `gorm:"type:decimal(14,2)" json:"total_price"`
	Remarks     string           `gorm:"type:text" json:"remarks"`
	CreatedAt   time.Time        `json:"created_at"`
}

func (i *OrderItem) BeforeCreate(*gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// Delivery records goods arriving against an order. Order detail responses
// only expose the count.
type Delivery struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"order_id"`
	DeliveredAt time.Time  `gorm:"not null" json:"delivered_at"`
	ReceivedBy  *uuid.UUID `gorm:"type:uuid" json:"received_by"`
	Note        string     `gorm:"type:text" json:"note"`
	CreatedAt   time.Time  `json:"created_at"`
}

func (d *Delivery) BeforeCreate(*gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
