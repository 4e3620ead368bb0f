package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role constants for the procurement hierarchy
const (
	RoleSiteSupervisor     = "SITE_SUPERVISOR"
	RoleProcurement        = "PROCUREMENT"
	RoleFinanceProcurement = "FINANCE_PROCUREMENT"
	RoleChairman           = "CHAIRMAN"
	RoleChairmanPA         = "CHAIRMAN_PA"
	RoleSupplier           = "SUPPLIER"
)

// AllRoles lists every role the system accepts
var AllRoles = []string{
	RoleSiteSupervisor,
	RoleProcurement,
	RoleFinanceProcurement,
	RoleChairman,
	RoleChairmanPA,
	RoleSupplier,
}

// IsValidRole reports whether role is one of the defined role constants
func IsValidRole(role string) bool {
	for _, r := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}

// IsChairmanTier reports whether role carries chairman-level privilege
func IsChairmanTier(role string) bool {
	return role == RoleChairman || role == RoleChairmanPA
}

// IsProcurementTier reports whether role belongs to the procurement office
func IsProcurementTier(role string) bool {
	return role == RoleProcurement || role == RoleFinanceProcurement
}

// User represents the central user entity for logic and database structure
type User struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string         `gorm:"type:varchar(255);not null" json:"name"`
	Email     string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Phone     string         `gorm:"type:varchar(20)" json:"phone"`
	Password  string         `gorm:"type:varchar(255);not null" json:"-"` // Omit password from JSON requests/responses
	Role      string         `gorm:"type:varchar(50);not null;index" json:"role"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"` // GORM soft delete
}

func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// RefreshToken stores long-lived tokens allowing users to request new access tokens
type RefreshToken struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Token     string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"token"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (t *RefreshToken) BeforeCreate(*gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
