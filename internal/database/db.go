package database

import (
	"log"

	"github.com/waynemwendwa/TMS-sub000/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewConnection initializes a new connection pool using GORM.
// TranslateError is on so duplicate-key violations surface as
// gorm.ErrDuplicatedKey (order number regeneration relies on it).
func NewConnection(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		log.Println("WARNING: Failed to auto-migrate models:", err)
	}

	return db, nil
}

// Migrate runs AutoMigrate for every model. Exposed separately so tests can
// run it against their own (sqlite) connection.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.RefreshToken{},
		&model.Project{},
		&model.ProjectAssignment{},
		&model.BOQItem{},
		&model.Order{},
		&model.OrderItem{},
		&model.Delivery{},
		&model.OrderTemplate{},
		&model.OrderTemplateItem{},
		&model.ApprovalRequest{},
		&model.ApprovalNotification{},
		&model.Supplier{},
		&model.SupplierQuote{},
		&model.InventoryItem{},
		&model.StockLog{},
		&model.ProcurementPlan{},
		&model.ProcurementPlanItem{},
		&model.Document{},
		&model.AuditLog{},
	)
}
