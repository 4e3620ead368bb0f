package service

import (
	"context"
	"testing"

	"github.com/waynemwendwa/TMS-sub000/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedSupplier(t *testing.T, db *gorm.DB, name string, rating float64) *model.Supplier {
	t.Helper()

	supplier := &model.Supplier{
		Name:     name,
		Rating:   decimal.NewFromFloat(rating),
		IsActive: true,
	}
	require.NoError(t, db.Create(supplier).Error)
	return supplier
}

func TestSupplierCRUD(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSupplierService(db)
	ctx := context.Background()

	created, err := svc.Create(ctx, SupplierInput{Name: "Steelworks Ltd", Email: "sales@steelworks.example"})
	require.NoError(t, err)
	assert.True(t, created.IsActive)

	inactive := false
	updated, err := svc.Update(ctx, created.ID.String(), SupplierInput{Name: "Steelworks Ltd", IsActive: &inactive})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)

	require.NoError(t, svc.Delete(ctx, created.ID.String()))
	_, err = svc.Get(ctx, created.ID.String())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateQuoteValidation(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSupplierService(db)
	ctx := context.Background()

	supplier := seedSupplier(t, db, "Steelworks Ltd", 4.0)
	orderID := uuid.New().String()

	_, err := svc.CreateQuote(ctx, CreateQuoteInput{
		SupplierID:   supplier.ID.String(),
		OrderID:      orderID,
		Price:        decimal.NewFromInt(-5),
		LeadTimeDays: 7,
	})
	assert.ErrorIs(t, err, ErrValidation)

	quote, err := svc.CreateQuote(ctx, CreateQuoteInput{
		SupplierID:   supplier.ID.String(),
		OrderID:      orderID,
		Price:        decimal.NewFromInt(1000),
		LeadTimeDays: 7,
	})
	require.NoError(t, err)
	assert.Equal(t, supplier.ID, quote.SupplierID)
}

func TestCompareQuotesRanking(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSupplierService(db)
	ctx := context.Background()

	best := seedSupplier(t, db, "Best Offer Ltd", 5.0)
	pricey := seedSupplier(t, db, "Pricey Ltd", 5.0)
	slow := seedSupplier(t, db, "Slow Ltd", 5.0)
	orderID := uuid.New()

	mkQuote := func(supplier *model.Supplier, price int64, lead int) {
		_, err := svc.CreateQuote(ctx, CreateQuoteInput{
			SupplierID:   supplier.ID.String(),
			OrderID:      orderID.String(),
			Price:        decimal.NewFromInt(price),
			LeadTimeDays: lead,
		})
		require.NoError(t, err)
	}
	mkQuote(best, 1000, 5)
	mkQuote(pricey, 2000, 5)
	mkQuote(slow, 1000, 10)

	ranked, err := svc.CompareQuotes(ctx, orderID.String())
	require.NoError(t, err)
	require.Len(t, ranked, 3)

	// Cheapest and fastest with full rating: 50 + 30 + 20
	assert.Equal(t, best.ID, ranked[0].Quote.SupplierID)
	assert.True(t, ranked[0].Score.Equal(decimal.NewFromInt(100)), ranked[0].Score.String())

	// Double the price halves the price share: 25 + 30 + 20
	// Double the lead time halves the lead share: 50 + 15 + 20
	assert.Equal(t, slow.ID, ranked[1].Quote.SupplierID)
	assert.True(t, ranked[1].Score.Equal(decimal.NewFromInt(85)), ranked[1].Score.String())
	assert.Equal(t, pricey.ID, ranked[2].Quote.SupplierID)
	assert.True(t, ranked[2].Score.Equal(decimal.NewFromInt(75)), ranked[2].Score.String())
}

func TestCompareQuotesEmpty(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSupplierService(db)

	ranked, err := svc.CompareQuotes(context.Background(), uuid.New().String())
	require.NoError(t, err)
	assert.Empty(t, ranked)
}
