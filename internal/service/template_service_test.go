package service

import (
	"context"
	"testing"

	"github.com/waynemwendwa/TMS-sub000/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateCreateAndDelete(t *testing.T) {
	db := setupTestDB(t)
	svc := NewTemplateService(db)
	ctx := context.Background()

	officer := seedUser(t, db, "Procurement Officer", model.RoleProcurement)

	template, err := svc.Create(ctx, officer.ID.String(), CreateTemplateInput{
		Title: "Roofing package",
		Items: []TemplateItemInput{
			{Description: "Iron sheets", Unit: "pc", Quantity: 120, Amount: decimal.NewFromInt(3600)},
			{Description: "Roofing nails", Unit: "kg", Quantity: 25, Amount: decimal.NewFromInt(125)},
		},
	})
	require.NoError(t, err)
	assert.Len(t, template.Items, 2)
	require.NotNil(t, template.CreatedBy)
	assert.Equal(t, officer.ID, *template.CreatedBy)

	require.NoError(t, svc.Delete(ctx, template.ID.String()))

	_, err = svc.Get(ctx, template.ID.String())
	assert.ErrorIs(t, err, ErrNotFound)

	// Items go with the template
	var itemCount int64
	require.NoError(t, db.Model(&model.OrderTemplateItem{}).Where("order_template_id = ?", template.ID).Count(&itemCount).Error)
	assert.EqualValues(t, 0, itemCount)
}
