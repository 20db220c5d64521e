package store

import (
	"context"
	"errors"
	"testing"

	"catalog-manager/core/database"
	"catalog-manager/core/reconcile"
	"catalog-manager/feature/variants/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// setupStore returns a migrated in-memory store seeded with one product
// having Size (S, M) and Color (Red), the eur currency and the eu region.
func setupStore(t *testing.T) (*Store, *gorm.DB, models.Product) {
	t.Helper()

	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)

	s := New(db, 0)
	require.NoError(t, s.Migrate(context.Background()))

	require.NoError(t, db.Create(&models.Currency{Code: "eur", Symbol: "€"}).Error)
	require.NoError(t, db.Create(&models.Region{Code: "eu", Name: "Europe"}).Error)

	product := models.Product{
		Title:  "T-Shirt",
		Handle: "t-shirt",
		Options: []models.ProductOption{
			{Title: "Size", Position: 0, Values: []models.ProductOptionValue{
				{Value: "S", Position: 0},
				{Value: "M", Position: 1},
			}},
			{Title: "Color", Position: 1, Values: []models.ProductOptionValue{
				{Value: "Red"},
			}},
		},
	}
	require.NoError(t, db.Create(&product).Error)
	return s, db, product
}

func valueID(p models.Product, option, value string) string {
	for _, o := range p.Options {
		if o.Title != option {
			continue
		}
		for _, v := range o.Values {
			if v.Value == value {
				return models.FormatID(v.ID)
			}
		}
	}
	return ""
}

func setupMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	})

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}
	return New(db, 0), mock
}

func TestStore_LoadOptions(t *testing.T) {
	s, _, product := setupStore(t)

	options, err := s.LoadOptions(context.Background(), models.FormatID(product.ID))
	require.NoError(t, err)
	require.Len(t, options, 2)
	assert.Equal(t, "Size", options[0].Title)
	assert.Equal(t, "S", options[0].Values[0].Value)
	assert.Equal(t, "M", options[0].Values[1].Value)
	assert.Equal(t, "Color", options[1].Title)
}

func TestStore_CreateAndLoadVariant(t *testing.T) {
	s, db, product := setupStore(t)
	ctx := context.Background()
	pid := models.FormatID(product.ID)

	compare := int64(2500)
	id, err := s.CreateVariant(ctx, pid, reconcile.CreateVariantInput{
		Title:             "S / Red / Wool",
		SKU:               "TS-S-RED",
		InventoryQuantity: 100,
		OptionValueIDs:    []string{valueID(product, "Size", "S"), valueID(product, "Color", "Red")},
		UnresolvedValues:  []reconcile.OptionValuePair{{Option: "Material", Value: "Wool"}},
		Prices:            []reconcile.PriceInput{{Amount: 2000, CompareAmount: &compare, CurrencyCode: "EUR", RegionCode: "eu"}},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	// The unresolved value was created under a new option
	var material models.ProductOption
	require.NoError(t, db.Preload("Values").Where("title = ?", "Material").First(&material).Error)
	require.Len(t, material.Values, 1)
	assert.Equal(t, "Wool", material.Values[0].Value)

	variants, err := s.LoadVariants(ctx, pid)
	require.NoError(t, err)
	require.Len(t, variants, 1)

	v := variants[0]
	assert.Equal(t, id, v.ID)
	assert.Equal(t, "TS-S-RED", v.SKU)
	assert.Equal(t, 100, v.InventoryQuantity)
	assert.Len(t, v.OptionValues, 3)
	assert.True(t, reconcile.OptionValuesMatch(v.OptionValues, []reconcile.OptionValuePair{
		{Option: "Material", Value: "Wool"},
		{Option: "Color", Value: "Red"},
		{Option: "Size", Value: "S"},
	}))
	require.Len(t, v.Prices, 1)
	assert.Equal(t, int64(2000), v.Prices[0].Amount)
	assert.Equal(t, int64(2500), *v.Prices[0].CompareAmount)
	assert.Equal(t, "eur", v.Prices[0].Currency.Code)
	assert.Equal(t, "€", v.Prices[0].Currency.Symbol)
	assert.Equal(t, "Europe", v.Prices[0].Region.Name)
}

func TestStore_CreateVariantReusesResolvedValues(t *testing.T) {
	s, db, product := setupStore(t)
	ctx := context.Background()
	pid := models.FormatID(product.ID)

	for _, title := range []string{"S / Wool", "M / Wool"} {
		_, err := s.CreateVariant(ctx, pid, reconcile.CreateVariantInput{
			Title:            title,
			UnresolvedValues: []reconcile.OptionValuePair{{Option: "Material", Value: "Wool"}},
		})
		require.NoError(t, err)
	}

	var count int64
	require.NoError(t, db.Model(&models.ProductOptionValue{}).Where("value = ?", "Wool").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestStore_CreateVariantRollsBack(t *testing.T) {
	s, db, product := setupStore(t)
	ctx := context.Background()
	pid := models.FormatID(product.ID)

	_, err := s.CreateVariant(ctx, pid, reconcile.CreateVariantInput{
		Title:          "S",
		OptionValueIDs: []string{valueID(product, "Size", "S")},
		Prices:         []reconcile.PriceInput{{Amount: 100, CurrencyCode: "usd", RegionCode: "eu"}},
	})
	assert.ErrorIs(t, err, ErrUnknownCurrency)

	_, err = s.CreateVariant(ctx, pid, reconcile.CreateVariantInput{
		Title:  "M",
		Prices: []reconcile.PriceInput{{Amount: 100, CurrencyCode: "eur", RegionCode: "us"}},
	})
	assert.ErrorIs(t, err, ErrUnknownRegion)

	var count int64
	require.NoError(t, db.Model(&models.ProductVariant{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestStore_CreateVariantRejectsForeignValues(t *testing.T) {
	s, db, product := setupStore(t)
	ctx := context.Background()
	pid := models.FormatID(product.ID)

	mug := models.Product{
		Title:  "Mug",
		Handle: "mug",
		Options: []models.ProductOption{
			{Title: "Size", Values: []models.ProductOptionValue{{Value: "XL"}}},
		},
	}
	require.NoError(t, db.Create(&mug).Error)

	tests := []struct {
		name string
		ids  []string
	}{
		{"OtherProduct", []string{valueID(mug, "Size", "XL")}},
		{"Nonexistent", []string{"9999"}},
		{"MixedWithValid", []string{valueID(product, "Size", "S"), "9999"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.CreateVariant(ctx, pid, reconcile.CreateVariantInput{Title: "XL", OptionValueIDs: tt.ids})
			assert.ErrorIs(t, err, ErrInvalidID)
		})
	}

	var count int64
	require.NoError(t, db.Model(&models.ProductVariant{}).Count(&count).Error)
	assert.Zero(t, count)

	variants, err := s.LoadVariants(ctx, pid)
	require.NoError(t, err)
	assert.Empty(t, variants)
}

func TestStore_DeleteVariant(t *testing.T) {
	s, _, product := setupStore(t)
	ctx := context.Background()
	pid := models.FormatID(product.ID)

	id, err := s.CreateVariant(ctx, pid, reconcile.CreateVariantInput{Title: "S", OptionValueIDs: []string{valueID(product, "Size", "S")}})
	require.NoError(t, err)

	require.NoError(t, s.DeleteVariant(ctx, id))

	variants, err := s.LoadVariants(ctx, pid)
	require.NoError(t, err)
	assert.Empty(t, variants)

	assert.ErrorIs(t, s.DeleteVariant(ctx, id), ErrVariantNotFound)
	assert.ErrorIs(t, s.DeleteVariant(ctx, "new-1700000000000-abcdef123"), ErrInvalidID)
}

func TestStore_Product(t *testing.T) {
	s, _, product := setupStore(t)
	ctx := context.Background()

	got, err := s.Product(ctx, models.FormatID(product.ID))
	require.NoError(t, err)
	assert.Equal(t, "T-Shirt", got.Title)

	_, err = s.Product(ctx, "999")
	assert.ErrorIs(t, err, ErrProductNotFound)

	_, err = s.Product(ctx, "abc")
	assert.ErrorIs(t, err, ErrInvalidID)
}

func TestStore_CheckSchema(t *testing.T) {
	s, _, _ := setupStore(t)
	assert.NoError(t, s.CheckSchema(context.Background()))

	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	err = New(db, 0).CheckSchema(context.Background())
	assert.ErrorContains(t, err, "product_variants")
}

func TestStore_LoadVariantsDBError(t *testing.T) {
	s, mock := setupMockStore(t)

	mock.ExpectQuery("SELECT \\* FROM `product_variants`").WillReturnError(errors.New("connection reset"))

	_, err := s.LoadVariants(context.Background(), "1")
	assert.ErrorContains(t, err, "connection reset")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_DeleteVariantDBError(t *testing.T) {
	s, mock := setupMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `product_variants` SET `deleted_at`").WillReturnError(errors.New("lock wait timeout"))
	mock.ExpectRollback()

	err := s.DeleteVariant(context.Background(), "5")
	assert.ErrorContains(t, err, "lock wait timeout")
	assert.NotErrorIs(t, err, ErrVariantNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
