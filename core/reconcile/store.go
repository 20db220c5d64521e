package reconcile

import (
	"context"
	"strings"
)

// Store is the storage collaborator a session commits against.
// Each call is one I/O-bound operation; timeout and retry policy belong to the store.
type Store interface {
	// CreateVariant persists a pending variant for a product and returns its storage id.
	CreateVariant(ctx context.Context, productID string, input CreateVariantInput) (string, error)

	// DeleteVariant removes an existing variant by storage id.
	DeleteVariant(ctx context.Context, variantID string) error
}

// VariantLoader fetches the existing variants of a product.
type VariantLoader interface {
	LoadVariants(ctx context.Context, productID string) ([]Variant, error)
}

// ToCreateInput translates a pending variant into a storage creation payload.
// Persisted option values are connected by id; the rest are passed for resolution by title.
// Prices are keyed by lower-cased currency code and region code.
func ToCreateInput(v Variant) CreateVariantInput {
	input := CreateVariantInput{
		Title:             v.Title,
		SKU:               v.SKU,
		Barcode:           v.Barcode,
		EAN:               v.EAN,
		UPC:               v.UPC,
		Material:          v.Material,
		InventoryQuantity: v.InventoryQuantity,
		ManageInventory:   v.ManageInventory,
		AllowBackorder:    v.AllowBackorder,
		HSCode:            v.HSCode,
		OriginCountry:     v.OriginCountry,
		MIDCode:           v.MIDCode,
		OptionValueIDs:    []string{},
		Prices:            make([]PriceInput, 0, len(v.Prices)),
	}

	for _, p := range v.OptionValues {
		if p.ValueID != "" && !IsPendingID(p.ValueID) {
			input.OptionValueIDs = append(input.OptionValueIDs, p.ValueID)
			continue
		}
		input.UnresolvedValues = append(input.UnresolvedValues, p)
	}

	for _, p := range v.Prices {
		input.Prices = append(input.Prices, PriceInput{
			Amount:        p.Amount,
			CompareAmount: p.CompareAmount,
			CurrencyCode:  strings.ToLower(p.Currency.Code),
			RegionCode:    p.Region.Code,
		})
	}
	return input
}
