package models

import (
	"strconv"

	"catalog-manager/core/reconcile"
)

// FormatID renders a database id in the string form used by the reconcile engine.
func FormatID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

// ParseID parses a string id produced by FormatID.
func ParseID(id string) (uint, error) {
	n, err := strconv.ParseUint(id, 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(n), nil
}

// ToOption converts a stored option with preloaded values.
func (o ProductOption) ToOption() reconcile.Option {
	opt := reconcile.Option{
		ID:     FormatID(o.ID),
		Title:  o.Title,
		Values: make([]reconcile.OptionValue, 0, len(o.Values)),
	}
	for _, v := range o.Values {
		opt.Values = append(opt.Values, reconcile.OptionValue{
			ID:    FormatID(v.ID),
			Value: v.Value,
			Label: v.Label,
		})
	}
	return opt
}

// ToStored converts an option value with its preloaded option into the stored
// shape understood by reconcile.PairFromStored.
func (v ProductOptionValue) ToStored() reconcile.StoredOptionValue {
	return reconcile.StoredOptionValue{
		ID:    FormatID(v.ID),
		Value: v.Value,
		ProductOption: reconcile.StoredOption{
			ID:    FormatID(v.OptionID),
			Title: v.Option.Title,
		},
	}
}

// ToPrice converts a stored price with preloaded currency and region.
func (p VariantPrice) ToPrice() reconcile.Price {
	price := reconcile.Price{
		ID:       FormatID(p.ID),
		Amount:   p.Amount,
		Currency: reconcile.Currency{Code: p.CurrencyCode, Symbol: p.Currency.Symbol},
		Region:   reconcile.Region{Code: p.RegionCode, Name: p.Region.Name},
	}
	if p.CompareAmount != nil {
		compare := *p.CompareAmount
		price.CompareAmount = &compare
	}
	return price
}

// ToStored converts a variant with preloaded prices and option values.
func (v ProductVariant) ToStored() reconcile.StoredVariant {
	stored := reconcile.StoredVariant{
		Variant: reconcile.Variant{
			ID:                FormatID(v.ID),
			Title:             v.Title,
			SKU:               v.SKU,
			Barcode:           v.Barcode,
			EAN:               v.EAN,
			UPC:               v.UPC,
			InventoryQuantity: v.InventoryQuantity,
			ManageInventory:   v.ManageInventory,
			AllowBackorder:    v.AllowBackorder,
			HSCode:            v.HSCode,
			OriginCountry:     v.OriginCountry,
			MIDCode:           v.MIDCode,
			Material:          v.Material,
			Prices:            make([]reconcile.Price, 0, len(v.Prices)),
		},
		ProductOptionValues: make([]reconcile.StoredOptionValue, 0, len(v.OptionValues)),
	}
	for _, p := range v.Prices {
		stored.Prices = append(stored.Prices, p.ToPrice())
	}
	for _, ov := range v.OptionValues {
		stored.ProductOptionValues = append(stored.ProductOptionValues, ov.ToStored())
	}
	return stored
}
