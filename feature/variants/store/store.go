package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"catalog-manager/core/reconcile"
	"catalog-manager/feature/variants/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrProductNotFound is returned when a product id has no row.
	ErrProductNotFound = errors.New("product not found")
	// ErrVariantNotFound is returned when deleting a variant that does not exist.
	ErrVariantNotFound = errors.New("variant not found")
	// ErrInvalidID is returned for ids that are not database ids (including pending ids).
	ErrInvalidID = errors.New("invalid id")
	// ErrUnknownCurrency is returned when a price references a currency that is not stored.
	ErrUnknownCurrency = errors.New("unknown currency")
	// ErrUnknownRegion is returned when a price references a region that is not stored.
	ErrUnknownRegion = errors.New("unknown region")
)

// Store persists products, options and variants with gorm.
// It implements reconcile.Store and reconcile.VariantLoader.
type Store struct {
	db      *gorm.DB
	timeout time.Duration
}

// New creates a store. A positive timeout bounds every call.
func New(db *gorm.DB, timeout time.Duration) *Store {
	return &Store{db: db, timeout: timeout}
}

func (s *Store) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.timeout)
}

func parseID(kind, id string) (uint, error) {
	n, err := models.ParseID(id)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q", ErrInvalidID, kind, id)
	}
	return n, nil
}

// Product returns a product by id.
func (s *Store) Product(ctx context.Context, productID string) (*models.Product, error) {
	id, err := parseID("product", productID)
	if err != nil {
		return nil, err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var product models.Product
	if err := s.db.WithContext(ctx).First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrProductNotFound, productID)
		}
		return nil, fmt.Errorf("failed to load product %s: %w", productID, err)
	}
	return &product, nil
}

// LoadOptions returns the options of a product with their values, in display order.
func (s *Store) LoadOptions(ctx context.Context, productID string) ([]reconcile.Option, error) {
	id, err := parseID("product", productID)
	if err != nil {
		return nil, err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var rows []models.ProductOption
	err = s.db.WithContext(ctx).
		Preload("Values", func(db *gorm.DB) *gorm.DB { return db.Order("position, id") }).
		Where("product_id = ?", id).
		Order("position, id").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load options of product %s: %w", productID, err)
	}

	options := make([]reconcile.Option, 0, len(rows))
	for _, row := range rows {
		options = append(options, row.ToOption())
	}
	return options, nil
}

// LoadVariants returns the live variants of a product with prices and option values.
func (s *Store) LoadVariants(ctx context.Context, productID string) ([]reconcile.Variant, error) {
	id, err := parseID("product", productID)
	if err != nil {
		return nil, err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var rows []models.ProductVariant
	err = s.db.WithContext(ctx).
		Preload("Prices", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Preload("Prices.Currency").
		Preload("Prices.Region").
		Preload("OptionValues.Option").
		Where("product_id = ?", id).
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load variants of product %s: %w", productID, err)
	}

	stored := make([]reconcile.StoredVariant, 0, len(rows))
	for _, row := range rows {
		stored = append(stored, row.ToStored())
	}
	return reconcile.VariantsFromStored(stored), nil
}

// CreateVariant persists a pending variant in one transaction. Unresolved option
// values are looked up by option title and value and created when missing.
func (s *Store) CreateVariant(ctx context.Context, productID string, input reconcile.CreateVariantInput) (string, error) {
	pid, err := parseID("product", productID)
	if err != nil {
		return "", err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var created uint
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		valueIDs, err := resolveValues(tx, pid, input)
		if err != nil {
			return err
		}

		variant := models.ProductVariant{
			ProductID:         pid,
			Title:             input.Title,
			SKU:               input.SKU,
			Barcode:           input.Barcode,
			EAN:               input.EAN,
			UPC:               input.UPC,
			InventoryQuantity: input.InventoryQuantity,
			ManageInventory:   input.ManageInventory,
			AllowBackorder:    input.AllowBackorder,
			HSCode:            input.HSCode,
			OriginCountry:     input.OriginCountry,
			MIDCode:           input.MIDCode,
			Material:          input.Material,
		}
		if err := tx.Omit(clause.Associations).Create(&variant).Error; err != nil {
			return fmt.Errorf("failed to insert variant: %w", err)
		}

		if len(valueIDs) > 0 {
			links := make([]models.VariantOptionValue, 0, len(valueIDs))
			for _, vid := range valueIDs {
				links = append(links, models.VariantOptionValue{VariantID: variant.ID, OptionValueID: vid})
			}
			if err := tx.Create(&links).Error; err != nil {
				return fmt.Errorf("failed to link option values: %w", err)
			}
		}

		if len(input.Prices) > 0 {
			prices, err := connectPrices(tx, variant.ID, input.Prices)
			if err != nil {
				return err
			}
			if err := tx.Omit(clause.Associations).Create(&prices).Error; err != nil {
				return fmt.Errorf("failed to insert prices: %w", err)
			}
		}

		created = variant.ID
		return nil
	})
	if err != nil {
		return "", err
	}
	return models.FormatID(created), nil
}

// resolveValues returns the ids of every option value the variant links to.
// Duplicate ids are dropped.
func resolveValues(tx *gorm.DB, productID uint, input reconcile.CreateVariantInput) ([]uint, error) {
	ids := make([]uint, 0, len(input.OptionValueIDs)+len(input.UnresolvedValues))
	seen := make(map[uint]struct{})
	add := func(id uint) {
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	if len(input.OptionValueIDs) > 0 {
		known, err := productValueIDs(tx, productID, input.OptionValueIDs)
		if err != nil {
			return nil, err
		}
		for _, raw := range input.OptionValueIDs {
			id, _ := parseID("option value", raw)
			if _, ok := known[id]; !ok {
				return nil, fmt.Errorf("%w: option value %s does not belong to product %d", ErrInvalidID, raw, productID)
			}
			add(id)
		}
	}

	for _, pair := range input.UnresolvedValues {
		if pair.Option == "" || pair.Value == "" {
			return nil, fmt.Errorf("%w: option value %q/%q lacks a title or value", ErrInvalidID, pair.Option, pair.Value)
		}

		option := models.ProductOption{}
		err := tx.Where(models.ProductOption{ProductID: productID, Title: pair.Option}).
			Omit(clause.Associations).
			FirstOrCreate(&option).Error
		if err != nil {
			return nil, fmt.Errorf("failed to resolve option %q: %w", pair.Option, err)
		}

		value := models.ProductOptionValue{}
		err = tx.Where(models.ProductOptionValue{OptionID: option.ID, Value: pair.Value}).
			Attrs(models.ProductOptionValue{Label: pair.Value}).
			Omit(clause.Associations).
			FirstOrCreate(&value).Error
		if err != nil {
			return nil, fmt.Errorf("failed to resolve value %q of option %q: %w", pair.Value, pair.Option, err)
		}
		add(value.ID)
	}
	return ids, nil
}

// productValueIDs returns the subset of ids naming option values of the product.
func productValueIDs(tx *gorm.DB, productID uint, raw []string) (map[uint]struct{}, error) {
	ids := make([]uint, 0, len(raw))
	for _, r := range raw {
		id, err := parseID("option value", r)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	var found []uint
	err := tx.Model(&models.ProductOptionValue{}).
		Joins("JOIN product_options ON product_options.id = product_option_values.option_id").
		Where("product_options.product_id = ? AND product_option_values.id IN ?", productID, ids).
		Pluck("product_option_values.id", &found).Error
	if err != nil {
		return nil, fmt.Errorf("failed to check option values: %w", err)
	}

	known := make(map[uint]struct{}, len(found))
	for _, id := range found {
		known[id] = struct{}{}
	}
	return known, nil
}

// connectPrices resolves currency and region codes and builds price rows.
func connectPrices(tx *gorm.DB, variantID uint, inputs []reconcile.PriceInput) ([]models.VariantPrice, error) {
	prices := make([]models.VariantPrice, 0, len(inputs))
	for _, in := range inputs {
		code := strings.ToLower(in.CurrencyCode)

		var currency models.Currency
		if err := tx.Where("code = ?", code).First(&currency).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: %q", ErrUnknownCurrency, code)
			}
			return nil, fmt.Errorf("failed to resolve currency %q: %w", code, err)
		}

		var region models.Region
		if err := tx.Where("code = ?", in.RegionCode).First(&region).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: %q", ErrUnknownRegion, in.RegionCode)
			}
			return nil, fmt.Errorf("failed to resolve region %q: %w", in.RegionCode, err)
		}

		price := models.VariantPrice{
			VariantID:    variantID,
			Amount:       in.Amount,
			CurrencyCode: currency.Code,
			RegionCode:   region.Code,
		}
		if in.CompareAmount != nil {
			compare := *in.CompareAmount
			price.CompareAmount = &compare
		}
		prices = append(prices, price)
	}
	return prices, nil
}

// DeleteVariant soft-deletes a variant by id.
func (s *Store) DeleteVariant(ctx context.Context, variantID string) error {
	id, err := parseID("variant", variantID)
	if err != nil {
		return err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	res := s.db.WithContext(ctx).Delete(&models.ProductVariant{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete variant %s: %w", variantID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", ErrVariantNotFound, variantID)
	}
	return nil
}
