package store

import (
	"context"
	"fmt"
	"strings"

	"catalog-manager/core/database"
	"catalog-manager/feature/variants/models"
)

// requiredColumns lists the columns the store reads or writes, per table.
var requiredColumns = map[string][]string{
	"products":              {"id", "title"},
	"product_options":       {"id", "product_id", "title", "position"},
	"product_option_values": {"id", "option_id", "value", "label", "position"},
	"product_variants": {
		"id", "product_id", "title", "sku", "barcode", "ean", "upc",
		"inventory_quantity", "manage_inventory", "allow_backorder",
		"hs_code", "origin_country", "mid_code", "material", "deleted_at",
	},
	"variant_option_values": {"variant_id", "option_value_id"},
	"variant_prices":        {"id", "variant_id", "amount", "compare_amount", "currency_code", "region_code"},
	"currencies":            {"code", "symbol"},
	"regions":               {"code", "name"},
}

// Migrate creates or updates the catalog tables.
func (s *Store) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("failed to migrate catalog schema: %w", err)
	}
	return nil
}

// CheckSchema verifies that an existing database carries every column the store uses.
func (s *Store) CheckSchema(ctx context.Context) error {
	db := s.db.WithContext(ctx)

	var problems []string
	for _, table := range sortedTables() {
		missing, err := database.MissingColumns(db, table, requiredColumns[table])
		if err != nil {
			return err
		}
		if len(missing) > 0 {
			problems = append(problems, fmt.Sprintf("%s(%s)", table, strings.Join(missing, ", ")))
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("catalog schema is missing columns: %s", strings.Join(problems, "; "))
	}
	return nil
}

func sortedTables() []string {
	return []string{
		"currencies",
		"regions",
		"products",
		"product_options",
		"product_option_values",
		"product_variants",
		"variant_option_values",
		"variant_prices",
	}
}
