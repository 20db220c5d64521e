// Package models defines the gorm schema of the product catalog and its
// conversion into the types of core/reconcile.
//
// Variants link to option values through the variant_option_values join table.
// Prices reference currencies and regions by code.
package models
