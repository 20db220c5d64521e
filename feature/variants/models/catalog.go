package models

import (
	"time"

	"gorm.io/gorm"
)

// Product is a catalog product owning options and variants.
type Product struct {
	ID        uint             `gorm:"column:id;primaryKey"`
	Title     string           `gorm:"column:title;type:varchar(255);not null"`
	Handle    string           `gorm:"column:handle;type:varchar(255);uniqueIndex"`
	Options   []ProductOption  `gorm:"foreignKey:ProductID"`
	Variants  []ProductVariant `gorm:"foreignKey:ProductID"`
	CreatedAt time.Time        `gorm:"column:created_at"`
	UpdatedAt time.Time        `gorm:"column:updated_at"`
}

func (Product) TableName() string {
	return "products"
}

// ProductOption is a product attribute such as "Size".
type ProductOption struct {
	ID        uint                 `gorm:"column:id;primaryKey"`
	ProductID uint                 `gorm:"column:product_id;index;not null"`
	Title     string               `gorm:"column:title;type:varchar(255);not null"`
	Position  int                  `gorm:"column:position;default:0"`
	Values    []ProductOptionValue `gorm:"foreignKey:OptionID"`
}

func (ProductOption) TableName() string {
	return "product_options"
}

// ProductOptionValue is one allowed value of an option.
type ProductOptionValue struct {
	ID       uint          `gorm:"column:id;primaryKey"`
	OptionID uint          `gorm:"column:option_id;index;not null"`
	Value    string        `gorm:"column:value;type:varchar(255);not null"`
	Label    string        `gorm:"column:label;type:varchar(255)"`
	Position int           `gorm:"column:position;default:0"`
	Option   ProductOption `gorm:"foreignKey:OptionID"`
}

func (ProductOptionValue) TableName() string {
	return "product_option_values"
}

// ProductVariant is a sellable SKU. Deletion is soft.
type ProductVariant struct {
	ID                uint                 `gorm:"column:id;primaryKey"`
	ProductID         uint                 `gorm:"column:product_id;index;not null"`
	Title             string               `gorm:"column:title;type:varchar(255)"`
	SKU               string               `gorm:"column:sku;type:varchar(255);index"`
	Barcode           string               `gorm:"column:barcode;type:varchar(255)"`
	EAN               string               `gorm:"column:ean;type:varchar(32)"`
	UPC               string               `gorm:"column:upc;type:varchar(32)"`
	InventoryQuantity int                  `gorm:"column:inventory_quantity;default:0"`
	ManageInventory   bool                 `gorm:"column:manage_inventory;default:false"`
	AllowBackorder    bool                 `gorm:"column:allow_backorder;default:false"`
	HSCode            string               `gorm:"column:hs_code;type:varchar(32)"`
	OriginCountry     string               `gorm:"column:origin_country;type:varchar(2)"`
	MIDCode           string               `gorm:"column:mid_code;type:varchar(64)"`
	Material          string               `gorm:"column:material;type:varchar(255)"`
	Prices            []VariantPrice       `gorm:"foreignKey:VariantID"`
	OptionValues      []ProductOptionValue `gorm:"many2many:variant_option_values;joinForeignKey:VariantID;joinReferences:OptionValueID"`
	CreatedAt         time.Time            `gorm:"column:created_at"`
	UpdatedAt         time.Time            `gorm:"column:updated_at"`
	DeletedAt         gorm.DeletedAt       `gorm:"column:deleted_at;index"`
}

func (ProductVariant) TableName() string {
	return "product_variants"
}

// VariantPrice is a variant price in minor units for one region.
type VariantPrice struct {
	ID            uint     `gorm:"column:id;primaryKey"`
	VariantID     uint     `gorm:"column:variant_id;index;not null"`
	Amount        int64    `gorm:"column:amount;not null"`
	CompareAmount *int64   `gorm:"column:compare_amount;default:NULL"`
	CurrencyCode  string   `gorm:"column:currency_code;type:varchar(3);not null"`
	RegionCode    string   `gorm:"column:region_code;type:varchar(64);not null"`
	Currency      Currency `gorm:"foreignKey:CurrencyCode;references:Code"`
	Region        Region   `gorm:"foreignKey:RegionCode;references:Code"`
}

func (VariantPrice) TableName() string {
	return "variant_prices"
}

// Currency is keyed by its lower-case ISO code.
type Currency struct {
	Code   string `gorm:"column:code;primaryKey;type:varchar(3)"`
	Symbol string `gorm:"column:symbol;type:varchar(8)"`
}

func (Currency) TableName() string {
	return "currencies"
}

// Region is a pricing region.
type Region struct {
	Code string `gorm:"column:code;primaryKey;type:varchar(64)"`
	Name string `gorm:"column:name;type:varchar(255)"`
}

func (Region) TableName() string {
	return "regions"
}

// All lists every catalog model in migration order.
func All() []any {
	return []any{
		&Currency{},
		&Region{},
		&Product{},
		&ProductOption{},
		&ProductOptionValue{},
		&ProductVariant{},
		&VariantPrice{},
	}
}

// VariantOptionValue is a row of the variant/option value join table.
type VariantOptionValue struct {
	VariantID     uint `gorm:"column:variant_id;primaryKey"`
	OptionValueID uint `gorm:"column:option_value_id;primaryKey"`
}

func (VariantOptionValue) TableName() string {
	return "variant_option_values"
}
