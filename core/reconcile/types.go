package reconcile

import "strings"

// PendingIDPrefix marks identifiers that were generated locally and never sent to storage.
const PendingIDPrefix = "new-"

// OptionValue is one allowed value of an Option.
// ID is empty for values that have not been persisted yet.
type OptionValue struct {
	ID    string `json:"id,omitempty"`
	Value string `json:"value"`
	Label string `json:"label,omitempty"`
}

// Option is a product attribute (e.g. "Size") with its ordered set of values.
type Option struct {
	ID     string        `json:"id,omitempty"`
	Title  string        `json:"title"`
	Values []OptionValue `json:"values"`
}

// OptionValuePair is the unit of a combination: one value chosen for one option.
// Two pairs are equal when Option and Value match; ids are carried for commit only.
type OptionValuePair struct {
	// Option is the parent option title.
	Option string `json:"option"`

	// Value is the value string.
	Value string `json:"value"`

	// OptionID is the persisted option id, empty for pending options.
	OptionID string `json:"optionId,omitempty"`

	// ValueID is the persisted option value id, empty for pending values.
	ValueID string `json:"valueId,omitempty"`
}

// Currency identifies the currency of a price.
type Currency struct {
	Code   string `json:"code"`
	Symbol string `json:"symbol,omitempty"`
}

// Region identifies the region a price applies to.
type Region struct {
	Code string `json:"code"`
	Name string `json:"name,omitempty"`
}

// Price is a variant price in integer minor units.
// A variant carries at most one price per region.
type Price struct {
	ID            string   `json:"id"`
	Amount        int64    `json:"amount"`
	CompareAmount *int64   `json:"compareAmount,omitempty"`
	Currency      Currency `json:"currency"`
	Region        Region   `json:"region"`
}

// Variant is a sellable SKU corresponding to one value per option.
// Existing variants carry storage ids; pending variants carry ids prefixed with PendingIDPrefix.
type Variant struct {
	ID                string            `json:"id"`
	Title             string            `json:"title"`
	SKU               string            `json:"sku"`
	Barcode           string            `json:"barcode"`
	EAN               string            `json:"ean"`
	UPC               string            `json:"upc"`
	InventoryQuantity int               `json:"inventoryQuantity"`
	ManageInventory   bool              `json:"manageInventory"`
	AllowBackorder    bool              `json:"allowBackorder"`
	HSCode            string            `json:"hsCode"`
	OriginCountry     string            `json:"originCountry"`
	MIDCode           string            `json:"midCode"`
	Material          string            `json:"material"`
	Prices            []Price           `json:"prices"`
	OptionValues      []OptionValuePair `json:"optionValues"`
}

// IsPending reports whether the variant only exists locally.
func (v Variant) IsPending() bool {
	return IsPendingID(v.ID)
}

// IsPendingID reports whether id is a locally generated identifier.
func IsPendingID(id string) bool {
	return strings.HasPrefix(id, PendingIDPrefix)
}

// DriftResult classifies the variant universe of a product.
// ToDelete and Unchanged partition the existing variants; ToCreate holds pending variants.
type DriftResult struct {
	ToCreate  []Variant    `json:"toCreate"`
	ToDelete  []Variant    `json:"toDelete"`
	Unchanged []Variant    `json:"unchanged"`
	Summary   DriftSummary `json:"summary"`
}

// DriftSummary provides aggregate counts for a drift computation.
type DriftSummary struct {
	// Combinations is the size of the Cartesian product of the current options.
	Combinations int `json:"combinations"`

	// Existing is the number of existing variants considered.
	Existing int `json:"existing"`

	// ToCreate counts pending variants.
	ToCreate int `json:"toCreate"`

	// ToDelete counts existing variants no longer produced by any combination.
	ToDelete int `json:"toDelete"`

	// Unchanged counts existing variants still produced by a combination.
	Unchanged int `json:"unchanged"`

	// MalformedPairs counts option/value pairs lacking a title or value.
	// Such pairs never match, so a non-zero count explains an unusually large drift.
	MalformedPairs int `json:"malformedPairs"`
}

// PriceInput is a nested price creation payload.
type PriceInput struct {
	Amount        int64  `json:"amount"`
	CompareAmount *int64 `json:"compareAmount,omitempty"`
	// CurrencyCode is lower-cased.
	CurrencyCode string `json:"currencyCode"`
	RegionCode   string `json:"regionCode"`
}

// CreateVariantInput is the storage creation payload for one pending variant.
type CreateVariantInput struct {
	Title             string `json:"title"`
	SKU               string `json:"sku"`
	Barcode           string `json:"barcode"`
	EAN               string `json:"ean"`
	UPC               string `json:"upc"`
	Material          string `json:"material"`
	InventoryQuantity int    `json:"inventoryQuantity"`
	ManageInventory   bool   `json:"manageInventory"`
	AllowBackorder    bool   `json:"allowBackorder"`
	HSCode            string `json:"hsCode"`
	OriginCountry     string `json:"originCountry"`
	MIDCode           string `json:"midCode"`

	// OptionValueIDs connects persisted option values.
	OptionValueIDs []string `json:"optionValueIds"`

	// UnresolvedValues lists pairs whose value has no id yet; the store resolves them by title.
	UnresolvedValues []OptionValuePair `json:"unresolvedValues,omitempty"`

	Prices []PriceInput `json:"prices"`
}
