package reconcile

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sequentialIDs returns a deterministic generator for tests.
func sequentialIDs() IDGenerator {
	n := 0
	return IDGeneratorFunc(func() string {
		n++
		return fmt.Sprintf("new-%d", n)
	})
}

func option(title string, values ...string) Option {
	opt := Option{ID: "opt_" + title, Title: title}
	for _, v := range values {
		opt.Values = append(opt.Values, OptionValue{ID: "val_" + v, Value: v, Label: v})
	}
	return opt
}

func titles(variants []Variant) []string {
	out := make([]string, 0, len(variants))
	for _, v := range variants {
		out = append(out, v.Title)
	}
	return out
}

// TestCalculateVariantDrift_NoExisting tests a fresh product with one option.
func TestCalculateVariantDrift_NoExisting(t *testing.T) {
	calc := Calculator{IDs: sequentialIDs()}
	result := calc.Calculate([]Option{option("Size", "S", "M")}, nil)

	assert.Equal(t, []string{"S", "M"}, titles(result.ToCreate))
	for _, v := range result.ToCreate {
		assert.True(t, v.IsPending())
		assert.Empty(t, v.Prices)
		assert.NotNil(t, v.Prices)
		assert.Equal(t, DefaultInventoryQuantity, v.InventoryQuantity)
		assert.False(t, v.ManageInventory)
		assert.False(t, v.AllowBackorder)
		assert.Empty(t, v.SKU)
		assert.Empty(t, v.Material)
	}
	assert.Empty(t, result.ToDelete)
	assert.Empty(t, result.Unchanged)
	assert.Equal(t, 2, result.Summary.Combinations)
}

// TestCalculateVariantDrift_ValueRemoved tests that a dropped value deletes its variant.
func TestCalculateVariantDrift_ValueRemoved(t *testing.T) {
	s := variantWith("var_s", OptionValuePair{Option: "Size", Value: "S"})
	m := variantWith("var_m", OptionValuePair{Option: "Size", Value: "M"})
	existing := []Variant{s, m}

	result := CalculateVariantDrift([]Option{option("Size", "S")}, existing)

	assert.Empty(t, result.ToCreate)
	assert.Equal(t, []string{"var_m"}, []string{result.ToDelete[0].ID})
	assert.Len(t, result.ToDelete, 1)
	assert.Len(t, result.Unchanged, 1)
	assert.Equal(t, "var_s", result.Unchanged[0].ID)
	assert.NoError(t, result.Validate(existing))
}

// TestCalculateVariantDrift_OptionAdded tests that adding an option replaces the old variant
// and carries its prices onto every new combination.
func TestCalculateVariantDrift_OptionAdded(t *testing.T) {
	original := variantWith("var_s", OptionValuePair{Option: "Size", Value: "S"})
	original.Prices = []Price{{ID: "price_1", Amount: 2500, Currency: Currency{Code: "EUR"}, Region: Region{Code: "eu"}}}
	existing := []Variant{original}

	calc := Calculator{IDs: sequentialIDs()}
	result := calc.Calculate([]Option{option("Size", "S"), option("Color", "Red", "Blue")}, existing)

	require.Len(t, result.ToCreate, 2)
	assert.Equal(t, []string{"S / Red", "S / Blue"}, titles(result.ToCreate))
	for _, v := range result.ToCreate {
		require.Len(t, v.Prices, 1)
		assert.Equal(t, int64(2500), v.Prices[0].Amount)
		assert.Equal(t, "eu", v.Prices[0].Region.Code)
		assert.NotEqual(t, "price_1", v.Prices[0].ID)
		assert.True(t, IsPendingID(v.Prices[0].ID))
	}
	require.Len(t, result.ToDelete, 1)
	assert.Equal(t, "var_s", result.ToDelete[0].ID)
	assert.Empty(t, result.Unchanged)
	assert.NoError(t, result.Validate(existing))
}

// TestCalculateVariantDrift_PriceInheritance tests that the most similar variant is the price source.
func TestCalculateVariantDrift_PriceInheritance(t *testing.T) {
	red := variantWith("var_red", OptionValuePair{Option: "Size", Value: "S"}, OptionValuePair{Option: "Color", Value: "Red"})
	red.Prices = []Price{{ID: "p_red", Amount: 1000, Currency: Currency{Code: "USD"}, Region: Region{Code: "us"}}}
	blue := variantWith("var_blue", OptionValuePair{Option: "Size", Value: "S"}, OptionValuePair{Option: "Color", Value: "Blue"})
	blue.Prices = []Price{{ID: "p_blue", Amount: 2000, Currency: Currency{Code: "USD"}, Region: Region{Code: "us"}}}

	result := CalculateVariantDrift(
		[]Option{option("Size", "S", "M"), option("Color", "Red", "Blue")},
		[]Variant{blue, red},
	)

	byTitle := make(map[string]Variant)
	for _, v := range result.ToCreate {
		byTitle[v.Title] = v
	}
	require.Contains(t, byTitle, "M / Red")
	require.Contains(t, byTitle, "M / Blue")
	assert.Equal(t, int64(1000), byTitle["M / Red"].Prices[0].Amount)
	assert.Equal(t, int64(2000), byTitle["M / Blue"].Prices[0].Amount)
	assert.Len(t, result.Unchanged, 2)
}

// TestCalculateVariantDrift_ReorderedOptions tests that option order does not cause drift.
func TestCalculateVariantDrift_ReorderedOptions(t *testing.T) {
	existing := []Variant{
		variantWith("v1", OptionValuePair{Option: "Color", Value: "Red"}, OptionValuePair{Option: "Size", Value: "S"}),
	}
	result := CalculateVariantDrift([]Option{option("Size", "S"), option("Color", "Red")}, existing)

	assert.Empty(t, result.ToCreate)
	assert.Empty(t, result.ToDelete)
	assert.Len(t, result.Unchanged, 1)
}

// TestCalculateVariantDrift_DuplicateValues tests that repeated values yield one pending variant.
func TestCalculateVariantDrift_DuplicateValues(t *testing.T) {
	opt := Option{Title: "Size", Values: []OptionValue{{Value: "S"}, {Value: "S"}}}
	result := CalculateVariantDrift([]Option{opt}, nil)

	assert.Len(t, result.ToCreate, 1)
	assert.Equal(t, 2, result.Summary.Combinations)
}

// TestCalculateVariantDrift_Malformed tests that missing titles inflate drift instead of failing.
func TestCalculateVariantDrift_Malformed(t *testing.T) {
	existing := []Variant{variantWith("v1", OptionValuePair{Option: "", Value: "S"})}
	opt := Option{Values: []OptionValue{{Value: "S"}}}

	result := CalculateVariantDrift([]Option{opt}, existing)

	assert.Len(t, result.ToCreate, 1)
	assert.Len(t, result.ToDelete, 1)
	assert.Equal(t, 2, result.Summary.MalformedPairs)
}

// TestCalculateVariantDrift_NoOptions tests the single empty combination.
func TestCalculateVariantDrift_NoOptions(t *testing.T) {
	existing := []Variant{variantWith("default", []OptionValuePair{}...)}
	existing[0].OptionValues = []OptionValuePair{}

	result := CalculateVariantDrift(nil, existing)
	assert.Empty(t, result.ToCreate)
	assert.Len(t, result.Unchanged, 1)
	assert.Equal(t, 1, result.Summary.Combinations)
}

// TestCalculateVariantDrift_Partition tests the partition invariant over a grid of inputs.
func TestCalculateVariantDrift_Partition(t *testing.T) {
	existing := []Variant{
		variantWith("v1", OptionValuePair{Option: "Size", Value: "S"}, OptionValuePair{Option: "Color", Value: "Red"}),
		variantWith("v2", OptionValuePair{Option: "Size", Value: "M"}, OptionValuePair{Option: "Color", Value: "Red"}),
		variantWith("v3", OptionValuePair{Option: "Size", Value: "L"}),
		variantWith("v4"),
	}
	optionSets := [][]Option{
		nil,
		{option("Size", "S")},
		{option("Size", "S", "M", "L")},
		{option("Size", "S", "M"), option("Color", "Red", "Blue")},
		{option("Color", "Red"), option("Size", "M", "XL")},
		{option("Size", "S"), option("Color", "Red"), option("Material", "Wool")},
	}

	for i, options := range optionSets {
		t.Run(fmt.Sprintf("set_%d", i), func(t *testing.T) {
			result := CalculateVariantDrift(options, existing)
			assert.Equal(t, len(existing), len(result.ToDelete)+len(result.Unchanged))
			assert.NoError(t, result.Validate(existing))
		})
	}
}

func TestDriftResult_Validate(t *testing.T) {
	existing := []Variant{variantWith("v1", OptionValuePair{Option: "Size", Value: "S"})}

	bad := DriftResult{Unchanged: existing, ToDelete: existing}
	assert.Error(t, bad.Validate(existing))

	dup := DriftResult{
		Unchanged: existing,
		ToCreate:  []Variant{variantWith("new-1", OptionValuePair{Option: "Size", Value: "S"})},
	}
	assert.Error(t, dup.Validate(existing))
}
