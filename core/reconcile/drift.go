package reconcile

import (
	"fmt"
	"strings"
)

// DefaultInventoryQuantity is the stock level given to every pending variant.
const DefaultInventoryQuantity = 100

// Calculator computes variant drift. The zero value uses PendingIDs.
type Calculator struct {
	// IDs generates synthetic ids for pending variants and their prices.
	IDs IDGenerator
}

// CalculateVariantDrift classifies every existing variant and every combination of the
// current options into create, delete and unchanged sets using PendingIDs.
func CalculateVariantDrift(options []Option, existing []Variant) DriftResult {
	return Calculator{}.Calculate(options, existing)
}

// Calculate computes the drift between the current options and the existing variants.
// It never fails: malformed pairs simply never match and inflate the drift counts.
func (c Calculator) Calculate(options []Option, existing []Variant) DriftResult {
	ids := c.IDs
	if ids == nil {
		ids = PendingIDs
	}

	combinations := GenerateCombinations(ValueLists(options))

	normalizedCombos := make([][]OptionValuePair, len(combinations))
	for i, combo := range combinations {
		normalizedCombos[i] = NormalizeOptionValues(combo)
	}
	normalizedExisting := make([][]OptionValuePair, len(existing))
	for i, v := range existing {
		normalizedExisting[i] = NormalizeOptionValues(v.OptionValues)
	}

	result := DriftResult{
		ToCreate:  []Variant{},
		ToDelete:  []Variant{},
		Unchanged: []Variant{},
	}

	emitted := make(map[string]struct{})
	for i, combo := range combinations {
		if matchesAny(normalizedCombos[i], normalizedExisting) {
			continue
		}
		key := combinationKey(normalizedCombos[i])
		if _, dup := emitted[key]; dup {
			continue
		}
		emitted[key] = struct{}{}
		result.ToCreate = append(result.ToCreate, newPendingVariant(combo, existing, ids))
	}

	for i, v := range existing {
		if matchesAny(normalizedExisting[i], normalizedCombos) {
			result.Unchanged = append(result.Unchanged, v)
		} else {
			result.ToDelete = append(result.ToDelete, v)
		}
	}

	result.Summary = DriftSummary{
		Combinations:   len(combinations),
		Existing:       len(existing),
		ToCreate:       len(result.ToCreate),
		ToDelete:       len(result.ToDelete),
		Unchanged:      len(result.Unchanged),
		MalformedPairs: countMalformed(options, existing),
	}
	return result
}

// matchesAny reports whether target matches any candidate. All lists are normalized.
func matchesAny(target []OptionValuePair, candidates [][]OptionValuePair) bool {
	for _, candidate := range candidates {
		if normalizedEqual(target, candidate) {
			return true
		}
	}
	return false
}

// newPendingVariant synthesizes a pending variant for a combination, inheriting prices
// from the most similar existing variant.
func newPendingVariant(combo []OptionValuePair, existing []Variant, ids IDGenerator) Variant {
	id := ids.NewID()

	values := make([]string, 0, len(combo))
	for _, p := range combo {
		values = append(values, p.Value)
	}

	pairs := make([]OptionValuePair, len(combo))
	copy(pairs, combo)

	prices := []Price{}
	if similar := FindSimilarVariant(combo, existing); similar != nil {
		prices = copyPrices(similar.Prices, ids)
	}

	return Variant{
		ID:                id,
		Title:             strings.Join(values, " / "),
		InventoryQuantity: DefaultInventoryQuantity,
		ManageInventory:   false,
		AllowBackorder:    false,
		Prices:            prices,
		OptionValues:      pairs,
	}
}

func countMalformed(options []Option, existing []Variant) int {
	n := 0
	for _, opt := range options {
		for _, v := range opt.Values {
			if malformed(OptionValuePair{Option: opt.Title, Value: v.Value}) {
				n++
			}
		}
	}
	for _, v := range existing {
		for _, p := range v.OptionValues {
			if malformed(p) {
				n++
			}
		}
	}
	return n
}

// Validate checks the structural invariants of a drift result against the existing
// variants it was computed from.
func (r DriftResult) Validate(existing []Variant) error {
	if len(r.ToDelete)+len(r.Unchanged) != len(existing) {
		return fmt.Errorf("partition mismatch: %d to delete + %d unchanged != %d existing",
			len(r.ToDelete), len(r.Unchanged), len(existing))
	}

	seen := make(map[string]int, len(existing))
	for _, v := range r.ToDelete {
		seen[v.ID]++
	}
	for _, v := range r.Unchanged {
		seen[v.ID]++
	}
	for _, v := range existing {
		if seen[v.ID] != 1 {
			return fmt.Errorf("variant %s appears %d times across delete/unchanged", v.ID, seen[v.ID])
		}
	}

	for _, pending := range r.ToCreate {
		for _, v := range existing {
			if OptionValuesMatch(v.OptionValues, pending.OptionValues) {
				return fmt.Errorf("pending variant %q duplicates existing variant %s", pending.Title, v.ID)
			}
		}
	}
	return nil
}
