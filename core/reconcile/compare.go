package reconcile

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// NormalizeOptionValues returns a copy of pairs sorted by option title using
// locale-aware collation. Pairs with equal titles keep their relative order.
func NormalizeOptionValues(pairs []OptionValuePair) []OptionValuePair {
	if pairs == nil {
		return nil
	}
	sorted := make([]OptionValuePair, len(pairs))
	copy(sorted, pairs)

	// Collator keeps internal buffers and is not safe for concurrent use.
	col := collate.New(language.Und)
	sort.SliceStable(sorted, func(i, j int) bool {
		return col.CompareString(sorted[i].Option, sorted[j].Option) < 0
	})
	return sorted
}

// OptionValuesMatch reports whether two pair lists describe the same combination,
// regardless of order. Matching is by option title and value string, never by id.
// Nil lists and malformed pairs never match.
func OptionValuesMatch(existing, candidate []OptionValuePair) bool {
	if existing == nil || candidate == nil {
		return false
	}
	if len(existing) != len(candidate) {
		return false
	}
	return normalizedEqual(NormalizeOptionValues(existing), NormalizeOptionValues(candidate))
}

// normalizedEqual compares two lists already sorted by NormalizeOptionValues.
func normalizedEqual(a, b []OptionValuePair) bool {
	if a == nil || b == nil || len(a) != len(b) {
		return false
	}
	for i := range a {
		if malformed(a[i]) || malformed(b[i]) {
			return false
		}
		if a[i].Option != b[i].Option || a[i].Value != b[i].Value {
			return false
		}
	}
	return true
}

// malformed reports whether a pair lacks the text needed to join on it.
func malformed(p OptionValuePair) bool {
	return p.Option == "" || p.Value == ""
}

// combinationKey builds a lookup key from a normalized pair list.
func combinationKey(normalized []OptionValuePair) string {
	var b strings.Builder
	for i, p := range normalized {
		if i > 0 {
			b.WriteByte('\x1e')
		}
		b.WriteString(p.Option)
		b.WriteByte('\x1f')
		b.WriteString(p.Value)
	}
	return b.String()
}

// CombinationKey returns an order-independent key for a combination.
// Lists that satisfy OptionValuesMatch share the same key.
func CombinationKey(pairs []OptionValuePair) string {
	return combinationKey(NormalizeOptionValues(pairs))
}
