package reconcile

const (
	// exactMatchScore is awarded when a variant has the same option with the same value.
	exactMatchScore = 100
	// duplicateAttributeBonus is added on top of exactMatchScore for every exact match,
	// so an exact attribute is worth 150 in total. A shared option title with a different
	// value scores nothing.
	duplicateAttributeBonus = 50
)

// SimilarityScore scores how closely existing resembles the target combination.
func SimilarityScore(target, existing []OptionValuePair) int {
	normalizedTarget := NormalizeOptionValues(target)
	normalizedExisting := NormalizeOptionValues(existing)

	score := 0
	for _, tp := range normalizedTarget {
		for _, ep := range normalizedExisting {
			if ep.Option != tp.Option {
				continue
			}
			if ep.Value == tp.Value {
				score += exactMatchScore + duplicateAttributeBonus
			}
			break
		}
	}
	return score
}

// FindSimilarVariant returns the existing variant with the strictly highest similarity score.
// Ties go to the variant encountered first. It returns nil only when existing is empty;
// the returned variant is the best available, with no minimum threshold.
func FindSimilarVariant(target []OptionValuePair, existing []Variant) *Variant {
	if len(existing) == 0 {
		return nil
	}

	best := 0
	bestScore := -1
	for i := range existing {
		score := SimilarityScore(target, existing[i].OptionValues)
		if score > bestScore {
			best = i
			bestScore = score
		}
	}
	return &existing[best]
}

// copyPrices duplicates prices under fresh pending ids, keeping amounts and
// region/currency identifiers verbatim.
func copyPrices(prices []Price, ids IDGenerator) []Price {
	copied := make([]Price, 0, len(prices))
	for _, p := range prices {
		price := Price{
			ID:       ids.NewID(),
			Amount:   p.Amount,
			Currency: p.Currency,
			Region:   p.Region,
		}
		if p.CompareAmount != nil {
			amount := *p.CompareAmount
			price.CompareAmount = &amount
		}
		copied = append(copied, price)
	}
	return copied
}
