package reconcile

// StoredOption is the option reference nested in a stored option value.
type StoredOption struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// StoredOptionValue is the shape in which storage reports a variant's option values.
type StoredOptionValue struct {
	ID            string       `json:"id"`
	Value         string       `json:"value"`
	ProductOption StoredOption `json:"productOption"`
}

// StoredVariant is an existing variant as fetched from storage.
type StoredVariant struct {
	Variant
	ProductOptionValues []StoredOptionValue `json:"productOptionValues"`
}

// PairFromStored folds a stored option value into the canonical pair shape.
func PairFromStored(v StoredOptionValue) OptionValuePair {
	return OptionValuePair{
		Option:   v.ProductOption.Title,
		Value:    v.Value,
		OptionID: v.ProductOption.ID,
		ValueID:  v.ID,
	}
}

// PairsFromStored converts a stored option value list. The result is never nil.
func PairsFromStored(values []StoredOptionValue) []OptionValuePair {
	pairs := make([]OptionValuePair, 0, len(values))
	for _, v := range values {
		pairs = append(pairs, PairFromStored(v))
	}
	return pairs
}

// ToVariant returns the canonical variant. Stored option values take precedence over
// any pairs already present on the embedded variant.
func (s StoredVariant) ToVariant() Variant {
	v := s.Variant
	if s.ProductOptionValues != nil || v.OptionValues == nil {
		v.OptionValues = PairsFromStored(s.ProductOptionValues)
	}
	if v.Prices == nil {
		v.Prices = []Price{}
	}
	return v
}

// VariantsFromStored converts a list of stored variants.
func VariantsFromStored(stored []StoredVariant) []Variant {
	variants := make([]Variant, 0, len(stored))
	for _, s := range stored {
		variants = append(variants, s.ToVariant())
	}
	return variants
}
