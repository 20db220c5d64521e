package reconcile

// GenerateCombinations returns the Cartesian product of the value lists.
// The first list is outermost and the last list varies fastest.
// An empty input yields exactly one empty combination.
func GenerateCombinations(valueLists [][]OptionValuePair) [][]OptionValuePair {
	if len(valueLists) == 0 {
		return [][]OptionValuePair{{}}
	}

	rest := GenerateCombinations(valueLists[1:])
	combinations := make([][]OptionValuePair, 0, len(valueLists[0])*len(rest))
	for _, pair := range valueLists[0] {
		for _, tail := range rest {
			combination := make([]OptionValuePair, 0, len(tail)+1)
			combination = append(combination, pair)
			combination = append(combination, tail...)
			combinations = append(combinations, combination)
		}
	}
	return combinations
}

// ValueLists projects options into one list of pairs per option,
// each pair tagged with its option's title and id and the value's own id.
func ValueLists(options []Option) [][]OptionValuePair {
	lists := make([][]OptionValuePair, 0, len(options))
	for _, opt := range options {
		pairs := make([]OptionValuePair, 0, len(opt.Values))
		for _, v := range opt.Values {
			pairs = append(pairs, OptionValuePair{
				Option:   opt.Title,
				Value:    v.Value,
				OptionID: opt.ID,
				ValueID:  v.ID,
			})
		}
		lists = append(lists, pairs)
	}
	return lists
}
