// Package reconcile computes product variant drift and holds the editing session that
// commits it.
//
// Given a product's current options and their values, the engine builds the Cartesian
// product of value combinations, diffs it against the variants that already exist in
// storage, and sorts the result into pending creations, deletions and unchanged variants.
// Pending variants inherit prices from the most similar existing variant.
//
// # Components
//
//  1. GenerateCombinations: Cartesian product of option values, last option varying fastest.
//
//  2. NormalizeOptionValues / OptionValuesMatch: order-independent comparison of
//     (option title, value) pairs. Matching is by text, never by id.
//
//  3. FindSimilarVariant: scores existing variants against a new combination. Every exact
//     attribute match is worth 150 points; a shared option with a different value is worth 0.
//
//  4. CalculateVariantDrift: orchestrates the above into a DriftResult.
//
//  5. Session: owns ToCreate/ToDelete/Unchanged for one editor, supports local mutations and
//     a partial-failure tolerant Commit against a Store.
//
// # Usage Example
//
//	session := reconcile.NewSession(uuid.NewString(), productID, reconcile.Calculator{})
//	state, _ := session.Recompute(options, existing, false)
//	state, _ = session.RemoveFromCreate(state.ToCreate[0].ID)
//
//	result, err := session.Commit(ctx, store)
//	if err != nil {
//	    // result.Failures lists the variants that failed; the session keeps only those.
//	}
package reconcile
