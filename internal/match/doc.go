// Package match ranks member names and labels by similarity to a name that
// failed to resolve, for "did you mean" suggestions.
//
// Key functions:
//   - NormalizeIdent: folds case and separators out of identifiers and labels
//   - Levenshtein: computes edit distance between strings
//   - Rank: scores candidate names against a target
//   - Suggest: returns the best few candidate names
package match
