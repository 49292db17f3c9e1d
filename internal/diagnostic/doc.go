// Package diagnostic provides structured errors, warnings and infos for
// property lookups that did not resolve.
//
// Key capabilities:
//   - Stable codes for each failure class
//   - The type and the path a failure relates to
//   - "Did you mean" suggestions
package diagnostic
