// Package xmlcheck re-checks Offerta XML independently of the generator:
// well-formedness, required elements, field constraints, closed enumerations
// and date formats. Every defect becomes a validation.Error; only unparseable
// input short-circuits the remaining steps.
package xmlcheck
