// Package offer defines the typed offer document consumed by the rule engine
// and the XML codec. Each section of the document is a distinct Go type; the
// closed set of section names and their fixed order live in sections.go, and
// every enumerated field draws its legal codes from a single Enum definition
// in enums.go so the first-pass schemas, the business rules and the structural
// validator agree on the same sets.
//
// Documents are owned by the caller. Helpers in this package never mutate a
// document in place; WithSection returns a shallow copy instead.
package offer
