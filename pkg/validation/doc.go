// Package validation defines the records shared by every checker: the
// addressed Error, the immutable Result built from one or more error lists,
// and the read-only Context handed to business rules.
package validation
