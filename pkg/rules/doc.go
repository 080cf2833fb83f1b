// Package rules holds the rule model and the Registry that stores rules by
// kind and name. A Registry is built once, typically by business.Register,
// and then handed to the runner; it is safe for concurrent readers.
package rules
