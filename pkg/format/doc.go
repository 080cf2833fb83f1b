// Package format holds the pure formatting helpers shared by the rule set, the
// XML generator and the structural validator: fixed precision decimals, the
// two date patterns used by the offer layout, XML text escaping and
// identifier cleaning.
package format
