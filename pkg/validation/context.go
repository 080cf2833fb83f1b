package validation

import (
	"github.com/goliatone/go-offergen/pkg/offer"
)

// Context is the read-only view handed to business rules. It is built once per
// run and never mutated.
type Context struct {
	Document  *offer.Document
	Market    offer.MarketType
	OfferType offer.OfferType
	Action    offer.Action
}

// NewContext derives the market and offer type from the document.
func NewContext(doc *offer.Document, action offer.Action) Context {
	return Context{
		Document:  doc,
		Market:    doc.Market(),
		OfferType: doc.Offer(),
		Action:    action,
	}
}

// WithAction returns a copy with a different action.
func (c Context) WithAction(action offer.Action) Context {
	c.Action = action
	return c
}

// IsElectricity reports whether the offer covers electricity (alone or dual).
func (c Context) IsElectricity() bool {
	return c.Market == offer.MarketElectricity || c.Market == offer.MarketDualFuel
}

// IsGas reports whether the offer covers gas (alone or dual).
func (c Context) IsGas() bool {
	return c.Market == offer.MarketGas || c.Market == offer.MarketDualFuel
}
