package business

import (
	"github.com/goliatone/go-offergen/pkg/format"
	"github.com/goliatone/go-offergen/pkg/offer"
	"github.com/goliatone/go-offergen/pkg/rules"
	"github.com/goliatone/go-offergen/pkg/validation"
)

// markupSections carry free text that ends up verbatim in the XML output.
var markupSections = []offer.SectionName{
	offer.SectionOfferDetails,
	offer.SectionActivationMethods,
	offer.SectionPaymentMethods,
	offer.SectionRegulatedComponents,
	offer.SectionPriceReferences,
	offer.SectionCompanyComponents,
	offer.SectionContractualConditions,
	offer.SectionDiscounts,
	offer.SectionAdditionalServices,
}

func fieldRules() []rules.Rule {
	out := make([]rules.Rule, 0, len(markupSections))
	for _, name := range markupSections {
		out = append(out, rules.Field("no-markup:"+string(name), name, textIn(name), noMarkup))
	}
	return out
}

func textIn(name offer.SectionName) rules.SelectorFunc {
	return func(doc *offer.Document) []offer.FieldValue {
		var out []offer.FieldValue
		for _, field := range doc.TextFields() {
			if field.Section() == name {
				out = append(out, field)
			}
		}
		return out
	}
}

func noMarkup(field offer.FieldValue, _ validation.Context) *validation.Error {
	if !format.ContainsMarkup(field.Value) {
		return nil
	}
	return businessError(msgMarkup, field.Path...)
}
