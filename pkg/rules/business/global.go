package business

import (
	"fmt"

	"github.com/goliatone/go-offergen/pkg/offer"
	"github.com/goliatone/go-offergen/pkg/rules"
	"github.com/goliatone/go-offergen/pkg/validation"
)

// requiredSections must be present in every document.
var requiredSections = []offer.SectionName{
	offer.SectionIdentification,
	offer.SectionOfferDetails,
	offer.SectionActivationMethods,
	offer.SectionContactInformation,
	offer.SectionValidity,
	offer.SectionPaymentMethods,
}

func globalRules() []rules.Rule {
	return []rules.Rule{
		rules.Global("required-sections", requiredSectionsPresent),
		rules.Global("unit-market", unitMarket),
	}
}

func requiredSectionsPresent(ctx validation.Context) []validation.Error {
	var out []validation.Error
	for _, name := range requiredSections {
		if !ctx.Document.Has(name) {
			out = append(out, validation.NewError(validation.CodeMissingSection, msgSectionRequired, string(name)))
		}
	}
	return out
}

// unitMarket rejects EUR/Smc prices on electricity-only offers and EUR/kWh
// prices on gas-only offers.
func unitMarket(ctx validation.Context) []validation.Error {
	var forbidden string
	switch ctx.Market {
	case offer.MarketElectricity:
		forbidden = offer.UnitPerSmc
	case offer.MarketGas:
		forbidden = offer.UnitPerKWh
	default:
		return nil
	}
	message := fmt.Sprintf(msgUnitMarket, unitLabel(forbidden), marketLabel(ctx.Market))

	var out []validation.Error
	for i, component := range ctx.Document.CompanyComponents {
		for j, interval := range component.Intervals {
			if interval.Unit == forbidden {
				out = appendErr(out, businessError(message,
					section(offer.SectionCompanyComponents, offer.Index(i), "intervals", offer.Index(j), "unit")...))
			}
		}
	}
	for i, discount := range ctx.Document.Discounts {
		for j, price := range discount.Prices {
			if price.Unit == forbidden {
				out = appendErr(out, businessError(message,
					section(offer.SectionDiscounts, offer.Index(i), "prices", offer.Index(j), "unit")...))
			}
		}
	}
	return out
}
