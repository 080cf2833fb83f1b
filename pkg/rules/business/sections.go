package business

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-offergen/pkg/offer"
	"github.com/goliatone/go-offergen/pkg/rules"
	"github.com/goliatone/go-offergen/pkg/validation"
)

// intervalCounts maps a time-band typology to the number of kWh-priced
// intervals each energy component must declare.
var intervalCounts = map[string]int{
	"01": 1,
	"02": 2,
	"03": 3,
	"04": 3,
	"05": 4,
	"06": 5,
	"07": 2,
	"91": 2,
	"92": 2,
	"93": 2,
}

// IntervalCount returns the expected kWh interval count for typology.
func IntervalCount(typology string) (int, bool) {
	n, ok := intervalCounts[typology]
	return n, ok
}

func sectionRules() []rules.Rule {
	return []rules.Rule{
		rules.Section("payment-methods-other", offer.SectionPaymentMethods, paymentMethodsOther),
		rules.Section("regulated-components-market", offer.SectionRegulatedComponents, regulatedComponentsMarket),
		rules.Section("dual-offer-links-complete", offer.SectionDualOfferLinks, dualOfferLinksComplete),
		rules.Section("time-bands-schedule", offer.SectionTimeBands, timeBandsSchedule),
		rules.Section("company-components-intervals", offer.SectionCompanyComponents, companyComponentIntervals),
		rules.Section("contractual-conditions-other", offer.SectionContractualConditions, contractualConditionsOther),
		rules.Section("zones-unique", offer.SectionZones, zonesUnique),
		rules.Section("discounts-validity", offer.SectionDiscounts, discountsValidity),
		rules.Section("discounts-conditions", offer.SectionDiscounts, discountsConditions),
		rules.Section("discounts-price-ranges", offer.SectionDiscounts, discountsPriceRanges),
		rules.Section("additional-services-other", offer.SectionAdditionalServices, additionalServicesOther),
	}
}

func paymentMethodsOther(methods []offer.PaymentMethod, _ validation.Context) []validation.Error {
	var out []validation.Error
	for i, m := range methods {
		if m.Method == offer.CodeOther && blank(m.Description) {
			out = appendErr(out, businessError(msgOtherDescription,
				section(offer.SectionPaymentMethods, offer.Index(i), "description")...))
		}
	}
	return out
}

func regulatedComponentsMarket(regulated *offer.RegulatedComponents, ctx validation.Context) []validation.Error {
	var out []validation.Error
	if ctx.Market != "" {
		for i, code := range regulated.Codes {
			if offer.RegulatedComponentCodes.Contains(code) && !offer.RegulatedComponentAllowed(ctx.Market, code) {
				out = appendErr(out, businessError(fmt.Sprintf(msgComponentMarket, code, marketLabel(ctx.Market)),
					section(offer.SectionRegulatedComponents, "codes", offer.Index(i))...))
			}
		}
	}
	for i, d := range regulated.Dispatching {
		if d.Type == offer.CodeOther && blank(d.Description) {
			out = appendErr(out, businessError(msgOtherDescription,
				section(offer.SectionRegulatedComponents, "dispatching", offer.Index(i), "description")...))
		}
	}
	return out
}

func dualOfferLinksComplete(links *offer.DualOfferLinks, ctx validation.Context) []validation.Error {
	if ctx.Market != offer.MarketDualFuel {
		return nil
	}
	var out []validation.Error
	if len(links.ElectricityOffers) == 0 {
		out = appendErr(out, businessError(msgRequired, section(offer.SectionDualOfferLinks, "electricityOffers")...))
	}
	if len(links.GasOffers) == 0 {
		out = appendErr(out, businessError(msgRequired, section(offer.SectionDualOfferLinks, "gasOffers")...))
	}
	return out
}

func timeBandsSchedule(bands *offer.TimeBands, _ validation.Context) []validation.Error {
	if bands.Weekly == nil {
		return nil
	}
	var out []validation.Error
	for _, day := range bands.Weekly.Days() {
		path := section(offer.SectionTimeBands, "weekly", day[0])
		if blank(day[1]) {
			out = appendErr(out, businessError(msgRequired, path...))
			continue
		}
		if msg := checkDaySchedule(day[1]); msg != "" {
			out = appendErr(out, businessError(msg, path...))
		}
	}
	return out
}

// checkDaySchedule validates "00-08:F3;08-19:F1;19-24:F2": contiguous slots
// from hour 0 to 24 with bands F1..F6.
func checkDaySchedule(raw string) string {
	slots, err := offer.ParseDaySchedule(raw)
	if err != nil {
		var slotErr *offer.ScheduleError
		if errors.As(err, &slotErr) {
			return fmt.Sprintf(msgScheduleMalformed, slotErr.Slot)
		}
		return err.Error()
	}
	next := 0
	for _, slot := range slots {
		if slot.From != next || slot.To <= slot.From {
			return msgScheduleCoverage
		}
		next = slot.To
	}
	if next != 24 {
		return msgScheduleCoverage
	}
	return ""
}

func companyComponentIntervals(components []offer.CompanyComponent, ctx validation.Context) []validation.Error {
	expected, hasTypology := 0, false
	if bands := ctx.Document.TimeBands; bands != nil {
		expected, hasTypology = IntervalCount(bands.Typology)
	}

	var out []validation.Error
	for i, component := range components {
		kwh := 0
		for j, interval := range component.Intervals {
			if interval.Unit == offer.UnitPerKWh {
				kwh++
			}
			out = appendErr(out, int64Order(interval.ConsumptionFrom, interval.ConsumptionTo, "consumptionFrom",
				section(offer.SectionCompanyComponents, offer.Index(i), "intervals", offer.Index(j), "consumptionTo")...))
		}
		if hasTypology && kwh > 0 && kwh != expected {
			out = appendErr(out, businessError(fmt.Sprintf(msgCardinality, expected, kwh),
				section(offer.SectionCompanyComponents, offer.Index(i), "intervals")...))
		}
	}
	return out
}

func contractualConditionsOther(conditions []offer.ContractualCondition, _ validation.Context) []validation.Error {
	var out []validation.Error
	for i, c := range conditions {
		if c.Type == offer.CodeOther && blank(c.OtherType) {
			out = appendErr(out, businessError(msgOtherDescription,
				section(offer.SectionContractualConditions, offer.Index(i), "otherType")...))
		}
	}
	return out
}

func zonesUnique(zones *offer.Zones, _ validation.Context) []validation.Error {
	var out []validation.Error
	check := func(field string, codes []string) {
		seen := make(map[string]struct{}, len(codes))
		for i, code := range codes {
			if _, dup := seen[code]; dup {
				out = appendErr(out, businessError(fmt.Sprintf(msgDuplicate, code),
					section(offer.SectionZones, field, offer.Index(i))...))
				continue
			}
			seen[code] = struct{}{}
		}
	}
	check("regions", zones.Regions)
	check("provinces", zones.Provinces)
	check("municipalities", zones.Municipalities)
	return out
}

// discountsValidity enforces exactly one of the validity code and the
// structured validity period per discount.
func discountsValidity(discounts []offer.Discount, _ validation.Context) []validation.Error {
	var out []validation.Error
	for i, d := range discounts {
		hasCode := !blank(d.Validity)
		hasPeriod := !d.Period.Empty()
		path := section(offer.SectionDiscounts, offer.Index(i), "validity")
		switch {
		case hasCode && hasPeriod:
			out = appendErr(out, businessError(msgBothConfigured, path...))
		case !hasCode && !hasPeriod:
			out = appendErr(out, businessError(msgMustSpecifyOne, path...))
		}
	}
	return out
}

func discountsConditions(discounts []offer.Discount, _ validation.Context) []validation.Error {
	var out []validation.Error
	for i, d := range discounts {
		if d.Condition.Code == offer.CodeOther && blank(d.Condition.Description) {
			out = appendErr(out, businessError(msgOtherDescription,
				section(offer.SectionDiscounts, offer.Index(i), "condition", "description")...))
		}
	}
	return out
}

func discountsPriceRanges(discounts []offer.Discount, _ validation.Context) []validation.Error {
	var out []validation.Error
	for i, d := range discounts {
		for j, p := range d.Prices {
			out = appendErr(out, int64Order(p.ValidFrom, p.ValidUntil, "validFrom",
				section(offer.SectionDiscounts, offer.Index(i), "prices", offer.Index(j), "validUntil")...))
		}
	}
	return out
}

func additionalServicesOther(services []offer.AdditionalService, _ validation.Context) []validation.Error {
	var out []validation.Error
	for i, s := range services {
		if s.MacroArea == offer.CodeOther && blank(s.MacroAreaDetails) {
			out = appendErr(out, businessError(msgOtherDescription,
				section(offer.SectionAdditionalServices, offer.Index(i), "macroAreaDetails")...))
		}
	}
	return out
}
