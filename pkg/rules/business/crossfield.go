package business

import (
	"github.com/goliatone/go-offergen/pkg/format"
	"github.com/goliatone/go-offergen/pkg/offer"
	"github.com/goliatone/go-offergen/pkg/rules"
	"github.com/goliatone/go-offergen/pkg/validation"
)

func crossFieldRules() []rules.Rule {
	return []rules.Rule{
		rules.CrossField("single-offer-required", singleOfferRequired),
		rules.CrossField("residential-status-required", residentialStatusRequired),
		rules.CrossField("flat-consumption-required", flatConsumptionRequired),
		rules.CrossField("consumption-range", consumptionRange),
		rules.CrossField("power-electricity-only", powerElectricityOnly),
		rules.CrossField("power-range", powerRange),
		rules.CrossField("validity-range", validityRange),
		rules.CrossField("activation-other-description", activationOtherDescription),
		rules.CrossField("dual-offer-links-required", dualOfferLinksRequired),
		rules.CrossField("dual-offer-links-dual-only", dualOfferLinksDualOnly),
		rules.CrossField("time-bands-required", timeBandsRequired),
		rules.CrossField("time-bands-not-for-gas", timeBandsNotForGas),
		rules.CrossField("weekly-schedule-required", weeklyScheduleRequired),
		rules.CrossField("price-references-required", priceReferencesRequired),
		rules.CrossField("price-index-other-description", priceIndexOtherDescription),
		rules.CrossField("dispatching-electricity-only", dispatchingElectricityOnly),
	}
}

func singleOfferRequired(ctx validation.Context) *validation.Error {
	details := ctx.Document.OfferDetails
	if details == nil || ctx.Market == offer.MarketDualFuel {
		return nil
	}
	if blank(details.SingleOffer) {
		return businessError(msgRequired, section(offer.SectionOfferDetails, "singleOffer")...)
	}
	return nil
}

func residentialStatusRequired(ctx validation.Context) *validation.Error {
	details := ctx.Document.OfferDetails
	if details == nil || details.ClientType != offer.ClientDomestic {
		return nil
	}
	if blank(details.ResidentialStatus) {
		return businessError(msgRequired, section(offer.SectionOfferDetails, "residentialStatus")...)
	}
	return nil
}

func flatConsumptionRequired(ctx validation.Context) *validation.Error {
	if ctx.OfferType != offer.OfferFlat {
		return nil
	}
	chars := ctx.Document.Characteristics
	switch {
	case chars == nil || chars.ConsumptionMin == nil:
		return businessError(msgRequired, section(offer.SectionCharacteristics, "consumptionMin")...)
	case chars.ConsumptionMax == nil:
		return businessError(msgRequired, section(offer.SectionCharacteristics, "consumptionMax")...)
	}
	return nil
}

func consumptionRange(ctx validation.Context) *validation.Error {
	chars := ctx.Document.Characteristics
	if chars == nil {
		return nil
	}
	return int64Order(chars.ConsumptionMin, chars.ConsumptionMax, "consumptionMin",
		section(offer.SectionCharacteristics, "consumptionMax")...)
}

func powerElectricityOnly(ctx validation.Context) *validation.Error {
	chars := ctx.Document.Characteristics
	if chars == nil || ctx.Market != offer.MarketGas {
		return nil
	}
	switch {
	case chars.PowerMin != nil:
		return businessError(msgElectricityOnly, section(offer.SectionCharacteristics, "powerMin")...)
	case chars.PowerMax != nil:
		return businessError(msgElectricityOnly, section(offer.SectionCharacteristics, "powerMax")...)
	}
	return nil
}

func powerRange(ctx validation.Context) *validation.Error {
	chars := ctx.Document.Characteristics
	if chars == nil {
		return nil
	}
	return decimalOrder(chars.PowerMin, chars.PowerMax, "powerMin",
		section(offer.SectionCharacteristics, "powerMax")...)
}

func validityRange(ctx validation.Context) *validation.Error {
	v := ctx.Document.Validity
	if v == nil || blank(v.EndDate) {
		return nil
	}
	start, err := format.ParseDateTime(v.StartDate)
	if err != nil {
		return nil
	}
	end, err := format.ParseDateTime(v.EndDate)
	if err != nil {
		return nil
	}
	return rangeOrder(end.Compare(start), "startDate", section(offer.SectionValidity, "endDate")...)
}

func activationOtherDescription(ctx validation.Context) *validation.Error {
	methods := ctx.Document.ActivationMethods
	if methods == nil || !contains(methods.Methods, offer.CodeOther) {
		return nil
	}
	if blank(methods.Description) {
		return businessError(msgOtherDescription, section(offer.SectionActivationMethods, "description")...)
	}
	return nil
}

func dualOfferLinksRequired(ctx validation.Context) *validation.Error {
	if ctx.Market != offer.MarketDualFuel || ctx.Document.Has(offer.SectionDualOfferLinks) {
		return nil
	}
	return businessError(msgSectionRequired, section(offer.SectionDualOfferLinks)...)
}

func dualOfferLinksDualOnly(ctx validation.Context) *validation.Error {
	if ctx.Market == "" || ctx.Market == offer.MarketDualFuel || !ctx.Document.Has(offer.SectionDualOfferLinks) {
		return nil
	}
	return businessError(msgDualOnly, section(offer.SectionDualOfferLinks)...)
}

func timeBandsRequired(ctx validation.Context) *validation.Error {
	if ctx.Market != offer.MarketElectricity || ctx.OfferType == offer.OfferFlat {
		return nil
	}
	if ctx.Document.Has(offer.SectionTimeBands) {
		return nil
	}
	return businessError(msgSectionRequired, section(offer.SectionTimeBands)...)
}

func timeBandsNotForGas(ctx validation.Context) *validation.Error {
	if ctx.Market != offer.MarketGas || !ctx.Document.Has(offer.SectionTimeBands) {
		return nil
	}
	return businessError(msgNotForGas, section(offer.SectionTimeBands)...)
}

func weeklyScheduleRequired(ctx validation.Context) *validation.Error {
	bands := ctx.Document.TimeBands
	if bands == nil || bands.Typology == "" || bands.Typology == offer.TypologySingleRate {
		return nil
	}
	if bands.Weekly != nil {
		return nil
	}
	return businessError(msgRequired, section(offer.SectionTimeBands, "weekly")...)
}

// priceReferencesRequired: variable offers need a price index only when a
// discount carries a percentage-type price.
func priceReferencesRequired(ctx validation.Context) *validation.Error {
	if ctx.OfferType != offer.OfferVariable || ctx.Document.Has(offer.SectionPriceReferences) {
		return nil
	}
	for _, discount := range ctx.Document.Discounts {
		for _, price := range discount.Prices {
			if price.Type == offer.DiscountPricePercentage {
				return businessError(msgRequired, section(offer.SectionPriceReferences, "priceIndex")...)
			}
		}
	}
	return nil
}

func priceIndexOtherDescription(ctx validation.Context) *validation.Error {
	refs := ctx.Document.PriceReferences
	if refs == nil || refs.PriceIndex != offer.CodeOther {
		return nil
	}
	if blank(refs.OtherDescription) {
		return businessError(msgOtherDescription, section(offer.SectionPriceReferences, "otherDescription")...)
	}
	return nil
}

func dispatchingElectricityOnly(ctx validation.Context) *validation.Error {
	regulated := ctx.Document.RegulatedComponents
	if regulated == nil || len(regulated.Dispatching) == 0 || ctx.Market != offer.MarketGas {
		return nil
	}
	return businessError(msgElectricityOnly, section(offer.SectionRegulatedComponents, "dispatching")...)
}
