package offer

// SectionName identifies one section of the offer document.
type SectionName string

const (
	SectionIdentification        SectionName = "identification"
	SectionOfferDetails          SectionName = "offer-details"
	SectionActivationMethods     SectionName = "activation-methods"
	SectionContactInformation    SectionName = "contact-information"
	SectionValidity              SectionName = "validity"
	SectionCharacteristics       SectionName = "characteristics"
	SectionPaymentMethods        SectionName = "payment-methods"
	SectionRegulatedComponents   SectionName = "regulated-components"
	SectionPriceReferences       SectionName = "price-references"
	SectionDualOfferLinks        SectionName = "dual-offer-links"
	SectionTimeBands             SectionName = "time-bands"
	SectionCompanyComponents     SectionName = "company-components"
	SectionContractualConditions SectionName = "contractual-conditions"
	SectionZones                 SectionName = "zones"
	SectionDiscounts             SectionName = "discounts"
	SectionAdditionalServices    SectionName = "additional-services"
)

var sectionOrder = []SectionName{
	SectionIdentification,
	SectionOfferDetails,
	SectionActivationMethods,
	SectionContactInformation,
	SectionValidity,
	SectionCharacteristics,
	SectionPaymentMethods,
	SectionRegulatedComponents,
	SectionPriceReferences,
	SectionDualOfferLinks,
	SectionTimeBands,
	SectionCompanyComponents,
	SectionContractualConditions,
	SectionZones,
	SectionDiscounts,
	SectionAdditionalServices,
}

var sectionIndex = func() map[SectionName]int {
	out := make(map[SectionName]int, len(sectionOrder))
	for i, name := range sectionOrder {
		out[name] = i
	}
	return out
}()

// Sections returns every section name in the fixed document order.
func Sections() []SectionName {
	return append([]SectionName(nil), sectionOrder...)
}

// Known reports whether name is one of the document sections.
func (n SectionName) Known() bool {
	_, ok := sectionIndex[n]
	return ok
}

// Position returns the index of the section in the fixed order, or -1.
func (n SectionName) Position() int {
	if idx, ok := sectionIndex[n]; ok {
		return idx
	}
	return -1
}

// Repeatable reports whether the section holds a list of entries.
func (n SectionName) Repeatable() bool {
	switch n {
	case SectionPaymentMethods, SectionCompanyComponents, SectionContractualConditions,
		SectionDiscounts, SectionAdditionalServices:
		return true
	default:
		return false
	}
}

func (n SectionName) String() string { return string(n) }
