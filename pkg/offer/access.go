package offer

import (
	"fmt"
	"strconv"
	"strings"
)

// Section returns the value stored for name and whether it is present. Single
// sections are returned as pointers, repeatable sections as slices.
func (d *Document) Section(name SectionName) (any, bool) {
	if d == nil {
		return nil, false
	}
	switch name {
	case SectionIdentification:
		return d.Identification, d.Identification != nil
	case SectionOfferDetails:
		return d.OfferDetails, d.OfferDetails != nil
	case SectionActivationMethods:
		return d.ActivationMethods, d.ActivationMethods != nil
	case SectionContactInformation:
		return d.ContactInformation, d.ContactInformation != nil
	case SectionValidity:
		return d.Validity, d.Validity != nil
	case SectionCharacteristics:
		return d.Characteristics, d.Characteristics != nil
	case SectionPaymentMethods:
		return d.PaymentMethods, len(d.PaymentMethods) > 0
	case SectionRegulatedComponents:
		return d.RegulatedComponents, d.RegulatedComponents != nil
	case SectionPriceReferences:
		return d.PriceReferences, d.PriceReferences != nil
	case SectionDualOfferLinks:
		return d.DualOfferLinks, d.DualOfferLinks != nil
	case SectionTimeBands:
		return d.TimeBands, d.TimeBands != nil
	case SectionCompanyComponents:
		return d.CompanyComponents, len(d.CompanyComponents) > 0
	case SectionContractualConditions:
		return d.ContractualConditions, len(d.ContractualConditions) > 0
	case SectionZones:
		return d.Zones, d.Zones != nil
	case SectionDiscounts:
		return d.Discounts, len(d.Discounts) > 0
	case SectionAdditionalServices:
		return d.AdditionalServices, len(d.AdditionalServices) > 0
	default:
		return nil, false
	}
}

// Has reports whether the section is present.
func (d *Document) Has(name SectionName) bool {
	_, ok := d.Section(name)
	return ok
}

// PresentSections lists the present sections in the fixed document order.
func (d *Document) PresentSections() []SectionName {
	out := make([]SectionName, 0, len(sectionOrder))
	for _, name := range sectionOrder {
		if d.Has(name) {
			out = append(out, name)
		}
	}
	return out
}

// Market returns the market type, or "" when offer details are absent.
func (d *Document) Market() MarketType {
	if d == nil || d.OfferDetails == nil {
		return ""
	}
	return d.OfferDetails.MarketType
}

// Offer returns the offer type, or "" when offer details are absent.
func (d *Document) Offer() OfferType {
	if d == nil || d.OfferDetails == nil {
		return ""
	}
	return d.OfferDetails.OfferType
}

// WithSection returns a shallow copy of d with one section replaced. The value
// must have the section's type (pointer or value for single sections, slice
// for repeatable ones); nil clears the section.
func (d *Document) WithSection(name SectionName, value any) (*Document, error) {
	var out Document
	if d != nil {
		out = *d
	}
	if err := out.set(name, value); err != nil {
		return nil, err
	}
	return &out, nil
}

func (d *Document) set(name SectionName, value any) error {
	mismatch := func() error {
		return fmt.Errorf("offer: section %q cannot hold %T", name, value)
	}
	switch name {
	case SectionIdentification:
		return assign(&d.Identification, value, mismatch)
	case SectionOfferDetails:
		return assign(&d.OfferDetails, value, mismatch)
	case SectionActivationMethods:
		return assign(&d.ActivationMethods, value, mismatch)
	case SectionContactInformation:
		return assign(&d.ContactInformation, value, mismatch)
	case SectionValidity:
		return assign(&d.Validity, value, mismatch)
	case SectionCharacteristics:
		return assign(&d.Characteristics, value, mismatch)
	case SectionRegulatedComponents:
		return assign(&d.RegulatedComponents, value, mismatch)
	case SectionPriceReferences:
		return assign(&d.PriceReferences, value, mismatch)
	case SectionDualOfferLinks:
		return assign(&d.DualOfferLinks, value, mismatch)
	case SectionTimeBands:
		return assign(&d.TimeBands, value, mismatch)
	case SectionZones:
		return assign(&d.Zones, value, mismatch)
	case SectionPaymentMethods:
		return assignSlice(&d.PaymentMethods, value, mismatch)
	case SectionCompanyComponents:
		return assignSlice(&d.CompanyComponents, value, mismatch)
	case SectionContractualConditions:
		return assignSlice(&d.ContractualConditions, value, mismatch)
	case SectionDiscounts:
		return assignSlice(&d.Discounts, value, mismatch)
	case SectionAdditionalServices:
		return assignSlice(&d.AdditionalServices, value, mismatch)
	default:
		return fmt.Errorf("offer: unknown section %q", name)
	}
}

func assign[T any](dst **T, value any, mismatch func() error) error {
	switch v := value.(type) {
	case nil:
		*dst = nil
	case *T:
		*dst = v
	case T:
		*dst = &v
	default:
		return mismatch()
	}
	return nil
}

func assignSlice[T any](dst *[]T, value any, mismatch func() error) error {
	switch v := value.(type) {
	case nil:
		*dst = nil
	case []T:
		*dst = v
	case T:
		*dst = []T{v}
	default:
		return mismatch()
	}
	return nil
}

// FieldValue is one addressed field of the document.
type FieldValue struct {
	Path  []string
	Value string
}

// Field renders the dotted path, rooted at the section name.
func (f FieldValue) Field() string {
	return strings.Join(f.Path, ".")
}

// Section returns the section the field belongs to.
func (f FieldValue) Section() SectionName {
	if len(f.Path) == 0 {
		return ""
	}
	return SectionName(f.Path[0])
}

type textAccessor func(d *Document, emit func(value string, path ...string))

// textFields addresses every free-text field, keyed by section in document
// order. Built once at init and shared by all rule evaluations.
var textFields = []struct {
	section SectionName
	collect textAccessor
}{
	{SectionOfferDetails, func(d *Document, emit func(string, ...string)) {
		if s := d.OfferDetails; s != nil {
			emit(s.Name, "name")
			emit(s.Description, "description")
			emit(s.Guarantees, "guarantees")
		}
	}},
	{SectionActivationMethods, func(d *Document, emit func(string, ...string)) {
		if s := d.ActivationMethods; s != nil {
			emit(s.Description, "description")
		}
	}},
	{SectionPaymentMethods, func(d *Document, emit func(string, ...string)) {
		for i, p := range d.PaymentMethods {
			emit(p.Description, index(i), "description")
		}
	}},
	{SectionRegulatedComponents, func(d *Document, emit func(string, ...string)) {
		if s := d.RegulatedComponents; s != nil {
			for i, disp := range s.Dispatching {
				emit(disp.Name, "dispatching", index(i), "name")
				emit(disp.Description, "dispatching", index(i), "description")
			}
		}
	}},
	{SectionPriceReferences, func(d *Document, emit func(string, ...string)) {
		if s := d.PriceReferences; s != nil {
			emit(s.OtherDescription, "otherDescription")
		}
	}},
	{SectionCompanyComponents, func(d *Document, emit func(string, ...string)) {
		for i, c := range d.CompanyComponents {
			emit(c.Name, index(i), "name")
			emit(c.Description, index(i), "description")
		}
	}},
	{SectionContractualConditions, func(d *Document, emit func(string, ...string)) {
		for i, c := range d.ContractualConditions {
			emit(c.OtherType, index(i), "otherType")
			emit(c.Description, index(i), "description")
		}
	}},
	{SectionDiscounts, func(d *Document, emit func(string, ...string)) {
		for i, disc := range d.Discounts {
			emit(disc.Name, index(i), "name")
			emit(disc.Description, index(i), "description")
			emit(disc.Condition.Description, index(i), "condition", "description")
		}
	}},
	{SectionAdditionalServices, func(d *Document, emit func(string, ...string)) {
		for i, s := range d.AdditionalServices {
			emit(s.Name, index(i), "name")
			emit(s.Details, index(i), "details")
			emit(s.MacroAreaDetails, index(i), "macroAreaDetails")
		}
	}},
}

// TextFields returns every non-empty free-text field of the document in
// section order.
func (d *Document) TextFields() []FieldValue {
	if d == nil {
		return nil
	}
	var out []FieldValue
	for _, entry := range textFields {
		section := string(entry.section)
		entry.collect(d, func(value string, path ...string) {
			if strings.TrimSpace(value) == "" {
				return
			}
			full := make([]string, 0, len(path)+1)
			full = append(full, section)
			full = append(full, path...)
			out = append(out, FieldValue{Path: full, Value: value})
		})
	}
	return out
}

func index(i int) string { return strconv.Itoa(i) }

// Path joins segments into a dotted field path rooted at the section.
func Path(section SectionName, segments ...string) string {
	if len(segments) == 0 {
		return string(section)
	}
	return string(section) + "." + strings.Join(segments, ".")
}

// Index renders a repeated-entry segment.
func Index(i int) string { return index(i) }
