package xmlgen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/goliatone/go-offergen/pkg/format"
	"github.com/goliatone/go-offergen/pkg/offer"
)

// Element names of the Offerta layout.
const (
	RootElement = "Offerta"

	xsiNamespace = "http://www.w3.org/2001/XMLSchema-instance"
)

// Build maps doc onto the Offerta tree. It fails with a *GenerationError when
// a mandatory section is missing or a date value is malformed.
func Build(doc *offer.Document) (*Element, error) {
	if doc == nil {
		return nil, ErrNilDocument
	}
	b := &builder{doc: doc}
	root := NewElement(RootElement)

	steps := []func() (*Element, error){
		b.identification,
		b.offerDetails,
		b.activationMethods,
		b.contacts,
		b.validity,
	}
	for _, step := range steps {
		el, err := step()
		if err != nil {
			return nil, err
		}
		root.Append(el)
	}

	payments, err := b.paymentMethods()
	if err != nil {
		return nil, err
	}
	root.Append(payments...)

	root.Append(
		b.priceReferences(),
		b.characteristics(),
		b.dualOffer(),
		b.regulatedComponents(),
		b.priceType(),
		b.weeklySchedule(),
	)
	root.Append(b.dispatching()...)

	components, err := b.companyComponents()
	if err != nil {
		return nil, err
	}
	root.Append(components...)
	root.Append(b.contractualConditions()...)
	root.Append(b.zones())

	discounts, err := b.discounts()
	if err != nil {
		return nil, err
	}
	root.Append(discounts...)
	root.Append(b.additionalServices()...)
	return root, nil
}

type builder struct {
	doc *offer.Document
}

func missing(section offer.SectionName) error {
	return &GenerationError{Section: string(section), Err: ErrMissingSection}
}

// optional returns a leaf only when text is non-blank.
func optional(name, text string) *Element {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	return Leaf(name, text)
}

func leaves(name string, values []string) []*Element {
	out := make([]*Element, 0, len(values))
	for _, v := range values {
		out = append(out, optional(name, v))
	}
	return out
}

func intLeaf(name string, v *int64) *Element {
	if v == nil {
		return nil
	}
	return Leaf(name, strconv.FormatInt(*v, 10))
}

func powerLeaf(name string, v *decimal.Decimal) *Element {
	if v == nil {
		return nil
	}
	return Leaf(name, format.Power(*v))
}

func (b *builder) identification() (*Element, error) {
	s := b.doc.Identification
	if s == nil {
		return nil, missing(offer.SectionIdentification)
	}
	return NewElement("IdentificativiOfferta",
		Leaf("PIVA_UTENTE", s.IdentityCode),
		Leaf("COD_OFFERTA", s.OfferCode),
	), nil
}

func (b *builder) offerDetails() (*Element, error) {
	s := b.doc.OfferDetails
	if s == nil {
		return nil, missing(offer.SectionOfferDetails)
	}
	el := NewElement("DettaglioOfferta",
		Leaf("TIPO_MERCATO", string(s.MarketType)),
		optional("OFFERTA_SINGOLA", s.SingleOffer),
		Leaf("TIPO_CLIENTE", s.ClientType),
		optional("DOMESTICO_RESIDENTE", s.ResidentialStatus),
		Leaf("TIPO_OFFERTA", string(s.OfferType)),
	)
	el.Append(leaves("TIPOLOGIA_ATT_CONTR", s.ContractActivationTypes)...)
	el.Append(
		Leaf("NOME_OFFERTA", s.Name),
		Leaf("DESCRIZIONE", s.Description),
		Leaf("DURATA", strconv.Itoa(s.Duration)),
		Leaf("GARANZIE", s.Guarantees),
	)
	return el, nil
}

func (b *builder) activationMethods() (*Element, error) {
	s := b.doc.ActivationMethods
	if s == nil {
		return nil, missing(offer.SectionActivationMethods)
	}
	el := NewElement("MetodoAttivazione", leaves("MODALITA", s.Methods)...)
	el.Append(optional("DESCRIZIONE", s.Description))
	return el, nil
}

func (b *builder) contacts() (*Element, error) {
	s := b.doc.ContactInformation
	if s == nil {
		return nil, missing(offer.SectionContactInformation)
	}
	return NewElement("Contatti",
		Leaf("TELEFONO", s.Phone),
		optional("URL_SITO_VENDITORE", s.VendorWebsite),
		optional("URL_OFFERTA", s.OfferURL),
	), nil
}

func (b *builder) validity() (*Element, error) {
	s := b.doc.Validity
	if s == nil {
		return nil, missing(offer.SectionValidity)
	}
	if !format.IsDateTime(s.StartDate) {
		return nil, &GenerationError{Section: string(offer.SectionValidity), Field: "startDate", Value: s.StartDate, Err: ErrInvalidDate}
	}
	el := NewElement("ValiditaOfferta", Leaf("DATA_INIZIO", s.StartDate))
	if strings.TrimSpace(s.EndDate) != "" {
		if !format.IsDateTime(s.EndDate) {
			return nil, &GenerationError{Section: string(offer.SectionValidity), Field: "endDate", Value: s.EndDate, Err: ErrInvalidDate}
		}
		el.Append(Leaf("DATA_FINE", s.EndDate))
	}
	return el, nil
}

func (b *builder) paymentMethods() ([]*Element, error) {
	if len(b.doc.PaymentMethods) == 0 {
		return nil, missing(offer.SectionPaymentMethods)
	}
	out := make([]*Element, 0, len(b.doc.PaymentMethods))
	for _, p := range b.doc.PaymentMethods {
		out = append(out, NewElement("MetodoPagamento",
			Leaf("MODALITA_PAGAMENTO", p.Method),
			optional("DESCRIZIONE", p.Description),
		))
	}
	return out, nil
}

func (b *builder) priceReferences() *Element {
	s := b.doc.PriceReferences
	if s == nil {
		return nil
	}
	return NewElement("RiferimentiPrezzoEnergia",
		Leaf("IDX_PREZZO_ENERGIA", s.PriceIndex),
		optional("ALTRO", s.OtherDescription),
	)
}

func (b *builder) characteristics() *Element {
	s := b.doc.Characteristics
	if s == nil {
		return nil
	}
	return NewElement("CaratteristicheOfferta",
		intLeaf("CONSUMO_MIN", s.ConsumptionMin),
		intLeaf("CONSUMO_MAX", s.ConsumptionMax),
		powerLeaf("POTENZA_MIN", s.PowerMin),
		powerLeaf("POTENZA_MAX", s.PowerMax),
	)
}

func (b *builder) dualOffer() *Element {
	s := b.doc.DualOfferLinks
	if s == nil {
		return nil
	}
	el := NewElement("OffertaDUAL", leaves("OFFERTE_CONGIUNTE_EE", s.ElectricityOffers)...)
	el.Append(leaves("OFFERTE_CONGIUNTE_GAS", s.GasOffers)...)
	return el
}

func (b *builder) regulatedComponents() *Element {
	s := b.doc.RegulatedComponents
	if s == nil || len(s.Codes) == 0 {
		return nil
	}
	return NewElement("ComponentiRegolate", leaves("CODICE", s.Codes)...)
}

func (b *builder) priceType() *Element {
	s := b.doc.TimeBands
	if s == nil {
		return nil
	}
	return NewElement("TipoPrezzo", Leaf("TIPOLOGIA_FASCE", s.Typology))
}

var weekdayElements = map[string]string{
	"monday":    "F_LUNEDI",
	"tuesday":   "F_MARTEDI",
	"wednesday": "F_MERCOLEDI",
	"thursday":  "F_GIOVEDI",
	"friday":    "F_VENERDI",
	"saturday":  "F_SABATO",
	"sunday":    "F_DOMENICA",
	"holidays":  "F_FESTIVITA",
}

func (b *builder) weeklySchedule() *Element {
	s := b.doc.TimeBands
	if s == nil || s.Weekly == nil {
		return nil
	}
	el := NewElement("FasceOrarieSettimanale")
	for _, day := range s.Weekly.Days() {
		el.Append(optional(weekdayElements[day[0]], day[1]))
	}
	return el
}

func (b *builder) dispatching() []*Element {
	s := b.doc.RegulatedComponents
	if s == nil {
		return nil
	}
	out := make([]*Element, 0, len(s.Dispatching))
	for _, d := range s.Dispatching {
		out = append(out, NewElement("Dispacciamento",
			Leaf("TIPO_DISPACCIAMENTO", d.Type),
			Leaf("VALORE_DISP", format.Decimal(d.Value, format.DispatchingPlaces)),
			optional("NOME", d.Name),
			optional("DESCRIZIONE", d.Description),
		))
	}
	return out
}

func (b *builder) companyComponents() ([]*Element, error) {
	out := make([]*Element, 0, len(b.doc.CompanyComponents))
	for i, c := range b.doc.CompanyComponents {
		el := NewElement("ComponenteImpresa",
			Leaf("NOME", c.Name),
			Leaf("DESCRIZIONE", c.Description),
			Leaf("TIPOLOGIA", c.Type),
			Leaf("MACROAREA", c.MacroArea),
		)
		for j, interval := range c.Intervals {
			period, err := validityPeriod(interval.Period, string(offer.SectionCompanyComponents),
				fmt.Sprintf("%d.intervals.%d.period.validUntil", i, j))
			if err != nil {
				return nil, err
			}
			el.Append(NewElement("IntervalloPrezzi",
				optional("FASCIA_COMPONENTE", interval.Band),
				intLeaf("CONSUMO_DA", interval.ConsumptionFrom),
				intLeaf("CONSUMO_A", interval.ConsumptionTo),
				Leaf("PREZZO", format.Price(interval.Price)),
				Leaf("UNITA_MISURA", interval.Unit),
				period,
			))
		}
		out = append(out, el)
	}
	return out, nil
}

func validityPeriod(p *offer.ValidityPeriod, section, field string) (*Element, error) {
	if p.Empty() {
		return nil, nil
	}
	el := NewElement("PeriodoValidita")
	if p.Duration != nil {
		el.Append(Leaf("DURATA", strconv.Itoa(*p.Duration)))
	}
	if strings.TrimSpace(p.ValidUntil) != "" {
		if !format.IsMonthYear(p.ValidUntil) {
			return nil, &GenerationError{Section: section, Field: field, Value: p.ValidUntil, Err: ErrInvalidMonthYear}
		}
		el.Append(Leaf("VALIDO_FINO", p.ValidUntil))
	}
	el.Append(leaves("MESE_VALIDITA", p.Months)...)
	return el, nil
}

func (b *builder) contractualConditions() []*Element {
	out := make([]*Element, 0, len(b.doc.ContractualConditions))
	for _, c := range b.doc.ContractualConditions {
		out = append(out, NewElement("CondizioniContrattuali",
			Leaf("TIPOLOGIA_CONDIZIONE", c.Type),
			optional("ALTRO", c.OtherType),
			Leaf("DESCRIZIONE", c.Description),
			Leaf("LIMITANTE", c.Limiting),
		))
	}
	return out
}

func (b *builder) zones() *Element {
	s := b.doc.Zones
	if s == nil {
		return nil
	}
	el := NewElement("ZoneOfferta", leaves("REGIONE", s.Regions)...)
	el.Append(leaves("PROVINCIA", s.Provinces)...)
	el.Append(leaves("COMUNE", s.Municipalities)...)
	return el
}

func (b *builder) discounts() ([]*Element, error) {
	out := make([]*Element, 0, len(b.doc.Discounts))
	for i, d := range b.doc.Discounts {
		period, err := validityPeriod(d.Period, string(offer.SectionDiscounts),
			fmt.Sprintf("%d.period.validUntil", i))
		if err != nil {
			return nil, err
		}
		el := NewElement("Sconto",
			Leaf("NOME", d.Name),
			Leaf("DESCRIZIONE", d.Description),
			optional("VALIDITA", d.Validity),
			period,
			Leaf("IVA_SCONTO", d.VATApplicable),
			NewElement("Condizione",
				Leaf("CONDIZIONE_APPLICAZIONE", d.Condition.Code),
				optional("DESCRIZIONE_CONDIZIONE", d.Condition.Description),
			),
		)
		for _, p := range d.Prices {
			el.Append(NewElement("PREZZISconto",
				Leaf("TIPOLOGIA", p.Type),
				intLeaf("VALIDO_DA", p.ValidFrom),
				intLeaf("VALIDO_FINO", p.ValidUntil),
				Leaf("UNITA_MISURA", p.Unit),
				Leaf("PREZZO", format.Price(p.Price)),
			))
		}
		out = append(out, el)
	}
	return out, nil
}

func (b *builder) additionalServices() []*Element {
	out := make([]*Element, 0, len(b.doc.AdditionalServices))
	for _, s := range b.doc.AdditionalServices {
		out = append(out, NewElement("ProdottiServiziAggiuntivi",
			Leaf("NOME", s.Name),
			Leaf("DETTAGLIO", s.Details),
			optional("MACROAREA", s.MacroArea),
			optional("DETTAGLI_MACROAREA", s.MacroAreaDetails),
		))
	}
	return out
}
