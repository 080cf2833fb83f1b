package offer

import (
	"sort"
	"strings"
)

// Option is one legal code of an enumeration.
type Option struct {
	Code  string
	Label string
}

// Enum is a closed set of codes for one enumerated field.
type Enum struct {
	name    string
	element string
	options []Option
	index   map[string]int
}

// Name returns the identifier used by the `enum=<name>` schema tag.
func (e *Enum) Name() string { return e.name }

// Element returns the XML element name carrying the code.
func (e *Enum) Element() string { return e.element }

// Contains reports whether code belongs to the set.
func (e *Enum) Contains(code string) bool {
	if e == nil {
		return false
	}
	_, ok := e.index[code]
	return ok
}

// Codes returns the legal codes in declaration order.
func (e *Enum) Codes() []string {
	out := make([]string, len(e.options))
	for i, opt := range e.options {
		out[i] = opt.Code
	}
	return out
}

// Options returns a copy of the declared options.
func (e *Enum) Options() []Option {
	return append([]Option(nil), e.options...)
}

// Label returns the human readable label for code.
func (e *Enum) Label(code string) (string, bool) {
	idx, ok := e.index[code]
	if !ok {
		return "", false
	}
	return e.options[idx].Label, true
}

// Allowed renders the legal codes as "01, 02, 03" for messages.
func (e *Enum) Allowed() string {
	return strings.Join(e.Codes(), ", ")
}

var enumRegistry = map[string]*Enum{}

func newEnum(name, element string, options ...Option) *Enum {
	e := &Enum{
		name:    name,
		element: element,
		options: options,
		index:   make(map[string]int, len(options)),
	}
	for i, opt := range options {
		e.index[opt.Code] = i
	}
	enumRegistry[name] = e
	return e
}

// EnumByName resolves an enumeration by its schema tag name.
func EnumByName(name string) (*Enum, bool) {
	e, ok := enumRegistry[strings.TrimSpace(name)]
	return e, ok
}

// EnumNames lists every registered enumeration name, sorted.
func EnumNames() []string {
	names := make([]string, 0, len(enumRegistry))
	for name := range enumRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// MarketType discriminates electricity, gas and dual fuel offers.
type MarketType string

const (
	MarketElectricity MarketType = "01"
	MarketGas         MarketType = "02"
	MarketDualFuel    MarketType = "03"
)

// OfferType discriminates fixed, variable and flat pricing.
type OfferType string

const (
	OfferFixed    OfferType = "01"
	OfferVariable OfferType = "02"
	OfferFlat     OfferType = "03"
)

// Codes that drive conditional rules.
const (
	CodeOther = "99"

	ClientDomestic = "01"

	TypologySingleRate = "01"

	UnitPerYear   = "01"
	UnitPerKW     = "02"
	UnitPerKWh    = "03"
	UnitPerSmc    = "04"
	UnitFlatEuros = "05"

	DiscountPricePercentage = "04"

	ConditionUnconditional = "00"
)

var (
	MarketTypes = newEnum("market_type", "TIPO_MERCATO",
		Option{"01", "Electricity"},
		Option{"02", "Gas"},
		Option{"03", "Dual fuel"},
	)
	SingleOffer = newEnum("single_offer", "OFFERTA_SINGOLA",
		Option{"SI", "Offer can be subscribed on its own"},
		Option{"NO", "Offer only available jointly"},
	)
	ClientTypes = newEnum("client_type", "TIPO_CLIENTE",
		Option{"01", "Domestic"},
		Option{"02", "Other uses"},
		Option{"03", "Condominium with domestic use"},
	)
	ResidentialStatuses = newEnum("residential_status", "DOMESTICO_RESIDENTE",
		Option{"01", "Resident"},
		Option{"02", "Non resident"},
		Option{"03", "All"},
	)
	OfferTypes = newEnum("offer_type", "TIPO_OFFERTA",
		Option{"01", "Fixed"},
		Option{"02", "Variable"},
		Option{"03", "Flat"},
	)
	ContractActivations = newEnum("contract_activation", "TIPOLOGIA_ATT_CONTR",
		Option{"01", "Supplier change"},
		Option{"02", "First activation"},
		Option{"03", "Reactivation"},
		Option{"04", "Transfer of contract"},
		Option{"99", "Always"},
	)
	ActivationMethodCodes = newEnum("activation_method", "MODALITA",
		Option{"01", "Web only"},
		Option{"02", "Any channel"},
		Option{"03", "Point of sale"},
		Option{"04", "Teleselling"},
		Option{"05", "Agency"},
		Option{"99", "Other"},
	)
	PaymentMethods = newEnum("payment_method", "MODALITA_PAGAMENTO",
		Option{"01", "Bank direct debit"},
		Option{"02", "Postal direct debit"},
		Option{"03", "Credit card direct debit"},
		Option{"04", "Prefilled payment slip"},
		Option{"99", "Other"},
	)
	PriceIndexes = newEnum("price_index", "IDX_PREZZO_ENERGIA",
		Option{"01", "PUN monthly"},
		Option{"02", "PUN bimonthly"},
		Option{"03", "PUN quarterly"},
		Option{"04", "PUN half-yearly"},
		Option{"05", "PUN yearly"},
		Option{"11", "PSV monthly"},
		Option{"12", "PSV bimonthly"},
		Option{"13", "PSV quarterly"},
		Option{"14", "PSV half-yearly"},
		Option{"15", "PSV yearly"},
		Option{"99", "Other"},
	)
	TimeBandTypologies = newEnum("time_band_typology", "TIPOLOGIA_FASCE",
		Option{"01", "Single rate"},
		Option{"02", "F1, F2"},
		Option{"03", "F1, F2, F3"},
		Option{"04", "F1, F2, F3 weekly variant"},
		Option{"05", "F1, F2, F3, F4"},
		Option{"06", "F1, F2, F3, F4, F5"},
		Option{"07", "Peak, off-peak"},
		Option{"91", "F1, F23"},
		Option{"92", "F2, F13"},
		Option{"93", "F3, F12"},
	)
	DispatchingTypes = newEnum("dispatching_type", "TIPO_DISPACCIAMENTO",
		Option{"01", "Dispatching (del. 111/06)"},
		Option{"02", "Dispatching price component"},
		Option{"03", "Ancillary services market"},
		Option{"04", "Wind modulation"},
		Option{"05", "Essential units"},
		Option{"06", "Grid operator"},
		Option{"07", "Production capacity"},
		Option{"08", "Interruptibility"},
		Option{"09", "Capacity market (short term)"},
		Option{"10", "Capacity market (mid term)"},
		Option{"11", "Safeguard charges"},
		Option{"12", "Gradual protection charges"},
		Option{"13", "Low voltage dispatching"},
		Option{"99", "Other"},
	)
	RegulatedComponentCodes = newEnum("regulated_component", "CODICE",
		Option{"01", "PCV"},
		Option{"02", "PPE"},
		Option{"03", "CCR"},
		Option{"04", "CPR"},
		Option{"05", "GRAD"},
		Option{"06", "QTint"},
		Option{"07", "QTpsv"},
		Option{"09", "QVD fixed"},
		Option{"10", "QVD variable"},
	)
	ComponentTypes = newEnum("component_type", "TIPOLOGIA",
		Option{"01", "Standard"},
		Option{"02", "Optional"},
	)
	ComponentMacroAreas = newEnum("component_macro_area", "MACROAREA",
		Option{"01", "Fixed commercialisation fee"},
		Option{"02", "Energy commercialisation fee"},
		Option{"04", "Energy price"},
		Option{"05", "One-off fee"},
		Option{"06", "Renewable energy"},
	)
	ComponentBands = newEnum("component_band", "FASCIA_COMPONENTE",
		Option{"01", "Single rate"},
		Option{"02", "F1"},
		Option{"03", "F2"},
		Option{"04", "F3"},
		Option{"05", "F4"},
		Option{"06", "F5"},
		Option{"07", "F6"},
		Option{"08", "Peak"},
		Option{"09", "Off-peak"},
		Option{"91", "F23"},
		Option{"92", "F13"},
		Option{"93", "F12"},
	)
	Units = newEnum("unit", "UNITA_MISURA",
		Option{"01", "EUR/year"},
		Option{"02", "EUR/kW"},
		Option{"03", "EUR/kWh"},
		Option{"04", "EUR/Smc"},
		Option{"05", "EUR"},
	)
	ContractualConditionTypes = newEnum("contractual_condition", "TIPOLOGIA_CONDIZIONE",
		Option{"01", "Activation"},
		Option{"02", "Deactivation"},
		Option{"03", "Withdrawal"},
		Option{"04", "Multi-year commitment"},
		Option{"05", "Limiting conditions"},
		Option{"99", "Other"},
	)
	LimitingFlags = newEnum("limiting", "LIMITANTE",
		Option{"01", "Limiting"},
		Option{"02", "Not limiting"},
	)
	DiscountValidities = newEnum("discount_validity", "VALIDITA",
		Option{"01", "On entry"},
		Option{"02", "Within 12 months"},
		Option{"03", "After 12 months"},
	)
	VATApplicability = newEnum("vat_applicability", "IVA_SCONTO",
		Option{"01", "VAT applies"},
		Option{"02", "VAT does not apply"},
	)
	DiscountConditions = newEnum("discount_condition", "CONDIZIONE_APPLICAZIONE",
		Option{"00", "Unconditional"},
		Option{"01", "Web activation"},
		Option{"02", "Direct debit"},
		Option{"03", "Electronic bill"},
		Option{"99", "Other"},
	)
	DiscountPriceTypes = newEnum("discount_price_type", "TIPOLOGIA",
		Option{"01", "Fixed discount"},
		Option{"02", "Power discount"},
		Option{"03", "Energy discount"},
		Option{"04", "Percentage discount"},
	)
	ServiceMacroAreas = newEnum("service_macro_area", "MACROAREA",
		Option{"01", "Boiler"},
		Option{"02", "Insurance"},
		Option{"03", "Electric mobility"},
		Option{"04", "Solar panels"},
		Option{"05", "Air conditioning"},
		Option{"99", "Other"},
	)
	Months = newEnum("month", "MESE_VALIDITA",
		Option{"01", "January"},
		Option{"02", "February"},
		Option{"03", "March"},
		Option{"04", "April"},
		Option{"05", "May"},
		Option{"06", "June"},
		Option{"07", "July"},
		Option{"08", "August"},
		Option{"09", "September"},
		Option{"10", "October"},
		Option{"11", "November"},
		Option{"12", "December"},
	)
)

var (
	electricityComponents = map[string]struct{}{"01": {}, "02": {}}
	gasComponents         = map[string]struct{}{"03": {}, "04": {}, "05": {}, "06": {}, "07": {}, "09": {}, "10": {}}
)

// RegulatedComponentAllowed reports whether a regulated component code may
// be used for the given market. Dual fuel offers accept both subsets.
func RegulatedComponentAllowed(market MarketType, code string) bool {
	_, elec := electricityComponents[code]
	_, gas := gasComponents[code]
	switch market {
	case MarketElectricity:
		return elec
	case MarketGas:
		return gas
	case MarketDualFuel:
		return elec || gas
	default:
		return RegulatedComponentCodes.Contains(code)
	}
}
