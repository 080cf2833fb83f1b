package offer

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Action selects between a new submission and an update of an existing offer.
type Action string

const (
	ActionInsert Action = "insert"
	ActionUpdate Action = "update"
)

// ParseAction accepts the action tokens used by callers and by file names.
func ParseAction(raw string) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "insert", "inserimento":
		return ActionInsert, nil
	case "update", "aggiornamento":
		return ActionUpdate, nil
	default:
		return "", fmt.Errorf("offer: unknown action %q", raw)
	}
}

// Document is the aggregate offer. Optional single sections are pointers and
// repeatable sections are slices; a nil pointer or empty slice means the
// section is absent.
type Document struct {
	Identification        *Identification        `json:"identification,omitempty"`
	OfferDetails          *OfferDetails          `json:"offerDetails,omitempty"`
	ActivationMethods     *ActivationMethods     `json:"activationMethods,omitempty"`
	ContactInformation    *ContactInformation    `json:"contactInformation,omitempty"`
	Validity              *Validity              `json:"validity,omitempty"`
	Characteristics       *Characteristics       `json:"characteristics,omitempty"`
	PaymentMethods        []PaymentMethod        `json:"paymentMethods,omitempty"`
	RegulatedComponents   *RegulatedComponents   `json:"regulatedComponents,omitempty"`
	PriceReferences       *PriceReferences       `json:"priceReferences,omitempty"`
	DualOfferLinks        *DualOfferLinks        `json:"dualOfferLinks,omitempty"`
	TimeBands             *TimeBands             `json:"timeBands,omitempty"`
	CompanyComponents     []CompanyComponent     `json:"companyComponents,omitempty"`
	ContractualConditions []ContractualCondition `json:"contractualConditions,omitempty"`
	Zones                 *Zones                 `json:"zones,omitempty"`
	Discounts             []Discount             `json:"discounts,omitempty"`
	AdditionalServices    []AdditionalService    `json:"additionalServices,omitempty"`
}

// Identification carries the seller identity code and the offer code.
type Identification struct {
	IdentityCode string `json:"identityCode" validate:"required,alnum16"`
	OfferCode    string `json:"offerCode" validate:"required,max=32,alphanum"`
}

// OfferDetails describes the commercial offer.
type OfferDetails struct {
	MarketType              MarketType `json:"marketType" validate:"required,enum=market_type"`
	SingleOffer             string     `json:"singleOffer,omitempty" validate:"omitempty,enum=single_offer"`
	ClientType              string     `json:"clientType" validate:"required,enum=client_type"`
	ResidentialStatus       string     `json:"residentialStatus,omitempty" validate:"omitempty,enum=residential_status"`
	OfferType               OfferType  `json:"offerType" validate:"required,enum=offer_type"`
	ContractActivationTypes []string   `json:"contractActivationTypes" validate:"required,min=1,dive,enum=contract_activation"`
	Name                    string     `json:"name" validate:"required,max=255"`
	Description             string     `json:"description" validate:"required,max=3000"`
	// Duration in months, -1 for open-ended offers.
	Duration   int    `json:"duration" validate:"ne=0,min=-1,max=99"`
	Guarantees string `json:"guarantees" validate:"required,max=3000"`
}

// ActivationMethods lists the channels through which the offer is activated.
type ActivationMethods struct {
	Methods     []string `json:"methods" validate:"required,min=1,dive,enum=activation_method"`
	Description string   `json:"description,omitempty" validate:"max=2000"`
}

// ContactInformation holds the seller contacts.
type ContactInformation struct {
	Phone         string `json:"phone" validate:"required,max=15,number"`
	VendorWebsite string `json:"vendorWebsite,omitempty" validate:"omitempty,max=100,url"`
	OfferURL      string `json:"offerUrl,omitempty" validate:"omitempty,max=100,url"`
}

// Validity bounds the offer in time.
type Validity struct {
	StartDate string `json:"startDate" validate:"required,offerdate"`
	EndDate   string `json:"endDate,omitempty" validate:"omitempty,offerdate"`
}

// Characteristics carries the consumption and power envelope.
type Characteristics struct {
	ConsumptionMin *int64           `json:"consumptionMin,omitempty" validate:"omitempty,min=0"`
	ConsumptionMax *int64           `json:"consumptionMax,omitempty" validate:"omitempty,min=0"`
	PowerMin       *decimal.Decimal `json:"powerMin,omitempty" validate:"omitempty,min=0"`
	PowerMax       *decimal.Decimal `json:"powerMax,omitempty" validate:"omitempty,min=0"`
}

// PaymentMethod is one accepted payment channel.
type PaymentMethod struct {
	Method      string `json:"method" validate:"required,enum=payment_method"`
	Description string `json:"description,omitempty" validate:"max=25"`
}

// RegulatedComponents lists regulated tariff components and dispatching entries.
type RegulatedComponents struct {
	Codes       []string      `json:"codes,omitempty" validate:"dive,enum=regulated_component"`
	Dispatching []Dispatching `json:"dispatching,omitempty" validate:"dive"`
}

// Dispatching is one dispatching charge.
type Dispatching struct {
	Type        string          `json:"type" validate:"required,enum=dispatching_type"`
	Value       decimal.Decimal `json:"value"`
	Name        string          `json:"name,omitempty" validate:"max=25"`
	Description string          `json:"description,omitempty" validate:"max=255"`
}

// PriceReferences identifies the index a variable price follows.
type PriceReferences struct {
	PriceIndex       string `json:"priceIndex" validate:"required,enum=price_index"`
	OtherDescription string `json:"otherDescription,omitempty" validate:"max=3000"`
}

// DualOfferLinks lists the offer codes joined in a dual fuel offer.
type DualOfferLinks struct {
	ElectricityOffers []string `json:"electricityOffers,omitempty" validate:"dive,max=32,alphanum"`
	GasOffers         []string `json:"gasOffers,omitempty" validate:"dive,max=32,alphanum"`
}

// TimeBands selects the time-band typology and its weekly schedule.
type TimeBands struct {
	Typology string          `json:"typology" validate:"required,enum=time_band_typology"`
	Weekly   *WeeklySchedule `json:"weekly,omitempty"`
}

// WeeklySchedule assigns bands to each day. Each value is a list of
// "HH-HH:Fn" slots separated by semicolons covering 00 to 24.
type WeeklySchedule struct {
	Monday    string `json:"monday,omitempty" validate:"max=49"`
	Tuesday   string `json:"tuesday,omitempty" validate:"max=49"`
	Wednesday string `json:"wednesday,omitempty" validate:"max=49"`
	Thursday  string `json:"thursday,omitempty" validate:"max=49"`
	Friday    string `json:"friday,omitempty" validate:"max=49"`
	Saturday  string `json:"saturday,omitempty" validate:"max=49"`
	Sunday    string `json:"sunday,omitempty" validate:"max=49"`
	Holidays  string `json:"holidays,omitempty" validate:"max=49"`
}

// Days returns the schedule as (field, value) pairs in element order.
func (w WeeklySchedule) Days() [][2]string {
	return [][2]string{
		{"monday", w.Monday},
		{"tuesday", w.Tuesday},
		{"wednesday", w.Wednesday},
		{"thursday", w.Thursday},
		{"friday", w.Friday},
		{"saturday", w.Saturday},
		{"sunday", w.Sunday},
		{"holidays", w.Holidays},
	}
}

// CompanyComponent is a seller-defined price component.
type CompanyComponent struct {
	Name        string          `json:"name" validate:"required,max=255"`
	Description string          `json:"description" validate:"required,max=255"`
	Type        string          `json:"type" validate:"required,enum=component_type"`
	MacroArea   string          `json:"macroArea" validate:"required,enum=component_macro_area"`
	Intervals   []PriceInterval `json:"intervals" validate:"required,min=1,dive"`
}

// PriceInterval is one price step of a company component.
type PriceInterval struct {
	Band            string          `json:"band,omitempty" validate:"omitempty,enum=component_band"`
	ConsumptionFrom *int64          `json:"consumptionFrom,omitempty" validate:"omitempty,min=0"`
	ConsumptionTo   *int64          `json:"consumptionTo,omitempty" validate:"omitempty,min=0"`
	Price           decimal.Decimal `json:"price"`
	Unit            string          `json:"unit" validate:"required,enum=unit"`
	Period          *ValidityPeriod `json:"period,omitempty"`
}

// ValidityPeriod is the structured form of a validity window.
type ValidityPeriod struct {
	Duration   *int     `json:"duration,omitempty" validate:"omitempty,min=1,max=99"`
	ValidUntil string   `json:"validUntil,omitempty" validate:"omitempty,monthyear"`
	Months     []string `json:"months,omitempty" validate:"dive,enum=month"`
}

// Empty reports whether no field of the period is set.
func (p *ValidityPeriod) Empty() bool {
	return p == nil || (p.Duration == nil && strings.TrimSpace(p.ValidUntil) == "" && len(p.Months) == 0)
}

// ContractualCondition is one contractual clause.
type ContractualCondition struct {
	Type        string `json:"type" validate:"required,enum=contractual_condition"`
	OtherType   string `json:"otherType,omitempty" validate:"max=20"`
	Description string `json:"description" validate:"required,max=3000"`
	Limiting    string `json:"limiting" validate:"required,enum=limiting"`
}

// Zones restricts the offer geographically using ISTAT codes.
type Zones struct {
	Regions        []string `json:"regions,omitempty" validate:"dive,len=2,number"`
	Provinces      []string `json:"provinces,omitempty" validate:"dive,len=3,number"`
	Municipalities []string `json:"municipalities,omitempty" validate:"dive,len=6,number"`
}

// Discount is one discount applied to the offer. Exactly one of Validity
// (simple code) or Period (structured window) is set.
type Discount struct {
	Name          string            `json:"name" validate:"required,max=255"`
	Description   string            `json:"description" validate:"required,max=3000"`
	Validity      string            `json:"validity,omitempty" validate:"omitempty,enum=discount_validity"`
	Period        *ValidityPeriod   `json:"period,omitempty"`
	VATApplicable string            `json:"vatApplicable" validate:"required,enum=vat_applicability"`
	Condition     DiscountCondition `json:"condition"`
	Prices        []DiscountPrice   `json:"prices" validate:"required,min=1,dive"`
}

// DiscountCondition states when a discount applies.
type DiscountCondition struct {
	Code        string `json:"code" validate:"required,enum=discount_condition"`
	Description string `json:"description,omitempty" validate:"max=3000"`
}

// DiscountPrice is one priced step of a discount.
type DiscountPrice struct {
	Type       string          `json:"type" validate:"required,enum=discount_price_type"`
	ValidFrom  *int64          `json:"validFrom,omitempty" validate:"omitempty,min=0"`
	ValidUntil *int64          `json:"validUntil,omitempty" validate:"omitempty,min=0"`
	Unit       string          `json:"unit" validate:"required,enum=unit"`
	Price      decimal.Decimal `json:"price"`
}

// AdditionalService is a product or service bundled with the offer.
type AdditionalService struct {
	Name             string `json:"name" validate:"required,max=255"`
	Details          string `json:"details" validate:"required,max=3000"`
	MacroArea        string `json:"macroArea,omitempty" validate:"omitempty,enum=service_macro_area"`
	MacroAreaDetails string `json:"macroAreaDetails,omitempty" validate:"max=3000"`
}
