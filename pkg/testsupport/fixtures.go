package testsupport

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/goliatone/go-offergen/pkg/offer"
)

// IdentityCode is the seller identity used by every fixture.
const IdentityCode = "ABCDEFGH12345678"

// ElectricityOffer returns a complete fixed-price electricity offer that passes
// every check. Each call returns a fresh document so tests can mutate it.
func ElectricityOffer() *offer.Document {
	return &offer.Document{
		Identification: &offer.Identification{IdentityCode: IdentityCode, OfferCode: "WINTER2024"},
		OfferDetails: &offer.OfferDetails{
			MarketType:              offer.MarketElectricity,
			SingleOffer:             "SI",
			ClientType:              offer.ClientDomestic,
			ResidentialStatus:       "01",
			OfferType:               offer.OfferFixed,
			ContractActivationTypes: []string{"01", "02"},
			Name:                    "Winter Offer 2024",
			Description:             "Fixed price electricity offer & more",
			Duration:                12,
			Guarantees:              "None",
		},
		ActivationMethods:  &offer.ActivationMethods{Methods: []string{"01"}},
		ContactInformation: &offer.ContactInformation{Phone: "800123456", VendorWebsite: "https://example.com", OfferURL: "https://example.com/winter"},
		Validity:           &offer.Validity{StartDate: "01/01/2024_00:00:00", EndDate: "31/12/2024_23:59:59"},
		Characteristics: &offer.Characteristics{
			ConsumptionMin: Int64(1000),
			ConsumptionMax: Int64(5000),
			PowerMin:       Decimal("3"),
			PowerMax:       Decimal("6.0"),
		},
		PaymentMethods: []offer.PaymentMethod{{Method: "01"}},
		RegulatedComponents: &offer.RegulatedComponents{
			Codes:       []string{"01", "02"},
			Dispatching: []offer.Dispatching{{Type: "01", Value: *Decimal("0.012345"), Name: "Dispatching"}},
		},
		TimeBands: &offer.TimeBands{
			Typology: "03",
			Weekly:   WeeklyF1F2F3(),
		},
		CompanyComponents: []offer.CompanyComponent{
			{
				Name:        "Energy price",
				Description: "Energy price per band",
				Type:        "01",
				MacroArea:   "04",
				Intervals: []offer.PriceInterval{
					{Band: "02", Price: *Decimal("0.1"), Unit: offer.UnitPerKWh},
					{Band: "03", Price: *Decimal("0.09"), Unit: offer.UnitPerKWh},
					{Band: "04", Price: *Decimal("0.08"), Unit: offer.UnitPerKWh},
				},
			},
			{
				Name:        "Fixed fee",
				Description: "Yearly commercialisation fee",
				Type:        "01",
				MacroArea:   "01",
				Intervals:   []offer.PriceInterval{{Price: *Decimal("96"), Unit: offer.UnitPerYear}},
			},
		},
		ContractualConditions: []offer.ContractualCondition{
			{Type: "01", Description: "Activation within 30 days", Limiting: "02"},
		},
		Zones: &offer.Zones{Regions: []string{"01", "03"}},
		Discounts: []offer.Discount{
			{
				Name:          "Welcome",
				Description:   "Welcome discount",
				Validity:      "01",
				VATApplicable: "01",
				Condition:     offer.DiscountCondition{Code: offer.ConditionUnconditional},
				Prices:        []offer.DiscountPrice{{Type: "01", Unit: offer.UnitFlatEuros, Price: *Decimal("30")}},
			},
		},
		AdditionalServices: []offer.AdditionalService{
			{Name: "Boiler check", Details: "Annual boiler check", MacroArea: "01"},
		},
	}
}

// GasOffer returns a valid variable-price gas offer.
func GasOffer() *offer.Document {
	return &offer.Document{
		Identification: &offer.Identification{IdentityCode: IdentityCode, OfferCode: "GASVAR01"},
		OfferDetails: &offer.OfferDetails{
			MarketType:              offer.MarketGas,
			SingleOffer:             "SI",
			ClientType:              "02",
			OfferType:               offer.OfferVariable,
			ContractActivationTypes: []string{"01"},
			Name:                    "Gas Index",
			Description:             "Variable gas offer indexed to PSV",
			Duration:                -1,
			Guarantees:              "Deposit",
		},
		ActivationMethods:  &offer.ActivationMethods{Methods: []string{"02", "99"}, Description: "Phone and partner shops"},
		ContactInformation: &offer.ContactInformation{Phone: "800654321"},
		Validity:           &offer.Validity{StartDate: "01/10/2024_00:00:00"},
		PaymentMethods: []offer.PaymentMethod{
			{Method: "01"},
			{Method: "99", Description: "Postal order"},
		},
		RegulatedComponents: &offer.RegulatedComponents{Codes: []string{"03", "04"}},
		PriceReferences:     &offer.PriceReferences{PriceIndex: "11"},
		CompanyComponents: []offer.CompanyComponent{
			{
				Name:        "Gas spread",
				Description: "Spread over PSV",
				Type:        "02",
				MacroArea:   "04",
				Intervals:   []offer.PriceInterval{{Price: *Decimal("0.05"), Unit: offer.UnitPerSmc}},
			},
		},
		Discounts: []offer.Discount{
			{
				Name:          "Loyalty",
				Description:   "Loyalty discount",
				Period:        &offer.ValidityPeriod{Duration: Int(12)},
				VATApplicable: "02",
				Condition:     offer.DiscountCondition{Code: "02"},
				Prices:        []offer.DiscountPrice{{Type: "04", Unit: offer.UnitPerSmc, Price: *Decimal("0.1")}},
			},
		},
	}
}

// DualOffer returns a valid dual fuel offer linking one offer per market.
func DualOffer() *offer.Document {
	doc := ElectricityOffer()
	doc.Identification.OfferCode = "DUAL2024"
	doc.OfferDetails.MarketType = offer.MarketDualFuel
	doc.OfferDetails.SingleOffer = ""
	doc.RegulatedComponents.Codes = []string{"01", "03"}
	doc.DualOfferLinks = &offer.DualOfferLinks{
		ElectricityOffers: []string{"WINTER2024"},
		GasOffers:         []string{"GASVAR01"},
	}
	return doc
}

// WeeklyF1F2F3 returns a schedule with F1/F2/F3 on weekdays and F3 otherwise.
func WeeklyF1F2F3() *offer.WeeklySchedule {
	weekday := "00-08:F3;08-19:F1;19-24:F2"
	return &offer.WeeklySchedule{
		Monday:    weekday,
		Tuesday:   weekday,
		Wednesday: weekday,
		Thursday:  weekday,
		Friday:    weekday,
		Saturday:  "00-07:F3;07-23:F2;23-24:F3",
		Sunday:    "00-24:F3",
		Holidays:  "00-24:F3",
	}
}

// Decimal parses a decimal literal, panicking on malformed input.
func Decimal(raw string) *decimal.Decimal {
	d := decimal.RequireFromString(raw)
	return &d
}

// Int64 returns a pointer to v.
func Int64(v int64) *int64 { return &v }

// Int returns a pointer to v.
func Int(v int) *int { return &v }

// LoadDocument reads a JSON fixture into an offer document.
func LoadDocument(t *testing.T, path string) *offer.Document {
	t.Helper()

	doc, err := LoadDocumentFromPath(path)
	if err != nil {
		t.Fatalf("load document: %v", err)
	}
	return doc
}

// LoadDocumentFromPath returns a document without requiring testing.T.
func LoadDocumentFromPath(path string) (*offer.Document, error) {
	if path == "" {
		return nil, errors.New("testsupport: document path is required")
	}
	return offer.LoadFile(path)
}

// Fixture resolves a file under this package's testdata directory regardless
// of the calling package's working directory.
func Fixture(t *testing.T, name string) string {
	t.Helper()

	root, err := moduleRoot()
	if err != nil {
		t.Fatalf("locate module root: %v", err)
	}
	return filepath.Join(root, "pkg", "testsupport", "testdata", name)
}

func moduleRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("testsupport: go.mod not found")
		}
		dir = parent
	}
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}
