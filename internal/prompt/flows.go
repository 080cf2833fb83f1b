package prompt

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-offergen/pkg/filename"
	"github.com/goliatone/go-offergen/pkg/format"
	"github.com/goliatone/go-offergen/pkg/offer"
)

// FileNameParts asks for identity code, action and description.
func FileNameParts(ctx context.Context, d Driver) (filename.Parts, error) {
	identity, err := d.Input(ctx, InputConfig{
		Message:   "Identity code",
		Help:      "16 alphanumeric characters",
		Validator: filename.ValidateIdentityCode,
	})
	if err != nil {
		return filename.Parts{}, err
	}

	actions := []filename.Action{filename.ActionInsert, filename.ActionUpdate}
	idx, err := d.Select(ctx, SelectConfig{
		Message: "Action",
		Options: []string{string(filename.ActionInsert), string(filename.ActionUpdate)},
	})
	if err != nil {
		return filename.Parts{}, err
	}
	if idx < 0 || idx >= len(actions) {
		return filename.Parts{}, ErrNoSelection
	}

	description, err := d.Input(ctx, InputConfig{
		Message: "Description",
		Help:    fmt.Sprintf("cleaned to at most %d letters and digits", filename.MaxDescription),
		Validator: func(s string) error {
			if format.CleanIdentifier(s, filename.MaxDescription) == "" {
				return filename.ErrEmptyDescription
			}
			return nil
		},
	})
	if err != nil {
		return filename.Parts{}, err
	}

	return filename.Parts{
		IdentityCode: strings.TrimSpace(identity),
		Action:       actions[idx],
		Description:  description,
	}, nil
}

// Draft walks through the mandatory sections and returns a document ready to
// be completed and validated.
func Draft(ctx context.Context, d Driver) (*offer.Document, error) {
	var doc offer.Document
	var err error

	if doc.Identification, err = identification(ctx, d); err != nil {
		return nil, err
	}
	if doc.OfferDetails, err = offerDetails(ctx, d); err != nil {
		return nil, err
	}

	methods, err := chooseMany(ctx, d, "Activation methods", offer.ActivationMethodCodes)
	if err != nil {
		return nil, err
	}
	doc.ActivationMethods = &offer.ActivationMethods{Methods: methods}
	if containsCode(methods, offer.CodeOther) {
		desc, err := d.Input(ctx, InputConfig{Message: "Describe the other activation method", Validator: required})
		if err != nil {
			return nil, err
		}
		doc.ActivationMethods.Description = desc
	}

	phone, err := d.Input(ctx, InputConfig{Message: "Contact phone", Validator: digits})
	if err != nil {
		return nil, err
	}
	doc.ContactInformation = &offer.ContactInformation{Phone: phone}

	start, err := d.Input(ctx, InputConfig{
		Message:   "Start date",
		Help:      format.DateTimePattern,
		Validator: dateTime,
	})
	if err != nil {
		return nil, err
	}
	doc.Validity = &offer.Validity{StartDate: start}

	payment, err := chooseOne(ctx, d, "Payment method", offer.PaymentMethods)
	if err != nil {
		return nil, err
	}
	doc.PaymentMethods = []offer.PaymentMethod{{Method: payment}}

	if err := d.Info(ctx, fmt.Sprintf("Draft %s ready with %d sections", doc.Identification.OfferCode, len(doc.PresentSections()))); err != nil {
		return nil, err
	}
	return &doc, nil
}

func identification(ctx context.Context, d Driver) (*offer.Identification, error) {
	identity, err := d.Input(ctx, InputConfig{Message: "Identity code", Validator: filename.ValidateIdentityCode})
	if err != nil {
		return nil, err
	}
	code, err := d.Input(ctx, InputConfig{
		Message: "Offer code",
		Validator: func(s string) error {
			if !format.IsAlphanumeric(s) || len(s) > 32 {
				return errors.New("must be 1 to 32 letters or digits")
			}
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	return &offer.Identification{IdentityCode: strings.ToUpper(identity), OfferCode: code}, nil
}

func offerDetails(ctx context.Context, d Driver) (*offer.OfferDetails, error) {
	var details offer.OfferDetails

	market, err := chooseOne(ctx, d, "Market", offer.MarketTypes)
	if err != nil {
		return nil, err
	}
	details.MarketType = offer.MarketType(market)
	if details.MarketType != offer.MarketDualFuel {
		if details.SingleOffer, err = chooseOne(ctx, d, "Offer sold on its own", offer.SingleOffer); err != nil {
			return nil, err
		}
	}

	if details.ClientType, err = chooseOne(ctx, d, "Client type", offer.ClientTypes); err != nil {
		return nil, err
	}
	if details.ClientType == offer.ClientDomestic {
		if details.ResidentialStatus, err = chooseOne(ctx, d, "Residential status", offer.ResidentialStatuses); err != nil {
			return nil, err
		}
	}

	kind, err := chooseOne(ctx, d, "Offer type", offer.OfferTypes)
	if err != nil {
		return nil, err
	}
	details.OfferType = offer.OfferType(kind)

	if details.ContractActivationTypes, err = chooseMany(ctx, d, "Contract activation", offer.ContractActivations); err != nil {
		return nil, err
	}
	if details.Name, err = d.Input(ctx, InputConfig{Message: "Offer name", Validator: required}); err != nil {
		return nil, err
	}
	if details.Description, err = d.TextArea(ctx, TextAreaConfig{Message: "Offer description"}); err != nil {
		return nil, err
	}

	duration, err := d.Input(ctx, InputConfig{
		Message:   "Duration in months",
		Help:      "-1 for indefinite, 1 to 99 otherwise",
		Default:   "12",
		Validator: durationMonths,
	})
	if err != nil {
		return nil, err
	}
	details.Duration, _ = strconv.Atoi(strings.TrimSpace(duration))

	if details.Guarantees, err = d.TextArea(ctx, TextAreaConfig{Message: "Guarantees", Default: "None"}); err != nil {
		return nil, err
	}
	return &details, nil
}

func enumOptions(e *offer.Enum) []string {
	opts := e.Options()
	out := make([]string, len(opts))
	for i, opt := range opts {
		out[i] = opt.Code + " " + opt.Label
	}
	return out
}

func chooseOne(ctx context.Context, d Driver, message string, e *offer.Enum) (string, error) {
	idx, err := d.Select(ctx, SelectConfig{Message: message, Options: enumOptions(e)})
	if err != nil {
		return "", err
	}
	codes := e.Codes()
	if idx < 0 || idx >= len(codes) {
		return "", ErrNoSelection
	}
	return codes[idx], nil
}

func chooseMany(ctx context.Context, d Driver, message string, e *offer.Enum) ([]string, error) {
	indices, err := d.MultiSelect(ctx, SelectConfig{Message: message, Options: enumOptions(e)})
	if err != nil {
		return nil, err
	}
	codes := e.Codes()
	var out []string
	for _, idx := range indices {
		if idx >= 0 && idx < len(codes) {
			out = append(out, codes[idx])
		}
	}
	if len(out) == 0 {
		return nil, ErrNoSelection
	}
	return out, nil
}

func containsCode(codes []string, code string) bool {
	for _, c := range codes {
		if c == code {
			return true
		}
	}
	return false
}

func required(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("value is required")
	}
	return nil
}

func digits(s string) error {
	if s == "" || strings.TrimLeft(s, "0123456789") != "" {
		return errors.New("digits only")
	}
	if len(s) > 15 {
		return errors.New("at most 15 digits")
	}
	return nil
}

func dateTime(s string) error {
	if !format.IsDateTime(s) {
		return fmt.Errorf("expected %s", format.DateTimePattern)
	}
	return nil
}

func durationMonths(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n == 0 || n < -1 || n > 99 {
		return errors.New("expected -1 or 1 to 99")
	}
	return nil
}
