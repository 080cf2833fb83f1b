// Package filename derives and parses the canonical output file name
// {identity}_{action}_{description}.XML.
package filename

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-offergen/pkg/format"
	"github.com/goliatone/go-offergen/pkg/offer"
)

// Action is one of the two literal action tokens.
type Action string

const (
	ActionInsert Action = "INSERIMENTO"
	ActionUpdate Action = "AGGIORNAMENTO"
)

const (
	// Extension is appended to every generated name.
	Extension = ".XML"
	// IdentityLength is the exact identity code length.
	IdentityLength = 16
	// MaxDescription is the maximum cleaned description length.
	MaxDescription = 25
)

var (
	ErrInvalidIdentity  = errors.New("identity code must be 16 alphanumeric characters")
	ErrEmptyDescription = errors.New("description is empty after cleaning")
	ErrInvalidAction    = errors.New("unknown action")
	ErrMalformedName    = errors.New("malformed file name")
)

var namePattern = regexp.MustCompile(`^([A-Za-z0-9]{16})_(INSERIMENTO|AGGIORNAMENTO)_([A-Z0-9]{1,25})(?:_(\d+))?\.(?i:xml)$`)

// NamingError carries the offending parts of a failed naming request.
type NamingError struct {
	IdentityCode string
	Description  string
	Reason       error
}

func (e *NamingError) Error() string {
	return fmt.Sprintf("filename: %v (identity %q, description %q)", e.Reason, e.IdentityCode, e.Description)
}

func (e *NamingError) Unwrap() error {
	return e.Reason
}

// Parts are the components of a file name. Suffix holds the optional
// time-based disambiguator.
type Parts struct {
	IdentityCode string `json:"identityCode"`
	Action       Action `json:"action"`
	Description  string `json:"description"`
	Suffix       string `json:"suffix,omitempty"`
}

// ActionFor maps a document action to its file name token.
func ActionFor(action offer.Action) (Action, error) {
	switch action {
	case offer.ActionInsert:
		return ActionInsert, nil
	case offer.ActionUpdate:
		return ActionUpdate, nil
	default:
		return "", fmt.Errorf("filename: %w %q", ErrInvalidAction, action)
	}
}

// ValidateIdentityCode checks the identity code shape without re-casing it.
func ValidateIdentityCode(code string) error {
	if len(code) != IdentityLength || !format.IsAlphanumeric(code) {
		return &NamingError{IdentityCode: code, Reason: ErrInvalidIdentity}
	}
	return nil
}

// Generate returns {identity}_{action}_{cleaned description}.XML.
func Generate(parts Parts) (string, error) {
	base, err := base(parts)
	if err != nil {
		return "", err
	}
	return base + Extension, nil
}

// GenerateUnique appends the Unix millisecond timestamp of at before the
// extension.
func GenerateUnique(parts Parts, at time.Time) (string, error) {
	base, err := base(parts)
	if err != nil {
		return "", err
	}
	return base + "_" + strconv.FormatInt(at.UnixMilli(), 10) + Extension, nil
}

func base(parts Parts) (string, error) {
	if err := ValidateIdentityCode(parts.IdentityCode); err != nil {
		return "", err
	}
	if parts.Action != ActionInsert && parts.Action != ActionUpdate {
		return "", &NamingError{IdentityCode: parts.IdentityCode, Description: parts.Description,
			Reason: fmt.Errorf("%w %q", ErrInvalidAction, parts.Action)}
	}
	cleaned := format.CleanIdentifier(parts.Description, MaxDescription)
	if cleaned == "" {
		return "", &NamingError{IdentityCode: parts.IdentityCode, Description: parts.Description, Reason: ErrEmptyDescription}
	}
	return strings.Join([]string{parts.IdentityCode, string(parts.Action), cleaned}, "_"), nil
}

// Parse recovers the parts of a generated name. The description is the
// cleaned prefix, not the original text.
func Parse(name string) (Parts, error) {
	m := namePattern.FindStringSubmatch(name)
	if m == nil {
		return Parts{}, fmt.Errorf("filename: %w %q", ErrMalformedName, name)
	}
	return Parts{
		IdentityCode: m[1],
		Action:       Action(m[2]),
		Description:  m[3],
		Suffix:       m[4],
	}, nil
}
