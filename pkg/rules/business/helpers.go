package business

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/goliatone/go-offergen/pkg/offer"
	"github.com/goliatone/go-offergen/pkg/validation"
)

// Messages shared by several rules.
const (
	msgRequired          = "required"
	msgOtherDescription  = "description required when Other (99) is selected"
	msgBothConfigured    = "validity and period both configured"
	msgMustSpecifyOne    = "must specify one of validity or period"
	msgSectionRequired   = "section is required"
	msgRangeEqual        = "must be greater than %s (values are equal)"
	msgRangeInverted     = "must be greater than %s"
	msgCardinality       = "%d required, found %d"
	msgMarkup            = "must not contain markup"
	msgDuplicate         = "duplicate value %q"
	msgElectricityOnly   = "only allowed for electricity offers"
	msgDualOnly          = "only allowed for dual fuel offers"
	msgNotForGas         = "not applicable to gas offers"
	msgComponentMarket   = "code %s not allowed for market %s"
	msgUnitMarket        = "unit %s not applicable to %s offers"
	msgScheduleCoverage  = "slots must cover 00 to 24 without gaps"
	msgScheduleMalformed = "malformed slot %q"
)

func businessError(message string, path ...string) *validation.Error {
	err := validation.NewError(validation.CodeBusiness, message, path...)
	return &err
}

func section(name offer.SectionName, segments ...string) []string {
	out := make([]string, 0, len(segments)+1)
	out = append(out, string(name))
	return append(out, segments...)
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func contains(values []string, code string) bool {
	for _, v := range values {
		if v == code {
			return true
		}
	}
	return false
}

// rangeOrder enforces max > min. cmp is max compared with min.
func rangeOrder(cmp int, minLabel string, path ...string) *validation.Error {
	switch {
	case cmp > 0:
		return nil
	case cmp == 0:
		return businessError(fmt.Sprintf(msgRangeEqual, minLabel), path...)
	default:
		return businessError(fmt.Sprintf(msgRangeInverted, minLabel), path...)
	}
}

func int64Order(min, max *int64, minLabel string, path ...string) *validation.Error {
	if min == nil || max == nil {
		return nil
	}
	cmp := 0
	switch {
	case *max > *min:
		cmp = 1
	case *max < *min:
		cmp = -1
	}
	return rangeOrder(cmp, minLabel, path...)
}

func decimalOrder(min, max *decimal.Decimal, minLabel string, path ...string) *validation.Error {
	if min == nil || max == nil {
		return nil
	}
	return rangeOrder(max.Cmp(*min), minLabel, path...)
}

func marketLabel(m offer.MarketType) string {
	if label, ok := offer.MarketTypes.Label(string(m)); ok {
		return strings.ToLower(label)
	}
	return string(m)
}

func unitLabel(code string) string {
	if label, ok := offer.Units.Label(code); ok {
		return label
	}
	return code
}

func appendErr(out []validation.Error, err *validation.Error) []validation.Error {
	if err == nil {
		return out
	}
	return append(out, *err)
}
