package schema

import (
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"

	"github.com/goliatone/go-offergen/pkg/format"
	"github.com/goliatone/go-offergen/pkg/offer"
)

// Message renders a machine-stable message for a validator field error.
func Message(fe validator.FieldError) string {
	param := fe.Param()
	stringish := fe.Kind() == reflect.String
	collection := fe.Kind() == reflect.Slice || fe.Kind() == reflect.Map

	switch fe.Tag() {
	case "required":
		return "required"
	case "max":
		switch {
		case stringish:
			return fmt.Sprintf("must be at most %s characters", param)
		case collection:
			return fmt.Sprintf("must have at most %s entries", param)
		default:
			return fmt.Sprintf("must be at most %s", param)
		}
	case "min":
		switch {
		case stringish:
			return fmt.Sprintf("must be at least %s characters", param)
		case collection:
			return fmt.Sprintf("must have at least %s entries", param)
		default:
			return fmt.Sprintf("must be at least %s", param)
		}
	case "len":
		if stringish {
			return fmt.Sprintf("must be exactly %s characters", param)
		}
		return fmt.Sprintf("must have exactly %s entries", param)
	case "ne":
		return fmt.Sprintf("must not be %s", param)
	case "number", "numeric":
		return "must contain digits only"
	case "alphanum":
		return "must be alphanumeric"
	case "url":
		return "must be a valid URL"
	case TagAlnum16:
		return "must be exactly 16 alphanumeric characters"
	case TagOfferDate:
		return fmt.Sprintf("must match %s", format.DateTimePattern)
	case TagMonthYear:
		return fmt.Sprintf("must match %s", format.MonthYearPattern)
	case TagEnum:
		allowed := ""
		if e, ok := offer.EnumByName(param); ok {
			allowed = e.Allowed()
		}
		return fmt.Sprintf("invalid value %q; allowed: %s", fmt.Sprint(fe.Value()), allowed)
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
