package schema

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/goliatone/go-offergen/pkg/format"
	"github.com/goliatone/go-offergen/pkg/offer"
)

// Custom tags understood by the section structs.
const (
	TagEnum      = "enum"
	TagOfferDate = "offerdate"
	TagMonthYear = "monthyear"
	TagAlnum16   = "alnum16"
)

// NewValidator returns a validator configured for the offer model: json field
// names in error namespaces, decimals compared as numbers and the custom tags
// registered.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}
		return name
	})

	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		d, ok := field.Interface().(decimal.Decimal)
		if !ok {
			return nil
		}
		f, _ := d.Float64()
		return f
	}, decimal.Decimal{})

	mustRegister(v, TagEnum, func(fl validator.FieldLevel) bool {
		e, ok := offer.EnumByName(fl.Param())
		if !ok {
			return false
		}
		return e.Contains(fl.Field().String())
	})
	mustRegister(v, TagOfferDate, func(fl validator.FieldLevel) bool {
		return format.IsDateTime(fl.Field().String())
	})
	mustRegister(v, TagMonthYear, func(fl validator.FieldLevel) bool {
		return format.IsMonthYear(fl.Field().String())
	})
	mustRegister(v, TagAlnum16, func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		return len(value) == 16 && format.IsAlphanumeric(value)
	})

	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}
