package xmlcheck

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goliatone/go-offergen/pkg/format"
	"github.com/goliatone/go-offergen/pkg/validation"
	"github.com/shopspring/decimal"
)

const documentField = "document"

// Validate checks an encoded Offerta document.
func Validate(data []byte) validation.Result {
	return ValidateReader(bytes.NewReader(data))
}

// ValidateFile reads and checks the document stored at path. An unreadable
// file yields a single fatal error.
func ValidateFile(path string) validation.Result {
	f, err := os.Open(path)
	if err != nil {
		return fatal(fmt.Sprintf("cannot read document: %v", err))
	}
	defer f.Close()
	return ValidateReader(f)
}

// ValidateReader checks the document read from r. Malformed input yields a
// single fatal error and skips every other step.
func ValidateReader(r io.Reader) validation.Result {
	tree, err := parse(r)
	if err != nil {
		return fatal(fmt.Sprintf("malformed XML: %v", err))
	}
	if tree.name != rootElement {
		return validation.NewResult([]validation.Error{
			validation.AtField(validation.CodeMissingSection, rootElement,
				fmt.Sprintf("root element must be %s, found %s", rootElement, tree.name)),
		})
	}

	return validation.NewResult(
		checkRequired(tree),
		checkConstraints(tree),
		checkEnumerations(tree),
		checkDates(tree),
	)
}

func fatal(message string) validation.Result {
	return validation.NewResult([]validation.Error{
		validation.AtField(validation.CodeFatal, documentField, message),
	})
}

func checkRequired(tree *node) []validation.Error {
	var errs []validation.Error
	var missing []string
	for _, path := range requiredPaths {
		if underMissing(path, missing) {
			continue
		}
		if len(find(tree, path)) == 0 {
			missing = append(missing, path)
			errs = append(errs, validation.AtField(validation.CodeMissingSection, path, "required element missing"))
		}
	}
	return errs
}

func underMissing(path string, missing []string) bool {
	for _, m := range missing {
		if strings.HasPrefix(path, m+".") {
			return true
		}
	}
	return false
}

func checkConstraints(tree *node) []validation.Error {
	var errs []validation.Error
	for _, c := range constraints {
		for _, m := range find(tree, c.path) {
			if msg := c.check(m.node.value()); msg != "" {
				errs = append(errs, validation.AtField(validation.CodeConstraint, m.field, msg))
			}
		}
	}
	return errs
}

// check returns the first violated bound for value, or "".
func (c constraint) check(value string) string {
	n := format.RuneLen(value)
	if c.maxLen > 0 && n > c.maxLen {
		return fmt.Sprintf("must be at most %d characters, found %d", c.maxLen, n)
	}
	if c.exactLen > 0 && n != c.exactLen {
		return fmt.Sprintf("must be exactly %d characters, found %d", c.exactLen, n)
	}
	if c.digits && !allDigits(value) {
		return "must contain digits only"
	}
	if c.kind == notNumeric {
		return ""
	}

	d, err := decimal.NewFromString(value)
	if err != nil {
		return "must be a number"
	}
	if c.kind == integer && !d.IsInteger() {
		return "must be an integer"
	}
	if c.min != nil && d.LessThan(*c.min) {
		return fmt.Sprintf("must be at least %s", c.min.String())
	}
	if c.max != nil && d.GreaterThan(*c.max) {
		return fmt.Sprintf("must be at most %s", c.max.String())
	}
	return ""
}

func allDigits(value string) bool {
	if value == "" {
		return false
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func checkEnumerations(tree *node) []validation.Error {
	var errs []validation.Error
	for _, e := range enumerations {
		for _, m := range find(tree, e.path) {
			value := m.node.value()
			if e.enum.Contains(value) {
				continue
			}
			errs = append(errs, validation.AtField(validation.CodeEnum, m.field,
				fmt.Sprintf("invalid value %q for %s; allowed: %s", value, e.enum.Element(), e.enum.Allowed())))
		}
	}
	return errs
}

func checkDates(tree *node) []validation.Error {
	var errs []validation.Error
	for _, f := range dateFields {
		for _, m := range find(tree, f.path) {
			value := m.node.value()
			ok, pattern := format.IsDateTime(value), format.DateTimePattern
			if f.monthYear {
				ok, pattern = format.IsMonthYear(value), format.MonthYearPattern
			}
			if !ok {
				errs = append(errs, validation.AtField(validation.CodeDateFormat, m.field,
					fmt.Sprintf("invalid date %q; expected %s", value, pattern)))
			}
		}
	}
	return errs
}
