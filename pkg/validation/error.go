package validation

import (
	"strings"
)

// Code classifies an Error for machine consumers.
type Code string

const (
	CodeSchema         Code = "schema"
	CodeBusiness       Code = "business"
	CodeFatal          Code = "fatal"
	CodeMissingSection Code = "missing-section"
	CodeConstraint     Code = "constraint"
	CodeEnum           Code = "enum"
	CodeDateFormat     Code = "date-format"
)

// Error is a single addressed validation finding. Field is the dotted path and
// Path its segments; the first segment names the section (or the XML root for
// structural findings). Two errors are the same finding when Field and Message
// match.
type Error struct {
	Field   string   `json:"field"`
	Message string   `json:"message"`
	Path    []string `json:"path,omitempty"`
	Code    Code     `json:"code,omitempty"`
}

// NewError builds an error addressed by its path segments.
func NewError(code Code, message string, path ...string) Error {
	return Error{
		Field:   strings.Join(path, "."),
		Message: message,
		Path:    append([]string(nil), path...),
		Code:    code,
	}
}

// AtField builds an error from a dotted field path.
func AtField(code Code, field, message string) Error {
	var path []string
	if field != "" {
		path = strings.Split(field, ".")
	}
	return Error{Field: field, Message: message, Path: path, Code: code}
}

// Section returns the first path segment.
func (e Error) Section() string {
	if len(e.Path) > 0 {
		return e.Path[0]
	}
	if idx := strings.IndexByte(e.Field, '.'); idx >= 0 {
		return e.Field[:idx]
	}
	return e.Field
}

func (e Error) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

type identity struct {
	field   string
	message string
}

func (e Error) key() identity {
	return identity{field: e.Field, message: strings.TrimSpace(e.Message)}
}
