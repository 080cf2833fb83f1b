package validation

import (
	"github.com/goccy/go-json"
)

// Result is the outcome of a validation pass. It can only be built through
// NewResult, so Valid always agrees with the error list.
type Result struct {
	errors []Error
}

// NewResult concatenates the lists, drops blank messages and removes
// duplicates while keeping the first occurrence of each (Field, Message) pair.
func NewResult(lists ...[]Error) Result {
	total := 0
	for _, list := range lists {
		total += len(list)
	}
	if total == 0 {
		return Result{}
	}

	seen := make(map[identity]struct{}, total)
	out := make([]Error, 0, total)
	for _, list := range lists {
		for _, err := range list {
			key := err.key()
			if key.message == "" {
				continue
			}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, err)
		}
	}
	if len(out) == 0 {
		return Result{}
	}
	return Result{errors: out}
}

// Valid reports whether no errors were found.
func (r Result) Valid() bool { return len(r.errors) == 0 }

// Errors returns a copy of the findings in order.
func (r Result) Errors() []Error {
	if len(r.errors) == 0 {
		return nil
	}
	return append([]Error(nil), r.errors...)
}

// Len returns the number of findings.
func (r Result) Len() int { return len(r.errors) }

// Merge returns a new result holding r's errors followed by others'.
func (r Result) Merge(others ...Result) Result {
	lists := make([][]Error, 0, len(others)+1)
	lists = append(lists, r.errors)
	for _, other := range others {
		lists = append(lists, other.errors)
	}
	return NewResult(lists...)
}

// Field returns the findings addressed to field.
func (r Result) Field(field string) []Error {
	var out []Error
	for _, err := range r.errors {
		if err.Field == field {
			out = append(out, err)
		}
	}
	return out
}

// Messages returns the messages for field.
func (r Result) Messages(field string) []string {
	var out []string
	for _, err := range r.Field(field) {
		out = append(out, err.Message)
	}
	return out
}

// BySection groups findings by their root segment, preserving order inside
// each group.
func (r Result) BySection() map[string][]Error {
	if len(r.errors) == 0 {
		return nil
	}
	out := make(map[string][]Error)
	for _, err := range r.errors {
		section := err.Section()
		out[section] = append(out[section], err)
	}
	return out
}

type resultPayload struct {
	IsValid bool    `json:"isValid"`
	Errors  []Error `json:"errors"`
}

// MarshalJSON renders {"isValid": bool, "errors": [...]}.
func (r Result) MarshalJSON() ([]byte, error) {
	errs := r.errors
	if errs == nil {
		errs = []Error{}
	}
	return json.Marshal(resultPayload{IsValid: r.Valid(), Errors: errs})
}

// UnmarshalJSON restores a result, recomputing validity from the errors.
func (r *Result) UnmarshalJSON(data []byte) error {
	var payload resultPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return err
	}
	*r = NewResult(payload.Errors)
	return nil
}
