package format

import (
	"encoding/xml"
	"html"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
)

var (
	markupPolicyOnce sync.Once
	markupPolicy     *bluemonday.Policy
)

// EscapeText returns s with the XML special characters escaped.
func EscapeText(s string) string {
	if s == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(s))
	// strings.Builder never returns write errors
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}

// CleanIdentifier upper-cases s, drops every character outside [A-Z0-9] and
// truncates the result to max characters (no limit when max <= 0).
func CleanIdentifier(s string, max int) string {
	upper := strings.ToUpper(s)
	var b strings.Builder
	b.Grow(len(upper))
	for _, r := range upper {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	out := b.String()
	if max > 0 && len(out) > max {
		out = out[:max]
	}
	return out
}

// IsAlphanumeric reports whether s is non-empty and made only of ASCII letters
// and digits.
func IsAlphanumeric(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !((c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9')) {
			return false
		}
	}
	return true
}

// RuneLen counts characters the way the length constraints do.
func RuneLen(s string) int {
	return utf8.RuneCountInString(s)
}

// ContainsMarkup reports whether free text carries HTML or other markup that
// a strict sanitizer would remove.
func ContainsMarkup(s string) bool {
	if !strings.ContainsAny(s, "<>") {
		return false
	}
	cleaned := html.UnescapeString(sanitizer().Sanitize(s))
	return cleaned != s
}

func sanitizer() *bluemonday.Policy {
	markupPolicyOnce.Do(func() {
		markupPolicy = bluemonday.StrictPolicy()
	})
	return markupPolicy
}
