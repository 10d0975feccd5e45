package validation

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strictPolicy = bluemonday.StrictPolicy()

// SanitizeText strips all markup from user supplied free text and trims it.
func SanitizeText(s string) string {
	return strings.TrimSpace(html.UnescapeString(strictPolicy.Sanitize(s)))
}

// SanitizeTextPtr is SanitizeText for optional fields.
func SanitizeTextPtr(s *string) *string {
	if s == nil {
		return nil
	}
	clean := SanitizeText(*s)
	return &clean
}
