// Package forms provides huh-based prompts.
package forms

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/user/ytcut/pkg/timeutil"
)

var errURLRequired = errors.New("URL is required")

// CutFormResult holds the values collected by the cut prompts.
type CutFormResult struct {
	URL   string
	Start string
	End   string
}

// Normalize trims surrounding whitespace from every field.
func (r *CutFormResult) Normalize() {
	r.URL = strings.TrimSpace(r.URL)
	r.Start = strings.TrimSpace(r.Start)
	r.End = strings.TrimSpace(r.End)
}

// Missing reports whether any field is still empty.
func (r *CutFormResult) Missing() bool {
	return strings.TrimSpace(r.URL) == "" || strings.TrimSpace(r.Start) == "" || strings.TrimSpace(r.End) == ""
}

// ValidateURL rejects blank input.
func ValidateURL(s string) error {
	if strings.TrimSpace(s) == "" {
		return errURLRequired
	}
	return nil
}

// ValidateTime accepts SS, MM:SS and HH:MM:SS, ignoring surrounding whitespace.
func ValidateTime(s string) error {
	_, err := timeutil.ParseSeconds(strings.TrimSpace(s))
	return err
}

// NewCutForm asks for the fields of result that are still empty. Fields set
// beforehand (from flags) are not prompted for. Returns nil when nothing is missing.
func NewCutForm(result *CutFormResult) *huh.Form {
	var fields []huh.Field

	if strings.TrimSpace(result.URL) == "" {
		fields = append(fields, huh.NewInput().
			Title("URL:").
			Value(&result.URL).
			Validate(ValidateURL))
	}
	if strings.TrimSpace(result.Start) == "" {
		fields = append(fields, huh.NewInput().
			Title("Início (HH:MM:SS):").
			Value(&result.Start).
			Validate(ValidateTime))
	}
	if strings.TrimSpace(result.End) == "" {
		fields = append(fields, huh.NewInput().
			Title("Fim (HH:MM:SS):").
			Value(&result.End).
			Validate(ValidateTime))
	}

	if len(fields) == 0 {
		return nil
	}
	return huh.NewForm(huh.NewGroup(fields...)).WithTheme(Theme())
}
