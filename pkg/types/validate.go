package types

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

// DateLayout is the format of calendar dates such as start_date.
const DateLayout = "2006-01-02"

// Validation and authentication errors.
var (
	ErrValidation         = errors.New("validation failed")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationError reports every problem found in one entity. It matches
// ErrValidation under errors.Is.
type ValidationError struct {
	Entity   string
	Missing  []string // required fields that were empty
	Problems []string // fields present but malformed or out of range
}

func (e *ValidationError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing required fields: "+strings.Join(e.Missing, ", "))
	}
	parts = append(parts, e.Problems...)
	return fmt.Sprintf("%s: %s", e.Entity, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// validator accumulates problems for one entity.
type validator struct {
	entity   string
	missing  []string
	problems []string
}

func newValidator(entity string) *validator {
	return &validator{entity: entity}
}

// require records field as missing unless value is non-empty.
func (v *validator) require(field, value string) {
	if strings.TrimSpace(value) == "" {
		v.missing = append(v.missing, field)
	}
}

// oneOf checks value against the allowed set. Empty values are left to
// require.
func (v *validator) oneOf(field, value string, allowed map[string]bool) {
	if value == "" || allowed[value] {
		return
	}
	v.problems = append(v.problems, fmt.Sprintf("%s %q must be one of %s", field, value, strings.Join(keys(allowed), ", ")))
}

// date checks that a non-empty value is a YYYY-MM-DD calendar date.
func (v *validator) date(field, value string) {
	if value == "" {
		return
	}
	if _, err := time.Parse(DateLayout, value); err != nil {
		v.problems = append(v.problems, fmt.Sprintf("%s %q is not a YYYY-MM-DD date", field, value))
	}
}

func (v *validator) err() error {
	if len(v.missing) == 0 && len(v.problems) == 0 {
		return nil
	}
	return &ValidationError{Entity: v.entity, Missing: v.missing, Problems: v.problems}
}

func keys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
