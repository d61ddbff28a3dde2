package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"
)

// ErrValidation is matched by every ValidationErrors value.
var ErrValidation = errors.New("validation failed")

// ValidationErrors maps a field name to its first failed rule message.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for field := range v {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, v[field]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (v ValidationErrors) Is(target error) bool {
	return target == ErrValidation
}

func (v ValidationErrors) add(field, message string) {
	if _, exists := v[field]; !exists {
		v[field] = message
	}
}

func (v ValidationErrors) requireText(field, value string, max int) {
	if strings.TrimSpace(value) == "" {
		v.add(field, fmt.Sprintf("The %s field is required.", field))
		return
	}
	v.maxText(field, value, max)
}

func (v ValidationErrors) maxText(field, value string, max int) {
	if utf8.RuneCountInString(value) > max {
		v.add(field, fmt.Sprintf("The %s field must not be greater than %d characters.", field, max))
	}
}

func (v ValidationErrors) notBefore(field string, value *time.Time, today time.Time) {
	if value == nil {
		return
	}
	y, m, d := today.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, today.Location())
	if value.Before(start) {
		v.add(field, fmt.Sprintf("The %s field must be a date after or equal to today.", field))
	}
}

func (v ValidationErrors) err() error {
	if len(v) == 0 {
		return nil
	}
	return v
}
