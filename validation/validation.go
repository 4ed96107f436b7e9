package validation

import (
	"fmt"
	"net/mail"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// Error renders the violations as "field: code" pairs in field order.
func (v Violations) Error() string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, v[f]))
	}
	return strings.Join(parts, ", ")
}

// Basic validators
func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
	}
}

// Email checks that value is a single bare address.
func Email(field, value string, v Violations) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value {
		v[field] = "invalid_email"
	}
}

// Amount parses an optional non-negative number. Blank input yields def.
func Amount(field, value string, def decimal.Decimal, v Violations) decimal.Decimal {
	value = strings.TrimSpace(value)
	if value == "" {
		return def
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		v[field] = "not_a_number"
		return def
	}
	if d.IsNegative() {
		v[field] = "must_not_be_negative"
		return def
	}
	return d
}
