package domain

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// ─── Amount ─────────────────────────────────────────────────────────────────

// Amount is an optional non-negative quantity entered by the user.
// The zero value is empty. On the wire an empty Amount is "" and a set one
// is a plain JSON number, which is what the form layer writes.
type Amount struct {
	value float64
	set   bool
}

// Num returns a set Amount.
func Num(v float64) Amount { return Amount{value: v, set: true} }

// Empty returns an unset Amount.
func Empty() Amount { return Amount{} }

// IsSet reports whether the user entered a value.
func (a Amount) IsSet() bool { return a.set }

// Value returns the quantity, or 0 when empty.
func (a Amount) Value() float64 {
	if !a.set {
		return 0
	}
	return a.value
}

// String formats the amount without trailing zeros; empty amounts are "".
func (a Amount) String() string {
	if !a.set {
		return ""
	}
	return strconv.FormatFloat(a.value, 'f', -1, 64)
}

// MarshalJSON implements json.Marshaler.
func (a Amount) MarshalJSON() ([]byte, error) {
	if !a.set {
		return []byte(`""`), nil
	}
	return []byte(strconv.FormatFloat(a.value, 'f', -1, 64)), nil
}

// UnmarshalJSON accepts numbers, numeric strings, "" and null.
// Anything else decodes as empty rather than failing the whole document.
func (a *Amount) UnmarshalJSON(data []byte) error {
	*a = Amount{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		*a = parseAmount(s)
		return nil
	}
	*a = parseAmount(string(data))
	return nil
}

func parseAmount(s string) Amount {
	s = strings.TrimSpace(s)
	if s == "" {
		return Amount{}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return Amount{}
	}
	return Num(v)
}
