package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// FlexFloat decodes a JSON number or a string-encoded decimal. The FPL API
// serializes several numeric fields ("form", "points_per_game",
// "selected_by_percent", expected-goal stats) as quoted strings; anything that
// fails to parse becomes 0 rather than an error.
type FlexFloat float64

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	*f = FlexFloat(parseFlexNumber(data))
	return nil
}

// Float64 returns the value as a float64.
func (f FlexFloat) Float64() float64 { return float64(f) }

// FlexInt decodes a JSON integer, a float, or a string-encoded number.
// Fractional values are truncated.
type FlexInt int

// UnmarshalJSON implements json.Unmarshaler.
func (i *FlexInt) UnmarshalJSON(data []byte) error {
	*i = FlexInt(int(parseFlexNumber(data)))
	return nil
}

// Int returns the value as an int.
func (i FlexInt) Int() int { return int(i) }

// NullableInt keeps the difference between an absent/null value and zero.
// Used for chance_of_playing_next_round where null means "no doubt".
type NullableInt struct {
	Value int
	Valid bool
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *NullableInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*n = NullableInt{}
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil || strings.TrimSpace(s) == "" {
			*n = NullableInt{}
			return nil
		}
		v, err := parseFinite(strings.TrimSpace(s))
		if err != nil {
			*n = NullableInt{}
			return nil
		}
		*n = NullableInt{Value: int(v), Valid: true}
		return nil
	}
	v, err := parseFinite(string(data))
	if err != nil {
		*n = NullableInt{}
		return nil
	}
	*n = NullableInt{Value: int(v), Valid: true}
	return nil
}

// Ptr returns nil for a null value.
func (n NullableInt) Ptr() *int {
	if !n.Valid {
		return nil
	}
	v := n.Value
	return &v
}

// parseFlexNumber mirrors the fast path/slow path split used for flexible
// decoding: native numbers first, then quoted strings, then 0.
func parseFlexNumber(data []byte) float64 {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return 0
	}

	// Fast path: native JSON number
	if data[0] != '"' {
		if n, err := parseFinite(string(data)); err == nil {
			return n
		}
		return 0
	}

	// Slow path: string-encoded number
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return 0
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	n, err := parseFinite(s)
	if err != nil {
		return 0
	}
	return n
}

// parseFinite rejects NaN and the infinities, which ParseFloat accepts.
func parseFinite(s string) (float64, error) {
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, strconv.ErrSyntax
	}
	return n, nil
}
