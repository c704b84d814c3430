package domain

import (
	"math"
	"strconv"
	"strings"
)

// missingTokens are cell spellings that mean "no value" in season exports.
var missingTokens = map[string]struct{}{
	"":     {},
	"-":    {},
	"na":   {},
	"n/a":  {},
	"nan":  {},
	"null": {},
	"none": {},
}

// IsMissing reports whether raw is a blank or placeholder cell rather than a
// value. Malformed text such as "abc" is not missing.
func IsMissing(raw string) bool {
	_, ok := missingTokens[strings.ToLower(strings.TrimSpace(raw))]
	return ok
}

// ToOptionalNumber converts a raw cell to an optional float.
// It is total: blank, placeholder, malformed and non-finite input all yield nil.
// A trailing percent sign is ignored so "12.5%" reads as 12.5.
func ToOptionalNumber(raw string) *float64 {
	if IsMissing(raw) {
		return nil
	}
	s := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(raw), "%"))
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// ToOptionalInt converts a raw cell to an optional integer. Values with a
// fractional part are rounded to the nearest integer.
func ToOptionalInt(raw string) *int {
	return IntPtr(ToOptionalNumber(raw))
}

// OptionalNumberFrom converts a scanned database value to an optional float.
// Strings and byte slices go through ToOptionalNumber.
func OptionalNumberFrom(v any) *float64 {
	switch x := v.(type) {
	case nil:
		return nil
	case float64:
		return finite(x)
	case float32:
		return finite(float64(x))
	case int64:
		f := float64(x)
		return &f
	case int:
		f := float64(x)
		return &f
	case int32:
		f := float64(x)
		return &f
	case bool:
		if x {
			return Float(1)
		}
		return Float(0)
	case []byte:
		return ToOptionalNumber(string(x))
	case string:
		return ToOptionalNumber(x)
	default:
		return nil
	}
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// Float returns a pointer to v.
func Float(v float64) *float64 { return &v }

// IntPtr rounds an optional float to an optional int.
func IntPtr(v *float64) *int {
	if v == nil {
		return nil
	}
	i := int(math.Round(*v))
	return &i
}

// Round rounds v half away from zero to the given number of decimals.
func Round(v float64, decimals int) float64 {
	if decimals < 0 {
		decimals = 0
	}
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}

// RoundPtr rounds an optional value, keeping nil as nil.
func RoundPtr(v *float64, decimals int) *float64 {
	if v == nil {
		return nil
	}
	r := Round(*v, decimals)
	return &r
}
