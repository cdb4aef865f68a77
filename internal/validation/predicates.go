// Package validation authorizes incoming field sets against declarative
// rules. A rule names one field, where to find it, and the predicates the
// extracted value must satisfy; the engine additionally rejects any field no
// rule declares.
package validation

import "math"

// Value is a field value as decoded from JSON (string, bool, float64,
// []any, map[string]any) or nil when the field is absent.
type Value = any

// Predicate is a pure boolean test of a single extracted value.
//
// Type predicates are vacuously true when the value is absent: only
// IsRequired forces presence. That lets one rule list serve both create
// (compose IsRequired in) and update (leave it out) shapes. IsEnum is the
// exception and rejects absence, which is the correct behavior for required
// enum fields.
type Predicate func(Value) bool

func isDefined(v Value) bool {
	return v != nil
}

// IsRequired is true iff the value is present.
func IsRequired(v Value) bool {
	return isDefined(v)
}

// IsString is true iff the value is a string, or absent.
func IsString(v Value) bool {
	if !isDefined(v) {
		return true
	}
	_, ok := v.(string)
	return ok
}

// IsBoolean is true iff the value is a bool, or absent.
func IsBoolean(v Value) bool {
	if !isDefined(v) {
		return true
	}
	_, ok := v.(bool)
	return ok
}

// IsNumber is true iff the value is a JSON number, or absent.
func IsNumber(v Value) bool {
	if !isDefined(v) {
		return true
	}
	switch v.(type) {
	case float64, int:
		return true
	}
	return false
}

// IsWholeNumber is true iff the value is absent or an integer-valued number.
func IsWholeNumber(v Value) bool {
	if !isDefined(v) {
		return true
	}
	f, ok := asFloat(v)
	return ok && math.Mod(f, 1) == 0
}

// IsArray is true iff the value is a JSON array, or absent.
func IsArray(v Value) bool {
	if !isDefined(v) {
		return true
	}
	_, ok := v.([]any)
	return ok
}

// HasLength is true iff the value has a length greater than zero, or is
// absent. Values with no notion of length fail.
func HasLength(v Value) bool {
	if !isDefined(v) {
		return true
	}
	n, ok := lengthOf(v)
	return ok && n > 0
}

// IsEnum returns a predicate that is true iff the value equals one of the
// allowed members. Absence does not match.
func IsEnum(allowed ...Value) Predicate {
	return func(v Value) bool {
		for _, a := range allowed {
			if v == a {
				return true
			}
		}
		return false
	}
}

// LengthIs returns a predicate that is true iff the value's length is
// exactly n, or the value is absent.
func LengthIs(n int) Predicate {
	return func(v Value) bool {
		if !isDefined(v) {
			return true
		}
		got, ok := lengthOf(v)
		return ok && got == n
	}
}

// NumberBetween returns a predicate that is true iff the value is a number
// in [lo, hi], or absent.
func NumberBetween(lo, hi float64) Predicate {
	return func(v Value) bool {
		if !isDefined(v) {
			return true
		}
		f, ok := asFloat(v)
		return ok && f >= lo && f <= hi
	}
}

// IsTrue is true iff the value is exactly boolean true.
func IsTrue(v Value) bool {
	b, ok := v.(bool)
	return ok && b
}

func asFloat(v Value) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	}
	return 0, false
}

func lengthOf(v Value) (int, bool) {
	switch t := v.(type) {
	case string:
		return len(t), true
	case []any:
		return len(t), true
	case map[string]any:
		return len(t), true
	}
	return 0, false
}
