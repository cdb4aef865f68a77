package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPredicates(t *testing.T) {
	tests := []struct {
		name string
		p    Predicate
		v    Value
		want bool
	}{
		{"IsRequired present", IsRequired, "x", true},
		{"IsRequired absent", IsRequired, nil, false},

		{"IsString string", IsString, "x", true},
		{"IsString number", IsString, 1.0, false},
		{"IsString absent is vacuously true", IsString, nil, true},

		{"IsBoolean bool", IsBoolean, true, true},
		{"IsBoolean string", IsBoolean, "true", false},
		{"IsBoolean absent is vacuously true", IsBoolean, nil, true},

		{"IsNumber float", IsNumber, 1.5, true},
		{"IsNumber string", IsNumber, "1.5", false},
		{"IsNumber absent is vacuously true", IsNumber, nil, true},

		{"IsWholeNumber integer", IsWholeNumber, 4.0, true},
		{"IsWholeNumber fraction", IsWholeNumber, 4.5, false},
		{"IsWholeNumber non-number", IsWholeNumber, "4", false},
		{"IsWholeNumber absent is vacuously true", IsWholeNumber, nil, true},

		{"IsArray array", IsArray, []any{1.0}, true},
		{"IsArray string", IsArray, "[]", false},
		{"IsArray absent is vacuously true", IsArray, nil, true},

		{"HasLength non-empty string", HasLength, "x", true},
		{"HasLength empty string", HasLength, "", false},
		{"HasLength non-empty array", HasLength, []any{1.0}, true},
		{"HasLength empty array", HasLength, []any{}, false},
		{"HasLength number has no length", HasLength, 3.0, false},
		{"HasLength absent is vacuously true", HasLength, nil, true},

		{"IsEnum member", IsEnum("http", "https"), "https", true},
		{"IsEnum non-member", IsEnum("http", "https"), "ftp", false},
		{"IsEnum rejects absence", IsEnum("http", "https"), nil, false},

		{"LengthIs exact", LengthIs(10), "5551234567", true},
		{"LengthIs short", LengthIs(10), "555123", false},
		{"LengthIs absent is vacuously true", LengthIs(10), nil, true},

		{"NumberBetween inside", NumberBetween(1, 5), 5.0, true},
		{"NumberBetween outside", NumberBetween(1, 5), 6.0, false},
		{"NumberBetween non-number", NumberBetween(1, 5), "3", false},
		{"NumberBetween absent is vacuously true", NumberBetween(1, 5), nil, true},

		{"IsTrue true", IsTrue, true, true},
		{"IsTrue false", IsTrue, false, false},
		{"IsTrue absent", IsTrue, nil, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.p(tc.v))
		})
	}
}
