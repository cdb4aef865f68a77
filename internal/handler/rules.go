package handler

import (
	"uptime-api/internal/auth"
	"uptime-api/internal/validation"
)

// Rule sets for each endpoint. Required fields carry IsRequired; update
// shapes reuse the same predicates without it, so a field may be omitted
// but not malformed.

// optional lets an absence-rejecting predicate (IsEnum) pass when the field
// is omitted, for update shapes where the field is not mandatory.
func optional(p validation.Predicate) validation.Predicate {
	return func(v validation.Value) bool {
		return v == nil || p(v)
	}
}

var phonePayloadRule = validation.Rule{
	Key: "phone",
	Requirements: []validation.Predicate{
		validation.IsRequired,
		validation.IsString,
		validation.LengthIs(10),
	},
}

var phoneQueryRule = validation.Rule{
	Key:      "phone",
	Location: validation.LocationQuery,
	Requirements: []validation.Predicate{
		validation.IsRequired,
		validation.IsString,
		validation.LengthIs(10),
	},
}

var passwordRule = validation.Rule{
	Key: "password",
	Requirements: []validation.Predicate{
		validation.IsRequired,
		validation.IsString,
		validation.HasLength,
	},
}

var userCreateRules = []validation.Rule{
	{
		Key: "firstName",
		Requirements: []validation.Predicate{
			validation.IsRequired,
			validation.IsString,
			validation.HasLength,
		},
	},
	{
		Key: "lastName",
		Requirements: []validation.Predicate{
			validation.IsRequired,
			validation.IsString,
			validation.HasLength,
		},
	},
	phonePayloadRule,
	passwordRule,
	{
		Key: "tosAgreement",
		Requirements: []validation.Predicate{
			validation.IsRequired,
			validation.IsBoolean,
			validation.IsTrue,
		},
	},
}

var userGetRules = []validation.Rule{phoneQueryRule}

var userUpdateRules = []validation.Rule{
	phonePayloadRule,
	{
		Key: "firstName",
		Requirements: []validation.Predicate{
			validation.IsString,
			validation.HasLength,
		},
	},
	{
		Key: "lastName",
		Requirements: []validation.Predicate{
			validation.IsString,
			validation.HasLength,
		},
	},
	{
		Key: "password",
		Requirements: []validation.Predicate{
			validation.IsString,
			validation.HasLength,
		},
	},
}

var userDeleteRules = []validation.Rule{phoneQueryRule}

var tokenCreateRules = []validation.Rule{
	phonePayloadRule,
	passwordRule,
}

var tokenIDQueryRule = validation.Rule{
	Key:      "id",
	Location: validation.LocationQuery,
	Requirements: []validation.Predicate{
		validation.IsRequired,
		validation.IsString,
		validation.LengthIs(auth.TokenIDLength),
	},
}

var tokenGetRules = []validation.Rule{tokenIDQueryRule}

var tokenRenewRules = []validation.Rule{
	{
		Key: "id",
		Requirements: []validation.Predicate{
			validation.IsRequired,
			validation.IsString,
			validation.LengthIs(auth.TokenIDLength),
		},
	},
	{
		Key: "extend",
		Requirements: []validation.Predicate{
			validation.IsRequired,
			validation.IsBoolean,
			validation.IsTrue,
		},
	},
}

var tokenDeleteRules = []validation.Rule{tokenIDQueryRule}

var checkIDQueryRule = validation.Rule{
	Key:      "id",
	Location: validation.LocationQuery,
	Requirements: []validation.Predicate{
		validation.IsRequired,
		validation.IsString,
		validation.LengthIs(auth.CheckIDLength),
	},
}

var checkCreateRules = []validation.Rule{
	{
		Key: "protocol",
		Requirements: []validation.Predicate{
			validation.IsRequired,
			validation.IsString,
			validation.IsEnum("http", "https"),
		},
	},
	{
		Key: "url",
		Requirements: []validation.Predicate{
			validation.IsRequired,
			validation.IsString,
			validation.HasLength,
		},
	},
	{
		Key: "method",
		Requirements: []validation.Predicate{
			validation.IsRequired,
			validation.IsString,
			validation.IsEnum("get", "post", "put", "delete"),
		},
	},
	{
		Key: "successCodes",
		Requirements: []validation.Predicate{
			validation.IsRequired,
			validation.IsArray,
			validation.HasLength,
		},
	},
	{
		Key: "timeoutSeconds",
		Requirements: []validation.Predicate{
			validation.IsRequired,
			validation.IsNumber,
			validation.IsWholeNumber,
			validation.NumberBetween(1, 5),
		},
	},
}

var checkGetRules = []validation.Rule{checkIDQueryRule}

var checkUpdateRules = []validation.Rule{
	{
		Key: "id",
		Requirements: []validation.Predicate{
			validation.IsRequired,
			validation.IsString,
			validation.LengthIs(auth.CheckIDLength),
		},
	},
	{
		Key: "protocol",
		Requirements: []validation.Predicate{
			validation.IsString,
			optional(validation.IsEnum("http", "https")),
		},
	},
	{
		Key: "url",
		Requirements: []validation.Predicate{
			validation.IsString,
			validation.HasLength,
		},
	},
	{
		Key: "method",
		Requirements: []validation.Predicate{
			validation.IsString,
			optional(validation.IsEnum("get", "post", "put", "delete")),
		},
	},
	{
		Key: "successCodes",
		Requirements: []validation.Predicate{
			validation.IsArray,
			validation.HasLength,
		},
	},
	{
		Key: "timeoutSeconds",
		Requirements: []validation.Predicate{
			validation.IsNumber,
			validation.IsWholeNumber,
			validation.NumberBetween(1, 5),
		},
	},
}

var checkDeleteRules = []validation.Rule{checkIDQueryRule}
