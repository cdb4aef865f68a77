package validation

// Location names the part of the request a rule reads its field from.
type Location string

const (
	LocationPayload Location = "payload"
	LocationQuery   Location = "query"
	LocationHeaders Location = "headers"
)

// Rule declares the requirements for one field. An empty Location means
// payload. Rules are static configuration, built once per endpoint.
type Rule struct {
	Key          string
	Location     Location
	Requirements []Predicate
}

// Request is the normalized request-scoped data the engine validates.
// Handlers populate each map with exactly the fields they extract; a nil
// map reads as "location absent" and every lookup in it yields nil.
type Request struct {
	Payload map[string]Value
	Query   map[string]Value
	Headers map[string]Value
}

func (r Request) at(loc Location) map[string]Value {
	switch loc {
	case LocationQuery:
		return r.Query
	case LocationHeaders:
		return r.Headers
	default:
		return r.Payload
	}
}

// Validate reports whether the request satisfies the rules. Two conditions
// must both hold:
//
//  1. Whitelist: for every location some rule targets, the request object at
//     that location contains no key that no rule declares. Unknown fields
//     invalidate the whole request so nothing unvalidated can reach
//     persistence.
//  2. Every rule's predicates all pass for the value extracted at
//     object[location][key], nil when the location or key is missing.
//
// Pure function: no side effects, no I/O.
func Validate(rules []Rule, req Request) bool {
	declared := make(map[Location]map[string]bool)
	for _, rule := range rules {
		loc := rule.Location
		if loc == "" {
			loc = LocationPayload
		}
		if declared[loc] == nil {
			declared[loc] = make(map[string]bool)
		}
		declared[loc][rule.Key] = true
	}

	for loc, keys := range declared {
		for key := range req.at(loc) {
			if !keys[key] {
				return false
			}
		}
	}

	for _, rule := range rules {
		loc := rule.Location
		if loc == "" {
			loc = LocationPayload
		}
		value := req.at(loc)[rule.Key]
		for _, requirement := range rule.Requirements {
			if !requirement(value) {
				return false
			}
		}
	}
	return true
}
