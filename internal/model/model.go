// Package model holds the documents persisted by the object store.
package model

// Collection names used as storage directories.
const (
	CollectionUsers  = "users"
	CollectionTokens = "tokens"
	CollectionChecks = "checks"
)

// User is an account document, keyed by phone number.
type User struct {
	FirstName      string   `json:"firstName"`
	LastName       string   `json:"lastName"`
	Phone          string   `json:"phone"`
	HashedPassword string   `json:"hashedPassword"`
	TOSAgreement   bool     `json:"tosAgreement"`
	Checks         []string `json:"checks,omitempty"`
}

// Public returns a copy safe to send back to a client.
func (u User) Public() User {
	u.HashedPassword = ""
	return u
}

// Token is a session credential, keyed by its random id.
// Phone is a back-reference to the owning user, never a pointer:
// the store is looked up by id when ownership must be proven.
// Expires is an absolute epoch-millisecond timestamp.
type Token struct {
	Phone   string `json:"phone"`
	ID      string `json:"id"`
	Expires int64  `json:"expires"`
}

// Check states written back by the prober.
const (
	CheckStateUp   = "up"
	CheckStateDown = "down"
)

// Check is a monitored endpoint, keyed by its random id and owned by
// the user referenced in UserPhone. State and LastChecked are absent
// until the prober has run the check at least once.
type Check struct {
	ID             string `json:"id"`
	UserPhone      string `json:"userPhone"`
	Protocol       string `json:"protocol"`
	URL            string `json:"url"`
	Method         string `json:"method"`
	SuccessCodes   []int  `json:"successCodes"`
	TimeoutSeconds int    `json:"timeoutSeconds"`
	State          string `json:"state,omitempty"`
	LastChecked    int64  `json:"lastChecked,omitempty"`
}
