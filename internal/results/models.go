package results

import (
	"strings"
	"time"
)

// Status is the terminal outcome of one verification attempt.
type Status string

const (
	StatusSuccess Status = "SUCCESS"
	StatusFailed  Status = "FAILED"
)

// FilterAll disables a category or status filter.
const FilterAll = "all"

// Response is the normalized provider payload. Verified and Confidence stay
// nil when the service's normalizer has no mapping for them; Details carries
// whatever the provider returned.
type Response struct {
	Verified   *bool    `json:"verified,omitempty"`
	Confidence *float64 `json:"confidence,omitempty"`
	Details    any      `json:"details,omitempty"`
}

// Result is one recorded verification outcome. Immutable once stored; the
// store owns it until an explicit delete or clear.
type Result struct {
	ID        int64             `json:"id"`
	Service   string            `json:"service"`
	Category  string            `json:"category"`
	Status    Status            `json:"status"`
	InputData map[string]string `json:"inputData"`
	Response  *Response         `json:"response,omitempty"`
	Error     string            `json:"error,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}

// Filter narrows a result listing. Zero values and "all" match everything.
type Filter struct {
	Search   string
	Category string
	Status   string
}

// Matches reports whether r passes the filter. Search is case-insensitive
// over service name and category; category and status are exact.
func (f Filter) Matches(r Result) bool {
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(r.Service), needle) &&
			!strings.Contains(strings.ToLower(r.Category), needle) {
			return false
		}
	}
	if f.Category != "" && f.Category != FilterAll && r.Category != f.Category {
		return false
	}
	if f.Status != "" && f.Status != FilterAll && string(r.Status) != f.Status {
		return false
	}
	return true
}
