package port

import (
	"context"
	"encoding/json"
	"errors"
)

// ErrUpstream signals a failed call to the scraping service.
var ErrUpstream = errors.New("scraper: upstream error")

// Kind selects which resource catalogue to scrape.
type Kind string

const (
	KindJobs    Kind = "jobs"
	KindAITools Kind = "ai-tools"
	KindCourses Kind = "courses"
)

// Valid reports whether k names a known catalogue.
func (k Kind) Valid() bool {
	switch k {
	case KindJobs, KindAITools, KindCourses:
		return true
	}
	return false
}

// Query narrows a scrape. Zero values mean "no filter".
type Query struct {
	Term     string
	Location string
	Limit    int
}

// Client fetches catalogue results from the scraping service. Results are
// returned as raw JSON and passed through to callers untouched.
type Client interface {
	Fetch(ctx context.Context, kind Kind, q Query) (json.RawMessage, error)
}
