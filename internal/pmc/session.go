// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pmc

import "github.com/pdiddy/pmc-fetch/pkg/types"

// State identifies where a search session is in its lifecycle.
type State int

const (
	StateIdle State = iota
	StateFetchingPage
	StateAggregating
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateFetchingPage:
		return "fetching"
	case StateAggregating:
		return "aggregating"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "idle"
	}
}

// Session holds one author search from start to completion: the query, the
// accumulated ordered records, the lifecycle state, and an error message when
// the traversal failed. A session is built privately by SearchByAuthor and
// handed to the caller only once the traversal has terminated, so a caller
// never observes a partially accumulated record list as final.
type Session struct {
	// Query is the trimmed author name the session was started with.
	Query string `json:"query" yaml:"query"`

	// Records is the ordered sequence of enriched records, preserving the
	// remote-assigned ranking across pages.
	Records []types.Record `json:"records" yaml:"records"`

	// State is the terminal lifecycle state (StateDone or StateFailed for
	// a published session).
	State State `json:"-" yaml:"-"`

	// Err is the user-facing error message for a failed traversal. A
	// failed session still carries the records accumulated before the
	// failing page.
	Err string `json:"error,omitempty" yaml:"error,omitempty"`

	// PagesFetched counts the search requests issued.
	PagesFetched int `json:"pages_fetched" yaml:"pages_fetched"`
}

// InProgress reports whether the traversal has not yet terminated.
func (s *Session) InProgress() bool {
	return s.State == StateFetchingPage || s.State == StateAggregating
}
