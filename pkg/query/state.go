// Package query owns the task list's view state: the search text,
// status filter and page, their mapping to request parameters and to a
// shareable view string, and the in-memory cache of the fetched page.
package query

import (
	"net/url"
	"strconv"

	"taskflow/pkg/api"
)

// PageSize is the fixed number of tasks per page.
const PageSize = 9

// Filter is the status filter as shown to the user. The server-side
// status tokens differ; Params does the translation.
type Filter string

const (
	FilterAll       Filter = "All"
	FilterPending   Filter = "Pending"
	FilterCompleted Filter = "Completed"
	FilterOverdue   Filter = "Overdue"
)

// Filters lists the selectable filters in display order.
var Filters = []Filter{FilterAll, FilterPending, FilterCompleted, FilterOverdue}

// statusParam maps a filter to the server's status token, "" for All.
func (f Filter) statusParam() string {
	switch f {
	case FilterCompleted:
		return string(api.StatusDone)
	case FilterPending:
		return "pending"
	case FilterOverdue:
		return "overdue"
	}
	return ""
}

func validFilter(f Filter) bool {
	for _, v := range Filters {
		if v == f {
			return true
		}
	}
	return false
}

// State is the task list view state. Changing the search or the filter
// resets the page to 1 so the view never lands past the end of the new
// result set. Every change that alters the derived request parameters
// bumps a generation counter; a fetch carries the generation that
// issued it, and responses from superseded generations are discarded.
type State struct {
	search     string
	filter     Filter
	page       int
	totalPages int
	gen        int
}

// NewState returns the default view: no search, filter All, page 1.
func NewState() *State {
	return &State{filter: FilterAll, page: 1, totalPages: 1}
}

func (s *State) Search() string { return s.search }
func (s *State) Filter() Filter { return s.filter }
func (s *State) Page() int      { return s.page }

// TotalPages is the page bound from the last successful fetch.
func (s *State) TotalPages() int { return s.totalPages }

// SetSearch updates the search text, resetting to page 1. Returns
// whether the derived parameters changed.
func (s *State) SetSearch(text string) bool {
	if text == s.search {
		return false
	}
	s.search = text
	s.page = 1
	s.gen++
	return true
}

// SetFilter updates the status filter, resetting to page 1.
func (s *State) SetFilter(f Filter) bool {
	if !validFilter(f) || f == s.filter {
		return false
	}
	s.filter = f
	s.page = 1
	s.gen++
	return true
}

// SetPage moves to a page, clamped to [1, totalPages]. Other fields are
// untouched.
func (s *State) SetPage(page int) bool {
	if page < 1 {
		page = 1
	}
	if page > s.totalPages {
		page = s.totalPages
	}
	if page == s.page {
		return false
	}
	s.page = page
	s.gen++
	return true
}

func (s *State) NextPage() bool { return s.SetPage(s.page + 1) }
func (s *State) PrevPage() bool { return s.SetPage(s.page - 1) }

// SetTotalPages records the page bound reported by a fetch. If the
// current page now sits past the end (a delete shrank the list), it is
// clamped and the change reported so the caller can refetch.
func (s *State) SetTotalPages(n int) bool {
	if n < 1 {
		n = 1
	}
	s.totalPages = n
	if s.page > n {
		s.page = n
		s.gen++
		return true
	}
	return false
}

// Params derives the request parameters for the current state. The
// search is sent even when empty; status is only present for non-All
// filters. The server does the filtering, including overdue.
func (s *State) Params() url.Values {
	params := url.Values{}
	params.Set("search", s.search)
	params.Set("page", strconv.Itoa(s.page))
	params.Set("limit", strconv.Itoa(PageSize))
	if status := s.filter.statusParam(); status != "" {
		params.Set("status", status)
	}
	return params
}

// Values encodes the state as a shareable view string, omitting fields
// at their defaults. The default view encodes to an empty string.
func (s *State) Values() url.Values {
	v := url.Values{}
	if s.search != "" {
		v.Set("search", s.search)
	}
	if s.filter != FilterAll {
		v.Set("status", string(s.filter))
	}
	if s.page > 1 {
		v.Set("page", strconv.Itoa(s.page))
	}
	return v
}

// FromValues seeds a state from a shared view string. Unknown filters
// and unparsable pages fall back to their defaults. The page bound is
// not known yet, so the page is accepted as-is and reconciled by the
// first fetch.
func FromValues(v url.Values) *State {
	s := NewState()
	s.search = v.Get("search")
	if f := Filter(v.Get("status")); validFilter(f) {
		s.filter = f
	}
	if page, err := strconv.Atoi(v.Get("page")); err == nil && page > 1 {
		s.page = page
		s.totalPages = page
	}
	return s
}

// ParseView parses a "search=...&status=...&page=N" string, as printed
// in the task list footer, back into a state.
func ParseView(view string) (*State, error) {
	v, err := url.ParseQuery(view)
	if err != nil {
		return nil, err
	}
	return FromValues(v), nil
}

// Generation identifies the current state for in-flight fetches.
func (s *State) Generation() int { return s.gen }

// Accept reports whether a response tagged with gen still matches the
// current state. Stale responses must be dropped, not applied.
func (s *State) Accept(gen int) bool { return gen == s.gen }
