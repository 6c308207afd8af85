package query

import (
	"testing"
)

func TestNewStateDefaults(t *testing.T) {
	s := NewState()

	if s.Search() != "" {
		t.Errorf("Search() = %q, want empty", s.Search())
	}
	if s.Filter() != FilterAll {
		t.Errorf("Filter() = %q, want %q", s.Filter(), FilterAll)
	}
	if s.Page() != 1 {
		t.Errorf("Page() = %d, want 1", s.Page())
	}
}

func TestSetSearchResetsPage(t *testing.T) {
	s := NewState()
	s.SetTotalPages(5)
	s.SetPage(3)

	if !s.SetSearch("groceries") {
		t.Fatal("SetSearch() = false, want true")
	}
	if s.Page() != 1 {
		t.Errorf("Page() after SetSearch = %d, want 1", s.Page())
	}

	// Setting the same search again is a no-op.
	if s.SetSearch("groceries") {
		t.Error("SetSearch() with unchanged text = true, want false")
	}
}

func TestSetFilterResetsPage(t *testing.T) {
	s := NewState()
	s.SetTotalPages(4)
	s.SetPage(2)

	if !s.SetFilter(FilterCompleted) {
		t.Fatal("SetFilter() = false, want true")
	}
	if s.Page() != 1 {
		t.Errorf("Page() after SetFilter = %d, want 1", s.Page())
	}

	if s.SetFilter(FilterCompleted) {
		t.Error("SetFilter() with unchanged filter = true, want false")
	}
	if s.SetFilter(Filter("bogus")) {
		t.Error("SetFilter() with unknown filter = true, want false")
	}
	if s.Filter() != FilterCompleted {
		t.Errorf("Filter() = %q, want %q", s.Filter(), FilterCompleted)
	}
}

func TestSetPageClamped(t *testing.T) {
	s := NewState()
	s.SetTotalPages(3)

	tests := []struct {
		name     string
		page     int
		wantPage int
	}{
		{"within bounds", 2, 2},
		{"past the end", 99, 3},
		{"below one", -5, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s.SetPage(tt.page)
			if s.Page() != tt.wantPage {
				t.Errorf("Page() = %d, want %d", s.Page(), tt.wantPage)
			}
		})
	}
}

func TestNextPrevPage(t *testing.T) {
	s := NewState()
	s.SetTotalPages(2)

	if !s.NextPage() {
		t.Error("NextPage() = false on page 1 of 2, want true")
	}
	if s.NextPage() {
		t.Error("NextPage() = true on last page, want false")
	}
	if !s.PrevPage() {
		t.Error("PrevPage() = false on page 2, want true")
	}
	if s.PrevPage() {
		t.Error("PrevPage() = true on page 1, want false")
	}
}

func TestSetTotalPagesClampsCurrentPage(t *testing.T) {
	s := NewState()
	s.SetTotalPages(5)
	s.SetPage(5)

	// List shrank underneath the view: the page clamps and the caller
	// is told to refetch.
	if !s.SetTotalPages(3) {
		t.Fatal("SetTotalPages(3) = false with page 5, want true")
	}
	if s.Page() != 3 {
		t.Errorf("Page() = %d, want 3", s.Page())
	}

	if s.SetTotalPages(3) {
		t.Error("SetTotalPages(3) = true with page already in bounds, want false")
	}

	// Zero pages still leaves a valid page 1 view.
	if !s.SetTotalPages(0) {
		t.Fatal("SetTotalPages(0) = false with page 3, want true")
	}
	if s.Page() != 1 || s.TotalPages() != 1 {
		t.Errorf("Page()/TotalPages() = %d/%d, want 1/1", s.Page(), s.TotalPages())
	}
}

func TestParams(t *testing.T) {
	tests := []struct {
		name       string
		filter     Filter
		wantStatus string
	}{
		{"all omits status", FilterAll, ""},
		{"completed maps to done", FilterCompleted, "done"},
		{"pending maps to pending", FilterPending, "pending"},
		{"overdue maps to overdue", FilterOverdue, "overdue"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewState()
			s.SetFilter(tt.filter)
			params := s.Params()

			if got := params.Get("status"); got != tt.wantStatus {
				t.Errorf("status param = %q, want %q", got, tt.wantStatus)
			}
			if tt.wantStatus == "" && params.Has("status") {
				t.Error("status param present for All, want absent")
			}

			// Search, page and limit are always sent.
			if !params.Has("search") {
				t.Error("search param missing")
			}
			if got := params.Get("page"); got != "1" {
				t.Errorf("page param = %q, want \"1\"", got)
			}
			if got := params.Get("limit"); got != "9" {
				t.Errorf("limit param = %q, want \"9\"", got)
			}
		})
	}
}

func TestViewRoundTrip(t *testing.T) {
	s := NewState()
	s.SetSearch("report")
	s.SetFilter(FilterPending)
	s.SetTotalPages(5)
	s.SetPage(3)

	view := s.Values().Encode()
	restored, err := ParseView(view)
	if err != nil {
		t.Fatalf("ParseView(%q) error = %v", view, err)
	}

	if restored.Search() != "report" {
		t.Errorf("Search() = %q, want %q", restored.Search(), "report")
	}
	if restored.Filter() != FilterPending {
		t.Errorf("Filter() = %q, want %q", restored.Filter(), FilterPending)
	}
	if restored.Page() != 3 {
		t.Errorf("Page() = %d, want 3", restored.Page())
	}
}

func TestViewOmitsDefaults(t *testing.T) {
	s := NewState()

	if got := s.Values().Encode(); got != "" {
		t.Errorf("Values().Encode() for default view = %q, want empty", got)
	}
}

func TestParseViewBadInput(t *testing.T) {
	tests := []struct {
		name string
		view string
	}{
		{"unknown filter", "status=Nonsense"},
		{"unparsable page", "page=abc"},
		{"negative page", "page=-2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := ParseView(tt.view)
			if err != nil {
				t.Fatalf("ParseView(%q) error = %v", tt.view, err)
			}
			if s.Filter() != FilterAll {
				t.Errorf("Filter() = %q, want %q", s.Filter(), FilterAll)
			}
			if s.Page() != 1 {
				t.Errorf("Page() = %d, want 1", s.Page())
			}
		})
	}

	if _, err := ParseView("%zz"); err == nil {
		t.Error("ParseView with invalid encoding, want error")
	}
}

func TestGenerationRejectsStaleFetches(t *testing.T) {
	s := NewState()
	gen := s.Generation()

	if !s.Accept(gen) {
		t.Error("Accept() = false for current generation, want true")
	}

	// A search change supersedes any fetch issued before it.
	s.SetSearch("new text")
	if s.Accept(gen) {
		t.Error("Accept() = true for superseded generation, want false")
	}
	if !s.Accept(s.Generation()) {
		t.Error("Accept() = false for new generation, want true")
	}
}
