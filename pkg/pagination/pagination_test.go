package pagination

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestFromContext(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		limit  int
		offset int
	}{
		{"defaults", "", DefaultLimit, 0},
		{"explicit", "limit=5&offset=10", 5, 10},
		{"page", "limit=10&page=3", 10, 20},
		{"page one", "page=1", DefaultLimit, 0},
		{"offset wins over page", "limit=10&offset=4&page=3", 10, 4},
		{"limit capped", "limit=5000", MaxLimit, 0},
		{"zero limit", "limit=0", DefaultLimit, 0},
		{"negative offset", "offset=-7", DefaultLimit, 0},
		{"garbage", "limit=abc&offset=xyz", DefaultLimit, 0},
	}
	e := echo.New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/patients?"+tt.query, nil)
			c := e.NewContext(req, httptest.NewRecorder())
			p := FromContext(c)
			if p.Limit != tt.limit || p.Offset != tt.offset {
				t.Errorf("FromContext(%q) = %+v, want limit=%d offset=%d", tt.query, p, tt.limit, tt.offset)
			}
		})
	}
}

func TestNewResponse_HasMore(t *testing.T) {
	tests := []struct {
		total, limit, offset int
		want                 bool
	}{
		{25, 10, 0, true},
		{25, 10, 10, true},
		{25, 10, 20, false},
		{20, 10, 10, false},
		{0, 20, 0, false},
	}
	for _, tt := range tests {
		if got := NewResponse(nil, tt.total, tt.limit, tt.offset).HasMore; got != tt.want {
			t.Errorf("total=%d limit=%d offset=%d: HasMore = %v, want %v", tt.total, tt.limit, tt.offset, got, tt.want)
		}
	}
}

func TestWithLinks_KeepsFilters(t *testing.T) {
	u, _ := url.Parse("/api/v1/medications?medicationTypeId=abc&page=2")
	resp := NewResponse([]string{}, 30, 10, 10).WithLinks(u)

	if resp.Links == nil {
		t.Fatal("expected links on a middle page")
	}
	for _, link := range []string{resp.Links.Next, resp.Links.Previous} {
		if !strings.HasPrefix(link, "/api/v1/medications?") {
			t.Errorf("link %q lost its path", link)
		}
		if !strings.Contains(link, "medicationTypeId=abc") {
			t.Errorf("link %q dropped the filter", link)
		}
		if strings.Contains(link, "page=") {
			t.Errorf("link %q still carries page", link)
		}
	}
	if !strings.Contains(resp.Links.Next, "offset=20") {
		t.Errorf("next = %q", resp.Links.Next)
	}
	if !strings.Contains(resp.Links.Previous, "offset=0") {
		t.Errorf("previous = %q", resp.Links.Previous)
	}
}

func TestWithLinks_Edges(t *testing.T) {
	u, _ := url.Parse("/api/v1/patients")

	if resp := NewResponse(nil, 3, 20, 0).WithLinks(u); resp.Links != nil {
		t.Errorf("single page should have no links, got %+v", resp.Links)
	}

	first := NewResponse(nil, 50, 20, 0).WithLinks(u)
	if first.Links == nil || first.Links.Previous != "" || first.Links.Next == "" {
		t.Errorf("first page links = %+v", first.Links)
	}

	// A short step back from an unaligned offset clamps at zero.
	last := NewResponse(nil, 50, 20, 45).WithLinks(u)
	if last.Links == nil || last.Links.Next != "" {
		t.Fatalf("last page links = %+v", last.Links)
	}
	if !strings.Contains(last.Links.Previous, "offset=25") {
		t.Errorf("previous = %q", last.Links.Previous)
	}
	tail := NewResponse(nil, 50, 20, 5).WithLinks(u)
	if !strings.Contains(tail.Links.Previous, "offset=0") {
		t.Errorf("previous = %q", tail.Links.Previous)
	}
}
