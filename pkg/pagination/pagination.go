package pagination

import (
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Params is a limit/offset window over a listing.
type Params struct {
	Limit  int
	Offset int
}

// FromContext reads limit and offset from the query string. A 1-based page
// parameter is honoured when offset is absent. Out of range values are
// clamped rather than rejected.
func FromContext(c echo.Context) Params {
	p := Params{Limit: clamp(atoi(c.QueryParam("limit")), DefaultLimit)}
	p.Offset = atoi(c.QueryParam("offset"))
	if p.Offset <= 0 {
		p.Offset = 0
		if page := atoi(c.QueryParam("page")); page > 1 {
			p.Offset = (page - 1) * p.Limit
		}
	}
	return p
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func clamp(limit, fallback int) int {
	switch {
	case limit <= 0:
		return fallback
	case limit > MaxLimit:
		return MaxLimit
	}
	return limit
}

// Response is the envelope for every list endpoint.
type Response struct {
	Data    interface{} `json:"data"`
	Total   int         `json:"total"`
	Limit   int         `json:"limit"`
	Offset  int         `json:"offset"`
	HasMore bool        `json:"has_more"`
	Links   *Links      `json:"links,omitempty"`
}

type Links struct {
	Next     string `json:"next,omitempty"`
	Previous string `json:"previous,omitempty"`
}

func NewResponse(data interface{}, total, limit, offset int) *Response {
	return &Response{
		Data:    data,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
		HasMore: offset+limit < total,
	}
}

// WithLinks sets Next/Previous relative to u, preserving filters such as
// medicationTypeId. Links stays nil on a single-page listing.
func (r *Response) WithLinks(u *url.URL) *Response {
	var links Links
	if r.HasMore {
		links.Next = pageURL(u, r.Limit, r.Offset+r.Limit)
	}
	if r.Offset > 0 {
		prev := r.Offset - r.Limit
		if prev < 0 {
			prev = 0
		}
		links.Previous = pageURL(u, r.Limit, prev)
	}
	if links != (Links{}) {
		r.Links = &links
	}
	return r
}

func pageURL(u *url.URL, limit, offset int) string {
	q := u.Query()
	q.Del("page")
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))
	return u.Path + "?" + q.Encode()
}
