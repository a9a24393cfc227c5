package catalog

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/mrlokans/catalog/internal/database/books"
	"github.com/mrlokans/catalog/internal/entities"
)

// Sort directions accepted in sort_order.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// DefaultSortField is used when sort_field is missing or not sortable.
const DefaultSortField = "title"

// SortFields are the columns a listing may be ordered by.
var SortFields = []string{"title", "author", "pages", "publisher"}

// ListParams are the parsed query parameters of the catalogue page.
type ListParams struct {
	Page      int
	SortField string
	SortOrder string
	Title     string
	Author    string
	Publisher string
	PagesMin  *int
	PagesMax  *int
}

// ListResult is one page of the catalogue plus everything needed to render its controls.
type ListResult struct {
	Books      []entities.Book `json:"books"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
	TotalPages int             `json:"total_pages"`
	HasPrev    bool            `json:"has_prev"`
	HasNext    bool            `json:"has_next"`
	Authors    []string        `json:"authors"`
	Publishers []string        `json:"publishers"`
	Params     ListParams      `json:"-"`
}

func isSortField(name string) bool {
	for _, f := range SortFields {
		if f == name {
			return true
		}
	}
	return false
}

// ParseListParams reads the listing parameters from a query string.
// Author and publisher are kept verbatim for the exact match.
// An unknown sort field or direction falls back to title ascending and a
// missing or malformed page becomes 1. Page bounds that are present but
// not integers are rejected.
func ParseListParams(q url.Values) (ListParams, error) {
	p := ListParams{
		Page:      1,
		SortField: DefaultSortField,
		SortOrder: SortAsc,
		Title:     strings.TrimSpace(q.Get("title")),
		Author:    q.Get("author"),
		Publisher: q.Get("publisher"),
	}

	if page, err := strconv.Atoi(strings.TrimSpace(q.Get("page"))); err == nil && page > 0 {
		p.Page = page
	}
	if field := strings.ToLower(strings.TrimSpace(q.Get("sort_field"))); isSortField(field) {
		p.SortField = field
	}
	if strings.EqualFold(strings.TrimSpace(q.Get("sort_order")), SortDesc) {
		p.SortOrder = SortDesc
	}

	verr := &ValidationError{Fields: map[string]string{}}
	for _, bound := range []struct {
		key string
		dst **int
	}{
		{"pages_min", &p.PagesMin},
		{"pages_max", &p.PagesMax},
	} {
		raw := strings.TrimSpace(q.Get(bound.key))
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			verr.Fields[bound.key] = fmt.Sprintf("%s must be a whole number", bound.key)
			continue
		}
		*bound.dst = &n
	}
	if len(verr.Fields) > 0 {
		return p, verr
	}
	return p, nil
}

// Query re-encodes the filters and sort of p, without the page, for building links.
func (p ListParams) Query() url.Values {
	q := url.Values{}
	if p.SortField != "" && p.SortField != DefaultSortField {
		q.Set("sort_field", p.SortField)
	}
	if p.SortOrder == SortDesc {
		q.Set("sort_order", SortDesc)
	}
	if p.Title != "" {
		q.Set("title", p.Title)
	}
	if p.Author != "" {
		q.Set("author", p.Author)
	}
	if p.Publisher != "" {
		q.Set("publisher", p.Publisher)
	}
	if p.PagesMin != nil {
		q.Set("pages_min", strconv.Itoa(*p.PagesMin))
	}
	if p.PagesMax != nil {
		q.Set("pages_max", strconv.Itoa(*p.PagesMax))
	}
	return q
}

// PageURL returns the catalogue link for page n with the current filters.
func (p ListParams) PageURL(n int) string {
	q := p.Query()
	q.Set("page", strconv.Itoa(n))
	return "/?" + q.Encode()
}

// ListBooks returns one page of books matching p. Authors and publishers
// are the distinct values over the whole catalogue, not just the matches.
func (s *Service) ListBooks(p ListParams) (*ListResult, error) {
	if p.Page < 1 {
		p.Page = 1
	}
	// Keeps the offset in range; such a page is past the end of any catalogue.
	if maxPage := math.MaxInt32 / s.pageSize; p.Page > maxPage {
		p.Page = maxPage
	}
	if !isSortField(p.SortField) {
		p.SortField = DefaultSortField
	}

	filter := books.Filter{
		Title:     p.Title,
		Author:    p.Author,
		Publisher: p.Publisher,
		PagesMin:  p.PagesMin,
		PagesMax:  p.PagesMax,
	}
	order := books.Order{Column: p.SortField, Desc: p.SortOrder == SortDesc}

	page, total, err := s.books.ListBooks(filter, order, s.pageSize, (p.Page-1)*s.pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}

	authors, err := s.books.GetAuthors()
	if err != nil {
		return nil, fmt.Errorf("failed to list authors: %w", err)
	}
	publishers, err := s.books.GetPublishers()
	if err != nil {
		return nil, fmt.Errorf("failed to list publishers: %w", err)
	}

	totalPages := int((total + int64(s.pageSize) - 1) / int64(s.pageSize))

	return &ListResult{
		Books:      page,
		Total:      total,
		Page:       p.Page,
		PageSize:   s.pageSize,
		TotalPages: totalPages,
		HasPrev:    p.Page > 1,
		HasNext:    p.Page < totalPages,
		Authors:    authors,
		Publishers: publishers,
		Params:     p,
	}, nil
}
