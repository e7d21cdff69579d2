package pagination

import (
	"github.com/gofiber/fiber/v2"
)

// Page size bounds for listing endpoints
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Params is a clamped page request
type Params struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// FromQuery reads ?page= and ?limit= and clamps them. Garbage falls back to the defaults.
func FromQuery(c *fiber.Ctx) Params {
	return New(c.QueryInt("page", 1), c.QueryInt("limit", DefaultLimit))
}

// New clamps page to at least 1 and limit into [1, MaxLimit]
func New(page, limit int) Params {
	if page < 1 {
		page = 1
	}
	switch {
	case limit < 1:
		limit = DefaultLimit
	case limit > MaxLimit:
		limit = MaxLimit
	}
	return Params{Page: page, Limit: limit}
}

// Offset is the number of rows to skip
func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Meta describes where a page sits in the full listing
type Meta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// MetaFor computes page metadata for total rows
func MetaFor(p Params, total int64) Meta {
	limit := int64(p.Limit)
	pages := int((total + limit - 1) / limit)
	return Meta{
		Page:       p.Page,
		Limit:      p.Limit,
		Total:      total,
		TotalPages: pages,
		HasNext:    p.Page < pages,
		HasPrev:    p.Page > 1,
	}
}

// Page is one page of a listing. Data is never null on the wire.
type Page[T any] struct {
	Data []T `json:"data"`
	Meta Meta `json:"meta"`
}

// NewPage wraps items fetched with p out of total rows
func NewPage[T any](items []T, p Params, total int64) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{Data: items, Meta: MetaFor(p, total)}
}
