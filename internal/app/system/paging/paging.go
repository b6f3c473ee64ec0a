// internal/app/system/paging/paging.go
package paging

import (
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PageSize is the default number of rows in a list response.
const PageSize = 50

// MaxPageSize caps client-requested limits.
const MaxPageSize = 200

// Params is a parsed page request. Page is 1-based.
type Params struct {
	Page  int
	Limit int
}

// Parse reads ?page= and ?limit=, falling back to page 1 and PageSize.
func Parse(r *http.Request) Params {
	p := Params{Page: 1, Limit: PageSize}
	if n, err := strconv.Atoi(query.Get(r, "page")); err == nil && n > 0 {
		p.Page = n
	}
	if n, err := strconv.Atoi(query.Get(r, "limit")); err == nil && n > 0 {
		p.Limit = n
	}
	if p.Limit > MaxPageSize {
		p.Limit = MaxPageSize
	}
	return p
}

// Skip is the number of rows before this page.
func (p Params) Skip() int64 { return int64((p.Page - 1) * p.Limit) }

// FindOptions applies skip, limit and sort. A trailing _id key keeps the
// order stable across pages.
func (p Params) FindOptions(sort bson.D) *options.FindOptions {
	sort = append(append(bson.D{}, sort...), bson.E{Key: "_id", Value: 1})
	return options.Find().
		SetSkip(p.Skip()).
		SetLimit(int64(p.Limit)).
		SetSort(sort)
}

// Meta is the paging block returned next to list data.
type Meta struct {
	Page    int   `json:"page"`
	Limit   int   `json:"limit"`
	Total   int64 `json:"total"`
	HasNext bool  `json:"has_next"`
	HasPrev bool  `json:"has_prev"`
}

// NewMeta builds Meta for a page given the total row count.
func NewMeta(p Params, total int64) Meta {
	return Meta{
		Page:    p.Page,
		Limit:   p.Limit,
		Total:   total,
		HasNext: p.Skip()+int64(p.Limit) < total,
		HasPrev: p.Page > 1,
	}
}
