// internal/app/system/search/search.go
package search

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
)

// Prefix returns an anchored, case-folded prefix match on a *_ci field,
// or nil when q is blank. Anchored regexes on folded fields use the index.
func Prefix(q string) bson.M {
	q = text.Fold(q)
	if q == "" {
		return nil
	}
	return bson.M{"$regex": "^" + regexp.QuoteMeta(q)}
}

// Status parses the list "status" filter. "active" and "inactive" (any
// case) map to true and false; anything else means no filter.
func Status(s string) (value bool, ok bool) {
	switch {
	case equalsAnyFold(s, "active", "aktif", "true"):
		return true, true
	case equalsAnyFold(s, "inactive", "nonaktif", "false"):
		return false, true
	}
	return false, false
}

// Filter builds the common list filter from the request query: q matched
// as a prefix against ciField, and status.
func Filter(r *http.Request, ciField string) bson.M {
	filter := bson.M{}
	qs := r.URL.Query()
	if m := Prefix(qs.Get("q")); m != nil {
		filter[ciField] = m
	}
	if v, ok := Status(qs.Get("status")); ok {
		filter["status"] = v
	}
	return filter
}

func equalsAnyFold(s string, vals ...string) bool {
	s = strings.TrimSpace(strings.ToLower(s))
	for _, v := range vals {
		if s == strings.ToLower(v) {
			return true
		}
	}
	return false
}
