// Package search holds the criteria and predicate model shared by the SQL
// store and the in-memory evaluator. Both render the same Plan, so a filter
// cannot mean one thing on the server and another in the client.
package search

import (
	"math"
	"net/url"
	"strconv"
	"strings"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100

	// MaxPage keeps (page-1)*limit inside int for every valid limit.
	MaxPage = math.MaxInt / MaxLimit
)

// Wire parameter names for the list endpoint.
const (
	ParamSearch     = "search"
	ParamCity       = "city"
	ParamSpecialty  = "specialty"
	ParamDegree     = "degree"
	ParamExperience = "experience"
	ParamPage       = "page"
	ParamLimit      = "limit"
)

// Criteria is the canonical search input. An empty text field imposes no
// constraint.
type Criteria struct {
	Query      string `json:"search,omitempty"`
	City       string `json:"city,omitempty"`
	Specialty  string `json:"specialty,omitempty"`
	Degree     string `json:"degree,omitempty"`
	Experience string `json:"experience,omitempty"`
	Page       int    `json:"page"`
	Limit      int    `json:"limit"`
}

// FromValues decodes URL query parameters into normalized Criteria. Malformed
// numbers fall back to defaults instead of failing.
func FromValues(v url.Values) Criteria {
	return Normalize(Criteria{
		Query:      v.Get(ParamSearch),
		City:       v.Get(ParamCity),
		Specialty:  v.Get(ParamSpecialty),
		Degree:     v.Get(ParamDegree),
		Experience: v.Get(ParamExperience),
		Page:       parseIntOr(v.Get(ParamPage), DefaultPage),
		Limit:      parseIntOr(v.Get(ParamLimit), DefaultLimit),
	})
}

// Normalize trims text fields, drops unrecognized experience codes and clamps
// paging into range. It is idempotent.
func Normalize(c Criteria) Criteria {
	c.Query = strings.TrimSpace(c.Query)
	c.City = strings.TrimSpace(c.City)
	c.Specialty = strings.TrimSpace(c.Specialty)
	c.Degree = strings.TrimSpace(c.Degree)
	c.Experience = strings.TrimSpace(c.Experience)
	if _, ok := LookupBucket(c.Experience); !ok {
		c.Experience = ""
	}
	c.Page = ClampPage(c.Page)
	c.Limit = ClampLimit(c.Limit)
	return c
}

// ClampPage forces page into [1, MaxPage].
func ClampPage(page int) int {
	switch {
	case page < 1:
		return DefaultPage
	case page > MaxPage:
		return MaxPage
	}
	return page
}

// ClampLimit forces limit into [1, MaxLimit]. Zero means "unset" and takes the
// default.
func ClampLimit(limit int) int {
	switch {
	case limit == 0:
		return DefaultLimit
	case limit < 1:
		return 1
	case limit > MaxLimit:
		return MaxLimit
	default:
		return limit
	}
}

// IsFiltered reports whether any filtering criterion is set. Paging is ignored.
func (c Criteria) IsFiltered() bool {
	return c.Query != "" || c.City != "" || c.Specialty != "" || c.Degree != "" || c.Experience != ""
}

// SameFilters reports whether c and other filter identically, ignoring paging.
func (c Criteria) SameFilters(other Criteria) bool {
	c.Page, c.Limit = 0, 0
	other.Page, other.Limit = 0, 0
	return c == other
}

// Values encodes c as URL query parameters, omitting empty fields.
func (c Criteria) Values() url.Values {
	v := url.Values{}
	set := func(key, value string) {
		if value != "" {
			v.Set(key, value)
		}
	}
	set(ParamSearch, c.Query)
	set(ParamCity, c.City)
	set(ParamSpecialty, c.Specialty)
	set(ParamDegree, c.Degree)
	set(ParamExperience, c.Experience)
	if c.Page > 0 {
		v.Set(ParamPage, strconv.Itoa(c.Page))
	}
	if c.Limit > 0 {
		v.Set(ParamLimit, strconv.Itoa(c.Limit))
	}
	return v
}

func parseIntOr(raw string, fallback int) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
