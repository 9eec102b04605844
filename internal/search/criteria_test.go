package search

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromValuesDefaults(t *testing.T) {
	c := FromValues(url.Values{})
	assert.Equal(t, Criteria{Page: 1, Limit: 10}, c)
	assert.False(t, c.IsFiltered())
}

func TestFromValuesParsesEveryParameter(t *testing.T) {
	v := url.Values{
		"search":     {"  chen "},
		"city":       {"Boston"},
		"specialty":  {"law"},
		"degree":     {"JD"},
		"experience": {"3-5"},
		"page":       {"2"},
		"limit":      {"25"},
	}
	assert.Equal(t, Criteria{
		Query:      "chen",
		City:       "Boston",
		Specialty:  "law",
		Degree:     "JD",
		Experience: "3-5",
		Page:       2,
		Limit:      25,
	}, FromValues(v))
}

func TestFromValuesClampsPaging(t *testing.T) {
	tests := []struct {
		name      string
		page      string
		limit     string
		wantPage  int
		wantLimit int
	}{
		{name: "malformed numbers use defaults", page: "abc", limit: "ten", wantPage: 1, wantLimit: 10},
		{name: "zero page clamps to first", page: "0", limit: "10", wantPage: 1, wantLimit: 10},
		{name: "negative page clamps to first", page: "-3", limit: "10", wantPage: 1, wantLimit: 10},
		{name: "zero limit is unset", page: "1", limit: "0", wantPage: 1, wantLimit: 10},
		{name: "negative limit clamps to one", page: "1", limit: "-5", wantPage: 1, wantLimit: 1},
		{name: "oversized limit clamps to max", page: "4", limit: "5000", wantPage: 4, wantLimit: MaxLimit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := FromValues(url.Values{"page": {tt.page}, "limit": {tt.limit}})
			assert.Equal(t, tt.wantPage, c.Page)
			assert.Equal(t, tt.wantLimit, c.Limit)
		})
	}
}

func TestNormalizeDropsUnknownExperience(t *testing.T) {
	for _, code := range []string{"99+", "0-3", "20-", "twenty"} {
		c := Normalize(Criteria{Experience: code})
		assert.Empty(t, c.Experience, "code %q", code)
	}
	assert.Equal(t, "20+", Normalize(Criteria{Experience: " 20+ "}).Experience)
}

func TestNormalizeIsIdempotent(t *testing.T) {
	c := Normalize(Criteria{Query: " a ", City: "b ", Experience: "x", Page: -1, Limit: 1000})
	assert.Equal(t, c, Normalize(c))
}

func TestValuesRoundTrip(t *testing.T) {
	c := Criteria{Query: "chen", Degree: "JD", Experience: "20+", Page: 3, Limit: 20}
	v := c.Values()

	assert.Equal(t, "chen", v.Get("search"))
	assert.Equal(t, "20+", v.Get("experience"))
	_, hasCity := v["city"]
	assert.False(t, hasCity, "empty fields are omitted")

	parsed, err := url.ParseQuery(v.Encode())
	require.NoError(t, err)
	assert.Equal(t, c, FromValues(parsed))
}

func TestSameFiltersIgnoresPaging(t *testing.T) {
	a := Criteria{City: "Boston", Page: 1, Limit: 10}
	b := Criteria{City: "Boston", Page: 4, Limit: 50}
	assert.True(t, a.SameFilters(b))
	b.Degree = "JD"
	assert.False(t, a.SameFilters(b))
}

func TestCompileOrderAndShape(t *testing.T) {
	plan := Compile(Criteria{Query: "q", City: "c", Specialty: "s", Degree: "D", Experience: "20+"})
	require.Len(t, plan.Predicates, 5)

	ops := make([]Operator, 0, len(plan.Predicates))
	for _, p := range plan.Predicates {
		ops = append(ops, p.Op)
	}
	assert.Equal(t, []Operator{OpOr, OpContains, OpAnyContains, OpEquals, OpBetween}, ops)
	assert.Len(t, plan.Predicates[0].Any, 4)
	assert.True(t, plan.Predicates[4].Open)
	assert.Equal(t, 20, plan.Predicates[4].Min)

	assert.True(t, Compile(Criteria{Experience: "99+"}).Empty())
	assert.True(t, Compile(Criteria{Query: "   "}).Empty())
}
