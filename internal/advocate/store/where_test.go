package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"advocatehub/internal/search"
)

func TestBuildWhere(t *testing.T) {
	tests := []struct {
		name     string
		criteria search.Criteria
		wantSQL  string
		wantArgs []any
	}{
		{
			name:     "no criteria renders nothing",
			criteria: search.Criteria{},
			wantSQL:  "",
			wantArgs: nil,
		},
		{
			name:     "free text spans names city and specialties",
			criteria: search.Criteria{Query: "york"},
			wantSQL: `WHERE (first_name ILIKE $1 ESCAPE '\' OR last_name ILIKE $2 ESCAPE '\' OR city ILIKE $3 ESCAPE '\'` +
				` OR EXISTS (SELECT 1 FROM unnest(specialties) AS elem(label) WHERE elem.label ILIKE $4 ESCAPE '\'))`,
			wantArgs: []any{"%york%", "%york%", "%york%", "%york%"},
		},
		{
			name:     "degree is an exact match",
			criteria: search.Criteria{Degree: "MD"},
			wantSQL:  "WHERE degree = $1",
			wantArgs: []any{"MD"},
		},
		{
			name:     "closed experience bucket",
			criteria: search.Criteria{Experience: "6-10"},
			wantSQL:  "WHERE (years_of_experience >= $1 AND years_of_experience <= $2)",
			wantArgs: []any{6, 10},
		},
		{
			name:     "open experience bucket",
			criteria: search.Criteria{Experience: "20+"},
			wantSQL:  "WHERE years_of_experience >= $1",
			wantArgs: []any{20},
		},
		{
			name:     "unknown experience code adds nothing",
			criteria: search.Criteria{Experience: "7-9"},
			wantSQL:  "",
			wantArgs: nil,
		},
		{
			name:     "criteria combine with AND in a fixed order",
			criteria: search.Criteria{City: "Boston", Specialty: "law", Degree: "JD", Experience: "0-2"},
			wantSQL: `WHERE city ILIKE $1 ESCAPE '\'` +
				` AND EXISTS (SELECT 1 FROM unnest(specialties) AS elem(label) WHERE elem.label ILIKE $2 ESCAPE '\')` +
				` AND degree = $3 AND (years_of_experience >= $4 AND years_of_experience <= $5)`,
			wantArgs: []any{"%Boston%", "%law%", "JD", 0, 2},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args, err := BuildWhere(search.Compile(tt.criteria))
			require.NoError(t, err)
			assert.Equal(t, tt.wantSQL, sql)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestBuildWhereEscapesWildcards(t *testing.T) {
	_, args, err := BuildWhere(search.Compile(search.Criteria{City: `50%_off\`}))
	require.NoError(t, err)
	assert.Equal(t, []any{`%50\%\_off\\%`}, args)
}

func TestBuildWhereNeverInterpolatesValues(t *testing.T) {
	sql, args, err := BuildWhere(search.Compile(search.Criteria{Degree: "MD' OR '1'='1"}))
	require.NoError(t, err)
	assert.Equal(t, "WHERE degree = $1", sql)
	assert.Equal(t, []any{"MD' OR '1'='1"}, args)
}

func TestBuildWhereRejectsUnknownField(t *testing.T) {
	plan := search.Plan{Predicates: []search.Predicate{
		{Op: search.OpEquals, Field: "phone_number; DROP TABLE advocates", Value: "x"},
	}}
	_, _, err := BuildWhere(plan)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported search field")
}

func TestBuildWhereEmptyDisjunctionMatchesNothing(t *testing.T) {
	sql, args, err := BuildWhere(search.Plan{Predicates: []search.Predicate{{Op: search.OpOr}}})
	require.NoError(t, err)
	assert.Equal(t, "WHERE FALSE", sql)
	assert.Empty(t, args)
}
