package search

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"advocatehub/internal/advocate/models"
)

func fixture() []models.Advocate {
	return []models.Advocate{
		{ID: 1, FirstName: "Sarah", LastName: "Johnson", City: "New York", Degree: "MD", Specialties: []string{"Cardiology"}, YearsOfExperience: 12, PhoneNumber: 2125551234},
		{ID: 2, FirstName: "Michael", LastName: "Chen", City: "Boston", Degree: "JD", Specialties: []string{"Family Law"}, YearsOfExperience: 3, PhoneNumber: 6175551234},
		{ID: 3, FirstName: "Emily", LastName: "Rodriguez", City: "New Orleans", Degree: "PhD", Specialties: []string{"Trauma & PTSD", "ADHD"}, YearsOfExperience: 20, PhoneNumber: 5045551234},
		{ID: 4, FirstName: "David", LastName: "Yorkshire", City: "Chicago", Degree: "MSW", Specialties: []string{"Life coaching", "Personal growth"}, YearsOfExperience: 2, PhoneNumber: 3125551234},
		{ID: 5, FirstName: "Lisa", LastName: "Williams", City: "Philadelphia", Degree: "MD", Specialties: []string{}, YearsOfExperience: 25, PhoneNumber: 2155551234},
	}
}

func ids(records []models.Advocate) []int64 {
	out := make([]int64, 0, len(records))
	for _, a := range records {
		out = append(out, a.ID)
	}
	return out
}

func TestFilterEmptyCriteriaIsIdentity(t *testing.T) {
	records := fixture()
	got := Filter(records, Criteria{})
	if diff := cmp.Diff(records, got); diff != "" {
		t.Fatalf("empty criteria changed the record set (-want +got):\n%s", diff)
	}
}

func TestFilterScenario(t *testing.T) {
	records := []models.Advocate{
		{ID: 1, City: "New York", Degree: "MD", Specialties: []string{"Cardiology"}, YearsOfExperience: 12},
		{ID: 2, City: "Boston", Degree: "JD", Specialties: []string{"Family Law"}, YearsOfExperience: 3},
	}

	t.Run("years outside bucket yields nothing", func(t *testing.T) {
		got := Filter(records, Criteria{Specialty: "law", Experience: "0-2"})
		assert.Empty(t, got)
		assert.NotNil(t, got)
	})

	t.Run("matching bucket yields the Boston record", func(t *testing.T) {
		got := Filter(records, Criteria{Specialty: "law", Experience: "3-5"})
		require.Len(t, got, 1)
		assert.Equal(t, "Boston", got[0].City)
	})
}

func TestFilterCaseSensitivity(t *testing.T) {
	records := fixture()

	assert.Empty(t, Filter(records, Criteria{Degree: "md"}), "degree is exact and case-sensitive")
	assert.Equal(t, []int64{1, 5}, ids(Filter(records, Criteria{Degree: "MD"})))
	assert.Equal(t, []int64{1}, ids(Filter(records, Criteria{City: "new york"})))
	assert.Equal(t, []int64{1, 3}, ids(Filter(records, Criteria{City: "NEW"})), "city is a substring match")
}

func TestFilterQueryIsDisjunction(t *testing.T) {
	records := fixture()

	tests := []struct {
		query string
		want  []int64
	}{
		{query: "york", want: []int64{1, 4}}, // city of 1, last name of 4
		{query: "emily", want: []int64{3}},
		{query: "ptsd", want: []int64{3}},
		{query: "law", want: []int64{2}},
		{query: "md", want: []int64{}}, // degree is not searched by free text
		{query: "zzz", want: []int64{}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Filter(records, Criteria{Query: tt.query})))
		})
	}
}

func TestFilterSpecialtyMatchesElementWise(t *testing.T) {
	records := []models.Advocate{
		{ID: 1, Specialties: []string{"Family", "Law"}},
		{ID: 2, Specialties: []string{"Family Law"}},
	}
	// A label spanning two elements must not match across the element boundary.
	assert.Equal(t, []int64{2}, ids(Filter(records, Criteria{Specialty: "family law"})))
	// Separator characters of a serialized array are not part of any element.
	assert.Empty(t, Filter(records, Criteria{Specialty: `","`}))
}

func TestFilterCombinesWithAnd(t *testing.T) {
	records := fixture()
	got := Filter(records, Criteria{City: "new", Degree: "PhD", Experience: "20+"})
	assert.Equal(t, []int64{3}, ids(got))
}

func TestFilterPreservesOrder(t *testing.T) {
	records := fixture()
	reversed := make([]models.Advocate, len(records))
	for i, a := range records {
		reversed[len(records)-1-i] = a
	}
	assert.Equal(t, []int64{5, 1}, ids(Filter(reversed, Criteria{Degree: "MD"})))
}

func TestFilterUnknownExperienceIsIgnored(t *testing.T) {
	records := fixture()
	assert.Equal(t, Filter(records, Criteria{}), Filter(records, Criteria{Experience: "99+"}))
	assert.Equal(t, Filter(records, Criteria{City: "new"}), Filter(records, Criteria{City: "new", Experience: "bogus"}))
}

func TestPredicateMatchIgnoresMisappliedFields(t *testing.T) {
	a := fixture()[0]
	assert.False(t, Predicate{Op: OpContains, Field: FieldYearsOfExperience, Value: "1"}.Match(a))
	assert.False(t, Predicate{Op: OpAnyContains, Field: FieldCity, Value: "new"}.Match(a))
	assert.False(t, Predicate{Op: OpBetween, Field: FieldCity, Min: 0, Max: 100}.Match(a))
	assert.False(t, Predicate{Op: "regex", Field: FieldCity, Value: ".*"}.Match(a))
	assert.False(t, Predicate{Op: OpOr}.Match(a), "an empty disjunction matches nothing")
}
