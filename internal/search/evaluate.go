package search

import (
	"slices"
	"strings"

	"advocatehub/internal/advocate/models"
)

// Filter returns the records matching c, preserving order. Paging fields of c
// are ignored.
func Filter(records []models.Advocate, c Criteria) []models.Advocate {
	return Compile(c).Filter(records)
}

// Filter returns the matching subset of records in their original order. The
// result is never nil.
func (p Plan) Filter(records []models.Advocate) []models.Advocate {
	out := make([]models.Advocate, 0, len(records))
	for _, a := range records {
		if p.Match(a) {
			out = append(out, a)
		}
	}
	return out
}

// Match reports whether a satisfies every predicate of the plan.
func (p Plan) Match(a models.Advocate) bool {
	for _, pred := range p.Predicates {
		if !pred.Match(a) {
			return false
		}
	}
	return true
}

// Match evaluates a single predicate. Predicates naming a field the operator
// cannot apply to never match.
func (p Predicate) Match(a models.Advocate) bool {
	switch p.Op {
	case OpOr:
		return slices.ContainsFunc(p.Any, func(child Predicate) bool { return child.Match(a) })
	case OpContains:
		v, ok := textField(a, p.Field)
		return ok && containsFold(v, p.Value)
	case OpAnyContains:
		if p.Field != FieldSpecialties {
			return false
		}
		return slices.ContainsFunc(a.Specialties, func(s string) bool { return containsFold(s, p.Value) })
	case OpEquals:
		v, ok := textField(a, p.Field)
		return ok && v == p.Value
	case OpBetween:
		if p.Field != FieldYearsOfExperience {
			return false
		}
		y := a.YearsOfExperience
		return y >= p.Min && (p.Open || y <= p.Max)
	default:
		return false
	}
}

func textField(a models.Advocate, f Field) (string, bool) {
	switch f {
	case FieldFirstName:
		return a.FirstName, true
	case FieldLastName:
		return a.LastName, true
	case FieldCity:
		return a.City, true
	case FieldDegree:
		return a.Degree, true
	default:
		return "", false
	}
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
