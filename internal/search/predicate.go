package search

// Field names an advocate attribute a predicate can address.
type Field string

const (
	FieldFirstName         Field = "first_name"
	FieldLastName          Field = "last_name"
	FieldCity              Field = "city"
	FieldDegree            Field = "degree"
	FieldSpecialties       Field = "specialties"
	FieldYearsOfExperience Field = "years_of_experience"
)

// Operator is the match rule of a predicate.
type Operator string

const (
	// OpContains is a case-insensitive substring match on a text field.
	OpContains Operator = "contains"
	// OpAnyContains is a case-insensitive substring match on any element of a list field.
	OpAnyContains Operator = "any_contains"
	// OpEquals is an exact, case-sensitive match.
	OpEquals Operator = "eq"
	// OpBetween is an inclusive integer range; Open drops the upper bound.
	OpBetween Operator = "between"
	// OpOr is a disjunction of Any.
	OpOr Operator = "or"
)

// Predicate is one node of a compiled search.
type Predicate struct {
	Op    Operator
	Field Field
	Value string
	Min   int
	Max   int
	Open  bool
	Any   []Predicate
}

// Plan is a conjunction of predicates. The zero Plan matches everything.
type Plan struct {
	Predicates []Predicate
}

// Empty reports whether the plan imposes no constraint.
func (p Plan) Empty() bool {
	return len(p.Predicates) == 0
}

// Compile turns criteria into a plan, one predicate per non-empty criterion,
// in a fixed order: query, city, specialty, degree, experience. Unknown
// experience codes add nothing.
func Compile(c Criteria) Plan {
	c = Normalize(c)
	var preds []Predicate

	if c.Query != "" {
		preds = append(preds, Predicate{Op: OpOr, Any: []Predicate{
			{Op: OpContains, Field: FieldFirstName, Value: c.Query},
			{Op: OpContains, Field: FieldLastName, Value: c.Query},
			{Op: OpContains, Field: FieldCity, Value: c.Query},
			{Op: OpAnyContains, Field: FieldSpecialties, Value: c.Query},
		}})
	}
	if c.City != "" {
		preds = append(preds, Predicate{Op: OpContains, Field: FieldCity, Value: c.City})
	}
	if c.Specialty != "" {
		preds = append(preds, Predicate{Op: OpAnyContains, Field: FieldSpecialties, Value: c.Specialty})
	}
	if c.Degree != "" {
		preds = append(preds, Predicate{Op: OpEquals, Field: FieldDegree, Value: c.Degree})
	}
	if b, ok := LookupBucket(c.Experience); ok {
		preds = append(preds, Predicate{
			Op:    OpBetween,
			Field: FieldYearsOfExperience,
			Min:   b.Min,
			Max:   b.Max,
			Open:  b.Open,
		})
	}
	return Plan{Predicates: preds}
}
