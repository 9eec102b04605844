package store

import (
	"fmt"
	"strconv"
	"strings"

	"advocatehub/internal/search"
)

// columns whitelists the SQL column behind each searchable field. Fields are
// never interpolated from input.
var columns = map[search.Field]string{
	search.FieldFirstName:         "first_name",
	search.FieldLastName:          "last_name",
	search.FieldCity:              "city",
	search.FieldDegree:            "degree",
	search.FieldSpecialties:       "specialties",
	search.FieldYearsOfExperience: "years_of_experience",
}

// BuildWhere renders a plan as a WHERE clause with positional parameters
// starting at $1. An empty plan renders as the empty string.
func BuildWhere(plan search.Plan) (string, []any, error) {
	if plan.Empty() {
		return "", nil, nil
	}
	b := &whereBuilder{}
	parts := make([]string, 0, len(plan.Predicates))
	for _, p := range plan.Predicates {
		sql, err := b.predicate(p)
		if err != nil {
			return "", nil, err
		}
		parts = append(parts, sql)
	}
	return "WHERE " + strings.Join(parts, " AND "), b.args, nil
}

type whereBuilder struct {
	args []any
}

func (b *whereBuilder) bind(v any) string {
	b.args = append(b.args, v)
	return "$" + strconv.Itoa(len(b.args))
}

func (b *whereBuilder) predicate(p search.Predicate) (string, error) {
	if p.Op == search.OpOr {
		if len(p.Any) == 0 {
			return "FALSE", nil
		}
		parts := make([]string, 0, len(p.Any))
		for _, child := range p.Any {
			sql, err := b.predicate(child)
			if err != nil {
				return "", err
			}
			parts = append(parts, sql)
		}
		return "(" + strings.Join(parts, " OR ") + ")", nil
	}

	col, ok := columns[p.Field]
	if !ok {
		return "", fmt.Errorf("unsupported search field %q", p.Field)
	}
	switch p.Op {
	case search.OpContains:
		return fmt.Sprintf(`%s ILIKE %s ESCAPE '\'`, col, b.bind(containsPattern(p.Value))), nil
	case search.OpAnyContains:
		return fmt.Sprintf(`EXISTS (SELECT 1 FROM unnest(%s) AS elem(label) WHERE elem.label ILIKE %s ESCAPE '\')`,
			col, b.bind(containsPattern(p.Value))), nil
	case search.OpEquals:
		return fmt.Sprintf("%s = %s", col, b.bind(p.Value)), nil
	case search.OpBetween:
		if p.Open {
			return fmt.Sprintf("%s >= %s", col, b.bind(p.Min)), nil
		}
		return fmt.Sprintf("(%s >= %s AND %s <= %s)", col, b.bind(p.Min), col, b.bind(p.Max)), nil
	default:
		return "", fmt.Errorf("unsupported search operator %q", p.Op)
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds an ILIKE pattern matching value as a literal
// substring, so user input like "50%" cannot act as a wildcard.
func containsPattern(value string) string {
	return "%" + likeEscaper.Replace(value) + "%"
}
