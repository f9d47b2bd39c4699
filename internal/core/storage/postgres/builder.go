package postgres

import (
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/lancera-lab/lancera-reputation/internal/core/condition"
)

// Eligibility predicates are fixed per role and never parameterized.
const (
	workerEligible = "u.view_mode = 'contractor' AND u.is_active AND u.resigned_at IS NULL"
	clientEligible = "u.view_mode = 'outsourcer' AND u.is_active AND u.resigned_at IS NULL"
)

// builder assembles a query's optional predicates as independent fragments
// bound through numbered placeholders. Values never reach the SQL text,
// which is what closes the interpolation hole the raw user-ID filter would
// otherwise open.
type builder struct {
	args []any
}

// bind registers a value and returns its placeholder.
func (b *builder) bind(value any) string {
	b.args = append(b.args, value)
	return fmt.Sprintf("$%d", len(b.args))
}

// window returns the half-open [start, finish) fragments for a timestamp
// column. Start is inclusive, finish exclusive. Absent bounds contribute
// nothing.
func (b *builder) window(column string, spec condition.Spec) []string {
	var frags []string
	if spec.Start != nil {
		frags = append(frags, column+" >= "+b.bind(*spec.Start))
	}
	if spec.Finish != nil {
		frags = append(frags, column+" < "+b.bind(*spec.Finish))
	}
	return frags
}

// userFilter returns the allow-list fragment for a user-id column, bound as
// a single array parameter.
func (b *builder) userFilter(column string, spec condition.Spec) []string {
	if spec.UserIDs == nil {
		return nil
	}
	return []string{column + " = ANY(" + b.bind(pq.Array(spec.UserIDs)) + ")"}
}

// occurred combines "the event happened" with its window: the column is
// non-null and inside [start, finish). Used inside FILTER clauses of
// combined queries, where each action column carries its own window.
func (b *builder) occurred(column string, spec condition.Spec) string {
	frags := append([]string{column + " IS NOT NULL"}, b.window(column, spec)...)
	return strings.Join(frags, " AND ")
}

// page returns the LIMIT/OFFSET suffix, or "" when the spec is unpaged.
func (b *builder) page(spec condition.Spec) string {
	var suffix string
	if spec.Limit != nil {
		suffix += "\nLIMIT " + b.bind(*spec.Limit)
	}
	if spec.Offset != nil {
		suffix += "\nOFFSET " + b.bind(*spec.Offset)
	}
	return suffix
}

// whereClause joins predicate fragments into a WHERE clause.
func whereClause(frags []string) string {
	return "WHERE " + strings.Join(frags, "\n  AND ")
}

// joinAnd joins fragments inline, for subquery predicates.
func joinAnd(frags []string) string {
	return strings.Join(frags, " AND ")
}
