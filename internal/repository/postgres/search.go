package postgres

import (
	"fmt"
	"strings"

	"github.com/dtroode/lostfound-server/internal/model"
)

const itemColumns = `id, item_name, category, description, location, date, status, contact_info, type, user_id`

const (
	nameClause     = `item_name ILIKE %s`
	categoryClause = `LOWER(category) = LOWER(%s)`
	locationClause = `location ILIKE %s`
	dateClause     = `to_char(date, 'YYYY-MM-DD') LIKE %s`
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// searchQuery composes a parameterized item search. Clauses are constant
// templates; filter values only ever travel as bound arguments.
type searchQuery struct {
	clauses []string
	args    []any
}

func newSearchQuery(filter model.SearchFilter) *searchQuery {
	q := &searchQuery{}

	if filter.Name != "" {
		q.where(nameClause, contains(filter.Name))
	}
	if filter.Category != "" {
		q.where(categoryClause, filter.Category)
	}
	if filter.Location != "" {
		q.where(locationClause, contains(filter.Location))
	}
	if filter.Date != "" {
		q.where(dateClause, contains(filter.Date))
	}

	return q
}

func (q *searchQuery) where(template string, arg any) {
	q.args = append(q.args, arg)
	q.clauses = append(q.clauses, fmt.Sprintf(template, fmt.Sprintf("$%d", len(q.args))))
}

func (q *searchQuery) build() (string, []any) {
	var sb strings.Builder
	sb.WriteString("SELECT " + itemColumns + " FROM items WHERE 1=1")
	for _, clause := range q.clauses {
		sb.WriteString(" AND ")
		sb.WriteString(clause)
	}
	sb.WriteString(" ORDER BY date DESC")

	return sb.String(), q.args
}

// contains wraps v in wildcards after escaping LIKE metacharacters.
func contains(v string) string {
	return "%" + likeEscaper.Replace(v) + "%"
}
