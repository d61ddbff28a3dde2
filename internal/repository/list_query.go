package repository

import (
	"fmt"
	"strings"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // registers the postgres dialect
	"github.com/doug-martin/goqu/v9/exp"

	"github.com/ahmadalnaib/project-board/internal/domain"
	"github.com/ahmadalnaib/project-board/internal/listing"
)

const dialectPostgres = "postgres"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func dialect() goqu.DialectWrapper {
	return goqu.Dialect(dialectPostgres)
}

// buildCountQuery counts the rows of table matching criteria.
func buildCountQuery(table string, criteria listing.Criteria) (string, []any, error) {
	sql, args, err := dialect().
		From(table).
		Prepared(true).
		Select(goqu.COUNT(goqu.Star())).
		Where(whereExpressions(criteria.Filters)...).
		ToSQL()
	if err != nil {
		return "", nil, fmt.Errorf("failed to build count query for %s: %w", table, err)
	}
	return sql, args, nil
}

// buildFindQuery selects one page of table matching criteria, ordered by the
// requested column with nulls last and id ascending as the tie-break.
func buildFindQuery(table string, columns []any, criteria listing.Criteria, limit, offset int) (string, []any, error) {
	ds := dialect().
		From(table).
		Prepared(true).
		Select(columns...).
		Where(whereExpressions(criteria.Filters)...).
		Order(orderExpressions(criteria.Sort)...)
	if limit > 0 {
		ds = ds.Limit(uint(limit))
	}
	if offset > 0 {
		ds = ds.Offset(uint(offset))
	}
	sql, args, err := ds.ToSQL()
	if err != nil {
		return "", nil, fmt.Errorf("failed to build list query for %s: %w", table, err)
	}
	return sql, args, nil
}

// Columns are compared as text so a value that cannot be coerced to the
// column type (e.g. a malformed uuid) matches nothing instead of failing.
func whereExpressions(filters []listing.Filter) []exp.Expression {
	exprs := make([]exp.Expression, 0, len(filters))
	for _, filter := range filters {
		column := goqu.Cast(goqu.C(filter.Column), "TEXT")
		switch filter.Match {
		case listing.MatchContains:
			exprs = append(exprs, column.ILike("%"+likeEscaper.Replace(filter.Value)+"%"))
		default:
			exprs = append(exprs, column.Eq(filter.Value))
		}
	}
	return exprs
}

func orderExpressions(sort listing.Sort) []exp.OrderedExpression {
	column := goqu.I(sort.Column)
	primary := column.Asc().NullsLast()
	if sort.Direction == domain.SortDirectionDesc {
		primary = column.Desc().NullsLast()
	}
	if sort.Column == listing.ColumnID {
		return []exp.OrderedExpression{primary}
	}
	return []exp.OrderedExpression{primary, goqu.I(listing.ColumnID).Asc()}
}
