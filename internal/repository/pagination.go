package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/course-api/internal/models"
)

// PageResult is one page of a listing plus the counts describing the full
// result set.
type PageResult[T any] struct {
	Items []T
	Total int
	Pages int
	Page  int
}

// listQuery describes a listing before search and pagination are applied.
type listQuery struct {
	from         string
	columns      string
	orderBy      string
	searchFields []string
	conditions   []string
	args         []interface{}
}

// where appends a condition whose single placeholder is written as %d.
func (q *listQuery) where(format string, arg interface{}) {
	q.conditions = append(q.conditions, fmt.Sprintf(format, len(q.args)+1))
	q.args = append(q.args, arg)
}

func (q *listQuery) applySearch(search string) {
	if search == "" || len(q.searchFields) == 0 {
		return
	}
	placeholder := len(q.args) + 1
	matches := make([]string, len(q.searchFields))
	for i, field := range q.searchFields {
		matches[i] = fmt.Sprintf("LOWER(COALESCE(%s, '')) LIKE $%d", field, placeholder)
	}
	q.conditions = append(q.conditions, "("+strings.Join(matches, " OR ")+")")
	q.args = append(q.args, "%"+strings.ToLower(search)+"%")
}

func (q *listQuery) whereClause() string {
	if len(q.conditions) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(q.conditions, " AND ")
}

// totalPages is ceil(total/size), or 1 when size is zero.
func totalPages(total, size int) int {
	if size <= 0 {
		return 1
	}
	return (total + size - 1) / size
}

// paginate filters q by the search term, counts the matches and loads the
// requested page ordered by q.orderBy.
func paginate[T any](ctx context.Context, db sqlx.QueryerContext, q listQuery, params models.PageParams) (PageResult[T], error) {
	q.applySearch(params.SearchTerm())
	where := q.whereClause()

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s%s", q.from, where)
	if err := sqlx.GetContext(ctx, db, &total, countQuery, q.args...); err != nil {
		return PageResult[T]{}, fmt.Errorf("count: %w", err)
	}

	items := make([]T, 0)
	query := fmt.Sprintf("SELECT %s FROM %s%s ORDER BY %s ASC LIMIT %d OFFSET %d",
		q.columns, q.from, where, q.orderBy, params.Size, params.Offset())
	if err := sqlx.SelectContext(ctx, db, &items, query, q.args...); err != nil {
		return PageResult[T]{}, fmt.Errorf("select: %w", err)
	}

	return PageResult[T]{
		Items: items,
		Total: total,
		Pages: totalPages(total, params.Size),
		Page:  params.Page,
	}, nil
}
