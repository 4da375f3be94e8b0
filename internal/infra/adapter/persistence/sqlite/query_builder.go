// Package sqlite provides SQLite implementations of repository interfaces.
package sqlite

import (
	"strings"

	"newspaper-agency/internal/pkg/search"
	"newspaper-agency/internal/repository"
)

func column(tableAlias, name string) string {
	if tableAlias == "" {
		return name
	}
	return tableAlias + "." + name
}

// containsAny matches one pattern against several columns. ulower is
// registered by db.SQLiteDriver and folds non-ASCII letters that LOWER
// leaves alone, so "über" finds "Über".
func containsAny(tableAlias, pattern string, cols ...string) (string, []interface{}) {
	parts := make([]string, 0, len(cols))
	args := make([]interface{}, 0, len(cols))
	for _, c := range cols {
		parts = append(parts, "ulower("+column(tableAlias, c)+`) LIKE ulower(?) ESCAPE '\'`)
		args = append(args, pattern)
	}
	return "(" + strings.Join(parts, " OR ") + ")", args
}

func where(conditions []string) string {
	if len(conditions) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(conditions, " AND ")
}

// NewspaperQueryBuilder builds WHERE clauses for newspaper listings.
// This builder is shared between COUNT and SELECT queries.
type NewspaperQueryBuilder struct{}

// NewNewspaperQueryBuilder creates a new query builder instance.
func NewNewspaperQueryBuilder() *NewspaperQueryBuilder {
	return &NewspaperQueryBuilder{}
}

// BuildWhereClause returns the clause and its positional arguments.
// Returns empty string if no filter is set.
func (qb *NewspaperQueryBuilder) BuildWhereClause(filters repository.NewspaperFilters, tableAlias string) (clause string, args []interface{}) {
	var conditions []string

	if filters.TopicID != nil {
		conditions = append(conditions, column(tableAlias, "topic_id")+" = ?")
		args = append(args, *filters.TopicID)
	}

	if text := search.Normalize(filters.SearchText); text != "" {
		cond, condArgs := containsAny(tableAlias, search.ContainsPattern(text), "title", "content")
		conditions = append(conditions, cond)
		args = append(args, condArgs...)
	}

	return where(conditions), args
}

// RedactorQueryBuilder builds WHERE clauses for redactor listings.
type RedactorQueryBuilder struct{}

func NewRedactorQueryBuilder() *RedactorQueryBuilder {
	return &RedactorQueryBuilder{}
}

func (qb *RedactorQueryBuilder) BuildWhereClause(filters repository.RedactorFilters, tableAlias string) (clause string, args []interface{}) {
	text := search.Normalize(filters.SearchText)
	if text == "" {
		return "", nil
	}
	cond, args := containsAny(tableAlias, search.ContainsPattern(text), "username", "first_name", "last_name")
	return where([]string{cond}), args
}

// TopicQueryBuilder builds WHERE clauses for topic listings.
type TopicQueryBuilder struct{}

func NewTopicQueryBuilder() *TopicQueryBuilder {
	return &TopicQueryBuilder{}
}

func (qb *TopicQueryBuilder) BuildWhereClause(filters repository.TopicFilters, tableAlias string) (clause string, args []interface{}) {
	text := search.Normalize(filters.NameText)
	if text == "" {
		return "", nil
	}
	cond, args := containsAny(tableAlias, search.ContainsPattern(text), "name")
	return where([]string{cond}), args
}
