// Package postgres provides PostgreSQL implementations of repository interfaces.
package postgres

import (
	"fmt"
	"strings"

	"newspaper-agency/internal/pkg/search"
	"newspaper-agency/internal/repository"
)

// column qualifies name with tableAlias when one is given.
func column(tableAlias, name string) string {
	if tableAlias == "" {
		return name
	}
	return tableAlias + "." + name
}

// containsAny builds "(a ILIKE $n ESCAPE '\' OR b ILIKE $n ESCAPE '\')".
func containsAny(tableAlias string, paramIndex int, cols ...string) string {
	parts := make([]string, 0, len(cols))
	for _, c := range cols {
		parts = append(parts, fmt.Sprintf(`%s ILIKE $%d ESCAPE '\'`, column(tableAlias, c), paramIndex))
	}
	return "(" + strings.Join(parts, " OR ") + ")"
}

func where(conditions []string) string {
	if len(conditions) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(conditions, " AND ")
}

// NewspaperQueryBuilder builds WHERE clauses for newspaper listings in PostgreSQL.
// The same clause is shared between the COUNT and SELECT queries.
type NewspaperQueryBuilder struct{}

// NewNewspaperQueryBuilder creates a new query builder instance.
func NewNewspaperQueryBuilder() *NewspaperQueryBuilder {
	return &NewspaperQueryBuilder{}
}

// BuildWhereClause returns the WHERE clause and its arguments. The topic
// filter is an equality match; the search text matches title OR content
// case-insensitively. Returns an empty clause if no filter is set.
func (qb *NewspaperQueryBuilder) BuildWhereClause(filters repository.NewspaperFilters, tableAlias string) (clause string, args []interface{}) {
	var conditions []string
	paramIndex := 1

	if filters.TopicID != nil {
		conditions = append(conditions, fmt.Sprintf("%s = $%d", column(tableAlias, "topic_id"), paramIndex))
		args = append(args, *filters.TopicID)
		paramIndex++
	}

	if text := search.Normalize(filters.SearchText); text != "" {
		conditions = append(conditions, containsAny(tableAlias, paramIndex, "title", "content"))
		args = append(args, search.ContainsPattern(text))
	}

	return where(conditions), args
}

// RedactorQueryBuilder builds WHERE clauses for redactor listings in PostgreSQL.
type RedactorQueryBuilder struct{}

// NewRedactorQueryBuilder creates a new query builder instance.
func NewRedactorQueryBuilder() *RedactorQueryBuilder {
	return &RedactorQueryBuilder{}
}

// BuildWhereClause matches the search text against username, first name and last name.
func (qb *RedactorQueryBuilder) BuildWhereClause(filters repository.RedactorFilters, tableAlias string) (clause string, args []interface{}) {
	text := search.Normalize(filters.SearchText)
	if text == "" {
		return "", nil
	}
	return where([]string{containsAny(tableAlias, 1, "username", "first_name", "last_name")}),
		[]interface{}{search.ContainsPattern(text)}
}

// TopicQueryBuilder builds WHERE clauses for topic listings in PostgreSQL.
type TopicQueryBuilder struct{}

// NewTopicQueryBuilder creates a new query builder instance.
func NewTopicQueryBuilder() *TopicQueryBuilder {
	return &TopicQueryBuilder{}
}

// BuildWhereClause matches the name text against the topic name.
func (qb *TopicQueryBuilder) BuildWhereClause(filters repository.TopicFilters, tableAlias string) (clause string, args []interface{}) {
	text := search.Normalize(filters.NameText)
	if text == "" {
		return "", nil
	}
	return where([]string{containsAny(tableAlias, 1, "name")}),
		[]interface{}{search.ContainsPattern(text)}
}
