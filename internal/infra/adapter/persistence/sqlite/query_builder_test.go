package sqlite_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"newspaper-agency/internal/infra/adapter/persistence/sqlite"
	"newspaper-agency/internal/repository"
)

func TestNewspaperQueryBuilder_BuildWhereClause(t *testing.T) {
	topicID := int64(4)
	tests := []struct {
		name      string
		filters   repository.NewspaperFilters
		wantWhere string
		wantArgs  []interface{}
	}{
		{
			name:      "no filters",
			filters:   repository.NewspaperFilters{SearchText: "   "},
			wantWhere: "",
		},
		{
			name:      "topic only",
			filters:   repository.NewspaperFilters{TopicID: &topicID},
			wantWhere: "WHERE n.topic_id = ?",
			wantArgs:  []interface{}{int64(4)},
		},
		{
			name:      "topic and search",
			filters:   repository.NewspaperFilters{TopicID: &topicID, SearchText: "Wonders"},
			wantWhere: `WHERE n.topic_id = ? AND (ulower(n.title) LIKE ulower(?) ESCAPE '\' OR ulower(n.content) LIKE ulower(?) ESCAPE '\')`,
			wantArgs:  []interface{}{int64(4), "%Wonders%", "%Wonders%"},
		},
	}
	qb := sqlite.NewNewspaperQueryBuilder()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := qb.BuildWhereClause(tt.filters, "n")
			if where != tt.wantWhere {
				t.Errorf("where = %q, want %q", where, tt.wantWhere)
			}
			if diff := cmp.Diff(tt.wantArgs, args); diff != "" {
				t.Errorf("args mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRedactorQueryBuilder_BuildWhereClause(t *testing.T) {
	where, args := sqlite.NewRedactorQueryBuilder().BuildWhereClause(repository.RedactorFilters{SearchText: "ada_"}, "")
	want := `WHERE (ulower(username) LIKE ulower(?) ESCAPE '\' OR ulower(first_name) LIKE ulower(?) ESCAPE '\' OR ulower(last_name) LIKE ulower(?) ESCAPE '\')`
	if where != want {
		t.Errorf("where = %q, want %q", where, want)
	}
	if diff := cmp.Diff([]interface{}{`%ada\_%`, `%ada\_%`, `%ada\_%`}, args); diff != "" {
		t.Errorf("args mismatch (-want +got):\n%s", diff)
	}
}

func TestTopicQueryBuilder_Blank(t *testing.T) {
	where, args := sqlite.NewTopicQueryBuilder().BuildWhereClause(repository.TopicFilters{}, "")
	if where != "" || args != nil {
		t.Errorf("BuildWhereClause(blank) = %q, %v", where, args)
	}
}
