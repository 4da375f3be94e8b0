package pagination_test

import (
	"errors"
	"testing"

	"newspaper-agency/internal/common/pagination"
	"newspaper-agency/internal/domain/entity"
)

func TestParams_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		params pagination.Params
		fields []string
	}{
		{name: "valid", params: pagination.NewParams(1, 5)},
		{name: "page zero", params: pagination.NewParams(0, 5), fields: []string{"page"}},
		{name: "limit too large", params: pagination.NewParams(1, 101), fields: []string{"limit"}},
		{name: "both", params: pagination.NewParams(-1, 0), fields: []string{"limit", "page"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.params.Validate()
			if tt.fields == nil {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			var verr *entity.ValidationErrors
			if !errors.As(err, &verr) {
				t.Fatalf("Validate() = %v, want ValidationErrors", err)
			}
			got := verr.Fields()
			if len(got) != len(tt.fields) {
				t.Fatalf("fields = %v, want %v", got, tt.fields)
			}
			for i := range got {
				if got[i] != tt.fields[i] {
					t.Fatalf("fields = %v, want %v", got, tt.fields)
				}
			}
		})
	}
}
