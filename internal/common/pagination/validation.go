package pagination

import (
	"fmt"

	"newspaper-agency/internal/domain/entity"
)

// Validate reports an out-of-range page or page size as a validation failure.
func (p Params) Validate() error {
	v := &entity.ValidationErrors{}
	if p.Page < 1 {
		v.Add("page", "must be a positive integer")
	}
	if p.Limit < 1 || p.Limit > MaxPageSize {
		v.Add("limit", fmt.Sprintf("must be between 1 and %d", MaxPageSize))
	}
	return v.Err()
}
