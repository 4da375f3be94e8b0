package pagination

// CalculateOffset calculates the database OFFSET value based on page number and limit.
// Page numbers are 1-based, so page 1 has offset 0.
//
// Examples:
//   - Page 1, Limit 5 -> Offset 0
//   - Page 3, Limit 4 -> Offset 8
func CalculateOffset(page, limit int) int {
	if page < 1 {
		return 0
	}
	return (page - 1) * limit
}

// Offset is CalculateOffset for p.
func (p Params) Offset() int {
	return CalculateOffset(p.Page, p.Limit)
}

// CalculateTotalPages calculates the total number of pages based on total items and limit.
// Uses ceiling division; an empty listing still has one (empty) page.
//
// Examples:
//   - Total 0, Limit 5 -> 1 page
//   - Total 5, Limit 5 -> 1 page
//   - Total 6, Limit 5 -> 2 pages
func CalculateTotalPages(total int64, limit int) int {
	if total == 0 || limit <= 0 {
		return 1
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

// BuildMetadata constructs the metadata of page p of a listing with total records.
func BuildMetadata(p Params, total int64) Metadata {
	totalPages := CalculateTotalPages(total, p.Limit)
	return Metadata{
		Total:       total,
		Page:        p.Page,
		Limit:       p.Limit,
		TotalPages:  totalPages,
		HasNext:     p.Page < totalPages,
		HasPrevious: p.Page > 1,
	}
}
