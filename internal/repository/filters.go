package repository

// NewspaperFilters narrows a newspaper listing. Zero values mean no filter.
type NewspaperFilters struct {
	TopicID    *int64 // Optional: exact topic match
	SearchText string // Optional: case-insensitive substring of title or content
}

// RedactorFilters narrows a redactor listing.
type RedactorFilters struct {
	SearchText string // Optional: substring of username, first name or last name
}

// TopicFilters narrows a topic listing.
type TopicFilters struct {
	NameText string // Optional: substring of the topic name
}
