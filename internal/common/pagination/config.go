// Package pagination provides page-number pagination with a fixed page
// size per entity kind. Clients choose the page; the server chooses the size.
package pagination

import pkgconfig "newspaper-agency/pkg/config"

// MaxPageSize caps every configured page size.
const MaxPageSize = 100

// PageSizes holds the fixed number of records per page for each listing.
type PageSizes struct {
	Newspapers int `yaml:"newspapers"`
	Topics     int `yaml:"topics"`
	Redactors  int `yaml:"redactors"`
}

// DefaultPageSizes returns newspapers=5, topics=4, redactors=4.
func DefaultPageSizes() PageSizes {
	return PageSizes{
		Newspapers: 5,
		Topics:     4,
		Redactors:  4,
	}
}

// Merge returns s with every valid non-zero size of other applied.
func (s PageSizes) Merge(other PageSizes) PageSizes {
	s.Newspapers = pick(other.Newspapers, s.Newspapers)
	s.Topics = pick(other.Topics, s.Topics)
	s.Redactors = pick(other.Redactors, s.Redactors)
	return s
}

// LoadFromEnv applies the overrides found in the environment to base.
// Supported environment variables:
//   - PAGE_SIZE_NEWSPAPERS
//   - PAGE_SIZE_TOPICS
//   - PAGE_SIZE_REDACTORS
//
// Values outside 1..MaxPageSize are ignored.
func LoadFromEnv(base PageSizes) PageSizes {
	return base.Merge(PageSizes{
		Newspapers: pkgconfig.GetEnvInt("PAGE_SIZE_NEWSPAPERS", 0),
		Topics:     pkgconfig.GetEnvInt("PAGE_SIZE_TOPICS", 0),
		Redactors:  pkgconfig.GetEnvInt("PAGE_SIZE_REDACTORS", 0),
	})
}

func pick(candidate, current int) int {
	if candidate < 1 || candidate > MaxPageSize {
		return current
	}
	return candidate
}
