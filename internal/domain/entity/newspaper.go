package entity

import (
	"fmt"
	"time"
)

// MaxNewspaperTitleLength is the longest accepted title in runes.
const MaxNewspaperTitleLength = 255

// Newspaper is a published article. It belongs to exactly one Topic and
// lists the redactors credited as its publishers.
type Newspaper struct {
	ID            int64
	Title         string
	Content       string
	PublishedDate time.Time
	TopicID       int64
	PublisherIDs  []int64
}

func (n *Newspaper) String() string { return n.Title }

// HasPublisher reports whether redactorID is one of the publishers.
func (n *Newspaper) HasPublisher(redactorID int64) bool {
	if redactorID <= 0 {
		return false
	}
	for _, id := range n.PublisherIDs {
		if id == redactorID {
			return true
		}
	}
	return false
}

// Validate trims text fields, de-duplicates publishers and checks required
// fields and publisher ids. Existence of the topic and publishers is checked
// by the caller.
func (n *Newspaper) Validate() error {
	v := &ValidationErrors{}
	n.Title = checkText(v, "title", n.Title, true, MaxNewspaperTitleLength)
	n.Content = checkText(v, "content", n.Content, true, 0)
	if n.TopicID <= 0 {
		v.Add("topic", "this field is required")
	}
	n.PublisherIDs = NormalizeIDs(n.PublisherIDs)
	var bad []int64
	for _, id := range n.PublisherIDs {
		if id <= 0 {
			bad = append(bad, id)
		}
	}
	if len(bad) > 0 {
		v.Add("publishers", fmt.Sprintf("invalid redactor ids: %v", bad))
	}
	return v.Err()
}

// DateOf truncates t to its calendar date in UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
