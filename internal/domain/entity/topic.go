package entity

// MaxTopicNameLength is the longest accepted topic name in runes.
const MaxTopicNameLength = 55

// Topic is a subject category that every newspaper belongs to.
type Topic struct {
	ID   int64
	Name string
}

func (t *Topic) String() string { return t.Name }

// Validate trims the name and checks its length.
func (t *Topic) Validate() error {
	v := &ValidationErrors{}
	t.Name = checkText(v, "name", t.Name, true, MaxTopicNameLength)
	return v.Err()
}
