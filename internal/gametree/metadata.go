package gametree

// Tag is one metadata name/value pair, in the order it was added.
type Tag struct {
	Name  string
	Value string
}

// strTags is the Seven Tag Roster, in canonical output order.
var strTags = [7]string{"Event", "Site", "Date", "Round", "White", "Black", "Result"}

// IsSTRTag reports whether name is one of the Seven Tag Roster names.
func IsSTRTag(name string) bool {
	for _, t := range strTags {
		if t == name {
			return true
		}
	}
	return false
}

// STRTags returns the Seven Tag Roster names in canonical order.
func STRTags() []string {
	out := make([]string, len(strTags))
	copy(out, strTags[:])
	return out
}

// Metadata is an ordered sequence of tag pairs, preserving insertion
// order, with name-keyed lookup on top.
type Metadata struct {
	tags []Tag
}

// Add appends a tag pair. Metadata does not deduplicate by name: a
// repeated tag name is stored again and Get still returns the first
// occurrence, matching the insertion-order contract.
func (m *Metadata) Add(name, value string) {
	m.tags = append(m.tags, Tag{Name: name, Value: value})
}

// Get returns the value of the first tag with the given name, and
// whether one was found.
func (m *Metadata) Get(name string) (string, bool) {
	for _, t := range m.tags {
		if t.Name == name {
			return t.Value, true
		}
	}
	return "", false
}

// Tags returns the tag pairs in insertion order. The returned slice must
// not be mutated by the caller.
func (m *Metadata) Tags() []Tag {
	return m.tags
}
