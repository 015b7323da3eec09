package event

import "strings"

// Topic is a hierarchical event type using dot notation.
type Topic string

// WildcardSingle matches exactly one topic segment in a pattern.
const WildcardSingle = "*"

// Separator separates topic segments.
const Separator = "."

// String returns the topic as a string.
func (t Topic) String() string {
	return string(t)
}

// Segments returns the topic split on the separator.
func (t Topic) Segments() []string {
	if t == "" {
		return nil
	}
	return strings.Split(string(t), Separator)
}

// Child returns a child topic with segment appended.
func (t Topic) Child(segment string) Topic {
	if t == "" {
		return Topic(segment)
	}
	return Topic(string(t) + Separator + segment)
}

// Match reports whether the concrete topic t matches pattern. Each "*"
// in the pattern matches exactly one segment; segment counts must agree.
func (t Topic) Match(pattern Topic) bool {
	if t == pattern {
		return true
	}

	got := t.Segments()
	want := pattern.Segments()
	if len(got) != len(want) {
		return false
	}
	for i, seg := range want {
		if seg != WildcardSingle && seg != got[i] {
			return false
		}
	}
	return true
}
