package domain

import "sort"

// Tag classifies a test case by category or severity.
type Tag string

// Category tags.
const (
	TagUI            Tag = "ui"
	TagAPI           Tag = "api"
	TagE2E           Tag = "e2e"
	TagPerformance   Tag = "performance"
	TagAccessibility Tag = "accessibility"
)

// Severity tags.
const (
	TagSmoke      Tag = "smoke"
	TagCritical   Tag = "critical"
	TagRegression Tag = "regression"
)

var knownTags = map[Tag]bool{
	TagUI:            true,
	TagAPI:           true,
	TagE2E:           true,
	TagPerformance:   true,
	TagAccessibility: true,
	TagSmoke:         true,
	TagCritical:      true,
	TagRegression:    true,
}

// Known reports whether the tag is one of the recognized category or severity tags.
func (t Tag) Known() bool {
	return knownTags[t]
}

// TagSet is the set of tags attached to a test case at registration time.
type TagSet map[Tag]bool

// NewTagSet builds a TagSet from the given tags.
func NewTagSet(tags ...Tag) TagSet {
	set := make(TagSet, len(tags))
	for _, t := range tags {
		set[t] = true
	}
	return set
}

// Has reports whether the set contains the tag.
func (s TagSet) Has(t Tag) bool {
	return s[t]
}

// Strings returns the tags as a sorted string slice.
func (s TagSet) Strings() []string {
	out := make([]string, 0, len(s))
	for t := range s {
		out = append(out, string(t))
	}
	sort.Strings(out)
	return out
}
