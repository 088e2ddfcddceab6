// Package status holds the lifecycle flag shared by every record type.
// Records are never purged; they move between these states.
package status

import "strings"

type Status string

const (
	Active   Status = "active"
	Inactive Status = "inactive"
)

func (s Status) Valid() bool {
	return s == Active || s == Inactive
}

func (s Status) String() string {
	return string(s)
}

// Parse accepts a case-insensitive status name.
func Parse(value string) (Status, bool) {
	s := Status(strings.ToLower(strings.TrimSpace(value)))
	return s, s.Valid()
}
