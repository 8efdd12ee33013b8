package probe

import (
	"fmt"
	"strings"
)

// Status represents the outcome of a probe or of a single test within it.
// Values are ordered by severity: OK < WARNING < CRITICAL < UNKNOWN.
type Status int

const (
	StatusOK Status = iota
	StatusWarning
	StatusCritical
	StatusUnknown
)

var statusNames = [...]string{
	StatusOK:       "OK",
	StatusWarning:  "WARNING",
	StatusCritical: "CRITICAL",
	StatusUnknown:  "UNKNOWN",
}

// Valid reports whether s is one of the four defined statuses.
func (s Status) Valid() bool {
	return s >= StatusOK && s <= StatusUnknown
}

// String returns the canonical name used in probe output.
func (s Status) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Status(%d)", int(s))
	}
	return statusNames[s]
}

// AtLeast reports whether s is as severe as other or more.
func (s Status) AtLeast(other Status) bool {
	return s >= other
}

// ParseStatus converts a status name (case-insensitive) into a Status.
func ParseStatus(name string) (Status, error) {
	for i, n := range statusNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return Status(i), nil
		}
	}
	return StatusUnknown, fmt.Errorf("%w: %q", ErrInvalidStatus, name)
}
