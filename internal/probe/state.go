package probe

import (
	"errors"
	"fmt"
)

// ExitCodeUnset marks a State whose exit code has not been assigned yet.
const ExitCodeUnset = -2

const misuseText = "bad probe. Status UNKNOWN should never happen after the probe has been evaluated and returned CRITICAL/WARNING"

// ErrInvalidStatus is returned when a status outside the defined set is recorded.
var ErrInvalidStatus = errors.New("invalid probe status")

// Finding is a single line of the probe's detailed output.
type Finding struct {
	Status Status
	Text   string
	// Message marks an informational line that carries no status.
	Message bool
}

// String renders the finding as it appears in the details.
func (f Finding) String() string {
	if f.Message {
		return "MSG: " + f.Text
	}
	return f.Status.String() + ": " + f.Text
}

// State is the aggregate result of one probe run.
type State struct {
	Findings      []Finding
	Status        Status
	ExitCode      int
	Summary       string
	WarningCount  int
	CriticalCount int

	// index in Findings of the finding appended by the last Record call
	recorded int
}

// NewState returns an empty State with status OK and an unset exit code.
func NewState() *State {
	return &State{
		Status:   StatusOK,
		ExitCode: ExitCodeUnset,
		recorded: -1,
	}
}

// Record appends a finding and escalates the overall status when status is at
// least as severe as the current one. It reports whether the status, exit code
// and summary were updated.
func (s *State) Record(status Status, text string, exitCode int) (bool, error) {
	if !status.Valid() {
		return false, fmt.Errorf("%w: %d", ErrInvalidStatus, int(status))
	}

	s.Findings = append(s.Findings, Finding{Status: status, Text: text})
	s.recorded = len(s.Findings) - 1

	switch status {
	case StatusWarning:
		s.WarningCount++
	case StatusCritical:
		s.CriticalCount++
	}

	if !status.AtLeast(s.Status) {
		return false, nil
	}
	if status == StatusUnknown && s.Status != StatusOK {
		s.Findings = append(s.Findings, Finding{Status: StatusUnknown, Text: misuseText})
	}
	s.Status = status
	s.ExitCode = exitCode
	s.Summary = status.String() + ": " + text
	return true, nil
}

// AddMessage appends an informational line. Status and counters are unchanged.
func (s *State) AddMessage(text string) {
	s.Findings = append(s.Findings, Finding{Text: text, Message: true})
}

// dropRecorded removes the finding appended by the last Record call.
func (s *State) dropRecorded() {
	if s.recorded < 0 || s.recorded >= len(s.Findings) {
		return
	}
	s.Findings = append(s.Findings[:s.recorded], s.Findings[s.recorded+1:]...)
	s.recorded = -1
}

// Details returns the rendered finding lines in recording order.
func (s *State) Details() []string {
	lines := make([]string, len(s.Findings))
	for i, f := range s.Findings {
		lines[i] = f.String()
	}
	return lines
}
