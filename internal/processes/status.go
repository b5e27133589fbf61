package processes

import (
	"encoding/json"
	"slices"
)

// Status represents a process state-machine state.
type Status string

// Valid process statuses.
const (
	StatusPending     Status = "pending"
	StatusIngested    Status = "ingested"
	StatusClassifying Status = "classifying"
	StatusExtracting  Status = "extracting"
	StatusValidating  Status = "validating"
	StatusHITLReview  Status = "hitl_review"
	StatusCompleted   Status = "completed"
	StatusFailed      Status = "failed"
	StatusCancelled   Status = "cancelled"
)

var statuses = []Status{
	StatusPending,
	StatusIngested,
	StatusClassifying,
	StatusExtracting,
	StatusValidating,
	StatusHITLReview,
	StatusCompleted,
	StatusFailed,
	StatusCancelled,
}

// transitions maps each state to the states reachable from it.
// Terminal states have no successors.
var transitions = map[Status][]Status{
	StatusPending:     {StatusIngested, StatusFailed, StatusCancelled},
	StatusIngested:    {StatusClassifying, StatusFailed, StatusCancelled},
	StatusClassifying: {StatusExtracting, StatusFailed, StatusCancelled},
	StatusExtracting:  {StatusValidating, StatusFailed, StatusCancelled},
	StatusValidating:  {StatusHITLReview, StatusCompleted, StatusFailed, StatusCancelled},
	StatusHITLReview:  {StatusValidating, StatusCompleted, StatusFailed, StatusCancelled},
}

// Statuses returns the list of valid process statuses.
func Statuses() []Status {
	return statuses
}

// Terminal reports whether the status is a terminal state.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed || s == StatusCancelled
}

// CanTransition reports whether the state machine permits moving from s to next.
func (s Status) CanTransition(next Status) bool {
	return slices.Contains(transitions[s], next)
}

// UnmarshalJSON validates that the decoded string is a known status value.
func (s *Status) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	v := Status(raw)
	if !slices.Contains(statuses, v) {
		return ErrInvalidStatus
	}
	*s = v
	return nil
}

// ParseStatus validates a string as a known process status.
func ParseStatus(s string) (Status, error) {
	v := Status(s)
	if !slices.Contains(statuses, v) {
		return "", ErrInvalidStatus
	}
	return v, nil
}
