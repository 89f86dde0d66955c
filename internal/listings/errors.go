package listings

import "fmt"

// ValidationError means the caller-supplied data failed a precondition. The
// message is safe to show to the end user verbatim.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// QuotaExceededError blocks a creation because the owner already has as many
// active listings as their tier allows.
type QuotaExceededError struct {
	TierName string
	Limit    int
	Current  int64
}

func (e *QuotaExceededError) Error() string {
	if e.TierName == "" || e.TierName == "Free" {
		return fmt.Sprintf("Free Limit Reached: You have already posted a free listing. Limit is %d listing per 60 days.", e.Limit)
	}
	return fmt.Sprintf("Limit Reached: Your %s plan allows %d active ads. You have %d.",
		e.TierName, e.Limit, e.Current)
}

// PersistenceError wraps a storage failure. Callers surface a generic "try
// again" message; no automatic retry happens here.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
