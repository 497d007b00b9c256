package evaluation

// Status values as reported by the evaluation backend.
type Status string

const (
	StatusInitialized        Status = "EVALUATION_INITIALIZED"
	StatusStarted            Status = "EVALUATION_STARTED"
	StatusFinished           Status = "EVALUATION_FINISHED"
	StatusFinishedWithErrors Status = "EVALUATION_FINISHED_WITH_ERRORS"
	StatusAggregationFailed  Status = "EVALUATION_AGGREGATION_FAILED"
)

// Running reports whether the evaluation has not yet reached a terminal
// outcome. Anything outside the known running values counts as terminal, so
// an unrecognized status stops polling instead of polling forever.
func (s Status) Running() bool {
	switch s {
	case StatusInitialized, StatusStarted:
		return true
	}
	return false
}

func (s Status) Terminal() bool {
	return !s.Running()
}

func RunningStatuses() []Status {
	return []Status{StatusInitialized, StatusStarted}
}
