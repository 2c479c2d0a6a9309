package domain

// ExecutionStatus is the per-path execution state machine.
type ExecutionStatus string

const (
	ExecutionPending   ExecutionStatus = "pending"
	ExecutionExecuting ExecutionStatus = "executing"
	ExecutionVerifying ExecutionStatus = "verifying"
	ExecutionSucceeded ExecutionStatus = "succeeded"
	ExecutionFailed    ExecutionStatus = "failed"
)

// ExecutionResult reports how far a path execution got. FailedAt is the
// index of the edge that failed, -1 on success; Succeeded lists the states
// that ended up active along the way.
type ExecutionResult struct {
	Status    ExecutionStatus
	Succeeded []StateID
	FailedAt  int
}

// OK reports whether the whole path executed and verified.
func (r *ExecutionResult) OK() bool {
	return r != nil && r.Status == ExecutionSucceeded
}
