package advisor

import "fmt"

// FailureKind classifies a completion service failure.
type FailureKind string

const (
	FailureTimeout     FailureKind = "timeout"
	FailureRateLimited FailureKind = "rate-limited"
	FailureUnavailable FailureKind = "service-unavailable"
	FailureMalformed   FailureKind = "malformed-response"
	FailureAuth        FailureKind = "auth-error"
)

// ServiceError is the classified failure returned by the completion client.
// It never crosses the pipeline boundary; the engine absorbs it by routing
// to the fallback rule engine.
type ServiceError struct {
	Kind FailureKind
	Err  error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("completion service failure (%s): %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("completion service failure (%s)", e.Kind)
}

func (e *ServiceError) Unwrap() error { return e.Err }

// Retryable reports whether another attempt may succeed.
func (e *ServiceError) Retryable() bool {
	switch e.Kind {
	case FailureTimeout, FailureRateLimited, FailureUnavailable:
		return true
	}
	return false
}

// MalformedAllocationError reports completion output that could not be
// parsed into a structurally valid allocation candidate.
type MalformedAllocationError struct {
	Reason string
}

func (e *MalformedAllocationError) Error() string {
	return fmt.Sprintf("malformed allocation: %s", e.Reason)
}

// RepairError reports that a structurally valid candidate could not be
// adjusted to satisfy portfolio invariants without changing the proposal
// beyond tolerance. This is the one internal failure logged as a quality
// signal, since it means the proposal was far outside acceptable bounds.
type RepairError struct {
	Reason string
}

func (e *RepairError) Error() string {
	return fmt.Sprintf("constraint repair failed: %s", e.Reason)
}
