package buildcond

import "fmt"

// IllFormedConditionError reports a user-authored condition that cannot be
// evaluated: a missing operand, an unexpandable reference, or text the
// grammar rejects. It carries the literal condition text and its source
// location so the diagnostic points at the author's input.
type IllFormedConditionError struct {
	Condition string
	Location  Location
	Message   string
}

func (e *IllFormedConditionError) Error() string {
	return fmt.Sprintf("%s: ill-formed condition %q: %s", e.Location, e.Condition, e.Message)
}

// NewIllFormedConditionError builds the diagnostic for a malformed condition.
func NewIllFormedConditionError(condition string, loc Location, format string, args ...interface{}) *IllFormedConditionError {
	return &IllFormedConditionError{
		Condition: condition,
		Location:  loc,
		Message:   fmt.Sprintf(format, args...),
	}
}

// InternalError reports a violated assumption about the evaluator's own
// correctness, as opposed to bad user input. It is normally fatal to the
// evaluation; an evaluator constructed with lenient internal errors logs
// nothing and continues best-effort instead. That mode exists for production
// triage only and is unsupported for normal operation.
type InternalError struct {
	Assumption string
}

func (e *InternalError) Error() string {
	return "internal error: " + e.Assumption
}

// NewInternalError builds an internal-error diagnostic naming the violated
// assumption.
func NewInternalError(format string, args ...interface{}) *InternalError {
	return &InternalError{Assumption: fmt.Sprintf(format, args...)}
}
