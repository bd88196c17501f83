package sqlcraft

import "errors"

// Sentinel errors for builder validation failures.
// All of them are raised when a value is constructed or assigned, never when
// it is rendered. They indicate programming errors, not transient faults;
// retrying the same call always fails the same way.
//
// Call sites wrap these with context, so use errors.Is or the Is*Err helpers.
var (
	// ErrInvalidArgument is returned for blank required strings (names,
	// patterns, bounds, partition entries), empty required lists, unknown
	// enumeration values and missing mandatory sub-values.
	ErrInvalidArgument = errors.New("sqlcraft: invalid argument")

	// ErrTypeMismatch is returned when a value of the wrong kind is supplied
	// where a specific kind is required, such as a sub-query as the target
	// of a DELETE or UPDATE, or a nil operand for a Condition.
	ErrTypeMismatch = errors.New("sqlcraft: type mismatch")

	// ErrOverflow is returned when a third operand is added to a Condition.
	ErrOverflow = errors.New("sqlcraft: condition overflow")

	// ErrUnresolved is returned when a table's name or defined columns are
	// requested before they were set.
	ErrUnresolved = errors.New("sqlcraft: unresolved lookup")
)

// IsInvalidArgumentErr returns true if err is or wraps ErrInvalidArgument.
func IsInvalidArgumentErr(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}

// IsTypeMismatchErr returns true if err is or wraps ErrTypeMismatch.
func IsTypeMismatchErr(err error) bool {
	return errors.Is(err, ErrTypeMismatch)
}

// IsOverflowErr returns true if err is or wraps ErrOverflow.
func IsOverflowErr(err error) bool {
	return errors.Is(err, ErrOverflow)
}

// IsUnresolvedErr returns true if err is or wraps ErrUnresolved.
func IsUnresolvedErr(err error) bool {
	return errors.Is(err, ErrUnresolved)
}
