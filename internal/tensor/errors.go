package tensor

import (
	"github.com/gomlx/exceptions"
	"github.com/pkg/errors"
)

// Contract violations. Operations panic with an error wrapping one of these;
// they are programmer errors and are not expected to be recovered from inside
// the library. Use errors.Is to classify a recovered error.
var (
	// ErrShapeMismatch reports operand shapes that violate an operation's compatibility rule.
	ErrShapeMismatch = errors.New("shape mismatch")
	// ErrRankViolation reports a rank below the required minimum or a dimension index outside [0, rank).
	ErrRankViolation = errors.New("rank violation")
	// ErrIndexOutOfRange reports indices or ranges exceeding the addressed dimension.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrInvalidArgument reports malformed configuration (bad step, non-singleton repeat, ...).
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrReaderConsumed is returned when a Reader is read a second time.
	ErrReaderConsumed = errors.New("reader already consumed")
)

// Panicf panics with kind wrapped with a formatted message and a stack trace.
func Panicf(kind error, format string, args ...any) {
	panic(errors.Wrapf(kind, format, args...))
}

// Try runs fn and converts a contract-violation panic into an error.
// Panics that do not carry an error are re-raised.
func Try(fn func()) error {
	return exceptions.TryCatch[error](fn)
}

// CheckSameShape panics with ErrShapeMismatch unless a and b are identical.
func CheckSameShape(op string, a, b Shape) {
	if !a.Equal(b) {
		Panicf(ErrShapeMismatch, "%s: shapes %v and %v differ", op, a, b)
	}
}

// CheckDim panics with ErrRankViolation unless 0 <= dim < rank.
func CheckDim(op string, dim, rank int) {
	if dim < 0 || dim >= rank {
		Panicf(ErrRankViolation, "%s: dimension %d out of range for rank %d", op, dim, rank)
	}
}

// CheckMinRank panics with ErrRankViolation if the shape has fewer than minRank dimensions.
func CheckMinRank(op string, s Shape, minRank int) {
	if s.Rank() < minRank {
		Panicf(ErrRankViolation, "%s: requires rank >= %d, got shape %v", op, minRank, s)
	}
}

// CheckRanges validates slice selectors against a shape.
// ranges may name fewer dimensions than the shape has; the rest are taken in full.
func CheckRanges(op string, s Shape, ranges []Range) {
	if len(ranges) > s.Rank() {
		Panicf(ErrRankViolation, "%s: %d ranges for rank %d tensor", op, len(ranges), s.Rank())
	}
	for i, r := range ranges {
		if r.Start < 0 || r.Start > r.End || r.End > s[i] {
			Panicf(ErrIndexOutOfRange, "%s: range %v invalid for dimension %d of size %d", op, r, i, s[i])
		}
	}
}

// CheckIndex panics with ErrIndexOutOfRange unless 0 <= index < size.
func CheckIndex(op string, index int64, size int) {
	if index < 0 || index >= int64(size) {
		Panicf(ErrIndexOutOfRange, "%s: index %d out of bounds [0, %d)", op, index, size)
	}
}

// CheckNumElements panics with ErrInvalidArgument if from and to hold different element counts.
func CheckNumElements(op string, from, to Shape) {
	if err := to.Validate(); err != nil {
		Panicf(ErrInvalidArgument, "%s: %v", op, err)
	}
	if from.NumElements() != to.NumElements() {
		Panicf(ErrInvalidArgument, "%s: incompatible shapes %v -> %v (different number of elements)", op, from, to)
	}
}
