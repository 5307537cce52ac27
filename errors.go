package kdtree

import "github.com/cockroachdb/errors"

// ErrPreconditionViolation marks every error caused by invalid input. Test for it
// with errors.Is to catch all of them at once.
var ErrPreconditionViolation = errors.New("kdtree: precondition violation")

var (
	ErrEmptyDataset      = errors.Mark(errors.New("kdtree: empty dataset"), ErrPreconditionViolation)
	ErrZeroDim           = errors.Mark(errors.New("kdtree: points must have at least one coordinate"), ErrPreconditionViolation)
	ErrInconsistentDim   = errors.Mark(errors.New("kdtree: inconsistent point dimensions"), ErrPreconditionViolation)
	ErrDimMismatch       = errors.Mark(errors.New("kdtree: target dimension does not match the tree"), ErrPreconditionViolation)
	ErrInvalidK          = errors.Mark(errors.New("kdtree: k must be positive"), ErrPreconditionViolation)
	ErrInvalidCoordinate = errors.Mark(errors.New("kdtree: coordinate is NaN"), ErrPreconditionViolation)
)
