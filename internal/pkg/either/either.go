package either

// Either holds exactly one of a Left (failure) or a Right (success) value.
//
// The zero value is a Right holding the zero R.
type Either[L, R any] struct {
	left   L
	right  R
	isLeft bool
}

// Left builds a failure variant.
func Left[L, R any](v L) Either[L, R] {
	return Either[L, R]{left: v, isLeft: true}
}

// Right builds a success variant.
func Right[L, R any](v R) Either[L, R] {
	return Either[L, R]{right: v}
}

// IsLeft reports whether e holds a failure.
func (e Either[L, R]) IsLeft() bool {
	return e.isLeft
}

// IsRight reports whether e holds a success.
func (e Either[L, R]) IsRight() bool {
	return !e.isLeft
}

// Left returns the failure value, or the zero L when e is a Right.
func (e Either[L, R]) Left() L {
	return e.left
}

// Right returns the success value, or the zero R when e is a Left.
func (e Either[L, R]) Right() R {
	return e.right
}

// Value returns whichever payload e holds.
func (e Either[L, R]) Value() any {
	if e.isLeft {
		return e.left
	}
	return e.right
}

// MapRight applies fn to a Right payload and passes a Left through untouched.
func MapRight[L, R, T any](e Either[L, R], fn func(R) T) Either[L, T] {
	if e.isLeft {
		return Left[L, T](e.left)
	}
	return Right[L](fn(e.right))
}
