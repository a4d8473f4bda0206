package auth

// BestEffort is the outcome of a step whose failure must not fail the
// enclosing flow. The error is kept so callers decide explicitly what a
// missing value means instead of discarding it.
type BestEffort[T any] struct {
	Value T
	Err   error
}

// Try captures a (value, error) pair.
func Try[T any](v T, err error) BestEffort[T] {
	return BestEffort[T]{Value: v, Err: err}
}

// OK reports whether the step succeeded.
func (b BestEffort[T]) OK() bool {
	return b.Err == nil
}

// Get returns the value and whether it is usable.
func (b BestEffort[T]) Get() (T, bool) {
	return b.Value, b.Err == nil
}
