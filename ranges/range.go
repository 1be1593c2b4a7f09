package ranges

import (
	"cmp"
	"fmt"
)

// Options toggles endpoint exclusion. The zero value gives a closed range.
type Options struct {
	// excludes begin from the range when true
	ExcludeBegin bool
	// excludes end from the range when true
	ExcludeEnd bool
}

// Range is an immutable interval between begin and end.
// No ordering is enforced between the two values.
type Range[T cmp.Ordered] struct {
	begin        T
	end          T
	excludeBegin bool
	excludeEnd   bool
}

// New returns the closed range [begin, end].
func New[T cmp.Ordered](begin, end T) Range[T] {
	return NewWithOptions(begin, end, Options{})
}

// NewWithOptions returns the range between begin and end with the endpoint
// exclusions set in opts.
func NewWithOptions[T cmp.Ordered](begin, end T, opts Options) Range[T] {
	return Range[T]{
		begin:        begin,
		end:          end,
		excludeBegin: opts.ExcludeBegin,
		excludeEnd:   opts.ExcludeEnd,
	}
}

// Begin returns the lower endpoint as given, whether or not it is excluded.
func (r Range[T]) Begin() T {
	return r.begin
}

// End returns the upper endpoint as given, whether or not it is excluded.
func (r Range[T]) End() T {
	return r.end
}

// ExcludeBegin reports whether begin lies outside the range.
func (r Range[T]) ExcludeBegin() bool {
	return r.excludeBegin
}

// ExcludeEnd reports whether end lies outside the range.
func (r Range[T]) ExcludeEnd() bool {
	return r.excludeEnd
}

// String renders the range in interval notation, e.g. [1, 100).
func (r Range[T]) String() string {
	open, closing := "[", "]"
	if r.excludeBegin {
		open = "("
	}
	if r.excludeEnd {
		closing = ")"
	}

	return fmt.Sprintf("%s%v, %v%s", open, r.begin, r.end, closing)
}
