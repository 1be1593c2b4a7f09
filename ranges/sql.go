package ranges

import (
	"cmp"
	"fmt"
	"regexp"

	"github.com/pkg/errors"
)

var ErrInvalidColumn = errors.New("invalid column name")

var columnPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.]*$`)

// CheckColumn reports whether name is safe to splice into SQL as an identifier.
func CheckColumn(name string) error {
	if !columnPattern.MatchString(name) {
		return errors.Wrapf(ErrInvalidColumn, "column %q", name)
	}
	return nil
}

// Where renders r as a parameterized predicate on column.
// Values are only ever returned as args, never interpolated.
func Where[T cmp.Ordered](column string, r Range[T]) (string, []interface{}, error) {
	if err := CheckColumn(column); err != nil {
		return "", nil, err
	}

	lower, upper := ">=", "<="
	if r.ExcludeBegin() {
		lower = ">"
	}
	if r.ExcludeEnd() {
		upper = "<"
	}

	clause := fmt.Sprintf("%s %s ? AND %s %s ?", column, lower, column, upper)
	return clause, []interface{}{r.Begin(), r.End()}, nil
}
