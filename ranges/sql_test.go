package ranges_test

import (
	"testing"

	"gorange/ranges"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWhere(t *testing.T) {
	tests := []struct {
		name   string
		r      ranges.Range[int]
		clause string
	}{
		{"closed", ranges.New(1, 10), "ID >= ? AND ID <= ?"},
		{"open", ranges.NewWithOptions(1, 10, ranges.Options{ExcludeBegin: true, ExcludeEnd: true}), "ID > ? AND ID < ?"},
		{"left open", ranges.NewWithOptions(1, 10, ranges.Options{ExcludeBegin: true}), "ID > ? AND ID <= ?"},
		{"right open", ranges.NewWithOptions(1, 10, ranges.Options{ExcludeEnd: true}), "ID >= ? AND ID < ?"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			clause, args, err := ranges.Where("ID", tc.r)
			require.NoError(t, err)
			assert.Equal(t, tc.clause, clause)
			assert.Equal(t, []interface{}{1, 10}, args)
		})
	}
}

func TestWhereQualifiedColumn(t *testing.T) {
	clause, _, err := ranges.Where("b.created_at", ranges.New(int64(0), int64(1)))
	require.NoError(t, err)
	assert.Equal(t, "b.created_at >= ? AND b.created_at <= ?", clause)
}

func TestWhereRejectsInjection(t *testing.T) {
	for _, column := range []string{"", "1ID", "ID; DROP TABLE Basic", "ID OR 1=1", "`ID`"} {
		_, _, err := ranges.Where(column, ranges.New(1, 2))
		assert.True(t, errors.Is(err, ranges.ErrInvalidColumn), column)
	}
}
