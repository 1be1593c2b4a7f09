package ranges_test

import (
	"sync"
	"testing"
	"time"

	"gorange/ranges"

	"github.com/stretchr/testify/assert"
)

func TestNewDefaults(t *testing.T) {
	r := ranges.New(1, 100)

	assert.Equal(t, 1, r.Begin())
	assert.Equal(t, 100, r.End())
	assert.False(t, r.ExcludeBegin())
	assert.False(t, r.ExcludeEnd())
}

func TestNewWithOptions(t *testing.T) {
	tests := []struct {
		name         string
		opts         ranges.Options
		excludeBegin bool
		excludeEnd   bool
		str          string
	}{
		{"closed", ranges.Options{}, false, false, "[1, 100]"},
		{"open", ranges.Options{ExcludeBegin: true, ExcludeEnd: true}, true, true, "(1, 100)"},
		{"left open", ranges.Options{ExcludeBegin: true}, true, false, "(1, 100]"},
		{"right open", ranges.Options{ExcludeEnd: true}, false, true, "[1, 100)"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := ranges.NewWithOptions(1, 100, tc.opts)
			assert.Equal(t, 1, r.Begin())
			assert.Equal(t, 100, r.End())
			assert.Equal(t, tc.excludeBegin, r.ExcludeBegin())
			assert.Equal(t, tc.excludeEnd, r.ExcludeEnd())
			assert.Equal(t, tc.str, r.String())
		})
	}
}

func TestReversedBoundsAccepted(t *testing.T) {
	r := ranges.NewWithOptions(100, 1, ranges.Options{ExcludeEnd: true})

	assert.Equal(t, 100, r.Begin())
	assert.Equal(t, 1, r.End())
	assert.True(t, r.ExcludeEnd())
}

func TestOtherOrderedTypes(t *testing.T) {
	s := ranges.New("a", "z")
	assert.Equal(t, "a", s.Begin())
	assert.Equal(t, "z", s.End())

	now := time.Now().UnixNano()
	ts := ranges.NewWithOptions(now, now+int64(time.Hour), ranges.Options{ExcludeEnd: true})
	assert.Equal(t, now, ts.Begin())
	assert.Equal(t, now+int64(time.Hour), ts.End())

	f := ranges.New(0.5, 1.5)
	assert.Equal(t, "[0.5, 1.5]", f.String())
}

func TestRepeatedReadsConcurrently(t *testing.T) {
	r := ranges.NewWithOptions(int64(-5), int64(5), ranges.Options{ExcludeBegin: true})

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if r.Begin() != -5 || r.End() != 5 || !r.ExcludeBegin() || r.ExcludeEnd() {
					t.Errorf("unexpected read %v", r)
					return
				}
			}
		}()
	}
	wg.Wait()
}
