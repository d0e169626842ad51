package interval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b Interval
		want bool
	}{
		{"disjoint", New(540, 600), New(660, 720), false},
		{"touching is not overlap", New(540, 600), New(600, 660), false},
		{"touching reversed", New(600, 660), New(540, 600), false},
		{"partial overlap", New(540, 630), New(600, 660), true},
		{"contained", New(540, 720), New(600, 660), true},
		{"identical", New(540, 600), New(540, 600), true},
		{"one minute overlap", New(540, 601), New(600, 660), true},
		{"empty never overlaps", New(600, 600), New(540, 660), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a), "overlap must be symmetric")
		})
	}
}

func TestMerge(t *testing.T) {
	t.Run("empty in, empty out", func(t *testing.T) {
		assert.Empty(t, Merge(nil))
		assert.Empty(t, Merge([]Interval{}))
	})

	t.Run("unsorted overlapping inputs are coalesced", func(t *testing.T) {
		got := Merge([]Interval{
			New(660, 720),
			New(540, 600),
			New(580, 670),
		})
		require.Len(t, got, 1)
		assert.Equal(t, New(540, 720), got[0])
	})

	t.Run("touching intervals are coalesced", func(t *testing.T) {
		got := Merge([]Interval{New(540, 600), New(600, 660)})
		require.Len(t, got, 1)
		assert.Equal(t, New(540, 660), got[0])
	})

	t.Run("disjoint intervals stay ordered and separate", func(t *testing.T) {
		got := Merge([]Interval{New(840, 900), New(540, 600)})
		require.Len(t, got, 2)
		assert.Equal(t, New(540, 600), got[0])
		assert.Equal(t, New(840, 900), got[1])
	})

	t.Run("empty intervals are dropped", func(t *testing.T) {
		got := Merge([]Interval{New(600, 600), New(540, 600), New(700, 650)})
		require.Len(t, got, 1)
		assert.Equal(t, New(540, 600), got[0])
	})
}

func TestSubtract(t *testing.T) {
	window := New(540, 1020) // 09:00-17:00

	t.Run("no removals returns the window", func(t *testing.T) {
		got := Subtract(window, nil)
		require.Len(t, got, 1)
		assert.Equal(t, window, got[0])
	})

	t.Run("removal in the middle splits the window", func(t *testing.T) {
		got := Subtract(window, []Interval{New(720, 780)}) // 12:00-13:00
		require.Len(t, got, 2)
		assert.Equal(t, New(540, 720), got[0])
		assert.Equal(t, New(780, 1020), got[1])
	})

	t.Run("removal outside the window is a no-op", func(t *testing.T) {
		got := Subtract(window, []Interval{New(0, 540), New(1020, 1440)})
		require.Len(t, got, 1)
		assert.Equal(t, window, got[0])
	})

	t.Run("unsorted overlapping removals are coalesced first", func(t *testing.T) {
		got := Subtract(window, []Interval{
			New(900, 960),
			New(600, 690),
			New(660, 720),
		})
		require.Len(t, got, 3)
		assert.Equal(t, New(540, 600), got[0])
		assert.Equal(t, New(720, 900), got[1])
		assert.Equal(t, New(960, 1020), got[2])
	})

	t.Run("removal covering the window yields empty", func(t *testing.T) {
		assert.Empty(t, Subtract(window, []Interval{New(0, 1440)}))
	})

	t.Run("removal ending exactly at window start is a no-op", func(t *testing.T) {
		got := Subtract(window, []Interval{New(480, 540)})
		require.Len(t, got, 1)
		assert.Equal(t, window, got[0])
	})

	t.Run("empty window yields empty", func(t *testing.T) {
		assert.Empty(t, Subtract(New(600, 600), []Interval{New(0, 1440)}))
	})
}

func TestIntersectAndContains(t *testing.T) {
	a := New(540, 720)

	assert.Equal(t, New(600, 720), a.Intersect(New(600, 900)))
	assert.True(t, a.Intersect(New(900, 960)).IsEmpty())

	assert.True(t, a.Contains(New(540, 720)))
	assert.True(t, a.Contains(New(600, 660)))
	assert.False(t, a.Contains(New(600, 721)))
	assert.False(t, a.Contains(New(600, 600)), "empty interval is contained in nothing")

	assert.True(t, a.ContainsInstant(540))
	assert.False(t, a.ContainsInstant(720), "end instant is excluded")
}
