package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intellectif-llc/intellectif-website-sub002/internal/domain"
	"github.com/intellectif-llc/intellectif-website-sub002/pkg/interval"
	"github.com/intellectif-llc/intellectif-website-sub002/pkg/types"
)

func booking(id int64, start types.TimeString, duration, bufBefore, bufAfter int, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:                  id,
		ConsultantID:        consultantID,
		StartTime:           start,
		DurationMinutes:     duration,
		BufferBeforeMinutes: bufBefore,
		BufferAfterMinutes:  bufAfter,
		Status:              status,
	}
}

func TestOccupiedSpan(t *testing.T) {
	// 09:00 start, 30 min service, 15 min post-buffer -> [09:00, 09:45).
	assert.Equal(t, interval.New(540, 585), OccupiedSpan(540, 30, 0, 15))

	// Pre-buffer extends backwards.
	assert.Equal(t, interval.New(530, 585), OccupiedSpan(540, 30, 10, 15))

	// Clamped at the day boundaries.
	assert.Equal(t, interval.New(0, 60), OccupiedSpan(15, 30, 30, 15))
	assert.Equal(t, interval.New(1400, 1440), OccupiedSpan(1410, 30, 10, 30))
}

func TestHasConflict_AdjacencyIsNotConflict(t *testing.T) {
	// A ends at exactly 10:00 with zero buffers; candidate starts at 10:00.
	existing := []*domain.Booking{
		booking(1, "09:00", 60, 0, 0, domain.StatusConfirmed),
	}

	candidate := OccupiedSpan(600, 60, 0, 0) // 10:00-11:00

	conflict, err := HasConflict(candidate, existing)
	require.NoError(t, err)
	assert.False(t, conflict, "back-to-back bookings with zero buffers must not conflict")
}

func TestHasConflict_BufferedOverlap(t *testing.T) {
	// A: 09:00-09:30 service plus 15 min post-buffer occupies until 09:45.
	existing := []*domain.Booking{
		booking(1, "09:00", 30, 0, 15, domain.StatusConfirmed),
	}

	// Candidate at 09:40 overlaps the buffer tail by 5 minutes.
	conflict, err := HasConflict(OccupiedSpan(580, 30, 0, 15), existing)
	require.NoError(t, err)
	assert.True(t, conflict)

	// Candidate at 09:45 touches but does not overlap.
	conflict, err = HasConflict(OccupiedSpan(585, 30, 0, 15), existing)
	require.NoError(t, err)
	assert.False(t, conflict)
}

func TestHasConflict_IgnoresNonCapacityStatuses(t *testing.T) {
	existing := []*domain.Booking{
		booking(1, "09:00", 60, 0, 0, domain.StatusCancelledByCustomer),
		booking(2, "09:00", 60, 0, 0, domain.StatusNoShow),
		booking(3, "09:00", 60, 0, 0, domain.StatusCompleted),
	}

	conflict, err := HasConflict(OccupiedSpan(540, 60, 0, 0), existing)
	require.NoError(t, err)
	assert.False(t, conflict, "cancelled/no-show/completed bookings free their capacity")
}

func TestHasConflict_InconsistentBooking(t *testing.T) {
	existing := []*domain.Booking{
		booking(1, "09:00", -30, 0, 0, domain.StatusConfirmed),
	}

	_, err := HasConflict(OccupiedSpan(540, 30, 0, 0), existing)
	assert.ErrorIs(t, err, ErrInconsistentBooking)
}

func TestCapacityRemaining(t *testing.T) {
	window := domain.DailyWindow{
		ConsultantID: consultantID,
		Window:       interval.New(540, 1020),
		MaxBookings:  2,
	}

	t.Run("empty ledger leaves full capacity", func(t *testing.T) {
		remaining, err := CapacityRemaining(window, interval.New(540, 600), nil)
		require.NoError(t, err)
		assert.Equal(t, 2, remaining)
	})

	t.Run("staggered bookings count at their peak", func(t *testing.T) {
		existing := []*domain.Booking{
			booking(1, "09:00", 60, 0, 0, domain.StatusConfirmed), // 09:00-10:00
			booking(2, "09:30", 60, 0, 0, domain.StatusConfirmed), // 09:30-10:30
		}

		// Probe 09:30-10:00 where both overlap: peak 2, nothing remains.
		remaining, err := CapacityRemaining(window, interval.New(570, 600), existing)
		require.NoError(t, err)
		assert.Equal(t, 0, remaining)

		// Probe 10:00-10:30 where only the second one remains.
		remaining, err = CapacityRemaining(window, interval.New(600, 630), existing)
		require.NoError(t, err)
		assert.Equal(t, 1, remaining)
	})

	t.Run("half-open handoff does not stack", func(t *testing.T) {
		existing := []*domain.Booking{
			booking(1, "09:00", 60, 0, 0, domain.StatusConfirmed), // ends 10:00
			booking(2, "10:00", 60, 0, 0, domain.StatusConfirmed), // starts 10:00
		}

		// Across the handoff instant the peak is 1, not 2.
		remaining, err := CapacityRemaining(window, interval.New(540, 720), existing)
		require.NoError(t, err)
		assert.Equal(t, 1, remaining)
	})

	t.Run("pending bookings hold capacity", func(t *testing.T) {
		existing := []*domain.Booking{
			booking(1, "09:00", 60, 0, 0, domain.StatusPending),
		}

		remaining, err := CapacityRemaining(window, interval.New(540, 600), existing)
		require.NoError(t, err)
		assert.Equal(t, 1, remaining)
	})
}

// TestScenario_BufferedCapacityOne is the reference scenario: Monday
// template 09:00-17:00 with max_bookings=1, a 30-minute service with a
// 15-minute post-buffer, and an existing booking at 09:00 occupying
// [09:00, 09:45). A 09:30 request must be rejected; 09:45 must fit.
func TestScenario_BufferedCapacityOne(t *testing.T) {
	window := domain.DailyWindow{
		ConsultantID: consultantID,
		Window:       interval.New(540, 1020),
		MaxBookings:  1,
		Timezone:     "UTC",
	}
	existing := []*domain.Booking{
		booking(1, "09:00", 30, 0, 15, domain.StatusConfirmed),
	}

	at0930 := OccupiedSpan(570, 30, 0, 15)
	remaining, err := CapacityRemaining(window, at0930, existing)
	require.NoError(t, err)
	assert.LessOrEqual(t, remaining, 0, "09:30 request must be rejected")

	at0945 := OccupiedSpan(585, 30, 0, 15)
	remaining, err = CapacityRemaining(window, at0945, existing)
	require.NoError(t, err)
	assert.Equal(t, 1, remaining, "09:45 request must succeed")
}

func TestSlotStarts(t *testing.T) {
	// 09:00-10:00 window, 30 min service, 15 min step.
	starts := SlotStarts(interval.New(540, 600), 30, 15)
	assert.Equal(t, []int{540, 555, 570}, starts, "09:45 start would overrun the window")

	// Service longer than the window yields nothing.
	assert.Empty(t, SlotStarts(interval.New(540, 600), 90, 15))

	// Degenerate inputs yield nothing.
	assert.Empty(t, SlotStarts(interval.New(600, 540), 30, 15))
	assert.Empty(t, SlotStarts(interval.New(540, 600), 0, 15))
	assert.Empty(t, SlotStarts(interval.New(540, 600), 30, 0))
}
