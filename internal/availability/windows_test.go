package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intellectif-llc/intellectif-website-sub002/internal/domain"
	"github.com/intellectif-llc/intellectif-website-sub002/pkg/interval"
	"github.com/intellectif-llc/intellectif-website-sub002/pkg/ptr"
	"github.com/intellectif-llc/intellectif-website-sub002/pkg/types"
)

const consultantID = int64(7)

// monday is 2025-06-23, the reference date of most scenarios.
var monday = time.Date(2025, 6, 23, 0, 0, 0, 0, time.UTC)

func mondayTemplate(maxBookings int) domain.AvailabilityTemplate {
	return domain.AvailabilityTemplate{
		ID:           1,
		ConsultantID: consultantID,
		DayOfWeek:    int(time.Monday),
		StartTime:    "09:00",
		EndTime:      "17:00",
		MaxBookings:  maxBookings,
		Timezone:     "UTC",
		IsActive:     true,
	}
}

func TestComputeDailyWindows_NoMatchingTemplates(t *testing.T) {
	// Sunday: the Monday template does not match, and that is not an error.
	sunday := monday.AddDate(0, 0, -1)

	windows, err := ComputeDailyWindows(consultantID, sunday,
		[]domain.AvailabilityTemplate{mondayTemplate(1)}, nil, nil)

	require.NoError(t, err)
	assert.Empty(t, windows)
}

func TestComputeDailyWindows_InactiveTemplateIgnored(t *testing.T) {
	tmpl := mondayTemplate(1)
	tmpl.IsActive = false

	windows, err := ComputeDailyWindows(consultantID, monday,
		[]domain.AvailabilityTemplate{tmpl}, nil, nil)

	require.NoError(t, err)
	assert.Empty(t, windows)
}

func TestComputeDailyWindows_PlainTemplate(t *testing.T) {
	windows, err := ComputeDailyWindows(consultantID, monday,
		[]domain.AvailabilityTemplate{mondayTemplate(2)}, nil, nil)

	require.NoError(t, err)
	require.Len(t, windows, 1)
	assert.Equal(t, interval.New(540, 1020), windows[0].Window)
	assert.Equal(t, 2, windows[0].MaxBookings)
	assert.Equal(t, consultantID, windows[0].ConsultantID)
	assert.Equal(t, "UTC", windows[0].Timezone)
}

func TestComputeDailyWindows_BreakSplitsWindow(t *testing.T) {
	lunch := domain.Break{
		ID:           10,
		ConsultantID: consultantID,
		DayOfWeek:    ptr.Ptr(int(time.Monday)),
		StartTime:    "12:00",
		EndTime:      "13:00",
	}

	windows, err := ComputeDailyWindows(consultantID, monday,
		[]domain.AvailabilityTemplate{mondayTemplate(1)}, []domain.Break{lunch}, nil)

	require.NoError(t, err)
	require.Len(t, windows, 2)
	assert.Equal(t, interval.New(540, 720), windows[0].Window)
	assert.Equal(t, interval.New(780, 1020), windows[1].Window)
}

func TestComputeDailyWindows_BreakOutsideWindowIsNoOp(t *testing.T) {
	early := domain.Break{
		ID:           11,
		ConsultantID: consultantID,
		DayOfWeek:    ptr.Ptr(int(time.Monday)),
		StartTime:    "06:00",
		EndTime:      "08:00",
	}

	withBreak, err := ComputeDailyWindows(consultantID, monday,
		[]domain.AvailabilityTemplate{mondayTemplate(1)}, []domain.Break{early}, nil)
	require.NoError(t, err)

	without, err := ComputeDailyWindows(consultantID, monday,
		[]domain.AvailabilityTemplate{mondayTemplate(1)}, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, without, withBreak, "out-of-window break must not change the result")
}

func TestComputeDailyWindows_BreakOnOtherDayIgnored(t *testing.T) {
	tuesdayBreak := domain.Break{
		ID:           12,
		ConsultantID: consultantID,
		DayOfWeek:    ptr.Ptr(int(time.Tuesday)),
		StartTime:    "09:00",
		EndTime:      "17:00",
	}

	windows, err := ComputeDailyWindows(consultantID, monday,
		[]domain.AvailabilityTemplate{mondayTemplate(1)}, []domain.Break{tuesdayBreak}, nil)

	require.NoError(t, err)
	require.Len(t, windows, 1)
	assert.Equal(t, interval.New(540, 1020), windows[0].Window)
}

func TestComputeDailyWindows_FullDayTimeOff(t *testing.T) {
	// Full-day time off for 2025-06-23 on a consultant with a Monday template.
	off := domain.TimeOff{
		ID:           20,
		ConsultantID: consultantID,
		StartDate:    monday,
		EndDate:      monday,
	}

	windows, err := ComputeDailyWindows(consultantID, monday,
		[]domain.AvailabilityTemplate{mondayTemplate(1)}, nil, []domain.TimeOff{off})

	require.NoError(t, err)
	assert.Empty(t, windows)
}

func TestComputeDailyWindows_PartialDayTimeOff(t *testing.T) {
	off := domain.TimeOff{
		ID:           21,
		ConsultantID: consultantID,
		StartDate:    monday,
		EndDate:      monday,
		StartTime:    ptr.Ptr(types.TimeString("14:00")),
		EndTime:      ptr.Ptr(types.TimeString("17:00")),
	}

	windows, err := ComputeDailyWindows(consultantID, monday,
		[]domain.AvailabilityTemplate{mondayTemplate(1)}, nil, []domain.TimeOff{off})

	require.NoError(t, err)
	require.Len(t, windows, 1)
	assert.Equal(t, interval.New(540, 840), windows[0].Window)
}

func TestComputeDailyWindows_TimeOffRangeCoversDate(t *testing.T) {
	off := domain.TimeOff{
		ID:           22,
		ConsultantID: consultantID,
		StartDate:    monday.AddDate(0, 0, -3),
		EndDate:      monday.AddDate(0, 0, 4), // inclusive range containing monday
	}

	windows, err := ComputeDailyWindows(consultantID, monday,
		[]domain.AvailabilityTemplate{mondayTemplate(1)}, nil, []domain.TimeOff{off})

	require.NoError(t, err)
	assert.Empty(t, windows)
}

func TestComputeDailyWindows_OverlappingTemplatesKeepOwnCapacity(t *testing.T) {
	second := mondayTemplate(3)
	second.ID = 2
	second.StartTime = "14:00"
	second.EndTime = "19:00"

	windows, err := ComputeDailyWindows(consultantID, monday,
		[]domain.AvailabilityTemplate{mondayTemplate(1), second}, nil, nil)

	require.NoError(t, err)
	// Overlapping templates are not merged: capacity is evaluated per
	// originating template window.
	require.Len(t, windows, 2)
	assert.Equal(t, interval.New(540, 1020), windows[0].Window)
	assert.Equal(t, 1, windows[0].MaxBookings)
	assert.Equal(t, interval.New(840, 1140), windows[1].Window)
	assert.Equal(t, 3, windows[1].MaxBookings)
}

func TestComputeDailyWindows_Idempotent(t *testing.T) {
	templates := []domain.AvailabilityTemplate{mondayTemplate(2)}
	breaks := []domain.Break{{
		ID:           30,
		ConsultantID: consultantID,
		DayOfWeek:    ptr.Ptr(int(time.Monday)),
		StartTime:    "12:00",
		EndTime:      "12:30",
	}}

	first, err := ComputeDailyWindows(consultantID, monday, templates, breaks, nil)
	require.NoError(t, err)
	second, err := ComputeDailyWindows(consultantID, monday, templates, breaks, nil)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestComputeDailyWindows_InvalidRules(t *testing.T) {
	t.Run("inverted template times", func(t *testing.T) {
		bad := mondayTemplate(1)
		bad.StartTime = "17:00"
		bad.EndTime = "09:00"

		_, err := ComputeDailyWindows(consultantID, monday,
			[]domain.AvailabilityTemplate{bad}, nil, nil)
		assert.ErrorIs(t, err, ErrInvalidRule)
	})

	t.Run("zero max_bookings", func(t *testing.T) {
		bad := mondayTemplate(0)

		_, err := ComputeDailyWindows(consultantID, monday,
			[]domain.AvailabilityTemplate{bad}, nil, nil)
		assert.ErrorIs(t, err, ErrInvalidRule)
	})

	t.Run("unparseable break time", func(t *testing.T) {
		bad := domain.Break{
			ID:           31,
			ConsultantID: consultantID,
			DayOfWeek:    ptr.Ptr(int(time.Monday)),
			StartTime:    "noon",
			EndTime:      "13:00",
		}

		_, err := ComputeDailyWindows(consultantID, monday,
			[]domain.AvailabilityTemplate{mondayTemplate(1)}, []domain.Break{bad}, nil)
		assert.ErrorIs(t, err, ErrInvalidRule)
	})
}
