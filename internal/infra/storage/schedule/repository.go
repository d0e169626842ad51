package schedule

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/intellectif-llc/intellectif-website-sub002/internal/domain"
	"github.com/intellectif-llc/intellectif-website-sub002/pkg/dbmetrics"
	"github.com/intellectif-llc/intellectif-website-sub002/pkg/psqlbuilder"
	"github.com/intellectif-llc/intellectif-website-sub002/pkg/types"
)

// timeStringFromDB normalizes a TIME column value ("HH:MM:SS") to "HH:MM".
func timeStringFromDB(value string) types.TimeString {
	if len(value) > len(types.TimeFormat) {
		value = value[:len(types.TimeFormat)]
	}
	return types.TimeString(value)
}

// Repository reads consultant schedule rules: availability templates, breaks
// and time off. The rules are owned by the consultant-management side, so
// this repository is read-only.
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetTemplates returns the active availability templates of a consultant.
// Day-of-week filtering happens in the window calculator, not here: one
// fetch serves a whole multi-day search.
func (r *Repository) GetTemplates(ctx context.Context, consultantID int64) ([]domain.AvailabilityTemplate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"consultant_id",
		"day_of_week",
		"start_time",
		"end_time",
		"max_bookings",
		"timezone",
		"is_active",
		"created_at",
		"updated_at",
	).
		From("availability_templates").
		Where(squirrel.Eq{"consultant_id": consultantID, "is_active": true}).
		OrderBy("day_of_week ASC, start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetTemplates - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetTemplates - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	templates := make([]domain.AvailabilityTemplate, 0)
	for rows.Next() {
		var tmpl domain.AvailabilityTemplate
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&tmpl.ID,
			&tmpl.ConsultantID,
			&tmpl.DayOfWeek,
			&tmpl.StartTime,
			&tmpl.EndTime,
			&tmpl.MaxBookings,
			&tmpl.Timezone,
			&tmpl.IsActive,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetTemplates - scan row: %v", ErrScanRow, err)
		}

		tmpl.CreatedAt = createdAt.Time
		tmpl.UpdatedAt = updatedAt.Time

		templates = append(templates, tmpl)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetTemplates - rows error: %v", ErrScanRow, err)
	}

	return templates, nil
}

// GetBreaks returns the breaks that can apply to a consultant on the given
// date: weekly breaks on that weekday plus one-off breaks pinned to the date.
func (r *Repository) GetBreaks(ctx context.Context, consultantID int64, date time.Time) ([]domain.Break, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"consultant_id",
		"day_of_week",
		"break_date",
		"start_time",
		"end_time",
	).
		From("schedule_breaks").
		Where(squirrel.Eq{"consultant_id": consultantID}).
		Where(squirrel.Or{
			squirrel.Eq{"day_of_week": int(date.Weekday())},
			squirrel.Eq{"break_date": date},
		}).
		OrderBy("start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetBreaks - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBreaks - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	breaks := make([]domain.Break, 0)
	for rows.Next() {
		var brk domain.Break
		var dayOfWeek sql.NullInt64
		var breakDate sql.NullTime

		err := rows.Scan(
			&brk.ID,
			&brk.ConsultantID,
			&dayOfWeek,
			&breakDate,
			&brk.StartTime,
			&brk.EndTime,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetBreaks - scan row: %v", ErrScanRow, err)
		}

		if dayOfWeek.Valid {
			day := int(dayOfWeek.Int64)
			brk.DayOfWeek = &day
		}
		if breakDate.Valid {
			d := breakDate.Time
			brk.Date = &d
		}

		breaks = append(breaks, brk)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetBreaks - rows error: %v", ErrScanRow, err)
	}

	return breaks, nil
}

// GetTimeOff returns the time-off entries whose inclusive date range covers
// the given date.
func (r *Repository) GetTimeOff(ctx context.Context, consultantID int64, date time.Time) ([]domain.TimeOff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"consultant_id",
		"start_date",
		"end_date",
		"start_time",
		"end_time",
		"reason",
	).
		From("consultant_time_off").
		Where(squirrel.Eq{"consultant_id": consultantID}).
		Where(squirrel.LtOrEq{"start_date": date}).
		Where(squirrel.GtOrEq{"end_date": date}).
		OrderBy("start_date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetTimeOff - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetTimeOff - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	entries := make([]domain.TimeOff, 0)
	for rows.Next() {
		var off domain.TimeOff
		var startTime, endTime sql.NullString
		var reason sql.NullString

		err := rows.Scan(
			&off.ID,
			&off.ConsultantID,
			&off.StartDate,
			&off.EndDate,
			&startTime,
			&endTime,
			&reason,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetTimeOff - scan row: %v", ErrScanRow, err)
		}

		if startTime.Valid {
			ts := timeStringFromDB(startTime.String)
			off.StartTime = &ts
		}
		if endTime.Valid {
			ts := timeStringFromDB(endTime.String)
			off.EndTime = &ts
		}
		if reason.Valid {
			off.Reason = &reason.String
		}

		entries = append(entries, off)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetTimeOff - rows error: %v", ErrScanRow, err)
	}

	return entries, nil
}
