package event

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-MeetupService/internal/domain"
	"github.com/m04kA/SMC-MeetupService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-MeetupService/pkg/txmanager"
)

// uniqueViolation код ошибки postgres для нарушения уникального ограничения
const uniqueViolation = "23505"

// Repository репозиторий событий и их кандидатных дней
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория событий
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает событие вместе с его кандидатными днями
func (r *Repository) Create(ctx context.Context, event *domain.Event, dates []*domain.EventDate) (*domain.Event, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("events").
		Columns(
			"short_code",
			"name",
			"start_time",
			"end_time",
			"time_increment_minutes",
			"is_full_day",
			"timezone",
			"creator_id",
		).
		Values(
			event.ShortCode,
			event.Name,
			event.StartTime,
			event.EndTime,
			event.TimeIncrementMinutes,
			event.IsFullDayEvent,
			event.Timezone,
			event.CreatorID,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&event.ID, &createdAt, &updatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return nil, ErrShortCodeTaken
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	event.CreatedAt = createdAt.Time
	event.UpdatedAt = updatedAt.Time

	for _, date := range dates {
		date.EventID = event.ID
		if _, err := r.CreateDate(ctx, date); err != nil {
			return nil, err
		}
	}

	return event, nil
}

// GetByShortCode получает событие по короткому коду
func (r *Repository) GetByShortCode(ctx context.Context, shortCode string) (*domain.Event, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"short_code",
		"name",
		"start_time",
		"end_time",
		"time_increment_minutes",
		"is_full_day",
		"timezone",
		"creator_id",
		"created_at",
		"updated_at",
	).
		From("events").
		Where(squirrel.Eq{"short_code": shortCode}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByShortCode - build select query: %v", ErrBuildQuery, err)
	}

	var event domain.Event
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&event.ID,
		&event.ShortCode,
		&event.Name,
		&event.StartTime,
		&event.EndTime,
		&event.TimeIncrementMinutes,
		&event.IsFullDayEvent,
		&event.Timezone,
		&event.CreatorID,
		&createdAt,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByShortCode - scan event: %v", ErrScanRow, err)
	}

	event.CreatedAt = createdAt.Time
	event.UpdatedAt = updatedAt.Time

	return &event, nil
}

// GetDates получает кандидатные дни события.
// Датные записи упорядочены хронологически, недельные идут следом.
func (r *Repository) GetDates(ctx context.Context, eventID int64) ([]*domain.EventDate, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"event_id",
		"date",
		"weekday",
	).
		From("event_dates").
		Where(squirrel.Eq{"event_id": eventID}).
		OrderBy("date ASC NULLS LAST", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetDates - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetDates - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	dates := make([]*domain.EventDate, 0)
	for rows.Next() {
		var date domain.EventDate
		if err := rows.Scan(&date.ID, &date.EventID, &date.Date, &date.Weekday); err != nil {
			return nil, fmt.Errorf("%w: GetDates - scan row: %v", ErrScanRow, err)
		}
		dates = append(dates, &date)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetDates - rows error: %v", ErrScanRow, err)
	}

	return dates, nil
}

// CreateDate создает одну запись кандидатного дня события
func (r *Repository) CreateDate(ctx context.Context, date *domain.EventDate) (*domain.EventDate, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("event_dates").
		Columns("event_id", "date", "weekday").
		Values(date.EventID, date.Date, date.Weekday).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateDate - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&date.ID); err != nil {
		return nil, fmt.Errorf("%w: CreateDate - execute insert: %v", ErrExecQuery, err)
	}

	return date, nil
}
