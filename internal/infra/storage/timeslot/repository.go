package timeslot

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-MeetupService/internal/domain"
	"github.com/m04kA/SMC-MeetupService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-MeetupService/pkg/txmanager"
)

// DBExecutor интерфейс для работы с БД (поддерживает *sql.DB и *sql.Tx)
type DBExecutor = txmanager.Executor

// Repository репозиторий сырых отметок доступности участников
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория временных слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListByEvent получает все отметки доступности события
func (r *Repository) ListByEvent(ctx context.Context, eventID int64) ([]*domain.TimeSlotRecord, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"event_id",
		"event_date_id",
		"participant_id",
		"hour",
		"minute",
		"created_at",
	).
		From("time_slots").
		Where(squirrel.Eq{"event_id": eventID}).
		OrderBy("event_date_id ASC", "hour ASC", "minute ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByEvent - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByEvent - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanRecords(rows)
}

// DeleteByParticipant удаляет все отметки участника в событии.
// Используется в транзакции полного перезаписывания выбора.
func (r *Repository) DeleteByParticipant(ctx context.Context, eventID int64, participantID string) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("time_slots").
		Where(squirrel.Eq{"event_id": eventID, "participant_id": participantID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteByParticipant - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: DeleteByParticipant - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}

// BulkCreate создает набор отметок одним запросом
func (r *Repository) BulkCreate(ctx context.Context, records []*domain.TimeSlotRecord) error {
	if len(records) == 0 {
		return nil
	}

	executor := txmanager.GetExecutor(ctx, r.db)

	insert := psqlbuilder.Insert("time_slots").
		Columns("event_id", "event_date_id", "participant_id", "hour", "minute")

	for _, rec := range records {
		insert = insert.Values(rec.EventID, rec.EventDateID, rec.ParticipantID, rec.Hour, rec.Minute)
	}

	query, args, err := insert.ToSql()
	if err != nil {
		return fmt.Errorf("%w: BulkCreate - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: BulkCreate - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// scanRecords сканирует результаты запроса в слайс отметок
func (r *Repository) scanRecords(rows *sql.Rows) ([]*domain.TimeSlotRecord, error) {
	records := make([]*domain.TimeSlotRecord, 0)

	for rows.Next() {
		var rec domain.TimeSlotRecord
		var createdAt sql.NullTime

		err := rows.Scan(
			&rec.ID,
			&rec.EventID,
			&rec.EventDateID,
			&rec.ParticipantID,
			&rec.Hour,
			&rec.Minute,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanRecords - scan row: %v", ErrScanRow, err)
		}

		rec.CreatedAt = createdAt.Time
		records = append(records, &rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanRecords - rows error: %v", ErrScanRow, err)
	}

	return records, nil
}
