package participant

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-MeetupService/internal/domain"
	"github.com/m04kA/SMC-MeetupService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-MeetupService/pkg/txmanager"
)

// DBExecutor интерфейс для работы с БД (поддерживает *sql.DB и *sql.Tx)
type DBExecutor = txmanager.Executor

// Repository репозиторий участников событий
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория участников
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает участника события
func (r *Repository) Create(ctx context.Context, p *domain.Participant) (*domain.Participant, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("participants").
		Columns("id", "event_id", "name", "color", "user_id").
		Values(p.ID, p.EventID, p.Name, p.Color, p.UserID).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	p.CreatedAt = createdAt.Time
	return p, nil
}

// GetByID получает участника по идентификатору
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Participant, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "event_id", "name", "color", "user_id", "created_at").
		From("participants").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var p domain.Participant
	var createdAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&p.ID,
		&p.EventID,
		&p.Name,
		&p.Color,
		&p.UserID,
		&createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrParticipantNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan participant: %v", ErrScanRow, err)
	}

	p.CreatedAt = createdAt.Time
	return &p, nil
}

// ListByEvent получает участников события в порядке регистрации
func (r *Repository) ListByEvent(ctx context.Context, eventID int64) ([]*domain.Participant, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "event_id", "name", "color", "user_id", "created_at").
		From("participants").
		Where(squirrel.Eq{"event_id": eventID}).
		OrderBy("created_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByEvent - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByEvent - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	participants := make([]*domain.Participant, 0)
	for rows.Next() {
		var p domain.Participant
		var createdAt sql.NullTime

		if err := rows.Scan(&p.ID, &p.EventID, &p.Name, &p.Color, &p.UserID, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: ListByEvent - scan row: %v", ErrScanRow, err)
		}

		p.CreatedAt = createdAt.Time
		participants = append(participants, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByEvent - rows error: %v", ErrScanRow, err)
	}

	return participants, nil
}
