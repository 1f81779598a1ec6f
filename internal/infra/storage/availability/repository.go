package availability

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/AlqamaShuja/educat-scheduling-service/internal/domain"
	"github.com/AlqamaShuja/educat-scheduling-service/pkg/dbmetrics"
	"github.com/AlqamaShuja/educat-scheduling-service/pkg/psqlbuilder"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий окон доступности консультантов
// Интервалы хранятся в JSONB колонке allowed_intervals
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория окон доступности
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Upsert создает или обновляет окно доступности консультанта на дату
// Окно уникально по паре (consultant_id, window_date)
func (r *Repository) Upsert(ctx context.Context, window *domain.AvailabilityWindow) (*domain.AvailabilityWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	intervals, err := json.Marshal(window.AllowedIntervals)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - marshal intervals: %v", ErrEncodeIntervals, err)
	}

	query, args, err := psqlbuilder.Insert("consultant_availability").
		Columns(
			"consultant_id",
			"window_date",
			"is_available",
			"allowed_intervals",
		).
		Values(
			window.ConsultantID,
			window.Date,
			window.IsAvailable,
			intervals,
		).
		Suffix(`ON CONFLICT (consultant_id, window_date) DO UPDATE SET
			is_available = EXCLUDED.is_available,
			allowed_intervals = EXCLUDED.allowed_intervals,
			updated_at = NOW()
			RETURNING id, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&window.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	window.CreatedAt = createdAt.Time
	window.UpdatedAt = updatedAt.Time

	return window, nil
}

// GetByConsultantAndDate получает окно доступности консультанта на дату
func (r *Repository) GetByConsultantAndDate(ctx context.Context, consultantID int64, date time.Time) (*domain.AvailabilityWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"consultant_id",
		"window_date",
		"is_available",
		"allowed_intervals",
		"created_at",
		"updated_at",
	).
		From("consultant_availability").
		Where(squirrel.Eq{"consultant_id": consultantID}).
		Where(squirrel.Eq{"window_date": date}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByConsultantAndDate - build select query: %v", ErrBuildQuery, err)
	}

	var window domain.AvailabilityWindow
	var intervals []byte
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&window.ID,
		&window.ConsultantID,
		&window.Date,
		&window.IsAvailable,
		&intervals,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrWindowNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByConsultantAndDate - scan window: %v", ErrScanRow, err)
	}

	if len(intervals) > 0 {
		if err := json.Unmarshal(intervals, &window.AllowedIntervals); err != nil {
			return nil, fmt.Errorf("%w: GetByConsultantAndDate - unmarshal intervals: %v", ErrScanRow, err)
		}
	}

	window.CreatedAt = createdAt.Time
	window.UpdatedAt = updatedAt.Time

	return &window, nil
}

// Delete удаляет окно доступности (консультант возвращается к расписанию офиса)
func (r *Repository) Delete(ctx context.Context, consultantID int64, date time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("consultant_availability").
		Where(squirrel.Eq{"consultant_id": consultantID}).
		Where(squirrel.Eq{"window_date": date}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrWindowNotFound
	}

	return nil
}
