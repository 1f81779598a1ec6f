package scheduleconfig

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/AlqamaShuja/educat-scheduling-service/internal/domain"
	"github.com/AlqamaShuja/educat-scheduling-service/pkg/dbmetrics"
	"github.com/AlqamaShuja/educat-scheduling-service/pkg/psqlbuilder"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// configColumns полный набор колонок таблицы schedule_config
var configColumns = []string{
	"id",
	"office_id",
	"consultant_id",
	"slot_interval_minutes",
	"default_duration_minutes",
	"advance_booking_days",
	"min_notice_minutes",
	"created_at",
	"updated_at",
}

// Repository репозиторий конфигурации расписания
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория конфигурации
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую конфигурацию расписания
func (r *Repository) Create(ctx context.Context, config *domain.ScheduleConfig) (*domain.ScheduleConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("schedule_config").
		Columns(
			"office_id",
			"consultant_id",
			"slot_interval_minutes",
			"default_duration_minutes",
			"advance_booking_days",
			"min_notice_minutes",
		).
		Values(
			config.OfficeID,
			config.ConsultantID,
			config.SlotIntervalMinutes,
			config.DefaultDurationMinutes,
			config.AdvanceBookingDays,
			config.MinNoticeMinutes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&config.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	config.CreatedAt = createdAt.Time
	config.UpdatedAt = updatedAt.Time

	return config, nil
}

// Update обновляет конфигурацию по ID
func (r *Repository) Update(ctx context.Context, config *domain.ScheduleConfig) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("schedule_config").
		Set("slot_interval_minutes", config.SlotIntervalMinutes).
		Set("default_duration_minutes", config.DefaultDurationMinutes).
		Set("advance_booking_days", config.AdvanceBookingDays).
		Set("min_notice_minutes", config.MinNoticeMinutes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": config.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrConfigNotFound
	}

	return nil
}

// GetByOfficeAndConsultant получает конфигурацию для точной пары (офис, консультант)
// consultantID == nil означает общеофисную конфигурацию
func (r *Repository) GetByOfficeAndConsultant(ctx context.Context, officeID int64, consultantID *int64) (*domain.ScheduleConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(configColumns...).
		From("schedule_config").
		Where(squirrel.Eq{"office_id": officeID})

	if consultantID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"consultant_id": *consultantID})
	} else {
		selectBuilder = selectBuilder.Where("consultant_id IS NULL")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByOfficeAndConsultant - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanConfig(executor.QueryRowContext(ctx, query, args...))
}

// GetConfigWithHierarchy получает конфигурацию с учетом иерархии приоритетов
// Приоритет применения конфигурации:
// 1. Конфигурация конкретного консультанта в офисе (officeID, consultantID)
// 2. Общеофисная конфигурация (officeID, NULL)
//
// Если конфигурация не найдена ни на одном уровне, возвращает ErrConfigNotFound
func (r *Repository) GetConfigWithHierarchy(ctx context.Context, officeID int64, consultantID *int64) (*domain.ScheduleConfig, error) {
	// 1. Пробуем конфигурацию конкретного консультанта (если указан)
	if consultantID != nil {
		config, err := r.GetByOfficeAndConsultant(ctx, officeID, consultantID)
		if err == nil {
			return config, nil
		}
		if err != ErrConfigNotFound {
			return nil, fmt.Errorf("%w: GetConfigWithHierarchy - level 1 (consultant): %v", ErrExecQuery, err)
		}
	}

	// 2. Пробуем общеофисную конфигурацию
	config, err := r.GetByOfficeAndConsultant(ctx, officeID, nil)
	if err == nil {
		return config, nil
	}
	if err != ErrConfigNotFound {
		return nil, fmt.Errorf("%w: GetConfigWithHierarchy - level 2 (office): %v", ErrExecQuery, err)
	}

	// Конфигурация не найдена ни на одном уровне
	return nil, ErrConfigNotFound
}

// GetAllByOffice получает все конфигурации офиса
func (r *Repository) GetAllByOffice(ctx context.Context, officeID int64) ([]*domain.ScheduleConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(configColumns...).
		From("schedule_config").
		Where(squirrel.Eq{"office_id": officeID}).
		OrderBy("consultant_id NULLS FIRST").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetAllByOffice - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAllByOffice - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	configs := make([]*domain.ScheduleConfig, 0)
	for rows.Next() {
		var config domain.ScheduleConfig
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&config.ID,
			&config.OfficeID,
			&config.ConsultantID,
			&config.SlotIntervalMinutes,
			&config.DefaultDurationMinutes,
			&config.AdvanceBookingDays,
			&config.MinNoticeMinutes,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetAllByOffice - scan row: %v", ErrScanRow, err)
		}

		config.CreatedAt = createdAt.Time
		config.UpdatedAt = updatedAt.Time
		configs = append(configs, &config)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAllByOffice - rows iteration: %v", ErrScanRow, err)
	}

	return configs, nil
}

// scanConfig сканирует одну строку конфигурации
func (r *Repository) scanConfig(row *sql.Row) (*domain.ScheduleConfig, error) {
	var config domain.ScheduleConfig
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&config.ID,
		&config.OfficeID,
		&config.ConsultantID,
		&config.SlotIntervalMinutes,
		&config.DefaultDurationMinutes,
		&config.AdvanceBookingDays,
		&config.MinNoticeMinutes,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: scanConfig - scan config: %v", ErrScanRow, err)
	}

	config.CreatedAt = createdAt.Time
	config.UpdatedAt = updatedAt.Time

	return &config, nil
}
