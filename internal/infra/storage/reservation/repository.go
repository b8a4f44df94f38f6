package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/mastercuts/BookingService/internal/domain"
	"github.com/mastercuts/BookingService/pkg/psqlbuilder"
)

const (
	tableName = "reservations"

	// uniqueViolation код ошибки PostgreSQL при нарушении уникальности
	uniqueViolation pq.ErrorCode = "23505"
)

var selectColumns = []string{
	"id",
	"services",
	"to_char(date, 'YYYY-MM-DD')",
	"time",
	"customer_name",
	"phone",
	"status",
	"created_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Вторая подтверждённая запись на тот же слот отклоняется уникальным индексом и возвращает ErrSlotTaken
func (r *Repository) Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
	query, args, err := buildInsertQuery(reservation)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&reservation.ID,
		&reservation.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: date=%s time=%s", ErrSlotTaken, reservation.Date, reservation.Time)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return reservation, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Reservation, error) {
	query, args, err := psqlbuilder.Select(selectColumns...).
		From(tableName).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	reservation, err := scanReservation(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %v", ErrScanRow, err)
	}

	return reservation, nil
}

// GetByDate получает бронирования на дату
// Опционально фильтрует по статусу
func (r *Repository) GetByDate(ctx context.Context, date string, status *domain.ReservationStatus) ([]*domain.Reservation, error) {
	query, args, err := buildSelectByDateQuery(date, status)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	var reservations []*domain.Reservation
	for rows.Next() {
		reservation, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByDate - scan reservation: %v", ErrScanRow, err)
		}
		reservations = append(reservations, reservation)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByDate - rows error: %v", ErrScanRow, err)
	}

	return reservations, nil
}

// GetConfirmedTimes возвращает метки слотов, занятых подтверждёнными бронированиями на дату
func (r *Repository) GetConfirmedTimes(ctx context.Context, date string) ([]domain.SlotLabel, error) {
	query, args, err := buildConfirmedTimesQuery(date)
	if err != nil {
		return nil, fmt.Errorf("%w: GetConfirmedTimes - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetConfirmedTimes - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	var times []domain.SlotLabel
	for rows.Next() {
		var label string
		if err := rows.Scan(&label); err != nil {
			return nil, fmt.Errorf("%w: GetConfirmedTimes - scan time: %v", ErrScanRow, err)
		}
		times = append(times, domain.SlotLabel(label))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetConfirmedTimes - rows error: %v", ErrScanRow, err)
	}

	return times, nil
}

// Delete удаляет бронирование
// Отсутствие строки не является ошибкой: возвращается false
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	query, args, err := psqlbuilder.Delete(tableName).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected > 0, nil
}

func buildInsertQuery(reservation *domain.Reservation) (string, []interface{}, error) {
	return psqlbuilder.Insert(tableName).
		Columns(
			"services",
			"date",
			"time",
			"customer_name",
			"phone",
			"status",
		).
		Values(
			pq.Array(reservation.Services),
			reservation.Date,
			string(reservation.Time),
			reservation.CustomerName,
			reservation.Phone,
			string(reservation.Status),
		).
		Suffix("RETURNING id, created_at").
		ToSql()
}

func buildSelectByDateQuery(date string, status *domain.ReservationStatus) (string, []interface{}, error) {
	builder := psqlbuilder.Select(selectColumns...).
		From(tableName).
		Where(squirrel.Eq{"date": date})

	if status != nil {
		builder = builder.Where(squirrel.Eq{"status": string(*status)})
	}

	return builder.OrderBy("created_at").ToSql()
}

func buildConfirmedTimesQuery(date string) (string, []interface{}, error) {
	return psqlbuilder.Select("time").
		From(tableName).
		Where(squirrel.Eq{"date": date}).
		Where(squirrel.Eq{"status": string(domain.StatusConfirmed)}).
		ToSql()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var (
		reservation domain.Reservation
		label       string
		status      string
	)

	err := row.Scan(
		&reservation.ID,
		pq.Array(&reservation.Services),
		&reservation.Date,
		&label,
		&reservation.CustomerName,
		&reservation.Phone,
		&status,
		&reservation.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	reservation.Time = domain.SlotLabel(label)
	reservation.Status = domain.ReservationStatus(status)
	return &reservation, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
