package calendartoken

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/mastercuts/BookingService/internal/domain"
	"github.com/mastercuts/BookingService/pkg/psqlbuilder"
)

const (
	tableName = "calendar_tokens"
	singleID  = 1
)

// upsertSuffix пустой refresh_token не затирает сохранённый: Google возвращает его только при первой авторизации
const upsertSuffix = `ON CONFLICT (id) DO UPDATE SET
	access_token = EXCLUDED.access_token,
	refresh_token = CASE WHEN EXCLUDED.refresh_token = '' THEN calendar_tokens.refresh_token ELSE EXCLUDED.refresh_token END,
	token_type = EXCLUDED.token_type,
	expiry = EXCLUDED.expiry,
	updated_at = NOW()`

// Repository хранилище OAuth-токена календаря
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория токенов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get возвращает сохранённый токен или ErrTokenNotFound
func (r *Repository) Get(ctx context.Context) (*domain.CalendarToken, error) {
	query, args, err := psqlbuilder.Select("access_token", "refresh_token", "token_type", "expiry", "updated_at").
		From(tableName).
		Where(squirrel.Eq{"id": singleID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var (
		token  domain.CalendarToken
		expiry sql.NullTime
	)
	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&token.AccessToken,
		&token.RefreshToken,
		&token.TokenType,
		&expiry,
		&token.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTokenNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan token: %v", ErrScanRow, err)
	}

	token.Expiry = expiry.Time
	return &token, nil
}

// Save сохраняет или обновляет токен
func (r *Repository) Save(ctx context.Context, token *domain.CalendarToken) error {
	query, args, err := buildUpsertQuery(token)
	if err != nil {
		return fmt.Errorf("%w: Save - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Save - execute upsert: %v", ErrExecQuery, err)
	}
	return nil
}

// Delete удаляет токен (отвязка календаря). Возвращает false, если токена не было
func (r *Repository) Delete(ctx context.Context) (bool, error) {
	query, args, err := psqlbuilder.Delete(tableName).
		Where(squirrel.Eq{"id": singleID}).
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

func buildUpsertQuery(token *domain.CalendarToken) (string, []interface{}, error) {
	expiry := sql.NullTime{Time: token.Expiry, Valid: !token.Expiry.IsZero()}

	return psqlbuilder.Insert(tableName).
		Columns("id", "access_token", "refresh_token", "token_type", "expiry").
		Values(singleID, token.AccessToken, token.RefreshToken, token.TokenType, expiry).
		Suffix(upsertSuffix).
		ToSql()
}
