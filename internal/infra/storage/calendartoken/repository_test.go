package calendartoken

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mastercuts/BookingService/internal/domain"
)

func TestBuildUpsertQuery(t *testing.T) {
	expiry := time.Date(2025, 6, 13, 12, 0, 0, 0, time.UTC)

	query, args, err := buildUpsertQuery(&domain.CalendarToken{
		AccessToken:  "access",
		RefreshToken: "refresh",
		TokenType:    "Bearer",
		Expiry:       expiry,
	})
	require.NoError(t, err)

	assert.Contains(t, query, "INSERT INTO calendar_tokens (id,access_token,refresh_token,token_type,expiry) VALUES ($1,$2,$3,$4,$5)")
	assert.Contains(t, query, "ON CONFLICT (id) DO UPDATE SET")
	assert.Equal(t, []interface{}{1, "access", "refresh", "Bearer", sql.NullTime{Time: expiry, Valid: true}}, args)
}

func TestBuildUpsertQuery_NoExpiry(t *testing.T) {
	_, args, err := buildUpsertQuery(&domain.CalendarToken{AccessToken: "access"})
	require.NoError(t, err)
	assert.Equal(t, sql.NullTime{}, args[4])
}
