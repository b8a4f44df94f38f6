package migrations

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrations_Paired(t *testing.T) {
	names, err := fs.Glob(files, "*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, names)

	ups := map[string]bool{}
	downs := map[string]bool{}
	for _, n := range names {
		switch {
		case strings.HasSuffix(n, ".up.sql"):
			ups[strings.TrimSuffix(n, ".up.sql")] = true
		case strings.HasSuffix(n, ".down.sql"):
			downs[strings.TrimSuffix(n, ".down.sql")] = true
		}
	}
	assert.Equal(t, ups, downs)
}

func TestReservationsMigration_HasSlotUniqueness(t *testing.T) {
	data, err := fs.ReadFile(files, "000001_create_reservations.up.sql")
	require.NoError(t, err)

	sql := string(data)
	assert.Contains(t, sql, "CREATE UNIQUE INDEX IF NOT EXISTS reservations_confirmed_slot_uidx")
	assert.Contains(t, sql, "WHERE status = 'confirmed'")
}
