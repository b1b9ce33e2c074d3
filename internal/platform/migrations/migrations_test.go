package migrations

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestModels_UniqueTables(t *testing.T) {
	seen := map[string]bool{}
	for _, m := range Models() {
		tabler, ok := m.(interface{ TableName() string })
		require.True(t, ok, "%T has no TableName", m)
		name := tabler.TableName()
		require.False(t, seen[name], "table %s registered twice", name)
		seen[name] = true
	}
	for _, table := range []string{"id_sequences", "products", "categories", "pets", "services", "orders", "users", "user_sessions", "adoption_requests", "bookings", "payments"} {
		require.True(t, seen[table], "missing table %s", table)
	}
}

func TestRun_NilDB(t *testing.T) {
	require.NoError(t, Run(nil))
}
