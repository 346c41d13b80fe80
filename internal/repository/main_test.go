//go:build integration

package repository

import (
	"context"
	"os"
	"testing"

	"github.com/guttosm/laundry-service/internal/testutil"
	"github.com/stretchr/testify/require"
)

// TestMain shares one MongoDB container across the package; every test gets its own database.
func TestMain(m *testing.M) {
	os.Exit(testutil.SetupTestMainWithMongoDB(context.Background(), m))
}

func setupTestDB(t *testing.T) *MongoDB {
	t.Helper()
	db, err := NewMongoDB(testutil.GetSharedContainerURI(), testutil.SanitizeDBName(t.Name()))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Database.Drop(context.Background())
		_ = db.Close(context.Background())
	})
	return db
}
