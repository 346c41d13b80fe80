//go:build integration

package http

import (
	"context"
	"os"
	"testing"

	"github.com/guttosm/laundry-service/internal/testutil"
)

// TestMain sets up a shared MongoDB container for all HTTP integration tests in this package.
func TestMain(m *testing.M) {
	os.Exit(testutil.SetupTestMainWithMongoDB(context.Background(), m))
}
