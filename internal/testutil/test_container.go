//go:build integration

package testutil

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"
	"time"
)

var (
	sharedContainer    *MongoDBContainer
	sharedContainerErr error
	sharedOnce         sync.Once
	sharedMu           sync.RWMutex
)

// GetSharedMongoDB returns the package-wide MongoDB container, starting it on first use.
func GetSharedMongoDB(ctx context.Context) (*MongoDBContainer, error) {
	sharedOnce.Do(func() {
		c, err := SetupMongoDB(ctx)
		sharedMu.Lock()
		sharedContainer, sharedContainerErr = c, err
		sharedMu.Unlock()
	})

	sharedMu.RLock()
	defer sharedMu.RUnlock()
	return sharedContainer, sharedContainerErr
}

// CleanupSharedMongoDB terminates the shared container, if one was started.
func CleanupSharedMongoDB(ctx context.Context) error {
	sharedMu.Lock()
	defer sharedMu.Unlock()

	if sharedContainer == nil {
		return nil
	}
	err := sharedContainer.Cleanup(ctx)
	sharedContainer = nil
	return err
}

// SetupTestMainWithMongoDB runs m against a shared MongoDB container:
//
//	func TestMain(m *testing.M) {
//		os.Exit(testutil.SetupTestMainWithMongoDB(context.Background(), m))
//	}
func SetupTestMainWithMongoDB(ctx context.Context, m *testing.M) int {
	if _, err := GetSharedMongoDB(ctx); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "mongodb container: %v\n", err)
		return 1
	}

	code := m.Run()

	if err := CleanupSharedMongoDB(ctx); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "warning: failed to clean up MongoDB container: %v\n", err)
	}
	return code
}

// GetSharedContainerURI returns the URI of the shared MongoDB container.
// It panics when the container has not been started.
func GetSharedContainerURI() string {
	sharedMu.RLock()
	defer sharedMu.RUnlock()

	if sharedContainer == nil {
		panic("shared MongoDB container not initialized: call GetSharedMongoDB first")
	}
	return sharedContainer.URI
}

// SanitizeDBName turns a test name into a unique, valid MongoDB database name.
func SanitizeDBName(testName string) string {
	var b strings.Builder
	for _, r := range testName {
		switch r {
		case '/', '\\', '.', ' ', '"', '$':
			b.WriteByte('_')
		default:
			b.WriteRune(r)
		}
	}

	sanitized := b.String()
	if len(sanitized) > 40 {
		sanitized = sanitized[:40]
	}
	return fmt.Sprintf("%s_%d", sanitized, time.Now().UnixNano()%1000000)
}
