package sqlite

import (
	"fmt"
	"net/url"
	"testing"
)

// setupTestDB creates a shared in-memory credential database with the schema
// applied. The name is derived from t.Name() so parallel tests stay isolated;
// cache=shared lets the reader and writer handles see the same database.
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	// Percent-encode the test name so subtest slashes cannot be read as URI
	// path separators or query parameters.
	dsn := fmt.Sprintf(
		"file:%s?mode=memory&cache=shared&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)",
		url.PathEscape(t.Name()),
	)

	writer, err := open(dsn, 1)
	if err != nil {
		t.Fatalf("open test writer: %v", err)
	}

	reader, err := open(dsn, 4)
	if err != nil {
		_ = writer.Close()
		t.Fatalf("open test reader: %v", err)
	}

	db := &DB{Writer: writer, Reader: reader, path: dsn}
	t.Cleanup(func() { _ = db.Close() })

	if err := RunMigrations(db.Writer); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}

	return db
}
