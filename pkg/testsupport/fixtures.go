package testsupport

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/uptrace/bun"

	"github.com/goliatone/go-projectinfo/internal/storeinfra"
	"github.com/goliatone/go-projectinfo/projectinfo"
)

// LoadFixture loads test data from a fixture file.
// The path is relative to the test package directory.
func LoadFixture(t *testing.T, path string) []byte {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to load fixture from %s: %v", path, err)
	}

	return data
}

// LoadFixtureJSON loads JSON test data from a fixture file and unmarshals it.
// The path is relative to the test package directory.
func LoadFixtureJSON(t *testing.T, path string, dest interface{}) {
	t.Helper()

	data := LoadFixture(t, path)
	if err := json.Unmarshal(data, dest); err != nil {
		t.Fatalf("failed to unmarshal JSON fixture from %s: %v", path, err)
	}
}

// FixturePath constructs a path to a fixture file relative to the testdata directory.
func FixturePath(filename string) string {
	return filepath.Join("testdata", filename)
}

// NewTestDB opens a private in-memory SQLite database with the project info
// schema. It is closed when the test ends.
func NewTestDB(t testing.TB) *bun.DB {
	t.Helper()

	ctx := context.Background()
	db, err := storeinfra.OpenDB(ctx, storeinfra.Config{Driver: storeinfra.DriverSQLite, DSN: ":memory:"}, nil)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := storeinfra.CreateSchema(ctx, db); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	return db
}

// Seed saves records through store, failing the test on the first error.
func Seed(t testing.TB, store projectinfo.Store, records ...projectinfo.ProjectInfo) {
	t.Helper()

	for _, record := range records {
		if _, err := store.Save(context.Background(), record); err != nil {
			t.Fatalf("failed to seed %s: %v", record.ID, err)
		}
	}
}

// Projects builds n records with ids p01..pNN in department dept, named
// "<prefix> NN" and inserted on consecutive days of January 2023.
func Projects(n int, dept, prefix string) []projectinfo.ProjectInfo {
	records := make([]projectinfo.ProjectInfo, 0, n)
	for i := 1; i <= n; i++ {
		records = append(records, projectinfo.ProjectInfo{
			ID:                  fmt.Sprintf("p%02d", i),
			DepartmentID:        dept,
			ProjectName:         fmt.Sprintf("%s %02d", prefix, i),
			CheckWhitelist:      projectinfo.Bool(false),
			NotifyWhitelist:     projectinfo.Bool(false),
			OverrideIPWhitelist: projectinfo.Bool(false),
			InsertTime:          fmt.Sprintf("2023-01-%02d 00:00:00", i),
		})
	}
	return records
}
