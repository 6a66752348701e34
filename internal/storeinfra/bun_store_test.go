package storeinfra_test

import (
	"bytes"
	"context"
	"sort"
	"strings"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"

	"github.com/goliatone/go-projectinfo/internal/logging"
	"github.com/goliatone/go-projectinfo/internal/storeinfra"
	"github.com/goliatone/go-projectinfo/pkg/testsupport"
	"github.com/goliatone/go-projectinfo/projectinfo"
)

var ignoreBase = cmpopts.IgnoreFields(projectinfo.ProjectInfo{}, "BaseModel")

func newSeededStore(t *testing.T) (*storeinfra.BunStore, []projectinfo.ProjectInfo) {
	t.Helper()

	var records []projectinfo.ProjectInfo
	testsupport.LoadFixtureJSON(t, testsupport.FixturePath("projects.json"), &records)

	store := storeinfra.NewBunStore(testsupport.NewTestDB(t))
	testsupport.Seed(t, store, records...)
	return store, records
}

func ids(records []projectinfo.ProjectInfo) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.ID)
	}
	return out
}

func sortedIDs(records []projectinfo.ProjectInfo) []string {
	out := ids(records)
	sort.Strings(out)
	return out
}

func TestBunStore_FindByID(t *testing.T) {
	ctx := context.Background()
	store, records := newSeededStore(t)

	got, err := store.FindByID(ctx, "b1")
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if diff := cmp.Diff(records[2], got, ignoreBase); diff != "" {
		t.Errorf("FindByID() mismatch (-want +got):\n%s", diff)
	}

	nullable, err := store.FindByID(ctx, "c1")
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if nullable.CheckWhitelist != nil || nullable.NotifyWhitelist != nil || nullable.OverrideIPWhitelist != nil {
		t.Errorf("expected null flags to read back as nil, got %+v", nullable)
	}

	_, err = store.FindByID(ctx, "zz")
	if !projectinfo.IsNotFound(err) {
		t.Errorf("expected not found error, got %v", err)
	}
}

func TestBunStore_SaveUpserts(t *testing.T) {
	ctx := context.Background()
	store, records := newSeededStore(t)

	updated := records[0]
	updated.ProjectName = "Alpha Portal v2"
	updated.CheckWhitelist = projectinfo.Bool(false)
	if _, err := store.Save(ctx, updated); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := store.FindByID(ctx, "a1")
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if diff := cmp.Diff(updated, got, ignoreBase); diff != "" {
		t.Errorf("upsert mismatch (-want +got):\n%s", diff)
	}

	all, err := store.FindAll(ctx)
	if err != nil {
		t.Fatalf("FindAll() error = %v", err)
	}
	if len(all) != len(records) {
		t.Errorf("upsert must not add rows, got %d want %d", len(all), len(records))
	}
}

func TestBunStore_SaveAssignsMissingID(t *testing.T) {
	ctx := context.Background()
	store := storeinfra.NewBunStore(testsupport.NewTestDB(t))

	saved, err := store.Save(ctx, projectinfo.ProjectInfo{DepartmentID: "ops", ProjectName: "Unnamed"})
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if _, err := uuid.Parse(saved.ID); err != nil {
		t.Fatalf("expected a generated uuid, got %q", saved.ID)
	}

	got, err := store.FindByID(ctx, saved.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if diff := cmp.Diff(saved, got, ignoreBase); diff != "" {
		t.Errorf("saved record mismatch (-want +got):\n%s", diff)
	}
}

func TestBunStore_FindAllWithFilter(t *testing.T) {
	ctx := context.Background()
	store, _ := newSeededStore(t)

	tests := []struct {
		name   string
		filter projectinfo.Filter
		want   []string
	}{
		{name: "no filter", filter: projectinfo.Filter{}, want: []string{"a1", "a2", "b1", "b2", "c1"}},
		{name: "id substring", filter: projectinfo.Filter{ID: "1"}, want: []string{"a1", "b1", "c1"}},
		{name: "department exact", filter: projectinfo.Filter{DepartmentID: "sec"}, want: []string{"b1", "b2"}},
		{name: "department is not a substring", filter: projectinfo.Filter{DepartmentID: "se"}, want: []string{}},
		{name: "name substring is case sensitive", filter: projectinfo.Filter{ProjectName: "Alpha"}, want: []string{"a1", "b2"}},
		{name: "name with comma", filter: projectinfo.Filter{ProjectName: ", the"}, want: []string{"c1"}},
		{name: "flag true", filter: projectinfo.Filter{CheckWhitelist: projectinfo.Bool(true)}, want: []string{"a1", "b1"}},
		{name: "flag false skips nulls", filter: projectinfo.Filter{NotifyWhitelist: projectinfo.Bool(false)}, want: []string{"a1", "b2"}},
		{
			name: "inclusive time range",
			filter: projectinfo.Filter{InsertTime: &projectinfo.TimeRange{
				Start: "2023-01-05 09:00:00",
				End:   "2023-01-31 23:59:59",
			}},
			want: []string{"a1", "a2", "b1"},
		},
		{
			name: "clauses are AND-ed",
			filter: projectinfo.Filter{
				ProjectName:    "Alpha",
				DepartmentID:   "sec",
				CheckWhitelist: projectinfo.Bool(false),
			},
			want: []string{"b2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.FindAll(ctx, tt.filter.Criteria()...)
			if err != nil {
				t.Fatalf("FindAll() error = %v", err)
			}
			if got == nil {
				t.Fatal("FindAll() must return an empty slice, not nil")
			}
			if diff := cmp.Diff(tt.want, sortedIDs(got)); diff != "" {
				t.Errorf("ids mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBunStore_FindPage(t *testing.T) {
	ctx := context.Background()
	store := storeinfra.NewBunStore(testsupport.NewTestDB(t))
	testsupport.Seed(t, store, testsupport.Projects(15, "ops", "Project")...)

	first, total, err := store.FindPage(ctx, projectinfo.PageRequest{Index: 0, Size: 10})
	if err != nil {
		t.Fatalf("FindPage() error = %v", err)
	}
	if total != 15 || len(first) != 10 {
		t.Fatalf("first page: total=%d rows=%d", total, len(first))
	}
	if first[0].ID != "p01" || first[9].ID != "p10" {
		t.Errorf("first page not ordered by id: %v", ids(first))
	}

	second, total, err := store.FindPage(ctx, projectinfo.PageRequest{Index: 1, Size: 10})
	if err != nil {
		t.Fatalf("FindPage() error = %v", err)
	}
	if total != 15 || len(second) != 5 || second[0].ID != "p11" {
		t.Errorf("second page: total=%d ids=%v", total, ids(second))
	}

	beyond, total, err := store.FindPage(ctx, projectinfo.PageRequest{Index: 5, Size: 10})
	if err != nil {
		t.Fatalf("FindPage() error = %v", err)
	}
	if total != 15 || len(beyond) != 0 {
		t.Errorf("page past the end: total=%d rows=%d", total, len(beyond))
	}

	filter := projectinfo.Filter{InsertTime: &projectinfo.TimeRange{Start: "2023-01-03 00:00:00", End: "2023-01-07 00:00:00"}}
	filtered, total, err := store.FindPage(ctx, projectinfo.PageRequest{Index: 0, Size: 3}, filter.Criteria()...)
	if err != nil {
		t.Fatalf("FindPage() error = %v", err)
	}
	if total != 5 {
		t.Errorf("filtered total = %d, want 5", total)
	}
	if diff := cmp.Diff([]string{"p03", "p04", "p05"}, ids(filtered)); diff != "" {
		t.Errorf("filtered page mismatch (-want +got):\n%s", diff)
	}
}

func TestBunStore_Delete(t *testing.T) {
	ctx := context.Background()
	store, _ := newSeededStore(t)

	if err := store.DeleteByID(ctx, "a1"); err != nil {
		t.Fatalf("DeleteByID() error = %v", err)
	}
	if err := store.DeleteByID(ctx, "a1"); err != nil {
		t.Errorf("deleting a missing id must be a no-op, got %v", err)
	}
	if _, err := store.FindByID(ctx, "a1"); !projectinfo.IsNotFound(err) {
		t.Errorf("expected a1 to be gone, got %v", err)
	}

	if err := store.DeleteAllByIDs(ctx, []string{"a2", "b1", "missing"}); err != nil {
		t.Fatalf("DeleteAllByIDs() error = %v", err)
	}
	if err := store.DeleteAllByIDs(ctx, nil); err != nil {
		t.Errorf("empty batch must be a no-op, got %v", err)
	}

	left, err := store.FindAll(ctx)
	if err != nil {
		t.Fatalf("FindAll() error = %v", err)
	}
	if diff := cmp.Diff([]string{"b2", "c1"}, sortedIDs(left)); diff != "" {
		t.Errorf("remaining ids mismatch (-want +got):\n%s", diff)
	}
}

func TestBunStore_NameLookups(t *testing.T) {
	ctx := context.Background()
	store, _ := newSeededStore(t)

	got, err := store.FindByProjectName(ctx, "Alpha Portal")
	if err != nil {
		t.Fatalf("FindByProjectName() error = %v", err)
	}
	if got == nil || got.ID != "a1" {
		t.Errorf("expected the lowest id among duplicates, got %+v", got)
	}

	missing, err := store.FindByProjectName(ctx, "alpha portal")
	if err != nil || missing != nil {
		t.Errorf("name match must be exact, got %+v, %v", missing, err)
	}

	scoped, err := store.FindByDepartmentIDAndProjectName(ctx, "sec", "Alpha Portal")
	if err != nil {
		t.Fatalf("FindByDepartmentIDAndProjectName() error = %v", err)
	}
	if scoped == nil || scoped.ID != "b2" {
		t.Errorf("expected b2, got %+v", scoped)
	}

	none, err := store.FindByDepartmentIDAndProjectName(ctx, "dev", "Alpha Portal")
	if err != nil || none != nil {
		t.Errorf("expected nil, got %+v, %v", none, err)
	}
}

func TestBunStore_FindIDAndProjectName(t *testing.T) {
	ctx := context.Background()
	store, records := newSeededStore(t)

	pairs, err := store.FindIDAndProjectName(ctx)
	if err != nil {
		t.Fatalf("FindIDAndProjectName() error = %v", err)
	}
	if len(pairs) != len(records) {
		t.Fatalf("expected %d pairs, got %d", len(records), len(pairs))
	}

	want := map[string]bool{}
	for _, r := range records {
		want[r.ID+","+r.ProjectName] = true
	}
	for _, p := range pairs {
		if !want[p] {
			t.Errorf("unexpected pair %q", p)
		}
	}
}

func TestQueryLogger(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	logger := logging.New(logging.Options{Level: "debug", Writer: &buf})

	db, err := storeinfra.OpenDB(ctx, storeinfra.DefaultConfig(), logger)
	if err != nil {
		t.Fatalf("OpenDB() error = %v", err)
	}
	defer db.Close()

	if err := storeinfra.CreateSchema(ctx, db); err != nil {
		t.Fatalf("CreateSchema() error = %v", err)
	}
	if _, err := db.NewSelect().Model((*projectinfo.ProjectInfo)(nil)).Where("bogus_column = 1").Exec(ctx); err == nil {
		t.Fatal("expected query on unknown column to fail")
	}

	out := buf.String()
	if !strings.Contains(out, "CREATE TABLE") {
		t.Errorf("expected schema statements to be logged, got:\n%s", out)
	}
	if !strings.Contains(out, "query failed") || !strings.Contains(out, "level=WARN") {
		t.Errorf("expected failed query to be logged at warn level, got:\n%s", out)
	}
}

func TestOpenDB_InvalidConfig(t *testing.T) {
	tests := []storeinfra.Config{
		{},
		{Driver: "mysql", DSN: "x"},
		{Driver: storeinfra.DriverSQLite},
		{Driver: storeinfra.DriverSQLite, DSN: ":memory:", MaxOpenConns: -1},
	}
	for _, cfg := range tests {
		if _, err := storeinfra.OpenDB(context.Background(), cfg, nil); !goerrors.IsCategory(err, goerrors.CategoryValidation) {
			t.Errorf("OpenDB(%+v) expected validation error, got %v", cfg, err)
		}
	}
}

func TestStorage_ClosedDBErrorsAreInternal(t *testing.T) {
	ctx := context.Background()
	db := testsupport.NewTestDB(t)
	store := storeinfra.NewBunStore(db)
	db.Close()

	if err := storeinfra.CreateSchema(ctx, db); !goerrors.IsCategory(err, goerrors.CategoryInternal) {
		t.Errorf("CreateSchema() expected internal error, got %v", err)
	}
	if err := storeinfra.DropSchema(ctx, db); !goerrors.IsCategory(err, goerrors.CategoryInternal) {
		t.Errorf("DropSchema() expected internal error, got %v", err)
	}
	if _, err := store.Save(ctx, projectinfo.ProjectInfo{ID: "x1"}); !goerrors.IsCategory(err, goerrors.CategoryInternal) {
		t.Errorf("Save() expected internal error, got %v", err)
	}
}

func TestSchema_Idempotent(t *testing.T) {
	ctx := context.Background()
	db := testsupport.NewTestDB(t)

	if err := storeinfra.CreateSchema(ctx, db); err != nil {
		t.Fatalf("second CreateSchema() error = %v", err)
	}
	if err := storeinfra.DropSchema(ctx, db); err != nil {
		t.Fatalf("DropSchema() error = %v", err)
	}

	var n int
	err := db.NewSelect().
		ColumnExpr("count(*)").
		TableExpr("sqlite_master").
		Where("type = 'table' AND name = ?", "tb_projectinfo").
		Scan(ctx, &n)
	if err != nil {
		t.Fatalf("count tables error = %v", err)
	}
	if n != 0 {
		t.Errorf("expected table to be dropped")
	}
}
