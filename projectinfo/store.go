package projectinfo

import (
	"context"

	repository "github.com/goliatone/go-repository-bun"
)

// Store is the system of record for project info.
type Store interface {
	// FindByID returns the record with id, or a not-found error.
	FindByID(ctx context.Context, id string) (ProjectInfo, error)
	// FindAll returns every record matching all criteria.
	FindAll(ctx context.Context, criteria ...repository.SelectCriteria) ([]ProjectInfo, error)
	// FindPage returns one page of the records matching all criteria and
	// the total number of matches.
	FindPage(ctx context.Context, page PageRequest, criteria ...repository.SelectCriteria) ([]ProjectInfo, int, error)
	// Save inserts record, or replaces the record with the same id.
	Save(ctx context.Context, record ProjectInfo) (ProjectInfo, error)
	DeleteByID(ctx context.Context, id string) error
	// DeleteAllByIDs removes all ids in a single transaction.
	DeleteAllByIDs(ctx context.Context, ids []string) error
	// FindByProjectName returns nil when no record has the name.
	FindByProjectName(ctx context.Context, name string) (*ProjectInfo, error)
	// FindByDepartmentIDAndProjectName returns nil when nothing matches.
	FindByDepartmentIDAndProjectName(ctx context.Context, departmentID, name string) (*ProjectInfo, error)
	// FindIDAndProjectName returns one "id,projectname" string per record.
	FindIDAndProjectName(ctx context.Context) ([]string, error)
}
