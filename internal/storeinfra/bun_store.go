package storeinfra

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-projectinfo/projectinfo"
)

var _ projectinfo.Store = (*BunStore)(nil)

// BunStore implements projectinfo.Store on a go-repository-bun repository.
type BunStore struct {
	db   *bun.DB
	repo repository.Repository[*projectinfo.ProjectInfo]
}

// NewBunStore creates a BunStore. The table must exist, see CreateSchema.
func NewBunStore(db *bun.DB) *BunStore {
	return &BunStore{
		db:   db,
		repo: repository.NewRepository(db, handlers()),
	}
}

// handlers returns the model handlers for project info records. Ids are
// opaque strings: GetID only reports a UUID when the id parses as one and
// SetID never replaces an id the record already carries.
func handlers() repository.ModelHandlers[*projectinfo.ProjectInfo] {
	return repository.ModelHandlers[*projectinfo.ProjectInfo]{
		NewRecord: func() *projectinfo.ProjectInfo {
			return new(projectinfo.ProjectInfo)
		},
		GetID: func(record *projectinfo.ProjectInfo) uuid.UUID {
			if record == nil {
				return uuid.Nil
			}
			id, err := uuid.Parse(record.ID)
			if err != nil {
				return uuid.Nil
			}
			return id
		},
		SetID: func(record *projectinfo.ProjectInfo, id uuid.UUID) {
			if record.ID == "" {
				record.ID = id.String()
			}
		},
		GetIdentifier: func() string {
			return "projectname"
		},
	}
}

func (s *BunStore) FindByID(ctx context.Context, id string) (projectinfo.ProjectInfo, error) {
	record, err := s.repo.GetByID(ctx, id)
	if repository.IsRecordNotFound(err) {
		return projectinfo.ProjectInfo{}, projectinfo.NotFound(id)
	}
	if err != nil {
		return projectinfo.ProjectInfo{}, internal(err, "find project info by id")
	}
	return *record, nil
}

func (s *BunStore) FindAll(ctx context.Context, criteria ...repository.SelectCriteria) ([]projectinfo.ProjectInfo, error) {
	records, _, err := s.repo.List(ctx, append(criteria, unbounded())...)
	if err != nil {
		return nil, internal(err, "list project info")
	}
	return values(records), nil
}

func (s *BunStore) FindPage(ctx context.Context, page projectinfo.PageRequest, criteria ...repository.SelectCriteria) ([]projectinfo.ProjectInfo, int, error) {
	criteria = append(criteria,
		byIDOrder(),
		repository.SelectPaginate(page.Size, page.Offset()),
	)
	records, total, err := s.repo.List(ctx, criteria...)
	if err != nil {
		return nil, 0, internal(err, "page project info")
	}
	return values(records), total, nil
}

// Save inserts record or overwrites every column of the row with its id.
func (s *BunStore) Save(ctx context.Context, record projectinfo.ProjectInfo) (projectinfo.ProjectInfo, error) {
	saved, err := s.repo.Create(ctx, &record, overwriteOnConflict())
	if err != nil {
		return projectinfo.ProjectInfo{}, internal(err, "save project info")
	}
	return *saved, nil
}

func (s *BunStore) DeleteByID(ctx context.Context, id string) error {
	if err := s.repo.DeleteWhere(ctx, repository.DeleteByID(id)); err != nil {
		return internal(err, "delete project info")
	}
	return nil
}

func (s *BunStore) DeleteAllByIDs(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		return s.repo.DeleteWhereTx(ctx, tx, byIDs(ids))
	})
	if err != nil {
		return internal(err, "delete project info batch")
	}
	return nil
}

func (s *BunStore) FindByProjectName(ctx context.Context, name string) (*projectinfo.ProjectInfo, error) {
	return s.findOne(ctx, repository.SelectBy("projectname", "=", name))
}

func (s *BunStore) FindByDepartmentIDAndProjectName(ctx context.Context, departmentID, name string) (*projectinfo.ProjectInfo, error) {
	return s.findOne(ctx,
		repository.SelectBy("departmentid", "=", departmentID),
		repository.SelectBy("projectname", "=", name),
	)
}

func (s *BunStore) FindIDAndProjectName(ctx context.Context) ([]string, error) {
	records, _, err := s.repo.List(ctx,
		repository.SelectColumns("id", "projectname"),
		unbounded(),
	)
	if err != nil {
		return nil, internal(err, "list project ids and names")
	}

	pairs := make([]string, 0, len(records))
	for _, record := range records {
		pairs = append(pairs, record.ID+","+record.ProjectName)
	}
	return pairs, nil
}

// findOne returns the first record by id matching criteria, or nil.
func (s *BunStore) findOne(ctx context.Context, criteria ...repository.SelectCriteria) (*projectinfo.ProjectInfo, error) {
	record, err := s.repo.Get(ctx, append(criteria, byIDOrder())...)
	if repository.IsRecordNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, internal(err, "find project info")
	}
	return record, nil
}

// unbounded clears the default page size List applies.
func unbounded() repository.SelectCriteria {
	return repository.SelectPaginate(0, 0)
}

func byIDOrder() repository.SelectCriteria {
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.OrderExpr("?TableAlias.id ASC")
	}
}

func byIDs(ids []string) repository.DeleteCriteria {
	return func(q *bun.DeleteQuery) *bun.DeleteQuery {
		return q.Where("?TableAlias.id IN (?)", bun.In(ids))
	}
}

func overwriteOnConflict() repository.InsertCriteria {
	return func(q *bun.InsertQuery) *bun.InsertQuery {
		return q.
			On("CONFLICT (id) DO UPDATE").
			Set("departmentid = EXCLUDED.departmentid").
			Set("projectname = EXCLUDED.projectname").
			Set("checkwhitelist = EXCLUDED.checkwhitelist").
			Set("notifywhitelist = EXCLUDED.notifywhitelist").
			Set("overrideipwhitelist = EXCLUDED.overrideipwhitelist").
			Set("inserttime = EXCLUDED.inserttime")
	}
}

func values(records []*projectinfo.ProjectInfo) []projectinfo.ProjectInfo {
	out := make([]projectinfo.ProjectInfo, 0, len(records))
	for _, record := range records {
		out = append(out, *record)
	}
	return out
}

func internal(err error, msg string) error {
	return goerrors.Wrap(err, goerrors.CategoryInternal, msg)
}
