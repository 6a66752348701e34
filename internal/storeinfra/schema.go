package storeinfra

import (
	"context"
	goerrors "github.com/goliatone/go-errors"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-projectinfo/projectinfo"
)

// CreateSchema creates the project info table and its lookup index when they
// do not exist yet.
func CreateSchema(ctx context.Context, db bun.IDB) error {
	if _, err := db.NewCreateTable().
		Model((*projectinfo.ProjectInfo)(nil)).
		IfNotExists().
		Exec(ctx); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "create table tb_projectinfo")
	}

	if _, err := db.NewCreateIndex().
		Model((*projectinfo.ProjectInfo)(nil)).
		Index("idx_projectinfo_department_name").
		Column("departmentid", "projectname").
		IfNotExists().
		Exec(ctx); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "create index idx_projectinfo_department_name")
	}

	return nil
}

// DropSchema removes the project info table.
func DropSchema(ctx context.Context, db bun.IDB) error {
	if _, err := db.NewDropTable().
		Model((*projectinfo.ProjectInfo)(nil)).
		IfExists().
		Exec(ctx); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "drop table tb_projectinfo")
	}
	return nil
}
