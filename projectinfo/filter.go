package projectinfo

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/uptrace/bun"
)

// TimeRange is an inclusive [Start, End] bound on the insert time column.
type TimeRange struct {
	Start string
	End   string
}

// Filter holds the optional search criteria. Zero-valued fields are ignored,
// every other field adds one AND-ed clause. The zero Filter matches all rows.
type Filter struct {
	ID                  string
	DepartmentID        string
	ProjectName         string
	CheckWhitelist      *bool
	NotifyWhitelist     *bool
	OverrideIPWhitelist *bool
	InsertTime          *TimeRange
}

// Criteria renders the filter as select criteria, in field order.
func (f Filter) Criteria() []repository.SelectCriteria {
	if f.IsEmpty() {
		return nil
	}

	var criteria []repository.SelectCriteria

	if f.ID != "" {
		criteria = append(criteria, contains("id", f.ID))
	}
	if f.DepartmentID != "" {
		criteria = append(criteria, equals("departmentid", f.DepartmentID))
	}
	if f.ProjectName != "" {
		criteria = append(criteria, contains("projectname", f.ProjectName))
	}
	if f.CheckWhitelist != nil {
		criteria = append(criteria, equals("checkwhitelist", *f.CheckWhitelist))
	}
	if f.NotifyWhitelist != nil {
		criteria = append(criteria, equals("notifywhitelist", *f.NotifyWhitelist))
	}
	if f.OverrideIPWhitelist != nil {
		criteria = append(criteria, equals("overrideipwhitelist", *f.OverrideIPWhitelist))
	}
	if f.InsertTime != nil {
		criteria = append(criteria,
			compare("inserttime", ">=", f.InsertTime.Start),
			compare("inserttime", "<=", f.InsertTime.End),
		)
	}

	return criteria
}

// IsEmpty reports whether the filter adds no clause at all.
func (f Filter) IsEmpty() bool {
	return f.ID == "" &&
		f.DepartmentID == "" &&
		f.ProjectName == "" &&
		f.CheckWhitelist == nil &&
		f.NotifyWhitelist == nil &&
		f.OverrideIPWhitelist == nil &&
		f.InsertTime == nil
}

func contains(column, value string) repository.SelectCriteria {
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("?TableAlias.? LIKE ?", bun.Ident(column), "%"+value+"%")
	}
}

func equals(column string, value any) repository.SelectCriteria {
	return compare(column, "=", value)
}

func compare(column, op string, value any) repository.SelectCriteria {
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("?TableAlias.? "+op+" ?", bun.Ident(column), value)
	}
}

// SearchRequest is the wire form of a Filter, keyed like the table columns.
// Empty strings and null values are treated as absent.
type SearchRequest struct {
	ID                  string   `json:"id"`
	DepartmentID        string   `json:"departmentid"`
	ProjectName         string   `json:"projectname"`
	CheckWhitelist      *bool    `json:"checkwhitelist"`
	NotifyWhitelist     *bool    `json:"notifywhitelist"`
	OverrideIPWhitelist *bool    `json:"overrideipwhitelist"`
	InsertTime          []string `json:"inserttime"`
}

// Validate checks that inserttime, when given, is a [start, end] pair.
func (r SearchRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.InsertTime, validation.Length(2, 2)),
	)
}

// Filter validates the request and converts it into a Filter.
func (r SearchRequest) Filter() (Filter, error) {
	if err := r.Validate(); err != nil {
		return Filter{}, Invalid(err)
	}

	f := Filter{
		ID:                  r.ID,
		DepartmentID:        r.DepartmentID,
		ProjectName:         r.ProjectName,
		CheckWhitelist:      r.CheckWhitelist,
		NotifyWhitelist:     r.NotifyWhitelist,
		OverrideIPWhitelist: r.OverrideIPWhitelist,
	}
	if len(r.InsertTime) == 2 {
		f.InsertTime = &TimeRange{Start: r.InsertTime[0], End: r.InsertTime[1]}
	}
	return f, nil
}
