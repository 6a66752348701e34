package projectinfo

import "github.com/uptrace/bun"

// ProjectInfo is a project registered under a department, together with the
// whitelist switches applied to its assets.
type ProjectInfo struct {
	bun.BaseModel `bun:"table:tb_projectinfo,alias:projectinfo" json:"-" msgpack:"-"`

	ID                  string `bun:"id,pk" json:"id" msgpack:"id"`
	DepartmentID        string `bun:"departmentid" json:"departmentid" msgpack:"departmentid"`
	ProjectName         string `bun:"projectname" json:"projectname" msgpack:"projectname"`
	CheckWhitelist      *bool  `bun:"checkwhitelist" json:"checkwhitelist" msgpack:"checkwhitelist"`
	NotifyWhitelist     *bool  `bun:"notifywhitelist" json:"notifywhitelist" msgpack:"notifywhitelist"`
	OverrideIPWhitelist *bool  `bun:"overrideipwhitelist" json:"overrideipwhitelist" msgpack:"overrideipwhitelist"`
	InsertTime          string `bun:"inserttime" json:"inserttime" msgpack:"inserttime"`
}

// Page is one slice of a paginated search. Number is 1-based.
type Page struct {
	Rows   []ProjectInfo `json:"rows" msgpack:"rows"`
	Total  int           `json:"total" msgpack:"total"`
	Number int           `json:"page" msgpack:"page"`
	Size   int           `json:"size" msgpack:"size"`
}

// PageRequest addresses a page with a 0-based index, the convention used by stores.
type PageRequest struct {
	Index int
	Size  int
}

// Offset returns the number of rows to skip.
func (p PageRequest) Offset() int {
	return p.Index * p.Size
}

// Bool returns a pointer to v, handy when filling the optional flags.
func Bool(v bool) *bool {
	return &v
}
