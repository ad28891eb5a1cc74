package models

// ConsultationFilter represents filter parameters for querying consultation requests
type ConsultationFilter struct {
	Status      string `form:"status"`
	Industry    string `form:"industry"`
	ProjectType string `form:"project_type"`
	Page        int    `form:"page"`
	PageSize    int    `form:"pageSize"`
}

// MaxPage bounds the page number so the row offset cannot overflow.
const MaxPage = 1_000_000

// Normalize applies the default paging window.
func (f *ConsultationFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Page > MaxPage {
		f.Page = MaxPage
	}
	if f.PageSize < 1 {
		f.PageSize = 50
	}
	if f.PageSize > 500 {
		f.PageSize = 500
	}
}
