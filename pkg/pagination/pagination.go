package pagination

// PageRequest identifies one page of data: a zero-based page number and a
// positive page size.
type PageRequest struct {
	PageNo   int `json:"pageNo"`
	PageSize int `json:"pageSize"`
}

// Normalize adjusts the request to valid pagination values: a negative page
// number becomes zero and a non-positive page size takes the configured
// default. Values above the default are left alone so the response can echo
// the caller's page size exactly.
func (r *PageRequest) Normalize(cfg Config) {
	if r.PageNo < 0 {
		r.PageNo = 0
	}
	if r.PageSize < 1 {
		r.PageSize = cfg.DefaultPageSize
	}
}

// Offset calculates the number of records to skip for a zero-based page.
func (r *PageRequest) Offset() int {
	return r.PageNo * r.PageSize
}

// PageResponse holds one page of data along with pagination metadata.
// PageNumber and PageSize echo the request; TotalPages derives from the
// total matching-row count.
type PageResponse[T any] struct {
	Data       []T `json:"data"`
	PageNumber int `json:"pageNumber"`
	PageSize   int `json:"pageSize"`
	TotalPages int `json:"totalPages"`
}

// NewPageResponse creates a PageResponse for the requested page. TotalPages is
// the ceiling of total over pageSize; zero matching rows yield zero pages.
// Callers may request a page beyond TotalPages and receive empty data.
func NewPageResponse[T any](data []T, total, pageNo, pageSize int) PageResponse[T] {
	totalPages := total / pageSize
	if total%pageSize != 0 {
		totalPages++
	}

	if data == nil {
		data = []T{}
	}

	return PageResponse[T]{
		Data:       data,
		PageNumber: pageNo,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}
