package model

// Page size bounds for list endpoints.
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// ListResponse is the body of GET /settings.
type ListResponse struct {
	Data       []Setting  `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// Pagination holds pagination metadata for list endpoints.
type Pagination struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"total_pages"`
}

// NewPagination computes pagination metadata for a page of total items.
func NewPagination(opts ListOptions, total int) Pagination {
	return Pagination{
		Total:      total,
		Page:       opts.Page,
		Limit:      opts.Limit,
		TotalPages: TotalPages(total, opts.Limit),
	}
}

// TotalPages returns ceil(total/limit), or 0 when there is nothing to page.
func TotalPages(total, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

// ListOptions configures list queries with page-based pagination.
type ListOptions struct {
	Page  int // 1-based
	Limit int
}

// DefaultListOptions returns sensible defaults.
func DefaultListOptions() ListOptions {
	return ListOptions{Page: 1, Limit: DefaultPageSize}
}

// Clamp enforces limits (page >= 1, limit 1..100).
func (o *ListOptions) Clamp() {
	if o.Page < 1 {
		o.Page = 1
	}
	if o.Limit <= 0 {
		o.Limit = DefaultPageSize
	}
	if o.Limit > MaxPageSize {
		o.Limit = MaxPageSize
	}
}

// Offset returns the number of rows skipped before the page starts.
func (o ListOptions) Offset() int {
	if o.Page < 1 {
		return 0
	}
	return (o.Page - 1) * o.Limit
}
