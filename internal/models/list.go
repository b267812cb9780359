package models

// List is the backend's paginated collection envelope.
type List[T any] struct {
	Total    int `json:"total"`
	Current  int `json:"current"`
	PageSize int `json:"pageSize"`
	Records  []T `json:"records"`
}

// ListParams are the common paging and search parameters.
type ListParams struct {
	Current   int
	PageSize  int
	Search    string
	SortField string
	SortOrder string
}
