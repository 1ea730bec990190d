package dto

// ListQuery is decoded from the query string of every list endpoint.
// Filters a screen does not know are ignored.
type ListQuery struct {
	Search  string `schema:"search"`
	Status  string `schema:"status"`
	Mode    string `schema:"mode"`
	Course  string `schema:"course"`
	Type    string `schema:"type"`
	From    string `schema:"from"`
	To      string `schema:"to"`
	Page    int    `schema:"page"`
	Refresh bool   `schema:"refresh"`
}

// PageInfo describes the page of a filtered list
type PageInfo struct {
	CurrentPage int `json:"current_page"`
	TotalPages  int `json:"total_pages"`
	PageSize    int `json:"page_size"`
	Total       int `json:"total"`
}
