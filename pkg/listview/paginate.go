package listview

// Page is the window of a filtered collection shown on one screen.
// Start and End are slice bounds (End exclusive).
type Page struct {
	Number     int
	Size       int
	TotalPages int
	Start      int
	End        int
}

// Paginate computes the page window for total filtered records. The page number
// is clamped to [1, max(TotalPages, 1)].
func Paginate(total, page, size int) Page {
	if size < 1 {
		size = DefaultPageSize
	}
	if total < 0 {
		total = 0
	}

	totalPages := (total + size - 1) / size
	if page < 1 {
		page = 1
	}
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}
	if totalPages == 0 {
		page = 1
	}

	start := (page - 1) * size
	if start > total {
		start = total
	}
	end := start + size
	if end > total {
		end = total
	}

	return Page{
		Number:     page,
		Size:       size,
		TotalPages: totalPages,
		Start:      start,
		End:        end,
	}
}
