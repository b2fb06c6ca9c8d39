package listview

// totalPages is ceil(total/pageSize), never less than 1
func totalPages(total, pageSize int) int {
	if pageSize < 1 || total <= 0 {
		return 1
	}
	return (total + pageSize - 1) / pageSize
}

// clampPage keeps page inside [1, pages]
func clampPage(page, pages int) int {
	if page < 1 {
		return 1
	}
	if page > pages {
		return pages
	}
	return page
}

// pageSlice returns rows[(page-1)*pageSize : page*pageSize], bounded by len(rows)
func pageSlice[T any](rows []T, page, pageSize int) []T {
	start := (page - 1) * pageSize
	if start < 0 || start >= len(rows) {
		return nil
	}
	end := start + pageSize
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end]
}

// padRows turns visible items into exactly pageSize rows, appending fillers
func padRows[T any](visible []T, id func(T) int64, pageSize int) []Row[T] {
	n := pageSize
	if len(visible) > n {
		n = len(visible)
	}
	rows := make([]Row[T], 0, n)
	for _, item := range visible {
		rows = append(rows, Row[T]{Item: item, ID: id(item)})
	}
	for len(rows) < pageSize {
		rows = append(rows, Row[T]{Filler: true})
	}
	return rows
}
