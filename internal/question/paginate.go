package question

// Paginate returns the 1-indexed page of seq holding at most PageSize items.
// Pages past the end, and page numbers below 1, are empty.
func Paginate[T any](seq []T, page int) []T {
	if page < 1 {
		return []T{}
	}
	start := (page - 1) * PageSize
	if start >= len(seq) {
		return []T{}
	}
	end := start + PageSize
	if end > len(seq) {
		end = len(seq)
	}
	return seq[start:end]
}
