package paging

// DefaultWindow is the number of page buttons shown by the storefront.
const DefaultWindow = 5

// VisiblePages returns up to window contiguous page numbers with current
// centered when possible and the window clamped at both ends.
func VisiblePages(current, total, window int) []int {
	if total < 1 || window < 1 {
		return nil
	}
	current = Clamp(current, total)
	start := current - window/2
	if start < 1 {
		start = 1
	}
	end := start + window - 1
	if end > total {
		end = total
		start = end - window + 1
		if start < 1 {
			start = 1
		}
	}
	pages := make([]int, 0, end-start+1)
	for p := start; p <= end; p++ {
		pages = append(pages, p)
	}
	return pages
}

// Clamp confines a page number to [1, max(total, 1)].
func Clamp(page, total int) int {
	if total < 1 {
		total = 1
	}
	if page < 1 {
		return 1
	}
	if page > total {
		return total
	}
	return page
}

// Valid reports whether page is inside [1, total], the precondition for a
// page navigation to take effect.
func Valid(page, total int) bool {
	return page >= 1 && page <= total
}
