// Package listing turns an in-memory character list into what a screen shows:
// search filtering, pagination and the sliding window of page numbers.
//
// Everything except Browser is a pure function of its inputs.
package listing

import (
	"strings"

	"github.com/dmitrijs2005/animedex/internal/client/models"
	"golang.org/x/text/cases"
)

const (
	DefaultPageSize = 6
	WindowWidth     = 5
)

// View is one rendered page of the (filtered) character list.
type View struct {
	Items      []models.Character `json:"items"`
	Query      string             `json:"query"`
	Page       int                `json:"page"`
	TotalPages int                `json:"total_pages"`
	Window     []int              `json:"window"`
	Total      int                `json:"total"`
}

// Filter returns the subsequence of records whose name contains query,
// comparing under Unicode case folding. An empty query keeps every record.
func Filter(records []models.Character, query string) []models.Character {
	if query == "" {
		return records
	}

	fold := cases.Fold()
	needle := fold.String(query)

	out := make([]models.Character, 0, len(records))
	for _, r := range records {
		if strings.Contains(fold.String(r.Name), needle) {
			out = append(out, r)
		}
	}
	return out
}

// TotalPages is ceil(n/size); zero for an empty list.
func TotalPages(n, size int) int {
	if n <= 0 || size <= 0 {
		return 0
	}
	return (n + size - 1) / size
}

// ClampPage moves page into [1, max(1, totalPages)].
func ClampPage(page, totalPages int) int {
	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}
	return page
}

// Paginate returns the records of the given 1-based page. Out-of-range pages
// are clamped.
func Paginate(records []models.Character, page, size int) []models.Character {
	if size <= 0 {
		return nil
	}
	page = ClampPage(page, TotalPages(len(records), size))

	start := (page - 1) * size
	if start >= len(records) {
		return []models.Character{}
	}
	end := min(start+size, len(records))
	return records[start:end]
}

// PageWindow returns at most width consecutive page numbers centred on
// current and shifted to stay inside [1, total].
func PageWindow(current, total, width int) []int {
	if total <= 0 || width <= 0 {
		return []int{}
	}
	current = ClampPage(current, total)

	start := max(current-width/2, 1)
	end := start + width - 1
	if end > total {
		end = total
		start = max(end-width+1, 1)
	}

	window := make([]int, 0, end-start+1)
	for p := start; p <= end; p++ {
		window = append(window, p)
	}
	return window
}

// Build filters records by query and cuts out the requested page.
func Build(records []models.Character, query string, page, size int) View {
	filtered := Filter(records, query)
	total := TotalPages(len(filtered), size)
	page = ClampPage(page, total)

	return View{
		Items:      Paginate(filtered, page, size),
		Query:      query,
		Page:       page,
		TotalPages: total,
		Window:     PageWindow(page, total, WindowWidth),
		Total:      len(filtered),
	}
}
