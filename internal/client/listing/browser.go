package listing

import "github.com/dmitrijs2005/animedex/internal/client/models"

// Browser keeps the query and page of one characters screen visit.
// It is not safe for concurrent use.
type Browser struct {
	records  []models.Character
	query    string
	page     int
	pageSize int
}

func NewBrowser(records []models.Character, pageSize int) *Browser {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Browser{records: records, page: 1, pageSize: pageSize}
}

// SetRecords replaces the list and goes back to page 1.
func (b *Browser) SetRecords(records []models.Character) {
	b.records = records
	b.page = 1
}

// SetQuery changes the search string; the page always resets to 1.
func (b *Browser) SetQuery(query string) {
	b.query = query
	b.page = 1
}

func (b *Browser) SetPage(page int) {
	b.page = ClampPage(page, b.totalPages())
}

func (b *Browser) Next() {
	b.SetPage(b.page + 1)
}

func (b *Browser) Prev() {
	b.SetPage(b.page - 1)
}

func (b *Browser) Query() string { return b.query }

func (b *Browser) Len() int { return len(b.records) }

func (b *Browser) View() View {
	return Build(b.records, b.query, b.page, b.pageSize)
}

func (b *Browser) totalPages() int {
	return TotalPages(len(Filter(b.records, b.query)), b.pageSize)
}
