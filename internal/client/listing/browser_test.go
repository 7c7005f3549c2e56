package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBrowser_SetQueryResetsPage(t *testing.T) {
	b := NewBrowser(chars("aa", "ab", "ac", "ad", "ba", "bb", "bc"), 2)

	b.SetPage(3)
	assert.Equal(t, 3, b.View().Page)

	b.SetQuery("a")
	v := b.View()
	assert.Equal(t, 1, v.Page)
	assert.Equal(t, "a", v.Query)
	assert.Equal(t, 5, v.Total)

	b.Next()
	b.SetQuery("a")
	assert.Equal(t, 1, b.View().Page, "setting the same query still resets the page")
}

func TestBrowser_NextPrevClamp(t *testing.T) {
	b := NewBrowser(chars("a", "b", "c", "d", "e"), 2)

	b.Prev()
	assert.Equal(t, 1, b.View().Page)

	b.Next()
	b.Next()
	b.Next()
	assert.Equal(t, 3, b.View().Page)
	assert.Equal(t, []string{"e"}, names(b.View().Items))
}

func TestBrowser_DefaultsAndSetRecords(t *testing.T) {
	b := NewBrowser(nil, 0)
	assert.Equal(t, 0, b.Len())
	assert.Equal(t, 1, b.View().Page)

	b.SetRecords(chars("a", "b", "c", "d", "e", "f", "g"))
	assert.Equal(t, 7, b.Len())
	assert.Len(t, b.View().Items, DefaultPageSize)
	assert.Equal(t, 2, b.View().TotalPages)
}
