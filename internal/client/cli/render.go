package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/animedex/internal/client/listing"
	"github.com/dmitrijs2005/animedex/internal/client/models"
)

func renderLogin(w io.Writer) {
	fmt.Fprintln(w, "Please log in (type 'login').")
}

func renderHome(w io.Writer, id models.Identity) {
	fmt.Fprintf(w, "Welcome, %s\n", id.Username)
	fmt.Fprintln(w, "  characters  browse the character list")
	fmt.Fprintln(w, "  random [n]  show random characters")
	fmt.Fprintln(w, "  logout      end the session")
}

// RenderCard prints one character with its about preview.
func RenderCard(w io.Writer, ch models.Character) {
	marker := ""
	if ch.Placeholder {
		marker = " (unavailable)"
	}
	fmt.Fprintf(w, "#%d %s%s\n", ch.ID, ch.Name, marker)
	if ch.ImageURL != "" {
		fmt.Fprintf(w, "    image: %s\n", ch.ImageURL)
	}
	fmt.Fprintf(w, "    %s\n", ch.AboutPreview())
}

// RenderView prints one page of the character list followed by the page
// window. A non-empty advisory is printed first.
func RenderView(w io.Writer, v listing.View, advisory string) {
	if advisory != "" {
		fmt.Fprintf(w, "Note: %s\n", advisory)
	}
	if v.Query != "" {
		fmt.Fprintf(w, "Search: %q, %d match(es)\n", v.Query, v.Total)
	}
	if len(v.Items) == 0 {
		fmt.Fprintln(w, "No characters found.")
		return
	}

	for _, ch := range v.Items {
		RenderCard(w, ch)
	}
	fmt.Fprintf(w, "Page %d of %d  %s\n", v.Page, v.TotalPages, pageWindow(v))
}

// pageWindow renders the page numbers with the current one in brackets.
func pageWindow(v listing.View) string {
	parts := make([]string, len(v.Window))
	for i, p := range v.Window {
		if p == v.Page {
			parts[i] = fmt.Sprintf("[%d]", p)
		} else {
			parts[i] = fmt.Sprint(p)
		}
	}
	return strings.Join(parts, " ")
}
