package models

import (
	"fmt"
	"unicode/utf8"
)

const (
	PlaceholderImageURL = "https://via.placeholder.com/225x350?text=No+Image"
	PlaceholderAbout    = "Character information is currently unavailable."

	// NoDescription is rendered when a character has no about text.
	NoDescription = "No description available"

	// AboutPreviewLen is the number of runes of the about text shown on a card.
	AboutPreviewLen = 200
)

// DefaultCharacterIDs is the fixed, ordered list of MyAnimeList character ids
// shown on the characters screen.
var DefaultCharacterIDs = []int{
	1, 2, 3, 4, 5,
	11, 12, 13, 14, 17,
	40, 45, 46, 62, 71,
	80, 85, 89, 417, 422,
	1555, 2007, 2072, 5627, 40882,
}

// Character is one record of the character list. Placeholder is set when the
// record was synthesized because the real data could not be retrieved.
type Character struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	About       string `json:"about,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
	Placeholder bool   `json:"placeholder,omitempty"`
}

// PlaceholderCharacter builds the substitute record for id.
func PlaceholderCharacter(id int) Character {
	return Character{
		ID:          id,
		Name:        fmt.Sprintf("Character %d", id),
		About:       PlaceholderAbout,
		ImageURL:    PlaceholderImageURL,
		Placeholder: true,
	}
}

// AboutPreview returns the about text cut to AboutPreviewLen runes with "..."
// appended when it was longer, or NoDescription when it is empty.
func (c Character) AboutPreview() string {
	if c.About == "" {
		return NoDescription
	}
	if utf8.RuneCountInString(c.About) <= AboutPreviewLen {
		return c.About
	}
	runes := []rune(c.About)
	return string(runes[:AboutPreviewLen]) + "..."
}
