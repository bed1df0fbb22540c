package model

// BookRecord is the uniform per-book shape extracted from a Google Books
// volumes response. Records are transient: built fresh per search call and
// discarded when the calling operation returns.
//
// Pointer fields distinguish "absent from the source" from an empty value.
type BookRecord struct {
	Title       *string  `json:"title"`
	Authors     []string `json:"authors"`
	Description string   `json:"description"`
	Categories  []string `json:"categories"`
	PreviewLink *string  `json:"preview_link,omitempty"`
	PageCount   *int     `json:"page_count,omitempty"`
}

// TitleOrEmpty returns the title, or "" when the source omitted it.
func (b BookRecord) TitleOrEmpty() string {
	if b.Title == nil {
		return ""
	}
	return *b.Title
}
