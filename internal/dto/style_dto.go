package dto

// StyleStatusResponse reports whether a shared companion persona still exists
// and whether the caller may manage it. Persona content (personality,
// background, dialogue style) is deliberately absent.
type StyleStatusResponse struct {
	Exists            bool   `json:"exists"`
	IsDeletedByAuthor bool   `json:"is_deleted_by_author"`
	IsImported        bool   `json:"is_imported"`
	AuthorEmail       string `json:"author_email,omitempty"`
	Name              string `json:"name,omitempty"`
	IsAccessible      bool   `json:"is_accessible"`
}
