package schema

// LibraryBookmarkTable represents the 'library.bookmark' table
type LibraryBookmarkTable struct {
	Table     string
	ID        string
	UserID    string
	ComicID   string
	CreatedAt string
}

// LibraryBookmark is the schema definition for library.bookmark
var LibraryBookmark = LibraryBookmarkTable{
	Table:     "library.bookmark",
	ID:        "id",
	UserID:    "userid",
	ComicID:   "comicid",
	CreatedAt: "createdat",
}

func (t LibraryBookmarkTable) Columns() []string {
	return []string{t.ID, t.UserID, t.ComicID, t.CreatedAt}
}
