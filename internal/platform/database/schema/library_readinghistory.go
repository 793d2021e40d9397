package schema

// LibraryReadingHistoryTable represents the 'library.readinghistory' table
type LibraryReadingHistoryTable struct {
	Table     string
	ID        string
	UserID    string
	ComicID   string
	ChapterID string
	ReadAt    string
}

// LibraryReadingHistory is the schema definition for library.readinghistory
var LibraryReadingHistory = LibraryReadingHistoryTable{
	Table:     "library.readinghistory",
	ID:        "id",
	UserID:    "userid",
	ComicID:   "comicid",
	ChapterID: "chapterid",
	ReadAt:    "readat",
}

func (t LibraryReadingHistoryTable) Columns() []string {
	return []string{t.ID, t.UserID, t.ComicID, t.ChapterID, t.ReadAt}
}
