package schema

// LibraryChapterVoteTable represents the 'library.chaptervote' table
type LibraryChapterVoteTable struct {
	Table     string
	ID        string
	UserID    string
	ChapterID string
	CreatedAt string
}

// LibraryChapterVote is the schema definition for library.chaptervote
var LibraryChapterVote = LibraryChapterVoteTable{
	Table:     "library.chaptervote",
	ID:        "id",
	UserID:    "userid",
	ChapterID: "chapterid",
	CreatedAt: "createdat",
}

func (t LibraryChapterVoteTable) Columns() []string {
	return []string{t.ID, t.UserID, t.ChapterID, t.CreatedAt}
}
