package schema

// LibraryComicVoteTable represents the 'library.comicvote' table
type LibraryComicVoteTable struct {
	Table     string
	ID        string
	UserID    string
	ComicID   string
	CreatedAt string
}

// LibraryComicVote is the schema definition for library.comicvote
var LibraryComicVote = LibraryComicVoteTable{
	Table:     "library.comicvote",
	ID:        "id",
	UserID:    "userid",
	ComicID:   "comicid",
	CreatedAt: "createdat",
}

func (t LibraryComicVoteTable) Columns() []string {
	return []string{t.ID, t.UserID, t.ComicID, t.CreatedAt}
}
