package schema

// CoreChapterTable represents the 'core.chapter' table
type CoreChapterTable struct {
	Table       string
	ID          string
	ComicID     string
	Number      string
	Title       string
	ReleaseDate string
	ViewCount   string
	VoteCount   string
	CreatedAt   string
	UpdatedAt   string
}

// CoreChapter is the schema definition for core.chapter
var CoreChapter = CoreChapterTable{
	Table:       "core.chapter",
	ID:          "id",
	ComicID:     "comicid",
	Number:      "chapternumber",
	Title:       "title",
	ReleaseDate: "releasedate",
	ViewCount:   "viewcount",
	VoteCount:   "votecount",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

func (t CoreChapterTable) Columns() []string {
	return []string{
		t.ID, t.ComicID, t.Number, t.Title, t.ReleaseDate,
		t.ViewCount, t.VoteCount, t.CreatedAt, t.UpdatedAt,
	}
}
