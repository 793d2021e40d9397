package schema

// CoreComicTable represents the 'core.comic' table
type CoreComicTable struct {
	Table         string
	ID            string
	Title         string
	AltTitle      string
	Slug          string
	Description   string
	CoverURL      string
	Country       string
	Status        string
	Year          string
	ViewCount     string
	VoteCount     string
	BookmarkCount string
	Rank          string
	CreatedAt     string
	UpdatedAt     string
}

// CoreComic is the schema definition for core.comic
var CoreComic = CoreComicTable{
	Table:         "core.comic",
	ID:            "id",
	Title:         "title",
	AltTitle:      "titlealt",
	Slug:          "slug",
	Description:   "description",
	CoverURL:      "coverurl",
	Country:       "country",
	Status:        "status",
	Year:          "year",
	ViewCount:     "viewcount",
	VoteCount:     "votecount",
	BookmarkCount: "bookmarkcount",
	Rank:          "rank",
	CreatedAt:     "createdat",
	UpdatedAt:     "updatedat",
}

func (t CoreComicTable) Columns() []string {
	return []string{
		t.ID, t.Title, t.AltTitle, t.Slug, t.Description, t.CoverURL,
		t.Country, t.Status, t.Year, t.ViewCount, t.VoteCount,
		t.BookmarkCount, t.Rank, t.CreatedAt, t.UpdatedAt,
	}
}
