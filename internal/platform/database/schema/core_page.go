package schema

// CorePageTable represents the 'core.page' table
type CorePageTable struct {
	Table     string
	ID        string
	ChapterID string
	Number    string
	ImageURL  string
	CreatedAt string
}

// CorePage is the schema definition for core.page
var CorePage = CorePageTable{
	Table:     "core.page",
	ID:        "id",
	ChapterID: "chapterid",
	Number:    "pagenumber",
	ImageURL:  "imageurl",
	CreatedAt: "createdat",
}

func (t CorePageTable) Columns() []string {
	return []string{t.ID, t.ChapterID, t.Number, t.ImageURL, t.CreatedAt}
}
