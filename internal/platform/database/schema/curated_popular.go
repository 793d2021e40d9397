package schema

// CuratedPopularTable represents the 'curated.popular' table
type CuratedPopularTable struct {
	Table     string
	ID        string
	ComicID   string
	Window    string
	CreatedAt string
}

// CuratedPopular is the schema definition for curated.popular
var CuratedPopular = CuratedPopularTable{
	Table:     "curated.popular",
	ID:        "id",
	ComicID:   "comicid",
	Window:    "windowtype",
	CreatedAt: "createdat",
}

func (t CuratedPopularTable) Columns() []string {
	return []string{t.ID, t.ComicID, t.Window, t.CreatedAt}
}
