package schema

// CuratedRecommendedTable represents the 'curated.recommended' table
type CuratedRecommendedTable struct {
	Table     string
	ID        string
	ComicID   string
	CreatedAt string
}

// CuratedRecommended is the schema definition for curated.recommended
var CuratedRecommended = CuratedRecommendedTable{
	Table:     "curated.recommended",
	ID:        "id",
	ComicID:   "comicid",
	CreatedAt: "createdat",
}

func (t CuratedRecommendedTable) Columns() []string {
	return []string{t.ID, t.ComicID, t.CreatedAt}
}
