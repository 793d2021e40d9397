package schema

// CoreArtistTable represents the 'core.artist' table
type CoreArtistTable struct {
	Table     string
	ID        string
	Name      string
	CreatedAt string
}

// CoreArtist is the schema definition for core.artist
var CoreArtist = CoreArtistTable{
	Table:     "core.artist",
	ID:        "id",
	Name:      "name",
	CreatedAt: "createdat",
}

func (t CoreArtistTable) Columns() []string {
	return []string{t.ID, t.Name, t.CreatedAt}
}
