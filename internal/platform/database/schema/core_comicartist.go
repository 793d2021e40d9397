package schema

// CoreComicArtistTable represents the 'core.comicartist' junction table
type CoreComicArtistTable struct {
	Table    string
	ComicID  string
	ArtistID string
}

// CoreComicArtist is the schema definition for core.comicartist
var CoreComicArtist = CoreComicArtistTable{
	Table:    "core.comicartist",
	ComicID:  "comicid",
	ArtistID: "artistid",
}
