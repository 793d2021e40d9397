package schema

// CoreComicGenreTable represents the 'core.comicgenre' junction table
type CoreComicGenreTable struct {
	Table   string
	ComicID string
	GenreID string
}

// CoreComicGenre is the schema definition for core.comicgenre
var CoreComicGenre = CoreComicGenreTable{
	Table:   "core.comicgenre",
	ComicID: "comicid",
	GenreID: "genreid",
}
