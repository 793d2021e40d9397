package schema

// CoreComicAuthorTable represents the 'core.comicauthor' junction table
type CoreComicAuthorTable struct {
	Table    string
	ComicID  string
	AuthorID string
}

// CoreComicAuthor is the schema definition for core.comicauthor
var CoreComicAuthor = CoreComicAuthorTable{
	Table:    "core.comicauthor",
	ComicID:  "comicid",
	AuthorID: "authorid",
}
