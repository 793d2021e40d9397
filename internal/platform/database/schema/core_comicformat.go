package schema

// CoreComicFormatTable represents the 'core.comicformat' junction table
type CoreComicFormatTable struct {
	Table    string
	ComicID  string
	FormatID string
}

// CoreComicFormat is the schema definition for core.comicformat
var CoreComicFormat = CoreComicFormatTable{
	Table:    "core.comicformat",
	ComicID:  "comicid",
	FormatID: "formatid",
}
