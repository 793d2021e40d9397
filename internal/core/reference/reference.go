// Copyright (c) 2026 Hikari. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package reference manages the master data of the catalogue: genres,
authors, artists and publication formats.

All four kinds share one shape (id + unique name) and one lifecycle, so
the package models them as a single [Entry] type discriminated by [Kind]
instead of four parallel stacks.
*/
package reference

import "time"

// # Reference Kinds

// Kind discriminates the four reference tables.
type Kind string

const (
	KindGenre  Kind = "genre"
	KindAuthor Kind = "author"
	KindArtist Kind = "artist"
	KindFormat Kind = "format"
)

// Kinds lists every valid reference kind.
var Kinds = []Kind{KindGenre, KindAuthor, KindArtist, KindFormat}

// IsValid reports whether the kind names a known reference table.
func (kind Kind) IsValid() bool {
	switch kind {
	case KindGenre, KindAuthor, KindArtist, KindFormat:
		return true
	}
	return false
}

// # Entry

// Entry is one reference row: a genre, author, artist or format.
type Entry struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_date"`
}
