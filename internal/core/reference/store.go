// Copyright (c) 2026 Hikari. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reference

import "context"

// # Reference Data Access

// Repository defines the data access contract for reference entries.
type Repository interface {

	/*
		List returns every entry of a kind, sorted by name.

		Parameters:
		  - context: context.Context
		  - kind: Kind (Which reference table to read)

		Returns:
		  - []*Entry: All entries of the kind
		  - error: Storage failures
	*/
	List(context context.Context, kind Kind) ([]*Entry, error)

	/*
		Create persists a new entry.

		Returns:
		  - error: apperr.Conflict on a duplicate name
	*/
	Create(context context.Context, kind Kind, entry *Entry) error

	/*
		Delete removes an entry. Junction rows referencing it cascade.

		Returns:
		  - error: apperr.NotFound if missing
	*/
	Delete(context context.Context, kind Kind, id string) error
}
