// Copyright (c) 2026 Hikari. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package stats

import "context"

// # Repository Interface

/*
Repository defines the counting operations behind the dashboard.
*/
type Repository interface {
	/*
		CountRows returns the row count of one table.

		Parameters:
		  - context: context.Context
		  - table: string (Schema-qualified table name from the schema package)
	*/
	CountRows(context context.Context, table string) (int64, error)
}
