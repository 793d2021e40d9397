package schema

// CoreFormatTable represents the 'core.format' table
type CoreFormatTable struct {
	Table     string
	ID        string
	Name      string
	CreatedAt string
}

// CoreFormat is the schema definition for core.format
var CoreFormat = CoreFormatTable{
	Table:     "core.format",
	ID:        "id",
	Name:      "name",
	CreatedAt: "createdat",
}

func (t CoreFormatTable) Columns() []string {
	return []string{t.ID, t.Name, t.CreatedAt}
}
