package schema

// CoreTaxonomyTable represents the 'core.taxonomy' table
type CoreTaxonomyTable struct {
	Table string
	ID    string
	Name  string
}

// CoreTaxonomy is the schema definition for core.taxonomy
var CoreTaxonomy = CoreTaxonomyTable{
	Table: "core.taxonomy",
	ID:    "id",
	Name:  "name",
}

func (t CoreTaxonomyTable) Columns() []string {
	return []string{t.ID, t.Name}
}
