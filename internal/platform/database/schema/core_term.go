package schema

// CoreTermTable represents the 'core.term' table
type CoreTermTable struct {
	Table       string
	ID          string
	FacetID     string
	ParentID    string
	Name        string
	Description string
	SortOrder   string
}

// CoreTerm is the schema definition for core.term
var CoreTerm = CoreTermTable{
	Table:       "core.term",
	ID:          "id",
	FacetID:     "facetid",
	ParentID:    "parentid",
	Name:        "name",
	Description: "description",
	SortOrder:   "sortorder",
}

func (t CoreTermTable) Columns() []string {
	return []string{t.ID, t.FacetID, t.ParentID, t.Name, t.Description, t.SortOrder}
}
