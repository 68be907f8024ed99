package schema

// CoreFacetTable represents the 'core.facet' table
type CoreFacetTable struct {
	Table       string
	ID          string
	TaxonomyID  string
	Name        string
	Description string
	SortOrder   string
}

// CoreFacet is the schema definition for core.facet
var CoreFacet = CoreFacetTable{
	Table:       "core.facet",
	ID:          "id",
	TaxonomyID:  "taxonomyid",
	Name:        "name",
	Description: "description",
	SortOrder:   "sortorder",
}

func (t CoreFacetTable) Columns() []string {
	return []string{t.ID, t.TaxonomyID, t.Name, t.Description, t.SortOrder}
}
