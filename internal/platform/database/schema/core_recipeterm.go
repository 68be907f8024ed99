package schema

// CoreRecipeTermTable represents the 'core.recipeterm' table
type CoreRecipeTermTable struct {
	Table    string
	ID       string
	RecipeID string
	TermID   string
}

// CoreRecipeTerm is the schema definition for core.recipeterm
var CoreRecipeTerm = CoreRecipeTermTable{
	Table:    "core.recipeterm",
	ID:       "id",
	RecipeID: "recipeid",
	TermID:   "termid",
}

func (t CoreRecipeTermTable) Columns() []string {
	return []string{t.ID, t.RecipeID, t.TermID}
}
