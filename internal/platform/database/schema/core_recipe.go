package schema

// CoreRecipeTable represents the 'core.recipe' table
type CoreRecipeTable struct {
	Table           string
	ID              string
	Title           string
	Slug            string
	Description     string
	Instructions    string
	IngredientsText string
	Image           string
	CreatedAt       string
	UpdatedAt       string
}

// CoreRecipe is the schema definition for core.recipe
var CoreRecipe = CoreRecipeTable{
	Table:           "core.recipe",
	ID:              "id",
	Title:           "title",
	Slug:            "slug",
	Description:     "description",
	Instructions:    "instructions",
	IngredientsText: "ingredientstext",
	Image:           "image",
	CreatedAt:       "createdat",
	UpdatedAt:       "updatedat",
}

func (t CoreRecipeTable) Columns() []string {
	return []string{t.ID, t.Title, t.Slug, t.Description, t.Instructions, t.IngredientsText, t.Image, t.CreatedAt, t.UpdatedAt}
}
