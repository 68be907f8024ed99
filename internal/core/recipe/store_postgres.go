// Copyright (c) 2026 Recetario. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package recipe

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/recetario/internal/platform/database/schema"
	"github.com/taibuivan/recetario/internal/platform/dberr"
	"github.com/taibuivan/recetario/internal/platform/postgres"
)

// # PostgreSQL Repository

// PostgresRepository implements [Repository] using pgx.
//
// # Query Strategy
//
//   - Text: ILIKE over the four text columns, wildcards in the input escaped.
//   - Terms: EXISTS over core.recipeterm with termid = ANY($n), so a recipe
//     matching several terms is returned once.
//   - Window Function: COUNT(*) OVER() yields the total without a second query.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed recipe store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

var recipeColumns = fmt.Sprintf("r.%s, r.%s, r.%s, r.%s, r.%s, r.%s, r.%s, r.%s, r.%s",
	schema.CoreRecipe.ID, schema.CoreRecipe.Title, schema.CoreRecipe.Slug,
	schema.CoreRecipe.Description, schema.CoreRecipe.Instructions, schema.CoreRecipe.IngredientsText,
	schema.CoreRecipe.Image, schema.CoreRecipe.CreatedAt, schema.CoreRecipe.UpdatedAt)

// insertTermsQuery assigns $2 to recipe $1 WITH ORDINALITY so the identity
// column, and therefore [PostgresRepository.TermsOf], follows the array order.
var insertTermsQuery = fmt.Sprintf(`
	INSERT INTO %s (%s, %s)
	SELECT $1, u.termid FROM unnest($2::int[]) WITH ORDINALITY AS u(termid, position)
	ORDER BY u.position`,
	schema.CoreRecipeTerm.Table, schema.CoreRecipeTerm.RecipeID, schema.CoreRecipeTerm.TermID)

// likeEscaper neutralises LIKE metacharacters in user input.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// # Recipe Lookups

func (repository *PostgresRepository) List(context context.Context, criteria Criteria, limit, offset int) ([]*Recipe, int, error) {

	// Query build initialization
	var queryBuilder strings.Builder
	var args []any
	argID := 1

	queryBuilder.WriteString(fmt.Sprintf(`SELECT %s, COUNT(*) OVER() AS total_count FROM %s r WHERE TRUE`,
		recipeColumns, schema.CoreRecipe.Table))

	// Text predicate
	if criteria.HasText() {
		queryBuilder.WriteString(fmt.Sprintf(
			` AND (r.%[1]s ILIKE $%[5]d OR r.%[2]s ILIKE $%[5]d OR r.%[3]s ILIKE $%[5]d OR r.%[4]s ILIKE $%[5]d)`,
			schema.CoreRecipe.Title, schema.CoreRecipe.Description,
			schema.CoreRecipe.IngredientsText, schema.CoreRecipe.Instructions, argID))
		args = append(args, "%"+likeEscaper.Replace(criteria.Text)+"%")
		argID++
	}

	// Term predicate
	if criteria.HasTerms() {
		queryBuilder.WriteString(fmt.Sprintf(` AND EXISTS (SELECT 1 FROM %s rt WHERE rt.%s = r.%s AND rt.%s = ANY($%d))`,
			schema.CoreRecipeTerm.Table, schema.CoreRecipeTerm.RecipeID, schema.CoreRecipe.ID,
			schema.CoreRecipeTerm.TermID, argID))
		args = append(args, criteria.Terms.Sorted())
		argID++
	}

	// Ordering and pagination
	queryBuilder.WriteString(fmt.Sprintf(` ORDER BY r.%s ASC LIMIT $%d OFFSET $%d`, schema.CoreRecipe.ID, argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.pool.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_recipes")
	}
	defer rows.Close()

	recipes := make([]*Recipe, 0)
	var totalCount int

	for rows.Next() {
		recipe := &Recipe{}
		if err := rows.Scan(
			&recipe.ID, &recipe.Title, &recipe.Slug,
			&recipe.Description, &recipe.Instructions, &recipe.IngredientsText,
			&recipe.Image, &recipe.CreatedAt, &recipe.UpdatedAt,
			&totalCount,
		); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_recipe")
		}
		recipes = append(recipes, recipe)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "list_recipes")
	}

	return recipes, totalCount, nil
}

func (repository *PostgresRepository) FindBySlug(context context.Context, slug string) (*Recipe, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s r WHERE r.%s = $1`, recipeColumns, schema.CoreRecipe.Table, schema.CoreRecipe.Slug)

	recipe, err := scanRecipe(repository.pool.QueryRow(context, query, slug))
	if err != nil {
		return nil, dberr.NotFound(err, "Recipe", "find_recipe_by_slug")
	}
	return recipe, nil
}

func (repository *PostgresRepository) SlugExists(context context.Context, slug string) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)`, schema.CoreRecipe.Table, schema.CoreRecipe.Slug)

	var exists bool
	if err := repository.pool.QueryRow(context, query, slug).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "slug_exists")
	}
	return exists, nil
}

// # Recipe Management

func (repository *PostgresRepository) Create(context context.Context, recipe *Recipe, termIDs []int) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING %s, %s, %s`,
		schema.CoreRecipe.Table,
		schema.CoreRecipe.Title, schema.CoreRecipe.Slug, schema.CoreRecipe.Description,
		schema.CoreRecipe.Instructions, schema.CoreRecipe.IngredientsText, schema.CoreRecipe.Image,
		schema.CoreRecipe.ID, schema.CoreRecipe.CreatedAt, schema.CoreRecipe.UpdatedAt,
	)

	err := postgres.InTx(context, repository.pool, func(tx pgx.Tx) error {
		err := tx.QueryRow(context, query,
			recipe.Title, recipe.Slug, recipe.Description,
			recipe.Instructions, recipe.IngredientsText, recipe.Image,
		).Scan(&recipe.ID, &recipe.CreatedAt, &recipe.UpdatedAt)
		if err != nil || len(termIDs) == 0 {
			return err
		}
		_, err = tx.Exec(context, insertTermsQuery, recipe.ID, termIDs)
		return err
	})
	if err != nil {
		recipe.ID = 0
	}

	return dberr.Wrap(err, "create_recipe")
}

func (repository *PostgresRepository) Update(context context.Context, recipe *Recipe) error {
	query := fmt.Sprintf(`
		UPDATE %s SET %s = $2, %s = $3, %s = $4, %s = $5, %s = now()
		WHERE %s = $1
		RETURNING %s`,
		schema.CoreRecipe.Table,
		schema.CoreRecipe.Title, schema.CoreRecipe.Description,
		schema.CoreRecipe.Instructions, schema.CoreRecipe.IngredientsText, schema.CoreRecipe.UpdatedAt,
		schema.CoreRecipe.ID,
		schema.CoreRecipe.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		recipe.ID, recipe.Title, recipe.Description, recipe.Instructions, recipe.IngredientsText,
	).Scan(&recipe.UpdatedAt)

	return dberr.NotFound(err, "Recipe", "update_recipe")
}

func (repository *PostgresRepository) Delete(context context.Context, id int) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CoreRecipe.Table, schema.CoreRecipe.ID)
	return repository.execOne(context, "Recipe", "delete_recipe", query, id)
}

func (repository *PostgresRepository) SetImage(context context.Context, id int, key string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = now() WHERE %s = $1`,
		schema.CoreRecipe.Table, schema.CoreRecipe.Image, schema.CoreRecipe.UpdatedAt, schema.CoreRecipe.ID)
	return repository.execOne(context, "Recipe", "set_recipe_image", query, id, key)
}

// # Term Assignments

func (repository *PostgresRepository) TermsOf(context context.Context, recipeID int) ([]AssignedTerm, error) {
	query := fmt.Sprintf(`
		SELECT t.%s, t.%s, f.%s, f.%s
		FROM %s rt
		JOIN %s t ON t.%s = rt.%s
		JOIN %s f ON f.%s = t.%s
		WHERE rt.%s = $1
		ORDER BY rt.%s ASC`,
		schema.CoreTerm.ID, schema.CoreTerm.Name, schema.CoreFacet.ID, schema.CoreFacet.Name,
		schema.CoreRecipeTerm.Table,
		schema.CoreTerm.Table, schema.CoreTerm.ID, schema.CoreRecipeTerm.TermID,
		schema.CoreFacet.Table, schema.CoreFacet.ID, schema.CoreTerm.FacetID,
		schema.CoreRecipeTerm.RecipeID,
		schema.CoreRecipeTerm.ID,
	)

	rows, err := repository.pool.Query(context, query, recipeID)
	if err != nil {
		return nil, dberr.Wrap(err, "recipe_terms")
	}
	defer rows.Close()

	terms := make([]AssignedTerm, 0)
	for rows.Next() {
		var term AssignedTerm
		if err := rows.Scan(&term.ID, &term.Name, &term.FacetID, &term.FacetName); err != nil {
			return nil, dberr.Wrap(err, "scan_recipe_term")
		}
		terms = append(terms, term)
	}

	return terms, dberr.Wrap(rows.Err(), "recipe_terms")
}

// ReplaceTerms swaps the whole assignment set in one transaction.
func (repository *PostgresRepository) ReplaceTerms(context context.Context, recipeID int, termIDs []int) error {
	deleteQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CoreRecipeTerm.Table, schema.CoreRecipeTerm.RecipeID)
	err := postgres.InTx(context, repository.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(context, deleteQuery, recipeID); err != nil {
			return err
		}
		if len(termIDs) == 0 {
			return nil
		}
		_, err := tx.Exec(context, insertTermsQuery, recipeID, termIDs)
		return err
	})

	return dberr.Wrap(err, "replace_recipe_terms")
}

func (repository *PostgresRepository) AddTerm(context context.Context, recipeID, termID int) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2)`,
		schema.CoreRecipeTerm.Table, schema.CoreRecipeTerm.RecipeID, schema.CoreRecipeTerm.TermID)

	_, err := repository.pool.Exec(context, query, recipeID, termID)
	return dberr.Wrap(err, "add_recipe_term")
}

func (repository *PostgresRepository) RemoveTerm(context context.Context, recipeID, termID int) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.CoreRecipeTerm.Table, schema.CoreRecipeTerm.RecipeID, schema.CoreRecipeTerm.TermID)
	return repository.execOne(context, "Recipe term", "remove_recipe_term", query, recipeID, termID)
}

// # Helpers

func (repository *PostgresRepository) execOne(context context.Context, resource, action, query string, args ...any) error {
	tag, err := repository.pool.Exec(context, query, args...)
	if err != nil {
		return dberr.Wrap(err, action)
	}
	if tag.RowsAffected() == 0 {
		return dberr.NotFound(pgx.ErrNoRows, resource, action)
	}
	return nil
}

func scanRecipe(row pgx.Row) (*Recipe, error) {
	recipe := &Recipe{}
	err := row.Scan(
		&recipe.ID, &recipe.Title, &recipe.Slug,
		&recipe.Description, &recipe.Instructions, &recipe.IngredientsText,
		&recipe.Image, &recipe.CreatedAt, &recipe.UpdatedAt,
	)
	return recipe, err
}
