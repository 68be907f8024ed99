// Copyright (c) 2026 Recetario. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package taxonomy

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/recetario/internal/platform/database/schema"
	"github.com/taibuivan/recetario/internal/platform/dberr"
)

// # PostgreSQL Repository

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed taxonomy store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

var (
	termColumns = fmt.Sprintf("t.%s, t.%s, t.%s, t.%s, t.%s, t.%s",
		schema.CoreTerm.ID, schema.CoreTerm.FacetID, schema.CoreTerm.ParentID,
		schema.CoreTerm.Name, schema.CoreTerm.Description, schema.CoreTerm.SortOrder)

	siblingOrder = fmt.Sprintf("t.%s ASC, t.%s ASC, t.%s ASC",
		schema.CoreTerm.SortOrder, schema.CoreTerm.Name, schema.CoreTerm.ID)

	facetColumns = fmt.Sprintf("%s, %s, %s, %s, %s",
		schema.CoreFacet.ID, schema.CoreFacet.TaxonomyID, schema.CoreFacet.Name,
		schema.CoreFacet.Description, schema.CoreFacet.SortOrder)
)

// # Hierarchy Reads

/*
ChildrenOf returns the direct children of every parent in a single round trip.

Description: Uses = ANY($1) so a whole BFS layer is resolved at once.
*/
func (repository *PostgresRepository) ChildrenOf(context context.Context, parentIDs []int) (map[int][]int, error) {
	result := make(map[int][]int)
	if len(parentIDs) == 0 {
		return result, nil
	}

	query := fmt.Sprintf(`SELECT t.%s, t.%s FROM %s t WHERE t.%s = ANY($1) ORDER BY t.%s, %s`,
		schema.CoreTerm.ParentID, schema.CoreTerm.ID,
		schema.CoreTerm.Table,
		schema.CoreTerm.ParentID,
		schema.CoreTerm.ParentID, siblingOrder,
	)

	rows, err := repository.pool.Query(context, query, parentIDs)
	if err != nil {
		return nil, dberr.Wrap(err, "children_of")
	}
	defer rows.Close()

	for rows.Next() {
		var parentID, childID int
		if err := rows.Scan(&parentID, &childID); err != nil {
			return nil, dberr.Wrap(err, "scan_children_of")
		}
		result[parentID] = append(result[parentID], childID)
	}

	return result, dberr.Wrap(rows.Err(), "children_of")
}

// RootsOf returns the parentless terms of a facet.
func (repository *PostgresRepository) RootsOf(context context.Context, facetID int) ([]*Term, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s t WHERE t.%s = $1 AND t.%s IS NULL ORDER BY %s`,
		termColumns, schema.CoreTerm.Table,
		schema.CoreTerm.FacetID, schema.CoreTerm.ParentID,
		siblingOrder,
	)
	return repository.queryTerms(context, "roots_of", query, facetID)
}

// ChildTermsOf returns the full records of a term's direct children.
func (repository *PostgresRepository) ChildTermsOf(context context.Context, parentID int) ([]*Term, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s t WHERE t.%s = $1 ORDER BY %s`,
		termColumns, schema.CoreTerm.Table,
		schema.CoreTerm.ParentID,
		siblingOrder,
	)
	return repository.queryTerms(context, "child_terms_of", query, parentID)
}

// # Taxonomies

func (repository *PostgresRepository) ListTaxonomies(context context.Context) ([]*Taxonomy, error) {
	query := fmt.Sprintf(`SELECT %s, %s FROM %s ORDER BY %s ASC, %s ASC`,
		schema.CoreTaxonomy.ID, schema.CoreTaxonomy.Name, schema.CoreTaxonomy.Table,
		schema.CoreTaxonomy.Name, schema.CoreTaxonomy.ID)

	rows, err := repository.pool.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_taxonomies")
	}
	defer rows.Close()

	taxonomies := make([]*Taxonomy, 0)
	for rows.Next() {
		taxonomy := &Taxonomy{}
		if err := rows.Scan(&taxonomy.ID, &taxonomy.Name); err != nil {
			return nil, dberr.Wrap(err, "scan_taxonomy")
		}
		taxonomies = append(taxonomies, taxonomy)
	}

	return taxonomies, dberr.Wrap(rows.Err(), "list_taxonomies")
}

func (repository *PostgresRepository) GetTaxonomy(context context.Context, id int) (*Taxonomy, error) {
	query := fmt.Sprintf(`SELECT %s, %s FROM %s WHERE %s = $1`,
		schema.CoreTaxonomy.ID, schema.CoreTaxonomy.Name, schema.CoreTaxonomy.Table, schema.CoreTaxonomy.ID)

	taxonomy := &Taxonomy{}
	if err := repository.pool.QueryRow(context, query, id).Scan(&taxonomy.ID, &taxonomy.Name); err != nil {
		return nil, dberr.NotFound(err, "Taxonomy", "get_taxonomy")
	}
	return taxonomy, nil
}

func (repository *PostgresRepository) CreateTaxonomy(context context.Context, taxonomy *Taxonomy) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1) RETURNING %s`,
		schema.CoreTaxonomy.Table, schema.CoreTaxonomy.Name, schema.CoreTaxonomy.ID)

	return dberr.Wrap(repository.pool.QueryRow(context, query, taxonomy.Name).Scan(&taxonomy.ID), "create_taxonomy")
}

func (repository *PostgresRepository) UpdateTaxonomy(context context.Context, taxonomy *Taxonomy) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2 WHERE %s = $1`,
		schema.CoreTaxonomy.Table, schema.CoreTaxonomy.Name, schema.CoreTaxonomy.ID)

	return repository.execOne(context, "Taxonomy", "update_taxonomy", query, taxonomy.ID, taxonomy.Name)
}

func (repository *PostgresRepository) DeleteTaxonomy(context context.Context, id int) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CoreTaxonomy.Table, schema.CoreTaxonomy.ID)
	return repository.execOne(context, "Taxonomy", "delete_taxonomy", query, id)
}

// # Facets

func (repository *PostgresRepository) ListFacets(context context.Context, taxonomyID *int) ([]*Facet, error) {
	var (
		queryBuilder strings.Builder
		args         []any
	)

	queryBuilder.WriteString(fmt.Sprintf(`SELECT %s FROM %s`, facetColumns, schema.CoreFacet.Table))
	if taxonomyID != nil {
		queryBuilder.WriteString(fmt.Sprintf(` WHERE %s = $1`, schema.CoreFacet.TaxonomyID))
		args = append(args, *taxonomyID)
	}
	queryBuilder.WriteString(fmt.Sprintf(` ORDER BY %s ASC, %s ASC, %s ASC`,
		schema.CoreFacet.SortOrder, schema.CoreFacet.Name, schema.CoreFacet.ID))

	rows, err := repository.pool.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, dberr.Wrap(err, "list_facets")
	}
	defer rows.Close()

	facets := make([]*Facet, 0)
	for rows.Next() {
		facet, err := scanFacet(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_facet")
		}
		facets = append(facets, facet)
	}

	return facets, dberr.Wrap(rows.Err(), "list_facets")
}

func (repository *PostgresRepository) GetFacet(context context.Context, id int) (*Facet, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, facetColumns, schema.CoreFacet.Table, schema.CoreFacet.ID)

	facet, err := scanFacet(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.NotFound(err, "Facet", "get_facet")
	}
	return facet, nil
}

func (repository *PostgresRepository) CreateFacet(context context.Context, facet *Facet) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s) VALUES ($1, $2, $3, $4) RETURNING %s`,
		schema.CoreFacet.Table,
		schema.CoreFacet.TaxonomyID, schema.CoreFacet.Name, schema.CoreFacet.Description, schema.CoreFacet.SortOrder,
		schema.CoreFacet.ID)

	err := repository.pool.QueryRow(context, query, facet.TaxonomyID, facet.Name, facet.Description, facet.Order).Scan(&facet.ID)
	return dberr.Wrap(err, "create_facet")
}

func (repository *PostgresRepository) UpdateFacet(context context.Context, facet *Facet) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3, %s = $4, %s = $5 WHERE %s = $1`,
		schema.CoreFacet.Table,
		schema.CoreFacet.TaxonomyID, schema.CoreFacet.Name, schema.CoreFacet.Description, schema.CoreFacet.SortOrder,
		schema.CoreFacet.ID)

	return repository.execOne(context, "Facet", "update_facet", query,
		facet.ID, facet.TaxonomyID, facet.Name, facet.Description, facet.Order)
}

func (repository *PostgresRepository) DeleteFacet(context context.Context, id int) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CoreFacet.Table, schema.CoreFacet.ID)
	return repository.execOne(context, "Facet", "delete_facet", query, id)
}

// # Terms

/*
ListTerms returns terms matching filter.

Description: Terms are ordered by their facet's (order, name) first, which
needs a join on core.facet, then roots before children, then sibling order.
*/
func (repository *PostgresRepository) ListTerms(context context.Context, filter TermFilter) ([]*Term, error) {
	var (
		queryBuilder strings.Builder
		args         []any
		conditions   []string
	)

	queryBuilder.WriteString(fmt.Sprintf(`SELECT %s FROM %s t JOIN %s f ON f.%s = t.%s`,
		termColumns, schema.CoreTerm.Table, schema.CoreFacet.Table, schema.CoreFacet.ID, schema.CoreTerm.FacetID))

	if filter.FacetID != nil {
		args = append(args, *filter.FacetID)
		conditions = append(conditions, fmt.Sprintf("t.%s = $%d", schema.CoreTerm.FacetID, len(args)))
	}

	if filter.ParentID != nil {
		args = append(args, *filter.ParentID)
		conditions = append(conditions, fmt.Sprintf("t.%s = $%d", schema.CoreTerm.ParentID, len(args)))
	}

	if filter.RootsOnly {
		conditions = append(conditions, fmt.Sprintf("t.%s IS NULL", schema.CoreTerm.ParentID))
	}

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}

	queryBuilder.WriteString(fmt.Sprintf(` ORDER BY f.%s ASC, f.%s ASC, f.%s ASC, t.%s ASC NULLS FIRST, %s`,
		schema.CoreFacet.SortOrder, schema.CoreFacet.Name, schema.CoreFacet.ID,
		schema.CoreTerm.ParentID, siblingOrder))

	return repository.queryTerms(context, "list_terms", queryBuilder.String(), args...)
}

func (repository *PostgresRepository) GetTerm(context context.Context, id int) (*Term, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s t WHERE t.%s = $1`, termColumns, schema.CoreTerm.Table, schema.CoreTerm.ID)

	term, err := scanTerm(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.NotFound(err, "Term", "get_term")
	}
	return term, nil
}

func (repository *PostgresRepository) CreateTerm(context context.Context, term *Term) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s, %s) VALUES ($1, $2, $3, $4, $5) RETURNING %s`,
		schema.CoreTerm.Table,
		schema.CoreTerm.FacetID, schema.CoreTerm.ParentID, schema.CoreTerm.Name, schema.CoreTerm.Description, schema.CoreTerm.SortOrder,
		schema.CoreTerm.ID)

	err := repository.pool.QueryRow(context, query, term.FacetID, term.ParentID, term.Name, term.Description, term.Order).Scan(&term.ID)
	return dberr.Wrap(err, "create_term")
}

func (repository *PostgresRepository) UpdateTerm(context context.Context, term *Term) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3, %s = $4, %s = $5 WHERE %s = $1`,
		schema.CoreTerm.Table,
		schema.CoreTerm.ParentID, schema.CoreTerm.Name, schema.CoreTerm.Description, schema.CoreTerm.SortOrder,
		schema.CoreTerm.ID)

	return repository.execOne(context, "Term", "update_term", query,
		term.ID, term.ParentID, term.Name, term.Description, term.Order)
}

func (repository *PostgresRepository) DeleteTerm(context context.Context, id int) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CoreTerm.Table, schema.CoreTerm.ID)
	return repository.execOne(context, "Term", "delete_term", query, id)
}

// # Helpers

// execOne runs a statement that must touch exactly one row.
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

func (repository *PostgresRepository) queryTerms(context context.Context, action, query string, args ...any) ([]*Term, error) {
	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, action)
	}
	defer rows.Close()

	terms := make([]*Term, 0)
	for rows.Next() {
		term, err := scanTerm(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_term")
		}
		terms = append(terms, term)
	}

	return terms, dberr.Wrap(rows.Err(), action)
}

func scanTerm(row pgx.Row) (*Term, error) {
	term := &Term{}
	err := row.Scan(&term.ID, &term.FacetID, &term.ParentID, &term.Name, &term.Description, &term.Order)
	return term, err
}

func scanFacet(row pgx.Row) (*Facet, error) {
	facet := &Facet{}
	err := row.Scan(&facet.ID, &facet.TaxonomyID, &facet.Name, &facet.Description, &facet.Order)
	return facet, err
}
