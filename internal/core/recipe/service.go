// Copyright (c) 2026 Recetario. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package recipe

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/taibuivan/recetario/internal/platform/apperr"
	"github.com/taibuivan/recetario/internal/platform/metrics"
	"github.com/taibuivan/recetario/internal/platform/objectstore"
	"github.com/taibuivan/recetario/internal/platform/validate"
	"github.com/taibuivan/recetario/pkg/pagination"
	"github.com/taibuivan/recetario/pkg/slug"
)

// slugAttempts bounds retries when a concurrent create takes the derived slug first.
const slugAttempts = 3

// # Service Layer

// Service orchestrates recipe listing, editing, term assignment and images.
type Service struct {
	repo     Repository
	pipeline *FilterPipeline
	images   objectstore.Store
	logger   *slog.Logger

	now   func() time.Time
	token func() string
}

// Option customises a [Service].
type Option func(*Service)

// WithClock replaces the time source and random token used for image keys.
func WithClock(now func() time.Time, token func() string) Option {
	return func(service *Service) {
		service.now = now
		service.token = token
	}
}

// NewService constructs a recipe [Service].
func NewService(repo Repository, expander TermExpander, images objectstore.Store, logger *slog.Logger, opts ...Option) *Service {
	service := &Service{
		repo:     repo,
		pipeline: NewFilterPipeline(expander),
		images:   images,
		logger:   logger,
		now:      time.Now,
		token:    randomToken,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// # Recipe Lookups

/*
List returns one page of recipes matching text and the subtrees of rootIDs.

Parameters:
  - context: context.Context
  - text: string (Case-insensitive substring of title, description, ingredients or instructions)
  - rootIDs: []int (Terms to filter by; descendants included)
  - page: pagination.Params

Returns:
  - []*Recipe: The page, ordered by id
  - pagination.Meta: Page metadata
  - error: Storage failures
*/
func (service *Service) List(context context.Context, text string, rootIDs []int, page pagination.Params) ([]*Recipe, pagination.Meta, error) {
	criteria, err := service.pipeline.Build(context, text, rootIDs)
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	recipes, total, err := service.repo.List(context, criteria, page.Limit, page.Offset())
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	for _, recipe := range recipes {
		service.present(recipe)
	}

	return recipes, pagination.NewMeta(page.Page, page.Limit, total), nil
}

// Get fetches a recipe by slug.
func (service *Service) Get(context context.Context, slug string) (*Recipe, error) {
	recipe, err := service.repo.FindBySlug(context, slug)
	if err != nil {
		return nil, err
	}
	return service.present(recipe), nil
}

/*
Detail fetches a recipe with its terms grouped by facet.

Returns:
  - *Detail: Recipe plus facet groups in first-seen order
  - error: NOT_FOUND for an unknown slug
*/
func (service *Service) Detail(context context.Context, slug string) (*Detail, error) {
	recipe, err := service.Get(context, slug)
	if err != nil {
		return nil, err
	}
	return service.detail(context, recipe)
}

func (service *Service) detail(context context.Context, recipe *Recipe) (*Detail, error) {
	terms, err := service.repo.TermsOf(context, recipe.ID)
	if err != nil {
		return nil, err
	}
	return &Detail{Recipe: recipe, FacetTerms: GroupByFacet(terms)}, nil
}

// # Recipe Management

/*
Create validates a recipe and stores it under a unique slug, together with
its initial terms.

Description: The slug is derived from the title ("pastel", "pastel-1", ...).
If another request claims the same slug between the existence check and the
insert, derivation is retried. The recipe and its terms are written in one
transaction, so an unknown term leaves no recipe behind.

Returns:
  - error: VALIDATION_ERROR for bad fields, UNPROCESSABLE for an unknown
    term, CONFLICT if every attempt collided
*/
func (service *Service) Create(context context.Context, recipe *Recipe, termIDs ...int) error {
	if err := validateRecipe(recipe); err != nil {
		return err
	}
	if err := (&validate.Validator{}).PositiveIDs(FieldTermIDs, termIDs).Err(); err != nil {
		return err
	}
	termIDs = dedupe(termIDs)

	var err error
	for attempt := 0; attempt < slugAttempts; attempt++ {
		recipe.Slug, err = service.uniqueSlug(context, recipe.Title)
		if err != nil {
			return err
		}

		err = service.repo.Create(context, recipe, termIDs)
		if !apperr.HasCode(err, apperr.CodeConflict) {
			break
		}

		service.logger.Warn("recipe_slug_collision",
			slog.String("slug", recipe.Slug),
			slog.Int("attempt", attempt+1),
		)
	}
	if err != nil {
		return err
	}

	service.logger.Info("recipe_created",
		slog.Int("recipe_id", recipe.ID),
		slog.String("slug", recipe.Slug),
		slog.Int("terms", len(termIDs)),
	)
	service.present(recipe)
	return nil
}

// uniqueSlug returns the first free candidate of base, base-1, base-2, ...
func (service *Service) uniqueSlug(context context.Context, title string) (string, error) {
	base := slug.FromOr(title, DefaultSlug)

	for n := 0; ; n++ {
		candidate := slug.WithSuffix(base, n)

		exists, err := service.repo.SlugExists(context, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}
}

/*
Update applies the non-nil fields of changes. The slug stays as created.
*/
func (service *Service) Update(context context.Context, slug string, changes Update) (*Recipe, error) {
	recipe, err := service.repo.FindBySlug(context, slug)
	if err != nil {
		return nil, err
	}

	if changes.Title != nil {
		recipe.Title = *changes.Title
	}
	if changes.Description != nil {
		recipe.Description = *changes.Description
	}
	if changes.Instructions != nil {
		recipe.Instructions = *changes.Instructions
	}
	if changes.IngredientsText != nil {
		recipe.IngredientsText = *changes.IngredientsText
	}

	if err := validateRecipe(recipe); err != nil {
		return nil, err
	}

	if err := service.repo.Update(context, recipe); err != nil {
		return nil, err
	}

	service.logger.Info("recipe_updated", slog.Int("recipe_id", recipe.ID))
	return service.present(recipe), nil
}

// Delete removes a recipe and, best effort, its stored image.
func (service *Service) Delete(context context.Context, slug string) error {
	recipe, err := service.repo.FindBySlug(context, slug)
	if err != nil {
		return err
	}

	if err := service.repo.Delete(context, recipe.ID); err != nil {
		return err
	}

	service.removeImage(context, recipe.Image)
	service.logger.Warn("recipe_deleted", slog.Int("recipe_id", recipe.ID), slog.String("slug", slug))
	return nil
}

// # Term Assignments

/*
ReplaceTerms sets the recipe's terms to termIDs, dropping duplicates but
keeping first-seen order.

Returns:
  - *Detail: The recipe with its new facet groups
  - error: VALIDATION_ERROR for non-positive ids, UNPROCESSABLE for unknown terms
*/
func (service *Service) ReplaceTerms(context context.Context, slug string, termIDs []int) (*Detail, error) {
	if err := (&validate.Validator{}).PositiveIDs(FieldTermIDs, termIDs).Err(); err != nil {
		return nil, err
	}

	recipe, err := service.Get(context, slug)
	if err != nil {
		return nil, err
	}

	if err := service.repo.ReplaceTerms(context, recipe.ID, dedupe(termIDs)); err != nil {
		return nil, err
	}

	service.logger.Info("recipe_terms_replaced",
		slog.Int("recipe_id", recipe.ID),
		slog.Int("terms", len(termIDs)),
	)
	return service.detail(context, recipe)
}

// AddTerm assigns one term. Assigning it twice is a CONFLICT.
func (service *Service) AddTerm(context context.Context, slug string, termID int) (*Detail, error) {
	if err := (&validate.Validator{}).Positive(FieldTermID, termID).Err(); err != nil {
		return nil, err
	}

	recipe, err := service.Get(context, slug)
	if err != nil {
		return nil, err
	}

	if err := service.repo.AddTerm(context, recipe.ID, termID); err != nil {
		if apperr.HasCode(err, apperr.CodeConflict) {
			return nil, apperr.Conflict("Term is already assigned to this recipe").WithCause(err)
		}
		return nil, err
	}

	return service.detail(context, recipe)
}

// RemoveTerm unassigns one term.
func (service *Service) RemoveTerm(context context.Context, slug string, termID int) error {
	recipe, err := service.repo.FindBySlug(context, slug)
	if err != nil {
		return err
	}
	return service.repo.RemoveTerm(context, recipe.ID, termID)
}

// # Images

/*
UploadImage stores body as the recipe's image and replaces the previous one.

Parameters:
  - context: context.Context
  - slug: string
  - filename: string (Client file name; only its extension is kept)
  - body: io.ReadSeeker
  - size: int64

Returns:
  - *Recipe: The recipe with its new image URL
  - error: VALIDATION_ERROR when the content is not an image
*/
func (service *Service) UploadImage(context context.Context, slug, filename string, body io.ReadSeeker, size int64) (*Recipe, error) {
	recipe, err := service.repo.FindBySlug(context, slug)
	if err != nil {
		return nil, err
	}

	contentType, err := sniffImage(body)
	if err != nil {
		return nil, err
	}
	previous := recipe.Image

	// 1. Store the object under a fresh key
	key := ImageKey(recipe, filename, service.now(), service.token())
	err = service.images.Put(context, key, body, size, contentType)
	metrics.RecordImageUpload(service.images.Name(), err)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	// 2. Point the recipe at it, undoing the upload if that fails
	if err := service.repo.SetImage(context, recipe.ID, key); err != nil {
		service.removeImage(context, key)
		return nil, err
	}

	// 3. Drop the previous object
	recipe.Image = key
	service.removeImage(context, previous)

	service.logger.Info("recipe_image_uploaded",
		slog.Int("recipe_id", recipe.ID),
		slog.String("key", key),
		slog.String("driver", service.images.Name()),
	)
	return service.present(recipe), nil
}

// sniffImage detects the content type from the first bytes and rewinds body.
func sniffImage(body io.ReadSeeker) (string, error) {
	head := make([]byte, 512)
	n, err := io.ReadFull(body, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", apperr.Internal(fmt.Errorf("read upload: %w", err))
	}

	if _, err := body.Seek(0, io.SeekStart); err != nil {
		return "", apperr.Internal(fmt.Errorf("rewind upload: %w", err))
	}

	contentType := http.DetectContentType(head[:n])
	if !strings.HasPrefix(contentType, "image/") {
		return "", validate.FieldError(FieldImage, "File must be an image")
	}
	return contentType, nil
}

func (service *Service) removeImage(context context.Context, key string) {
	if key == "" {
		return
	}
	if err := service.images.Delete(context, key); err != nil {
		service.logger.Warn("recipe_image_cleanup_failed", slog.String("key", key), slog.Any("error", err))
	}
}

// present resolves the public image URL.
func (service *Service) present(recipe *Recipe) *Recipe {
	recipe.ImageURL = ""
	if recipe.Image != "" {
		recipe.ImageURL = service.images.URL(recipe.Image)
	}
	return recipe
}

// # Validation

func validateRecipe(recipe *Recipe) error {
	validator := &validate.Validator{}
	validator.Required(FieldTitle, recipe.Title).MaxLen(FieldTitle, recipe.Title, MaxTitleLength)
	return validator.Err()
}

func dedupe(ids []int) []int {
	seen := make(map[int]struct{}, len(ids))
	result := make([]int, 0, len(ids))
	for _, id := range ids {
		if _, found := seen[id]; found {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}
