// Copyright (c) 2026 Recetario. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package recipe

import (
	"crypto/rand"
	"encoding/hex"
	"path"
	"strings"
	"time"

	"github.com/taibuivan/recetario/internal/platform/constants"
	"github.com/taibuivan/recetario/pkg/slug"
)

const defaultImageExt = ".jpg"

// imageBaseName picks the slug, else the slugified title, else "recipe".
func imageBaseName(recipe *Recipe) string {
	if recipe.Slug != "" {
		return recipe.Slug
	}
	return slug.FromOr(recipe.Title, DefaultSlug)
}

// imageExt returns the lowercased extension of filename without spaces,
// defaulting to ".jpg".
func imageExt(filename string) string {
	ext := strings.ReplaceAll(strings.ToLower(path.Ext(filename)), " ", "")
	if ext == "" || ext == "." {
		return defaultImageExt
	}
	return ext
}

/*
ImageKey builds the object key for an uploaded recipe image.

Format: recipes/YYYY/MM/<base>-<YYYYMMDDhhmmss>-<token><ext>

Example:

	ImageKey(recipe, "Screenshot 2025.PNG", now, "a1b2c3")
	// recipes/2025/12/pastel-de-chocolate-20251206112816-a1b2c3.png
*/
func ImageKey(recipe *Recipe, originalFilename string, now time.Time, token string) string {
	name := imageBaseName(recipe) + "-" + now.Format("20060102150405") + "-" + token + imageExt(originalFilename)
	return path.Join(constants.RecipeImagePrefix, now.Format("2006"), now.Format("01"), name)
}

// randomToken returns six lowercase hex characters.
func randomToken() string {
	buf := make([]byte, 3)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}
