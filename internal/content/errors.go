package content

import (
	"errors"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
)

// ErrArticleNotFound is returned when no candidate locale holds the slug.
var ErrArticleNotFound = errors.New("content: article not found")

const articleNotFoundCode = "ARTICLE_NOT_FOUND"

func notFoundError(slug, locale string) error {
	return goerrors.Wrap(
		fmt.Errorf("%w: %q for locale %q", ErrArticleNotFound, slug, locale),
		goerrors.CategoryNotFound,
		"article not found",
	).WithTextCode(articleNotFoundCode)
}
