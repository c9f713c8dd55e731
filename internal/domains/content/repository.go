package content

import (
	"context"

	"portfolio-backend/internal/domains/content/model"
	"portfolio-backend/internal/locale"
)

// Repository is the CMS read contract. The production implementation lives
// in internal/infrastructure/prismic.
type Repository interface {
	// PostsByLocale returns every blog post for a locale, newest-first.
	PostsByLocale(ctx context.Context, loc locale.Code) ([]model.Post, error)

	// PostByUID returns a single post, model.ErrNotFound when the document
	// does not exist in that locale.
	PostByUID(ctx context.Context, uid string, loc locale.Code) (*model.Post, error)

	// WorksByLocale returns the portfolio entries for a locale, ascending
	// by their CMS order field.
	WorksByLocale(ctx context.Context, loc locale.Code) ([]model.WorkItem, error)

	// RefByID resolves an opaque CMS document ID to its UID, type and
	// locale. Used by the revalidation webhook.
	RefByID(ctx context.Context, id string) (*model.PostRef, error)
}
