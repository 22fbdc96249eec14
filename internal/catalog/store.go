package catalog

import (
	"context"

	"commerce/storefront/internal/domain"
)

// ItemStore reads the content tree. Missing items are reported as domain.ErrNotFound.
type ItemStore interface {
	GetItem(ctx context.Context, id domain.ItemID) (*domain.Item, error)
	GetDescendant(ctx context.Context, rootPath, relativePath string) (*domain.Item, error)
}

// Manager looks catalog entities up by their catalog id.
// Missing entities are reported as domain.ErrNotFound.
type Manager interface {
	GetProduct(ctx context.Context, id, catalogName string) (*domain.Item, error)
	GetCategory(ctx context.Context, id, catalogName string) (*domain.Item, error)
	CurrentCatalog(ctx context.Context) string
}
