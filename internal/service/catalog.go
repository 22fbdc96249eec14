package service

import (
	"context"

	"commerce/storefront/internal/catalog"
	"commerce/storefront/internal/domain"
	"commerce/storefront/internal/repository"
)

var (
	productKinds  = []domain.ItemKind{domain.ItemKindProduct, domain.ItemKindVariant}
	categoryKinds = []domain.ItemKind{domain.ItemKindCategory}
)

// CatalogManager finds catalog entities in the content tree by their catalog id
type CatalogManager struct {
	items          repository.ItemRepository
	defaultCatalog string
}

var _ catalog.Manager = (*CatalogManager)(nil)

func NewCatalogManager(items repository.ItemRepository, defaultCatalog string) *CatalogManager {
	return &CatalogManager{
		items:          items,
		defaultCatalog: defaultCatalog,
	}
}

func (m *CatalogManager) GetProduct(ctx context.Context, id, catalogName string) (*domain.Item, error) {
	return m.items.FindCatalogItem(ctx, productKinds, id, catalogName)
}

func (m *CatalogManager) GetCategory(ctx context.Context, id, catalogName string) (*domain.Item, error) {
	return m.items.FindCatalogItem(ctx, categoryKinds, id, catalogName)
}

// CurrentCatalog is the storefront's default catalog
func (m *CatalogManager) CurrentCatalog(_ context.Context) string {
	return m.defaultCatalog
}
