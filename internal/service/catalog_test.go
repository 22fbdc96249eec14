package service

import (
	"context"
	"testing"

	"commerce/storefront/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeItems struct {
	kinds   []domain.ItemKind
	name    string
	catalog string
}

func (f *fakeItems) GetItem(ctx context.Context, id domain.ItemID) (*domain.Item, error) {
	return nil, domain.ErrNotFound
}

func (f *fakeItems) GetDescendant(ctx context.Context, rootPath, relativePath string) (*domain.Item, error) {
	return nil, domain.ErrNotFound
}

func (f *fakeItems) FindCatalogItem(ctx context.Context, kinds []domain.ItemKind, name, catalogName string) (*domain.Item, error) {
	f.kinds, f.name, f.catalog = kinds, name, catalogName
	return &domain.Item{Name: name, CatalogName: catalogName}, nil
}

func (f *fakeItems) SaveItem(ctx context.Context, item *domain.Item) error {
	return nil
}

func TestCatalogManager(t *testing.T) {
	items := &fakeItems{}
	m := NewCatalogManager(items, "Main")

	assert.Equal(t, "Main", m.CurrentCatalog(context.Background()))

	_, err := m.GetProduct(context.Background(), "widget", "Main")
	require.NoError(t, err)
	assert.Equal(t, []domain.ItemKind{domain.ItemKindProduct, domain.ItemKindVariant}, items.kinds)

	_, err = m.GetCategory(context.Background(), "gadgets", "Other")
	require.NoError(t, err)
	assert.Equal(t, []domain.ItemKind{domain.ItemKindCategory}, items.kinds)
	assert.Equal(t, "Other", items.catalog)
}
