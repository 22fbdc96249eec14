package domain

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItem_Ancestor(t *testing.T) {
	item := &Item{Path: "/content/home/product catalog/gadgets/widget/widget-red"}

	assert.Equal(t, "widget", item.Ancestor(1))
	assert.Equal(t, "gadgets", item.Ancestor(2))
	assert.Equal(t, "content", item.Ancestor(5))
	assert.Equal(t, "", item.Ancestor(6))
	assert.Equal(t, "", item.Ancestor(0))
	assert.Equal(t, "widget", item.ParentName())

	var nilItem *Item
	assert.Equal(t, "", nilItem.Ancestor(1))
}

func TestJoinPath(t *testing.T) {
	assert.Equal(t, "/content/home/product catalog/electronics/tv",
		JoinPath("/content/home/", "product catalog/electronics/tv"))
	assert.Equal(t, "/", JoinPath("", "/"))
}

func TestParseItemKind(t *testing.T) {
	tests := map[string]ItemKind{
		"Product":  ItemKindProduct,
		"category": ItemKindCategory,
		" variant": ItemKindVariant,
		"folder":   ItemKindOther,
		"":         ItemKindOther,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseItemKind(in), in)
	}
}

func TestCatalogItemTypeFor(t *testing.T) {
	typ, ok := CatalogItemTypeFor(ItemKindVariant)
	assert.True(t, ok)
	assert.Equal(t, CatalogItemTypeProduct, typ)

	typ, ok = CatalogItemTypeFor(ItemKindCategory)
	assert.True(t, ok)
	assert.Equal(t, CatalogItemTypeCategory, typ)

	_, ok = CatalogItemTypeFor(ItemKindOther)
	assert.False(t, ok)
}

func TestItemInput_Item(t *testing.T) {
	item, err := ItemInput{Name: " Widget ", Path: "content//home/widget/", Kind: "Variant", CatalogName: "main"}.Item()
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, item.ID)
	assert.Equal(t, "Widget", item.Name)
	assert.Equal(t, "/content/home/widget", item.Path)
	assert.Equal(t, ItemKindVariant, item.Kind)

	id := uuid.New()
	item, err = ItemInput{ID: id.String(), Name: "x", Path: "/x"}.Item()
	require.NoError(t, err)
	assert.Equal(t, id, item.ID)
	assert.Equal(t, ItemKindOther, item.Kind)

	_, err = ItemInput{ID: "not-a-uuid", Name: "x", Path: "/x"}.Item()
	assert.True(t, errors.Is(err, ErrValidation))
}

func TestItemInput_Validate(t *testing.T) {
	assert.NoError(t, ItemInput{Name: "About", Path: "/content/home/about"}.Validate())
	assert.Error(t, ItemInput{Name: "Widget", Path: "/content/home/widget", Kind: "product"}.Validate())
	assert.Error(t, ItemInput{Path: "/content"}.Validate())
	assert.Error(t, ItemInput{Name: "x", Path: "//"}.Validate())
}
