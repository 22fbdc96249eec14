package domain

import "strings"

// ItemKind is decided once when an item row is loaded from the content tree
type ItemKind string

func (k ItemKind) String() string {
	return string(k)
}

const (
	ItemKindProduct  ItemKind = "product"
	ItemKindCategory ItemKind = "category"
	ItemKindVariant  ItemKind = "variant"
	ItemKindOther    ItemKind = "other"
)

var ItemKinds = []ItemKind{
	ItemKindProduct,
	ItemKindCategory,
	ItemKindVariant,
	ItemKindOther,
}

// ParseItemKind maps a stored template name onto a kind. Unknown templates are ItemKindOther.
func ParseItemKind(s string) ItemKind {
	switch ItemKind(strings.ToLower(strings.TrimSpace(s))) {
	case ItemKindProduct:
		return ItemKindProduct
	case ItemKindCategory:
		return ItemKindCategory
	case ItemKindVariant:
		return ItemKindVariant
	default:
		return ItemKindOther
	}
}

// IsCatalogItem reports whether the kind can back a catalog context
func (k ItemKind) IsCatalogItem() bool {
	return k == ItemKindProduct || k == ItemKindCategory || k == ItemKindVariant
}

// CatalogItemType is the kind of entity a catalog context points at
type CatalogItemType string

func (c CatalogItemType) String() string {
	return string(c)
}

const (
	CatalogItemTypeCatalogRoot CatalogItemType = "CatalogRoot"
	CatalogItemTypeProduct     CatalogItemType = "Product"
	CatalogItemTypeCategory    CatalogItemType = "Category"
)

// CatalogItemTypeFor returns the catalog item type an item kind resolves to
func CatalogItemTypeFor(k ItemKind) (CatalogItemType, bool) {
	switch k {
	case ItemKindProduct, ItemKindVariant:
		return CatalogItemTypeProduct, true
	case ItemKindCategory:
		return CatalogItemTypeCategory, true
	default:
		return "", false
	}
}

// RouteItemType is the routing configuration's classification of an inbound route
type RouteItemType int

const (
	RouteItemTypeUnknown RouteItemType = iota
	RouteItemTypeCatalogRoot
	RouteItemTypeProduct
	RouteItemTypeCategory
)

func (r RouteItemType) String() string {
	switch r {
	case RouteItemTypeCatalogRoot:
		return "CatalogRoot"
	case RouteItemTypeProduct:
		return "Product"
	case RouteItemTypeCategory:
		return "Category"
	default:
		return "Unknown"
	}
}
