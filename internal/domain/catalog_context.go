package domain

// CatalogContext describes which catalog entity a request targets.
// It is built once per request and must not be modified afterwards.
type CatalogContext struct {
	ItemType   CatalogItemType `json:"item_type"`
	ID         string          `json:"id,omitempty"`
	Catalog    string          `json:"catalog,omitempty"`
	CategoryID string          `json:"category_id,omitempty"`
	Item       *Item           `json:"item,omitempty"`
}

// HasCategory reports whether a category id was resolved
func (c *CatalogContext) HasCategory() bool {
	return c != nil && c.CategoryID != ""
}
