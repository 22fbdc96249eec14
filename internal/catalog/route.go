package catalog

import "commerce/storefront/internal/domain"

// Route value names
const (
	RouteValueID          = "id"
	RouteValueCatalog     = "catalog"
	RouteValueCategory    = "category"
	RouteValueCatalogPath = "catalogPath"
)

// Route names registered by the web router
const (
	RouteNameCatalogItem = "catalogitem"
	RouteNameProduct     = "product"
	RouteNameCategory    = "category"
)

// RouteData is the matched route name plus its named path segments
type RouteData struct {
	Name   string
	Values map[string]string
}

// NewRouteData builds route data, dropping empty values
func NewRouteData(name string, values map[string]string) *RouteData {
	rd := &RouteData{Name: name, Values: make(map[string]string, len(values))}
	for k, v := range values {
		if v != "" {
			rd.Values[k] = v
		}
	}
	return rd
}

// Value returns a route value and whether it was present
func (r *RouteData) Value(key string) (string, bool) {
	if r == nil || r.Values == nil {
		return "", false
	}
	v, ok := r.Values[key]
	return v, ok
}

// Classifier maps a route onto the kind of catalog entity it addresses
type Classifier interface {
	Classify(route *RouteData) domain.RouteItemType
}

type routeClassifier struct{}

func NewRouteClassifier() Classifier {
	return routeClassifier{}
}

func (routeClassifier) Classify(route *RouteData) domain.RouteItemType {
	if route == nil {
		return domain.RouteItemTypeUnknown
	}

	switch route.Name {
	case RouteNameCatalogItem:
		return domain.RouteItemTypeCatalogRoot
	case RouteNameProduct:
		return domain.RouteItemTypeProduct
	case RouteNameCategory:
		return domain.RouteItemTypeCategory
	}

	// Unnamed routes carrying a catalog path still address the catalog tree
	if _, ok := route.Value(RouteValueCatalogPath); ok {
		return domain.RouteItemTypeCatalogRoot
	}
	return domain.RouteItemTypeUnknown
}
