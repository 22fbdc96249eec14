package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"commerce/storefront/internal/cache"
	"commerce/storefront/internal/domain"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// ProductCatalogFolder is the subtree of the storefront home that holds the catalog
const ProductCatalogFolder = "product catalog"

// Resolver builds a CatalogContext for an inbound catalog route
type Resolver struct {
	cache       cache.Provider
	cachePrefix string
	manager     Manager
	urls        URLService
	classifier  Classifier
	homePath    string
}

func NewResolver(
	cacheProvider cache.Provider,
	cachePrefix string,
	manager Manager,
	urls URLService,
	classifier Classifier,
	homePath string,
) *Resolver {
	return &Resolver{
		cache:       cacheProvider,
		cachePrefix: cachePrefix,
		manager:     manager,
		urls:        urls,
		classifier:  classifier,
		homePath:    homePath,
	}
}

// Create resolves route against db. A nil context with a nil error means the route
// does not address an existing catalog entity.
func (r *Resolver) Create(ctx context.Context, route *RouteData, db ItemStore) (*domain.CatalogContext, error) {
	if route == nil {
		return nil, fmt.Errorf("route data is required: %w", domain.ErrInvalidArgument)
	}
	if db == nil {
		return nil, fmt.Errorf("item store is required: %w", domain.ErrInvalidArgument)
	}

	switch r.classifier.Classify(route) {
	case domain.RouteItemTypeCatalogRoot:
		return r.fromCatalogRoute(ctx, route, db)
	case domain.RouteItemTypeProduct:
		return r.fromItemRoute(ctx, route, domain.CatalogItemTypeProduct, db)
	case domain.RouteItemTypeCategory:
		return r.fromItemRoute(ctx, route, domain.CatalogItemTypeCategory, db)
	default:
		return &domain.CatalogContext{
			ItemType: domain.CatalogItemTypeCatalogRoot,
			Catalog:  r.manager.CurrentCatalog(ctx),
		}, nil
	}
}

func (r *Resolver) fromCatalogRoute(ctx context.Context, route *RouteData, db ItemStore) (*domain.CatalogContext, error) {
	catalogPath, _ := route.Value(RouteValueCatalogPath)

	item, err := db.GetDescendant(ctx, r.homePath, ProductCatalogFolder+"/"+catalogPath)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get catalog item %s: %w", catalogPath, err)
	}

	itemType, ok := domain.CatalogItemTypeFor(item.Kind)
	if !ok {
		log.Debugf("Item %s under the product catalog is not a catalog item (%s)", item.Path, item.Kind)
		return nil, nil
	}

	return &domain.CatalogContext{
		ItemType:   itemType,
		ID:         strings.ToLower(item.Name),
		Catalog:    item.CatalogName,
		CategoryID: categoryIDFromItem(item),
		Item:       item,
	}, nil
}

func (r *Resolver) fromItemRoute(
	ctx context.Context,
	route *RouteData,
	itemType domain.CatalogItemType,
	db ItemStore,
) (*domain.CatalogContext, error) {
	var id string
	if raw, ok := route.Value(RouteValueID); ok {
		id = r.urls.ExtractItemID(raw)
	}
	if strings.TrimSpace(id) == "" {
		return nil, nil
	}

	catalogName, _ := route.Value(RouteValueCatalog)
	if catalogName == "" {
		catalogName = r.manager.CurrentCatalog(ctx)
	}
	if catalogName == "" {
		return nil, nil
	}

	item, err := r.catalogItem(ctx, id, catalogName, itemType, db)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}

	var categoryID string
	if raw, ok := route.Value(RouteValueCategory); ok {
		categoryID = r.urls.ExtractItemID(raw)
	}
	if categoryID == "" {
		categoryID = categoryIDFromItem(item)
	}

	return &domain.CatalogContext{
		ItemType:   itemType,
		ID:         id,
		Catalog:    catalogName,
		CategoryID: categoryID,
		Item:       item,
	}, nil
}

// catalogItem is the friendly URL lookaside: cache first, then the catalog manager.
// Both found and missing outcomes are cached.
func (r *Resolver) catalogItem(
	ctx context.Context,
	id, catalogName string,
	itemType domain.CatalogItemType,
	db ItemStore,
) (*domain.Item, error) {
	key := domain.CacheKeyFriendlyURL(id, catalogName)

	if cached, ok := r.cacheGet(ctx, key); ok {
		if cached == domain.NotFoundMarker {
			return nil, nil
		}

		itemID, err := uuid.Parse(cached)
		if err != nil {
			log.Warnf("Ignoring malformed cache entry %s=%q: %v", key, cached, err)
		} else {
			item, err := db.GetItem(ctx, itemID)
			switch {
			case err == nil && matchesLookup(item, id, catalogName, itemType):
				return item, nil
			case err == nil:
				log.Debugf("Cache entry %s points at %s which no longer matches, looking it up again", key, item.Path)
			case errors.Is(err, domain.ErrNotFound):
				return nil, nil
			default:
				return nil, fmt.Errorf("failed to get item %s: %w", itemID, err)
			}
		}
	}

	var (
		item *domain.Item
		err  error
	)
	switch itemType {
	case domain.CatalogItemTypeProduct:
		item, err = r.manager.GetProduct(ctx, id, catalogName)
	case domain.CatalogItemTypeCategory:
		item, err = r.manager.GetCategory(ctx, id, catalogName)
	}
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("failed to get %s %s from catalog %s: %w", itemType, id, catalogName, err)
	}

	if item == nil {
		r.cachePut(ctx, key, domain.NotFoundMarker)
		return nil, nil
	}

	r.cachePut(ctx, key, item.ID.String())
	return item, nil
}

func (r *Resolver) cacheGet(ctx context.Context, key string) (string, bool) {
	val, ok, err := r.cache.Get(ctx, r.cachePrefix, domain.CacheNameFriendlyURLs, key)
	if err != nil {
		log.Warnf("Friendly URL cache read failed for %s: %v", key, err)
		return "", false
	}
	return val, ok
}

func (r *Resolver) cachePut(ctx context.Context, key, value string) {
	if err := r.cache.Put(ctx, r.cachePrefix, domain.CacheNameFriendlyURLs, key, value); err != nil {
		log.Warnf("Friendly URL cache write failed for %s: %v", key, err)
	}
}

// Invalidate drops the cached outcome for an id so the next lookup goes to the catalog manager
func (r *Resolver) Invalidate(ctx context.Context, id, catalogName string) error {
	return r.cache.Delete(ctx, r.cachePrefix, domain.CacheNameFriendlyURLs, domain.CacheKeyFriendlyURL(id, catalogName))
}

// matchesLookup reports whether item is still what the catalog manager would return for
// id in catalogName. Cached ids go stale when an item is renamed, moved or retyped.
func matchesLookup(item *domain.Item, id, catalogName string, itemType domain.CatalogItemType) bool {
	if item == nil || !strings.EqualFold(item.Name, id) || item.CatalogName != catalogName {
		return false
	}
	t, ok := domain.CatalogItemTypeFor(item.Kind)
	return ok && t == itemType
}

func categoryIDFromItem(item *domain.Item) string {
	switch item.Kind {
	case domain.ItemKindCategory:
		return strings.ToLower(item.Name)
	case domain.ItemKindProduct:
		return strings.ToLower(item.Ancestor(1))
	case domain.ItemKindVariant:
		return strings.ToLower(item.Ancestor(2))
	default:
		return ""
	}
}
