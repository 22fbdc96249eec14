package shop

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"commerce/storefront/internal/catalog"
	"commerce/storefront/internal/domain"
	v1 "commerce/storefront/internal/transport/web/v1"
)

// ContextResolver builds the catalog context of a matched route
type ContextResolver interface {
	Create(ctx context.Context, route *catalog.RouteData, db catalog.ItemStore) (*domain.CatalogContext, error)
	Invalidate(ctx context.Context, id, catalogName string) error
}

// ItemRepository is the content tree with write access
type ItemRepository interface {
	catalog.ItemStore
	SaveItem(ctx context.Context, item *domain.Item) error
}

// Handler serves the /shop pages. Each endpoint names its route, collects the route values
// and answers with the resolved catalog context.
type Handler struct {
	Resolver ContextResolver
	Items    ItemRepository
}

func (h *Handler) CatalogItem(r *http.Request) (*domain.JSONResult, error) {
	return h.resolve(r, catalog.RouteNameCatalogItem)
}

func (h *Handler) Product(r *http.Request) (*domain.JSONResult, error) {
	return h.resolve(r, catalog.RouteNameProduct)
}

func (h *Handler) Category(r *http.Request) (*domain.JSONResult, error) {
	return h.resolve(r, catalog.RouteNameCategory)
}

// Home serves /shop itself, which no catalog route names
func (h *Handler) Home(r *http.Request) (*domain.JSONResult, error) {
	return h.resolve(r, "")
}

func (h *Handler) resolve(r *http.Request, routeName string) (*domain.JSONResult, error) {
	route := routeData(r, routeName)

	cc, err := h.Resolver.Create(r.Context(), route, h.Items)
	if err != nil {
		return nil, err
	}
	if cc == nil {
		return nil, fmt.Errorf("no catalog entity at %s: %w", r.URL.Path, domain.ErrNotFound)
	}

	result := domain.NewJSONResult()
	result.Data = cc
	return result, nil
}

func routeData(r *http.Request, routeName string) *catalog.RouteData {
	return catalog.NewRouteData(routeName, map[string]string{
		catalog.RouteValueID:          r.PathValue(catalog.RouteValueID),
		catalog.RouteValueCategory:    r.PathValue(catalog.RouteValueCategory),
		catalog.RouteValueCatalogPath: r.PathValue(catalog.RouteValueCatalogPath),
		catalog.RouteValueCatalog:     r.URL.Query().Get(catalog.RouteValueCatalog),
	})
}

// SaveItem upserts a content item and drops the friendly URL cache entries of both its
// previous and its new name, so renamed or retyped items stop resolving under the old URL
// and a previously missing product or category becomes reachable.
func (h *Handler) SaveItem(r *http.Request) (*domain.JSONResult, error) {
	var in domain.ItemInput
	if err := v1.DecodeValid(r, &in); err != nil {
		return nil, err
	}

	item, err := in.Item()
	if err != nil {
		return nil, err
	}

	previous, err := h.Items.GetItem(r.Context(), item.ID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if err := h.Items.SaveItem(r.Context(), item); err != nil {
		return nil, err
	}

	for _, it := range []*domain.Item{previous, item} {
		if it == nil || !it.Kind.IsCatalogItem() {
			continue
		}
		if err := h.Resolver.Invalidate(r.Context(), strings.ToLower(it.Name), it.CatalogName); err != nil {
			v1.Logger(r, "shop.save_item").Warnf("Failed to invalidate friendly URL of %s: %v", it.Name, err)
		}
	}

	result := domain.NewJSONResult()
	result.Data = item
	return result, nil
}
