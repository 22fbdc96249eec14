package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"commerce/storefront/internal/auth/token"
	"commerce/storefront/internal/catalog"
	"commerce/storefront/internal/domain"
	"commerce/storefront/internal/transport/web/mw"
	"commerce/storefront/internal/transport/web/v1/account"
	"commerce/storefront/internal/transport/web/v1/health"
	"commerce/storefront/internal/transport/web/v1/shop"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memBlacklist struct {
	mu      sync.Mutex
	revoked map[string]bool
}

func (b *memBlacklist) Revoke(_ context.Context, jti string, _ time.Time) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.revoked[jti] = true
	return nil
}

func (b *memBlacklist) IsRevoked(_ context.Context, jti string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.revoked[jti], nil
}

type stubOrders struct{}

func (stubOrders) GetOrders(context.Context, domain.UserID) (domain.ManagerResponse[[]domain.OrderHeader], error) {
	return domain.OK([]domain.OrderHeader{{OrderID: "o-1"}}), nil
}

func (stubOrders) RecentOrders(context.Context, domain.UserID) (domain.ManagerResponse[[]domain.OrderHeader], error) {
	return domain.OK([]domain.OrderHeader{}), nil
}

func (stubOrders) GetOrderDetails(context.Context, domain.UserID, string) (domain.ManagerResponse[*domain.Order], error) {
	return domain.Failed[*domain.Order]("not found"), nil
}

func (stubOrders) Reorder(context.Context, domain.UserID, domain.ReorderInput) (domain.ManagerResponse[*domain.Order], error) {
	return domain.Failed[*domain.Order]("not found"), nil
}

func (stubOrders) CancelOrder(context.Context, domain.UserID, domain.CancelOrderInput) (domain.ManagerResponse[bool], error) {
	return domain.OK(true), nil
}

func (stubOrders) GetAvailableCountries(context.Context) (domain.ManagerResponse[map[string]string], error) {
	return domain.OK(map[string]string{}), nil
}

type recordingResolver struct {
	route *catalog.RouteData
}

func (r *recordingResolver) Create(_ context.Context, route *catalog.RouteData, _ catalog.ItemStore) (*domain.CatalogContext, error) {
	r.route = route
	return &domain.CatalogContext{ItemType: domain.CatalogItemTypeProduct, ID: "widget"}, nil
}

func (r *recordingResolver) Invalidate(context.Context, string, string) error {
	return nil
}

func newTestRouter(t *testing.T) (http.Handler, *token.Manager, *memBlacklist, *recordingResolver) {
	t.Helper()

	tokens := token.New("test-secret", "storefront", time.Hour)
	blacklist := &memBlacklist{revoked: map[string]bool{}}
	resolver := &recordingResolver{}

	h := newRouter(Handlers{
		Account: &account.Handler{Orders: stubOrders{}},
		Shop:    &shop.Handler{Resolver: resolver},
		Health:  &health.Handler{},
		Auth:    mw.AuthDeps{Tokens: tokens, Blacklist: blacklist},
	})
	return h, tokens, blacklist, resolver
}

func TestRouter_Health(t *testing.T) {
	h, _, _, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(mw.HeaderRequestID))
}

func TestRouter_AuthenticatedRoutes(t *testing.T) {
	h, tokens, blacklist, _ := newTestRouter(t)

	raw, claims, err := tokens.Issue(context.Background(), uuid.New(), "jane")
	require.NoError(t, err)

	get := func(bearer string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/account/orders", nil)
		if bearer != "" {
			req.Header.Set("Authorization", "Bearer "+bearer)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusUnauthorized, get("").Code)
	assert.Equal(t, http.StatusUnauthorized, get("garbage").Code)

	rec := get(string(raw))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"o-1"`)

	require.NoError(t, blacklist.Revoke(context.Background(), claims.JTI, claims.ExpiresAt))
	assert.Equal(t, http.StatusUnauthorized, get(string(raw)).Code)
}

func TestRouter_WrongMethod(t *testing.T) {
	h, _, _, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/account/login", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRouter_ProductWithCategory(t *testing.T) {
	h, _, _, resolver := newTestRouter(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/shop/product/gadgets/widget?catalog=main", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, resolver.route)
	assert.Equal(t, catalog.RouteNameProduct, resolver.route.Name)
	assert.Equal(t, "gadgets", resolver.route.Values[catalog.RouteValueCategory])
	assert.Equal(t, "widget", resolver.route.Values[catalog.RouteValueID])
	assert.Equal(t, "main", resolver.route.Values[catalog.RouteValueCatalog])
}

func TestRouter_CatalogPathKeepsSlashes(t *testing.T) {
	h, _, _, resolver := newTestRouter(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/shop/catalog/gadgets/widgets/blue", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "gadgets/widgets/blue", resolver.route.Values[catalog.RouteValueCatalogPath])
}
