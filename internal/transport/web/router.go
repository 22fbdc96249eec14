package web

import (
	"net/http"

	"commerce/storefront/internal/transport/web/mw"
	v1 "commerce/storefront/internal/transport/web/v1"
)

const maxBodyBytes = 1 << 20

func newRouter(h Handlers) http.Handler {
	mux := http.NewServeMux()

	anon := func(op string, fn v1.HandlerFunc) http.Handler {
		return mw.OptionalAuth(h.Auth, limitBody(maxBodyBytes, v1.JSON(op, fn)))
	}
	auth := func(op string, fn v1.HandlerFunc) http.Handler {
		return mw.RequireAuth(h.Auth, limitBody(maxBodyBytes, v1.JSON(op, fn)))
	}

	// health
	mux.Handle("GET /healthz", v1.JSON("health.liveness", h.Health.Liveness))
	mux.Handle("GET /readyz", v1.JSON("health.readiness", h.Health.Readiness))

	// account
	a := h.Account
	mux.Handle("POST /api/account/register", anon("account.register", a.Register))
	mux.Handle("POST /api/account/login", anon("account.login", a.Login))
	mux.Handle("POST /api/account/logoff", auth("account.logoff", a.LogOff))
	mux.Handle("POST /api/account/password", auth("account.password", a.ChangePassword))
	mux.Handle("POST /api/account/profile", auth("account.profile", a.UpdateProfile))
	mux.Handle("POST /api/account/current", anon("account.current", a.CurrentUser))
	mux.Handle("POST /api/account/password/forgot", anon("account.forgot_password", a.ForgotPassword))
	mux.Handle("POST /api/account/addresses", auth("account.addresses", a.AddressList))
	mux.Handle("POST /api/account/addresses/delete", auth("account.addresses_delete", a.AddressDelete))
	mux.Handle("POST /api/account/addresses/modify", auth("account.addresses_modify", a.AddressModify))
	mux.Handle("POST /api/account/orders/recent", auth("account.recent_orders", a.RecentOrders))
	mux.Handle("GET /api/account/orders", auth("account.orders", a.MyOrders))
	mux.Handle("GET /api/account/orders/{id}", auth("account.order", a.MyOrder))
	mux.Handle("POST /api/account/orders/reorder", auth("account.reorder", a.Reorder))
	mux.Handle("POST /api/account/orders/cancel", auth("account.cancel_order", a.CancelOrder))

	// catalog
	s := h.Shop
	mux.Handle("GET /shop", v1.JSON("shop.home", s.Home))
	mux.Handle("GET /shop/catalog/{catalogPath...}", v1.JSON("shop.catalog_item", s.CatalogItem))
	mux.Handle("GET /shop/product/{id}", v1.JSON("shop.product", s.Product))
	mux.Handle("GET /shop/product/{category}/{id}", v1.JSON("shop.product", s.Product))
	mux.Handle("GET /shop/category/{id}", v1.JSON("shop.category", s.Category))
	mux.Handle("PUT /api/catalog/items", auth("shop.save_item", s.SaveItem))

	// 🔗 middleware
	return mw.WithRequestID(mw.Recover(mw.Logging(mux)))
}

func limitBody(n int64, h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, n)
		h.ServeHTTP(w, r)
	})
}
