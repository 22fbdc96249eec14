package account

import (
	"net/http"
	"strings"

	"commerce/storefront/internal/domain"
	v1 "commerce/storefront/internal/transport/web/v1"
)

type ordersData struct {
	Orders []domain.OrderHeader `json:"orders"`
}

func toOrdersData(orders []domain.OrderHeader) any {
	if orders == nil {
		orders = []domain.OrderHeader{}
	}
	return ordersData{Orders: orders}
}

type orderData struct {
	Order          *domain.Order `json:"order"`
	IsItemShipping bool          `json:"is_item_shipping"`
}

func (h *Handler) RecentOrders(r *http.Request) (*domain.JSONResult, error) {
	session, err := v1.Session(r)
	if err != nil {
		return nil, err
	}

	resp, err := h.Orders.RecentOrders(r.Context(), session.UserID)
	if err != nil {
		return nil, err
	}
	return v1.Result(resp, toOrdersData), nil
}

func (h *Handler) MyOrders(r *http.Request) (*domain.JSONResult, error) {
	session, err := v1.Session(r)
	if err != nil {
		return nil, err
	}

	resp, err := h.Orders.GetOrders(r.Context(), session.UserID)
	if err != nil {
		return nil, err
	}
	return v1.Result(resp, toOrdersData), nil
}

func (h *Handler) MyOrder(r *http.Request) (*domain.JSONResult, error) {
	session, err := v1.Session(r)
	if err != nil {
		return nil, err
	}

	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		return nil, domain.NewValidationError([]string{"Order id is required."})
	}

	resp, err := h.Orders.GetOrderDetails(r.Context(), session.UserID, id)
	if err != nil {
		return nil, err
	}
	return v1.Result(resp, func(o *domain.Order) any {
		return orderData{Order: o, IsItemShipping: o.IsItemShipping()}
	}), nil
}

func (h *Handler) Reorder(r *http.Request) (*domain.JSONResult, error) {
	session, err := v1.Session(r)
	if err != nil {
		return nil, err
	}

	var in domain.ReorderInput
	if err := v1.DecodeValid(r, &in); err != nil {
		return nil, err
	}

	resp, err := h.Orders.Reorder(r.Context(), session.UserID, in)
	if err != nil {
		return nil, err
	}
	return v1.Result(resp, func(o *domain.Order) any { return o }), nil
}

func (h *Handler) CancelOrder(r *http.Request) (*domain.JSONResult, error) {
	session, err := v1.Session(r)
	if err != nil {
		return nil, err
	}

	var in domain.CancelOrderInput
	if err := v1.DecodeValid(r, &in); err != nil {
		return nil, err
	}

	resp, err := h.Orders.CancelOrder(r.Context(), session.UserID, in)
	if err != nil {
		return nil, err
	}
	return domain.ResultFrom(resp), nil
}
