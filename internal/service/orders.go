package service

import (
	"context"
	"errors"
	"time"

	"commerce/storefront/internal/client"
	"commerce/storefront/internal/domain"
	"commerce/storefront/internal/repository"
)

const MsgOrderNotFound = "The order could not be found."

// OrderManager proxies order history to the commerce engine on behalf of a customer
type OrderManager struct {
	client      client.CommerceClient
	users       repository.UserRepository
	recentDays  int
	recentLimit int
	now         func() time.Time
}

func NewOrderManager(
	client client.CommerceClient,
	users repository.UserRepository,
	recentDays int,
	recentLimit int,
) *OrderManager {
	return &OrderManager{
		client:      client,
		users:       users,
		recentDays:  recentDays,
		recentLimit: recentLimit,
		now:         time.Now,
	}
}

// customerID maps a storefront user onto the engine's customer id
func (m *OrderManager) customerID(ctx context.Context, userID domain.UserID) (string, bool, error) {
	user, err := m.users.UserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return user.ExternalID, true, nil
}

func (m *OrderManager) GetOrders(ctx context.Context, userID domain.UserID) (domain.ManagerResponse[[]domain.OrderHeader], error) {
	customerID, ok, err := m.customerID(ctx, userID)
	if err != nil || !ok {
		return domain.Failed[[]domain.OrderHeader](MsgUserNotFound), err
	}
	return m.client.GetOrders(ctx, customerID)
}

// RecentOrders keeps at most recentLimit orders modified within the last recentDays, in engine order
func (m *OrderManager) RecentOrders(ctx context.Context, userID domain.UserID) (domain.ManagerResponse[[]domain.OrderHeader], error) {
	resp, err := m.GetOrders(ctx, userID)
	if err != nil || !resp.Success {
		return resp, err
	}

	now := m.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	resp.Result = domain.RecentOrders(resp.Result, today.AddDate(0, 0, -m.recentDays), m.recentLimit)
	return resp, nil
}

func (m *OrderManager) GetOrderDetails(ctx context.Context, userID domain.UserID, orderID string) (domain.ManagerResponse[*domain.Order], error) {
	customerID, ok, err := m.customerID(ctx, userID)
	if err != nil || !ok {
		return domain.Failed[*domain.Order](MsgUserNotFound), err
	}

	resp, err := m.client.GetOrder(ctx, customerID, orderID)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Failed[*domain.Order](MsgOrderNotFound), nil
	}
	return resp, err
}

func (m *OrderManager) Reorder(ctx context.Context, userID domain.UserID, in domain.ReorderInput) (domain.ManagerResponse[*domain.Order], error) {
	customerID, ok, err := m.customerID(ctx, userID)
	if err != nil || !ok {
		return domain.Failed[*domain.Order](MsgUserNotFound), err
	}

	resp, err := m.client.Reorder(ctx, customerID, in.OrderID)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Failed[*domain.Order](MsgOrderNotFound), nil
	}
	return resp, err
}

func (m *OrderManager) CancelOrder(ctx context.Context, userID domain.UserID, in domain.CancelOrderInput) (domain.ManagerResponse[bool], error) {
	customerID, ok, err := m.customerID(ctx, userID)
	if err != nil || !ok {
		return domain.Failed[bool](MsgUserNotFound), err
	}

	resp, err := m.client.CancelOrder(ctx, customerID, in)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Failed[bool](MsgOrderNotFound), nil
	}
	return resp, err
}

func (m *OrderManager) GetAvailableCountries(ctx context.Context) (domain.ManagerResponse[map[string]string], error) {
	resp, err := m.client.GetCountries(ctx)
	if err == nil && resp.Result == nil {
		resp.Result = map[string]string{}
	}
	return resp, err
}
