package account

import (
	"context"

	"commerce/storefront/internal/domain"
)

// Accounts is the account manager as seen by the HTTP layer
type Accounts interface {
	RegisterUser(ctx context.Context, in domain.RegisterUserInput) (domain.ManagerResponse[domain.User], error)
	Login(ctx context.Context, userName, password string) (domain.ManagerResponse[domain.LoginResult], error)
	Logout(ctx context.Context, session domain.Session) error
	GetUser(ctx context.Context, id domain.UserID) (domain.ManagerResponse[domain.User], error)
	UpdateUser(ctx context.Context, id domain.UserID, in domain.ProfileInput) (domain.ManagerResponse[domain.User], error)
	ChangePassword(ctx context.Context, id domain.UserID, in domain.ChangePasswordInput) (domain.ManagerResponse[bool], error)
	SetPassword(ctx context.Context, id domain.UserID, newPassword string) (domain.ManagerResponse[bool], error)
	ResetUserPassword(ctx context.Context, in domain.ForgotPasswordInput) (domain.ManagerResponse[string], error)
	GetParties(ctx context.Context, userID domain.UserID) (domain.ManagerResponse[[]domain.Party], error)
	AddParty(ctx context.Context, userID domain.UserID, party domain.Party) (domain.ManagerResponse[domain.Party], error)
	UpdateParty(ctx context.Context, userID domain.UserID, party domain.Party) (domain.ManagerResponse[domain.Party], error)
	RemoveParty(ctx context.Context, userID domain.UserID, externalID string) (domain.ManagerResponse[bool], error)
}

// Orders is the order manager as seen by the HTTP layer
type Orders interface {
	GetOrders(ctx context.Context, userID domain.UserID) (domain.ManagerResponse[[]domain.OrderHeader], error)
	RecentOrders(ctx context.Context, userID domain.UserID) (domain.ManagerResponse[[]domain.OrderHeader], error)
	GetOrderDetails(ctx context.Context, userID domain.UserID, orderID string) (domain.ManagerResponse[*domain.Order], error)
	Reorder(ctx context.Context, userID domain.UserID, in domain.ReorderInput) (domain.ManagerResponse[*domain.Order], error)
	CancelOrder(ctx context.Context, userID domain.UserID, in domain.CancelOrderInput) (domain.ManagerResponse[bool], error)
	GetAvailableCountries(ctx context.Context) (domain.ManagerResponse[map[string]string], error)
}

// Handler serves /api/account. Every endpoint validates its input, delegates to a manager
// and shapes the manager outcome into a JSON result.
type Handler struct {
	Accounts Accounts
	Orders   Orders
}
