package account

import (
	"context"
	"errors"
	"sync"

	"commerce/storefront/internal/domain"
)

var errBoom = errors.New("boom")

type fakeAccounts struct {
	mu    sync.Mutex
	calls []string

	user       domain.User
	login      domain.ManagerResponse[domain.LoginResult]
	register   domain.ManagerResponse[domain.User]
	parties    domain.ManagerResponse[[]domain.Party]
	partiesErr error
	saveParty  domain.ManagerResponse[domain.Party]
	remove     domain.ManagerResponse[bool]
	setPwd     domain.ManagerResponse[bool]
	changePwd  domain.ManagerResponse[bool]
	reset      domain.ManagerResponse[string]
	loggedOut  []domain.Session
}

func (f *fakeAccounts) called(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
}

func (f *fakeAccounts) RegisterUser(_ context.Context, _ domain.RegisterUserInput) (domain.ManagerResponse[domain.User], error) {
	f.called("RegisterUser")
	return f.register, nil
}

func (f *fakeAccounts) Login(_ context.Context, _, _ string) (domain.ManagerResponse[domain.LoginResult], error) {
	f.called("Login")
	return f.login, nil
}

func (f *fakeAccounts) Logout(_ context.Context, session domain.Session) error {
	f.called("Logout")
	f.loggedOut = append(f.loggedOut, session)
	return nil
}

func (f *fakeAccounts) GetUser(_ context.Context, _ domain.UserID) (domain.ManagerResponse[domain.User], error) {
	f.called("GetUser")
	return domain.OK(f.user), nil
}

func (f *fakeAccounts) UpdateUser(_ context.Context, _ domain.UserID, in domain.ProfileInput) (domain.ManagerResponse[domain.User], error) {
	f.called("UpdateUser")
	u := f.user
	u.FirstName, u.LastName, u.Email = in.FirstName, in.LastName, in.Email
	return domain.OK(u), nil
}

func (f *fakeAccounts) ChangePassword(_ context.Context, _ domain.UserID, _ domain.ChangePasswordInput) (domain.ManagerResponse[bool], error) {
	f.called("ChangePassword")
	return f.changePwd, nil
}

func (f *fakeAccounts) SetPassword(_ context.Context, _ domain.UserID, _ string) (domain.ManagerResponse[bool], error) {
	f.called("SetPassword")
	return f.setPwd, nil
}

func (f *fakeAccounts) ResetUserPassword(_ context.Context, _ domain.ForgotPasswordInput) (domain.ManagerResponse[string], error) {
	f.called("ResetUserPassword")
	return f.reset, nil
}

func (f *fakeAccounts) GetParties(_ context.Context, _ domain.UserID) (domain.ManagerResponse[[]domain.Party], error) {
	f.called("GetParties")
	return f.parties, f.partiesErr
}

func (f *fakeAccounts) AddParty(_ context.Context, _ domain.UserID, _ domain.Party) (domain.ManagerResponse[domain.Party], error) {
	f.called("AddParty")
	return f.saveParty, nil
}

func (f *fakeAccounts) UpdateParty(_ context.Context, _ domain.UserID, _ domain.Party) (domain.ManagerResponse[domain.Party], error) {
	f.called("UpdateParty")
	return f.saveParty, nil
}

func (f *fakeAccounts) RemoveParty(_ context.Context, _ domain.UserID, _ string) (domain.ManagerResponse[bool], error) {
	f.called("RemoveParty")
	return f.remove, nil
}

type fakeOrders struct {
	orders    domain.ManagerResponse[[]domain.OrderHeader]
	order     domain.ManagerResponse[*domain.Order]
	cancel    domain.ManagerResponse[bool]
	countries domain.ManagerResponse[map[string]string]
	err       error
	orderID   string
}

func (f *fakeOrders) GetOrders(_ context.Context, _ domain.UserID) (domain.ManagerResponse[[]domain.OrderHeader], error) {
	return f.orders, f.err
}

func (f *fakeOrders) RecentOrders(_ context.Context, _ domain.UserID) (domain.ManagerResponse[[]domain.OrderHeader], error) {
	return f.orders, f.err
}

func (f *fakeOrders) GetOrderDetails(_ context.Context, _ domain.UserID, orderID string) (domain.ManagerResponse[*domain.Order], error) {
	f.orderID = orderID
	return f.order, f.err
}

func (f *fakeOrders) Reorder(_ context.Context, _ domain.UserID, _ domain.ReorderInput) (domain.ManagerResponse[*domain.Order], error) {
	return f.order, f.err
}

func (f *fakeOrders) CancelOrder(_ context.Context, _ domain.UserID, _ domain.CancelOrderInput) (domain.ManagerResponse[bool], error) {
	return f.cancel, f.err
}

func (f *fakeOrders) GetAvailableCountries(_ context.Context) (domain.ManagerResponse[map[string]string], error) {
	return f.countries, f.err
}
