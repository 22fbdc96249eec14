package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"commerce/storefront/internal/domain"
	"commerce/storefront/internal/domain/task"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type fakeUsers struct {
	mu    sync.Mutex
	users map[domain.UserID]domain.User
	err   error
}

func newFakeUsers(users ...domain.User) *fakeUsers {
	f := &fakeUsers{users: map[domain.UserID]domain.User{}}
	for _, u := range users {
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeUsers) CreateUser(ctx context.Context, user domain.User) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if strings.EqualFold(u.UserName, user.UserName) {
			return domain.User{}, domain.ErrConflict
		}
	}
	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	f.users[user.ID] = user
	return user, nil
}

func (f *fakeUsers) find(match func(domain.User) bool) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return domain.User{}, f.err
	}
	for _, u := range f.users {
		if match(u) {
			return u, nil
		}
	}
	return domain.User{}, domain.ErrNotFound
}

func (f *fakeUsers) UserByName(ctx context.Context, userName string) (domain.User, error) {
	return f.find(func(u domain.User) bool { return strings.EqualFold(u.UserName, userName) })
}

func (f *fakeUsers) UserByEmail(ctx context.Context, email string) (domain.User, error) {
	return f.find(func(u domain.User) bool { return strings.EqualFold(u.Email, email) })
}

func (f *fakeUsers) UserByID(ctx context.Context, id domain.UserID) (domain.User, error) {
	return f.find(func(u domain.User) bool { return u.ID == id })
}

func (f *fakeUsers) UpdateProfile(ctx context.Context, user domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[user.ID]; !ok {
		return domain.ErrNotFound
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUsers) UpdatePassword(ctx context.Context, id domain.UserID, passHash []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.PassHash = passHash
	f.users[id] = u
	return nil
}

type fakeParties struct {
	byUser map[domain.UserID][]domain.Party
}

func newFakeParties() *fakeParties {
	return &fakeParties{byUser: map[domain.UserID][]domain.Party{}}
}

func (f *fakeParties) ListParties(ctx context.Context, userID domain.UserID) ([]domain.Party, error) {
	return append([]domain.Party{}, f.byUser[userID]...), nil
}

func (f *fakeParties) AddParty(ctx context.Context, userID domain.UserID, party domain.Party) error {
	f.byUser[userID] = append(f.byUser[userID], party)
	return nil
}

func (f *fakeParties) UpdateParty(ctx context.Context, userID domain.UserID, party domain.Party) error {
	for i, p := range f.byUser[userID] {
		if p.ExternalID == party.ExternalID {
			f.byUser[userID][i] = party
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeParties) DeleteParty(ctx context.Context, userID domain.UserID, externalID string) error {
	parties := f.byUser[userID]
	for i, p := range parties {
		if p.ExternalID == externalID {
			f.byUser[userID] = append(parties[:i], parties[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

// plainHasher stores "hash:" + password
type plainHasher struct{}

func (plainHasher) Hash(plain string) (string, error) {
	return "hash:" + plain, nil
}

func (plainHasher) Verify(plain, encodedHash string) (bool, error) {
	return encodedHash == "hash:"+plain, nil
}

type fakeTokens struct{}

func (fakeTokens) Issue(ctx context.Context, userID domain.UserID, userName string) (domain.Token, domain.TokenClaims, error) {
	return domain.Token("token-" + userName), domain.TokenClaims{
		JTI:       "jti-" + userID.String(),
		UserID:    userID,
		UserName:  userName,
		ExpiresAt: time.Now().Add(time.Hour),
	}, nil
}

func (fakeTokens) Parse(ctx context.Context, raw domain.Token) (domain.TokenClaims, error) {
	return domain.TokenClaims{}, domain.ErrUnauthorized
}

type fakeBlacklist struct {
	revoked map[string]time.Time
}

func (f *fakeBlacklist) Revoke(ctx context.Context, jti string, exp time.Time) error {
	f.revoked[jti] = exp
	return nil
}

func (f *fakeBlacklist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	_, ok := f.revoked[jti]
	return ok, nil
}

// fakeQueue records added tasks and acks; it satisfies queue.Queue
type fakeQueue struct {
	mu     sync.Mutex
	tasks  []task.Task
	acked  []string
	addErr error
}

func (q *fakeQueue) AddTask(ctx context.Context, t task.Task) (string, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.addErr != nil {
		return "", q.addErr
	}
	q.tasks = append(q.tasks, t)
	return "1-0", nil
}

func (q *fakeQueue) GetTask(ctx context.Context, group, consumer, stream string) (*redis.XMessage, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (q *fakeQueue) AckTask(ctx context.Context, stream, group, msgID string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.acked = append(q.acked, stream+"/"+msgID)
	return nil
}

func (q *fakeQueue) CreateGroup(ctx context.Context, stream, group string) error {
	return nil
}

func (q *fakeQueue) AutoClaim(ctx context.Context, group, consumer, stream string, minIdleTime time.Duration) ([]redis.XMessage, error) {
	return nil, nil
}

func (q *fakeQueue) EnsureStreamsExist(ctx context.Context) error {
	return nil
}

type sentNotification struct {
	kind    string
	payload any
}

type fakeCommerce struct {
	mu        sync.Mutex
	orders    map[string][]domain.OrderHeader
	details   map[string]*domain.Order
	countries map[string]string
	sent      []sentNotification
	sendErr   error
	lastCust  string
}

func (f *fakeCommerce) GetOrders(ctx context.Context, customerID string) (domain.ManagerResponse[[]domain.OrderHeader], error) {
	f.lastCust = customerID
	return domain.OK(f.orders[customerID]), nil
}

func (f *fakeCommerce) GetOrder(ctx context.Context, customerID, orderID string) (domain.ManagerResponse[*domain.Order], error) {
	f.lastCust = customerID
	o, ok := f.details[orderID]
	if !ok {
		return domain.ManagerResponse[*domain.Order]{}, domain.ErrNotFound
	}
	return domain.OK(o), nil
}

func (f *fakeCommerce) Reorder(ctx context.Context, customerID, orderID string) (domain.ManagerResponse[*domain.Order], error) {
	return f.GetOrder(ctx, customerID, orderID)
}

func (f *fakeCommerce) CancelOrder(ctx context.Context, customerID string, in domain.CancelOrderInput) (domain.ManagerResponse[bool], error) {
	if _, ok := f.details[in.OrderID]; !ok {
		return domain.ManagerResponse[bool]{}, domain.ErrNotFound
	}
	return domain.Failed[bool]("Order cannot be cancelled."), nil
}

func (f *fakeCommerce) GetCountries(ctx context.Context) (domain.ManagerResponse[map[string]string], error) {
	return domain.OK(f.countries), nil
}

func (f *fakeCommerce) SendNotification(ctx context.Context, kind string, payload any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, sentNotification{kind: kind, payload: payload})
	return nil
}

func (f *fakeCommerce) Close() error {
	return nil
}

var errBoom = errors.New("boom")
