package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"commerce/storefront/internal/domain"
	"commerce/storefront/internal/domain/task"
	"commerce/storefront/internal/repository"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// Messages shown to the customer
const (
	MsgLoginFailed         = "The user name or password provided is incorrect."
	MsgUserExists          = "A user with this user name already exists."
	MsgUserNotFound        = "The user could not be found."
	MsgCurrentPassword     = "The current password is incorrect."
	MsgEmailNotRegistered  = "The email address is not registered."
	MsgAddressNotFound     = "The address could not be found."
	MsgMaxAddressesReached = "You have reached the maximum number of addresses (%d)."
)

// TaskQueue accepts background tasks
type TaskQueue interface {
	AddTask(ctx context.Context, task task.Task) (string, error)
}

type AccountManager struct {
	users        repository.UserRepository
	parties      repository.PartyRepository
	hasher       domain.PasswordHasher
	tokens       domain.TokenManager
	blacklist    domain.TokenBlacklist
	queue        TaskQueue
	usersDomain  string
	maxAddresses int
	now          func() time.Time
}

func NewAccountManager(
	users repository.UserRepository,
	parties repository.PartyRepository,
	hasher domain.PasswordHasher,
	tokens domain.TokenManager,
	blacklist domain.TokenBlacklist,
	queue TaskQueue,
	usersDomain string,
	maxAddresses int,
) *AccountManager {
	return &AccountManager{
		users:        users,
		parties:      parties,
		hasher:       hasher,
		tokens:       tokens,
		blacklist:    blacklist,
		queue:        queue,
		usersDomain:  usersDomain,
		maxAddresses: maxAddresses,
		now:          time.Now,
	}
}

// QualifyUserName prefixes userName with the users domain unless it already carries it
func (m *AccountManager) QualifyUserName(userName string) string {
	userName = strings.TrimSpace(userName)
	if m.usersDomain == "" || strings.HasPrefix(strings.ToLower(userName), strings.ToLower(m.usersDomain)) {
		return userName
	}
	return m.usersDomain + `\` + userName
}

func (m *AccountManager) RegisterUser(ctx context.Context, in domain.RegisterUserInput) (domain.ManagerResponse[domain.User], error) {
	hash, err := m.hasher.Hash(in.Password)
	if err != nil {
		return domain.ManagerResponse[domain.User]{}, err
	}

	user, err := m.users.CreateUser(ctx, domain.User{
		ExternalID: uuid.NewString(),
		UserName:   m.QualifyUserName(in.UserName),
		Email:      strings.TrimSpace(in.UserName),
		FirstName:  strings.TrimSpace(in.FirstName),
		LastName:   strings.TrimSpace(in.LastName),
		PassHash:   []byte(hash),
	})
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return domain.Failed[domain.User](MsgUserExists), nil
		}
		return domain.ManagerResponse[domain.User]{}, err
	}

	m.enqueue(ctx, &task.AccountRegisteredTask{
		UserID:       user.ID.String(),
		Email:        user.Email,
		FullName:     user.FullName(),
		RegisteredAt: m.now().UTC(),
	})

	log.Infof("👤 Registered user %s", user.UserName)
	return domain.OK(user), nil
}

// Login checks credentials and issues a session token. userName is qualified with the users domain first.
func (m *AccountManager) Login(ctx context.Context, userName, password string) (domain.ManagerResponse[domain.LoginResult], error) {
	user, err := m.users.UserByName(ctx, m.QualifyUserName(userName))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Failed[domain.LoginResult](MsgLoginFailed), nil
		}
		return domain.ManagerResponse[domain.LoginResult]{}, err
	}

	ok, err := m.hasher.Verify(password, string(user.PassHash))
	if err != nil {
		return domain.ManagerResponse[domain.LoginResult]{}, fmt.Errorf("failed to verify password of %s: %w", user.UserName, err)
	}
	if !ok {
		return domain.Failed[domain.LoginResult](MsgLoginFailed), nil
	}

	token, claims, err := m.tokens.Issue(ctx, user.ID, user.UserName)
	if err != nil {
		return domain.ManagerResponse[domain.LoginResult]{}, err
	}

	return domain.OK(domain.LoginResult{Token: token, ExpiresAt: claims.ExpiresAt, User: user}), nil
}

// Logout revokes the session token
func (m *AccountManager) Logout(ctx context.Context, session domain.Session) error {
	return m.blacklist.Revoke(ctx, session.JTI, session.ExpiresAt)
}

func (m *AccountManager) GetUser(ctx context.Context, id domain.UserID) (domain.ManagerResponse[domain.User], error) {
	user, err := m.users.UserByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Failed[domain.User](MsgUserNotFound), nil
		}
		return domain.ManagerResponse[domain.User]{}, err
	}
	return domain.OK(user), nil
}

func (m *AccountManager) UpdateUser(ctx context.Context, id domain.UserID, in domain.ProfileInput) (domain.ManagerResponse[domain.User], error) {
	resp, err := m.GetUser(ctx, id)
	if err != nil || !resp.Success {
		return resp, err
	}

	user := resp.Result
	user.FirstName = strings.TrimSpace(in.FirstName)
	user.LastName = strings.TrimSpace(in.LastName)
	user.Email = strings.TrimSpace(in.Email)
	user.Phone = strings.TrimSpace(in.TelephoneNumber)

	if err := m.users.UpdateProfile(ctx, user); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Failed[domain.User](MsgUserNotFound), nil
		}
		return domain.ManagerResponse[domain.User]{}, err
	}
	return domain.OK(user), nil
}

// ChangePassword replaces the password after checking the current one
func (m *AccountManager) ChangePassword(ctx context.Context, id domain.UserID, in domain.ChangePasswordInput) (domain.ManagerResponse[bool], error) {
	user, err := m.users.UserByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Failed[bool](MsgUserNotFound), nil
		}
		return domain.ManagerResponse[bool]{}, err
	}

	ok, err := m.hasher.Verify(in.CurrentPassword, string(user.PassHash))
	if err != nil {
		return domain.ManagerResponse[bool]{}, fmt.Errorf("failed to verify password of %s: %w", user.UserName, err)
	}
	if !ok {
		return domain.Failed[bool](MsgCurrentPassword), nil
	}

	return m.SetPassword(ctx, id, in.NewPassword)
}

// SetPassword replaces the password of an already authenticated user
func (m *AccountManager) SetPassword(ctx context.Context, id domain.UserID, newPassword string) (domain.ManagerResponse[bool], error) {
	hash, err := m.hasher.Hash(newPassword)
	if err != nil {
		return domain.ManagerResponse[bool]{}, err
	}
	if err := m.users.UpdatePassword(ctx, id, []byte(hash)); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Failed[bool](MsgUserNotFound), nil
		}
		return domain.ManagerResponse[bool]{}, err
	}
	return domain.OK(true), nil
}

// ResetUserPassword sets a temporary password and queues the email that carries it
func (m *AccountManager) ResetUserPassword(ctx context.Context, in domain.ForgotPasswordInput) (domain.ManagerResponse[string], error) {
	user, err := m.users.UserByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Failed[string](MsgEmailNotRegistered), nil
		}
		return domain.ManagerResponse[string]{}, err
	}

	temporary := temporaryPassword()
	resp, err := m.SetPassword(ctx, user.ID, temporary)
	if err != nil || !resp.Success {
		return domain.ManagerResponse[string]{Success: resp.Success, Errors: resp.Errors}, err
	}

	if _, err := m.queue.AddTask(ctx, &task.PasswordResetTask{
		Email:             user.Email,
		UserName:          user.UserName,
		TemporaryPassword: temporary,
		RequestedAt:       m.now().UTC(),
	}); err != nil {
		return domain.ManagerResponse[string]{}, fmt.Errorf("failed to queue password reset for %s: %w", user.UserName, err)
	}

	return domain.OK(user.Email), nil
}

// temporaryPassword always satisfies domain.ValidPassword
func temporaryPassword() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "Sf" + raw[:10] + "x7"
}

func (m *AccountManager) GetParties(ctx context.Context, userID domain.UserID) (domain.ManagerResponse[[]domain.Party], error) {
	parties, err := m.parties.ListParties(ctx, userID)
	if err != nil {
		return domain.ManagerResponse[[]domain.Party]{}, err
	}
	return domain.OK(parties), nil
}

// AddParty stores a new address unless the address book is full
func (m *AccountManager) AddParty(ctx context.Context, userID domain.UserID, party domain.Party) (domain.ManagerResponse[domain.Party], error) {
	existing, err := m.parties.ListParties(ctx, userID)
	if err != nil {
		return domain.ManagerResponse[domain.Party]{}, err
	}
	if m.maxAddresses > 0 && len(existing) >= m.maxAddresses {
		return domain.Failed[domain.Party](fmt.Sprintf(MsgMaxAddressesReached, len(existing))), nil
	}

	party.ExternalID = uuid.NewString()
	if err := m.parties.AddParty(ctx, userID, party); err != nil {
		return domain.ManagerResponse[domain.Party]{}, err
	}
	return domain.OK(party), nil
}

func (m *AccountManager) UpdateParty(ctx context.Context, userID domain.UserID, party domain.Party) (domain.ManagerResponse[domain.Party], error) {
	if err := m.parties.UpdateParty(ctx, userID, party); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Failed[domain.Party](MsgAddressNotFound), nil
		}
		return domain.ManagerResponse[domain.Party]{}, err
	}
	return domain.OK(party), nil
}

func (m *AccountManager) RemoveParty(ctx context.Context, userID domain.UserID, externalID string) (domain.ManagerResponse[bool], error) {
	if err := m.parties.DeleteParty(ctx, userID, externalID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Failed[bool](MsgAddressNotFound), nil
		}
		return domain.ManagerResponse[bool]{}, err
	}
	return domain.OK(true), nil
}

// enqueue is best effort, the account change already happened
func (m *AccountManager) enqueue(ctx context.Context, t task.Task) {
	if _, err := m.queue.AddTask(ctx, t); err != nil {
		log.Errorf("❌ Failed to queue %s: %v", t.TaskType(), err)
	}
}
