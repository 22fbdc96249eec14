package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"commerce/storefront/internal/domain"
	"commerce/storefront/internal/domain/task"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type accountFixture struct {
	users     *fakeUsers
	parties   *fakeParties
	blacklist *fakeBlacklist
	queue     *fakeQueue
	manager   *AccountManager
}

func newAccountFixture(maxAddresses int, users ...domain.User) *accountFixture {
	f := &accountFixture{
		users:     newFakeUsers(users...),
		parties:   newFakeParties(),
		blacklist: &fakeBlacklist{revoked: map[string]time.Time{}},
		queue:     &fakeQueue{},
	}
	f.manager = NewAccountManager(f.users, f.parties, plainHasher{}, fakeTokens{}, f.blacklist, f.queue, "CommerceUsers", maxAddresses)
	return f
}

func jane() domain.User {
	return domain.User{
		ID:         uuid.New(),
		ExternalID: "cust-1",
		UserName:   `CommerceUsers\jane@example.com`,
		Email:      "jane@example.com",
		FirstName:  "Jane",
		LastName:   "Doe",
		PassHash:   []byte("hash:Secret123"),
	}
}

func TestAccountManager_QualifyUserName(t *testing.T) {
	m := newAccountFixture(10).manager

	assert.Equal(t, `CommerceUsers\jane@example.com`, m.QualifyUserName("jane@example.com"))
	assert.Equal(t, `commerceusers\jane@example.com`, m.QualifyUserName(`commerceusers\jane@example.com`))
	assert.Equal(t, `CommerceUsers\jane`, m.QualifyUserName("  jane "))
}

func TestAccountManager_RegisterUser(t *testing.T) {
	f := newAccountFixture(10)
	in := domain.RegisterUserInput{
		UserName:        "jane@example.com",
		FirstName:       "Jane",
		LastName:        "Doe",
		Password:        "Secret123",
		ConfirmPassword: "Secret123",
	}

	resp, err := f.manager.RegisterUser(context.Background(), in)
	require.NoError(t, err)
	require.True(t, resp.Success)
	assert.Equal(t, `CommerceUsers\jane@example.com`, resp.Result.UserName)
	assert.Equal(t, "jane@example.com", resp.Result.Email)
	assert.Equal(t, []byte("hash:Secret123"), resp.Result.PassHash)

	require.Len(t, f.queue.tasks, 1)
	registered, ok := f.queue.tasks[0].(*task.AccountRegisteredTask)
	require.True(t, ok)
	assert.Equal(t, "Jane Doe", registered.FullName)

	resp, err = f.manager.RegisterUser(context.Background(), in)
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, []string{MsgUserExists}, resp.Errors)
}

func TestAccountManager_RegisterUser_QueueFailureIsNotFatal(t *testing.T) {
	f := newAccountFixture(10)
	f.queue.addErr = errBoom

	resp, err := f.manager.RegisterUser(context.Background(), domain.RegisterUserInput{
		UserName: "jane@example.com", FirstName: "Jane", LastName: "Doe", Password: "Secret123", ConfirmPassword: "Secret123",
	})
	require.NoError(t, err)
	assert.True(t, resp.Success)
}

func TestAccountManager_Login(t *testing.T) {
	u := jane()
	f := newAccountFixture(10, u)

	resp, err := f.manager.Login(context.Background(), "jane@example.com", "Secret123")
	require.NoError(t, err)
	require.True(t, resp.Success)
	assert.Equal(t, domain.Token(`token-CommerceUsers\jane@example.com`), resp.Result.Token)
	assert.Equal(t, u.ID, resp.Result.User.ID)

	resp, err = f.manager.Login(context.Background(), "jane@example.com", "wrong")
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, []string{MsgLoginFailed}, resp.Errors)

	resp, err = f.manager.Login(context.Background(), "nobody@example.com", "Secret123")
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, []string{MsgLoginFailed}, resp.Errors)
}

func TestAccountManager_Login_StoreFailure(t *testing.T) {
	f := newAccountFixture(10, jane())
	f.users.err = errBoom

	_, err := f.manager.Login(context.Background(), "jane@example.com", "Secret123")
	assert.ErrorIs(t, err, errBoom)
}

func TestAccountManager_Logout(t *testing.T) {
	f := newAccountFixture(10)
	exp := time.Now().Add(time.Hour)

	require.NoError(t, f.manager.Logout(context.Background(), domain.Session{JTI: "abc", ExpiresAt: exp}))
	assert.Equal(t, exp, f.blacklist.revoked["abc"])
}

func TestAccountManager_ChangePassword(t *testing.T) {
	u := jane()
	f := newAccountFixture(10, u)

	resp, err := f.manager.ChangePassword(context.Background(), u.ID, domain.ChangePasswordInput{
		CurrentPassword: "nope", NewPassword: "Newpass1", ConfirmPassword: "Newpass1",
	})
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, []string{MsgCurrentPassword}, resp.Errors)

	resp, err = f.manager.ChangePassword(context.Background(), u.ID, domain.ChangePasswordInput{
		CurrentPassword: "Secret123", NewPassword: "Newpass1", ConfirmPassword: "Newpass1",
	})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, []byte("hash:Newpass1"), f.users.users[u.ID].PassHash)
}

func TestAccountManager_UpdateUser(t *testing.T) {
	u := jane()
	f := newAccountFixture(10, u)

	resp, err := f.manager.UpdateUser(context.Background(), u.ID, domain.ProfileInput{
		FirstName: "Janet", LastName: "Doe", Email: "janet@example.com", TelephoneNumber: "+1 555 0100",
	})
	require.NoError(t, err)
	require.True(t, resp.Success)
	assert.Equal(t, "Janet", f.users.users[u.ID].FirstName)
	assert.Equal(t, "+1 555 0100", f.users.users[u.ID].Phone)

	resp, err = f.manager.UpdateUser(context.Background(), uuid.New(), domain.ProfileInput{})
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, []string{MsgUserNotFound}, resp.Errors)
}

func TestAccountManager_ResetUserPassword(t *testing.T) {
	u := jane()
	f := newAccountFixture(10, u)

	resp, err := f.manager.ResetUserPassword(context.Background(), domain.ForgotPasswordInput{Email: "JANE@example.com"})
	require.NoError(t, err)
	require.True(t, resp.Success)
	assert.Equal(t, "jane@example.com", resp.Result)

	require.Len(t, f.queue.tasks, 1)
	reset, ok := f.queue.tasks[0].(*task.PasswordResetTask)
	require.True(t, ok)
	assert.True(t, domain.ValidPassword(reset.TemporaryPassword))
	assert.Equal(t, []byte("hash:"+reset.TemporaryPassword), f.users.users[u.ID].PassHash)

	resp, err = f.manager.ResetUserPassword(context.Background(), domain.ForgotPasswordInput{Email: "who@example.com"})
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, []string{MsgEmailNotRegistered}, resp.Errors)
}

func TestAccountManager_AddParty_Limit(t *testing.T) {
	u := jane()
	f := newAccountFixture(2, u)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		resp, err := f.manager.AddParty(ctx, u.ID, domain.Party{Name: fmt.Sprintf("addr-%d", i)})
		require.NoError(t, err)
		require.True(t, resp.Success)
		assert.NotEmpty(t, resp.Result.ExternalID)
	}

	resp, err := f.manager.AddParty(ctx, u.ID, domain.Party{Name: "one too many"})
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, []string{fmt.Sprintf(MsgMaxAddressesReached, 2)}, resp.Errors)

	list, err := f.manager.GetParties(ctx, u.ID)
	require.NoError(t, err)
	assert.Len(t, list.Result, 2)
}

func TestAccountManager_UpdateAndRemoveParty(t *testing.T) {
	u := jane()
	f := newAccountFixture(10, u)
	ctx := context.Background()

	added, err := f.manager.AddParty(ctx, u.ID, domain.Party{Name: "Home", City: "Oslo"})
	require.NoError(t, err)

	party := added.Result
	party.City = "Bergen"
	resp, err := f.manager.UpdateParty(ctx, u.ID, party)
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "Bergen", f.parties.byUser[u.ID][0].City)

	removed, err := f.manager.RemoveParty(ctx, u.ID, party.ExternalID)
	require.NoError(t, err)
	assert.True(t, removed.Success)

	removed, err = f.manager.RemoveParty(ctx, u.ID, party.ExternalID)
	require.NoError(t, err)
	assert.False(t, removed.Success)
	assert.Equal(t, []string{MsgAddressNotFound}, removed.Errors)
}
