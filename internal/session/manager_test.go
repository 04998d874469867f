package session

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghrd1/shop-front/internal/api"
	"github.com/ghrd1/shop-front/internal/store"
)

type mockAuthAPI struct {
	signInToken   string
	signInErr     error
	registerToken string
	registerErr   error
	signOutErr    error
	profileUser   *api.User
	profileErr    error
	updatedUser   *api.User
	updateErr     error

	signOutCalls int
}

func (m *mockAuthAPI) SignIn(context.Context, string, string) (string, error) {
	return m.signInToken, m.signInErr
}

func (m *mockAuthAPI) Register(context.Context, string, string, string, string) (string, error) {
	return m.registerToken, m.registerErr
}

func (m *mockAuthAPI) SignOut(context.Context) error {
	m.signOutCalls++
	return m.signOutErr
}

func (m *mockAuthAPI) Profile(context.Context) (*api.User, error) {
	return m.profileUser, m.profileErr
}

func (m *mockAuthAPI) UpdateProfile(context.Context, string, string) (*api.User, error) {
	return m.updatedUser, m.updateErr
}

func newTestManager(t *testing.T, authAPI AuthAPI) (*Manager, store.Store) {
	st := store.NewFileStore(filepath.Join(t.TempDir(), "state.json"))
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return NewManager(st, authAPI, log), st
}

func testUser() *api.User {
	return &api.User{ID: 1, Email: "a@b.com", FirstName: "Ada", LastName: "B", Role: api.RoleUser}
}

func TestInitialize_NoStoredToken(t *testing.T) {
	mgr, _ := newTestManager(t, &mockAuthAPI{})

	require.NoError(t, mgr.Initialize(context.Background()))
	assert.False(t, mgr.IsAuthenticated())
}

func TestInitialize_StoredTokenHydrates(t *testing.T) {
	mock := &mockAuthAPI{profileUser: testUser()}
	mgr, st := newTestManager(t, mock)
	ctx := context.Background()
	require.NoError(t, st.Set(ctx, store.KeyToken, []byte("tok-1")))

	require.NoError(t, mgr.Initialize(ctx))

	assert.True(t, mgr.IsAuthenticated())
	assert.Equal(t, "tok-1", mgr.Token())
	user, ok := mgr.User()
	require.True(t, ok)
	assert.Equal(t, "a@b.com", user.Email)
}

func TestInitialize_HydrationFailureInvalidatesStoredToken(t *testing.T) {
	mock := &mockAuthAPI{profileErr: &api.AuthError{Message: "token expired"}}
	mgr, st := newTestManager(t, mock)
	ctx := context.Background()
	require.NoError(t, st.Set(ctx, store.KeyToken, []byte("tok-stale")))

	require.NoError(t, mgr.Initialize(ctx))

	assert.False(t, mgr.IsAuthenticated())
	assert.Empty(t, mgr.Token())
	_, err := st.Get(ctx, store.KeyToken)
	assert.ErrorIs(t, err, store.ErrKeyNotFound)
}

func TestLogin_Success(t *testing.T) {
	mock := &mockAuthAPI{signInToken: "tok-1", profileUser: testUser()}
	mgr, st := newTestManager(t, mock)
	ctx := context.Background()

	require.NoError(t, mgr.Login(ctx, "a@b.com", "secret"))

	assert.True(t, mgr.IsAuthenticated())
	stored, err := st.Get(ctx, store.KeyToken)
	require.NoError(t, err)
	assert.Equal(t, []byte("tok-1"), stored)
}

func TestLogin_CredentialsRejected(t *testing.T) {
	mock := &mockAuthAPI{signInErr: &api.AuthError{Message: "Invalid email or password"}}
	mgr, _ := newTestManager(t, mock)

	err := mgr.Login(context.Background(), "a@b.com", "wrong")

	var credErr *CredentialError
	require.ErrorAs(t, err, &credErr)
	assert.Equal(t, "Invalid email or password", credErr.Error())
	assert.False(t, mgr.IsAuthenticated())
}

// A token issued but never hydrated must not outlive the failed login, in
// memory or on disk.
func TestLogin_ProfileFetchFailure(t *testing.T) {
	mock := &mockAuthAPI{signInToken: "tok-1", profileErr: errors.New("boom")}
	mgr, st := newTestManager(t, mock)
	ctx := context.Background()

	err := mgr.Login(ctx, "a@b.com", "secret")

	var profErr *ProfileFetchError
	require.ErrorAs(t, err, &profErr)
	assert.False(t, mgr.IsAuthenticated())
	assert.Empty(t, mgr.Token())
	_, ok := mgr.User()
	assert.False(t, ok)
	_, getErr := st.Get(ctx, store.KeyToken)
	assert.ErrorIs(t, getErr, store.ErrKeyNotFound)
}

func TestRegister_ValidationMessagesSurviveVerbatim(t *testing.T) {
	mock := &mockAuthAPI{registerErr: &api.ValidationError{
		Messages: []string{"Email has already been taken", "Password is too short"},
	}}
	mgr, _ := newTestManager(t, mock)

	err := mgr.Register(context.Background(), "a@b.com", "x", "Ada", "B")

	var valErr *api.ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, []string{"Email has already been taken", "Password is too short"}, valErr.Messages)
}

func TestRegister_Success(t *testing.T) {
	mock := &mockAuthAPI{registerToken: "tok-2", profileUser: testUser()}
	mgr, _ := newTestManager(t, mock)

	require.NoError(t, mgr.Register(context.Background(), "a@b.com", "secret", "Ada", "B"))
	assert.True(t, mgr.IsAuthenticated())
}

func TestLogout_ClearsEverything(t *testing.T) {
	mock := &mockAuthAPI{signInToken: "tok-1", profileUser: testUser()}
	mgr, st := newTestManager(t, mock)
	ctx := context.Background()
	require.NoError(t, mgr.Login(ctx, "a@b.com", "secret"))

	mgr.Logout(ctx)

	assert.Equal(t, 1, mock.signOutCalls)
	assert.False(t, mgr.IsAuthenticated())
	assert.Empty(t, mgr.Token())
	_, err := st.Get(ctx, store.KeyToken)
	assert.ErrorIs(t, err, store.ErrKeyNotFound)
}

// Remote sign-out failure never blocks local cleanup.
func TestLogout_RemoteFailureStillClearsLocally(t *testing.T) {
	mock := &mockAuthAPI{
		signInToken: "tok-1",
		profileUser: testUser(),
		signOutErr:  &api.NetworkError{Err: errors.New("connection refused")},
	}
	mgr, st := newTestManager(t, mock)
	ctx := context.Background()
	require.NoError(t, mgr.Login(ctx, "a@b.com", "secret"))

	mgr.Logout(ctx)

	assert.False(t, mgr.IsAuthenticated())
	_, err := st.Get(ctx, store.KeyToken)
	assert.ErrorIs(t, err, store.ErrKeyNotFound)
}

func TestIsAdmin(t *testing.T) {
	admin := testUser()
	admin.Role = api.RoleAdmin
	mock := &mockAuthAPI{signInToken: "tok-1", profileUser: admin}
	mgr, _ := newTestManager(t, mock)

	require.NoError(t, mgr.Login(context.Background(), "a@b.com", "secret"))
	assert.True(t, mgr.IsAdmin())
}

func TestUpdateProfile_RefreshesCachedUser(t *testing.T) {
	updated := testUser()
	updated.FirstName = "Grace"
	mock := &mockAuthAPI{signInToken: "tok-1", profileUser: testUser(), updatedUser: updated}
	mgr, _ := newTestManager(t, mock)
	ctx := context.Background()
	require.NoError(t, mgr.Login(ctx, "a@b.com", "secret"))

	require.NoError(t, mgr.UpdateProfile(ctx, "Grace", "B"))

	user, ok := mgr.User()
	require.True(t, ok)
	assert.Equal(t, "Grace", user.FirstName)
}
