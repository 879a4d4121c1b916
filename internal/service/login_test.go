package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/cheddaboards/cheddaboards-go/internal/domain/auth"
	"github.com/cheddaboards/cheddaboards-go/internal/domain/profile"
	"github.com/cheddaboards/cheddaboards-go/internal/mocks"
	mockauth "github.com/cheddaboards/cheddaboards-go/internal/mocks/auth"
	"github.com/cheddaboards/cheddaboards-go/internal/ports"
)

func TestLoginAnonymous_Success(t *testing.T) {
	f := newFixture(t)
	f.initialize(t)
	ctx := context.Background()

	f.backend.EXPECT().RegisterAnonymous(gomock.Any(), gomock.Any()).Return(nil)
	f.backend.EXPECT().GetUserProfile(gomock.Any(), auth.UserAnonymous, auth.AnonymousPrincipal).
		Return(&profile.UserProfile{Nickname: "Player0042", AuthType: auth.AuthAnonymous}, nil)
	f.backend.EXPECT().GetGameProfile(gomock.Any(), auth.UserAnonymous, auth.AnonymousPrincipal, testGameID).
		Return(&profile.GameProfile{GameID: testGameID, TotalScore: 500, BestStreak: 3}, nil)

	require.NoError(t, f.orch.LoginAnonymous(ctx))

	assert.IsType(t, auth.Anonymous{}, f.orch.State())
	assert.True(t, f.orch.IsAuthenticated())

	rec, ok := f.orch.CurrentRecord()
	require.True(t, ok)
	assert.Equal(t, auth.UserAnonymous, rec.UserType)
	assert.Equal(t, auth.AnonymousPrincipal, rec.UserID)
	assert.Equal(t, "Player0042", rec.Nickname)
	require.NotNil(t, f.store.Stored())

	p, ok := f.orch.Profile()
	require.True(t, ok)
	assert.Equal(t, int64(500), p.Score)

	require.Len(t, f.events.Logins, 1)
	assert.Equal(t, auth.AuthAnonymous, f.events.Logins[0])
}

func TestLoginAnonymous_SaveFailureStillLogsIn(t *testing.T) {
	f := newFixture(t)
	f.initialize(t)
	ctx := context.Background()

	f.store.SaveErr = errors.New("disk full")
	f.backend.EXPECT().RegisterAnonymous(gomock.Any(), gomock.Any()).Return(nil)
	f.backend.EXPECT().GetUserProfile(gomock.Any(), auth.UserAnonymous, auth.AnonymousPrincipal).
		Return(&profile.UserProfile{Nickname: "Player0042", AuthType: auth.AuthAnonymous}, nil)
	f.backend.EXPECT().GetGameProfile(gomock.Any(), auth.UserAnonymous, auth.AnonymousPrincipal, testGameID).
		Return(&profile.GameProfile{GameID: testGameID}, nil)

	require.NoError(t, f.orch.LoginAnonymous(ctx))
	assert.True(t, f.orch.IsAuthenticated())
	assert.Nil(t, f.store.Stored())
}

func TestLogin_NilEventsSinkIsSafe(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := mocks.NewMockBackend(ctrl)
	orch, err := New(Options{
		GameID: testGameID,
		Agent:  &mockauth.StaticFactory{Backend: backend},
		Store:  mockauth.NewMemoryAuthStore(),
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, err)
	ctx := context.Background()

	backend.EXPECT().GetGame(gomock.Any(), testGameID).
		Return(&ports.GameInfo{GameID: testGameID, Active: true}, nil)
	backend.EXPECT().RegisterAnonymous(gomock.Any(), gomock.Any()).Return(nil)
	backend.EXPECT().GetUserProfile(gomock.Any(), auth.UserAnonymous, auth.AnonymousPrincipal).
		Return(&profile.UserProfile{Nickname: "Player0042"}, nil).AnyTimes()
	backend.EXPECT().GetGameProfile(gomock.Any(), auth.UserAnonymous, auth.AnonymousPrincipal, testGameID).
		Return(&profile.GameProfile{GameID: testGameID}, nil).AnyTimes()
	backend.EXPECT().
		ChangeNickname(gomock.Any(), auth.UserAnonymous, auth.AnonymousPrincipal, "chedda", testGameID).
		Return(ports.NicknameChange{Nickname: "chedda"}, nil)

	require.NoError(t, orch.Init(ctx))
	require.NoError(t, orch.LoginAnonymous(ctx))
	res := orch.ChangeNickname(ctx, "chedda")
	require.NoError(t, res.Err)
	assert.True(t, orch.IsAuthenticated())
}

func TestLoginWithIdentity_Success(t *testing.T) {
	f := newFixture(t)
	f.initialize(t)
	ctx := context.Background()
	principal := f.identity.Identity.Principal()

	f.backend.EXPECT().RegisterPrincipalIdentityAndFetch(gomock.Any(), gomock.Any(), testGameID).
		Return(ports.LoginProfile{
			User: profile.UserProfile{Nickname: "chedda", AuthType: auth.AuthPrincipal},
			Game: &profile.GameProfile{GameID: testGameID, TotalScore: 900},
		}, nil)

	require.NoError(t, f.orch.LoginWithIdentity(ctx))

	state, ok := f.orch.State().(auth.DecentralizedIdentity)
	require.True(t, ok)
	assert.Equal(t, principal, state.PrincipalID)
	assert.Equal(t, 1, f.identity.ConnectCalls)

	rec, ok := f.orch.CurrentRecord()
	require.True(t, ok)
	assert.Equal(t, auth.UserPrincipal, rec.UserType)
	assert.Equal(t, "chedda", rec.Nickname)

	// The identity client is bound in addition to the init-time anonymous one.
	assert.Equal(t, 2, f.factory.BindCount())
}

func TestLoginWithIdentity_FailureLeavesStateUntouched(t *testing.T) {
	f := newFixture(t)
	f.initialize(t)
	ctx := context.Background()

	f.backend.EXPECT().RegisterPrincipalIdentityAndFetch(gomock.Any(), gomock.Any(), testGameID).
		Return(ports.LoginProfile{}, &auth.TransportError{Method: "principalLoginAndFetch", Cause: errors.New("timeout")})

	err := f.orch.LoginWithIdentity(ctx)
	var transport *auth.TransportError
	require.ErrorAs(t, err, &transport)

	assert.IsType(t, auth.Anonymous{}, f.orch.State())
	assert.False(t, f.orch.IsAuthenticated())
	assert.Nil(t, f.store.Stored())
	assert.Empty(t, f.events.Logins)
}

func TestLoginWithProvider_Success(t *testing.T) {
	f := newFixture(t)
	f.initialize(t)
	ctx := context.Background()
	f.verifier.SessionID = "ticket-7"
	f.verifier.Email = "chedda@example.com"

	f.backend.EXPECT().
		EstablishSocialSessionAndFetch(gomock.Any(), "chedda@example.com", gomock.Any(), auth.ProviderGoogle, testGameID).
		Return(ports.LoginProfile{
			User: profile.UserProfile{Nickname: "chedda", AuthType: auth.AuthGoogle},
		}, nil)

	err := f.orch.LoginWithProvider(ctx, ports.VerifyInput{
		Provider: auth.ProviderGoogle,
		IDToken:  "raw-token",
	})
	require.NoError(t, err)

	state, ok := f.orch.State().(auth.ProviderSession)
	require.True(t, ok)
	assert.Equal(t, "ticket-7", state.SessionID)
	assert.Equal(t, "chedda@example.com", state.Email)

	rec, ok := f.orch.CurrentRecord()
	require.True(t, ok)
	assert.Equal(t, auth.UserEmail, rec.UserType)
	assert.Equal(t, auth.AuthGoogle, rec.AuthType)
	assert.Equal(t, "ticket-7", rec.SessionID)

	require.Len(t, f.verifier.Calls, 1)
	assert.Equal(t, "raw-token", f.verifier.Calls[0].IDToken)
}

func TestLoginWithProvider_InputValidation(t *testing.T) {
	f := newFixture(t)
	f.initialize(t)
	ctx := context.Background()

	var vErr *auth.ValidationError
	err := f.orch.LoginWithProvider(ctx, ports.VerifyInput{Provider: "github", IDToken: "tok"})
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "provider", vErr.Field)

	err = f.orch.LoginWithProvider(ctx, ports.VerifyInput{Provider: auth.ProviderGoogle})
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "idToken", vErr.Field)

	assert.Empty(t, f.verifier.Calls)
}

func TestLoginWithProvider_VerifierRejection(t *testing.T) {
	f := newFixture(t)
	f.initialize(t)
	ctx := context.Background()

	f.verifier.ExchangeFunc = func(context.Context, ports.VerifyInput) (ports.VerifiedSession, error) {
		return ports.VerifiedSession{}, &auth.VerifierError{Provider: auth.ProviderGoogle, Reason: "rejected"}
	}

	err := f.orch.LoginWithProvider(ctx, ports.VerifyInput{Provider: auth.ProviderGoogle, IDToken: "tok"})
	var vErr *auth.VerifierError
	require.ErrorAs(t, err, &vErr)
	assert.False(t, f.orch.IsAuthenticated())
}

func TestLogin_GuardRejectsConcurrentLogin(t *testing.T) {
	f := newFixture(t)
	f.initialize(t)
	ctx := context.Background()

	started := make(chan struct{})
	release := make(chan struct{})
	f.identity.ConnectFunc = func(ctx context.Context) (auth.SignerIdentity, error) {
		close(started)
		<-release
		return nil, errors.New("aborted")
	}

	firstDone := make(chan error, 1)
	go func() { firstDone <- f.orch.LoginWithIdentity(ctx) }()

	<-started
	assert.ErrorIs(t, f.orch.LoginAnonymous(ctx), auth.ErrLoginInProgress)
	assert.ErrorIs(t, f.orch.LoginWithIdentity(ctx), auth.ErrLoginInProgress)

	close(release)
	require.Error(t, <-firstDone)

	// The guard is released even though the first login failed.
	f.backend.EXPECT().RegisterAnonymous(gomock.Any(), gomock.Any()).Return(nil)
	f.backend.EXPECT().GetUserProfile(gomock.Any(), auth.UserAnonymous, auth.AnonymousPrincipal).Return(nil, nil)
	f.backend.EXPECT().GetGameProfile(gomock.Any(), auth.UserAnonymous, auth.AnonymousPrincipal, testGameID).Return(nil, nil)
	require.NoError(t, f.orch.LoginAnonymous(ctx))
}

func TestLogin_PlaceholderNicknameNegotiation(t *testing.T) {
	f := newFixture(t)
	f.initialize(t)
	ctx := context.Background()
	f.prompter.Nickname = "SpeedyCheese"
	f.prompter.Confirmed = true

	f.backend.EXPECT().RegisterAnonymous(gomock.Any(), gomock.Any()).Return(nil)
	f.backend.EXPECT().GetUserProfile(gomock.Any(), auth.UserAnonymous, auth.AnonymousPrincipal).
		Return(&profile.UserProfile{Nickname: "Player0042"}, nil)
	f.backend.EXPECT().GetGameProfile(gomock.Any(), auth.UserAnonymous, auth.AnonymousPrincipal, testGameID).Return(nil, nil)
	f.backend.EXPECT().ChangeNickname(gomock.Any(), auth.UserAnonymous, auth.AnonymousPrincipal, "SpeedyCheese", testGameID).
		Return(ports.NicknameChange{Nickname: "SpeedyCheese"}, nil)

	require.NoError(t, f.orch.LoginAnonymous(ctx))

	rec, ok := f.orch.CurrentRecord()
	require.True(t, ok)
	assert.Equal(t, "SpeedyCheese", rec.Nickname)
	assert.Equal(t, 1, f.prompter.Calls)
	assert.Equal(t, []string{"SpeedyCheese"}, f.events.Nicknames)
}

func TestLogin_RealNicknameSkipsNegotiation(t *testing.T) {
	f := newFixture(t)
	f.initialize(t)
	ctx := context.Background()
	f.prompter.Confirmed = true

	f.backend.EXPECT().RegisterAnonymous(gomock.Any(), gomock.Any()).Return(nil)
	f.backend.EXPECT().GetUserProfile(gomock.Any(), auth.UserAnonymous, auth.AnonymousPrincipal).
		Return(&profile.UserProfile{Nickname: "chedda"}, nil)
	f.backend.EXPECT().GetGameProfile(gomock.Any(), auth.UserAnonymous, auth.AnonymousPrincipal, testGameID).Return(nil, nil)

	require.NoError(t, f.orch.LoginAnonymous(ctx))
	assert.Zero(t, f.prompter.Calls)
}

func TestLogout(t *testing.T) {
	f := newFixture(t)
	f.initialize(t)
	ctx := context.Background()

	f.backend.EXPECT().
		EstablishSocialSessionAndFetch(gomock.Any(), gomock.Any(), gomock.Any(), auth.ProviderGoogle, testGameID).
		Return(ports.LoginProfile{User: profile.UserProfile{Nickname: "chedda"}}, nil)
	require.NoError(t, f.orch.LoginWithProvider(ctx, ports.VerifyInput{Provider: auth.ProviderGoogle, IDToken: "tok"}))

	f.backend.EXPECT().DestroySession(gomock.Any(), f.verifier.SessionID).Return(nil)
	require.NoError(t, f.orch.Logout(ctx))

	assert.IsType(t, auth.Anonymous{}, f.orch.State())
	assert.False(t, f.orch.IsAuthenticated())
	assert.Nil(t, f.store.Stored())
	_, ok := f.orch.Profile()
	assert.False(t, ok)
}

func TestLogout_PrincipalDiscardsKeyMaterial(t *testing.T) {
	f := newFixture(t)
	f.initialize(t)
	ctx := context.Background()

	f.backend.EXPECT().RegisterPrincipalIdentityAndFetch(gomock.Any(), gomock.Any(), testGameID).
		Return(ports.LoginProfile{User: profile.UserProfile{Nickname: "chedda"}}, nil)
	require.NoError(t, f.orch.LoginWithIdentity(ctx))

	require.NoError(t, f.orch.Logout(ctx))
	assert.Equal(t, 1, f.identity.LogoutCalls)
	assert.False(t, f.identity.Live)
}

func TestNicknameHint(t *testing.T) {
	assert.Equal(t, "chedda", nicknameHint("not-a-jwt", "chedda@example.com"))
	assert.True(t, profile.IsPlaceholder(nicknameHint("not-a-jwt", "")))

	long := nicknameHint("not-a-jwt", "averylongemaillocalpart@example.com")
	assert.LessOrEqual(t, len([]rune(long)), profile.NicknameMaxLen)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	assert.Eventually(t, cond, 2*time.Second, 5*time.Millisecond)
}
