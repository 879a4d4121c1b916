package service

import (
	"context"
	"fmt"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/cheddaboards/cheddaboards-go/internal/domain/auth"
	"github.com/cheddaboards/cheddaboards-go/internal/domain/profile"
	"github.com/cheddaboards/cheddaboards-go/internal/ports"
)

// loginAnonymous gets the fixture into an authenticated anonymous session.
func (f *fixture) loginAnonymous(t *testing.T) {
	t.Helper()
	f.backend.EXPECT().RegisterAnonymous(gomock.Any(), gomock.Any()).Return(nil)
	f.backend.EXPECT().GetUserProfile(gomock.Any(), auth.UserAnonymous, auth.AnonymousPrincipal).
		Return(&profile.UserProfile{Nickname: "Player0042"}, nil)
	f.backend.EXPECT().GetGameProfile(gomock.Any(), auth.UserAnonymous, auth.AnonymousPrincipal, testGameID).
		Return(&profile.GameProfile{GameID: testGameID, TotalScore: 100}, nil)
	require.NoError(t, f.orch.LoginAnonymous(context.Background()))
}

// loginSocial gets the fixture into a ticket-backed session.
func (f *fixture) loginSocial(t *testing.T) {
	t.Helper()
	f.backend.EXPECT().
		EstablishSocialSessionAndFetch(gomock.Any(), gomock.Any(), gomock.Any(), auth.ProviderGoogle, testGameID).
		Return(ports.LoginProfile{User: profile.UserProfile{Nickname: "chedda"}}, nil)
	require.NoError(t, f.orch.LoginWithProvider(context.Background(), ports.VerifyInput{
		Provider: auth.ProviderGoogle,
		IDToken:  "tok",
	}))
}

func TestSubmitScore_ValidationRejectsBeforeNetwork(t *testing.T) {
	f := newFixture(t)
	f.initialize(t)
	f.loginAnonymous(t)
	ctx := context.Background()

	// No SubmitScore expectation is registered: a network call would fail
	// the controller.
	for _, tc := range []struct {
		name          string
		score, streak float64
	}{
		{"negative score", -1, 0},
		{"negative streak", 10, -2},
		{"nan score", math.NaN(), 0},
		{"inf streak", 10, math.Inf(1)},
	} {
		t.Run(tc.name, func(t *testing.T) {
			res := f.orch.SubmitScore(ctx, tc.score, tc.streak)
			assert.False(t, res.OK)
			var vErr *auth.ValidationError
			assert.ErrorAs(t, res.Err, &vErr)
		})
	}
}

func TestSubmitScore_RequiresAccount(t *testing.T) {
	f := newFixture(t)
	f.initialize(t)

	res := f.orch.SubmitScore(context.Background(), 10, 1)
	assert.ErrorIs(t, res.Err, auth.ErrNotAuthenticated)
}

func TestSubmitScore_FloorsFractionalValues(t *testing.T) {
	f := newFixture(t)
	f.initialize(t)
	f.loginAnonymous(t)
	ctx := context.Background()

	f.backend.EXPECT().
		SubmitScore(gomock.Any(), auth.UserAnonymous, auth.AnonymousPrincipal, testGameID, int64(99), int64(3)).
		Return(nil)
	f.backend.EXPECT().GetUserProfile(gomock.Any(), auth.UserAnonymous, auth.AnonymousPrincipal).Return(nil, nil).AnyTimes()
	f.backend.EXPECT().GetGameProfile(gomock.Any(), auth.UserAnonymous, auth.AnonymousPrincipal, testGameID).Return(nil, nil).AnyTimes()

	res := f.orch.SubmitScore(ctx, 99.9, 3.2)
	assert.True(t, res.OK)
}

func TestSubmitScore_TicketSessionRoutesBySession(t *testing.T) {
	f := newFixture(t)
	f.initialize(t)
	f.loginSocial(t)
	ctx := context.Background()

	f.backend.EXPECT().
		SubmitScore(gomock.Any(), auth.UserSession, f.verifier.SessionID, testGameID, int64(500), int64(0)).
		Return(nil)
	f.backend.EXPECT().GetUserProfileBySession(gomock.Any(), f.verifier.SessionID).Return(nil, nil).AnyTimes()
	f.backend.EXPECT().GetGameProfileBySession(gomock.Any(), f.verifier.SessionID, testGameID).Return(nil, nil).AnyTimes()

	res := f.orch.SubmitScore(ctx, 500, 0)
	assert.True(t, res.OK)
}

func TestSubmitScore_RefreshesProfileInBackground(t *testing.T) {
	f := newFixture(t)
	f.initialize(t)
	f.loginAnonymous(t)
	ctx := context.Background()

	f.backend.EXPECT().
		SubmitScore(gomock.Any(), auth.UserAnonymous, auth.AnonymousPrincipal, testGameID, int64(200), int64(1)).
		Return(nil)
	f.backend.EXPECT().GetUserProfile(gomock.Any(), auth.UserAnonymous, auth.AnonymousPrincipal).
		Return(&profile.UserProfile{Nickname: "Player0042"}, nil)
	f.backend.EXPECT().GetGameProfile(gomock.Any(), auth.UserAnonymous, auth.AnonymousPrincipal, testGameID).
		Return(&profile.GameProfile{GameID: testGameID, TotalScore: 300}, nil)

	res := f.orch.SubmitScore(ctx, 200, 1)
	require.True(t, res.OK)

	waitFor(t, func() bool {
		p, ok := f.orch.Profile()
		return ok && p.Score == 300
	})
	waitFor(t, func() bool { return len(f.events.ProfileUpdates()) >= 1 })
}

func TestSubmitScore_StaleIdentityExpiresSession(t *testing.T) {
	f := newFixture(t)
	f.initialize(t)
	ctx := context.Background()

	f.backend.EXPECT().RegisterPrincipalIdentityAndFetch(gomock.Any(), gomock.Any(), testGameID).
		Return(ports.LoginProfile{User: profile.UserProfile{Nickname: "chedda"}}, nil)
	require.NoError(t, f.orch.LoginWithIdentity(ctx))

	// The key expires after login; the next mutating call must fail locally.
	f.identity.Live = false

	res := f.orch.SubmitScore(ctx, 10, 0)
	assert.ErrorIs(t, res.Err, auth.ErrSessionExpired)
	assert.False(t, f.orch.IsAuthenticated())
	assert.IsType(t, auth.Anonymous{}, f.orch.State())
	assert.Nil(t, f.store.Stored())
}

func TestSubmitScore_BackendRejectionSurfaces(t *testing.T) {
	f := newFixture(t)
	f.initialize(t)
	f.loginAnonymous(t)
	ctx := context.Background()

	f.backend.EXPECT().
		SubmitScore(gomock.Any(), auth.UserAnonymous, auth.AnonymousPrincipal, testGameID, int64(10), int64(0)).
		Return(&auth.BackendRejection{Method: "submitScore", Reason: "game inactive"})

	res := f.orch.SubmitScore(ctx, 10, 0)
	assert.False(t, res.OK)
	var rejection *auth.BackendRejection
	assert.ErrorAs(t, res.Err, &rejection)
}

func TestChangeNickname(t *testing.T) {
	f := newFixture(t)
	f.initialize(t)
	f.loginAnonymous(t)
	ctx := context.Background()

	f.backend.EXPECT().
		ChangeNickname(gomock.Any(), auth.UserAnonymous, auth.AnonymousPrincipal, "SpeedyCheese", testGameID).
		Return(ports.NicknameChange{Nickname: "SpeedyCheese"}, nil)
	f.backend.EXPECT().GetUserProfile(gomock.Any(), auth.UserAnonymous, auth.AnonymousPrincipal).Return(nil, nil).AnyTimes()
	f.backend.EXPECT().GetGameProfile(gomock.Any(), auth.UserAnonymous, auth.AnonymousPrincipal, testGameID).Return(nil, nil).AnyTimes()

	res := f.orch.ChangeNickname(ctx, "SpeedyCheese")
	require.True(t, res.OK)
	assert.Equal(t, "SpeedyCheese", res.Message)

	rec, ok := f.orch.CurrentRecord()
	require.True(t, ok)
	assert.Equal(t, "SpeedyCheese", rec.Nickname)
	require.NotNil(t, f.store.Stored())
	assert.Equal(t, "SpeedyCheese", f.store.Stored().Nickname)
	assert.Contains(t, f.events.Nicknames, "SpeedyCheese")
}

func TestChangeNickname_LengthBounds(t *testing.T) {
	f := newFixture(t)
	f.initialize(t)
	f.loginAnonymous(t)
	ctx := context.Background()

	var vErr *auth.ValidationError
	res := f.orch.ChangeNickname(ctx, "x")
	require.ErrorAs(t, res.Err, &vErr)

	res = f.orch.ChangeNickname(ctx, "ThisNameIsTooLong")
	require.ErrorAs(t, res.Err, &vErr)
}

func TestUnlockAchievement(t *testing.T) {
	f := newFixture(t)
	f.initialize(t)
	f.loginAnonymous(t)
	ctx := context.Background()

	f.backend.EXPECT().
		UnlockAchievement(gomock.Any(), auth.UserAnonymous, auth.AnonymousPrincipal, testGameID,
			profile.Achievement{ID: "first-win", Name: "First Win", GameID: testGameID}).
		Return(nil)
	f.backend.EXPECT().GetUserProfile(gomock.Any(), auth.UserAnonymous, auth.AnonymousPrincipal).Return(nil, nil).AnyTimes()
	f.backend.EXPECT().GetGameProfile(gomock.Any(), auth.UserAnonymous, auth.AnonymousPrincipal, testGameID).Return(nil, nil).AnyTimes()

	res := f.orch.UnlockAchievement(ctx, profile.Achievement{ID: "first-win", Name: "First Win"})
	assert.True(t, res.OK)

	res = f.orch.UnlockAchievement(ctx, profile.Achievement{})
	var vErr *auth.ValidationError
	assert.ErrorAs(t, res.Err, &vErr)
}

func TestTrackEvent_WorksLoggedOut(t *testing.T) {
	f := newFixture(t)
	f.initialize(t)
	ctx := context.Background()

	f.backend.EXPECT().
		TrackEvent(gomock.Any(), auth.UserAnonymous, auth.AnonymousPrincipal, "level_start", testGameID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ auth.UserType, _, _, _ string, attrs []ports.EventAttr) error {
			assert.Contains(t, attrs, ports.EventAttr{Key: "authType", Value: "anonymous"})
			assert.Contains(t, attrs, ports.EventAttr{Key: "level", Value: "3"})
			return nil
		})

	res := f.orch.TrackEvent(ctx, "level_start", map[string]string{"level": "3"})
	assert.True(t, res.OK)

	res = f.orch.TrackEvent(ctx, "", nil)
	var vErr *auth.ValidationError
	assert.ErrorAs(t, res.Err, &vErr)
}

func TestChangeNickname_ConcurrentWithRefresh(t *testing.T) {
	f := newFixture(t)
	f.initialize(t)
	f.loginAnonymous(t)
	ctx := context.Background()

	f.backend.EXPECT().
		ChangeNickname(gomock.Any(), auth.UserAnonymous, auth.AnonymousPrincipal, gomock.Any(), testGameID).
		DoAndReturn(func(_ context.Context, _ auth.UserType, _, nick, _ string) (ports.NicknameChange, error) {
			return ports.NicknameChange{Nickname: nick}, nil
		}).AnyTimes()
	f.backend.EXPECT().GetUserProfile(gomock.Any(), auth.UserAnonymous, auth.AnonymousPrincipal).
		Return(&profile.UserProfile{Nickname: "Player0042"}, nil).AnyTimes()
	f.backend.EXPECT().GetGameProfile(gomock.Any(), auth.UserAnonymous, auth.AnonymousPrincipal, testGameID).
		Return(&profile.GameProfile{GameID: testGameID, TotalScore: 100}, nil).AnyTimes()

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		nick := fmt.Sprintf("nick%02d", i)
		wg.Add(2)
		go func() {
			defer wg.Done()
			res := f.orch.ChangeNickname(ctx, nick)
			assert.NoError(t, res.Err)
		}()
		go func() {
			defer wg.Done()
			f.orch.Refresh(ctx)
			_, _ = f.orch.Profile()
		}()
	}
	wg.Wait()

	rec, ok := f.orch.CurrentRecord()
	require.True(t, ok)
	assert.Regexp(t, `^nick\d\d$`, rec.Nickname)
}
