package agent

import (
	"context"

	"github.com/cheddaboards/cheddaboards-go/internal/domain/auth"
	"github.com/cheddaboards/cheddaboards-go/internal/domain/profile"
	"github.com/cheddaboards/cheddaboards-go/internal/ports"
)

// Backend method implementations. Each maps one RPC to its wire shape.

var _ ports.Backend = (*Client)(nil)

func (c *Client) ValidateSession(ctx context.Context, ticket string) (ports.SessionValidation, error) {
	req := struct {
		SessionID string `json:"sessionId"`
	}{SessionID: ticket}
	var out struct {
		Valid    bool   `json:"valid"`
		Email    string `json:"email"`
		Nickname string `json:"nickname"`
	}
	if err := c.call(ctx, "validateSession", req, &out); err != nil {
		return ports.SessionValidation{}, err
	}
	if !out.Valid {
		return ports.SessionValidation{}, &auth.BackendRejection{Method: "validateSession", Reason: "session not valid"}
	}
	return ports.SessionValidation{Email: out.Email, Nickname: out.Nickname}, nil
}

func (c *Client) DestroySession(ctx context.Context, ticket string) error {
	req := struct {
		SessionID string `json:"sessionId"`
	}{SessionID: ticket}
	return c.call(ctx, "destroySession", req, nil)
}

func (c *Client) RegisterAnonymous(ctx context.Context, nickname string) error {
	req := struct {
		Nickname string `json:"nickname"`
	}{Nickname: nickname}
	return c.call(ctx, "anonymousLogin", req, nil)
}

func (c *Client) RegisterPrincipalIdentity(ctx context.Context, nickname string) error {
	req := struct {
		Nickname string `json:"nickname"`
	}{Nickname: nickname}
	return c.call(ctx, "principalLogin", req, nil)
}

func (c *Client) RegisterPrincipalIdentityAndFetch(ctx context.Context, nickname, gameID string) (ports.LoginProfile, error) {
	req := struct {
		Nickname string `json:"nickname"`
		GameID   string `json:"gameId"`
	}{Nickname: nickname, GameID: gameID}
	var out wireLoginProfile
	if err := c.call(ctx, "principalLoginAndFetch", req, &out); err != nil {
		return ports.LoginProfile{}, err
	}
	return fromWireLoginProfile(out), nil
}

func (c *Client) EstablishSocialSession(ctx context.Context, email, nickname string, provider auth.Provider) error {
	req := struct {
		Email    string `json:"email"`
		Nickname string `json:"nickname"`
		Provider string `json:"provider"`
	}{Email: email, Nickname: nickname, Provider: string(provider)}
	return c.call(ctx, "socialLogin", req, nil)
}

func (c *Client) EstablishSocialSessionAndFetch(ctx context.Context, email, nickname string, provider auth.Provider, gameID string) (ports.LoginProfile, error) {
	req := struct {
		Email    string `json:"email"`
		Nickname string `json:"nickname"`
		Provider string `json:"provider"`
		GameID   string `json:"gameId"`
	}{Email: email, Nickname: nickname, Provider: string(provider), GameID: gameID}
	var out wireLoginProfile
	if err := c.call(ctx, "socialLoginAndFetch", req, &out); err != nil {
		return ports.LoginProfile{}, err
	}
	return fromWireLoginProfile(out), nil
}

func (c *Client) SubmitScore(ctx context.Context, userType auth.UserType, userID, gameID string, score, streak int64) error {
	req := struct {
		UserIDType string `json:"userIdType"`
		UserID     string `json:"userId"`
		GameID     string `json:"gameId"`
		Score      int64  `json:"score"`
		Streak     int64  `json:"streak"`
	}{UserIDType: string(userType), UserID: userID, GameID: gameID, Score: score, Streak: streak}
	return c.call(ctx, "submitScore", req, nil)
}

func (c *Client) ChangeNickname(ctx context.Context, userType auth.UserType, userID, newNickname, gameID string) (ports.NicknameChange, error) {
	req := struct {
		UserIDType string `json:"userIdType"`
		UserID     string `json:"userId"`
		Nickname   string `json:"newNickname"`
		GameID     string `json:"gameId,omitempty"`
	}{UserIDType: string(userType), UserID: userID, Nickname: newNickname, GameID: gameID}
	var out struct {
		Nickname    string           `json:"nickname"`
		GameProfile *wireGameProfile `json:"gameProfile,omitempty"`
	}
	if err := c.call(ctx, "changeNickname", req, &out); err != nil {
		return ports.NicknameChange{}, err
	}
	return ports.NicknameChange{
		Nickname: out.Nickname,
		Game:     fromWireGameProfile(out.GameProfile),
	}, nil
}

func (c *Client) UnlockAchievement(ctx context.Context, userType auth.UserType, userID, gameID string, achievement profile.Achievement) error {
	req := struct {
		UserIDType  string          `json:"userIdType"`
		UserID      string          `json:"userId"`
		GameID      string          `json:"gameId"`
		Achievement wireAchievement `json:"achievement"`
	}{UserIDType: string(userType), UserID: userID, GameID: gameID, Achievement: toWireAchievement(achievement)}
	return c.call(ctx, "unlockAchievement", req, nil)
}

func (c *Client) TrackEvent(ctx context.Context, userType auth.UserType, userID, eventType, gameID string, metadata []ports.EventAttr) error {
	pairs := make([][2]string, 0, len(metadata))
	for _, attr := range metadata {
		pairs = append(pairs, [2]string{attr.Key, attr.Value})
	}
	req := struct {
		UserIDType string      `json:"userIdType"`
		UserID     string      `json:"userId"`
		EventType  string      `json:"eventType"`
		GameID     string      `json:"gameId"`
		Metadata   [][2]string `json:"metadata"`
	}{UserIDType: string(userType), UserID: userID, EventType: eventType, GameID: gameID, Metadata: pairs}
	return c.call(ctx, "trackEvent", req, nil)
}

func (c *Client) GetUserProfile(ctx context.Context, userType auth.UserType, userID string) (*profile.UserProfile, error) {
	req := struct {
		UserIDType string `json:"userIdType"`
		UserID     string `json:"userId"`
	}{UserIDType: string(userType), UserID: userID}
	var out *wireUserProfile
	if err := c.call(ctx, "getProfile", req, &out); err != nil {
		return nil, err
	}
	return fromWireUserProfile(out), nil
}

func (c *Client) GetGameProfile(ctx context.Context, userType auth.UserType, userID, gameID string) (*profile.GameProfile, error) {
	req := struct {
		UserIDType string `json:"userIdType"`
		UserID     string `json:"userId"`
		GameID     string `json:"gameId"`
	}{UserIDType: string(userType), UserID: userID, GameID: gameID}
	var out *wireGameProfile
	if err := c.call(ctx, "getGameProfile", req, &out); err != nil {
		return nil, err
	}
	return fromWireGameProfile(out), nil
}

func (c *Client) GetUserProfileBySession(ctx context.Context, ticket string) (*profile.UserProfile, error) {
	req := struct {
		SessionID string `json:"sessionId"`
	}{SessionID: ticket}
	var out *wireUserProfile
	if err := c.call(ctx, "getProfileBySession", req, &out); err != nil {
		return nil, err
	}
	return fromWireUserProfile(out), nil
}

func (c *Client) GetGameProfileBySession(ctx context.Context, ticket, gameID string) (*profile.GameProfile, error) {
	req := struct {
		SessionID string `json:"sessionId"`
		GameID    string `json:"gameId"`
	}{SessionID: ticket, GameID: gameID}
	var out *wireGameProfile
	if err := c.call(ctx, "getGameProfileBySession", req, &out); err != nil {
		return nil, err
	}
	return fromWireGameProfile(out), nil
}

func (c *Client) GetGame(ctx context.Context, gameID string) (*ports.GameInfo, error) {
	req := struct {
		GameID string `json:"gameId"`
	}{GameID: gameID}
	var out *wireGameInfo
	if err := c.call(ctx, "getGame", req, &out); err != nil {
		return nil, err
	}
	if out == nil {
		return nil, nil
	}
	return &ports.GameInfo{
		GameID:       out.GameID,
		Name:         out.Name,
		Description:  out.Description,
		Active:       out.IsActive,
		TotalPlayers: out.TotalPlayers,
		TotalPlays:   out.TotalPlays,
	}, nil
}

func (c *Client) RegisterGame(ctx context.Context, gameID, name, description string) error {
	req := struct {
		GameID      string `json:"gameId"`
		Name        string `json:"name"`
		Description string `json:"description"`
	}{GameID: gameID, Name: name, Description: description}
	return c.call(ctx, "registerGame", req, nil)
}

func (c *Client) Leaderboard(ctx context.Context, gameID string, sortBy ports.SortOrder, limit int) ([]profile.LeaderboardEntry, error) {
	req := struct {
		GameID string `json:"gameId"`
		SortBy string `json:"sortBy"`
		Limit  int    `json:"limit"`
	}{GameID: gameID, SortBy: string(sortBy), Limit: limit}
	var out []wireLeaderboardRow
	if err := c.call(ctx, "getLeaderboard", req, &out); err != nil {
		return nil, err
	}
	rows := make([]profile.LeaderboardEntry, 0, len(out))
	for _, r := range out {
		rows = append(rows, profile.LeaderboardEntry{
			Nickname: r.Nickname,
			Score:    r.Score,
			Streak:   r.Streak,
			AuthType: auth.AuthType(r.AuthType),
		})
	}
	return rows, nil
}
