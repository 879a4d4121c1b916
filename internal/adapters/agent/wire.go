package agent

import (
	"time"

	"github.com/cheddaboards/cheddaboards-go/internal/domain/auth"
	"github.com/cheddaboards/cheddaboards-go/internal/domain/profile"
	"github.com/cheddaboards/cheddaboards-go/internal/ports"
)

// Wire DTOs for the backend JSON contract. Field names follow the backend
// schema; timestamps are unix milliseconds.

type wireAchievement struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	GameID      string `json:"gameId"`
}

type wireGameProfile struct {
	GameID       string            `json:"gameId"`
	TotalScore   int64             `json:"total_score"`
	BestStreak   int64             `json:"best_streak"`
	Achievements []wireAchievement `json:"achievements"`
	LastPlayed   int64             `json:"last_played"`
	PlayCount    int               `json:"play_count"`
}

type wireUserProfile struct {
	Nickname     string                     `json:"nickname"`
	AuthType     string                     `json:"authType"`
	Created      int64                      `json:"created"`
	GameProfiles map[string]wireGameProfile `json:"gameProfiles"`
}

type wireLoginProfile struct {
	User wireUserProfile  `json:"user"`
	Game *wireGameProfile `json:"game,omitempty"`
}

type wireLeaderboardRow struct {
	Nickname string `json:"nickname"`
	Score    int64  `json:"score"`
	Streak   int64  `json:"streak"`
	AuthType string `json:"authType"`
}

type wireGameInfo struct {
	GameID       string `json:"gameId"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	IsActive     bool   `json:"isActive"`
	TotalPlayers int    `json:"totalPlayers"`
	TotalPlays   int    `json:"totalPlays"`
}

func fromWireTime(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}

func fromWireAchievements(in []wireAchievement) []profile.Achievement {
	out := make([]profile.Achievement, 0, len(in))
	for _, a := range in {
		out = append(out, profile.Achievement(a))
	}
	return out
}

func toWireAchievement(a profile.Achievement) wireAchievement {
	return wireAchievement(a)
}

func fromWireGameProfile(in *wireGameProfile) *profile.GameProfile {
	if in == nil {
		return nil
	}
	return &profile.GameProfile{
		GameID:       in.GameID,
		TotalScore:   in.TotalScore,
		BestStreak:   in.BestStreak,
		Achievements: fromWireAchievements(in.Achievements),
		LastPlayed:   fromWireTime(in.LastPlayed),
		PlayCount:    in.PlayCount,
	}
}

func fromWireUserProfile(in *wireUserProfile) *profile.UserProfile {
	if in == nil {
		return nil
	}
	games := make(map[string]profile.GameProfile, len(in.GameProfiles))
	for id, g := range in.GameProfiles {
		games[id] = *fromWireGameProfile(&g)
	}
	return &profile.UserProfile{
		Nickname:     in.Nickname,
		AuthType:     auth.AuthType(in.AuthType),
		Created:      fromWireTime(in.Created),
		GameProfiles: games,
	}
}

func fromWireLoginProfile(in wireLoginProfile) ports.LoginProfile {
	return ports.LoginProfile{
		User: *fromWireUserProfile(&in.User),
		Game: fromWireGameProfile(in.Game),
	}
}
