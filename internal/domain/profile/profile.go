package profile

// Package profile contains the player profile model and the rules for
// merging backend user-level and game-level records into the cached view.

import (
	"fmt"
	"math/rand/v2"
	"regexp"
	"time"
	"unicode/utf8"

	"github.com/cheddaboards/cheddaboards-go/internal/domain/auth"
)

// Nickname length bounds, enforced client-side before any network call.
const (
	NicknameMinLen = 2
	NicknameMaxLen = 12
)

// Achievement is a single unlocked achievement for one game.
type Achievement struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	GameID      string `json:"gameId"`
}

// UserProfile is the backend's user-level record: one per account, spanning
// all games the user has played.
type UserProfile struct {
	Nickname     string
	AuthType     auth.AuthType
	Created      time.Time
	GameProfiles map[string]GameProfile
}

// GameProfile is the backend's per-game record for one user.
type GameProfile struct {
	GameID       string
	TotalScore   int64
	BestStreak   int64
	Achievements []Achievement
	LastPlayed   time.Time
	PlayCount    int
}

// LeaderboardEntry is one row of a game leaderboard.
type LeaderboardEntry struct {
	Nickname string
	Score    int64
	Streak   int64
	AuthType auth.AuthType
}

// Profile is the merged, cached view handed to the embedding host. It is
// derived state: always re-derivable from the backend, never authoritative.
type Profile struct {
	Nickname     string
	Score        int64
	Streak       int64
	Achievements []Achievement
	PlayCount    int
	LastPlayed   time.Time
	GameID       string
	AuthType     auth.AuthType
}

// Merge combines the user-level and game-level records. Numeric fields come
// from the game record; the nickname comes from the user record, falling
// back to fallbackNickname for brand-new players with no user profile yet.
// Either record may be nil.
func Merge(gameID string, authType auth.AuthType, fallbackNickname string, user *UserProfile, game *GameProfile) Profile {
	nickname := fallbackNickname
	if user != nil && user.Nickname != "" {
		nickname = user.Nickname
	}

	p := Profile{
		Nickname: nickname,
		GameID:   gameID,
		AuthType: authType,
	}
	if game != nil {
		p.Score = game.TotalScore
		p.Streak = game.BestStreak
		p.Achievements = game.Achievements
		p.PlayCount = game.PlayCount
		p.LastPlayed = game.LastPlayed
	}
	if p.Achievements == nil {
		p.Achievements = []Achievement{}
	}
	return p
}

// placeholderPattern matches auto-generated nicknames assigned at account
// creation, e.g. "Player4821".
var placeholderPattern = regexp.MustCompile(`^Player\d+$`)

// IsPlaceholder reports whether nickname looks auto-generated, meaning the
// client should offer the user a chance to personalize it.
func IsPlaceholder(nickname string) bool {
	return placeholderPattern.MatchString(nickname)
}

// RandomPlaceholder generates a randomized placeholder nickname.
func RandomPlaceholder() string {
	return fmt.Sprintf("Player%04d", rand.IntN(10000))
}

// ValidateNickname enforces the client-side nickname contract: 2 to 12 runes.
func ValidateNickname(nickname string) error {
	n := utf8.RuneCountInString(nickname)
	if n < NicknameMinLen {
		return &auth.ValidationError{Field: "nickname", Reason: fmt.Sprintf("must be at least %d characters", NicknameMinLen)}
	}
	if n > NicknameMaxLen {
		return &auth.ValidationError{Field: "nickname", Reason: fmt.Sprintf("must be at most %d characters", NicknameMaxLen)}
	}
	return nil
}

// TruncateNickname clamps a derived nickname hint to the maximum length.
func TruncateNickname(nickname string) string {
	runes := []rune(nickname)
	if len(runes) > NicknameMaxLen {
		return string(runes[:NicknameMaxLen])
	}
	return nickname
}
