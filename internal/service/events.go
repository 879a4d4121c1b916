package service

import (
	"github.com/cheddaboards/cheddaboards-go/internal/domain/auth"
	"github.com/cheddaboards/cheddaboards-go/internal/domain/profile"
	"github.com/cheddaboards/cheddaboards-go/internal/ports"
)

// notifier guards the optional host Events sink so callers never nil-check.
type notifier struct {
	sink ports.Events
}

func (n notifier) ProfileUpdated(p profile.Profile) {
	if n.sink != nil {
		n.sink.ProfileUpdated(p)
	}
}

func (n notifier) NicknameChanged(nickname string) {
	if n.sink != nil {
		n.sink.NicknameChanged(nickname)
	}
}

func (n notifier) LoginSucceeded(authType auth.AuthType, p profile.Profile) {
	if n.sink != nil {
		n.sink.LoginSucceeded(authType, p)
	}
}
