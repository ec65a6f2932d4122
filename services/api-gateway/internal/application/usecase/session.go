package usecase

import (
	"context"
	"errors"
	"log"

	"learnplatform/internal/domain"
	"learnplatform/internal/infrastructure/cache"
	"learnplatform/internal/infrastructure/security"
	"learnplatform/internal/navigation"

	"github.com/google/uuid"
)

type SessionState string

const (
	StateGuest        SessionState = "guest"
	StateUnregistered SessionState = "unregistered"
	StateReady        SessionState = "ready"
	StateError        SessionState = "error"
)

// Session is the role context of one request. It is rebuilt every time from
// the access token and a fresh role lookup.
type Session struct {
	State    SessionState `json:"state"`
	Wallet   string       `json:"wallet,omitempty"`
	UserID   uuid.UUID    `json:"user_id,omitempty"`
	Role     domain.Role  `json:"role"`
	Username string       `json:"username,omitempty"`
	Error    string       `json:"error,omitempty"`
}

func Guest() Session {
	return Session{State: StateGuest, Role: domain.RoleGuest}
}

func (s Session) Registered() bool {
	return s.State == StateReady
}

func (s Session) Nav() []navigation.Item {
	return navigation.For(s.Role, s.State != StateGuest)
}

// Redirect is where a client in this state should be sent, if anywhere.
func (s Session) Redirect() string {
	switch s.State {
	case StateGuest:
		return "/"
	case StateUnregistered:
		return "/register"
	}
	return ""
}

type SessionUseCase struct {
	procs        Procedures
	sessions     *cache.SessionCache
	tokenManager *security.TokenManager
}

func NewSessionUseCase(p Procedures, sc *cache.SessionCache, tm *security.TokenManager) *SessionUseCase {
	return &SessionUseCase{procs: p, sessions: sc, tokenManager: tm}
}

func (uc *SessionUseCase) Resolve(ctx context.Context, accessToken string) Session {
	if accessToken == "" {
		return Guest()
	}
	wallet, err := uc.tokenManager.ValidateAccessToken(accessToken)
	if err != nil {
		return Guest()
	}
	revoked, err := uc.sessions.IsRevoked(ctx, accessToken)
	if err != nil {
		log.Printf("revocation check failed: %v", err)
	}
	if revoked {
		return Guest()
	}

	acc, err := uc.procs.RoleByWallet(ctx, wallet)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return Session{State: StateUnregistered, Wallet: wallet, Role: domain.RoleGuest}
		}
		log.Printf("role lookup for %s failed: %v", wallet, err)
		return Session{State: StateError, Wallet: wallet, Role: domain.RoleGuest, Error: "could not load your account, try again"}
	}

	return Session{
		State:    StateReady,
		Wallet:   wallet,
		UserID:   acc.UserID,
		Role:     acc.Role,
		Username: acc.Username,
	}
}
