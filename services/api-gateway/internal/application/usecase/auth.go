package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"unicode/utf8"

	"learnplatform/internal/domain"
	"learnplatform/internal/infrastructure/cache"
	"learnplatform/internal/infrastructure/security"
	"learnplatform/services/api-gateway/internal/client"

	"github.com/google/uuid"
)

const maxFieldLength = 30

var (
	ErrWalletNotConnected   = errors.New("connect a wallet first")
	ErrUsernameRequired     = errors.New("username is required")
	ErrFieldTooLong         = errors.New("username and name must be at most 30 characters")
	ErrSignatureRejected    = security.ErrSignatureRejected
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrChallengeExpired     = errors.New("sign-in challenge expired, request a new one")
	ErrSessionExpired       = errors.New("session expired, sign in again")
)

// Procedures is the remote procedure surface the gateway relies on.
type Procedures interface {
	CreateAccount(ctx context.Context, role domain.Role, wallet, username, fullName, signature string) (*client.Account, error)
	RoleByWallet(ctx context.Context, wallet string) (*client.Account, error)
	RelativeCourses(ctx context.Context) ([]domain.CourseCard, error)
}

var _ Procedures = (*client.ProcedureClient)(nil)

type RegisterInput struct {
	Wallet   string
	Username string
	FullName string
	Role     string
}

type Tokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"-"`
}

type AuthUseCase struct {
	procs        Procedures
	sessions     *cache.SessionCache
	verifier     security.WalletVerifier
	tokenManager *security.TokenManager
}

func NewAuthUseCase(p Procedures, sc *cache.SessionCache, v security.WalletVerifier, tm *security.TokenManager) *AuthUseCase {
	return &AuthUseCase{
		procs:        p,
		sessions:     sc,
		verifier:     v,
		tokenManager: tm,
	}
}

func (uc *AuthUseCase) Verifier() security.WalletVerifier {
	return uc.verifier
}

// Register proves wallet ownership with a signature over the registration
// message and then creates the account through the matching procedure.
// Nothing reaches the backend unless the input is valid and the signature
// verifies.
func (uc *AuthUseCase) Register(ctx context.Context, in RegisterInput, signer security.Signer) (*client.Account, error) {
	wallet := strings.TrimSpace(in.Wallet)
	username := strings.TrimSpace(in.Username)
	fullName := strings.TrimSpace(in.FullName)

	if wallet == "" {
		return nil, ErrWalletNotConnected
	}
	if username == "" {
		return nil, ErrUsernameRequired
	}
	if utf8.RuneCountInString(username) > maxFieldLength || utf8.RuneCountInString(fullName) > maxFieldLength {
		return nil, ErrFieldTooLong
	}
	role, err := domain.ParseRole(in.Role)
	if err != nil {
		return nil, err
	}

	message := []byte(security.RegistrationMessage(username))
	sig, err := signer.SignMessage(ctx, message)
	if err != nil {
		return nil, ErrSignatureRejected
	}
	if err := uc.verifier.Verify(wallet, message, sig); err != nil {
		return nil, ErrAuthenticationFailed
	}

	acc, err := uc.procs.CreateAccount(ctx, role, wallet, username, fullName, security.EncodeSignature(sig))
	if err != nil {
		return nil, err
	}
	acc.Username = username
	return acc, nil
}

// Challenge starts a sign-in and returns the message the wallet has to sign.
func (uc *AuthUseCase) Challenge(ctx context.Context, wallet string) (string, error) {
	wallet = strings.TrimSpace(wallet)
	if wallet == "" {
		return "", ErrWalletNotConnected
	}
	nonce := uuid.NewString()
	if err := uc.sessions.SaveChallenge(ctx, wallet, nonce); err != nil {
		return "", err
	}
	return security.LoginMessage(wallet, nonce), nil
}

// Login answers the pending challenge. An unregistered wallet gets
// domain.ErrUserNotFound so the caller can send it to registration.
func (uc *AuthUseCase) Login(ctx context.Context, wallet string, signer security.Signer) (*Tokens, *client.Account, error) {
	wallet = strings.TrimSpace(wallet)
	if wallet == "" {
		return nil, nil, ErrWalletNotConnected
	}

	nonce, err := uc.sessions.PendingChallenge(ctx, wallet)
	if err != nil {
		if errors.Is(err, cache.ErrNotFound) {
			return nil, nil, ErrChallengeExpired
		}
		return nil, nil, err
	}

	message := []byte(security.LoginMessage(wallet, nonce))
	sig, err := signer.SignMessage(ctx, message)
	if err != nil {
		return nil, nil, ErrSignatureRejected
	}
	if err := uc.verifier.Verify(wallet, message, sig); err != nil {
		return nil, nil, ErrAuthenticationFailed
	}

	// The challenge is spent only by a valid answer.
	if err := uc.sessions.ConsumeChallenge(ctx, wallet, nonce); err != nil {
		if errors.Is(err, cache.ErrNotFound) {
			return nil, nil, ErrChallengeExpired
		}
		return nil, nil, err
	}

	acc, err := uc.procs.RoleByWallet(ctx, wallet)
	if err != nil {
		return nil, nil, err
	}

	tokens, err := uc.generateAndSaveTokens(ctx, wallet)
	if err != nil {
		return nil, nil, err
	}
	return tokens, acc, nil
}

func (uc *AuthUseCase) Refresh(ctx context.Context, oldRefreshToken string) (*Tokens, error) {
	wallet, err := uc.tokenManager.ValidateRefreshToken(oldRefreshToken)
	if err != nil {
		return nil, ErrSessionExpired
	}

	stored, err := uc.sessions.CheckRefresh(ctx, oldRefreshToken)
	if err != nil || stored != wallet {
		return nil, ErrSessionExpired
	}

	if err := uc.sessions.DeleteRefresh(ctx, oldRefreshToken); err != nil {
		log.Printf("failed to revoke refresh token for %s: %v", wallet, err)
	}
	return uc.generateAndSaveTokens(ctx, wallet)
}

// Logout ends the session on this device: the refresh token is deleted and
// the access token, if still valid, is revoked.
func (uc *AuthUseCase) Logout(ctx context.Context, refreshToken, accessToken string) error {
	if refreshToken != "" {
		if err := uc.sessions.DeleteRefresh(ctx, refreshToken); err != nil {
			return err
		}
	}
	if accessToken != "" {
		if _, err := uc.tokenManager.ValidateAccessToken(accessToken); err == nil {
			return uc.sessions.RevokeAccess(ctx, accessToken, security.AccessTTL)
		}
	}
	return nil
}

func (uc *AuthUseCase) generateAndSaveTokens(ctx context.Context, wallet string) (*Tokens, error) {
	access, refresh, err := uc.tokenManager.Generate(wallet)
	if err != nil {
		return nil, fmt.Errorf("generate tokens: %w", err)
	}
	if err := uc.sessions.SaveRefresh(ctx, wallet, refresh); err != nil {
		return nil, fmt.Errorf("save refresh token: %w", err)
	}
	return &Tokens{AccessToken: access, RefreshToken: refresh}, nil
}
