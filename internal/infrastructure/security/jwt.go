package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	AccessTTL  = 15 * time.Minute
	RefreshTTL = 7 * 24 * time.Hour
)

var ErrInvalidToken = errors.New("invalid token")

// TokenManager issues tokens whose subject is the wallet address. The role is
// looked up on every request instead of being trusted from the token.
type TokenManager struct {
	accessSecret  []byte
	refreshSecret []byte
}

func NewTokenManager(accessSecret, refreshSecret string) *TokenManager {
	return &TokenManager{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
	}
}

func (m *TokenManager) Generate(wallet string) (string, string, error) {
	now := time.Now()

	at := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  wallet,
		"exp":  now.Add(AccessTTL).Unix(),
		"iat":  now.Unix(),
		"type": "access",
	})
	accessToken, err := at.SignedString(m.accessSecret)
	if err != nil {
		return "", "", err
	}

	// jti keeps two refresh tokens issued in the same second distinct
	rt := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  wallet,
		"exp":  now.Add(RefreshTTL).Unix(),
		"iat":  now.Unix(),
		"jti":  uuid.NewString(),
		"type": "refresh",
	})
	refreshToken, err := rt.SignedString(m.refreshSecret)
	if err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}

func (m *TokenManager) ValidateAccessToken(tokenStr string) (string, error) {
	return m.validate(tokenStr, m.accessSecret, "access")
}

func (m *TokenManager) ValidateRefreshToken(tokenStr string) (string, error) {
	return m.validate(tokenStr, m.refreshSecret, "refresh")
}

func (m *TokenManager) validate(tokenStr string, secret []byte, kind string) (string, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid || claims["type"] != kind {
		return "", ErrInvalidToken
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", ErrInvalidToken
	}
	return sub, nil
}
