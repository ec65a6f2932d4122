package handlers

import (
	"errors"
	"net/http"
	"strings"

	"learnplatform/internal/domain"
	"learnplatform/internal/infrastructure/security"
	"learnplatform/services/api-gateway/internal/application/usecase"

	"github.com/gin-gonic/gin"
)

const refreshCookie = "refresh_token"

type CookieConfig struct {
	Domain string
	Secure bool
}

type AuthHandler struct {
	auth   *usecase.AuthUseCase
	cookie CookieConfig
}

func NewAuthHandler(auth *usecase.AuthUseCase, cookie CookieConfig) *AuthHandler {
	return &AuthHandler{auth: auth, cookie: cookie}
}

type registerReq struct {
	Wallet    string `json:"wallet"`
	Username  string `json:"username"`
	FullName  string `json:"full_name"`
	Role      string `json:"role" binding:"required"`
	Signature string `json:"signature"`
}

type loginReq struct {
	Wallet    string `json:"wallet" binding:"required"`
	Signature string `json:"signature"`
}

// signerFor wraps a signature produced by the browser wallet. Text that does
// not decode is passed on as raw bytes so it fails verification like any
// other bad signature.
func (h *AuthHandler) signerFor(text string) security.Signer {
	if text == "" {
		return security.PresignedSigner{}
	}
	sig, err := h.auth.Verifier().DecodeSignature(text)
	if err != nil {
		sig = []byte(text)
	}
	return security.PresignedSigner{Signature: sig}
}

// POST /api/v1/auth/register/message
func (h *AuthHandler) RegisterMessage(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": security.RegistrationMessage(req.Username)})
}

// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	acc, err := h.auth.Register(c.Request.Context(), usecase.RegisterInput{
		Wallet:   req.Wallet,
		Username: req.Username,
		FullName: req.FullName,
		Role:     req.Role,
	}, h.signerFor(req.Signature))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user": gin.H{
			"id":       acc.UserID,
			"wallet":   req.Wallet,
			"username": acc.Username,
			"role":     acc.Role,
		},
		"redirect": "/",
	})
}

// GET /api/v1/auth/challenge?wallet=
func (h *AuthHandler) Challenge(c *gin.Context) {
	msg, err := h.auth.Challenge(c.Request.Context(), c.Query("wallet"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": msg})
}

// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	tokens, acc, err := h.auth.Login(c.Request.Context(), req.Wallet, h.signerFor(req.Signature))
	if errors.Is(err, domain.ErrUserNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "this wallet is not registered yet", "redirect": "/register"})
		return
	}
	if err != nil {
		writeError(c, err)
		return
	}

	h.setRefresh(c, tokens.RefreshToken)
	c.JSON(http.StatusOK, gin.H{
		"access_token": tokens.AccessToken,
		"role":         acc.Role,
		"username":     acc.Username,
	})
}

// POST /api/v1/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	refreshToken, err := c.Cookie(refreshCookie)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Refresh token not found"})
		return
	}

	tokens, err := h.auth.Refresh(c.Request.Context(), refreshToken)
	if err != nil {
		h.setRefresh(c, "")
		writeError(c, err)
		return
	}

	h.setRefresh(c, tokens.RefreshToken)
	c.JSON(http.StatusOK, gin.H{"access_token": tokens.AccessToken})
}

// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	refreshToken, _ := c.Cookie(refreshCookie)
	accessToken := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	if err := h.auth.Logout(c.Request.Context(), refreshToken, accessToken); err != nil {
		writeError(c, err)
		return
	}
	h.setRefresh(c, "")
	c.JSON(http.StatusOK, gin.H{"message": "Logged out", "redirect": "/"})
}

func (h *AuthHandler) setRefresh(c *gin.Context, token string) {
	maxAge := int(security.RefreshTTL.Seconds())
	if token == "" {
		maxAge = -1
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(refreshCookie, token, maxAge, "/", h.cookie.Domain, h.cookie.Secure, true)
}
