package handlers

import (
	"net/http"

	"learnplatform/services/api-gateway/internal/application/usecase"
	"learnplatform/services/api-gateway/internal/middleware"

	"github.com/gin-gonic/gin"
)

type SessionHandler struct {
	home *usecase.HomeUseCase
}

func NewSessionHandler(home *usecase.HomeUseCase) *SessionHandler {
	return &SessionHandler{home: home}
}

// GET /api/v1/session
func (h *SessionHandler) Session(c *gin.Context) {
	s := middleware.CurrentSession(c)
	body := gin.H{
		"state":    s.State,
		"wallet":   s.Wallet,
		"role":     s.Role,
		"username": s.Username,
		"nav":      s.Nav(),
	}
	if s.Error != "" {
		body["error"] = s.Error
	}
	if r := s.Redirect(); r != "" {
		body["redirect"] = r
	}
	c.JSON(http.StatusOK, body)
}

// GET /api/v1/home
func (h *SessionHandler) Home(c *gin.Context) {
	home, err := h.home.Get(c.Request.Context(), middleware.CurrentSession(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, home)
}
