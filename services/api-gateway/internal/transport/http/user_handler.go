package handlers

import (
	"net/http"

	"learnplatform/internal/domain"
	"learnplatform/services/api-gateway/internal/application/usecase"
	"learnplatform/services/api-gateway/internal/middleware"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	profiles *usecase.ProfileUseCase
}

func NewUserHandler(uc *usecase.ProfileUseCase) *UserHandler {
	return &UserHandler{profiles: uc}
}

// GET /api/v1/profile
func (h *UserHandler) GetProfile(c *gin.Context) {
	p, err := h.profiles.Me(c.Request.Context(), middleware.CurrentSession(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// GET /api/v1/students/:wallet
func (h *UserHandler) Student(c *gin.Context) {
	h.public(c, domain.RoleStudent)
}

// GET /api/v1/teachers/:wallet
func (h *UserHandler) Teacher(c *gin.Context) {
	h.public(c, domain.RoleTeacher)
}

func (h *UserHandler) public(c *gin.Context, role domain.Role) {
	p, err := h.profiles.Public(c.Request.Context(), c.Param("wallet"), role)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}
