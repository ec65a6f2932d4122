package handlers

import (
	"net/http"

	"learnplatform/internal/domain"
	"learnplatform/services/api-gateway/internal/application/usecase"
	"learnplatform/services/api-gateway/internal/middleware"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	catalog *usecase.CatalogUseCase
}

func NewCatalogHandler(uc *usecase.CatalogUseCase) *CatalogHandler {
	return &CatalogHandler{catalog: uc}
}

// GET /api/v1/catalog
func (h *CatalogHandler) Get(c *gin.Context) {
	catalog, err := h.catalog.Get(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, catalog)
}

// POST /api/v1/catalog/categories
func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req domain.Category
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	cat, err := h.catalog.CreateCategory(c.Request.Context(), middleware.CurrentSession(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cat)
}
