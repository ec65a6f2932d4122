package handlers

import (
	"net/http"
	"strconv"

	"learnplatform/internal/infrastructure/repository"
	"learnplatform/services/api-gateway/internal/application/usecase"
	"learnplatform/services/api-gateway/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CourseHandler struct {
	courses *usecase.CourseUseCase
}

func NewCourseHandler(uc *usecase.CourseUseCase) *CourseHandler {
	return &CourseHandler{courses: uc}
}

func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return uuid.Nil, false
	}
	return id, true
}

// GET /api/v1/courses
func (h *CourseHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	f := repository.CourseFilter{
		Search: c.Query("search"),
		Limit:  limit,
		Offset: offset,
	}
	if t := c.Query("teacher"); t != "" {
		id, err := uuid.Parse(t)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid teacher"})
			return
		}
		f.TeacherID = &id
	}

	courses, total, err := h.courses.List(c.Request.Context(), f)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"courses": courses, "total": total})
}

// GET /api/v1/courses/:id
func (h *CourseHandler) GetOne(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	course, err := h.courses.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, course)
}

// POST /api/v1/courses
func (h *CourseHandler) Create(c *gin.Context) {
	var req usecase.CourseInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	course, err := h.courses.Create(c.Request.Context(), middleware.CurrentSession(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, course)
}

// DELETE /api/v1/courses/:id
func (h *CourseHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.courses.Delete(c.Request.Context(), middleware.CurrentSession(c), id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// POST /api/v1/courses/:id/enroll
func (h *CourseHandler) Enroll(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	e, err := h.courses.Enroll(c.Request.Context(), middleware.CurrentSession(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}
