package handlers

import (
	"net/http"

	"learnplatform/internal/domain"
	"learnplatform/services/api-gateway/internal/application/usecase"
	"learnplatform/services/api-gateway/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type LessonHandler struct {
	lessons  *usecase.LessonUseCase
	progress *usecase.ProgressUseCase
}

func NewLessonHandler(l *usecase.LessonUseCase, p *usecase.ProgressUseCase) *LessonHandler {
	return &LessonHandler{lessons: l, progress: p}
}

// GET /api/v1/lessons?category=
func (h *LessonHandler) List(c *gin.Context) {
	var category *uuid.UUID
	if v := c.Query("category"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category"})
			return
		}
		category = &id
	}

	var (
		lessons []domain.Lesson
		err     error
	)
	if c.Query("mine") == "true" {
		lessons, err = h.lessons.Mine(c.Request.Context(), middleware.CurrentSession(c))
	} else {
		lessons, err = h.lessons.List(c.Request.Context(), category)
	}
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"lessons": lessons})
}

// GET /api/v1/lessons/:id
func (h *LessonHandler) GetOne(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	view, err := h.lessons.Get(c.Request.Context(), middleware.CurrentSession(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// POST /api/v1/lessons inserts all given lessons or none.
func (h *LessonHandler) Create(c *gin.Context) {
	var req struct {
		Lessons []domain.Lesson `json:"lessons" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	created, err := h.lessons.CreateBatch(c.Request.Context(), middleware.CurrentSession(c), req.Lessons)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"lessons": created})
}

// PUT /api/v1/lessons/:id
func (h *LessonHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req domain.Lesson
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	lesson, err := h.lessons.Update(c.Request.Context(), middleware.CurrentSession(c), id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, lesson)
}

// DELETE /api/v1/lessons/:id
func (h *LessonHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.lessons.Delete(c.Request.Context(), middleware.CurrentSession(c), id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// PUT /api/v1/lessons/:id/position
func (h *LessonHandler) Position(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req struct {
		SectionID string `json:"section_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := h.progress.SavePosition(c.Request.Context(), middleware.CurrentSession(c), id, req.SectionID); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// POST /api/v1/lessons/:id/sections/:sid/complete
func (h *LessonHandler) Complete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	next, err := h.progress.CompleteSection(c.Request.Context(), middleware.CurrentSession(c), id, c.Param("sid"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"next_index": next})
}

// GET /api/v1/lessons/:id/sections/:sid/progress
func (h *LessonHandler) SectionProgress(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	row, err := h.progress.SectionProgress(c.Request.Context(), middleware.CurrentSession(c), id, c.Param("sid"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"progress": row})
}

// POST /api/v1/lessons/:id/sections/:sid/quiz/answer
func (h *LessonHandler) Answer(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req struct {
		QuestionID string `json:"question_id" binding:"required"`
		Option     *int   `json:"option" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	err := h.progress.Answer(c.Request.Context(), middleware.CurrentSession(c), id, c.Param("sid"), req.QuestionID, *req.Option)
	if err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// POST /api/v1/lessons/:id/sections/:sid/quiz/submit
func (h *LessonHandler) Submit(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	outcome, err := h.progress.Submit(c.Request.Context(), middleware.CurrentSession(c), id, c.Param("sid"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, outcome)
}
