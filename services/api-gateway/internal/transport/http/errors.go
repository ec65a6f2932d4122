package handlers

import (
	"errors"
	"log"
	"net/http"

	"learnplatform/internal/domain"
	"learnplatform/services/api-gateway/internal/application/usecase"
	"learnplatform/services/api-gateway/internal/client"

	"github.com/gin-gonic/gin"
)

type errorMapping struct {
	err     error
	status  int
	message string
}

// Order matters only where one error wraps another.
var errorMappings = []errorMapping{
	{usecase.ErrWalletNotConnected, http.StatusBadRequest, ""},
	{usecase.ErrUsernameRequired, http.StatusBadRequest, ""},
	{usecase.ErrFieldTooLong, http.StatusBadRequest, ""},
	{domain.ErrInvalidRole, http.StatusBadRequest, "role must be student or teacher"},
	{usecase.ErrSignatureRejected, http.StatusBadRequest, "the wallet did not sign the message, please try again"},
	{usecase.ErrAuthenticationFailed, http.StatusUnauthorized, "authentication failed"},
	{usecase.ErrChallengeExpired, http.StatusUnauthorized, ""},
	{usecase.ErrSessionExpired, http.StatusUnauthorized, ""},
	{domain.ErrWalletTaken, http.StatusConflict, "this wallet is already registered"},
	{domain.ErrUsernameTaken, http.StatusConflict, "this username is already taken"},
	{domain.ErrUserAlreadyExists, http.StatusConflict, "this account already exists"},
	{domain.ErrUserNotFound, http.StatusNotFound, ""},
	{domain.ErrCourseNotFound, http.StatusNotFound, ""},
	{domain.ErrLessonNotFound, http.StatusNotFound, ""},
	{domain.ErrSectionNotFound, http.StatusNotFound, ""},
	{usecase.ErrQuestionNotFound, http.StatusNotFound, ""},
	{domain.ErrForbidden, http.StatusForbidden, ""},
	{domain.ErrInvalidLesson, http.StatusBadRequest, "-"},
	{domain.ErrCategoryInvalid, http.StatusBadRequest, ""},
	{domain.ErrNotAQuiz, http.StatusBadRequest, ""},
	{usecase.ErrTitleRequired, http.StatusBadRequest, ""},
	{usecase.ErrQuizSection, http.StatusBadRequest, ""},
	{usecase.ErrOptionOutOfRange, http.StatusBadRequest, ""},
	{client.ErrRejected, http.StatusBadRequest, "-"},
}

// writeError turns a use case error into a JSON error response. An empty
// message uses the sentinel's text, "-" uses the full wrapped text.
func writeError(c *gin.Context, err error) {
	for _, m := range errorMappings {
		if !errors.Is(err, m.err) {
			continue
		}
		msg := m.message
		switch msg {
		case "":
			msg = m.err.Error()
		case "-":
			msg = err.Error()
		}
		c.JSON(m.status, gin.H{"error": msg})
		return
	}

	log.Printf("%s %s: %v", c.Request.Method, c.FullPath(), err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong, please try again"})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
