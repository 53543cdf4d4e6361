package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Niku17/JobSift/internal/apperr"
	"github.com/Niku17/JobSift/internal/domain/entity"
)

// StatusFor maps the error taxonomy onto HTTP statuses. Everything in
// the taxonomy is recoverable at the request boundary.
func StatusFor(err error) int {
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		return http.StatusBadRequest
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindUnauthorized:
		return http.StatusForbidden
	case apperr.KindDeadlineExpired:
		return http.StatusGone
	case apperr.KindDuplicateApplication:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c *gin.Context, err error) {
	status := StatusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal error"
	}
	c.JSON(status, gin.H{"error": msg})
}

func principalFrom(c *gin.Context) entity.Principal {
	return entity.Principal{
		ID:   c.GetString("user_id"),
		Role: entity.Role(c.GetString("role")),
	}
}
