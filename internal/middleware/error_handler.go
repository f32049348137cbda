package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"repo-lister/internal/application/dto"
	"repo-lister/internal/domain/repo"
)

// ErrorHandler renders errors recorded with c.Error once the handler chain
// returns. A NOT_FOUND domain error becomes 404 with its fixed message;
// anything else becomes 500.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		logger := zerolog.Ctx(c.Request.Context())

		var de *repo.DomainError
		if errors.As(err, &de) && de.Code == repo.CodeNotFound {
			logger.Debug().Err(err).Msg("upstream reported unknown user")
			c.JSON(http.StatusNotFound, dto.ErrorPayload{
				Status:  http.StatusNotFound,
				Message: de.Message,
			})
			return
		}

		logger.Error().Err(err).Str("code", repo.CodeOf(err)).Msg("request failed")
		c.JSON(http.StatusInternalServerError, dto.ErrorPayload{
			Status:  http.StatusInternalServerError,
			Message: http.StatusText(http.StatusInternalServerError),
		})
	}
}
