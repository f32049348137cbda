package handlers

import (
	"net/http"
	"strings"

	"repo-lister/internal/application/dto"
	"repo-lister/internal/application/service"

	"github.com/gin-gonic/gin"
)

// RepositoryHandler handles repository-related HTTP requests
type RepositoryHandler struct {
	repositoryService *service.RepositoryService
}

// NewRepositoryHandler creates a new repository handler
func NewRepositoryHandler(repositoryService *service.RepositoryService) *RepositoryHandler {
	return &RepositoryHandler{
		repositoryService: repositoryService,
	}
}

// ListUserRepositories handles GET /github/:username/repos
// @Summary List non-fork repositories with branches
// @Description Returns the user's non-fork repositories, each with its branches and the SHA at every branch tip
// @Tags Repositories
// @Produce json
// @Param username path string true "GitHub username"
// @Success 200 {array} dto.RepositoryResponse
// @Failure 400 {object} dto.ErrorPayload
// @Failure 404 {object} dto.ErrorPayload
// @Failure 500 {object} dto.ErrorPayload
// @Router /github/{username}/repos [get]
func (h *RepositoryHandler) ListUserRepositories(c *gin.Context) {
	username := c.Param("username")
	if strings.TrimSpace(username) == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorPayload{
			Status:  http.StatusBadRequest,
			Message: http.StatusText(http.StatusBadRequest),
		})
		return
	}

	repositories, err := h.repositoryService.ListNonForkRepositories(c.Request.Context(), username)
	if err != nil {
		// rendered by middleware.ErrorHandler
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, repositories)
}
