package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/posk43/api-final-yatube/internal/domain"
	"github.com/posk43/api-final-yatube/pkg/response"
)

// ListFollows handles GET /api/v1/follow. The list is scoped to the
// acting follower; the search parameter filters by a substring of the
// followed username.
func (h *Handler) ListFollows(c *gin.Context) {
	follows, err := h.follows.List(c.Request.Context(), actorFrom(c), c.Query("search"))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	results := make([]domain.FollowResponse, 0, len(follows))
	for i := range follows {
		results = append(results, follows[i].ToResponse())
	}
	response.Success(c, results)
}

// CreateFollow handles POST /api/v1/follow.
func (h *Handler) CreateFollow(c *gin.Context) {
	var req domain.CreateFollowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	follow, err := h.follows.Create(c.Request.Context(), actorFrom(c), &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Created(c, follow.ToResponse())
}

// GetFollow handles GET /api/v1/follow/:follow_id.
func (h *Handler) GetFollow(c *gin.Context) {
	id, ok := parseIDParam(c, "follow_id")
	if !ok {
		return
	}

	follow, err := h.follows.Get(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, follow.ToResponse())
}

// DeleteFollow handles DELETE /api/v1/follow/:follow_id.
func (h *Handler) DeleteFollow(c *gin.Context) {
	id, ok := parseIDParam(c, "follow_id")
	if !ok {
		return
	}

	if err := h.follows.Delete(c.Request.Context(), actorFrom(c), id); err != nil {
		writeServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
