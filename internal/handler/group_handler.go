package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/posk43/api-final-yatube/pkg/response"
)

// ListGroups handles GET /api/v1/groups.
func (h *Handler) ListGroups(c *gin.Context) {
	groups, err := h.groups.List(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, groups)
}

// GetGroup handles GET /api/v1/groups/:group_id.
func (h *Handler) GetGroup(c *gin.Context) {
	id, ok := parseIDParam(c, "group_id")
	if !ok {
		return
	}

	group, err := h.groups.Get(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, group)
}
