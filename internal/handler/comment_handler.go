package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/posk43/api-final-yatube/internal/domain"
	"github.com/posk43/api-final-yatube/pkg/response"
)

// ListComments handles GET /api/v1/posts/:post_id/comments.
func (h *Handler) ListComments(c *gin.Context) {
	postID, ok := parseIDParam(c, "post_id")
	if !ok {
		return
	}

	comments, err := h.comments.ListByPost(c.Request.Context(), postID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	results := make([]domain.CommentResponse, 0, len(comments))
	for i := range comments {
		results = append(results, comments[i].ToResponse())
	}
	response.Success(c, results)
}

// CreateComment handles POST /api/v1/posts/:post_id/comments.
func (h *Handler) CreateComment(c *gin.Context) {
	postID, ok := parseIDParam(c, "post_id")
	if !ok {
		return
	}

	var req domain.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	comment, err := h.comments.Create(c.Request.Context(), actorFrom(c), postID, &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Created(c, comment.ToResponse())
}

// GetComment handles GET /api/v1/posts/:post_id/comments/:comment_id.
func (h *Handler) GetComment(c *gin.Context) {
	postID, ok := parseIDParam(c, "post_id")
	if !ok {
		return
	}
	commentID, ok := parseIDParam(c, "comment_id")
	if !ok {
		return
	}

	comment, err := h.comments.Get(c.Request.Context(), postID, commentID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, comment.ToResponse())
}

// UpdateComment handles PUT /api/v1/posts/:post_id/comments/:comment_id.
func (h *Handler) UpdateComment(c *gin.Context) {
	postID, ok := parseIDParam(c, "post_id")
	if !ok {
		return
	}
	commentID, ok := parseIDParam(c, "comment_id")
	if !ok {
		return
	}

	var req domain.UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	comment, err := h.comments.Update(c.Request.Context(), actorFrom(c), postID, commentID, &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, comment.ToResponse())
}

// PatchComment handles PATCH /api/v1/posts/:post_id/comments/:comment_id.
func (h *Handler) PatchComment(c *gin.Context) {
	postID, ok := parseIDParam(c, "post_id")
	if !ok {
		return
	}
	commentID, ok := parseIDParam(c, "comment_id")
	if !ok {
		return
	}

	var req domain.PatchCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	comment, err := h.comments.Patch(c.Request.Context(), actorFrom(c), postID, commentID, &req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, comment.ToResponse())
}

// DeleteComment handles DELETE /api/v1/posts/:post_id/comments/:comment_id.
func (h *Handler) DeleteComment(c *gin.Context) {
	postID, ok := parseIDParam(c, "post_id")
	if !ok {
		return
	}
	commentID, ok := parseIDParam(c, "comment_id")
	if !ok {
		return
	}

	if err := h.comments.Delete(c.Request.Context(), actorFrom(c), postID, commentID); err != nil {
		writeServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
