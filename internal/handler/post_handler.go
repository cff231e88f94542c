package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/posk43/api-final-yatube/internal/domain"
	"github.com/posk43/api-final-yatube/internal/repository"
	"github.com/posk43/api-final-yatube/pkg/response"
)

// writePostError maps post service errors. Group references arrive in
// request bodies, so an unknown group is a validation failure rather
// than a missing resource.
func writePostError(c *gin.Context, err error) {
	if errors.Is(err, repository.ErrGroupNotFound) {
		response.ValidationFailed(c, map[string]string{"group": "group does not exist"})
		return
	}
	writeServiceError(c, err)
}

// ListPosts handles GET /api/v1/posts.
func (h *Handler) ListPosts(c *gin.Context) {
	limit := queryInt(c, "limit", 0)
	offset := queryInt(c, "offset", 0)

	page, err := h.posts.List(c.Request.Context(), limit, offset)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, page)
}

// CreatePost handles POST /api/v1/posts.
func (h *Handler) CreatePost(c *gin.Context) {
	var req domain.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	post, err := h.posts.Create(c.Request.Context(), actorFrom(c), &req)
	if err != nil {
		writePostError(c, err)
		return
	}

	response.Created(c, post.ToResponse())
}

// GetPost handles GET /api/v1/posts/:post_id.
func (h *Handler) GetPost(c *gin.Context) {
	id, ok := parseIDParam(c, "post_id")
	if !ok {
		return
	}

	post, err := h.posts.Get(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, post.ToResponse())
}

// UpdatePost handles PUT /api/v1/posts/:post_id.
func (h *Handler) UpdatePost(c *gin.Context) {
	id, ok := parseIDParam(c, "post_id")
	if !ok {
		return
	}

	var req domain.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	post, err := h.posts.Update(c.Request.Context(), actorFrom(c), id, &req)
	if err != nil {
		writePostError(c, err)
		return
	}

	response.Success(c, post.ToResponse())
}

// PatchPost handles PATCH /api/v1/posts/:post_id.
func (h *Handler) PatchPost(c *gin.Context) {
	id, ok := parseIDParam(c, "post_id")
	if !ok {
		return
	}

	var req domain.PatchPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	post, err := h.posts.Patch(c.Request.Context(), actorFrom(c), id, &req)
	if err != nil {
		writePostError(c, err)
		return
	}

	response.Success(c, post.ToResponse())
}

// DeletePost handles DELETE /api/v1/posts/:post_id.
func (h *Handler) DeletePost(c *gin.Context) {
	id, ok := parseIDParam(c, "post_id")
	if !ok {
		return
	}

	if err := h.posts.Delete(c.Request.Context(), actorFrom(c), id); err != nil {
		writeServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// UploadPostImage handles POST /api/v1/posts/:post_id/image. The image
// arrives as a multipart form file under the "image" field.
func (h *Handler) UploadPostImage(c *gin.Context) {
	id, ok := parseIDParam(c, "post_id")
	if !ok {
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		response.BadRequest(c, "image file is required")
		return
	}
	if h.maxImageBytes > 0 && file.Size > h.maxImageBytes {
		response.BadRequest(c, "image too large")
		return
	}

	src, err := file.Open()
	if err != nil {
		response.BadRequest(c, "failed to read image")
		return
	}
	defer src.Close()

	post, err := h.posts.UploadImage(
		c.Request.Context(),
		actorFrom(c),
		id,
		file.Filename,
		file.Header.Get("Content-Type"),
		src,
		file.Size,
	)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, post.ToResponse())
}
