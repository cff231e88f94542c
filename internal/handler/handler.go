package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/posk43/api-final-yatube/internal/repository"
	"github.com/posk43/api-final-yatube/internal/service"
	"github.com/posk43/api-final-yatube/pkg/middleware"
	"github.com/posk43/api-final-yatube/pkg/response"
)

// Handler handles HTTP requests for the content API.
type Handler struct {
	posts          service.PostService
	comments       service.CommentService
	groups         service.GroupService
	follows        service.FollowService
	authMiddleware *middleware.AuthMiddleware
	maxImageBytes  int64
}

// NewHandler creates a new HTTP handler.
func NewHandler(
	posts service.PostService,
	comments service.CommentService,
	groups service.GroupService,
	follows service.FollowService,
	authMiddleware *middleware.AuthMiddleware,
	maxImageBytes int64,
) *Handler {
	return &Handler{
		posts:          posts,
		comments:       comments,
		groups:         groups,
		follows:        follows,
		authMiddleware: authMiddleware,
		maxImageBytes:  maxImageBytes,
	}
}

// RegisterRoutes registers all routes onto the Gin engine. Reads on
// posts, comments, and groups are open; writes require auth; the follow
// resource requires auth for everything.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	optional := h.authMiddleware.OptionalAuth()
	required := h.authMiddleware.RequireAuth()

	api := r.Group("/api/v1")
	{
		posts := api.Group("/posts")
		{
			posts.GET("", optional, h.ListPosts)
			posts.POST("", required, h.CreatePost)
			posts.GET("/:post_id", optional, h.GetPost)
			posts.PUT("/:post_id", required, h.UpdatePost)
			posts.PATCH("/:post_id", required, h.PatchPost)
			posts.DELETE("/:post_id", required, h.DeletePost)
			posts.POST("/:post_id/image", required, h.UploadPostImage)

			comments := posts.Group("/:post_id/comments")
			{
				comments.GET("", optional, h.ListComments)
				comments.POST("", required, h.CreateComment)
				comments.GET("/:comment_id", optional, h.GetComment)
				comments.PUT("/:comment_id", required, h.UpdateComment)
				comments.PATCH("/:comment_id", required, h.PatchComment)
				comments.DELETE("/:comment_id", required, h.DeleteComment)
			}
		}

		groups := api.Group("/groups")
		{
			groups.GET("", optional, h.ListGroups)
			groups.GET("/:group_id", optional, h.GetGroup)
		}

		follow := api.Group("/follow", required)
		{
			follow.GET("", h.ListFollows)
			follow.POST("", h.CreateFollow)
			follow.GET("/:follow_id", h.GetFollow)
			follow.DELETE("/:follow_id", h.DeleteFollow)
			// PUT/PATCH stay unregistered: follow edges are created and
			// destroyed, never updated in place. With method-not-allowed
			// handling enabled these verbs answer 405.
		}
	}
}

// actorFrom builds the acting identity from the auth context.
func actorFrom(c *gin.Context) service.Identity {
	return service.Identity{
		UserID:   middleware.GetUserID(c),
		Username: middleware.GetUsername(c),
	}
}

// parseIDParam parses a numeric path parameter. A non-numeric id is not
// a routable resource, so the response is 404.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		response.NotFound(c, "not found")
		return 0, false
	}
	return uint(id), true
}

// queryInt reads an integer query parameter, falling back to def on
// absent or malformed values.
func queryInt(c *gin.Context, name string, def int) int {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}

// writeServiceError maps service and repository errors onto the wire.
func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrPostNotFound):
		response.NotFound(c, "post not found")
	case errors.Is(err, repository.ErrCommentNotFound):
		response.NotFound(c, "comment not found")
	case errors.Is(err, repository.ErrGroupNotFound):
		response.NotFound(c, "group not found")
	case errors.Is(err, repository.ErrFollowNotFound):
		response.NotFound(c, "follow not found")
	case errors.Is(err, service.ErrNotAuthor):
		response.Forbidden(c, service.ErrNotAuthor.Error())
	case errors.Is(err, service.ErrSelfFollow):
		response.ValidationFailed(c, map[string]string{"following": "self-follow not allowed"})
	case errors.Is(err, service.ErrAlreadyFollowing):
		response.ValidationFailed(c, map[string]string{"following": "already subscribed"})
	case errors.Is(err, service.ErrFollowingNotFound):
		response.ValidationFailed(c, map[string]string{"following": "following user does not exist"})
	default:
		response.InternalError(c, "internal error")
	}
}
