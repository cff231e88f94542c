package domain

import "time"

// User represents a user entity. Usernames act as the public identifier
// on the wire; IDs stay internal.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// Group represents a read-only post category.
type Group struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

// Post represents a post entity. Author carries the author's username,
// resolved by the repository; ImageURL is resolved by the service from
// the stored object key.
type Post struct {
	ID        uint
	AuthorID  string
	Author    string
	GroupID   *uint
	Text      string
	Image     string
	ImageURL  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Comment represents a comment on a post. The post association is fixed
// at creation.
type Comment struct {
	ID        uint
	PostID    uint
	AuthorID  string
	Author    string
	Text      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreatePostRequest is the request body for creating a post.
type CreatePostRequest struct {
	Text  string `json:"text" binding:"required"`
	Group *uint  `json:"group"`
}

// UpdatePostRequest is the request body for a full post update (PUT).
// A nil Group clears the group association.
type UpdatePostRequest struct {
	Text  string `json:"text" binding:"required"`
	Group *uint  `json:"group"`
}

// PatchPostRequest is the request body for a partial post update (PATCH).
// Nil fields are left unchanged.
type PatchPostRequest struct {
	Text  *string `json:"text"`
	Group *uint   `json:"group"`
}

// CreateCommentRequest is the request body for creating a comment. The
// author and post are bound server-side.
type CreateCommentRequest struct {
	Text string `json:"text" binding:"required"`
}

// UpdateCommentRequest is the request body for a full comment update.
type UpdateCommentRequest struct {
	Text string `json:"text" binding:"required"`
}

// PatchCommentRequest is the request body for a partial comment update.
type PatchCommentRequest struct {
	Text *string `json:"text"`
}

// CreateFollowRequest is the request body for creating a follow edge.
// The follower is always the acting identity.
type CreateFollowRequest struct {
	Following string `json:"following" binding:"required"`
}

// PostResponse represents a post in API responses.
type PostResponse struct {
	ID        uint      `json:"id"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	Group     *uint     `json:"group"`
	Image     string    `json:"image,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToResponse converts a Post to its wire representation.
func (p *Post) ToResponse() PostResponse {
	return PostResponse{
		ID:        p.ID,
		Author:    p.Author,
		Text:      p.Text,
		Group:     p.GroupID,
		Image:     p.ImageURL,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// PostPage is the paginated post list response.
type PostPage struct {
	Count   int64          `json:"count"`
	Limit   int            `json:"limit"`
	Offset  int            `json:"offset"`
	Results []PostResponse `json:"results"`
}

// CommentResponse represents a comment in API responses.
type CommentResponse struct {
	ID        uint      `json:"id"`
	Author    string    `json:"author"`
	Post      uint      `json:"post"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToResponse converts a Comment to its wire representation.
func (c *Comment) ToResponse() CommentResponse {
	return CommentResponse{
		ID:        c.ID,
		Author:    c.Author,
		Post:      c.PostID,
		Text:      c.Text,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
