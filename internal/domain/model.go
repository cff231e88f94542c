package domain

import (
	"time"
)

// UserModel is the GORM model for the users table. Users are provisioned
// by the auth service; this API only reads them.
type UserModel struct {
	ID        string    `gorm:"type:varchar(36);primaryKey"`
	Username  string    `gorm:"type:varchar(50);uniqueIndex;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (UserModel) TableName() string { return "users" }

// ToDomain converts UserModel to a domain User.
func (m *UserModel) ToDomain() *User {
	return &User{
		ID:        m.ID,
		Username:  m.Username,
		CreatedAt: m.CreatedAt,
	}
}

// GroupModel is the GORM model for the groups table.
type GroupModel struct {
	ID          uint      `gorm:"primaryKey;autoIncrement"`
	Title       string    `gorm:"type:varchar(200);not null"`
	Slug        string    `gorm:"type:varchar(100);uniqueIndex;not null"`
	Description string    `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

func (GroupModel) TableName() string { return "groups" }

// ToDomain converts GroupModel to a domain Group.
func (m *GroupModel) ToDomain() *Group {
	return &Group{
		ID:          m.ID,
		Title:       m.Title,
		Slug:        m.Slug,
		Description: m.Description,
	}
}

// PostModel is the GORM model for the posts table.
type PostModel struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	AuthorID  string    `gorm:"column:author_id;type:varchar(36);not null;index"`
	GroupID   *uint     `gorm:"column:group_id;index"`
	Text      string    `gorm:"type:text;not null"`
	Image     string    `gorm:"type:varchar(255)"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (PostModel) TableName() string { return "posts" }

// CommentModel is the GORM model for the comments table. PostID is set on
// insert and never updated.
type CommentModel struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	PostID    uint      `gorm:"column:post_id;not null;index"`
	AuthorID  string    `gorm:"column:author_id;type:varchar(36);not null;index"`
	Text      string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (CommentModel) TableName() string { return "comments" }

// FollowModel is the GORM model for the follows table. The composite
// unique index and the check constraint are the storage-level backstop for
// duplicate and self follows; the service layer only pre-checks to give
// clean error messages.
type FollowModel struct {
	ID          uint      `gorm:"primaryKey;autoIncrement"`
	FollowerID  string    `gorm:"column:follower_id;type:varchar(36);not null;uniqueIndex:uidx_follow_pair;check:chk_follow_no_self,follower_id <> following_id"`
	FollowingID string    `gorm:"column:following_id;type:varchar(36);not null;uniqueIndex:uidx_follow_pair"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

func (FollowModel) TableName() string { return "follows" }
