package domain

import "time"

// Follow is a directed edge meaning "follower observes following".
// Usernames are resolved by the repository for wire representation.
type Follow struct {
	ID                uint
	FollowerID        string
	FollowingID       string
	FollowerUsername  string
	FollowingUsername string
	CreatedAt         time.Time
}

// FollowResponse represents a follow edge in API responses. Both sides
// are surfaced as username slugs.
type FollowResponse struct {
	ID        uint      `json:"id"`
	User      string    `json:"user"`
	Following string    `json:"following"`
	CreatedAt time.Time `json:"created_at"`
}

// ToResponse converts a Follow to its wire representation.
func (f *Follow) ToResponse() FollowResponse {
	return FollowResponse{
		ID:        f.ID,
		User:      f.FollowerUsername,
		Following: f.FollowingUsername,
		CreatedAt: f.CreatedAt,
	}
}
