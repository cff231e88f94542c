package pubsub

import "fmt"

// Channel naming: content:{entity}:{id}:events. On the Kafka backend the
// entity selects the topic (content-{entity}-events) and the id becomes
// the message key, preserving per-entity ordering.
const (
	EntityPost    = "post"
	EntityComment = "comment"
	EntityFollow  = "follow"
	// EntityGroup events are published by whichever service seeds the
	// group catalog; this API only consumes them to refresh its cache.
	EntityGroup = "group"
)

// Event types carried on content channels.
const (
	EventPostCreated    = "post.created"
	EventPostUpdated    = "post.updated"
	EventPostDeleted    = "post.deleted"
	EventCommentCreated = "comment.created"
	EventCommentUpdated = "comment.updated"
	EventCommentDeleted = "comment.deleted"
	EventFollowCreated  = "follow.created"
	EventFollowDeleted  = "follow.deleted"
)

// ContentChannel builds the channel name for an entity instance.
func ContentChannel(entity, id string) string {
	return fmt.Sprintf("content:%s:%s:events", entity, id)
}

// ContentPattern builds the subscribe pattern covering all instances of
// an entity.
func ContentPattern(entity string) string {
	return fmt.Sprintf("content:%s:*:events", entity)
}
