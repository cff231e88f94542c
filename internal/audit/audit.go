package audit

import (
	"context"

	"github.com/posk43/api-final-yatube/pkg/log"
)

// Audit actions for content mutations.
const (
	ActionPostCreate    = "post.create"
	ActionPostUpdate    = "post.update"
	ActionPostDelete    = "post.delete"
	ActionPostImage     = "post.image_upload"
	ActionCommentCreate = "comment.create"
	ActionCommentUpdate = "comment.update"
	ActionCommentDelete = "comment.delete"
	ActionFollowCreate  = "follow.create"
	ActionFollowDelete  = "follow.delete"
)

// Field constants for audit entries.
const (
	FieldAction   = "action"
	FieldTargetID = "target_id"
	FieldDetail   = "detail"
)

// Log emits a structured audit log entry via the context logger.
func Log(ctx context.Context, action, userID, targetID string) {
	l := log.Ctx(ctx)
	l.Info().
		Str(log.FieldLogType, log.LogTypeAudit).
		Str(FieldAction, action).
		Str(log.FieldUserID, userID).
		Str(FieldTargetID, targetID).
		Msg("audit")
}

// LogWithDetail emits an audit log with an extra detail field.
func LogWithDetail(ctx context.Context, action, userID, targetID, detail string) {
	l := log.Ctx(ctx)
	l.Info().
		Str(log.FieldLogType, log.LogTypeAudit).
		Str(FieldAction, action).
		Str(log.FieldUserID, userID).
		Str(FieldTargetID, targetID).
		Str(FieldDetail, detail).
		Msg("audit")
}
