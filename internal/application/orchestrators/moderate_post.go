package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"mindbridge/internal/domain/post"
)

// PostStoreForModerate defines the store interface needed by ModeratePost.
type PostStoreForModerate interface {
	GetByID(ctx context.Context, id string) (post.Post, error)
	Save(ctx context.Context, p post.Post) error
	Delete(ctx context.Context, id string) error
}

// Moderation action constants.
const (
	ModerationApprove = "approve"
	ModerationReject  = "reject"
)

// ModeratePostInput carries input for the orchestrator.
type ModeratePostInput struct {
	PostID string
	Action string // approve or reject
}

// ModeratePostDeps holds dependencies for ModeratePost.
type ModeratePostDeps struct {
	PostStore PostStoreForModerate
}

// ErrInvalidModeration is returned for actions other than approve/reject.
var ErrInvalidModeration = errors.New("action must be approve or reject")

// ExecuteModeratePost applies a wellness-team decision to a pending story.
// Rejection removes the post entirely.
// PRE: post exists
// POST: Post approved and visible, or deleted
func ExecuteModeratePost(ctx context.Context, input ModeratePostInput, deps ModeratePostDeps) error {
	p, err := deps.PostStore.GetByID(ctx, input.PostID)
	if err != nil {
		return err
	}

	switch input.Action {
	case ModerationApprove:
		p.Approved = true
		p.UpdatedAt = time.Now()
		if err := deps.PostStore.Save(ctx, p); err != nil {
			return err
		}
	case ModerationReject:
		if err := deps.PostStore.Delete(ctx, p.ID); err != nil {
			return err
		}
	default:
		return ErrInvalidModeration
	}

	slog.Info("post_event", "event", "post_moderated", "post_id", p.ID, "action", input.Action)
	return nil
}
