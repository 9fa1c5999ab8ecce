package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"mindbridge/internal/domain/post"

	"github.com/google/uuid"
)

// PostStoreForSubmit defines the store interface needed by SubmitPost.
type PostStoreForSubmit interface {
	Save(ctx context.Context, p post.Post) error
}

// SubmitPostInput carries input for the orchestrator.
type SubmitPostInput struct {
	AuthorID  string
	Author    string // username for display when not anonymous
	Title     string
	Content   string
	Category  string
	Anonymous bool
}

// SubmitPostDeps holds dependencies for SubmitPost.
type SubmitPostDeps struct {
	PostStore PostStoreForSubmit
}

// ExecuteSubmitPost coordinates sharing a story. Every submission starts
// unapproved and waits for wellness-team moderation.
// PRE: AuthorID belongs to the logged-in student
// POST: Post created with Approved=false
func ExecuteSubmitPost(ctx context.Context, input SubmitPostInput, deps SubmitPostDeps) (string, error) {
	p := post.Post{
		ID:        uuid.New().String(),
		AuthorID:  input.AuthorID,
		Author:    input.Author,
		Title:     input.Title,
		Content:   input.Content,
		Category:  input.Category,
		Anonymous: input.Anonymous,
		CreatedAt: time.Now(),
	}
	if p.Category == "" {
		p.Category = post.CategoryInspiration
	}

	if err := p.Validate(); err != nil {
		return "", err
	}
	if err := deps.PostStore.Save(ctx, p); err != nil {
		return "", err
	}

	slog.Info("post_event", "event", "post_submitted", "post_id", p.ID, "category", p.Category, "anonymous", p.Anonymous)
	return p.ID, nil
}
