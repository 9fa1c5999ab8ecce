package projections

import (
	"context"

	"mindbridge/internal/domain/post"
)

// StoriesPostStore defines the post store interface needed by the stories
// projection.
type StoriesPostStore interface {
	ListApproved(ctx context.Context, category string) ([]post.Post, error)
	ListByAuthor(ctx context.Context, authorID string) ([]post.Post, error)
}

// GetStoriesQuery carries input for the stories projection.
type GetStoriesQuery struct {
	Category string // empty for all categories
	ViewerID string // logged-in account, empty for guests
}

// GetStoriesDeps holds dependencies for the stories projection.
type GetStoriesDeps struct {
	PostStore StoriesPostStore
}

// StoryItem is one story prepared for display.
type StoryItem struct {
	post.Post
	DisplayName   string
	CategoryLabel string
	Pending       bool // true for the viewer's own unapproved posts
}

// QueryGetStories returns approved stories plus the viewer's own pending
// submissions, so authors can see their story is waiting on moderation.
// POST: other users' unapproved posts are never included
func QueryGetStories(ctx context.Context, query GetStoriesQuery, deps GetStoriesDeps) ([]StoryItem, error) {
	approved, err := deps.PostStore.ListApproved(ctx, query.Category)
	if err != nil {
		return nil, err
	}

	items := make([]StoryItem, 0, len(approved))
	for _, p := range approved {
		items = append(items, StoryItem{
			Post:          p,
			DisplayName:   p.DisplayName(),
			CategoryLabel: post.CategoryLabel(p.Category),
		})
	}

	if query.ViewerID != "" {
		own, err := deps.PostStore.ListByAuthor(ctx, query.ViewerID)
		if err != nil {
			return nil, err
		}
		for _, p := range own {
			if p.Approved {
				continue
			}
			if query.Category != "" && p.Category != query.Category {
				continue
			}
			items = append(items, StoryItem{
				Post:          p,
				DisplayName:   p.DisplayName(),
				CategoryLabel: post.CategoryLabel(p.Category),
				Pending:       true,
			})
		}
	}

	return items, nil
}
