package post

import (
	"errors"
	"strings"
	"testing"
)

func validPost() Post {
	return Post{
		ID:       "post-1",
		AuthorID: "acc-1",
		Author:   "jorja_w",
		Title:    "Getting through finals week",
		Content:  "What helped me most was a fixed sleep schedule.",
		Category: CategoryAcademic,
	}
}

func TestPostValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Post)
		wantErr error
	}{
		{"valid", func(p *Post) {}, nil},
		{"empty author", func(p *Post) { p.AuthorID = "" }, ErrEmptyAuthorID},
		{"empty title", func(p *Post) { p.Title = "   " }, ErrEmptyTitle},
		{"title too long", func(p *Post) { p.Title = strings.Repeat("x", 201) }, ErrTitleTooLong},
		{"empty content", func(p *Post) { p.Content = "" }, ErrEmptyContent},
		{"content too long", func(p *Post) { p.Content = strings.Repeat("x", 5001) }, ErrContentTooLong},
		{"bad category", func(p *Post) { p.Category = "venting" }, ErrInvalidCategory},
		{"empty category", func(p *Post) { p.Category = "" }, ErrInvalidCategory},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := validPost()
			tc.mutate(&p)
			err := p.Validate()
			if tc.wantErr == nil && err != nil {
				t.Fatalf("Validate() = %v, want nil", err)
			}
			if tc.wantErr != nil && !errors.Is(err, tc.wantErr) {
				t.Fatalf("Validate() = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestDisplayName(t *testing.T) {
	p := validPost()
	if got := p.DisplayName(); got != "jorja_w" {
		t.Fatalf("DisplayName() = %q, want author username", got)
	}
	p.Anonymous = true
	if got := p.DisplayName(); got != "Anonymous" {
		t.Fatalf("DisplayName() = %q, want Anonymous", got)
	}
}

func TestCategoryLabel(t *testing.T) {
	if got := CategoryLabel(CategorySelfCare); got != "Self Care" {
		t.Fatalf("CategoryLabel = %q", got)
	}
	// Unknown categories pass through for display.
	if got := CategoryLabel("misc"); got != "misc" {
		t.Fatalf("CategoryLabel = %q", got)
	}
}

func TestNewPostStartsUnapproved(t *testing.T) {
	p := validPost()
	if p.Approved {
		t.Fatal("zero value must be unapproved")
	}
}
