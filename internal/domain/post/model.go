package post

import (
	"errors"
	"strings"
	"time"
)

// Max length constants for user-editable fields.
const (
	MaxTitleLength   = 200
	MaxContentLength = 5000
)

// Category constants for shared stories.
const (
	CategoryAnxiety       = "overcoming_anxiety"
	CategoryAcademic      = "academic_stress"
	CategoryGrowth        = "personal_growth"
	CategoryRelationships = "relationships"
	CategorySelfCare      = "self_care"
	CategoryInspiration   = "general_inspiration"
)

// ValidCategories contains all valid category values.
var ValidCategories = []string{
	CategoryAnxiety,
	CategoryAcademic,
	CategoryGrowth,
	CategoryRelationships,
	CategorySelfCare,
	CategoryInspiration,
}

// Domain errors
var (
	ErrEmptyTitle      = errors.New("title cannot be empty")
	ErrTitleTooLong    = errors.New("title cannot exceed 200 characters")
	ErrEmptyContent    = errors.New("content cannot be empty")
	ErrContentTooLong  = errors.New("content cannot exceed 5000 characters")
	ErrInvalidCategory = errors.New("category is not recognised")
	ErrEmptyAuthorID   = errors.New("author ID cannot be empty")
)

// Post is a student-shared story. New posts start unapproved and are
// hidden from other readers until the wellness team approves them.
type Post struct {
	ID        string
	AuthorID  string
	Author    string // username, kept for display
	Title     string
	Content   string // markdown
	Category  string
	Anonymous bool
	Approved  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks if the Post has valid data.
// PRE: Post struct is populated
// POST: Returns nil if valid, error otherwise
func (p *Post) Validate() error {
	if strings.TrimSpace(p.AuthorID) == "" {
		return ErrEmptyAuthorID
	}
	if strings.TrimSpace(p.Title) == "" {
		return ErrEmptyTitle
	}
	if len(p.Title) > MaxTitleLength {
		return ErrTitleTooLong
	}
	if strings.TrimSpace(p.Content) == "" {
		return ErrEmptyContent
	}
	if len(p.Content) > MaxContentLength {
		return ErrContentTooLong
	}
	if !isValidCategory(p.Category) {
		return ErrInvalidCategory
	}
	return nil
}

// DisplayName returns the name readers see: the author's username, or
// "Anonymous" when the author chose to post anonymously.
// INVARIANT: Post fields are not mutated
func (p *Post) DisplayName() string {
	if p.Anonymous {
		return "Anonymous"
	}
	return p.Author
}

// CategoryLabel returns the human-readable form of the category.
func CategoryLabel(category string) string {
	switch category {
	case CategoryAnxiety:
		return "Overcoming Anxiety"
	case CategoryAcademic:
		return "Academic Stress"
	case CategoryGrowth:
		return "Personal Growth"
	case CategoryRelationships:
		return "Relationships"
	case CategorySelfCare:
		return "Self Care"
	case CategoryInspiration:
		return "General Inspiration"
	default:
		return category
	}
}

func isValidCategory(category string) bool {
	for _, c := range ValidCategories {
		if c == category {
			return true
		}
	}
	return false
}
