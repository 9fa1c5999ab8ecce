package library

import (
	"errors"
	"strings"
	"time"
)

// Max length constants for user-editable fields.
const (
	MaxTitleLength  = 200
	MaxAuthorLength = 200
)

// Category constants for library resources.
const (
	CategoryPsychology   = "psychology"
	CategorySelfHelp     = "self_help"
	CategoryMentalHealth = "mental_health"
	CategoryWellbeing    = "wellbeing"
	CategoryMindfulness  = "mindfulness"
	CategoryOther        = "other"
)

// ValidCategories contains all valid category values.
var ValidCategories = []string{
	CategoryPsychology,
	CategorySelfHelp,
	CategoryMentalHealth,
	CategoryWellbeing,
	CategoryMindfulness,
	CategoryOther,
}

// Domain errors
var (
	ErrEmptyTitle      = errors.New("title cannot be empty")
	ErrTitleTooLong    = errors.New("title cannot exceed 200 characters")
	ErrEmptyAuthor     = errors.New("author cannot be empty")
	ErrInvalidCategory = errors.New("category is not recognised")
)

// Book is a curated self-help resource in the wellness library. A book may
// carry a hosted PDF, an external link, or both.
type Book struct {
	ID            string
	Title         string
	Author        string
	Description   string
	Category      string
	CoverImageURL string
	PDFURL        string
	ExternalLink  string
	ISBN          string
	PublishedYear int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Validate checks if the Book has valid data.
// PRE: Book struct is populated
// POST: Returns nil if valid, error otherwise
func (b *Book) Validate() error {
	if strings.TrimSpace(b.Title) == "" {
		return ErrEmptyTitle
	}
	if len(b.Title) > MaxTitleLength {
		return ErrTitleTooLong
	}
	if strings.TrimSpace(b.Author) == "" {
		return ErrEmptyAuthor
	}
	if !isValidCategory(b.Category) {
		return ErrInvalidCategory
	}
	return nil
}

// HasPDF reports whether a hosted PDF is attached.
// INVARIANT: Book fields are not mutated
func (b *Book) HasPDF() bool {
	return b.PDFURL != ""
}

// HasLink reports whether an external resource link is set.
// INVARIANT: Book fields are not mutated
func (b *Book) HasLink() bool {
	return b.ExternalLink != ""
}

// MatchesQuery reports whether the book matches a free-text search over
// title, author and description. An empty query matches everything.
// INVARIANT: Book fields are not mutated
func (b *Book) MatchesQuery(q string) bool {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(b.Title), q) ||
		strings.Contains(strings.ToLower(b.Author), q) ||
		strings.Contains(strings.ToLower(b.Description), q)
}

func isValidCategory(category string) bool {
	for _, c := range ValidCategories {
		if c == category {
			return true
		}
	}
	return false
}
