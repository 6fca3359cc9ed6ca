package models

import (
	"time"

	"github.com/uptrace/bun"
)

// PublishedAtLayout is the storage layout of Book.PublishedAt.
const PublishedAtLayout = "2006-01-02"

type Book struct {
	bun.BaseModel `bun:"table:books,alias:b"`

	ID          int        `bun:",pk,nullzero" json:"id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
	Title       string     `bun:",nullzero" json:"title"`
	Author      string     `bun:",nullzero" json:"author"`
	PublishedAt string     `bun:",nullzero" json:"published_at"`
	IsActive    bool       `json:"is_active"`
}

// Trashed reports whether the book has been soft-deleted.
func (b *Book) Trashed() bool {
	return b.DeletedAt != nil
}
