package books

import (
	"time"

	"github.com/bookvault/bookvault/pkg/locale"
	"github.com/bookvault/bookvault/pkg/models"
)

// FieldSet selects which fields a Resource exposes.
type FieldSet string

const (
	// FieldSetFull exposes every field, including the id.
	FieldSetFull FieldSet = "full"
	// FieldSetPublic omits the id.
	FieldSetPublic FieldSet = "public"
)

type ResourceOptions struct {
	Locale   string
	FieldSet FieldSet
}

// Resource is the outward representation of a book.
type Resource struct {
	ID          *int    `json:"id,omitempty"`
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	PublishedAt string  `json:"published_at"`
	IsActive    string  `json:"is_active"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
	DeletedAt   *string `json:"deleted_at,omitempty"`
}

// PageResource is the outward representation of a page of books.
type PageResource struct {
	Info        []*Resource `json:"info"`
	CurrentPage int         `json:"current_page"`
	LastPage    int         `json:"last_page"`
	PerPage     int         `json:"per_page"`
	Total       int         `json:"total"`
}

func NewResource(book *models.Book, opts ResourceOptions) *Resource {
	catalog := locale.Lookup(opts.Locale)

	r := &Resource{
		Title:       book.Title,
		Author:      book.Author,
		PublishedAt: book.PublishedAt,
		IsActive:    catalog.StatusLabel(book.IsActive),
		CreatedAt:   book.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   book.UpdatedAt.Format(time.RFC3339),
	}
	if opts.FieldSet != FieldSetPublic {
		id := book.ID
		r.ID = &id
	}
	if book.Trashed() {
		deletedAt := book.DeletedAt.Format(time.RFC3339)
		r.DeletedAt = &deletedAt
	}

	return r
}

func NewPageResource(page *Page, opts ResourceOptions) *PageResource {
	info := make([]*Resource, 0, len(page.Books))
	for _, book := range page.Books {
		info = append(info, NewResource(book, opts))
	}

	return &PageResource{
		Info:        info,
		CurrentPage: page.CurrentPage,
		LastPage:    page.LastPage,
		PerPage:     page.PerPage,
		Total:       page.Total,
	}
}
