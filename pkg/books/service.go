package books

import (
	"context"
	"database/sql"
	"time"

	"github.com/bookvault/bookvault/pkg/errcodes"
	"github.com/bookvault/bookvault/pkg/models"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

// PerPage is the fixed page size of every book listing.
const PerPage = 5

// Scope selects which lifecycle state a query targets. Every storage query
// names its scope; there is no implicit filter.
type Scope int

const (
	// ScopeActive matches books that haven't been soft-deleted.
	ScopeActive Scope = iota
	// ScopeTrashed matches soft-deleted books only.
	ScopeTrashed
)

func (s Scope) condition() string {
	if s == ScopeTrashed {
		return "deleted_at IS NOT NULL"
	}
	return "deleted_at IS NULL"
}

type RetrieveBookOptions struct {
	ID    *int
	Scope Scope
}

type ListBooksOptions struct {
	Page  int
	Scope Scope
}

type UpdateBookOptions struct {
	Columns []string
}

// UpdateBookFields holds the fields supplied by an update. A nil field is left
// untouched; a non-nil one is applied even when it holds a zero value.
type UpdateBookFields struct {
	Title       *string
	Author      *string
	PublishedAt *string
	IsActive    *bool
}

// Page is one page of a book listing.
type Page struct {
	Books       []*models.Book
	CurrentPage int
	LastPage    int
	PerPage     int
	Total       int
}

type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db}
}

func (svc *Service) CreateBook(ctx context.Context, book *models.Book) error {
	now := time.Now()
	if book.CreatedAt.IsZero() {
		book.CreatedAt = now
	}
	book.UpdatedAt = book.CreatedAt

	_, err := svc.db.
		NewInsert().
		Model(book).
		Returning("*").
		Exec(ctx)
	if err != nil {
		return errcodes.StorageFailure("Book creation failed", errors.WithStack(err))
	}

	return nil
}

func (svc *Service) RetrieveBook(ctx context.Context, opts RetrieveBookOptions) (*models.Book, error) {
	book := &models.Book{}

	q := svc.db.
		NewSelect().
		Model(book).
		Where(opts.Scope.condition())

	if opts.ID != nil {
		q = q.Where("id = ?", *opts.ID)
	}

	err := q.Limit(1).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Book")
		}
		return nil, errcodes.StorageFailure("Failed to retrieve book", errors.WithStack(err))
	}

	return book, nil
}

// ListActiveBooks returns the given page of books that haven't been deleted.
func (svc *Service) ListActiveBooks(ctx context.Context, page int) (*Page, error) {
	return svc.ListBooks(ctx, ListBooksOptions{Page: page, Scope: ScopeActive})
}

// ListTrashedBooks returns the given page of soft-deleted books.
func (svc *Service) ListTrashedBooks(ctx context.Context, page int) (*Page, error) {
	return svc.ListBooks(ctx, ListBooksOptions{Page: page, Scope: ScopeTrashed})
}

func (svc *Service) ListBooks(ctx context.Context, opts ListBooksOptions) (*Page, error) {
	books, total, err := svc.listBooksWithTotal(ctx, opts)
	if err != nil {
		msg := "Failed to retrieve books"
		if opts.Scope == ScopeTrashed {
			msg = "Failed to retrieve trashed books"
		}
		return nil, errcodes.StorageFailure(msg, err)
	}

	return &Page{
		Books:       books,
		CurrentPage: currentPage(opts.Page),
		LastPage:    lastPage(total),
		PerPage:     PerPage,
		Total:       total,
	}, nil
}

func (svc *Service) listBooksWithTotal(ctx context.Context, opts ListBooksOptions) ([]*models.Book, int, error) {
	books := []*models.Book{}

	total, err := svc.db.
		NewSelect().
		Model(&books).
		Where(opts.Scope.condition()).
		Order("b.id ASC").
		Limit(PerPage).
		Offset((currentPage(opts.Page) - 1) * PerPage).
		ScanAndCount(ctx)
	if err != nil {
		return nil, 0, errors.WithStack(err)
	}

	return books, total, nil
}

func (svc *Service) UpdateBook(ctx context.Context, book *models.Book, opts UpdateBookOptions) error {
	if len(opts.Columns) == 0 {
		return nil
	}

	// Update updated_at.
	book.UpdatedAt = time.Now()
	columns := append(opts.Columns, "updated_at")

	res, err := svc.db.
		NewUpdate().
		Model(book).
		Column(columns...).
		WherePK().
		Where(ScopeActive.condition()).
		Exec(ctx)
	if err != nil {
		return errcodes.StorageFailure("Failed to update book", errors.WithStack(err))
	}

	return affectedOrNotFound(res, "Failed to update book")
}

// UpdateBookFields applies the supplied fields to the active book with the
// given ID and returns the result. Only the columns whose value changed are
// written.
func (svc *Service) UpdateBookFields(ctx context.Context, id int, fields UpdateBookFields) (*models.Book, error) {
	book, err := svc.RetrieveBook(ctx, RetrieveBookOptions{ID: &id, Scope: ScopeActive})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	// Keep track of what's been changed.
	opts := UpdateBookOptions{Columns: []string{}}

	if fields.Title != nil && *fields.Title != book.Title {
		book.Title = *fields.Title
		opts.Columns = append(opts.Columns, "title")
	}
	if fields.Author != nil && *fields.Author != book.Author {
		book.Author = *fields.Author
		opts.Columns = append(opts.Columns, "author")
	}
	if fields.PublishedAt != nil && *fields.PublishedAt != book.PublishedAt {
		book.PublishedAt = *fields.PublishedAt
		opts.Columns = append(opts.Columns, "published_at")
	}
	if fields.IsActive != nil && *fields.IsActive != book.IsActive {
		book.IsActive = *fields.IsActive
		opts.Columns = append(opts.Columns, "is_active")
	}

	if err := svc.UpdateBook(ctx, book, opts); err != nil {
		return nil, errors.WithStack(err)
	}

	return book, nil
}

// DeleteBook soft-deletes the active book with the given ID.
func (svc *Service) DeleteBook(ctx context.Context, id int) error {
	now := time.Now()

	res, err := svc.db.
		NewUpdate().
		Model((*models.Book)(nil)).
		Set("deleted_at = ?", now).
		Set("updated_at = ?", now).
		Where("id = ?", id).
		Where(ScopeActive.condition()).
		Exec(ctx)
	if err != nil {
		return errcodes.StorageFailure("Failed to delete book", errors.WithStack(err))
	}

	return affectedOrNotFound(res, "Failed to delete book")
}

// RestoreBook brings the trashed book with the given ID back into the active
// set and returns it.
func (svc *Service) RestoreBook(ctx context.Context, id int) (*models.Book, error) {
	res, err := svc.db.
		NewUpdate().
		Model((*models.Book)(nil)).
		Set("deleted_at = NULL").
		Set("updated_at = ?", time.Now()).
		Where("id = ?", id).
		Where(ScopeTrashed.condition()).
		Exec(ctx)
	if err != nil {
		return nil, errcodes.StorageFailure("Failed to restore book", errors.WithStack(err))
	}
	if err := affectedOrNotFound(res, "Failed to restore book"); err != nil {
		return nil, err
	}

	book, err := svc.RetrieveBook(ctx, RetrieveBookOptions{ID: &id, Scope: ScopeActive})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return book, nil
}

// ForceDeleteBook permanently removes the trashed book with the given ID.
func (svc *Service) ForceDeleteBook(ctx context.Context, id int) error {
	res, err := svc.db.
		NewDelete().
		Model((*models.Book)(nil)).
		Where("id = ?", id).
		Where(ScopeTrashed.condition()).
		Exec(ctx)
	if err != nil {
		return errcodes.StorageFailure("Failed to permanently delete book", errors.WithStack(err))
	}

	return affectedOrNotFound(res, "Failed to permanently delete book")
}

func affectedOrNotFound(res sql.Result, msg string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return errcodes.StorageFailure(msg, errors.WithStack(err))
	}
	if n == 0 {
		return errcodes.NotFound("Book")
	}
	return nil
}

func currentPage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

func lastPage(total int) int {
	if total <= PerPage {
		return 1
	}
	return (total + PerPage - 1) / PerPage
}
