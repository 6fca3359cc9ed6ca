package books

import (
	"net/http"
	"strconv"

	"github.com/bookvault/bookvault/pkg/errcodes"
	"github.com/bookvault/bookvault/pkg/locale"
	"github.com/bookvault/bookvault/pkg/models"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
)

const statusSuccess = "success"

type handler struct {
	bookService *Service
}

type bookResponse struct {
	Status  string    `json:"status"`
	Message string    `json:"message"`
	Book    *Resource `json:"book"`
}

type booksResponse struct {
	Status  string        `json:"status"`
	Message string        `json:"message"`
	Books   *PageResource `json:"books"`
}

type messageResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	// Bind params.
	params := ListBooksQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	page, err := h.bookService.ListActiveBooks(ctx, params.Page)
	if err != nil {
		return errors.WithStack(err)
	}

	resp := booksResponse{statusSuccess, "Books retrieved successfully", NewPageResource(page, resourceOptions(c, params.Fields))}

	return errors.WithStack(c.JSON(http.StatusOK, resp))
}

func (h *handler) retrieve(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Book")
	}

	// Bind params.
	params := RetrieveBookQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	book, err := h.bookService.RetrieveBook(ctx, RetrieveBookOptions{
		ID:    &id,
		Scope: ScopeActive,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	resp := bookResponse{statusSuccess, "Book retrieved successfully", NewResource(book, resourceOptions(c, params.Fields))}

	return errors.WithStack(c.JSON(http.StatusOK, resp))
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Request().Context()
	log := logger.FromContext(ctx)

	// Bind params.
	params := CreateBookPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	publishedAt, err := NormalizePublishedAt(params.PublishedAt)
	if err != nil {
		return errors.WithStack(err)
	}

	book := &models.Book{
		Title:       params.Title,
		Author:      params.Author,
		PublishedAt: publishedAt,
		IsActive:    params.IsActive.Bool(),
	}
	if err := h.bookService.CreateBook(ctx, book); err != nil {
		return errors.WithStack(err)
	}

	log.Info("book created", logger.Data{"book_id": book.ID})

	resp := bookResponse{statusSuccess, "Book created successfully", NewResource(book, resourceOptions(c, ""))}

	return errors.WithStack(c.JSON(http.StatusCreated, resp))
}

func (h *handler) update(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Book")
	}

	// An empty body is a valid no-op update.
	c.Set("disallow_empty_body", false)

	// Bind params.
	params := UpdateBookPayload{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	fields := UpdateBookFields{
		Title:  params.Title,
		Author: params.Author,
	}
	if params.PublishedAt != nil {
		publishedAt, err := NormalizePublishedAt(*params.PublishedAt)
		if err != nil {
			return errors.WithStack(err)
		}
		fields.PublishedAt = &publishedAt
	}
	if params.IsActive != nil {
		isActive := params.IsActive.Bool()
		fields.IsActive = &isActive
	}

	book, err := h.bookService.UpdateBookFields(ctx, id, fields)
	if err != nil {
		return errors.WithStack(err)
	}

	resp := bookResponse{statusSuccess, "Book updated successfully", NewResource(book, resourceOptions(c, ""))}

	return errors.WithStack(c.JSON(http.StatusOK, resp))
}

func (h *handler) delete(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Book")
	}

	if err := h.bookService.DeleteBook(ctx, id); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, messageResponse{statusSuccess, "Book deleted successfully."}))
}

func (h *handler) listTrashed(c echo.Context) error {
	ctx := c.Request().Context()

	// Bind params.
	params := ListBooksQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	page, err := h.bookService.ListTrashedBooks(ctx, params.Page)
	if err != nil {
		return errors.WithStack(err)
	}

	resp := booksResponse{statusSuccess, "Trashed books retrieved successfully", NewPageResource(page, resourceOptions(c, params.Fields))}

	return errors.WithStack(c.JSON(http.StatusOK, resp))
}

func (h *handler) restore(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Book")
	}

	book, err := h.bookService.RestoreBook(ctx, id)
	if err != nil {
		return errors.WithStack(err)
	}

	resp := bookResponse{statusSuccess, "Book restored successfully", NewResource(book, resourceOptions(c, ""))}

	return errors.WithStack(c.JSON(http.StatusOK, resp))
}

func (h *handler) forceDelete(c echo.Context) error {
	ctx := c.Request().Context()
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errcodes.NotFound("Book")
	}

	if err := h.bookService.ForceDeleteBook(ctx, id); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, messageResponse{statusSuccess, "Book deleted forever from database successfully."}))
}

func resourceOptions(c echo.Context, fields string) ResourceOptions {
	opts := ResourceOptions{
		Locale:   locale.FromContext(c.Request().Context()),
		FieldSet: FieldSetFull,
	}
	if FieldSet(fields) == FieldSetPublic {
		opts.FieldSet = FieldSetPublic
	}
	return opts
}
