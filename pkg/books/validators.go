package books

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"

	"github.com/bookvault/bookvault/pkg/binder"
	"github.com/bookvault/bookvault/pkg/models"
	"github.com/pkg/errors"
)

type ListBooksQuery struct {
	Page   int    `query:"page" json:"page,omitempty" default:"1" validate:"min=1"`
	Fields string `query:"fields" json:"fields,omitempty" validate:"omitempty,oneof=full public"`
	Locale string `query:"locale" json:"locale,omitempty" validate:"omitempty,oneof=en ar"`
}

type RetrieveBookQuery struct {
	Fields string `query:"fields" json:"fields,omitempty" validate:"omitempty,oneof=full public"`
	Locale string `query:"locale" json:"locale,omitempty" validate:"omitempty,oneof=en ar"`
}

type CreateBookPayload struct {
	Title       string     `json:"title" form:"title" mod:"titlecase" validate:"required,min=3,max=255"`
	Author      string     `json:"author" form:"author" mod:"titlecase" validate:"required,min=3,max=255"`
	PublishedAt string     `json:"published_at" form:"published_at" validate:"required,date_dmy"`
	IsActive    ActiveFlag `json:"is_active" form:"is_active" mod:"status_token" validate:"required,flag"`
}

// UpdateBookPayload only carries the keys present in the request. A key set to
// null counts as absent.
type UpdateBookPayload struct {
	Title       *string     `json:"title" form:"title" mod:"titlecase" validate:"omitnil,min=3,max=255"`
	Author      *string     `json:"author" form:"author" mod:"titlecase" validate:"omitnil,min=3,max=255"`
	PublishedAt *string     `json:"published_at" form:"published_at" validate:"omitnil,date_dmy"`
	IsActive    *ActiveFlag `json:"is_active" form:"is_active" mod:"status_token" validate:"omitnil,flag"`
}

// ActiveFlag is the raw is_active value of a payload. It accepts JSON booleans,
// numbers and strings so that status tokens can be mapped and validated before
// it's turned into a bool.
type ActiveFlag string

func (f *ActiveFlag) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = ActiveFlag(s)
		return nil
	}

	// Booleans, numbers and anything else keep their literal text, which
	// leaves invalid values to fail validation.
	*f = ActiveFlag(data)
	return nil
}

// Bool returns the boolean value of a validated flag.
func (f ActiveFlag) Bool() bool {
	b, err := strconv.ParseBool(string(f))
	return err == nil && b
}

// NormalizePublishedAt converts a validated DD-MM-YYYY date into the storage
// layout.
func NormalizePublishedAt(s string) (string, error) {
	t, err := time.Parse(binder.DateDMYLayout, s)
	if err != nil {
		return "", errors.WithStack(err)
	}
	return t.Format(models.PublishedAtLayout), nil
}
