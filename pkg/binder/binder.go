package binder

import (
	"encoding/json"
	"net/http"
	"net/url"
	"reflect"
	"regexp"
	"strings"

	"github.com/bookvault/bookvault/pkg/errcodes"
	"github.com/bookvault/bookvault/pkg/locale"
	"github.com/creasty/defaults"
	"github.com/go-playground/mold/v4"
	"github.com/go-playground/mold/v4/modifiers"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/echo/v4/middleware/logger"
)

var unknownFieldsRE = regexp.MustCompile(`^json: unknown field "(.*)"$`)

// Binder is a custom struct that implements the Echo Binder interface. It binds
// to a struct, uses mold to clean up the params, and validator to validate
// them.
type Binder struct {
	queryDecoder *schema.Decoder
	formDecoder  *schema.Decoder
	conform      *mold.Transformer
	validate     *validator.Validate
	translators  map[string]ut.Translator
}

// New initializes a new Binder instance with the appropriate modifiers,
// validation functions and translations registered.
func New() (*Binder, error) {
	queryDecoder := schema.NewDecoder()
	queryDecoder.SetAliasTag("query")
	formDecoder := schema.NewDecoder()
	formDecoder.SetAliasTag("form")

	conform := modifiers.New()
	conform.Register(titleCase, titleCaseModifier)
	conform.Register(statusToken, statusTokenModifier)

	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "query", "form"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})
	if err := validate.RegisterValidation(dateDMY, dateDMYValidator); err != nil {
		return nil, errors.WithStack(err)
	}
	if err := validate.RegisterValidation(flag, flagValidator); err != nil {
		return nil, errors.WithStack(err)
	}

	translators, err := registerTranslations(validate)
	if err != nil {
		return nil, err
	}

	return &Binder{queryDecoder, formDecoder, conform, validate, translators}, nil
}

// Bind binds, modifies, and validates payloads against the given struct. Every
// field that fails is reported in a single validation error, with messages in
// the locale of the request.
func (b *Binder) Bind(i interface{}, c echo.Context) error {
	req := c.Request()
	log := logger.FromEchoContext(c)
	ctx := req.Context()
	catalog := locale.Lookup(locale.FromContext(ctx))
	trans := b.translator(catalog.Locale)
	fields := map[string][]string{}

	disallowEmptyBody := true
	if disallow, ok := c.Get("disallow_empty_body").(bool); ok {
		disallowEmptyBody = disallow
	}

	if req.ContentLength > 0 {
		// request has a body
		ctype := req.Header.Get(echo.HeaderContentType)
		switch {
		// allow application/json
		case strings.HasPrefix(ctype, echo.MIMEApplicationJSON):
			dec := json.NewDecoder(req.Body)
			disallowUnknownFields := true
			if disallow, ok := c.Get("disallow_unknown_fields").(bool); ok {
				disallowUnknownFields = disallow
			}
			if disallowUnknownFields {
				dec.DisallowUnknownFields()
			}
			defer req.Body.Close()
			if err := dec.Decode(i); err != nil {
				// return better error message when there are unknown fields
				if matches := unknownFieldsRE.FindAllStringSubmatch(err.Error(), -1); len(matches) > 0 && len(matches[0]) > 1 {
					return errcodes.UnknownParameter(matches[0][1])
				}

				// type errors are reported alongside the validation errors
				var typeErr *json.UnmarshalTypeError
				if !errors.As(err, &typeErr) {
					log.Err(err).Warn("unknown json decode error")
					return errcodes.MalformedPayload()
				}
				field, msg := formatUnmarshalTypeError(trans, catalog, typeErr)
				fields[field] = append(fields[field], msg)
			}
		case strings.HasPrefix(ctype, echo.MIMEApplicationForm), strings.HasPrefix(ctype, echo.MIMEMultipartForm):
			params, err := c.FormParams()
			if err != nil {
				return errcodes.MalformedPayload()
			}
			if err := b.decodeQuery(i, params, b.formDecoder, trans, catalog, fields); err != nil {
				return err
			}
		default:
			return errcodes.UnsupportedMediaType()
		}
	} else {
		// request doesn't have a body
		if req.Method == http.MethodGet || req.Method == http.MethodDelete {
			if err := b.decodeQuery(i, c.QueryParams(), b.queryDecoder, trans, catalog, fields); err != nil {
				return err
			}
		} else if disallowEmptyBody {
			return errcodes.EmptyRequestBody()
		}
	}

	if err := b.conform.Struct(ctx, i); err != nil {
		return errors.WithStack(err)
	}

	if err := defaults.Set(i); err != nil {
		return errors.WithStack(err)
	}

	if err := b.validate.Struct(i); err != nil {
		var errs validator.ValidationErrors
		if !errors.As(err, &errs) {
			return errors.WithStack(err)
		}
		for _, fe := range errs {
			// a field that couldn't be decoded already has its message
			if _, ok := fields[fe.Field()]; ok {
				continue
			}
			fields[fe.Field()] = append(fields[fe.Field()], fe.Translate(trans))
		}
	}

	if len(fields) > 0 {
		return errcodes.ValidationFailed(catalog.ValidationFailed, fields)
	}
	return nil
}

func (b *Binder) translator(l string) ut.Translator {
	if trans, ok := b.translators[l]; ok {
		return trans
	}
	return b.translators[locale.English]
}

func (b *Binder) decodeQuery(i interface{}, params url.Values, decoder *schema.Decoder, trans ut.Translator, catalog *locale.Catalog, fields map[string][]string) error {
	err := decoder.Decode(i, params)
	if err == nil {
		return nil
	}
	errs, ok := err.(schema.MultiError)
	if !ok {
		return errors.WithStack(err)
	}
	for _, err := range errs {
		switch err := err.(type) {
		case schema.UnknownKeyError:
			return errcodes.UnknownParameter(err.Key)
		case schema.ConversionError:
			fields[err.Key] = append(fields[err.Key], formatConversionError(trans, catalog, err))
		default:
			return errors.WithStack(err)
		}
	}
	return nil
}
