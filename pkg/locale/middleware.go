package locale

import (
	"context"

	"github.com/labstack/echo/v4"
	"golang.org/x/text/language"
)

type key int

const ctxKey key = 0

const (
	// QueryParam is the query parameter that selects the locale explicitly.
	QueryParam = "locale"

	headerAcceptLanguage  = "Accept-Language"
	headerContentLanguage = "Content-Language"
)

var matcher = language.NewMatcher([]language.Tag{language.English, language.Arabic})

func WithLocale(ctx context.Context, l string) context.Context {
	return context.WithValue(ctx, ctxKey, l)
}

// FromContext returns the locale stored in ctx, or English when there is none.
func FromContext(ctx context.Context) string {
	if l, ok := ctx.Value(ctxKey).(string); ok && l != "" {
		return l
	}
	return English
}

// Negotiate picks the response locale. An explicitly requested locale wins,
// then the best Accept-Language match, then fallback.
func Negotiate(requested, acceptLanguage, fallback string) string {
	if IsSupported(requested) {
		return requested
	}

	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return fallback
	}
	_, idx, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return fallback
	}
	return Supported()[idx]
}

// Middleware negotiates the locale for each request and stores it in the
// request context.
func Middleware(fallback string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			l := Negotiate(c.QueryParam(QueryParam), req.Header.Get(headerAcceptLanguage), fallback)
			c.SetRequest(req.WithContext(WithLocale(req.Context(), l)))
			c.Response().Header().Set(headerContentLanguage, l)
			return next(c)
		}
	}
}
