package binder

import (
	"context"
	"reflect"
	"strings"

	"github.com/bookvault/bookvault/pkg/locale"
	"github.com/go-playground/mold/v4"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	titleCase   = "titlecase"
	statusToken = "status_token"
)

// titleCaseModifier trims the value and rewrites it so that every word starts
// with an upper-case letter and the rest is lower-case.
func titleCaseModifier(_ context.Context, fl mold.FieldLevel) error {
	v, ok := settableString(fl.Field())
	if !ok {
		return nil
	}
	v.SetString(TitleCase(v.String()))
	return nil
}

// TitleCase trims s and title-cases each of its words.
func TitleCase(s string) string {
	// Casers are stateful, so one is made per call.
	return cases.Title(language.Und).String(strings.TrimSpace(s))
}

// statusTokenModifier replaces a status token of the request locale, such as
// "active" or "غير نشط", with 1 or 0. Anything else is left for validation.
func statusTokenModifier(ctx context.Context, fl mold.FieldLevel) error {
	v, ok := settableString(fl.Field())
	if !ok {
		return nil
	}
	active, ok := locale.Lookup(locale.FromContext(ctx)).ParseStatusToken(v.String())
	if !ok {
		return nil
	}
	if active {
		v.SetString("1")
	} else {
		v.SetString("0")
	}
	return nil
}

func settableString(v reflect.Value) (reflect.Value, bool) {
	for v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return v, false
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.String || !v.CanSet() {
		return v, false
	}
	return v, true
}
