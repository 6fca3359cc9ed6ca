package binder

import (
	"reflect"
	"strings"

	"github.com/bookvault/bookvault/pkg/locale"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	ar_translations "github.com/go-playground/validator/v10/translations/ar"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/gorilla/schema"
	"github.com/pkg/errors"
	"github.com/segmentio/encoding/json"
)

const (
	dateDMY  = "date_dmy"
	flag     = "flag"
	mx       = "max"
	mn       = "min"
	oneof    = "oneof"
	required = "required"

	// catalog keys that aren't validation tags
	typeString = "string"
	typeOther  = "type"
	unknown    = "unknown"
)

// catalogTags are the validation tags whose messages come from the locale
// catalogs instead of the validator's default translations.
var catalogTags = []string{dateDMY, flag, mx, mn, oneof, required}

func registerTranslations(validate *validator.Validate) (map[string]ut.Translator, error) {
	uni := locale.NewTranslator()
	translators := map[string]ut.Translator{}

	for _, l := range locale.Supported() {
		trans, found := uni.GetTranslator(l)
		if !found {
			return nil, errors.Errorf("no translator for locale %q", l)
		}

		var err error
		switch l {
		case locale.Arabic:
			err = ar_translations.RegisterDefaultTranslations(validate, trans)
		default:
			err = en_translations.RegisterDefaultTranslations(validate, trans)
		}
		if err != nil {
			return nil, errors.Wrapf(err, "registering %s translations", l)
		}

		catalog := locale.Lookup(l)
		for key, msg := range catalog.Messages {
			if err := trans.Add(key, msg, true); err != nil {
				return nil, errors.Wrapf(err, "adding %s message %q", l, key)
			}
		}
		for _, tag := range catalogTags {
			err := validate.RegisterTranslation(tag, trans, func(ut.Translator) error { return nil }, translateFieldError(catalog))
			if err != nil {
				return nil, errors.Wrapf(err, "registering %s translation for %q", l, tag)
			}
		}

		translators[l] = trans
	}

	return translators, nil
}

func translateFieldError(catalog *locale.Catalog) validator.TranslationFunc {
	return func(trans ut.Translator, fe validator.FieldError) string {
		key := fe.Tag()
		param := fe.Param()

		switch fe.Tag() {
		case mn, mx:
			if isNumeric(fe.Kind()) {
				key += "_numeric"
			}
		case oneof:
			param = strings.Join(strings.Fields(param), ", ")
		}

		return message(trans, catalog, key, fe.Field(), param)
	}
}

func formatUnmarshalTypeError(trans ut.Translator, catalog *locale.Catalog, err *json.UnmarshalTypeError) (string, string) {
	field := strings.Trim(err.Field, ".")
	return field, message(trans, catalog, typeKey(err.Type), field, "")
}

func formatConversionError(trans ut.Translator, catalog *locale.Catalog, err schema.ConversionError) string {
	return message(trans, catalog, typeKey(err.Type), err.Key, "")
}

func typeKey(t reflect.Type) string {
	if t != nil && t.Kind() == reflect.String {
		return typeString
	}
	return typeOther
}

func message(trans ut.Translator, catalog *locale.Catalog, key, field, param string) string {
	name := catalog.FieldName(field)
	msg, err := trans.T(key, name, param)
	if err != nil {
		msg, _ = trans.T(unknown, name)
	}
	return msg
}

func isNumeric(kind reflect.Kind) bool {
	//exhaustive:ignore
	switch kind {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}
