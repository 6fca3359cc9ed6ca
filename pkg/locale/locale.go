package locale

import (
	"strings"

	"github.com/go-playground/locales/ar"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
)

const (
	English = "en"
	Arabic  = "ar"
)

// Catalog holds the localized words the API emits or accepts for a single
// locale. Messages are validator translations keyed by tag, with {0} standing
// for the field name and {1} for the tag's parameter.
type Catalog struct {
	Locale           string
	ErrorStatus      string
	ValidationFailed string
	ActiveLabel      string
	InactiveLabel    string
	ActiveTokens     []string
	InactiveTokens   []string
	Fields           map[string]string
	Messages         map[string]string
}

var catalogs = map[string]*Catalog{
	English: {
		Locale:           English,
		ErrorStatus:      "error",
		ValidationFailed: "The given data was invalid.",
		ActiveLabel:      "active",
		InactiveLabel:    "not active",
		ActiveTokens:     []string{"active"},
		InactiveTokens:   []string{"inactive", "not active"},
		Fields: map[string]string{
			"title":        "title",
			"author":       "author",
			"published_at": "published at",
			"is_active":    "status",
			"page":         "page",
			"fields":       "fields",
			"locale":       "locale",
		},
		Messages: map[string]string{
			"required":    "The {0} field is required.",
			"string":      "The {0} field must be a string.",
			"type":        "The {0} field has an invalid type.",
			"min":         "The {0} field must be at least {1} characters.",
			"max":         "The {0} field must not be greater than {1} characters.",
			"min_numeric": "The {0} field must be at least {1}.",
			"max_numeric": "The {0} field must not be greater than {1}.",
			"date_dmy":    "The {0} field must be a valid date in the format DD-MM-YYYY.",
			"flag":        "The {0} field must be either active or inactive.",
			"oneof":       "The {0} field must be one of: {1}.",
			"unknown":     "The {0} field is invalid.",
		},
	},
	Arabic: {
		Locale:           Arabic,
		ErrorStatus:      "خطأ",
		ValidationFailed: "فشلت عملية التحقق من صحة البيانات.",
		ActiveLabel:      "نشط",
		InactiveLabel:    "غير نشط",
		ActiveTokens:     []string{"نشط"},
		InactiveTokens:   []string{"غير نشط"},
		Fields: map[string]string{
			"title":        "العنوان",
			"author":       "المؤلف",
			"published_at": "تاريخ النشر",
			"is_active":    "حالة الكتاب",
			"page":         "الصفحة",
			"fields":       "الحقول",
			"locale":       "اللغة",
		},
		Messages: map[string]string{
			"required":    "حقل {0} مطلوب",
			"string":      "حقل {0} يجب أن يكون نصًا وليس أي نوع آخر",
			"type":        "حقل {0} من نوع غير صالح",
			"min":         "حقل {0} يجب أن يكون {1} محارف على الأقل",
			"max":         "عدد محارف {0} لا يجب أن يتجاوز {1} محرفًا",
			"min_numeric": "حقل {0} يجب أن يكون {1} على الأقل",
			"max_numeric": "حقل {0} يجب ألا يتجاوز {1}",
			"date_dmy":    "حقل {0} يجب أن يكون بصيغة تاريخ صحيحة مثل DD-MM-YYYY",
			"flag":        "حقل {0} يجب ان يكون اما نشط او غير نشط",
			"oneof":       "حقل {0} يجب أن يكون أحد القيم التالية: {1}",
			"unknown":     "حقل {0} غير صالح",
		},
	},
}

// Supported returns the supported locales, the first being the fallback used
// when nothing else matches.
func Supported() []string {
	return []string{English, Arabic}
}

func IsSupported(l string) bool {
	_, ok := catalogs[l]
	return ok
}

// Lookup returns the catalog for l, or the English catalog when l isn't
// supported.
func Lookup(l string) *Catalog {
	if c, ok := catalogs[l]; ok {
		return c
	}
	return catalogs[English]
}

// NewTranslator returns a universal translator with every supported locale
// registered and English as the fallback.
func NewTranslator() *ut.UniversalTranslator {
	return ut.New(en.New(), en.New(), ar.New())
}

func (c *Catalog) StatusLabel(active bool) string {
	if active {
		return c.ActiveLabel
	}
	return c.InactiveLabel
}

// ParseStatusToken maps one of the catalog's status tokens to its boolean
// value. ok is false when s isn't a token of this locale.
func (c *Catalog) ParseStatusToken(s string) (active bool, ok bool) {
	s = strings.TrimSpace(s)
	for _, t := range c.ActiveTokens {
		if strings.EqualFold(s, t) {
			return true, true
		}
	}
	for _, t := range c.InactiveTokens {
		if strings.EqualFold(s, t) {
			return false, true
		}
	}
	return false, false
}

// FieldName returns the localized name of a payload field.
func (c *Catalog) FieldName(field string) string {
	if name, ok := c.Fields[field]; ok {
		return name
	}
	return field
}
