package locale

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNegotiate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name           string
		requested      string
		acceptLanguage string
		fallback       string
		expected       string
	}{
		{"explicit locale wins", "ar", "en-US,en;q=0.9", English, Arabic},
		{"unsupported explicit locale is ignored", "fr", "ar-SA", English, Arabic},
		{"accept-language region matches base", "", "ar-EG,ar;q=0.9", English, Arabic},
		{"accept-language english", "", "en-GB", Arabic, English},
		{"no match uses fallback", "", "fr-FR,de;q=0.8", Arabic, Arabic},
		{"empty header uses fallback", "", "", Arabic, Arabic},
		{"malformed header uses fallback", "", ";;;q=abc", English, English},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Negotiate(tt.requested, tt.acceptLanguage, tt.fallback))
		})
	}
}

func TestFromContext_DefaultsToEnglish(t *testing.T) {
	t.Parallel()
	assert.Equal(t, English, FromContext(context.Background()))
	assert.Equal(t, Arabic, FromContext(WithLocale(context.Background(), Arabic)))
}

func TestLookup_FallsBackToEnglish(t *testing.T) {
	t.Parallel()
	assert.Equal(t, English, Lookup("xx").Locale)
	assert.Equal(t, Arabic, Lookup(Arabic).Locale)
}

func TestCatalog_ParseStatusToken(t *testing.T) {
	t.Parallel()

	active, ok := Lookup(Arabic).ParseStatusToken("نشط")
	assert.True(t, ok)
	assert.True(t, active)

	active, ok = Lookup(Arabic).ParseStatusToken(" غير نشط ")
	assert.True(t, ok)
	assert.False(t, active)

	// Tokens belong to a single locale.
	_, ok = Lookup(English).ParseStatusToken("نشط")
	assert.False(t, ok)

	active, ok = Lookup(English).ParseStatusToken("Inactive")
	assert.True(t, ok)
	assert.False(t, active)

	_, ok = Lookup(English).ParseStatusToken("maybe")
	assert.False(t, ok)
}

func TestCatalog_StatusLabelAndFieldName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "active", Lookup(English).StatusLabel(true))
	assert.Equal(t, "not active", Lookup(English).StatusLabel(false))
	assert.Equal(t, "نشط", Lookup(Arabic).StatusLabel(true))
	assert.Equal(t, "غير نشط", Lookup(Arabic).StatusLabel(false))

	assert.Equal(t, "العنوان", Lookup(Arabic).FieldName("title"))
	assert.Equal(t, "unknown_field", Lookup(Arabic).FieldName("unknown_field"))
}

func TestCatalogs_HaveTheSameKeys(t *testing.T) {
	t.Parallel()

	en := Lookup(English)
	for _, l := range Supported() {
		c := Lookup(l)
		for k := range en.Messages {
			assert.Contains(t, c.Messages, k, "locale %s is missing message %s", l, k)
		}
		for k := range en.Fields {
			assert.Contains(t, c.Fields, k, "locale %s is missing field %s", l, k)
		}
	}
}

func TestNewTranslator(t *testing.T) {
	t.Parallel()

	uni := NewTranslator()
	for _, l := range Supported() {
		trans, found := uni.GetTranslator(l)
		assert.True(t, found, "translator for %s", l)
		assert.Equal(t, l, trans.Locale())
	}
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/books?locale=ar", nil)
	rr := httptest.NewRecorder()
	c := e.NewContext(req, rr)

	var seen string
	err := Middleware(English)(func(c echo.Context) error {
		seen = FromContext(c.Request().Context())
		return nil
	})(c)
	require.NoError(t, err)
	assert.Equal(t, Arabic, seen)
	assert.Equal(t, Arabic, rr.Header().Get("Content-Language"))
}
