// Package i18n holds locale catalogs for user-facing error messages.
package i18n

import (
	"bytes"
	"text/template"

	"golang.org/x/text/language"
)

// Code mirrors the machine-readable error codes as plain strings to avoid
// an import cycle with the errors package.
type Code = string

// Catalog maps error codes to locale-specific message templates.
type Catalog struct {
	locale   string
	messages map[Code]string
}

// Locale returns the catalog's BCP 47 locale tag.
func (c *Catalog) Locale() string {
	return c.locale
}

// Format renders the message for code, interpolating metadata values into
// {{.Key}} placeholders. Unknown codes fall back to the unknown-error message.
func (c *Catalog) Format(code Code, metadata map[string]string) string {
	msg, ok := c.messages[code]
	if !ok {
		msg = c.messages[CodeUnknown]
	}
	if len(metadata) == 0 {
		return msg
	}
	tmpl, err := template.New("msg").Parse(msg)
	if err != nil {
		return msg
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, metadata); err != nil {
		return msg
	}
	return buf.String()
}

var catalogs = []*Catalog{enUSCatalog, frFRCatalog}

var matcher = language.NewMatcher([]language.Tag{
	language.AmericanEnglish,
	language.French,
})

// GetCatalog returns the catalog best matching the requested locale.
// Unknown or empty locales resolve to en-US.
func GetCatalog(locale string) *Catalog {
	tag, err := language.Parse(locale)
	if err != nil {
		return enUSCatalog
	}
	_, index, _ := matcher.Match(tag)
	if index < 0 || index >= len(catalogs) {
		return enUSCatalog
	}
	return catalogs[index]
}

// MatchLocale resolves an Accept-Language header value to a supported locale.
func MatchLocale(acceptLanguage string) string {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return enUSCatalog.locale
	}
	_, index, _ := matcher.Match(tags...)
	if index < 0 || index >= len(catalogs) {
		return enUSCatalog.locale
	}
	return catalogs[index].locale
}
