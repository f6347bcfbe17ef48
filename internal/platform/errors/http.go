package errors

import (
	"errors"
	"net/http"

	"github.com/louisbranch/scorekeep/internal/platform/errors/i18n"
)

// DefaultLocale is the default locale for error messages.
const DefaultLocale = "en-US"

// HTTPError is the wire shape of a failed API response.
type HTTPError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ToHTTP converts any error to an HTTPError for client responses.
// It formats the user-facing message using the i18n catalog for the given
// locale, defaulting to en-US if the locale is empty.
func ToHTTP(err error, locale string) HTTPError {
	if locale == "" {
		locale = DefaultLocale
	}

	var appErr *Error
	if errors.As(err, &appErr) {
		catalog := i18n.GetCatalog(locale)
		return HTTPError{
			Status:  appErr.Code.HTTPStatus(),
			Code:    string(appErr.Code),
			Message: catalog.Format(string(appErr.Code), appErr.Metadata),
		}
	}

	// Unknown error - return internal with generic message
	return HTTPError{
		Status:  http.StatusInternalServerError,
		Code:    string(CodeUnknown),
		Message: i18n.GetCatalog(locale).Format(string(CodeUnknown), nil),
	}
}

// GetCode extracts the error code from any error.
// Returns CodeUnknown if the error is not a domain error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeUnknown
}

// IsCode checks if the error has the specified code.
func IsCode(err error, code Code) bool {
	return GetCode(err) == code
}
