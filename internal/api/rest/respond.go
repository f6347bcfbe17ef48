package rest

import (
	"encoding/json"
	"log"
	"net/http"

	apperrors "github.com/louisbranch/scorekeep/internal/platform/errors"
	"github.com/louisbranch/scorekeep/internal/platform/errors/i18n"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("rest: encode response: %v", err)
	}
}

// writeError renders an error as the coded JSON error shape, localized to
// the request's Accept-Language.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	locale := i18n.MatchLocale(r.Header.Get("Accept-Language"))
	httpErr := apperrors.ToHTTP(err, locale)
	if httpErr.Status >= http.StatusInternalServerError {
		log.Printf("rest: %s %s: %v", r.Method, r.URL.Path, err)
	}
	writeJSON(w, httpErr.Status, httpErr)
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, apperrors.HTTPError{
			Status:  http.StatusBadRequest,
			Code:    string(apperrors.CodeUnknown),
			Message: "malformed request body",
		})
		return false
	}
	return true
}
