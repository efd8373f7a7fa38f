package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"kavun/internal/usecase"

	"github.com/sirupsen/logrus"
)

// ErrorResponse is the error shape for every endpoint: {"error": "..."}.
type ErrorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}

// writeUsecaseError maps usecase errors onto the response contract:
// invalid input keeps its user-facing reason as a 400, not-found stays
// generic so nothing leaks about other users' records, everything else is
// a logged 500.
func writeUsecaseError(w http.ResponseWriter, err error, logMsg string) {
	var invalid *usecase.InvalidInputError
	switch {
	case errors.As(err, &invalid):
		writeError(w, http.StatusBadRequest, invalid.Reason)
	case errors.Is(err, usecase.ErrNotFound):
		writeError(w, http.StatusNotFound, "kayıt bulunamadı")
	case errors.Is(err, usecase.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "oturum açmanız gerekiyor")
	default:
		logrus.WithError(err).Error(logMsg)
		writeError(w, http.StatusInternalServerError, "sunucu hatası")
	}
}
