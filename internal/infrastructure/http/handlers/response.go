package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	domerrors "github.com/amirhosseinghanipour/projectdb/internal/domain/errors"
)

const timeFormat = "2006-01-02T15:04:05Z07:00"

// writeErr sends JSON { "error": message, "code": errCode }. If errCode is empty, a default is used from code.
func writeErr(w http.ResponseWriter, code int, errCode string, message string) {
	if errCode == "" {
		errCode = defaultErrCode(code)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message, "code": errCode})
}

func defaultErrCode(httpCode int) string {
	switch httpCode {
	case http.StatusBadRequest:
		return ErrCodeInvalidRequest
	case http.StatusUnauthorized:
		return ErrCodeUnauthorized
	case http.StatusForbidden:
		return ErrCodeForbidden
	case http.StatusNotFound:
		return ErrCodeNotFound
	case http.StatusConflict:
		return ErrCodeConflict
	case http.StatusTooManyRequests:
		return ErrCodeRateLimited
	case http.StatusNotImplemented:
		return ErrCodeNotImplemented
	default:
		return ErrCodeInternal
	}
}

// writeDomainErr maps sentinel errors to status and code. It reports false for unknown errors.
func writeDomainErr(w http.ResponseWriter, err error) bool {
	switch {
	case errors.Is(err, domerrors.ErrInvalidProjectID):
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidProjectID, err.Error())
	case errors.Is(err, domerrors.ErrInvalidTableName):
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidTableName, err.Error())
	case errors.Is(err, domerrors.ErrInvalidColumn):
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidColumn, err.Error())
	case errors.Is(err, domerrors.ErrProjectNotFound), errors.Is(err, domerrors.ErrTableNotFound):
		writeErr(w, http.StatusNotFound, "", err.Error())
	case errors.Is(err, domerrors.ErrTableExists):
		writeErr(w, http.StatusConflict, "", err.Error())
	default:
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
