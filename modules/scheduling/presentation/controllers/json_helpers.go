package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/formatix/erp/modules/scheduling/presentation/controllers/dtos"
	"github.com/formatix/erp/pkg/serrors"
)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		panic(err)
	}
}

func writeJSONError(w http.ResponseWriter, status int, code, message string, meta ...map[string]string) {
	payload := &dtos.APIError{Code: code, Message: message}
	if len(meta) > 0 && meta[0] != nil {
		payload.Meta = meta[0]
	}
	writeJSON(w, status, payload)
}

// writeServiceError translates the service error taxonomy into HTTP
// statuses: validation 400, not found 404, everything else 500.
func writeServiceError(w http.ResponseWriter, err error) {
	var base *serrors.BaseError
	if !errors.As(err, &base) {
		writeJSONError(w, http.StatusInternalServerError, serrors.CodePersistence, "internal server error")
		return
	}
	switch base.Code {
	case serrors.CodeValidation:
		writeJSONError(w, http.StatusBadRequest, base.Code, base.Message)
	case serrors.CodeNotFound:
		writeJSONError(w, http.StatusNotFound, base.Code, base.Message)
	default:
		writeJSONError(w, http.StatusInternalServerError, base.Code, "internal server error")
	}
}
