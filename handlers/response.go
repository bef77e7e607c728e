package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/TahirMustafa-NO-ONE/smiths-crm/services"
)

// apiResponse is the wire envelope every endpoint returns.
type apiResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// requestPayload is the create/update body shape: the record travels under
// a "data" key.
type requestPayload struct {
	Data json.RawMessage `json:"data"`
}

func writeJSON(w http.ResponseWriter, code int, resp apiResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(resp)
}

func writeSuccess(w http.ResponseWriter, code int, message string, data interface{}) {
	writeJSON(w, code, apiResponse{Status: "success", Message: message, Data: data})
}

func writeFailed(w http.ResponseWriter, code int, message string) {
	writeJSON(w, code, apiResponse{Status: "failed", Message: message})
}

func writeError(w http.ResponseWriter, code int, message string) {
	writeJSON(w, code, apiResponse{Status: "error", Message: message})
}

// respondServiceError maps service failures onto the envelope: validation
// to 400 with a fixed message, missing documents to 404, everything else to
// a 500 with a storage-level message.
func respondServiceError(w http.ResponseWriter, entity string, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		writeFailed(w, http.StatusBadRequest, "Invalid data")
	case errors.Is(err, services.ErrNotFound):
		writeFailed(w, http.StatusNotFound, entity+" not found")
	default:
		writeFailed(w, http.StatusInternalServerError, "Error in accessing data in DB")
	}
}
