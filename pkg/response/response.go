// Package response writes the store's JSON wire shapes.
//
// The API is deliberately un-enveloped: list endpoints return bare arrays,
// create endpoints return the created row with a 200 (existing clients
// check for that, not 201), and failures return either {"message": ...}
// (client errors) or {"error": ...} (server errors).
package response

import (
	"encoding/json"
	"net/http"
)

func write(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body) //nolint:errcheck
}

// JSON sends a 200 response with v encoded as-is.
func JSON(w http.ResponseWriter, v interface{}) {
	write(w, http.StatusOK, v)
}

// Message sends status with a {"message": ...} body plus optional extra fields.
func Message(w http.ResponseWriter, status int, msg string, extra map[string]interface{}) {
	body := map[string]interface{}{"message": msg}
	for k, v := range extra {
		body[k] = v
	}
	write(w, status, body)
}

// ValidationError sends a 400 with the first field-level failure as message.
func ValidationError(w http.ResponseWriter, errs map[string]string) {
	for _, msg := range errs {
		Message(w, http.StatusBadRequest, msg, map[string]interface{}{"errors": errs})
		return
	}
	Message(w, http.StatusBadRequest, "Validation failed", nil)
}

// BadRequest sends a 400 {"message": ...}.
func BadRequest(w http.ResponseWriter, msg string) {
	Message(w, http.StatusBadRequest, msg, nil)
}

// NotFound sends a 404 {"message": ...}.
func NotFound(w http.ResponseWriter, msg string) {
	Message(w, http.StatusNotFound, msg, nil)
}

// ServerError sends a 500 {"error": ...}.
func ServerError(w http.ResponseWriter, err error) {
	write(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
}
