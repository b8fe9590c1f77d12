// Package httputil provides shared HTTP utilities for consistent response handling.
package httputil

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Content types written by the FLTS service.
const (
	ContentTypeJSON = "application/json"
	ContentTypePDF  = "application/pdf"
	ContentTypeZip  = "application/zip"
)

// WriteJSON writes a JSON response with the given status code.
// It sets the Content-Type header to application/json.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", ContentTypeJSON)
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// WriteError writes a JSON error body {"status":"error","message":...}
// with the given status code.
func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, map[string]string{
		"status":  "error",
		"message": message,
	})
}

// WriteMessage writes an informational JSON body
// {"status":"success","message":...} with the given status code.
func WriteMessage(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, map[string]string{
		"status":  "success",
		"message": message,
	})
}

// WriteDocument writes raw document bytes with the given content type and a
// Content-Disposition attachment header carrying the file name.
func WriteDocument(w http.ResponseWriter, contentType, name string, data []byte) error {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(data)))
	w.WriteHeader(http.StatusOK)
	_, err := w.Write(data)
	return err
}

// WritePDF writes a single PDF document response.
func WritePDF(w http.ResponseWriter, name string, data []byte) error {
	return WriteDocument(w, ContentTypePDF, name, data)
}

// WriteZip writes a zip archive response.
func WriteZip(w http.ResponseWriter, name string, data []byte) error {
	return WriteDocument(w, ContentTypeZip, name, data)
}
