// Package handler exposes the conversation service over REST plus one
// websocket event feed per conversation.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"contextify/internal/conversation"
	"contextify/internal/media"
	"contextify/internal/transcribe"
)

// Handler holds the HTTP surface. All state lives in the service; the
// handler only translates requests and error codes.
type Handler struct {
	svc       *conversation.Service
	maxUpload int64
}

func New(svc *conversation.Service, maxUpload int64) *Handler {
	if maxUpload <= 0 {
		maxUpload = media.DefaultMaxBytes
	}
	return &Handler{svc: svc, maxUpload: maxUpload}
}

// ErrorResponse is the envelope every non-2xx answer carries.
type ErrorResponse struct {
	Error APIError `json:"error"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func errorResp(code, message string) ErrorResponse {
	return ErrorResponse{Error: APIError{Code: code, Message: message}}
}

// respondError maps service errors onto HTTP statuses. Model failures
// never reach this path; those come back as ordinary messages.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, conversation.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Conversation not found"))
	case errors.Is(err, conversation.ErrBusy):
		writeJSON(w, http.StatusConflict, errorResp("BUSY", "A message is already in flight"))
	case errors.Is(err, conversation.ErrFormSuperseded):
		writeJSON(w, http.StatusConflict, errorResp("FORM_SUPERSEDED", "This form is no longer active"))
	case errors.Is(err, transcribe.ErrCaptureBusy):
		writeJSON(w, http.StatusConflict, errorResp("CAPTURE_BUSY", "Recording state does not allow that"))
	case errors.Is(err, conversation.ErrEmptyMessage):
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Message needs text or at least one attachment"))
	case errors.Is(err, errTooLarge):
		writeJSON(w, http.StatusRequestEntityTooLarge, errorResp("FILE_TOO_LARGE", "File exceeds the upload limit"))
	case errors.Is(err, media.ErrEncode):
		writeJSON(w, http.StatusBadRequest, errorResp("ENCODE_FAILED", "Could not read the uploaded file"))
	case errors.Is(err, transcribe.ErrTranscribe):
		writeJSON(w, http.StatusInternalServerError, errorResp("AI_ERROR", "Transcription failed"))
	default:
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Something went wrong"))
	}
}
