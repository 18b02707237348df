package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

type captureStateResponse struct {
	State string `json:"state"`
}

// CaptureStart claims the conversation's microphone gate.
func (h *Handler) CaptureStart(w http.ResponseWriter, r *http.Request) {
	state, err := h.svc.CaptureStart(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, captureStateResponse{State: string(state)})
}

// CaptureCancel discards the recording without a transcription call.
func (h *Handler) CaptureCancel(w http.ResponseWriter, r *http.Request) {
	state, err := h.svc.CaptureCancel(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, captureStateResponse{State: string(state)})
}

type captureFinishRequest struct {
	Audio    string `json:"audio"` // base64, no data-URI prefix
	MIMEType string `json:"mimeType"`
}

type captureFinishResponse struct {
	Text string `json:"text"`
}

// CaptureFinish sends the recorded audio through transcription. The
// gate is released whatever happens; an error here means no text, not a
// stuck control.
func (h *Handler) CaptureFinish(w http.ResponseWriter, r *http.Request) {
	// Base64 runs 4/3 over the raw audio, so allow double the cap.
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload*2)

	var req captureFinishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body"))
		return
	}
	if strings.TrimSpace(req.Audio) == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "No audio provided"))
		return
	}

	text, err := h.svc.CaptureFinish(r.Context(), chi.URLParam(r, "id"), req.Audio, req.MIMEType)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, captureFinishResponse{Text: text})
}
