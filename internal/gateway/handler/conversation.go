package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"contextify/internal/conversation"
	"contextify/internal/form"
	"contextify/internal/llm"
	"contextify/internal/media"
)

// transcriptResponse is the conversation envelope the client renders
// from: the full message log, the in-flight flag, and whatever is
// staged in the composer.
type transcriptResponse struct {
	ID       string                 `json:"id"`
	Messages []conversation.Message `json:"messages"`
	Loading  bool                   `json:"loading"`
	Staged   []media.Attachment     `json:"staged"`
}

func transcriptOf(s *conversation.Session) transcriptResponse {
	msgs, loading := s.Transcript()
	return transcriptResponse{
		ID:       s.ID,
		Messages: msgs,
		Loading:  loading,
		Staged:   s.Staged(),
	}
}

// CreateConversation opens a fresh session.
func (h *Handler) CreateConversation(w http.ResponseWriter, r *http.Request) {
	s := h.svc.Create()
	writeJSON(w, http.StatusCreated, transcriptOf(s))
}

// GetConversation returns the current transcript.
func (h *Handler) GetConversation(w http.ResponseWriter, r *http.Request) {
	s, err := h.svc.Get(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, transcriptOf(s))
}

// DeleteConversation drops the session and everything it held.
func (h *Handler) DeleteConversation(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(chi.URLParam(r, "id")); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ResetConversation clears the transcript back to the greeting.
func (h *Handler) ResetConversation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.svc.Reset(id); err != nil {
		respondError(w, err)
		return
	}
	s, err := h.svc.Get(id)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, transcriptOf(s))
}

type sendMessageRequest struct {
	Text  string `json:"text"`
	Model string `json:"model"`
}

// SendMessage runs one chat turn. The body is either JSON {text, model}
// or multipart/form-data with "text"/"model" fields and "file" parts
// attached inline. Staged attachments ride along either way and are
// consumed. The answer is the produced message pair, fallback notice
// included, so a failed model call is still a 200.
func (h *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var (
		req  sendMessageRequest
		atts []media.Attachment
	)
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid multipart body"))
			return
		}
		req.Text = firstValue(r, "text")
		req.Model = firstValue(r, "model")
		var err error
		if atts, err = h.encodeUploads(r.MultipartForm.File["file"]); err != nil {
			respondError(w, err)
			return
		}
	} else if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body"))
		return
	}
	variant, err := llm.ParseVariant(req.Model)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Unknown model variant"))
		return
	}

	res, err := h.svc.Send(r.Context(), chi.URLParam(r, "id"), req.Text, atts, variant)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// SubmitForm accepts the active form as multipart/form-data: one value
// per field id, file parts keyed by their field id, "extra_files" for
// unsolicited uploads, "additional_text" for the free-form notes, plus
// "message_id" and "model".
func (h *Handler) SubmitForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Expected multipart form data"))
		return
	}
	variant, err := llm.ParseVariant(firstValue(r, "model"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Unknown model variant"))
		return
	}
	messageID := strings.TrimSpace(firstValue(r, "message_id"))
	if messageID == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "message_id is required"))
		return
	}

	sub := form.Submission{
		Values: make(map[string]string),
		Files:  make(map[string][]media.Attachment),
	}
	for key, vals := range r.MultipartForm.Value {
		if len(vals) == 0 {
			continue
		}
		switch key {
		case "message_id", "model":
		case form.NotesKey:
			sub.AdditionalText = vals[0]
		default:
			sub.Values[key] = vals[0]
		}
	}
	for key, headers := range r.MultipartForm.File {
		atts, err := h.encodeUploads(headers)
		if err != nil {
			respondError(w, err)
			return
		}
		if key == form.ExtraFilesKey {
			sub.ExtraFiles = atts
		} else {
			sub.Files[key] = atts
		}
	}

	res, err := h.svc.SubmitForm(r.Context(), chi.URLParam(r, "id"), messageID, sub, variant)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func firstValue(r *http.Request, key string) string {
	if vals := r.MultipartForm.Value[key]; len(vals) > 0 {
		return vals[0]
	}
	return ""
}
