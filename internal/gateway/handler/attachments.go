package handler

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5"

	"contextify/internal/media"
)

// errTooLarge marks an upload over the per-file cap. Mapped to 413
// instead of the generic encode failure.
var errTooLarge = errors.New("handler: file exceeds upload limit")

// StageAttachments encodes one or more "file" parts and parks them on
// the conversation for the next send.
func (h *Handler) StageAttachments(w http.ResponseWriter, r *http.Request) {
	s, err := h.svc.Get(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Expected multipart form data"))
		return
	}
	headers := r.MultipartForm.File["file"]
	if len(headers) == 0 {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "No file provided"))
		return
	}
	atts, err := h.encodeUploads(headers)
	if err != nil {
		respondError(w, err)
		return
	}
	for _, att := range atts {
		s.Stage(att)
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{"attachments": atts})
}

// UnstageAttachment removes one staged file, freeing its payload.
func (h *Handler) UnstageAttachment(w http.ResponseWriter, r *http.Request) {
	s, err := h.svc.Get(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	if !s.Unstage(chi.URLParam(r, "attachmentID")) {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "No such staged attachment"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) encodeUploads(headers []*multipart.FileHeader) ([]media.Attachment, error) {
	atts := make([]media.Attachment, 0, len(headers))
	for _, fh := range headers {
		att, err := h.encodeUpload(fh)
		if err != nil {
			return nil, err
		}
		atts = append(atts, att)
	}
	return atts, nil
}

func (h *Handler) encodeUpload(fh *multipart.FileHeader) (media.Attachment, error) {
	if fh.Size > h.maxUpload {
		return media.Attachment{}, errTooLarge
	}
	f, err := fh.Open()
	if err != nil {
		return media.Attachment{}, fmt.Errorf("%w: %v", media.ErrEncode, err)
	}
	defer f.Close()

	mimeType := fh.Header.Get("Content-Type")
	if mimeType == "" || mimeType == "application/octet-stream" {
		// Sniff from the first 512 bytes when the browser was vague.
		buf := make([]byte, 512)
		n, _ := f.Read(buf)
		mimeType = http.DetectContentType(buf[:n])
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			return media.Attachment{}, fmt.Errorf("%w: %v", media.ErrEncode, err)
		}
	}
	return media.Encode(f, fh.Filename, mimeType, h.maxUpload)
}
