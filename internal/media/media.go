// Package media turns uploaded files into inline attachments the model
// API accepts: a MIME type plus the payload as raw base64, no data-URI
// prefix.
package media

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
)

// ErrEncode marks any failure while reading or encoding an upload.
// Callers surface a generic retry notice; the cause stays in the wrap
// chain for logs.
var ErrEncode = errors.New("media: encode failed")

// DefaultMaxBytes bounds a single inline attachment. The Gemini API
// rejects oversized inline payloads anyway; failing early keeps the
// gateway's memory predictable.
const DefaultMaxBytes = 20 << 20

// Attachment is one encoded file, ready to ride along a model turn.
// Data never appears in API JSON; the payload only travels toward the
// model.
type Attachment struct {
	ID       string `json:"id"`
	Name     string `json:"name,omitempty"`
	MIMEType string `json:"mimeType"`
	Data     string `json:"-"`    // base64, standard alphabet
	Size     int64  `json:"size"` // decoded size in bytes
}

// Encode reads r to completion and returns the attachment. maxBytes <= 0
// means DefaultMaxBytes. Oversized, empty-typed, or unreadable input
// yields an error wrapping ErrEncode.
func Encode(r io.Reader, name, mimeType string, maxBytes int64) (Attachment, error) {
	if strings.TrimSpace(mimeType) == "" {
		return Attachment{}, fmt.Errorf("%w: missing mime type", ErrEncode)
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	// Read one byte past the cap so the limit check can tell "exactly
	// at cap" from "over cap".
	raw, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return Attachment{}, fmt.Errorf("%w: read %q: %v", ErrEncode, name, err)
	}
	if int64(len(raw)) > maxBytes {
		return Attachment{}, fmt.Errorf("%w: %q exceeds %d bytes", ErrEncode, name, maxBytes)
	}
	return Attachment{
		ID:       uuid.NewString(),
		Name:     name,
		MIMEType: mimeType,
		Data:     base64.StdEncoding.EncodeToString(raw),
		Size:     int64(len(raw)),
	}, nil
}

// EncodeBytes is Encode for payloads already in memory.
func EncodeBytes(raw []byte, name, mimeType string, maxBytes int64) (Attachment, error) {
	return Encode(bytes.NewReader(raw), name, mimeType, maxBytes)
}

// Decode returns the raw payload bytes of a.
func (a Attachment) Decode() ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(a.Data)
	if err != nil {
		return nil, fmt.Errorf("%w: decode %q: %v", ErrEncode, a.Name, err)
	}
	return raw, nil
}
