package media

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"
)

func TestEncodeRoundTrip(t *testing.T) {
	a, err := Encode(strings.NewReader("hello"), "note.txt", "text/plain", 0)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if a.MIMEType != "text/plain" {
		t.Fatalf("mime = %q", a.MIMEType)
	}
	if a.Data != base64.StdEncoding.EncodeToString([]byte("hello")) {
		t.Fatalf("data = %q", a.Data)
	}
	if strings.HasPrefix(a.Data, "data:") {
		t.Fatalf("data must not carry a data-URI prefix: %q", a.Data)
	}
	if a.Size != 5 {
		t.Fatalf("size = %d", a.Size)
	}
	raw, err := a.Decode()
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if string(raw) != "hello" {
		t.Fatalf("decoded = %q", raw)
	}
}

func TestEncodeMissingMIME(t *testing.T) {
	if _, err := Encode(strings.NewReader("x"), "a", "  ", 0); !errors.Is(err, ErrEncode) {
		t.Fatalf("err = %v, want ErrEncode", err)
	}
}

func TestEncodeOverCap(t *testing.T) {
	_, err := Encode(strings.NewReader("abcdef"), "a.bin", "application/octet-stream", 5)
	if !errors.Is(err, ErrEncode) {
		t.Fatalf("err = %v, want ErrEncode", err)
	}
	// Exactly at the cap is fine.
	if _, err := Encode(strings.NewReader("abcde"), "a.bin", "application/octet-stream", 5); err != nil {
		t.Fatalf("at-cap Encode: %v", err)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("boom") }

func TestEncodeReadFailure(t *testing.T) {
	if _, err := Encode(failingReader{}, "a", "image/png", 0); !errors.Is(err, ErrEncode) {
		t.Fatalf("err = %v, want ErrEncode", err)
	}
}

func TestDecodeCorrupt(t *testing.T) {
	a := Attachment{Name: "x", MIMEType: "image/png", Data: "!!!not-base64!!!"}
	if _, err := a.Decode(); !errors.Is(err, ErrEncode) {
		t.Fatalf("err = %v, want ErrEncode", err)
	}
}
