package transcribe

import (
	"context"
	"errors"
	"testing"

	genai "google.golang.org/genai"
)

type countingTranscriber struct {
	calls int
	text  string
	err   error
}

func (c *countingTranscriber) Transcribe(context.Context, string, string) (string, error) {
	c.calls++
	return c.text, c.err
}

func TestCacheHitSkipsInner(t *testing.T) {
	inner := &countingTranscriber{text: "hello world"}
	cache, err := NewCache(inner, 8)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		text, err := cache.Transcribe(ctx, "AAAA", "audio/webm")
		if err != nil || text != "hello world" {
			t.Fatalf("Transcribe: %q, %v", text, err)
		}
	}
	if inner.calls != 1 {
		t.Fatalf("inner calls = %d, want 1", inner.calls)
	}
}

func TestCacheKeyIncludesMIME(t *testing.T) {
	inner := &countingTranscriber{text: "x"}
	cache, _ := NewCache(inner, 8)
	ctx := context.Background()
	if _, err := cache.Transcribe(ctx, "AAAA", "audio/webm"); err != nil {
		t.Fatal(err)
	}
	if _, err := cache.Transcribe(ctx, "AAAA", "audio/ogg"); err != nil {
		t.Fatal(err)
	}
	if inner.calls != 2 {
		t.Fatalf("inner calls = %d, want 2 (distinct mime types)", inner.calls)
	}
}

func TestCacheDoesNotStoreFailures(t *testing.T) {
	inner := &countingTranscriber{err: errors.New("boom")}
	cache, _ := NewCache(inner, 8)
	ctx := context.Background()
	if _, err := cache.Transcribe(ctx, "AAAA", "audio/webm"); err == nil {
		t.Fatal("expected error")
	}
	inner.err = nil
	inner.text = "recovered"
	text, err := cache.Transcribe(ctx, "AAAA", "audio/webm")
	if err != nil || text != "recovered" {
		t.Fatalf("retry after failure: %q, %v", text, err)
	}
	if inner.calls != 2 {
		t.Fatalf("inner calls = %d, want 2", inner.calls)
	}
}

func TestCandidateText(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{
				{Text: "  hello"},
				{Text: " there  "},
			}},
		}},
	}
	if got := candidateText(resp); got != "hello there" {
		t.Fatalf("candidateText = %q", got)
	}
	if got := candidateText(nil); got != "" {
		t.Fatalf("nil resp = %q", got)
	}
	if got := candidateText(&genai.GenerateContentResponse{}); got != "" {
		t.Fatalf("empty resp = %q", got)
	}
}
