// Package transcribe turns dictated audio into text through the model
// and owns the per-conversation capture gate.
package transcribe

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	genai "google.golang.org/genai"
)

// ErrTranscribe marks a failed transcription call. The dictation is
// simply absent; the recording control must still return to idle.
var ErrTranscribe = errors.New("transcribe: transcription failed")

// instruction is fixed: verbatim text out, nothing else.
const instruction = "Transcribe the provided audio verbatim. Return plain text only, without markdown, headers, or explanations."

// Transcriber converts one audio payload (base64 text plus MIME type)
// into plain text. An empty transcript is a valid result, not an error.
type Transcriber interface {
	Transcribe(ctx context.Context, audioB64, mimeType string) (string, error)
}

// Gemini sends the audio inline in a single generation request.
type Gemini struct {
	cli   *genai.Client
	model string
}

func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTranscribe, err)
	}
	return &Gemini{cli: cli, model: model}, nil
}

func (g *Gemini) Transcribe(ctx context.Context, audioB64, mimeType string) (string, error) {
	if strings.TrimSpace(audioB64) == "" {
		return "", fmt.Errorf("%w: empty audio payload", ErrTranscribe)
	}
	raw, err := base64.StdEncoding.DecodeString(audioB64)
	if err != nil {
		return "", fmt.Errorf("%w: decode audio: %v", ErrTranscribe, err)
	}
	contents := []*genai.Content{{
		Role: "user",
		Parts: []*genai.Part{
			{Text: instruction},
			{InlineData: &genai.Blob{MIMEType: mimeType, Data: raw}},
		},
	}}
	resp, err := g.cli.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTranscribe, err)
	}
	return candidateText(resp), nil
}

// candidateText returns the first candidate's text, trimmed. A model
// that returned nothing yields "".
func candidateText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		if p == nil || p.Thought {
			continue
		}
		b.WriteString(p.Text)
	}
	return strings.TrimSpace(b.String())
}
