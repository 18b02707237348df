package llm

import (
	"context"
	"fmt"
	"strings"

	genai "google.golang.org/genai"

	"contextify/internal/form"
	"contextify/internal/reply"
)

const systemPrompt = `You are a context-gathering assistant. Collect everything
needed to give the user a thorough, well-grounded answer, then deliver it.

Reply on every turn with a single JSON object matching the response schema:
- If you still need information, set "status" to "COLLECTING", explain what is
  missing in "message", and declare each missing input as an entry in "fields".
  Ask only for what you genuinely need.
- Once you have enough, set "status" to "COMPLETE", summarize your reasoning in
  "analysis", put the deliverable itself in "final_output", and list the
  sources that mattered in "key_references".

Every field needs a stable snake_case "id", a short "label", and a "type" from
the allowed set. Use web search to ground factual claims, and fetch any URL the
user provides before relying on it.`

// replySchema constrains the model's output to the reply contract the
// parser enforces. Enum values are tied to the Go constants so the two
// sides cannot drift.
var replySchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"status": {
			Type: genai.TypeString,
			Enum: []string{string(reply.StatusCollecting), string(reply.StatusComplete)},
		},
		"message": {
			Type:        genai.TypeString,
			Description: "Conversational text shown to the user.",
		},
		"fields": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"id":    {Type: genai.TypeString},
					"label": {Type: genai.TypeString},
					"type": {
						Type: genai.TypeString,
						Enum: []string{
							string(form.KindText), string(form.KindNumber),
							string(form.KindDate), string(form.KindMultiline),
							string(form.KindFile), string(form.KindSelect),
						},
					},
					"placeholder": {Type: genai.TypeString},
					"rationale":   {Type: genai.TypeString},
					"required":    {Type: genai.TypeBoolean},
					"options":     {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
				},
				Required: []string{"id", "label", "type"},
			},
		},
		"analysis":       {Type: genai.TypeString},
		"final_output":   {Type: genai.TypeString},
		"key_references": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
	},
	Required: []string{"status", "message"},
}

// GeminiClient is a thin wrapper around the official genai client. It
// only covers the call itself; rate limiting and logging are applied
// via Middleware.
type GeminiClient struct {
	cli *genai.Client
}

func NewGeminiClient(ctx context.Context, apiKey string) (*GeminiClient, error) {
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInference, err)
	}
	return &GeminiClient{cli: cli}, nil
}

func (g *GeminiClient) Name() string { return "gemini" }
func (g *GeminiClient) Close() error { return nil }

// Generate issues exactly one non-streaming call: history plus the new
// turn, the fixed system prompt and reply schema, web search always on,
// URL fetching only when the input text mentions a URL, and the
// reasoning tier derived from the model identifier.
func (g *GeminiClient) Generate(ctx context.Context, req Request) (*Result, error) {
	contents, err := buildContents(req)
	if err != nil {
		return nil, err
	}

	tools := []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}}
	if NeedsURLContext(req.Text) {
		tools = append(tools, &genai.Tool{URLContext: &genai.URLContext{}})
	}

	cfg := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: systemPrompt}}},
		Temperature:       genai.Ptr(float32(1)),
		ResponseMIMEType:  "application/json",
		ResponseSchema:    replySchema,
		Tools:             tools,
		ThinkingConfig:    &genai.ThinkingConfig{ThinkingLevel: thinkingLevelFor(req.Model)},
	}

	resp, err := g.cli.Models.GenerateContent(ctx, req.Model, contents, cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInference, err)
	}
	return extractResult(resp), nil
}

// thinkingLevelFor maps the model identifier onto the two-valued
// reasoning tier: low for the high-throughput flash family, high for
// everything else.
func thinkingLevelFor(model string) genai.ThinkingLevel {
	if strings.Contains(strings.ToLower(model), "flash") {
		return genai.ThinkingLevelLow
	}
	return genai.ThinkingLevelHigh
}

// buildContents renders history plus the new turn. Text first, then one
// inline part per attachment in input order. The history slice itself
// is never touched.
func buildContents(req Request) ([]*genai.Content, error) {
	contents := make([]*genai.Content, 0, len(req.History)+1)
	for _, t := range req.History {
		c, err := turnContent(t)
		if err != nil {
			return nil, err
		}
		contents = append(contents, c)
	}
	c, err := turnContent(Turn{Role: RoleUser, Text: req.Text, Attachments: req.Attachments})
	if err != nil {
		return nil, err
	}
	return append(contents, c), nil
}

func turnContent(t Turn) (*genai.Content, error) {
	parts := make([]*genai.Part, 0, 1+len(t.Attachments))
	if t.Text != "" {
		parts = append(parts, &genai.Part{Text: t.Text})
	}
	for _, att := range t.Attachments {
		raw, err := att.Decode()
		if err != nil {
			return nil, fmt.Errorf("%w: attachment %q: %v", ErrInference, att.Name, err)
		}
		parts = append(parts, &genai.Part{InlineData: &genai.Blob{MIMEType: att.MIMEType, Data: raw}})
	}
	return &genai.Content{Role: string(t.Role), Parts: parts}, nil
}

// extractResult pulls the reply text and grounding metadata out of the
// first candidate. An empty candidate list yields an empty Result; the
// parser downstream fails it closed.
func extractResult(resp *genai.GenerateContentResponse) *Result {
	res := &Result{}
	if resp == nil || len(resp.Candidates) == 0 {
		return res
	}
	cand := resp.Candidates[0]
	if cand.Content != nil {
		var b strings.Builder
		for _, p := range cand.Content.Parts {
			if p == nil || p.Thought {
				continue
			}
			b.WriteString(p.Text)
		}
		res.Text = b.String()
	}
	if gm := cand.GroundingMetadata; gm != nil {
		for _, ch := range gm.GroundingChunks {
			if ch == nil || ch.Web == nil {
				continue
			}
			res.Citations = append(res.Citations, reply.Citation{URI: ch.Web.URI, Title: ch.Web.Title})
		}
	}
	if um := cand.URLContextMetadata; um != nil {
		for _, m := range um.URLMetadata {
			if m == nil {
				continue
			}
			res.Retrieved = append(res.Retrieved, m.RetrievedURL)
		}
	}
	return res
}
