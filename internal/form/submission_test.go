package form

import (
	"strings"
	"testing"

	"contextify/internal/media"
)

func TestCompletionPercent(t *testing.T) {
	fields := []FieldDescriptor{
		{ID: "a", Kind: KindText},
		{ID: "b", Kind: KindText},
		{ID: "c", Kind: KindText},
	}
	sub := Submission{Values: map[string]string{"a": "yes"}}
	if got := CompletionPercent(fields, sub); got != 33 {
		t.Fatalf("1 of 3 filled = %d%%, want 33", got)
	}
	sub.Values["b"] = "also"
	if got := CompletionPercent(fields, sub); got != 67 {
		t.Fatalf("2 of 3 filled = %d%%, want 67", got)
	}
	if got := CompletionPercent(nil, Submission{}); got != 0 {
		t.Fatalf("empty form = %d%%, want 0", got)
	}
}

func TestCompletionPercentCountsBoundFiles(t *testing.T) {
	fields := []FieldDescriptor{
		{ID: "doc", Kind: KindFile},
		{ID: "name", Kind: KindText},
	}
	sub := Submission{
		Values: map[string]string{"name": "   "}, // blank does not count
		Files:  map[string][]media.Attachment{"doc": {{Name: "a.pdf"}}},
	}
	if got := CompletionPercent(fields, sub); got != 50 {
		t.Fatalf("got %d%%, want 50", got)
	}
}

func TestComposeOrderAndData(t *testing.T) {
	fields := []FieldDescriptor{
		{ID: "brief", Kind: KindFile, Label: "Project brief"},
		{ID: "destination", Kind: KindText, Label: "Destination"},
		{ID: "budget", Kind: KindNumber, Label: "Budget"},
	}
	sub := Submission{
		Values: map[string]string{"destination": "Tokyo"},
		Files: map[string][]media.Attachment{
			"brief": {{Name: "brief.pdf", MIMEType: "application/pdf"}},
		},
		AdditionalText: "prefer spring",
		ExtraFiles: []media.Attachment{
			{Name: "extra1.png", MIMEType: "image/png"},
			{Name: "extra2.png", MIMEType: "image/png"},
		},
	}
	p := Compose(fields, sub)

	// Descriptor-bound files first (descriptor order), then extras in
	// attachment order.
	wantFiles := []string{"brief.pdf", "extra1.png", "extra2.png"}
	if len(p.Files) != len(wantFiles) {
		t.Fatalf("files = %d, want %d", len(p.Files), len(wantFiles))
	}
	for i, name := range wantFiles {
		if p.Files[i].Name != name {
			t.Fatalf("files[%d] = %q, want %q", i, p.Files[i].Name, name)
		}
	}

	if p.Data["destination"] != "Tokyo" {
		t.Fatalf("data[destination] = %v", p.Data["destination"])
	}
	if p.Data["budget"] != "" {
		t.Fatalf("unanswered descriptor should map to empty value, got %v", p.Data["budget"])
	}
	if p.Data["brief"] != "brief.pdf" {
		t.Fatalf("data[brief] = %v", p.Data["brief"])
	}
	if p.Data[NotesKey] != "prefer spring" {
		t.Fatalf("data[%s] = %v", NotesKey, p.Data[NotesKey])
	}

	lines := strings.Split(p.Message, "\n")
	if len(lines) != 4 {
		t.Fatalf("message lines = %d, want 4:\n%s", len(lines), p.Message)
	}
	if !strings.Contains(lines[0], "3 attachments") || !strings.Contains(lines[0], "extra notes") {
		t.Fatalf("summary line = %q", lines[0])
	}
	if lines[1] != "brief: brief.pdf" || lines[2] != "destination: Tokyo" {
		t.Fatalf("answer lines = %q, %q", lines[1], lines[2])
	}
	if lines[3] != "Extra info: prefer spring" {
		t.Fatalf("notes line = %q", lines[3])
	}
}

func TestComposeWithoutNotesOmitsExtraLine(t *testing.T) {
	fields := []FieldDescriptor{{ID: "a", Kind: KindText}}
	p := Compose(fields, Submission{Values: map[string]string{"a": "v"}})
	if strings.Contains(p.Message, "Extra info") {
		t.Fatalf("message should omit notes line:\n%s", p.Message)
	}
	if !strings.Contains(p.Message, "0 attachments") {
		t.Fatalf("summary should count zero attachments:\n%s", p.Message)
	}
	if p.Data[NotesKey] != "" {
		t.Fatalf("notes key should still be present and empty, got %v", p.Data[NotesKey])
	}
}
