package form

import (
	"fmt"
	"math"
	"strings"

	"contextify/internal/media"
)

// NotesKey is the reserved data-map key for the free-text notes that
// every form carries alongside its descriptors.
const NotesKey = "additional_text"

// ExtraFilesKey identifies the fixed drop zone for files not bound to
// any descriptor.
const ExtraFilesKey = "extra_files"

// Submission is the raw user input against one descriptor list.
type Submission struct {
	Values         map[string]string             // descriptor id → entered value
	Files          map[string][]media.Attachment // descriptor id → bound files (file kind)
	AdditionalText string
	ExtraFiles     []media.Attachment
}

// Payload is the assembled outbound turn material: the data map, the
// files in their mandated order, and the synthesized message text.
type Payload struct {
	Data    map[string]any
	Files   []media.Attachment
	Message string
}

// Filled reports whether the descriptor has a non-empty current value:
// a bound file for file kinds, a non-blank entry otherwise.
func Filled(f FieldDescriptor, sub Submission) bool {
	if f.Kind == KindFile {
		return len(sub.Files[f.ID]) > 0
	}
	return strings.TrimSpace(sub.Values[f.ID]) != ""
}

// CompletionPercent is the cosmetic fill indicator:
// round(100 × filled / total). An empty descriptor list reads 0.
// Required fields are not enforced anywhere; this number gates nothing.
func CompletionPercent(fields []FieldDescriptor, sub Submission) int {
	if len(fields) == 0 {
		return 0
	}
	filled := 0
	for _, f := range fields {
		if Filled(f, sub) {
			filled++
		}
	}
	return int(math.Round(float64(filled) / float64(len(fields)) * 100))
}

// Compose assembles the submission into its outbound payload.
//
// Data maps every descriptor id to its current value (file descriptors
// contribute their file names) plus the notes under NotesKey. Files are
// the descriptor-bound attachments in descriptor order followed by the
// extra attachments in the order they were added. The message is a
// summary line, then one "id: value" line per answered descriptor, then
// an "Extra info" line when notes are present.
func Compose(fields []FieldDescriptor, sub Submission) Payload {
	data := make(map[string]any, len(fields)+1)
	files := make([]media.Attachment, 0, len(sub.ExtraFiles))
	type answer struct{ id, value string }
	answers := make([]answer, 0, len(fields))

	for _, f := range fields {
		if f.Kind == KindFile {
			bound := sub.Files[f.ID]
			names := make([]string, 0, len(bound))
			for _, att := range bound {
				names = append(names, att.Name)
			}
			files = append(files, bound...)
			value := strings.Join(names, ", ")
			data[f.ID] = value
			if len(bound) > 0 {
				answers = append(answers, answer{f.ID, value})
			}
			continue
		}
		value := strings.TrimSpace(sub.Values[f.ID])
		data[f.ID] = value
		if value != "" {
			answers = append(answers, answer{f.ID, value})
		}
	}

	notes := strings.TrimSpace(sub.AdditionalText)
	data[NotesKey] = notes
	files = append(files, sub.ExtraFiles...)

	var b strings.Builder
	fmt.Fprintf(&b, "Here is the requested information (%d attachment%s%s).",
		len(files), plural(len(files)), notesClause(notes))
	for _, a := range answers {
		fmt.Fprintf(&b, "\n%s: %s", a.id, a.value)
	}
	if notes != "" {
		fmt.Fprintf(&b, "\nExtra info: %s", notes)
	}

	return Payload{Data: data, Files: files, Message: b.String()}
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

func notesClause(notes string) string {
	if notes == "" {
		return ""
	}
	return ", plus extra notes"
}
