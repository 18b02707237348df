package form

import (
	"fmt"
	"strings"
)

// ControlType tags the concrete control a client should draw.
type ControlType string

const (
	ControlText       ControlType = "text"
	ControlNumber     ControlType = "number"
	ControlDate       ControlType = "date"
	ControlTextarea   ControlType = "textarea"
	ControlFile       ControlType = "file"
	ControlSelect     ControlType = "select"
	ControlNotes      ControlType = "notes"
	ControlExtraFiles ControlType = "extra_files"
)

type TextState struct {
	Placeholder string `json:"placeholder,omitempty"`
}

type NumberState struct {
	Placeholder string `json:"placeholder,omitempty"`
}

type TextareaState struct {
	Placeholder string `json:"placeholder,omitempty"`
	Rows        int    `json:"rows"`
}

type SelectState struct {
	Options []string `json:"options"`
}

// Control is one renderable input. Exactly one state pointer is set,
// matching Type.
type Control struct {
	ID        string         `json:"id"`
	Type      ControlType    `json:"type"`
	Label     string         `json:"label"`
	Required  bool           `json:"required,omitempty"`
	Rationale string         `json:"rationale,omitempty"`
	Text      *TextState     `json:"text,omitempty"`
	Number    *NumberState   `json:"number,omitempty"`
	Textarea  *TextareaState `json:"textarea,omitempty"`
	Select    *SelectState   `json:"select,omitempty"`
}

// Document is the renderable form: one control per descriptor in
// declaration order, then the fixed notes and extra-files section every
// form carries.
type Document struct {
	Controls []Control `json:"controls"`
}

// BuildControl maps one descriptor onto its control. The switch is
// exhaustive over Kind; ValidateDescriptors runs first, so an unknown
// kind here means the caller skipped validation.
func BuildControl(f FieldDescriptor) (Control, error) {
	c := Control{
		ID:        strings.TrimSpace(f.ID),
		Label:     strings.TrimSpace(f.Label),
		Required:  f.Required,
		Rationale: strings.TrimSpace(f.Rationale),
	}
	if c.Label == "" {
		c.Label = c.ID
	}
	switch f.Kind {
	case KindText:
		c.Type = ControlText
		c.Text = &TextState{Placeholder: f.Placeholder}
	case KindNumber:
		c.Type = ControlNumber
		c.Number = &NumberState{Placeholder: f.Placeholder}
	case KindDate:
		c.Type = ControlDate
	case KindMultiline:
		c.Type = ControlTextarea
		c.Textarea = &TextareaState{Placeholder: f.Placeholder, Rows: 4}
	case KindFile:
		c.Type = ControlFile
	case KindSelect:
		c.Type = ControlSelect
		c.Select = &SelectState{Options: append([]string(nil), f.Options...)}
	default:
		return Control{}, fmt.Errorf("%w: unknown type %q", ErrDescriptor, f.Kind)
	}
	return c, nil
}

// BuildDocument validates the descriptor list and renders it into a
// Document.
func BuildDocument(fields []FieldDescriptor) (Document, error) {
	if err := ValidateDescriptors(fields); err != nil {
		return Document{}, err
	}
	controls := make([]Control, 0, len(fields)+2)
	for _, f := range fields {
		c, err := BuildControl(f)
		if err != nil {
			return Document{}, err
		}
		controls = append(controls, c)
	}
	controls = append(controls,
		Control{
			ID:       NotesKey,
			Type:     ControlNotes,
			Label:    "Additional notes",
			Textarea: &TextareaState{Placeholder: "Anything else worth knowing", Rows: 3},
		},
		Control{
			ID:    ExtraFilesKey,
			Type:  ControlExtraFiles,
			Label: "Attach more files",
		},
	)
	return Document{Controls: controls}, nil
}
