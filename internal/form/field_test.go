package form

import (
	"errors"
	"testing"
)

func TestKindValid(t *testing.T) {
	for _, k := range []Kind{KindText, KindNumber, KindDate, KindMultiline, KindFile, KindSelect} {
		if !k.Valid() {
			t.Fatalf("%q should be valid", k)
		}
	}
	for _, k := range []Kind{"", "checkbox", "TEXT", "textarea"} {
		if k.Valid() {
			t.Fatalf("%q should be invalid", k)
		}
	}
}

func TestValidateDescriptors(t *testing.T) {
	cases := []struct {
		name   string
		fields []FieldDescriptor
		ok     bool
	}{
		{"empty list", nil, true},
		{"unique ids", []FieldDescriptor{
			{ID: "a", Kind: KindText},
			{ID: "b", Kind: KindNumber},
		}, true},
		{"duplicate id", []FieldDescriptor{
			{ID: "a", Kind: KindText},
			{ID: "a", Kind: KindDate},
		}, false},
		{"blank id", []FieldDescriptor{{ID: "   ", Kind: KindText}}, false},
		{"unknown kind", []FieldDescriptor{{ID: "a", Kind: "checkbox"}}, false},
		{"required select without options", []FieldDescriptor{
			{ID: "a", Kind: KindSelect, Required: true},
		}, false},
		{"optional select without options", []FieldDescriptor{
			{ID: "a", Kind: KindSelect},
		}, true},
		{"required select with options", []FieldDescriptor{
			{ID: "a", Kind: KindSelect, Required: true, Options: []string{"x"}},
		}, true},
	}
	for _, tc := range cases {
		err := ValidateDescriptors(tc.fields)
		if tc.ok && err != nil {
			t.Fatalf("%s: unexpected error %v", tc.name, err)
		}
		if !tc.ok {
			if err == nil {
				t.Fatalf("%s: expected error", tc.name)
			}
			if !errors.Is(err, ErrDescriptor) {
				t.Fatalf("%s: err = %v, want ErrDescriptor", tc.name, err)
			}
		}
	}
}
