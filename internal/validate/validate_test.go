package validate

import (
	"errors"
	"strings"
	"testing"
)

type box struct {
	Width  float64 `json:"width" validate:"gt=0"`
	Height float64 `json:"height,omitempty" validate:"gt=0"`
	Name   string  `validate:"required"`
	Skip   int     `json:"-" validate:"gte=0"`
}

func TestStruct_Valid(t *testing.T) {
	if err := Struct(box{Width: 1, Height: 1, Name: "a"}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestStruct_FieldNames(t *testing.T) {
	err := Struct(box{Skip: -1})

	var verr *Error
	if !errors.As(err, &verr) {
		t.Fatalf("expected *Error, got %T: %v", err, err)
	}

	want := []string{"width", "height", "Name", "Skip"}
	if len(verr.Fields) != len(want) {
		t.Fatalf("got %d field errors, want %d: %v", len(verr.Fields), len(want), verr)
	}
	for i, f := range want {
		if verr.Fields[i].Field != f {
			t.Errorf("field %d: got %s, want %s", i, verr.Fields[i].Field, f)
		}
		if !strings.Contains(verr.Fields[i].Message, f) {
			t.Errorf("message %q does not name %s", verr.Fields[i].Message, f)
		}
	}
}

func TestStruct_TranslatedMessage(t *testing.T) {
	err := Struct(box{Width: 0, Height: 1, Name: "a"})
	if err == nil {
		t.Fatal("expected an error")
	}
	if got := err.Error(); got != "width must be greater than 0" {
		t.Errorf("message: got %q", got)
	}
}

func TestStruct_NotAStruct(t *testing.T) {
	err := Struct(42)
	if err == nil {
		t.Fatal("expected an error for a non-struct")
	}
	var verr *Error
	if errors.As(err, &verr) {
		t.Error("non-struct input should not produce field errors")
	}
}

func TestGet_Singleton(t *testing.T) {
	if Get() != Get() {
		t.Error("Get should return the same service")
	}
}
