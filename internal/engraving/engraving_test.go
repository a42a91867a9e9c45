package engraving

import (
	"errors"
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{name: "empty input is valid", input: "", want: ""},
		{name: "plain label", input: "Bedroom", want: "Bedroom"},
		{name: "leading and trailing space trimmed", input: "  Living Room  ", want: "Living Room"},
		{name: "internal whitespace collapsed", input: "Guest\t\n Room", want: "Guest Room"},
		{name: "digits and punctuation", input: "Flat 4B!", want: "Flat 4B!"},
		{name: "exactly at the limit", input: strings.Repeat("A", 14), want: strings.Repeat("A", 14)},
		{name: "over the limit", input: strings.Repeat("A", 15), wantErr: ErrTooLong},
		{name: "whitespace only collapses to nothing", input: "   \t  ", wantErr: ErrTooShort},
		{name: "control character rejected", input: "a\x07b", wantErr: ErrInvalidCharacters},
		{name: "bangla with vowel signs", input: "শোবার ঘর", want: "শোবার ঘর"},
		{name: "emoji counts one slot per cluster", input: "💡💡💡💡💡💡💡💡💡💡💡💡💡💡", want: "💡💡💡💡💡💡💡💡💡💡💡💡💡💡"},
		{name: "composed family emoji", input: "👨‍👩‍👧", want: "👨‍👩‍👧"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Validate(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestValidateNormalizesToNFC(t *testing.T) {
	// e followed by combining acute accent composes to a single code point
	decomposed := "Café"
	got, err := Validate(decomposed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Café" {
		t.Fatalf("expected NFC form %q, got %q", "Café", got)
	}
}

func TestValidateIsIdempotent(t *testing.T) {
	inputs := []string{"Bedroom", "  Living  Room ", "Café", "শোবার ঘর"}
	for _, in := range inputs {
		once, err := Validate(in)
		if err != nil {
			t.Fatalf("first pass %q: %v", in, err)
		}
		twice, err := Validate(once)
		if err != nil {
			t.Fatalf("second pass %q: %v", once, err)
		}
		if once != twice {
			t.Fatalf("canonical form not stable: %q then %q", once, twice)
		}
	}
}
