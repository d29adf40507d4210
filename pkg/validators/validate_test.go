package validators

import (
	"strings"
	"testing"
	"unicode/utf8"

	pkgerrors "github.com/angelmondragon/novastore/pkg/errors"
	"github.com/shopspring/decimal"
)

type productInput struct {
	Title string          `json:"title" validate:"required"`
	Price decimal.Decimal `json:"price" validate:"gt=0"`
	Role  string          `json:"role" validate:"omitempty,oneof=buyer seller"`
}

func TestStructAcceptsValidInput(t *testing.T) {
	in := productInput{Title: "Lamp", Price: decimal.RequireFromString("9.99"), Role: "seller"}
	if err := Struct(in); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestStructReportsFieldsByJSONName(t *testing.T) {
	err := Struct(productInput{Price: decimal.Zero, Role: "admin"})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation code, got %v", pkgerrors.CodeOf(err))
	}
	details, ok := pkgerrors.As(err).Details().(map[string]string)
	if !ok {
		t.Fatalf("expected details map, got %T", pkgerrors.As(err).Details())
	}
	want := map[string]string{
		"title": "is required",
		"price": "must be greater than 0",
		"role":  "must be one of [buyer seller]",
	}
	for field, msg := range want {
		if details[field] != msg {
			t.Fatalf("details[%q] = %q, want %q", field, details[field], msg)
		}
	}
}

func TestStructRejectsNegativePrice(t *testing.T) {
	if err := Struct(productInput{Title: "x", Price: decimal.NewFromInt(-5)}); err == nil {
		t.Fatal("expected error for negative price")
	}
}

func TestSanitizeString(t *testing.T) {
	if got := SanitizeString("  hello  "); got != "hello" {
		t.Fatalf("got %q", got)
	}
	long := strings.Repeat("a", 199) + "ñ"
	got := SanitizeString(" " + long + "\n")
	if got != long {
		t.Fatalf("expected %d bytes unchanged, got %d", len(long), len(got))
	}
	if !utf8.ValidString(got) {
		t.Fatalf("result is not valid UTF-8: %q", got)
	}
}
