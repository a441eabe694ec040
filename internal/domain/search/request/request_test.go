package request

import (
	"errors"
	"testing"

	"github.com/kailas-cloud/flossdex/internal/domain"
)

func TestNew_Valid(t *testing.T) {
	r, err := New(" 321 ", []string{"310", "B5200"}, 2, 12)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.TargetName() != "321" {
		t.Errorf("TargetName() = %q", r.TargetName())
	}
	if !r.Restricted() || len(r.AllowedNames()) != 2 {
		t.Errorf("AllowedNames() = %v", r.AllowedNames())
	}
	if r.MaxBlendSize() != 2 || r.ResultLimit() != 12 {
		t.Errorf("MaxBlendSize()=%d ResultLimit()=%d", r.MaxBlendSize(), r.ResultLimit())
	}
	if r.ID() != 0 {
		t.Errorf("ID() = %d, want 0 before assignment", r.ID())
	}
}

func TestNew_NilAllowedMeansWholePalette(t *testing.T) {
	r, err := New("321", nil, 1, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Restricted() {
		t.Error("Restricted() = true for nil allowed names")
	}
}

func TestNew_EmptyAllowedIsRestricted(t *testing.T) {
	r, err := New("321", []string{}, 1, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !r.Restricted() {
		t.Error("Restricted() = false for empty allowed names")
	}
}

func TestNew_InvalidParameters(t *testing.T) {
	tests := []struct {
		name     string
		target   string
		maxBlend int
		limit    int
	}{
		{"empty target", "", 1, 1},
		{"zero blend size", "321", 0, 1},
		{"negative blend size", "321", -2, 1},
		{"zero limit", "321", 1, 0},
		{"negative limit", "321", 1, -1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.target, nil, tc.maxBlend, tc.limit)
			if !errors.Is(err, domain.ErrInvalidParameter) {
				t.Errorf("expected ErrInvalidParameter, got %v", err)
			}
		})
	}
}

func TestNew_CopiesAllowed(t *testing.T) {
	allowed := []string{"310"}
	r, _ := New("321", allowed, 1, 1)
	allowed[0] = "changed"
	if r.AllowedNames()[0] != "310" {
		t.Error("request aliases caller slice")
	}
}

func TestWithID(t *testing.T) {
	r, _ := New("321", nil, 1, 1)
	tagged := r.WithID(42)
	if tagged.ID() != 42 {
		t.Errorf("ID() = %d, want 42", tagged.ID())
	}
	if r.ID() != 0 {
		t.Error("WithID mutated the original")
	}
}
