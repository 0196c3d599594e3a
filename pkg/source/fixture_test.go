package source

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func writeFixture(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test_graph.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFixture_Lookup(t *testing.T) {
	path := writeFixture(t, "A:B,C\nB:D\nC:D\nD:\n")
	f := NewFixture(path)
	ctx := context.Background()

	tests := []struct {
		pkg  string
		want []string
	}{
		{"A", []string{"B", "C"}},
		{"B", []string{"D"}},
		{"D", nil},
		{"unknown", nil},
	}
	for _, tt := range tests {
		got, err := f.Lookup(ctx, tt.pkg)
		if err != nil {
			t.Fatalf("Lookup(%q): %v", tt.pkg, err)
		}
		if !slices.Equal(got, tt.want) {
			t.Errorf("Lookup(%q) = %v, want %v", tt.pkg, got, tt.want)
		}
	}
}

func TestFixture_SkipsMalformedLines(t *testing.T) {
	path := writeFixture(t, "\nnot a record\nA: B , C \n")
	f := NewFixture(path)

	got, err := f.Lookup(context.Background(), "A")
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(got, []string{"B", "C"}) {
		t.Errorf("Lookup(A) = %v, want [B C] with whitespace trimmed", got)
	}
}

func TestFixture_MissingFile(t *testing.T) {
	var logged bool
	f := NewFixture(filepath.Join(t.TempDir(), "nope.txt"))
	f.Logger = func(string, ...any) { logged = true }

	got, err := f.Lookup(context.Background(), "A")
	if err != nil {
		t.Errorf("missing fixture must not error, got %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Lookup = %v, want empty", got)
	}
	if !logged {
		t.Error("expected a diagnostic for the missing file")
	}
}

func TestStatic_Lookup(t *testing.T) {
	s := Static{"A": {"B"}}

	if got, _ := s.Lookup(context.Background(), "A"); !slices.Equal(got, []string{"B"}) {
		t.Errorf("Lookup(A) = %v, want [B]", got)
	}
	if got, _ := s.Lookup(context.Background(), "missing"); got != nil {
		t.Errorf("Lookup(missing) = %v, want nil", got)
	}
}
