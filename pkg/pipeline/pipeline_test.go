package pipeline

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/alpinetools/apkgraph/pkg/errors"
)

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"valid minimal", Options{Package: "curl", RepositoryURL: "https://example.org/main"}, false},
		{"missing package", Options{RepositoryURL: "https://example.org/main"}, true},
		{"missing repository", Options{Package: "curl"}, true},
		{"bad format", Options{Package: "a", RepositoryURL: "u", Format: "svg"}, true},
		{"svg without dot", Options{Package: "a", RepositoryURL: "u", RenderSVG: true}, true},
		{"bad cache backend", Options{Package: "a", RepositoryURL: "u", CacheBackend: "memcached"}, true},
		{"redis without addr", Options{Package: "a", RepositoryURL: "u", CacheBackend: "redis"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("err = %v, want INVALID_CONFIG code", err)
			}
		})
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{Package: "curl", RepositoryURL: "https://example.org/main"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}

	if opts.Format != FormatPlantUML {
		t.Errorf("Format = %q, want plantuml", opts.Format)
	}
	if opts.Output != "dependency_graph.puml" {
		t.Errorf("Output = %q", opts.Output)
	}
	if opts.Arch != "x86_64" {
		t.Errorf("Arch = %q, want x86_64", opts.Arch)
	}
	if opts.CacheBackend != CacheBackendFile {
		t.Errorf("CacheBackend = %q, want file", opts.CacheBackend)
	}

	dotOpts := Options{Package: "curl", RepositoryURL: "u", Format: FormatDOT}
	if err := dotOpts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if dotOpts.Output != "dependency_graph.dot" {
		t.Errorf("Output = %q, want dependency_graph.dot", dotOpts.Output)
	}
}

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func writeFixture(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test_graph.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestExecute_TestMode(t *testing.T) {
	fixture := writeFixture(t, "A:B,C\nB:D\nC:D\nD:\n")
	output := filepath.Join(t.TempDir(), "graph.puml")

	runner := NewRunner(nil, quietLogger())
	defer runner.Close()

	res, err := runner.Execute(context.Background(), Options{
		Package:       "A",
		RepositoryURL: "https://example.org/main",
		TestMode:      true,
		TestRepoPath:  fixture,
		Output:        output,
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if res.Graph.Len() != 4 {
		t.Errorf("graph has %d packages, want 4", res.Graph.Len())
	}
	if !slices.Equal(res.DirectDeps, []string{"B", "C"}) {
		t.Errorf("DirectDeps = %v, want [B C]", res.DirectDeps)
	}
	if len(res.ReverseDeps) != 0 {
		t.Errorf("ReverseDeps = %v, want none for the root", res.ReverseDeps)
	}
	if res.Levels["D"] != 2 {
		t.Errorf("level[D] = %d, want 2", res.Levels["D"])
	}

	written, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("output file: %v", err)
	}
	if !strings.Contains(string(written), "@startuml") {
		t.Errorf("output is not PlantUML markup:\n%s", written)
	}
}

func TestExecute_ReverseDepsOfRoot(t *testing.T) {
	// B depends back on A, so the root has a reverse dependency.
	fixture := writeFixture(t, "A:B\nB:A\n")

	runner := NewRunner(nil, quietLogger())
	defer runner.Close()

	res, err := runner.Execute(context.Background(), Options{
		Package:       "A",
		RepositoryURL: "u",
		TestMode:      true,
		TestRepoPath:  fixture,
		Output:        filepath.Join(t.TempDir(), "graph.puml"),
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !slices.Equal(res.ReverseDeps, []string{"B"}) {
		t.Errorf("ReverseDeps = %v, want [B]", res.ReverseDeps)
	}
}

func TestExecute_OutputWriteFailureIsFatal(t *testing.T) {
	fixture := writeFixture(t, "A:\n")

	runner := NewRunner(nil, quietLogger())
	defer runner.Close()

	_, err := runner.Execute(context.Background(), Options{
		Package:       "A",
		RepositoryURL: "u",
		TestMode:      true,
		TestRepoPath:  fixture,
		Output:        filepath.Join(t.TempDir(), "missing-dir", "graph.puml"),
	})
	if !errors.Is(err, errors.ErrCodeOutputWrite) {
		t.Errorf("err = %v, want OUTPUT_WRITE code", err)
	}
	if !errors.IsFatal(err) {
		t.Error("output write failure must be fatal")
	}
}

func TestExecute_UnreachableRepositoryDegrades(t *testing.T) {
	output := filepath.Join(t.TempDir(), "graph.puml")

	runner := NewRunner(nil, quietLogger())
	defer runner.Close()

	res, err := runner.Execute(context.Background(), Options{
		Package:       "X",
		RepositoryURL: "http://127.0.0.1:1", // nothing listens here
		Output:        output,
		CacheBackend:  CacheBackendNone,
	})
	if err != nil {
		t.Fatalf("network failure must not be fatal, got %v", err)
	}

	deps, ok := res.Graph.Deps("X")
	if !ok || len(deps) != 0 {
		t.Errorf("Deps(X) = (%v, %v), want empty entry", deps, ok)
	}
	if _, err := os.Stat(output); err != nil {
		t.Errorf("diagram should still be written: %v", err)
	}
}

func TestExecute_DOTFormat(t *testing.T) {
	fixture := writeFixture(t, "A:B\nB:\n")
	output := filepath.Join(t.TempDir(), "graph.dot")

	runner := NewRunner(nil, quietLogger())
	defer runner.Close()

	res, err := runner.Execute(context.Background(), Options{
		Package:       "A",
		RepositoryURL: "u",
		TestMode:      true,
		TestRepoPath:  fixture,
		Format:        FormatDOT,
		Output:        output,
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !strings.Contains(res.Markup, "digraph deps {") {
		t.Errorf("Markup is not DOT:\n%s", res.Markup)
	}
}
