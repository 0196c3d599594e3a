package source

import (
	"bufio"
	"context"
	"os"
	"strings"
)

// Fixture reads dependencies from a local fixture file, used when the
// configuration enables test mode. The format is one package per line:
//
//	A:B,C
//	B:D
//	D:
//
// Blank lines and lines without a colon are skipped. A missing file or
// unknown package resolves to an empty dependency list; the file is
// re-read per lookup so fixtures can be edited between runs.
type Fixture struct {
	Path string

	// Logger receives diagnostics for unreadable files. Optional.
	Logger func(format string, args ...any)
}

// NewFixture creates a fixture source for the given file path.
func NewFixture(path string) *Fixture {
	return &Fixture{Path: path}
}

// Lookup scans the fixture file for name and returns its dependencies.
func (f *Fixture) Lookup(_ context.Context, name string) ([]string, error) {
	file, err := os.Open(f.Path)
	if err != nil {
		f.logf("fixture file %s not readable: %v", f.Path, err)
		return nil, nil
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		pkg, rest, ok := strings.Cut(line, ":")
		if !ok || strings.TrimSpace(pkg) != name {
			continue
		}

		var deps []string
		for _, d := range strings.Split(rest, ",") {
			if d = strings.TrimSpace(d); d != "" {
				deps = append(deps, d)
			}
		}
		return deps, nil
	}
	if err := scanner.Err(); err != nil {
		f.logf("fixture file %s: %v", f.Path, err)
	}
	return nil, nil
}

func (f *Fixture) logf(format string, args ...any) {
	if f.Logger != nil {
		f.Logger(format, args...)
	}
}
