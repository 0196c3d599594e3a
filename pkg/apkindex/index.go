// Package apkindex downloads and parses Alpine APKINDEX files and
// exposes them as a dependency source.
//
// An APKINDEX.tar.gz archive is fetched once per run through [Client],
// optionally via a byte cache, and parsed into an [Index]: an explicit
// in-memory mapping owned by the caller. Lookups against the index are
// pure map reads; unknown packages resolve to an empty dependency list.
package apkindex

import (
	"bufio"
	"context"
	"strings"
)

// Index maps package names to their direct dependencies as declared in
// an APKINDEX. Version and operator qualifiers are already stripped.
//
// Index implements the dependency source contract: Lookup never fails
// and returns an empty list for unknown packages.
type Index struct {
	packages map[string][]string
}

// Lookup returns the direct dependencies of name.
func (ix *Index) Lookup(_ context.Context, name string) ([]string, error) {
	return ix.packages[name], nil
}

// Has reports whether name is present in the index.
func (ix *Index) Has(name string) bool {
	_, ok := ix.packages[name]
	return ok
}

// Len returns the number of indexed packages.
func (ix *Index) Len() int { return len(ix.packages) }

// Parse reads APKINDEX text into an Index.
//
// The format is a sequence of records separated by blank lines; within a
// record, "P:" carries the package name and "D:" its space-separated
// dependencies. Lines outside this shape are ignored. Conflict entries
// (leading "!") are dropped; other qualifiers are stripped with
// [StripQualifier].
func Parse(text string) *Index {
	ix := &Index{packages: make(map[string][]string)}

	var current string
	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "P:"):
			current = strings.TrimSpace(line[2:])
			if current != "" {
				ix.packages[current] = nil
			}
		case strings.HasPrefix(line, "D:") && current != "":
			for _, field := range strings.Fields(line[2:]) {
				if strings.HasPrefix(field, "!") {
					continue
				}
				if dep := StripQualifier(field); dep != "" {
					ix.packages[current] = append(ix.packages[current], dep)
				}
			}
		case line == "":
			current = ""
		}
	}

	return ix
}

// StripQualifier removes a trailing version or operator qualifier from
// a raw dependency entry: "libc.so.6=>1.2.3" becomes "libc.so.6",
// "musl>=1.2.4" becomes "musl". Names without qualifiers pass through.
func StripQualifier(raw string) string {
	if i := strings.IndexAny(raw, "=<>~"); i >= 0 {
		return raw[:i]
	}
	return raw
}
