// Package pipeline runs the complete resolve → graph → layer → render
// flow for one configured root package.
//
// The pipeline enforces the error propagation policy: configuration and
// output-write failures abort the run, everything inside the traversal
// (network failures, missing packages, cycles) degrades to a partial,
// best-effort graph.
package pipeline

import (
	"time"

	"github.com/alpinetools/apkgraph/pkg/apkindex"
	"github.com/alpinetools/apkgraph/pkg/errors"
)

// Output formats.
const (
	FormatPlantUML = "plantuml"
	FormatDOT      = "dot"
)

// ValidFormats is the set of supported diagram formats.
var ValidFormats = map[string]bool{
	FormatPlantUML: true,
	FormatDOT:      true,
}

// Cache backends selectable in the configuration.
const (
	CacheBackendFile  = "file"
	CacheBackendRedis = "redis"
	CacheBackendNone  = "none"
)

// Options configures one pipeline run. It mirrors the configuration
// file one-to-one; the CLI fills it from the parsed TOML.
type Options struct {
	Package       string // root package name (required)
	Version       string // informational only, echoed in logs
	RepositoryURL string // APK repository base URL (required)
	Arch          string // repository architecture (default x86_64)

	Output    string // diagram output path
	Format    string // plantuml or dot
	RenderSVG bool   // rasterize DOT output via graphviz

	TestMode     bool   // read dependencies from a local fixture
	TestRepoPath string // fixture file path

	CacheBackend string        // file, redis, or none
	CacheDir     string        // file backend directory ("" = default)
	CacheTTL     time.Duration // index freshness window
	RedisAddr    string        // redis backend address
}

// ValidateAndSetDefaults checks required fields and fills defaults.
// Violations are configuration errors and therefore fatal.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Package == "" {
		return errors.New(errors.ErrCodeInvalidConfig,
			"missing required setting package_name; add it to the [settings] table")
	}
	if o.RepositoryURL == "" {
		return errors.New(errors.ErrCodeInvalidConfig,
			"missing required setting repository_url; add it to the [settings] table")
	}

	if o.Format == "" {
		o.Format = FormatPlantUML
	}
	if !ValidFormats[o.Format] {
		return errors.New(errors.ErrCodeInvalidConfig,
			"invalid format %q (supported: plantuml, dot)", o.Format)
	}
	if o.RenderSVG && o.Format != FormatDOT {
		return errors.New(errors.ErrCodeInvalidConfig,
			"render_svg requires format = \"dot\"")
	}

	if o.Output == "" {
		if o.Format == FormatDOT {
			o.Output = "dependency_graph.dot"
		} else {
			o.Output = "dependency_graph.puml"
		}
	}
	if o.Arch == "" {
		o.Arch = apkindex.DefaultArch
	}
	if o.TestRepoPath == "" {
		o.TestRepoPath = "test_graph.txt"
	}

	switch o.CacheBackend {
	case "":
		o.CacheBackend = CacheBackendFile
	case CacheBackendFile, CacheBackendRedis, CacheBackendNone:
	default:
		return errors.New(errors.ErrCodeInvalidConfig,
			"invalid cache backend %q (supported: file, redis, none)", o.CacheBackend)
	}
	if o.CacheBackend == CacheBackendRedis && o.RedisAddr == "" {
		return errors.New(errors.ErrCodeInvalidConfig,
			"cache backend redis requires redis_addr")
	}
	if o.CacheTTL <= 0 {
		o.CacheTTL = apkindex.DefaultCacheTTL
	}

	return nil
}
