package pipeline

import (
	"context"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/alpinetools/apkgraph/pkg/apkindex"
	"github.com/alpinetools/apkgraph/pkg/cache"
	"github.com/alpinetools/apkgraph/pkg/depgraph"
	"github.com/alpinetools/apkgraph/pkg/errors"
	"github.com/alpinetools/apkgraph/pkg/render/nodelink"
	"github.com/alpinetools/apkgraph/pkg/render/plantuml"
	"github.com/alpinetools/apkgraph/pkg/source"
)

// Result holds everything a pipeline run produced.
type Result struct {
	Graph       *depgraph.Graph
	Levels      map[string]int
	DirectDeps  []string // direct dependencies of the root package
	ReverseDeps []string // packages in the graph depending on the root
	Markup      string   // diagram markup as written to OutputPath
	OutputPath  string
	SVGPath     string // set when RenderSVG produced an artifact
}

// Runner executes pipeline runs against a shared byte cache.
// Each run gets a short random ID stamped on its log lines.
type Runner struct {
	cache  cache.Cache
	logger *log.Logger
}

// NewRunner creates a Runner. A nil logger falls back to log.Default();
// a nil cache disables index caching.
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{cache: c, logger: logger}
}

// OpenCache builds the cache backend selected by opts. The caller owns
// the returned cache and should Close it after the run.
func OpenCache(ctx context.Context, opts Options) (cache.Cache, error) {
	switch opts.CacheBackend {
	case CacheBackendRedis:
		return cache.NewRedisCache(ctx, opts.RedisAddr)
	case CacheBackendNone:
		return cache.NewNullCache(), nil
	default:
		return cache.NewFileCache(opts.CacheDir)
	}
}

// Close releases the runner's cache backend.
func (r *Runner) Close() error { return r.cache.Close() }

// Execute runs the full pipeline: set up the dependency source, build
// the graph, compute reverse dependencies and levels, render the
// diagram, and write it to disk.
//
// Only two classes of error escape: invalid options (configuration) and
// failures writing the output artifact. Network and index problems are
// logged and degrade to an empty dependency source, so a partial graph
// and diagram are still produced.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	logger := r.logger.With("run", shortRunID())
	logger.Debug("resolving", "package", opts.Package, "version", opts.Version, "repository", opts.RepositoryURL)

	src := r.newSource(ctx, opts, logger)

	direct, err := src.Lookup(ctx, opts.Package)
	if err != nil {
		logger.Warn("direct dependency lookup failed", "package", opts.Package, "err", err)
		direct = nil
	}

	g := depgraph.Build(ctx, opts.Package, src, depgraph.Options{
		Logger: func(format string, args ...any) { logger.Warnf(format, args...) },
	})
	logger.Debug("graph built", "packages", g.Len())

	res := &Result{
		Graph:       g,
		Levels:      depgraph.Levels(g),
		DirectDeps:  direct,
		ReverseDeps: depgraph.ReverseDeps(g, opts.Package),
		OutputPath:  opts.Output,
	}

	switch opts.Format {
	case FormatDOT:
		res.Markup = nodelink.ToDOT(g, res.Levels)
	default:
		res.Markup = plantuml.Render(g, res.Levels)
	}

	if err := os.WriteFile(opts.Output, []byte(res.Markup), 0o644); err != nil {
		return nil, errors.Wrap(errors.ErrCodeOutputWrite, err, "write diagram %s", opts.Output)
	}
	logger.Info("diagram written", "path", opts.Output, "format", opts.Format)

	if opts.RenderSVG {
		r.renderSVG(ctx, res, logger)
	}

	return res, nil
}

// newSource picks the dependency source for the run. In test mode it is
// the local fixture; otherwise the repository index is loaded, and on
// failure the run degrades to an empty source rather than aborting.
func (r *Runner) newSource(ctx context.Context, opts Options, logger *log.Logger) depgraph.Source {
	if opts.TestMode {
		logger.Info("test mode, reading fixture", "path", opts.TestRepoPath)
		fixture := source.NewFixture(opts.TestRepoPath)
		fixture.Logger = func(format string, args ...any) { logger.Warnf(format, args...) }
		return fixture
	}

	client := apkindex.NewClient(r.cache, opts.CacheTTL)
	ix, err := client.Load(ctx, opts.RepositoryURL, opts.Arch)
	if err != nil {
		logger.Warn("APKINDEX unavailable, continuing with empty index", "err", err)
		return source.Static{}
	}
	logger.Debug("APKINDEX loaded", "packages", ix.Len())
	return ix
}

// renderSVG rasterizes DOT markup next to the output file. Failures are
// logged, not fatal: the markup artifact already exists.
func (r *Runner) renderSVG(ctx context.Context, res *Result, logger *log.Logger) {
	svg, err := nodelink.RenderSVG(ctx, res.Markup)
	if err != nil {
		logger.Warn("SVG rasterization failed", "err", err)
		return
	}

	path := strings.TrimSuffix(res.OutputPath, ".dot") + ".svg"
	if err := os.WriteFile(path, svg, 0o644); err != nil {
		logger.Warn("SVG write failed", "path", path, "err", err)
		return
	}
	res.SVGPath = path
	logger.Info("SVG written", "path", path)
}

func shortRunID() string {
	return uuid.NewString()[:8]
}
