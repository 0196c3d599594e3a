package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alpinetools/apkgraph/pkg/pipeline"
)

// previewLines is how many lines of the generated markup are echoed.
const previewLines = 10

// run executes one full pipeline pass for the given configuration file.
// Configuration and output-write errors are returned (fatal); anything
// inside the traversal already degraded to partial results by the time
// it reaches us.
func run(ctx context.Context, configPath string) error {
	logger := loggerFromContext(ctx)

	cfg, err := LoadConfig(configPath)
	if err != nil {
		return err
	}
	printConfig(configPath, cfg)

	opts, err := cfg.Options()
	if err != nil {
		return err
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	c, err := pipeline.OpenCache(ctx, opts)
	if err != nil {
		// A broken cache backend degrades to no caching; only the
		// configuration itself is allowed to abort the run.
		logger.Warn("cache backend unavailable, caching disabled", "err", err)
		c = nil
	}

	runner := pipeline.NewRunner(c, logger)
	defer runner.Close()

	prog := newProgress(logger)
	spin := startSpinner(ctx, fmt.Sprintf("Resolving %s…", opts.Package))
	res, err := runner.Execute(ctx, opts)
	spin.Stop()
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Resolved %d packages", res.Graph.Len()))

	printResult(opts, res)
	return nil
}

func printConfig(path string, cfg *Config) {
	fmt.Println(styleTitle.Render("Configuration ") + styleDim.Render("("+path+")"))
	fmt.Printf("  package_name   = %s\n", stylePackage.Render(cfg.Settings.PackageName))
	fmt.Printf("  repository_url = %s\n", cfg.Settings.RepositoryURL)
	if cfg.Settings.TestMode {
		fmt.Printf("  test_mode      = true %s\n", styleDim.Render("(fixture: "+cfg.Settings.TestRepoPath+")"))
	}
	fmt.Println()
}

func printResult(opts pipeline.Options, res *pipeline.Result) {
	fmt.Println(styleTitle.Render("Direct dependencies"))
	if len(res.DirectDeps) == 0 {
		fmt.Println(styleDim.Render("  (none)"))
	}
	for _, dep := range res.DirectDeps {
		fmt.Printf("  - %s\n", stylePackage.Render(dep))
	}

	fmt.Println()
	fmt.Println(styleTitle.Render("Dependency graph"))
	for _, name := range res.Graph.Names() {
		deps, _ := res.Graph.Deps(name)
		if len(deps) == 0 {
			fmt.Printf("  %s %s\n", name, styleDim.Render("(no dependencies)"))
			continue
		}
		fmt.Printf("  %s -> %s\n", name, strings.Join(deps, ", "))
	}

	fmt.Println()
	fmt.Println(styleTitle.Render("Reverse dependencies for " + opts.Package))
	if len(res.ReverseDeps) == 0 {
		fmt.Println(styleDim.Render("  (nothing depends on it)"))
	}
	for _, name := range res.ReverseDeps {
		fmt.Printf("  - %s\n", stylePackage.Render(name))
	}

	fmt.Println()
	fmt.Println(styleTitle.Render("Diagram preview"))
	for i, line := range strings.Split(res.Markup, "\n") {
		if i >= previewLines {
			fmt.Println(styleDim.Render("  …"))
			break
		}
		fmt.Printf("  %s\n", styleDim.Render(line))
	}

	fmt.Println()
	fmt.Println(styleSuccess.Render("✓ Diagram written to " + res.OutputPath))
	if res.SVGPath != "" {
		fmt.Println(styleSuccess.Render("✓ SVG written to " + res.SVGPath))
	}
	if partial(res) {
		fmt.Println(styleWarning.Render("! Graph may be partial, see warnings above"))
	}
}

// partial reports whether the run obviously degraded: a lone root with
// no dependencies usually means the index was unreachable or the
// package unknown.
func partial(res *pipeline.Result) bool {
	if res.Graph.Len() != 1 {
		return false
	}
	root, _ := res.Graph.Root()
	deps, _ := res.Graph.Deps(root)
	return len(deps) == 0
}
