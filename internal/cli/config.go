package cli

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/alpinetools/apkgraph/pkg/errors"
	"github.com/alpinetools/apkgraph/pkg/pipeline"
)

// Config mirrors the TOML configuration file.
type Config struct {
	Settings Settings    `toml:"settings"`
	Cache    CacheConfig `toml:"cache"`
}

// Settings is the [settings] table driving one run.
type Settings struct {
	PackageName   string `toml:"package_name"`   // required
	Version       string `toml:"version"`        // informational
	RepositoryURL string `toml:"repository_url"` // required
	Arch          string `toml:"arch"`           // default x86_64
	Output        string `toml:"output"`         // default dependency_graph.puml
	Format        string `toml:"format"`         // plantuml (default) or dot
	RenderSVG     bool   `toml:"render_svg"`     // dot only
	TestMode      bool   `toml:"test_mode"`
	TestRepoPath  string `toml:"test_repo_path"` // default test_graph.txt
}

// CacheConfig is the optional [cache] table.
type CacheConfig struct {
	Backend   string `toml:"backend"` // file (default), redis, none
	Dir       string `toml:"dir"`
	TTL       string `toml:"ttl"` // Go duration, e.g. "24h"
	RedisAddr string `toml:"redis_addr"`
}

// LoadConfig reads and parses the configuration file. All failures here
// are fatal configuration errors with remediation text; field-level
// validation happens in pipeline.Options.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.New(errors.ErrCodeConfigNotFound,
			"configuration file %s not found; create it with a [settings] table containing package_name and repository_url", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfigNotFound, err, "read configuration %s", path)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err,
			"configuration %s is not valid TOML", path)
	}
	return &cfg, nil
}

// Options converts the parsed configuration to pipeline options.
func (c *Config) Options() (pipeline.Options, error) {
	var ttl time.Duration
	if c.Cache.TTL != "" {
		var err error
		if ttl, err = time.ParseDuration(c.Cache.TTL); err != nil {
			return pipeline.Options{}, errors.Wrap(errors.ErrCodeInvalidConfig, err,
				"cache ttl %q is not a duration (try \"24h\")", c.Cache.TTL)
		}
	}

	return pipeline.Options{
		Package:       c.Settings.PackageName,
		Version:       c.Settings.Version,
		RepositoryURL: c.Settings.RepositoryURL,
		Arch:          c.Settings.Arch,
		Output:        c.Settings.Output,
		Format:        c.Settings.Format,
		RenderSVG:     c.Settings.RenderSVG,
		TestMode:      c.Settings.TestMode,
		TestRepoPath:  c.Settings.TestRepoPath,
		CacheBackend:  c.Cache.Backend,
		CacheDir:      c.Cache.Dir,
		CacheTTL:      ttl,
		RedisAddr:     c.Cache.RedisAddr,
	}, nil
}
