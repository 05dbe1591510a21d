package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"ngmigrate/internal/migrate"
)

// ManifestName is the file looked up when resolving project configuration.
const ManifestName = "ngmigrate.toml"

// Manifest is a loaded ngmigrate.toml plus where it was found.
type Manifest struct {
	Path   string // "" when running on defaults
	Root   string
	Config Config
}

// Config mirrors the [migrate] table. Every key is optional; absent keys
// fall back to the stock Angular configuration.
type Config struct {
	Migrate MigrateConfig `toml:"migrate"`
}

type MigrateConfig struct {
	Decorators   []string `toml:"decorators"`
	InjectFn     string   `toml:"inject_fn"`
	ImportFrom   string   `toml:"import_from"`
	AccessPolicy string   `toml:"access_policy"`
	Exclude      []string `toml:"exclude"`
}

// FindManifest walks up from startDir to locate ngmigrate.toml.
func FindManifest(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load resolves the manifest for startDir. A missing manifest is not an
// error: the returned Manifest then carries defaults and an empty Path.
func Load(startDir string) (*Manifest, error) {
	path, ok, err := FindManifest(startDir)
	if err != nil {
		return nil, err
	}
	if !ok {
		return &Manifest{}, nil
	}
	return LoadFile(path)
}

// LoadFile parses one manifest file.
func LoadFile(path string) (*Manifest, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if err := validate(path, meta, &cfg); err != nil {
		return nil, err
	}
	return &Manifest{
		Path:   path,
		Root:   filepath.Dir(path),
		Config: cfg,
	}, nil
}

func validate(path string, meta toml.MetaData, cfg *Config) error {
	if len(meta.Undecoded()) > 0 {
		keys := make([]string, 0, len(meta.Undecoded()))
		for _, k := range meta.Undecoded() {
			keys = append(keys, k.String())
		}
		return fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	switch cfg.Migrate.AccessPolicy {
	case "", "keyword", "hash":
	default:
		return fmt.Errorf("%s: [migrate].access_policy must be \"keyword\" or \"hash\", got %q",
			path, cfg.Migrate.AccessPolicy)
	}
	return nil
}

// Options materializes migrate.Options from the manifest, filling defaults
// for every unset key.
func (m *Manifest) Options() migrate.Options {
	opts := migrate.DefaultOptions()
	mc := m.Config.Migrate
	if len(mc.Decorators) > 0 {
		opts.Decorators = mc.Decorators
	}
	if mc.InjectFn != "" {
		opts.InjectFn = mc.InjectFn
	}
	if mc.ImportFrom != "" {
		opts.ImportFrom = mc.ImportFrom
	}
	if mc.AccessPolicy == "hash" {
		opts.Access = migrate.AccessHashName
	}
	return opts
}

// Exclude returns the configured exclude globs.
func (m *Manifest) Exclude() []string {
	return m.Config.Migrate.Exclude
}
