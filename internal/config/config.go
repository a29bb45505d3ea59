// Package config loads settings for the todo command.
// Sources are applied in order, each overriding the previous one:
// defaults → config file (YAML or TOML) → environment → command-line flags.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/idilsaglam/todo/internal/store"
	"github.com/idilsaglam/todo/internal/ui"
)

// StorageConfig selects where the list is kept.
type StorageConfig struct {
	Backend string `yaml:"backend" toml:"backend"` // file | sqlite | memory
	Dir     string `yaml:"dir" toml:"dir"`         // empty = working directory
	Key     string `yaml:"key" toml:"key"`
}

type LogConfig struct {
	Level string `yaml:"level" toml:"level"`
	File  string `yaml:"file" toml:"file"` // empty = stderr (TUI: <dir>/todo.log)
}

type Config struct {
	Storage    StorageConfig `yaml:"storage" toml:"storage"`
	Log        LogConfig     `yaml:"log" toml:"log"`
	Theme      string        `yaml:"theme" toml:"theme"`
	StrictLoad bool          `yaml:"strict_load" toml:"strict_load"`

	sources []string
}

// Overrides carries flag values; nil fields were not set on the command line.
type Overrides struct {
	Dir      *string
	Backend  *string
	Key      *string
	LogLevel *string
	Theme    *string
	Strict   *bool
}

var ErrInvalid = errors.New("invalid config")

func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend: store.BackendFile,
			Key:     "todos",
		},
		Log:     LogConfig{Level: "info"},
		Theme:   "classic",
		sources: []string{"defaults"},
	}
}

// Sources lists what contributed to this config, lowest precedence first.
func (c *Config) Sources() []string { return c.sources }

// Load builds the effective config. path is the --config flag value; when
// empty, TODO_CONFIG and then the default locations are tried.
func Load(path string, o Overrides) (*Config, error) {
	cfg := Default()

	file, err := findConfigFile(path)
	if err != nil {
		return nil, err
	}
	if file != "" {
		if err := cfg.loadFile(file); err != nil {
			return nil, fmt.Errorf("load config %s: %w", file, err)
		}
	}

	cfg.applyEnv()
	cfg.Apply(o)
	cfg.Storage.Dir = expandHome(cfg.Storage.Dir)
	cfg.Log.File = expandHome(cfg.Log.File)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func findConfigFile(explicit string) (string, error) {
	if explicit == "" {
		explicit = os.Getenv("TODO_CONFIG")
	}
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file: %w", err)
		}
		return explicit, nil
	}
	for _, p := range candidatePaths() {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p, nil
		}
	}
	return "", nil
}

// candidatePaths: project-local files first, then the user config dir.
func candidatePaths() []string {
	var out []string
	if wd, err := os.Getwd(); err == nil {
		out = append(out,
			filepath.Join(wd, ".todo.yaml"),
			filepath.Join(wd, ".todo.yml"),
			filepath.Join(wd, ".todo.toml"),
		)
	}
	dir := ConfigDir()
	out = append(out,
		filepath.Join(dir, "config.yaml"),
		filepath.Join(dir, "config.yml"),
		filepath.Join(dir, "config.toml"),
	)
	return out
}

// ConfigDir resolves XDG_CONFIG_HOME/todo, falling back to ~/.config/todo.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "todo")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".config", "todo")
	}
	return filepath.Join(home, ".config", "todo")
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}

// loadFile decodes on top of the current values, so keys missing from the
// file keep their earlier value. Unknown keys are rejected.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("yaml: %w", err)
		}
	case ".toml":
		md, err := toml.Decode(string(data), c)
		if err != nil {
			return fmt.Errorf("toml: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return fmt.Errorf("toml: unknown key %q", undecoded[0].String())
		}
	default:
		return fmt.Errorf("unsupported config format %q (want .yaml, .yml or .toml)", filepath.Ext(path))
	}
	c.sources = append(c.sources, path)
	return nil
}

func (c *Config) applyEnv() {
	set := func(name string, dst *string) {
		if v, ok := os.LookupEnv(name); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
			c.sources = append(c.sources, "env:"+name)
		}
	}
	set("TODO_DIR", &c.Storage.Dir)
	set("TODO_BACKEND", &c.Storage.Backend)
	set("TODO_KEY", &c.Storage.Key)
	set("TODO_LOG_LEVEL", &c.Log.Level)
	set("TODO_LOG_FILE", &c.Log.File)
	set("TODO_THEME", &c.Theme)

	if v, ok := os.LookupEnv("TODO_STRICT"); ok {
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			c.StrictLoad = b
			c.sources = append(c.sources, "env:TODO_STRICT")
		}
	}
}

// Apply copies every flag that was set.
func (c *Config) Apply(o Overrides) {
	applied := false
	pick := func(src *string, dst *string) {
		if src != nil {
			*dst = *src
			applied = true
		}
	}
	pick(o.Dir, &c.Storage.Dir)
	pick(o.Backend, &c.Storage.Backend)
	pick(o.Key, &c.Storage.Key)
	pick(o.LogLevel, &c.Log.Level)
	pick(o.Theme, &c.Theme)
	if o.Strict != nil {
		c.StrictLoad = *o.Strict
		applied = true
	}
	if applied {
		c.sources = append(c.sources, "flags")
	}
}

func (c *Config) Validate() error {
	backends := []string{store.BackendFile, store.BackendSQLite, store.BackendMemory}
	if !slices.Contains(backends, c.Storage.Backend) {
		return fmt.Errorf("%w: storage.backend %q (want one of %s)", ErrInvalid, c.Storage.Backend, strings.Join(backends, ", "))
	}
	if err := store.ValidateKey(c.Storage.Key); err != nil {
		return fmt.Errorf("%w: storage.key: %v", ErrInvalid, err)
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level %q", ErrInvalid, c.Log.Level)
	}
	if !slices.Contains(ui.ThemeNames(), strings.ToLower(c.Theme)) {
		return fmt.Errorf("%w: theme %q (want one of %s)", ErrInvalid, c.Theme, strings.Join(ui.ThemeNames(), ", "))
	}
	return nil
}
