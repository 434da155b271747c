package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// GameFile is the optional override file read by Loader.LoadGame
const GameFile = "game.yaml"

// Defaults returns the embedded default configuration
func Defaults() (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse embedded defaults: %w", err)
	}
	return cfg, nil
}

// Load reads a YAML file on top of the embedded defaults.
// Only keys present in the file overwrite defaults. An empty path yields defaults.
func Load(path string) (*Config, error) {
	cfg, err := Defaults()
	if err != nil {
		return nil, err
	}
	if path == "" {
		return cfg, cfg.Validate()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Loader loads configuration files from an fs.FS
type Loader struct {
	fsys     fs.FS
	basePath string
}

// NewLoader creates a new config loader from filesystem path
func NewLoader(basePath string) *Loader {
	return &Loader{
		fsys:     os.DirFS(basePath),
		basePath: basePath,
	}
}

// NewFSLoader creates a new config loader from fs.FS
func NewFSLoader(fsys fs.FS, basePath string) *Loader {
	return &Loader{
		fsys:     fsys,
		basePath: basePath,
	}
}

// LoadGame returns the defaults overlaid with game.yaml when it exists
func (l *Loader) LoadGame() (*Config, error) {
	cfg, err := Defaults()
	if err != nil {
		return nil, err
	}

	data, err := fs.ReadFile(l.fsys, GameFile)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return cfg, nil
	case err != nil:
		return nil, fmt.Errorf("failed to read %s: %w", GameFile, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", GameFile, err)
	}
	return cfg, nil
}

// LoadWorld loads worlds/<name>.yaml
func (l *Loader) LoadWorld(name string) (*WorldConfig, error) {
	path := "worlds/" + name + ".yaml"
	data, err := fs.ReadFile(l.fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read world %s: %w", name, err)
	}

	var cfg WorldConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse world %s: %w", name, err)
	}
	if cfg.Name == "" {
		cfg.Name = name
	}

	return &cfg, nil
}

// LoadAll loads the game configuration and, if world is not empty, replaces
// its world section with worlds/<world>.yaml
func (l *Loader) LoadAll(world string) (*Config, error) {
	cfg, err := l.LoadGame()
	if err != nil {
		return nil, err
	}

	if world != "" {
		w, err := l.LoadWorld(world)
		if err != nil {
			return nil, err
		}
		cfg.World = *w
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOverride is LoadAll with path, when not empty, read in place of
// game.yaml on top of the defaults
func (l *Loader) LoadOverride(path, world string) (*Config, error) {
	if path == "" {
		return l.LoadAll(world)
	}

	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	if world != "" {
		w, err := l.LoadWorld(world)
		if err != nil {
			return nil, err
		}
		cfg.World = *w
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values the physics cannot run without
func (c *Config) Validate() error {
	p := c.Physics
	switch {
	case p.TicksPerSecond <= 0:
		return fmt.Errorf("physics.ticks_per_second must be positive, got %v", p.TicksPerSecond)
	case p.TerminalVelocity <= 0:
		return fmt.Errorf("physics.terminal_velocity must be positive, got %v", p.TerminalVelocity)
	case p.StepResolution <= 0:
		return fmt.Errorf("physics.step_resolution must be positive, got %d", p.StepResolution)
	case p.StepIncrements < 0:
		return fmt.Errorf("physics.step_increments must not be negative, got %d", p.StepIncrements)
	case c.Player.HalfWidth <= 0 || c.Player.Height <= 0:
		return fmt.Errorf("player bounds must be positive, got half_width=%v height=%v", c.Player.HalfWidth, c.Player.Height)
	case c.Display.TPS <= 0:
		return fmt.Errorf("display.tps must be positive, got %d", c.Display.TPS)
	case c.World.ChunkRadius < 0:
		return fmt.Errorf("world.chunk_radius must not be negative, got %d", c.World.ChunkRadius)
	}
	return nil
}

// WriteYAML writes the configuration as YAML
func (c *Config) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return enc.Close()
}
