// Package config resolves the run configuration. Values are layered: built-in
// defaults, then an optional YAML or TOML file, then a .env file and SNAKE_*
// environment variables, then command-line flags.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"snake-hamiltonian/game"
	"snake-hamiltonian/game/hamiltonian"
	"snake-hamiltonian/game/types"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

const (
	RendererRaylib   = "raylib"
	RendererTUI      = "tui"
	RendererHeadless = "headless"

	envPrefix = "SNAKE_"
)

var (
	ErrInvalidConfig     = errors.New("invalid configuration")
	ErrUnsupportedFormat = errors.New("unsupported config file format")
)

// Config holds every knob of a run.
type Config struct {
	Width         int    `yaml:"width" toml:"width"`
	Height        int    `yaml:"height" toml:"height"`
	StartX        int    `yaml:"start_x" toml:"start_x"`
	StartY        int    `yaml:"start_y" toml:"start_y"`
	NeighborOrder string `yaml:"neighbor_order" toml:"neighbor_order"`
	Seed          uint64 `yaml:"seed" toml:"seed"`
	InitialLength int    `yaml:"initial_length" toml:"initial_length"`
	Skipping      bool   `yaml:"skipping" toml:"skipping"`

	Speed    int    `yaml:"speed" toml:"speed"` // ticks per second
	DrawGrid bool   `yaml:"draw_grid" toml:"draw_grid"`
	MaxTicks int    `yaml:"max_ticks" toml:"max_ticks"`
	Renderer string `yaml:"renderer" toml:"renderer"`

	StatsFile string `yaml:"stats_file" toml:"stats_file"`
	LogLevel  string `yaml:"log_level" toml:"log_level"`
	LogFile   string `yaml:"log_file" toml:"log_file"`
}

// Default mirrors the classic setup: an 8x8 board, the snake starting three
// cells long on the top row, seed 11, ten ticks per second.
func Default() Config {
	return Config{
		Width:         8,
		Height:        8,
		StartX:        2,
		StartY:        0,
		NeighborOrder: types.DefaultNeighborOrder.String(),
		Seed:          11,
		InitialLength: 3,
		Skipping:      true,
		Speed:         10,
		DrawGrid:      false,
		MaxTicks:      0,
		Renderer:      RendererRaylib,
		StatsFile:     filepath.Join("data", "stats.json"),
		LogLevel:      "info",
	}
}

// Load resolves defaults, the optional config file at path and the
// environment (after loading envFile when it exists).
func Load(path, envFile string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return cfg, err
		}
	}
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("config: load %s: %w", envFile, err)
		}
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, c)
	case ".toml":
		err = toml.Unmarshal(data, c)
	default:
		return fmt.Errorf("config: %s: %w", path, ErrUnsupportedFormat)
	}
	if err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}

type lookupFunc func(key string) (string, bool)

func (c *Config) applyEnv(lookup lookupFunc) error {
	var errs []error
	intVar := func(key string, dst *int) {
		if v, ok := lookup(envPrefix + key); ok {
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s must be an integer: %w", envPrefix, key, err))
				return
			}
			*dst = n
		}
	}
	boolVar := func(key string, dst *bool) {
		if v, ok := lookup(envPrefix + key); ok {
			b, err := strconv.ParseBool(strings.TrimSpace(v))
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s must be a boolean: %w", envPrefix, key, err))
				return
			}
			*dst = b
		}
	}
	stringVar := func(key string, dst *string) {
		if v, ok := lookup(envPrefix + key); ok {
			*dst = strings.TrimSpace(v)
		}
	}

	intVar("WIDTH", &c.Width)
	intVar("HEIGHT", &c.Height)
	intVar("START_X", &c.StartX)
	intVar("START_Y", &c.StartY)
	stringVar("NEIGHBOR_ORDER", &c.NeighborOrder)
	if v, ok := lookup(envPrefix + "SEED"); ok {
		seed, err := strconv.ParseUint(strings.TrimSpace(v), 10, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%sSEED must be an unsigned integer: %w", envPrefix, err))
		} else {
			c.Seed = seed
		}
	}
	intVar("INITIAL_LENGTH", &c.InitialLength)
	boolVar("SKIPPING", &c.Skipping)
	intVar("SPEED", &c.Speed)
	boolVar("DRAW_GRID", &c.DrawGrid)
	intVar("MAX_TICKS", &c.MaxTicks)
	stringVar("RENDERER", &c.Renderer)
	stringVar("STATS_FILE", &c.StatsFile)
	stringVar("LOG_LEVEL", &c.LogLevel)
	stringVar("LOG_FILE", &c.LogFile)

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: environment: %w", err)
	}
	return nil
}

// Validate reports every configuration error that would make the run
// impossible before any search starts.
func (c Config) Validate() error {
	var errs []error
	grid := c.Grid()
	if err := grid.Validate(); err != nil {
		errs = append(errs, err)
	} else {
		if grid.Area()%2 != 0 {
			errs = append(errs, fmt.Errorf("grid %dx%d has an odd number of cells", c.Width, c.Height))
		} else if grid.Area() < hamiltonian.MinCycleLen {
			errs = append(errs, fmt.Errorf("grid %dx%d needs at least %d cells", c.Width, c.Height, hamiltonian.MinCycleLen))
		}
		if !grid.Contains(c.Start()) {
			errs = append(errs, fmt.Errorf("start %v is outside the %dx%d grid", c.Start(), c.Width, c.Height))
		}
		if c.InitialLength < 1 || c.InitialLength >= grid.Area() {
			errs = append(errs, fmt.Errorf("initial_length %d must be between 1 and %d", c.InitialLength, grid.Area()-1))
		}
	}
	if _, err := types.ParseNeighborOrder(c.NeighborOrder); err != nil {
		errs = append(errs, err)
	}
	if c.Speed <= 0 {
		errs = append(errs, fmt.Errorf("speed %d must be positive", c.Speed))
	}
	if c.MaxTicks < 0 {
		errs = append(errs, fmt.Errorf("max_ticks %d must not be negative", c.MaxTicks))
	}
	switch c.Renderer {
	case RendererRaylib, RendererTUI, RendererHeadless:
	default:
		errs = append(errs, fmt.Errorf("renderer %q is not one of %s, %s, %s", c.Renderer, RendererRaylib, RendererTUI, RendererHeadless))
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

func (c Config) Grid() types.Grid {
	return types.Grid{Width: c.Width, Height: c.Height}
}

func (c Config) Start() types.Point {
	return types.Point{X: c.StartX, Y: c.StartY}
}

// GameOptions translates the configuration into game construction options.
func (c Config) GameOptions() (game.Options, error) {
	order, err := types.ParseNeighborOrder(c.NeighborOrder)
	if err != nil {
		return game.Options{}, err
	}
	return game.Options{
		Grid:          c.Grid(),
		Start:         c.Start(),
		Order:         order,
		Seed:          c.Seed,
		InitialLength: c.InitialLength,
		Skipping:      c.Skipping,
	}, nil
}
