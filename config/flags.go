package config

import (
	"flag"
)

// Flags binds command-line flags. Only flags the user actually passed
// override values coming from files or the environment.
type Flags struct {
	fs     *flag.FlagSet
	values Config

	ConfigPath string
	EnvFile    string
}

func NewFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{fs: fs, values: Default()}
	v := &f.values

	fs.StringVar(&f.ConfigPath, "config", "", "Path to a YAML or TOML config file")
	fs.StringVar(&f.EnvFile, "env-file", ".env", "Path to a .env file with SNAKE_* variables")

	fs.IntVar(&v.Width, "width", v.Width, "Grid width in cells")
	fs.IntVar(&v.Height, "height", v.Height, "Grid height in cells")
	fs.IntVar(&v.StartX, "start-x", v.StartX, "Start cell column")
	fs.IntVar(&v.StartY, "start-y", v.StartY, "Start cell row")
	fs.StringVar(&v.NeighborOrder, "order", v.NeighborOrder, "Neighbour exploration order, e.g. RIGHT,DOWN,LEFT,UP")
	fs.Uint64Var(&v.Seed, "seed", v.Seed, "Seed for goal placement")
	fs.IntVar(&v.InitialLength, "length", v.InitialLength, "Initial snake length")
	fs.BoolVar(&v.Skipping, "skip", v.Skipping, "Allow shortcuts off the cycle")
	fs.IntVar(&v.Speed, "speed", v.Speed, "Ticks per second")
	fs.BoolVar(&v.DrawGrid, "grid", v.DrawGrid, "Draw cell outlines")
	fs.IntVar(&v.MaxTicks, "max-ticks", v.MaxTicks, "Stop a headless run after this many ticks (0 = until the game ends)")
	fs.StringVar(&v.Renderer, "renderer", v.Renderer, "raylib, tui or headless")
	fs.StringVar(&v.StatsFile, "stats", v.StatsFile, "Stats JSON file (empty disables persistence)")
	fs.StringVar(&v.LogLevel, "log-level", v.LogLevel, "debug, info, warn or error")
	fs.StringVar(&v.LogFile, "log-file", v.LogFile, "Append logs to this file")
	return f
}

// Apply copies the explicitly set flags onto cfg.
func (f *Flags) Apply(cfg *Config) {
	v := f.values
	f.fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "width":
			cfg.Width = v.Width
		case "height":
			cfg.Height = v.Height
		case "start-x":
			cfg.StartX = v.StartX
		case "start-y":
			cfg.StartY = v.StartY
		case "order":
			cfg.NeighborOrder = v.NeighborOrder
		case "seed":
			cfg.Seed = v.Seed
		case "length":
			cfg.InitialLength = v.InitialLength
		case "skip":
			cfg.Skipping = v.Skipping
		case "speed":
			cfg.Speed = v.Speed
		case "grid":
			cfg.DrawGrid = v.DrawGrid
		case "max-ticks":
			cfg.MaxTicks = v.MaxTicks
		case "renderer":
			cfg.Renderer = v.Renderer
		case "stats":
			cfg.StatsFile = v.StatsFile
		case "log-level":
			cfg.LogLevel = v.LogLevel
		case "log-file":
			cfg.LogFile = v.LogFile
		}
	})
}
