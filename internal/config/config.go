package config

import (
	"flag"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"KnitBoard/internal/state"
	"KnitBoard/internal/store"
)

type Config struct {
	GridSize  int
	TileSize  int
	TileMin   int
	TileMax   int
	UndoLimit int

	PalettePath string
	ProjectPath string

	// SharePort > 0 serves the board to LAN viewers.
	SharePort int
	LogLevel  string
}

func Default() Config {
	return Config{
		GridSize:    64,
		TileSize:    state.DefaultTileSize,
		TileMin:     state.DefaultTileMin,
		TileMax:     state.DefaultTileMax,
		UndoLimit:   state.DefaultUndoLimit,
		PalettePath: store.DefaultPalettePath,
		ProjectPath: store.DefaultProjectPath,
		LogLevel:    "info",
	}
}

// Load starts from the defaults, then applies an optional .env file and the
// KNIT_* environment variables.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logrus.Warnf("Error loading .env file: %v", err)
	}
	c := Default()
	c.GridSize = envInt("KNIT_GRID_SIZE", c.GridSize)
	c.TileSize = envInt("KNIT_TILE_SIZE", c.TileSize)
	c.TileMin = envInt("KNIT_TILE_MIN", c.TileMin)
	c.TileMax = envInt("KNIT_TILE_MAX", c.TileMax)
	c.UndoLimit = envInt("KNIT_UNDO_LIMIT", c.UndoLimit)
	c.SharePort = envInt("KNIT_SHARE_PORT", c.SharePort)
	c.PalettePath = envString("KNIT_PALETTE_PATH", c.PalettePath)
	c.ProjectPath = envString("KNIT_PROJECT_PATH", c.ProjectPath)
	c.LogLevel = envString("LOG_LEVEL", c.LogLevel)
	return c
}

// BindFlags lets command line flags override the loaded values.
func (c *Config) BindFlags(fs *flag.FlagSet) {
	fs.IntVar(&c.GridSize, "size", c.GridSize, "grid size in cells per side")
	fs.IntVar(&c.TileSize, "tile", c.TileSize, "initial cell size in pixels")
	fs.StringVar(&c.PalettePath, "palette", c.PalettePath, "palette file")
	fs.StringVar(&c.ProjectPath, "project", c.ProjectPath, "pattern file")
	fs.IntVar(&c.SharePort, "share", c.SharePort, "serve the board to viewers on this port (0 disables)")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "debug, info, warn or error")
}

// Validate pulls out-of-range values back to something usable.
func (c *Config) Validate() {
	d := Default()
	if c.GridSize < 1 || c.GridSize > state.MaxGridSize {
		logrus.Warnf("grid size %d out of range, using %d", c.GridSize, d.GridSize)
		c.GridSize = d.GridSize
	}
	if c.TileMin < 1 {
		c.TileMin = d.TileMin
	}
	if c.TileMax < c.TileMin {
		c.TileMax = c.TileMin
	}
	c.TileSize = max(c.TileMin, min(c.TileSize, c.TileMax))
	if c.UndoLimit < 1 {
		c.UndoLimit = d.UndoLimit
	}
	if c.SharePort < 0 || c.SharePort > 65535 {
		logrus.Warnf("share port %d out of range, sharing disabled", c.SharePort)
		c.SharePort = 0
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		logrus.Warnf("ignoring %s=%q: %v", key, v, err)
		return fallback
	}
	return n
}
