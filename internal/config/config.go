// Package config loads server settings from flags, falling back to the
// environment and then to built-in defaults.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/benbeisheim/chessengine/internal/engine"
)

type Config struct {
	Addr          string
	AllowOrigins  string
	SearchDepth   int
	MaxDepth      int
	Strategy      string
	SearchTimeout time.Duration
}

var ErrInvalidConfig = errors.New("invalid config")

// Load parses args (without the program name).
func Load(args []string) (Config, error) {
	var cfg Config
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.StringVar(&cfg.Addr, "addr", envString("CHESS_ADDR", ":3000"), "listen address")
	fs.StringVar(&cfg.AllowOrigins, "origins", envString("CHESS_ALLOW_ORIGINS", "http://localhost:5173"), "comma separated CORS origins")
	fs.IntVar(&cfg.SearchDepth, "depth", envInt("CHESS_SEARCH_DEPTH", 3), "default search depth in plies")
	fs.IntVar(&cfg.MaxDepth, "max-depth", envInt("CHESS_MAX_DEPTH", 5), "largest depth a client may request")
	fs.StringVar(&cfg.Strategy, "strategy", envString("CHESS_STRATEGY", engine.StrategyAlphaBeta), "minimax or alphabeta")
	fs.DurationVar(&cfg.SearchTimeout, "search-timeout", envDuration("CHESS_SEARCH_TIMEOUT", 30*time.Second), "how long a caller waits for a search")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.SearchDepth < 1 {
		return fmt.Errorf("%w: depth %d must be at least 1", ErrInvalidConfig, c.SearchDepth)
	}
	if c.MaxDepth < c.SearchDepth {
		return fmt.Errorf("%w: max-depth %d is below depth %d", ErrInvalidConfig, c.MaxDepth, c.SearchDepth)
	}
	switch strings.ToLower(c.Strategy) {
	case engine.StrategyMinimax, engine.StrategyAlphaBeta:
	default:
		return fmt.Errorf("%w: strategy %q", ErrInvalidConfig, c.Strategy)
	}
	if c.SearchTimeout < 0 {
		return fmt.Errorf("%w: negative search timeout", ErrInvalidConfig)
	}
	return nil
}

// Origins splits AllowOrigins for the websocket origin check.
func (c Config) Origins() []string {
	var origins []string
	for _, o := range strings.Split(c.AllowOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

func envString(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return n
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return d
	}
	return fallback
}
