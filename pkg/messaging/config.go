package messaging

import (
	"os"
	"strconv"
)

// Config holds event bus parameters.
type Config struct {
	BufferSize int  `toml:"buffer_size"`
	Persistent bool `toml:"persistent"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	BufferSize string
	Persistent string
}

// Finalize applies defaults and environment variable overrides.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.BufferSize != 0 {
		c.BufferSize = overlay.BufferSize
	}
	if overlay.Persistent {
		c.Persistent = true
	}
}

func (c *Config) loadDefaults() {
	if c.BufferSize == 0 {
		c.BufferSize = 64
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.BufferSize != "" {
		if v := os.Getenv(env.BufferSize); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				c.BufferSize = n
			}
		}
	}
	if env.Persistent != "" {
		if v := os.Getenv(env.Persistent); v != "" {
			if b, err := strconv.ParseBool(v); err == nil {
				c.Persistent = b
			}
		}
	}
}
