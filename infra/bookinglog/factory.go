package bookinglog

import (
	"fmt"

	"github.com/let-the-dreamers-rise/aurorasync-os/core/booking"
)

// Config selects the booking ledger backend.
type Config struct {
	// Backend is "memory", "jsonl" or "sqlite".
	Backend string `json:"backend"`
	// Path is the file location for the file-backed backends.
	Path string `json:"path"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.Backend == "" {
		c.Backend = "memory"
	}
	if c.Path == "" {
		c.Path = "bookings.log"
	}
}

// Validate checks the backend name.
func (c Config) Validate() error {
	switch c.Backend {
	case "memory", "jsonl", "sqlite":
		return nil
	}
	return fmt.Errorf("unknown booking log backend %s", c.Backend)
}

// New builds the configured store.
func New(cfg Config) (booking.Store, error) {
	switch cfg.Backend {
	case "", "memory":
		return booking.NewMemoryStore(), nil
	case "jsonl":
		return NewJSONLStore(cfg.Path)
	case "sqlite":
		return NewSQLiteStore(cfg.Path)
	}
	return nil, fmt.Errorf("unknown booking log backend %s", cfg.Backend)
}
