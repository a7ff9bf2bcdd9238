package config

import (
	"fmt"
	"strings"
	"time"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("database: min_conns %d exceeds max_conns %d", c.Database.MinConns, c.Database.MaxConns)
	}

	if err := c.Sync.validate(); err != nil {
		return fmt.Errorf("sync: %w", err)
	}

	return nil
}

func (s *SyncConfig) validate() error {
	if s.FeedLimit <= 0 {
		return fmt.Errorf("feed_limit must be > 0 (got %d)", s.FeedLimit)
	}

	day, err := ParseWeekday(s.WeekStartRaw)
	if err != nil {
		return fmt.Errorf("week_start: %w", err)
	}
	s.WeekStart = day

	return nil
}

// ParseWeekday parses a lowercase English weekday name ("monday") into a
// time.Weekday. Matching is case-insensitive.
func ParseWeekday(raw string) (time.Weekday, error) {
	name := strings.ToLower(strings.TrimSpace(raw))
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.ToLower(d.String()) == name {
			return d, nil
		}
	}
	return time.Sunday, fmt.Errorf("invalid weekday %q", raw)
}
