package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"barberpanel/internal/model"
)

type Config struct {
	Agenda struct {
		SlotMinutes          int      `yaml:"slot_minutes"`
		SlotHeightPx         float64  `yaml:"slot_height_px"`
		MinBlockHeightPx     float64  `yaml:"min_block_height_px"`
		MinGapMinutes        int      `yaml:"min_gap_minutes"`
		JitterPx             float64  `yaml:"jitter_px"`
		EdgeThresholdPx      float64  `yaml:"edge_threshold_px"`
		AutoScrollStepPx     float64  `yaml:"auto_scroll_step_px"`
		AutoScrollIntervalMs int      `yaml:"auto_scroll_interval_ms"`
		ClickSuppressMs      int      `yaml:"click_suppress_ms"`
		DefaultStartHour     int      `yaml:"default_start_hour"`
		DefaultEndHour       int      `yaml:"default_end_hour"`
		ProtectedStatuses    []string `yaml:"protected_statuses"`
		RulerWidthPx         float64  `yaml:"ruler_width_px"`
		ColumnWidthPx        float64  `yaml:"column_width_px"`
	} `yaml:"agenda"`

	Database struct {
		Path string `yaml:"path"`
	} `yaml:"database"`

	Backup struct {
		Enabled       bool   `yaml:"enabled"`
		IntervalHours int    `yaml:"interval_hours"`
		Path          string `yaml:"path"`
		RetentionDays int    `yaml:"retention_days"`
	} `yaml:"backup"`

	Redis struct {
		Address         string `yaml:"address"`
		Password        string `yaml:"password"`
		DB              int    `yaml:"db"`
		CacheTTLSeconds int    `yaml:"cache_ttl_seconds"`
	} `yaml:"redis"`

	HTTP struct {
		Port      int     `yaml:"port"`
		RateLimit float64 `yaml:"rate_limit"`
		RateBurst int     `yaml:"rate_burst"`
	} `yaml:"http"`

	Monitoring struct {
		PrometheusEnabled bool `yaml:"prometheus_enabled"`
		PrometheusPort    int  `yaml:"prometheus_port"`
	} `yaml:"monitoring"`

	Logging struct {
		Level  string `yaml:"level"`
		Pretty bool   `yaml:"pretty"`
	} `yaml:"logging"`
}

func Load(path string) (*Config, error) {
	if path == "" {
		path = "configs/config.yaml"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Support ${ENV_VAR} placeholders in YAML config.
	data = []byte(os.ExpandEnv(string(data)))

	var cfg Config
	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if cfg.Database.Path == "" {
		cfg.Database.Path = "data/barberpanel.db"
	}
	if _, err = cfg.ProtectedStatuses(); err != nil {
		return nil, err
	}

	if err = os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) SlotMinutes() int {
	if c.Agenda.SlotMinutes <= 0 {
		return 15
	}
	return c.Agenda.SlotMinutes
}

func (c *Config) SlotHeightPx() float64 {
	if c.Agenda.SlotHeightPx <= 0 {
		return 24
	}
	return c.Agenda.SlotHeightPx
}

func (c *Config) MinBlockHeightPx() float64 {
	if c.Agenda.MinBlockHeightPx <= 0 {
		return c.SlotHeightPx()
	}
	return c.Agenda.MinBlockHeightPx
}

func (c *Config) MinGapMinutes() int {
	if c.Agenda.MinGapMinutes <= 0 {
		return 30
	}
	return c.Agenda.MinGapMinutes
}

func (c *Config) JitterPx() float64 {
	if c.Agenda.JitterPx <= 0 {
		return 5
	}
	return c.Agenda.JitterPx
}

func (c *Config) EdgeThresholdPx() float64 {
	if c.Agenda.EdgeThresholdPx <= 0 {
		return 60
	}
	return c.Agenda.EdgeThresholdPx
}

func (c *Config) AutoScrollStepPx() float64 {
	if c.Agenda.AutoScrollStepPx <= 0 {
		return 12
	}
	return c.Agenda.AutoScrollStepPx
}

func (c *Config) AutoScrollInterval() time.Duration {
	if c.Agenda.AutoScrollIntervalMs <= 0 {
		return 16 * time.Millisecond
	}
	return time.Duration(c.Agenda.AutoScrollIntervalMs) * time.Millisecond
}

func (c *Config) ClickSuppress() time.Duration {
	if c.Agenda.ClickSuppressMs <= 0 {
		return 100 * time.Millisecond
	}
	return time.Duration(c.Agenda.ClickSuppressMs) * time.Millisecond
}

// DefaultHours is the visible range used when nobody has a schedule.
func (c *Config) DefaultHours() (start, end int) {
	start, end = c.Agenda.DefaultStartHour, c.Agenda.DefaultEndHour
	if start < 0 || end > 24 || end <= start {
		return 8, 22
	}
	return start, end
}

// ProtectedStatuses are the booking statuses the agenda refuses to change.
func (c *Config) ProtectedStatuses() ([]model.BookingStatus, error) {
	if len(c.Agenda.ProtectedStatuses) == 0 {
		return model.DefaultProtectedStatuses, nil
	}
	out := make([]model.BookingStatus, 0, len(c.Agenda.ProtectedStatuses))
	for _, raw := range c.Agenda.ProtectedStatuses {
		st, err := model.ParseStatus(raw)
		if err != nil {
			return nil, fmt.Errorf("agenda.protected_statuses: %w", err)
		}
		out = append(out, st)
	}
	return out, nil
}

func (c *Config) RulerWidthPx() float64 {
	if c.Agenda.RulerWidthPx <= 0 {
		return 60
	}
	return c.Agenda.RulerWidthPx
}

func (c *Config) ColumnWidthPx() float64 {
	if c.Agenda.ColumnWidthPx <= 0 {
		return 180
	}
	return c.Agenda.ColumnWidthPx
}

func (c *Config) HTTPPort() int {
	if c.HTTP.Port <= 0 {
		return 8080
	}
	return c.HTTP.Port
}

func (c *Config) RateLimit() (rps float64, burst int) {
	rps, burst = c.HTTP.RateLimit, c.HTTP.RateBurst
	if rps <= 0 {
		rps = 20
	}
	if burst <= 0 {
		burst = 40
	}
	return rps, burst
}

func (c *Config) CacheTTL() time.Duration {
	if c.Redis.CacheTTLSeconds <= 0 {
		return 10 * time.Minute
	}
	return time.Duration(c.Redis.CacheTTLSeconds) * time.Second
}

func (c *Config) BackupInterval() time.Duration {
	if c.Backup.IntervalHours <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(c.Backup.IntervalHours) * time.Hour
}

func (c *Config) BackupRetention() time.Duration {
	if c.Backup.RetentionDays <= 0 {
		return 7 * 24 * time.Hour
	}
	return time.Duration(c.Backup.RetentionDays) * 24 * time.Hour
}
