package config

import (
	"context"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Watch loads path, hands the config to onUpdate and then polls the file on
// interval. A changed file that fails to load is logged and the previous
// config stays in effect until the file is fixed.
func Watch(ctx context.Context, path string, interval time.Duration, logger zerolog.Logger, onUpdate func(*Config)) error {
	if path == "" {
		path = "configs/config.yaml"
	}
	if interval <= 0 {
		interval = 30 * time.Second
	}

	cfg, err := Load(path)
	if err != nil {
		return err
	}
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if onUpdate != nil {
		onUpdate(cfg)
	}

	w := &watcher{
		path:     path,
		logger:   logger.With().Str("component", "config_watch").Str("path", path).Logger(),
		onUpdate: onUpdate,
		current:  cfg,
		lastMod:  info.ModTime(),
	}

	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				w.check()
			}
		}
	}()
	return nil
}

type watcher struct {
	path     string
	logger   zerolog.Logger
	onUpdate func(*Config)

	current    *Config
	lastMod    time.Time
	lastFailed time.Time
}

// check reloads the file when its modification time moved forward.
func (w *watcher) check() {
	info, err := os.Stat(w.path)
	if err != nil {
		w.logger.Warn().Err(err).Msg("stat config")
		return
	}
	mod := info.ModTime()
	if !mod.After(w.lastMod) || mod.Equal(w.lastFailed) {
		return
	}

	cfg, err := Load(w.path)
	if err != nil {
		w.lastFailed = mod
		w.logger.Warn().Err(err).Msg("config reload failed, keeping previous config")
		return
	}

	changed := changedAgendaKeys(w.current, cfg)
	w.current, w.lastMod = cfg, mod
	w.logger.Info().Strs("changed", changed).Msg("config reloaded")
	if w.onUpdate != nil {
		w.onUpdate(cfg)
	}
}

// changedAgendaKeys lists the yaml keys of the agenda section that differ.
func changedAgendaKeys(prev, next *Config) []string {
	a, b := reflect.ValueOf(prev.Agenda), reflect.ValueOf(next.Agenda)
	typ := a.Type()

	var keys []string
	for i := 0; i < typ.NumField(); i++ {
		if reflect.DeepEqual(a.Field(i).Interface(), b.Field(i).Interface()) {
			continue
		}
		key, _, _ := strings.Cut(typ.Field(i).Tag.Get("yaml"), ",")
		keys = append(keys, key)
	}
	return keys
}
