package config

import (
	"barberpanel/internal/agenda"
	"barberpanel/internal/gesture"
	"barberpanel/internal/layout"
	"barberpanel/internal/slots"
)

// AgendaOptions turns the agenda section into board options.
func (c *Config) AgendaOptions() agenda.Options {
	protected, err := c.ProtectedStatuses()
	if err != nil {
		// Load already rejected bad statuses; keep the defaults for hand-built configs.
		protected = nil
	}
	start, end := c.DefaultHours()

	opts := agenda.DefaultOptions()
	opts.Grid = layout.Grid{
		SlotMinutes:      c.SlotMinutes(),
		SlotHeightPx:     c.SlotHeightPx(),
		MinBlockHeightPx: c.MinBlockHeightPx(),
	}
	opts.Thresholds = gesture.Thresholds{
		JitterPx:      c.JitterPx(),
		EdgePx:        c.EdgeThresholdPx(),
		ScrollStepPx:  c.AutoScrollStepPx(),
		FrameInterval: c.AutoScrollInterval(),
	}
	opts.MinGapMinutes = c.MinGapMinutes()
	opts.DefaultRange = slots.DayRange{StartHour: start, EndHour: end}
	opts.Protected = protected
	opts.ClickSuppress = c.ClickSuppress()
	opts.RulerWidthPx = c.RulerWidthPx()
	opts.ColumnWidthPx = c.ColumnWidthPx()
	return opts
}
