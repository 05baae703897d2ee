// Package export renders a laid out agenda day as an xlsx workbook.
package export

import (
	"fmt"
	"io"

	"barberpanel/internal/agenda"
	"barberpanel/internal/slots"
	"barberpanel/internal/timewindow"
)

var dayHeader = []string{"Start", "End", "Duration", "Kind", "Label", "Status", "ID"}

// WriteDay writes a summary sheet followed by one sheet per staff column.
func WriteDay(out io.Writer, tl agenda.Timeline) error {
	w := newSheetWriter()
	defer w.close()

	if err := w.addSheet("Summary"); err != nil {
		return err
	}
	if err := w.writeRow([]any{"Date", tl.Date, "Timezone", tl.Timezone}); err != nil {
		return err
	}
	if err := w.writeRow([]any{"Hours", fmt.Sprintf("%02d:00-%02d:00", tl.Range.StartHour, tl.Range.EndHour)}); err != nil {
		return err
	}
	if err := w.writeHeader([]string{"Staff", "Bookings", "Blockings", "Free gaps", "Free time"}); err != nil {
		return err
	}
	for _, col := range tl.Columns {
		var bookings, blockings, gaps, free int
		for _, b := range col.Blocks {
			switch b.Kind {
			case agenda.BlockBooking:
				bookings++
			case agenda.BlockBlocking:
				blockings++
			case agenda.BlockGap:
				gaps++
				free += b.End - b.Start
			}
		}
		if err := w.writeRow([]any{col.Name, bookings, blockings, gaps, slots.FormatDuration(free)}); err != nil {
			return err
		}
	}

	for _, col := range tl.Columns {
		if err := w.addSheet(col.Name); err != nil {
			return err
		}
		if err := w.writeHeader(dayHeader); err != nil {
			return err
		}
		for _, b := range col.Blocks {
			row := []any{
				timewindow.FormatClock(b.Start),
				timewindow.FormatClock(b.End),
				slots.FormatDuration(b.End - b.Start),
				string(b.Kind),
				b.Label,
				b.Status,
				b.ID,
			}
			if err := w.writeRow(row); err != nil {
				return err
			}
		}
	}

	return w.save(out)
}
