package agenda

import (
	"sort"

	"barberpanel/internal/model"
	"barberpanel/internal/slots"
	"barberpanel/internal/timewindow"
)

// BlockKind tells the renderer what a block is.
type BlockKind string

const (
	BlockBooking  BlockKind = "booking"
	BlockBlocking BlockKind = "blocking"
	BlockGap      BlockKind = "gap"
)

// Block is one positioned rectangle in a staff column.
type Block struct {
	Kind      BlockKind `json:"kind"`
	ID        string    `json:"id,omitempty"`
	StaffID   string    `json:"staff_id"`
	Start     int       `json:"start"`
	End       int       `json:"end"`
	TopPx     float64   `json:"top_px"`
	HeightPx  float64   `json:"height_px"`
	Label     string    `json:"label"`
	Status    string    `json:"status,omitempty"`
	Protected bool      `json:"protected,omitempty"`
}

// Column is one staff lane.
type Column struct {
	StaffID string                  `json:"staff_id"`
	Name    string                  `json:"name"`
	Windows []timewindow.TimeWindow `json:"windows"`
	Blocks  []Block                 `json:"blocks"`
}

// RulerMark is an hour label on the time ruler.
type RulerMark struct {
	Minute int     `json:"minute"`
	Label  string  `json:"label"`
	TopPx  float64 `json:"top_px"`
}

// Timeline is the laid out day.
type Timeline struct {
	Date     string         `json:"date"`
	Timezone string         `json:"timezone"`
	Revision uint64         `json:"revision"`
	Range    slots.DayRange `json:"range"`
	HeightPx float64        `json:"height_px"`
	Ruler    []RulerMark    `json:"ruler"`
	Columns  []Column       `json:"columns"`
}

// Timeline lays out bookings, blockings and free gaps for every lane.
func (b *Board) Timeline() (Timeline, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.loaded {
		return Timeline{}, ErrNoInput
	}

	grid := b.opts.Grid
	dayStart := b.dayRange.StartMinutes()
	tl := Timeline{
		Date:     b.day.Date,
		Timezone: b.input.Timezone,
		Revision: b.revision,
		Range:    b.dayRange,
		HeightPx: grid.TimelineHeight(b.dayRange.StartHour, b.dayRange.EndHour),
	}
	for h := b.dayRange.StartHour; h <= b.dayRange.EndHour; h++ {
		tl.Ruler = append(tl.Ruler, RulerMark{
			Minute: h * 60,
			Label:  timewindow.FormatClock(h * 60),
			TopPx:  grid.MinutesToPixels(h*60, dayStart),
		})
	}

	place := func(kind BlockKind, staffID string, start, end int) Block {
		return Block{
			Kind:     kind,
			StaffID:  staffID,
			Start:    start,
			End:      end,
			TopPx:    grid.MinutesToPixels(start, dayStart),
			HeightPx: grid.BlockHeight(end - start),
		}
	}

	byStaff := make(map[string][]Block, len(b.staffIDs))
	protected := b.opts.Protected
	if protected == nil {
		protected = model.DefaultProtectedStatuses
	}
	for _, bk := range b.input.Bookings {
		if !b.day.Overlaps(bk.StartsAt, bk.EndsAt) {
			continue
		}
		blk := place(BlockBooking, bk.StaffID, b.day.MinuteOf(bk.StartsAt), b.day.MinuteOf(bk.EndsAt))
		blk.ID = bk.ID
		blk.Status = string(bk.Status)
		blk.Protected = bk.IsProtected(protected)
		blk.Label = timewindow.FormatClock(blk.Start) + "-" + timewindow.FormatClock(blk.End)
		byStaff[bk.StaffID] = append(byStaff[bk.StaffID], blk)
	}
	for _, bl := range b.input.Blockings {
		w, ok := timewindow.BlockingWindow(bl, b.day)
		if !ok {
			continue
		}
		blk := place(BlockBlocking, bl.StaffID, w.Start, w.End)
		blk.ID = bl.ID
		blk.Label = string(bl.Type)
		if bl.Reason != "" {
			blk.Label += ": " + bl.Reason
		}
		byStaff[bl.StaffID] = append(byStaff[bl.StaffID], blk)
	}
	for staffID, gaps := range b.gaps {
		for _, g := range gaps {
			blk := place(BlockGap, staffID, g.Start, g.End)
			blk.Label = g.Label()
			byStaff[staffID] = append(byStaff[staffID], blk)
		}
	}

	for _, id := range b.staffIDs {
		blocks := byStaff[id]
		sort.SliceStable(blocks, func(i, j int) bool {
			return blocks[i].Start < blocks[j].Start
		})
		col := Column{
			StaffID: id,
			Name:    b.staff[id].Name,
			Windows: b.windows.For(id),
			Blocks:  blocks,
		}
		if col.Name == "" {
			col.Name = id
		}
		tl.Columns = append(tl.Columns, col)
	}
	return tl, nil
}
