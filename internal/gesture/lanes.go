package gesture

import (
	"barberpanel/internal/layout"
)

// LaneResolver finds the staff column under a pointer.
type LaneResolver interface {
	LaneAt(p layout.Point) (staffID string, ok bool)
}

// Viewport is the scrollable timeline container of the active column.
type Viewport interface {
	ScrollTop() float64
	SetScrollTop(px float64)
	MaxScrollTop() float64
	Bounds() layout.Rect
}

// Column is the horizontal extent of one staff lane.
type Column struct {
	StaffID string
	Left    float64
	Right   float64
}

// Columns resolves lanes by geometry.
type Columns []Column

// EvenColumns lays staff lanes side by side starting at offsetX.
func EvenColumns(staffIDs []string, offsetX, width float64) Columns {
	cols := make(Columns, len(staffIDs))
	for i, id := range staffIDs {
		left := offsetX + float64(i)*width
		cols[i] = Column{StaffID: id, Left: left, Right: left + width}
	}
	return cols
}

// LaneAt returns the column whose [Left, Right) range contains p.X.
func (c Columns) LaneAt(p layout.Point) (string, bool) {
	for _, col := range c {
		if p.X >= col.Left && p.X < col.Right {
			return col.StaffID, true
		}
	}
	return "", false
}
