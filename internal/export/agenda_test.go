package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"barberpanel/internal/agenda"
	"barberpanel/internal/slots"
)

func sampleTimeline() agenda.Timeline {
	return agenda.Timeline{
		Date:     "2026-03-10",
		Timezone: "America/Sao_Paulo",
		Range:    slots.DayRange{StartHour: 9, EndHour: 18},
		Columns: []agenda.Column{
			{
				StaffID: "s1",
				Name:    "Ana",
				Blocks: []agenda.Block{
					{Kind: agenda.BlockBooking, ID: "b1", StaffID: "s1", Start: 600, End: 630, Label: "10:00-10:30", Status: "confirmed"},
					{Kind: agenda.BlockGap, StaffID: "s1", Start: 630, End: 720, Label: "1h 30m"},
					{Kind: agenda.BlockBlocking, ID: "x1", StaffID: "s1", Start: 720, End: 780, Label: "lunch"},
				},
			},
			{StaffID: "s2", Name: "Ana"},
			{StaffID: "s3", Name: "Bruno/Chair [2]"},
		},
	}
}

func TestWriteDay(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteDay(&buf, sampleTimeline()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Summary", "Ana", "Ana (2)", "Bruno-Chair -2-"}, f.GetSheetList())

	summary, err := f.GetRows("Summary")
	require.NoError(t, err)
	require.Len(t, summary, 6)
	assert.Equal(t, []string{"Date", "2026-03-10", "Timezone", "America/Sao_Paulo"}, summary[0])
	assert.Equal(t, []string{"Hours", "09:00-18:00"}, summary[1])
	assert.Equal(t, []string{"Staff", "Bookings", "Blockings", "Free gaps", "Free time"}, summary[2])
	assert.Equal(t, []string{"Ana", "1", "1", "1", "1h 30m"}, summary[3])
	assert.Equal(t, []string{"Ana", "0", "0", "0", "0m"}, summary[4])

	rows, err := f.GetRows("Ana")
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, dayHeader, rows[0])
	assert.Equal(t, []string{"10:00", "10:30", "30m", "booking", "10:00-10:30", "confirmed", "b1"}, rows[1])
	assert.Equal(t, []string{"12:00", "13:00", "1h", "blocking", "lunch", "", "x1"}, rows[3])

	empty, err := f.GetRows("Ana (2)")
	require.NoError(t, err)
	assert.Equal(t, [][]string{dayHeader}, empty)
}

func TestSheetName(t *testing.T) {
	assert.Equal(t, "Sheet", sheetName("   "))
	assert.Equal(t, "a-b-c", sheetName("a:b?c"))
	assert.Len(t, []rune(sheetName("abcdefghijklmnopqrstuvwxyz0123456789")), 31)
}

func TestUniqueNameTruncates(t *testing.T) {
	w := newSheetWriter()
	defer w.close()

	long := "abcdefghijklmnopqrstuvwxyz01234"
	assert.Equal(t, long, w.uniqueName(long))
	second := w.uniqueName(long)
	assert.Len(t, []rune(second), 31)
	assert.Equal(t, " (2)", second[27:])
}

func TestWriteRowWithoutSheet(t *testing.T) {
	w := newSheetWriter()
	defer w.close()
	assert.ErrorIs(t, w.writeRow([]any{"x"}), errNoSheet)
}
