package common

import (
	"bytes"
	"image/png"
	"testing"
	"time"

	"github.com/Freeeeeet/labbooking_bot/internal/model"
	"github.com/Freeeeeet/labbooking_bot/internal/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var brt = time.FixedZone("BRT", -3*60*60)

func weekView() WeekView {
	return WeekView{
		Start:     time.Date(2025, 6, 8, 0, 0, 0, 0, brt),
		Now:       time.Date(2025, 6, 10, 9, 0, 0, 0, brt),
		TeacherID: "t-ana",
		Bookings: []*model.Booking{
			{ID: "1", TeacherID: "t-ana", ClassName: "2º Ano B", Date: time.Date(2025, 6, 12, 0, 0, 0, 0, brt), StartTime: "08:00", EndTime: "08:50", Status: model.BookingStatusConfirmed},
			{ID: "2", TeacherID: "t-bruno", ClassName: "Turma de Biologia Avançada", Date: time.Date(2025, 6, 12, 0, 0, 0, 0, brt), StartTime: "10:00", EndTime: "10:50", Status: model.BookingStatusConfirmed},
			{ID: "3", TeacherID: "t-bruno", ClassName: "1º A", Date: time.Date(2025, 6, 9, 0, 0, 0, 0, brt), StartTime: "07:10", EndTime: "08:00", Status: model.BookingStatusCompleted},
		},
	}
}

func TestGenerateWeekImage(t *testing.T) {
	data, err := GenerateWeekImage(weekView())
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, imageWidth, img.Bounds().Dx())
	assert.Equal(t, imageHeight, img.Bounds().Dy())
}

func TestGenerateWeekImage_Empty(t *testing.T) {
	view := weekView()
	view.Bookings = nil

	data, err := GenerateWeekImage(view)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")))
}

func TestCellKind(t *testing.T) {
	view := weekView()
	slot := func(start string) model.TimeSlot {
		s, ok := schedule.FindSlot(start)
		require.True(t, ok)
		return s
	}
	thu := time.Date(2025, 6, 12, 0, 0, 0, 0, brt)
	tue := time.Date(2025, 6, 10, 0, 0, 0, 0, brt)

	assert.Equal(t, CellOwn, cellKind(view, thu, slot("08:00"), view.Bookings[0]))
	assert.Equal(t, CellBooked, cellKind(view, thu, slot("10:00"), view.Bookings[1]))
	assert.Equal(t, CellFree, cellKind(view, thu, slot("13:00"), nil))
	// 08:50 ended before 09:00, 09:40 did not.
	assert.Equal(t, CellPast, cellKind(view, tue, slot("08:00"), nil))
	assert.Equal(t, CellFree, cellKind(view, tue, slot("08:50"), nil))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "2º Ano B", truncate("2º Ano B", 12))
	assert.Equal(t, "Turma de Bi…", truncate("Turma de Biologia", 12))
}
