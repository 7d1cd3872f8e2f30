package common

import (
	"bytes"
	"fmt"
	"image/color"
	"sync"
	"time"

	"github.com/Freeeeeet/labbooking_bot/internal/model"
	"github.com/Freeeeeet/labbooking_bot/internal/schedule"
	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

type FontStyle string

const (
	FontStyleRegular FontStyle = ""
	FontStyleBold    FontStyle = "bold"
)

const (
	imageWidth       = 1400
	imageHeight      = 900
	headerHeight     = 100
	leftLabelsWidth  = 80
	legendWidth      = 140
	dayPaddingX      = 6
	minSlotHeight    = 8.0
	slotBorderRadius = 6.0
	shadowOffset     = 3.0
	totalDaysInWeek  = 7
)

const (
	titleFontSize      = 25.0
	dayFontSize        = 24.0
	hourLabelFontSize  = 16.0
	slotTimeFontSize   = 14.0
	legendItemFontSize = 13.0
)

var (
	bgColor          = color.RGBA{245, 246, 248, 255}
	textColor        = color.RGBA{80, 85, 90, 220}
	hourLabelColor   = color.RGBA{110, 115, 120, 200}
	hourLineColor    = color.NRGBA{150, 150, 150, 255}
	todayBgColor     = color.NRGBA{255, 99, 71, 90}
	evenDayColor     = color.NRGBA{240, 240, 240, 255}
	oddDayColor      = color.NRGBA{225, 225, 225, 255}
	currentTimeColor = color.NRGBA{255, 80, 80, 200}

	slotFreeColor   = color.RGBA{133, 193, 85, 220}
	slotOwnColor    = color.RGBA{120, 170, 235, 255}
	slotBookedColor = color.RGBA{255, 182, 193, 255}
	slotPastColor   = color.RGBA{190, 190, 190, 200}
	slotTextColor   = color.RGBA{20, 24, 28, 230}
	slotBookedText  = color.RGBA{120, 40, 50, 255}
	slotShadowColor = color.RGBA{0, 0, 0, 20}
	legendTextColor = color.RGBA{90, 95, 100, 220}
	legendItemColor = color.RGBA{70, 74, 78, 220}
)

// WeekView is everything the weekly occupancy image shows.
type WeekView struct {
	// Start is the Sunday the week begins on, at midnight in the school's zone.
	Start     time.Time
	Now       time.Time
	Bookings  []*model.Booking
	TeacherID string // bookings of this teacher are highlighted
}

// CellKind is how a slot cell is drawn.
type CellKind int

const (
	CellFree CellKind = iota
	CellOwn
	CellBooked
	CellPast
)

var (
	fontMu      sync.Mutex
	cachedFonts = make(map[FontStyle]*opentype.Font)
)

// loadFont sets a Go font face of the given size, falling back to basicfont.
func loadFont(dc *gg.Context, size float64, style FontStyle) {
	fontMu.Lock()
	defer fontMu.Unlock()

	parsed, ok := cachedFonts[style]
	if !ok {
		data := goregular.TTF
		if style == FontStyleBold {
			data = gobold.TTF
		}
		var err error
		parsed, err = opentype.Parse(data)
		if err != nil {
			dc.SetFontFace(basicfont.Face7x13)
			return
		}
		cachedFonts[style] = parsed
	}

	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		dc.SetFontFace(basicfont.Face7x13)
		return
	}
	dc.SetFontFace(face)
}

// GenerateWeekImage renders the lab timetable of one week as a PNG.
func GenerateWeekImage(view WeekView) ([]byte, error) {
	slots := schedule.DailySlots()
	firstMin, lastMin := minutesOf(slots[0].StartTime), minutesOf(slots[len(slots)-1].EndTime)
	// Whole hours around the school day.
	startHour := firstMin / 60
	endHour := (lastMin + 59) / 60
	totalHours := endHour - startHour

	dc := gg.NewContext(imageWidth, imageHeight)
	dc.SetColor(bgColor)
	dc.Clear()

	dayWidth := (imageWidth - leftLabelsWidth - legendWidth) / totalDaysInWeek
	dayHeight := imageHeight - headerHeight
	hourHeight := float64(dayHeight) / float64(totalHours)
	yOf := func(minutes int) float64 {
		return float64(headerHeight) + float64(minutes-startHour*60)/60*hourHeight
	}

	byCell := make(map[string]*model.Booking, len(view.Bookings))
	for _, b := range view.Bookings {
		if b.IsActive() {
			byCell[cellKey(b.Date, b.StartTime)] = b
		}
	}

	drawHeader(dc, view.Start)
	drawHourLabels(dc, startHour, endHour, yOf)

	today := time.Date(view.Now.Year(), view.Now.Month(), view.Now.Day(), 0, 0, 0, 0, view.Start.Location())
	for i := 0; i < totalDaysInWeek; i++ {
		date := view.Start.AddDate(0, 0, i)
		x := float64(leftLabelsWidth + i*dayWidth)
		isToday := date.Equal(today)

		drawDayBackground(dc, x, float64(headerHeight), dayWidth, dayHeight, i, isToday)
		drawDayHeader(dc, date, x, dayWidth)
		drawHourLines(dc, x, dayWidth, startHour, endHour, yOf)

		for _, slot := range slots {
			b := byCell[cellKey(date, slot.StartTime)]
			kind := cellKind(view, date, slot, b)
			y0, y1 := yOf(minutesOf(slot.StartTime)), yOf(minutesOf(slot.EndTime))
			drawSlot(dc, x, y0, y1, dayWidth, slot, b, kind)
		}

		if isToday {
			drawCurrentTimeLine(dc, x, dayWidth, view.Now, firstMin, lastMin, yOf)
		}
	}

	drawLegend(dc, dayWidth)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// cellKind classifies a slot: past once its end has passed, otherwise by its booking.
func cellKind(view WeekView, date time.Time, slot model.TimeSlot, b *model.Booking) CellKind {
	end := date.Add(time.Duration(minutesOf(slot.EndTime)) * time.Minute)
	switch {
	case !end.After(view.Now):
		return CellPast
	case b == nil:
		return CellFree
	case b.TeacherID == view.TeacherID:
		return CellOwn
	default:
		return CellBooked
	}
}

func cellKey(date time.Time, startTime string) string {
	return schedule.FormatKey(date) + " " + startTime
}

func minutesOf(hhmm string) int {
	var h, m int
	fmt.Sscanf(hhmm, "%d:%d", &h, &m)
	return h*60 + m
}

func drawHeader(dc *gg.Context, start time.Time) {
	end := start.AddDate(0, 0, totalDaysInWeek-1)
	title := fmt.Sprintf("Laboratório • semana de %s a %s", start.Format("02/01"), end.Format("02/01/2006"))

	loadFont(dc, titleFontSize, FontStyleBold)
	dc.SetColor(textColor)
	dc.DrawStringAnchored(title, float64(leftLabelsWidth), float64(headerHeight)/4, 0, 0.5)
}

func drawHourLabels(dc *gg.Context, startHour, endHour int, yOf func(int) float64) {
	loadFont(dc, hourLabelFontSize, FontStyleRegular)
	dc.SetColor(hourLabelColor)

	for h := startHour; h <= endHour; h++ {
		dc.DrawStringAnchored(fmt.Sprintf("%02d:00", h), float64(leftLabelsWidth)-10, yOf(h*60), 1, 0.5)
	}
}

func drawDayBackground(dc *gg.Context, x, y float64, dayWidth, dayHeight, dayIndex int, isToday bool) {
	switch {
	case isToday:
		dc.SetColor(todayBgColor)
	case dayIndex%2 == 0:
		dc.SetColor(evenDayColor)
	default:
		dc.SetColor(oddDayColor)
	}
	dc.DrawRectangle(x, y, float64(dayWidth), float64(dayHeight))
	dc.Fill()
}

func drawDayHeader(dc *gg.Context, date time.Time, x float64, dayWidth int) {
	loadFont(dc, dayFontSize, FontStyleBold)
	dc.SetColor(textColor)
	cx := x + float64(dayWidth)/2
	dc.DrawStringAnchored(date.Format("02/01"), cx, float64(headerHeight)-40, 0.5, 0.5)
	dc.DrawStringAnchored(schedule.WeekdayShort(date.Weekday()), cx, float64(headerHeight)-14, 0.5, 0.5)
}

func drawHourLines(dc *gg.Context, x float64, dayWidth, startHour, endHour int, yOf func(int) float64) {
	dc.SetLineWidth(0.3)
	dc.SetColor(hourLineColor)

	for h := startHour; h <= endHour; h++ {
		y := yOf(h * 60)
		dc.DrawLine(x, y, x+float64(dayWidth), y)
		dc.Stroke()
	}
}

func drawSlot(dc *gg.Context, x, y0, y1 float64, dayWidth int, slot model.TimeSlot, b *model.Booking, kind CellKind) {
	height := y1 - y0
	if height < minSlotHeight {
		height = minSlotHeight
	}
	width := float64(dayWidth) - float64(dayPaddingX*2)
	left := x + float64(dayPaddingX)
	fill := slotColor(kind)

	dc.SetColor(slotShadowColor)
	dc.DrawRoundedRectangle(left+shadowOffset, y0+1+shadowOffset, width, height-2, slotBorderRadius)
	dc.Fill()

	dc.SetColor(fill)
	dc.DrawRoundedRectangle(left, y0+1, width, height-2, slotBorderRadius)
	dc.Fill()

	dc.SetColor(darkenColor(fill, 0.8))
	dc.SetLineWidth(1)
	dc.DrawRoundedRectangle(left, y0+1, width, height-2, slotBorderRadius)
	dc.Stroke()

	txt := slotTextColor
	if kind == CellBooked {
		txt = slotBookedText
	}

	loadFont(dc, slotTimeFontSize, FontStyleBold)
	dc.SetColor(txt)
	dc.DrawStringAnchored(slot.StartTime, left+6, y0+height/2, 0, 0.35)

	if b != nil && height > 25 {
		label := truncate(b.ClassName, 12)
		loadFont(dc, slotTimeFontSize-2, FontStyleRegular)
		dc.DrawStringAnchored(label, left+width-6, y0+height/2, 1, 0.35)
	}
}

func slotColor(kind CellKind) color.RGBA {
	switch kind {
	case CellOwn:
		return slotOwnColor
	case CellBooked:
		return slotBookedColor
	case CellPast:
		return slotPastColor
	default:
		return slotFreeColor
	}
}

func darkenColor(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
		A: c.A,
	}
}

func drawCurrentTimeLine(dc *gg.Context, x float64, dayWidth int, now time.Time, firstMin, lastMin int, yOf func(int) float64) {
	current := now.Hour()*60 + now.Minute()
	if current < firstMin || current > lastMin {
		return
	}

	y := yOf(current)
	dc.SetColor(currentTimeColor)
	dc.SetLineWidth(2.0)
	dc.DrawLine(x, y, x+float64(dayWidth), y)
	dc.Stroke()
}

func drawLegend(dc *gg.Context, dayWidth int) {
	legendX := float64(leftLabelsWidth + totalDaysInWeek*dayWidth + 14)
	legendY := float64(imageHeight) - 150.0

	items := []struct {
		Label string
		Clr   color.Color
	}{
		{"Livre", slotFreeColor},
		{"Sua reserva", slotOwnColor},
		{"Reservado", slotBookedColor},
		{"Encerrado", slotPastColor},
	}

	loadFont(dc, legendItemFontSize, FontStyleBold)
	dc.SetColor(legendTextColor)
	dc.DrawStringAnchored("Legenda", legendX, legendY, 0, 0)

	const boxW, boxH = 20.0, 14.0
	y := legendY + 16
	for _, item := range items {
		dc.SetColor(item.Clr)
		dc.DrawRoundedRectangle(legendX, y, boxW, boxH, 3)
		dc.Fill()

		loadFont(dc, legendItemFontSize, FontStyleRegular)
		dc.SetColor(legendItemColor)
		dc.DrawStringAnchored(item.Label, legendX+boxW+8, y+boxH/2+1, 0, 0.2)
		y += boxH + 14
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
