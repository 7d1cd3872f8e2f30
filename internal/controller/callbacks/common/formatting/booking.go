// Package formatting renders bookings, slots and dates as pt-BR chat text.
package formatting

import (
	"fmt"
	"strings"
	"time"

	"github.com/Freeeeeet/labbooking_bot/internal/model"
	"github.com/Freeeeeet/labbooking_bot/internal/schedule"
)

// Students pluralizes a student count.
func Students(n int) string {
	if n == 1 {
		return "1 aluno"
	}
	return fmt.Sprintf("%d alunos", n)
}

func StatusLabel(status model.BookingStatus) string {
	switch status {
	case model.BookingStatusConfirmed:
		return "✅ Confirmado"
	case model.BookingStatusCompleted:
		return "☑️ Concluído"
	case model.BookingStatusCanceled:
		return "❌ Cancelado"
	default:
		return string(status)
	}
}

// ShortDate renders a date as "ter 10/06".
func ShortDate(date time.Time) string {
	return schedule.WeekdayShort(date.Weekday()) + " " + date.Format("02/01")
}

// TimeRange renders "08:00 - 08:50".
func TimeRange(start, end string) string {
	return start + " - " + end
}

// BookingLine is the one-line summary used in lists.
func BookingLine(b *model.Booking) string {
	return fmt.Sprintf("%s • %s • %s", ShortDate(b.Date), TimeRange(b.StartTime, b.EndTime), b.ClassName)
}

// BookingButton is the label of a booking's list button.
func BookingButton(b *model.Booking) string {
	return fmt.Sprintf("%s %s • %s", ShortDate(b.Date), b.StartTime, b.ClassName)
}

func BookingDetails(b *model.Booking) string {
	var sb strings.Builder
	sb.WriteString("🧪 Agendamento do laboratório\n\n")
	fmt.Fprintf(&sb, "📅 %s\n", schedule.FormatDisplayWithWeekday(b.Date))
	fmt.Fprintf(&sb, "⏰ %s\n", TimeRange(b.StartTime, b.EndTime))
	fmt.Fprintf(&sb, "👥 Turma: %s (%s)\n", b.ClassName, Students(b.NumStudents))
	fmt.Fprintf(&sb, "🔬 Atividade: %s\n", b.Activity)
	fmt.Fprintf(&sb, "👩‍🏫 %s", b.TeacherName)
	if b.Disciplina != "" {
		fmt.Fprintf(&sb, " • %s", b.Disciplina)
	}
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "%s", StatusLabel(b.Status))
	return sb.String()
}

// BookingList renders the teacher's bookings split into upcoming and past.
func BookingList(bookings []*model.Booking, isPast func(time.Time) bool) string {
	if len(bookings) == 0 {
		return "📋 Seus agendamentos\n\nVocê ainda não tem agendamentos."
	}

	var upcoming, past []string
	for _, b := range bookings {
		if isPast(b.Date) {
			past = append(past, "• "+BookingLine(b))
		} else {
			upcoming = append(upcoming, "• "+BookingLine(b))
		}
	}

	var sb strings.Builder
	sb.WriteString("📋 Seus agendamentos\n")
	if len(upcoming) > 0 {
		sb.WriteString("\nPróximos:\n")
		sb.WriteString(strings.Join(upcoming, "\n"))
		sb.WriteString("\n")
	}
	if len(past) > 0 {
		sb.WriteString("\nAnteriores:\n")
		sb.WriteString(strings.Join(past, "\n"))
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

// FormSummary shows the filled booking form before confirmation.
func FormSummary(date time.Time, slot model.TimeSlot, className, activity string, numStudents int, editing bool) string {
	title := "📝 Confirme o agendamento"
	if editing {
		title = "✏️ Confirme a alteração"
	}
	return fmt.Sprintf("%s\n\n📅 %s\n⏰ %s\n👥 Turma: %s (%s)\n🔬 Atividade: %s",
		title,
		schedule.FormatDisplayWithWeekday(date),
		slot.Label(),
		className,
		Students(numStudents),
		activity,
	)
}
