package formatting

import (
	"fmt"
	"strings"
	"time"

	"github.com/Freeeeeet/labbooking_bot/internal/model"
	"github.com/Freeeeeet/labbooking_bot/internal/schedule"
	"github.com/Freeeeeet/labbooking_bot/internal/service"
)

// SlotLine renders one slot of the day schedule. Slots held by teacherID are
// marked as the teacher's own.
func SlotLine(a service.SlotAvailability, teacherID string) string {
	switch {
	case a.Free():
		return "🟢 " + a.Slot.Label()
	case a.Booking.TeacherID == teacherID:
		return fmt.Sprintf("🔵 %s • sua reserva (%s)", a.Slot.Label(), a.Booking.ClassName)
	default:
		return fmt.Sprintf("🔴 %s • %s", a.Slot.Label(), a.Booking.TeacherName)
	}
}

func DaySchedule(date time.Time, slots []service.SlotAvailability, teacherID string) string {
	lines := make([]string, 0, len(slots)+2)
	lines = append(lines, "📅 "+schedule.FormatDisplayWithWeekday(date), "")
	for _, a := range slots {
		lines = append(lines, SlotLine(a, teacherID))
	}
	lines = append(lines, "", "Escolha um horário livre para agendar.")
	return strings.Join(lines, "\n")
}

func Home(teacher *model.Teacher, upcoming []*model.Booking, days []service.DayAvailability) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "👋 Olá, %s!\nBem-vindo ao AgendaLEI, o agendamento do laboratório.\n", teacher.FirstName())

	sb.WriteString("\n📌 Meus próximos agendamentos\n")
	if len(upcoming) == 0 {
		sb.WriteString("Nenhum agendamento.\n")
	}
	for _, b := range upcoming {
		sb.WriteString("• " + BookingLine(b) + "\n")
	}

	sb.WriteString("\n🟢 Horários disponíveis\n")
	if len(days) == 0 {
		sb.WriteString("Nenhum horário livre nos próximos dias.")
	}
	for i, d := range days {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "• %s: %s", ShortDate(d.Date), freeSlotsSummary(d.FreeSlots))
	}

	return sb.String()
}

func freeSlotsSummary(slots []model.TimeSlot) string {
	if len(slots) == 1 {
		return "1 horário livre"
	}
	return fmt.Sprintf("%d horários livres", len(slots))
}

// Rules is the rules section of /help.
func Rules() string {
	return fmt.Sprintf("📏 Regras de agendamento:\n"+
		"• Máximo de %d agendamentos por semana\n"+
		"• Agendamentos com no máximo %d dias de antecedência\n"+
		"• Cancelamentos devem ser feitos com pelo menos %.0fh de antecedência\n"+
		"• Turmas de %d a %d alunos",
		schedule.WeeklyQuota,
		schedule.BookingWindowDays,
		schedule.CancellationNotice.Hours(),
		schedule.MinStudents,
		schedule.MaxStudents,
	)
}
