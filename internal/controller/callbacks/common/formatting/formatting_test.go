package formatting

import (
	"testing"
	"time"

	"github.com/Freeeeeet/labbooking_bot/internal/model"
	"github.com/Freeeeeet/labbooking_bot/internal/schedule"
	"github.com/Freeeeeet/labbooking_bot/internal/service"
	"github.com/stretchr/testify/assert"
)

func booking(day int, start, end string) *model.Booking {
	return &model.Booking{
		ID:          "b1",
		TeacherID:   "t-ana",
		TeacherName: "Ana Souza",
		Disciplina:  "Química",
		ClassName:   "2º Ano B",
		Activity:    "Titulação",
		NumStudents: 15,
		Date:        time.Date(2025, 6, day, 0, 0, 0, 0, time.UTC),
		StartTime:   start,
		EndTime:     end,
		Status:      model.BookingStatusConfirmed,
	}
}

func TestStudents(t *testing.T) {
	assert.Equal(t, "1 aluno", Students(1))
	assert.Equal(t, "20 alunos", Students(20))
}

func TestBookingLine(t *testing.T) {
	assert.Equal(t, "ter 10/06 • 08:00 - 08:50 • 2º Ano B", BookingLine(booking(10, "08:00", "08:50")))
	assert.Equal(t, "ter 10/06 08:00 • 2º Ano B", BookingButton(booking(10, "08:00", "08:50")))
}

func TestBookingDetails(t *testing.T) {
	text := BookingDetails(booking(12, "13:00", "13:50"))

	assert.Contains(t, text, "quinta-feira, 12/06/2025")
	assert.Contains(t, text, "13:00 - 13:50")
	assert.Contains(t, text, "Turma: 2º Ano B (15 alunos)")
	assert.Contains(t, text, "Atividade: Titulação")
	assert.Contains(t, text, "Ana Souza • Química")
	assert.Contains(t, text, "Confirmado")
}

func TestBookingList(t *testing.T) {
	isPast := func(d time.Time) bool { return d.Day() < 10 }

	assert.Contains(t, BookingList(nil, isPast), "ainda não tem agendamentos")

	text := BookingList([]*model.Booking{booking(11, "08:00", "08:50"), booking(9, "07:10", "08:00")}, isPast)
	assert.Contains(t, text, "Próximos:\n• qua 11/06")
	assert.Contains(t, text, "Anteriores:\n• seg 09/06")
}

func TestSlotLine(t *testing.T) {
	slot, _ := schedule.FindSlot("08:00")

	assert.Equal(t, "🟢 2º Tempo: 08:00 - 08:50", SlotLine(service.SlotAvailability{Slot: slot}, "t-ana"))
	assert.Contains(t, SlotLine(service.SlotAvailability{Slot: slot, Booking: booking(12, "08:00", "08:50")}, "t-ana"), "sua reserva")
	assert.Contains(t, SlotLine(service.SlotAvailability{Slot: slot, Booking: booking(12, "08:00", "08:50")}, "t-bruno"), "🔴")
}

func TestHome(t *testing.T) {
	teacher := &model.Teacher{Name: "Ana Souza"}
	slots := schedule.DailySlots()

	text := Home(teacher, []*model.Booking{booking(11, "08:00", "08:50")}, []service.DayAvailability{
		{Date: time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), FreeSlots: slots[:1]},
		{Date: time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC), FreeSlots: slots},
	})

	assert.Contains(t, text, "Olá, Ana!")
	assert.Contains(t, text, "• qua 11/06 • 08:00 - 08:50")
	assert.Contains(t, text, "• ter 10/06: 1 horário livre")
	assert.Contains(t, text, "• qua 11/06: 12 horários livres")

	empty := Home(teacher, nil, nil)
	assert.Contains(t, empty, "Nenhum agendamento.")
	assert.Contains(t, empty, "Nenhum horário livre")
}

func TestRules(t *testing.T) {
	text := Rules()
	assert.Contains(t, text, "Máximo de 2 agendamentos por semana")
	assert.Contains(t, text, "7 dias")
	assert.Contains(t, text, "24h")
}

func TestFormSummary(t *testing.T) {
	slot, _ := schedule.FindSlot("10:00")
	date := time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC)

	assert.Contains(t, FormSummary(date, slot, "1º A", "Microscopia", 1, false), "Confirme o agendamento")
	assert.Contains(t, FormSummary(date, slot, "1º A", "Microscopia", 1, true), "Confirme a alteração")
	assert.Contains(t, FormSummary(date, slot, "1º A", "Microscopia", 1, false), "4º Tempo: 10:00 - 10:50")
}

func TestPrompts(t *testing.T) {
	slot, _ := schedule.FindSlot("13:00")
	date := time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC)

	fresh := PromptClassName(date, slot, "")
	assert.Contains(t, fresh, "quinta-feira, 12/06/2025")
	assert.Contains(t, fresh, "6º Tempo: 13:00 - 13:50")
	assert.NotContains(t, fresh, "para manter")

	assert.Contains(t, PromptClassName(date, slot, "2º Ano B"), "Atual: 2º Ano B (envie - para manter)")
	assert.Contains(t, PromptActivity("Titulação"), "Atual: Titulação")
	assert.Contains(t, PromptNumStudents(0), "(1 a 20)")
	assert.NotContains(t, PromptNumStudents(0), "Atual")
	assert.Contains(t, PromptNumStudents(15), "Atual: 15")
}
