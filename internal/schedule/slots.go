package schedule

import "github.com/Freeeeeet/labbooking_bot/internal/model"

// dailySlots is the fixed school-day timetable, ordered by start time.
// Breaks and lunch are listed like any other period and are bookable.
var dailySlots = [...]model.TimeSlot{
	{Name: "1º Tempo", StartTime: "07:10", EndTime: "08:00"},
	{Name: "2º Tempo", StartTime: "08:00", EndTime: "08:50"},
	{Name: "3º Tempo", StartTime: "08:50", EndTime: "09:40"},
	{Name: "Intervalo", StartTime: "09:40", EndTime: "10:00"},
	{Name: "4º Tempo", StartTime: "10:00", EndTime: "10:50"},
	{Name: "5º Tempo", StartTime: "10:50", EndTime: "11:40"},
	{Name: "Almoço", StartTime: "11:40", EndTime: "13:00"},
	{Name: "6º Tempo", StartTime: "13:00", EndTime: "13:50"},
	{Name: "7º Tempo", StartTime: "13:50", EndTime: "14:40"},
	{Name: "Intervalo", StartTime: "14:40", EndTime: "15:00"},
	{Name: "8º Tempo", StartTime: "15:00", EndTime: "15:50"},
	{Name: "9º Tempo", StartTime: "15:50", EndTime: "16:40"},
}

// DailySlots returns the timetable. Each call returns a fresh copy.
func DailySlots() []model.TimeSlot {
	slots := make([]model.TimeSlot, len(dailySlots))
	copy(slots, dailySlots[:])
	return slots
}

// FindSlot looks a slot up by its start time.
func FindSlot(startTime string) (model.TimeSlot, bool) {
	for _, s := range dailySlots {
		if s.StartTime == startTime {
			return s, true
		}
	}
	return model.TimeSlot{}, false
}
