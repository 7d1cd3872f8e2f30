package model

import "fmt"

// TimeSlot is one fixed period of the school day.
type TimeSlot struct {
	Name      string `json:"name"`
	StartTime string `json:"start_time"` // "HH:MM", 24h, zero padded
	EndTime   string `json:"end_time"`
}

// Label returns the human label, e.g. "1º Tempo: 07:10 - 08:00".
func (s TimeSlot) Label() string {
	return fmt.Sprintf("%s: %s - %s", s.Name, s.StartTime, s.EndTime)
}
