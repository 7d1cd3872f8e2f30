package model

import "time"

// Teacher is a registered lab user. Email is the natural key used for upserts.
type Teacher struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Disciplina string    `json:"disciplina"` // subject taught
	Phone      string    `json:"phone,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// FirstName returns the first word of the teacher's name for greetings.
func (t *Teacher) FirstName() string {
	for i, r := range t.Name {
		if r == ' ' {
			return t.Name[:i]
		}
	}
	return t.Name
}
