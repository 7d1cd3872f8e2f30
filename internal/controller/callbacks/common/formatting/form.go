package formatting

import (
	"fmt"
	"time"

	"github.com/Freeeeeet/labbooking_bot/internal/model"
	"github.com/Freeeeeet/labbooking_bot/internal/schedule"
)

// KeepValue is the reply that keeps a field's current value while editing.
const KeepValue = "-"

func keepHint(current string) string {
	if current == "" {
		return ""
	}
	return fmt.Sprintf("\n\nAtual: %s (envie %s para manter)", current, KeepValue)
}

// PromptClassName opens the booking form for the chosen slot.
func PromptClassName(date time.Time, slot model.TimeSlot, current string) string {
	return fmt.Sprintf("📝 Agendamento para %s\n⏰ %s\n\nPasso 1 de 3: Qual é a turma?\nExemplo: 2º Ano B%s\n\nPara desistir use /cancel",
		schedule.FormatDisplayWithWeekday(date), slot.Label(), keepHint(current))
}

func PromptActivity(current string) string {
	return "Passo 2 de 3: Qual atividade será realizada?\nExemplo: Titulação ácido-base" + keepHint(current)
}

func PromptNumStudents(current int) string {
	hint := ""
	if current > 0 {
		hint = keepHint(fmt.Sprint(current))
	}
	return fmt.Sprintf("Passo 3 de 3: Quantos alunos participarão? (%d a %d)%s",
		schedule.MinStudents, schedule.MaxStudents, hint)
}
