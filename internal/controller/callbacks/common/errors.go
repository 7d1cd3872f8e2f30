package common

import (
	"errors"
	"strings"

	"github.com/Freeeeeet/labbooking_bot/internal/schedule"
	"github.com/Freeeeeet/labbooking_bot/internal/service"
)

var (
	ErrNoMessage     = errors.New("no message in callback")
	ErrInvalidFormat = errors.New("invalid callback format")
	ErrNoDialog      = errors.New("no booking dialog in progress")
)

// ErrorMessage returns the user-facing text for err.
func ErrorMessage(err error) string {
	var verr *schedule.ValidationError
	var cerr *schedule.ConflictError

	switch {
	case errors.As(err, &verr):
		lines := make([]string, 0, len(verr.Fields)+1)
		lines = append(lines, "❌ Corrija os campos:")
		for _, f := range verr.Fields {
			lines = append(lines, "• "+f.Message)
		}
		return strings.Join(lines, "\n")
	case errors.As(err, &cerr):
		if cerr.Teacher != "" {
			return "❌ Este horário já está reservado por " + cerr.Teacher + "."
		}
		return "❌ Este horário já está reservado."
	case errors.Is(err, schedule.ErrOutOfWindow):
		return "❌ Só é possível agendar de hoje até uma semana de antecedência."
	case errors.Is(err, schedule.ErrQuotaExceeded):
		return "❌ Você já atingiu o limite de 2 agendamentos por semana."
	case errors.Is(err, schedule.ErrCancellationWindow):
		return "❌ Cancelamentos devem ser feitos com pelo menos 24 horas de antecedência."
	case errors.Is(err, service.ErrBookingNotFound):
		return "❌ Agendamento não encontrado."
	case errors.Is(err, service.ErrNotOwner):
		return "❌ Este agendamento pertence a outro professor."
	case errors.Is(err, service.ErrNotRegistered):
		return "❌ Você ainda não está cadastrado. Use /start para se cadastrar."
	case errors.Is(err, ErrNoDialog):
		return "❌ Nenhum agendamento em andamento. Escolha um horário no /calendar."
	case errors.Is(err, ErrNoMessage), errors.Is(err, ErrInvalidFormat):
		return "❌ Não foi possível processar o botão. Tente novamente."
	case service.IsStoreError(err):
		return "❌ Não foi possível salvar os dados. Tente novamente."
	default:
		return "❌ Ocorreu um erro inesperado. Tente novamente."
	}
}

// Retryable reports whether the user should be offered to retry after err.
// Rule rejections never are.
func Retryable(err error) bool {
	return service.IsStoreError(err)
}
