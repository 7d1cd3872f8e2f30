package memory

import (
	"context"
	"testing"
	"time"

	"github.com/Freeeeeet/labbooking_bot/internal/model"
	"github.com/Freeeeeet/labbooking_bot/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBooking(date time.Time, start string) *model.Booking {
	return &model.Booking{
		TeacherID:   "t1",
		ClassName:   "3º Ano",
		Activity:    "Eletrólise",
		NumStudents: 12,
		Date:        date,
		StartTime:   start,
		EndTime:     "08:50",
		Status:      model.BookingStatusConfirmed,
	}
}

func TestBookingStore_SaveAssignsID(t *testing.T) {
	ctx := context.Background()
	store := NewBookingStore()

	saved, err := store.Save(ctx, newBooking(time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), "08:00"))
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.False(t, saved.CreatedAt.IsZero())

	got, err := store.GetByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, saved, got)
}

func TestBookingStore_SaveIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := NewBookingStore()

	saved, err := store.Save(ctx, newBooking(time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), "08:00"))
	require.NoError(t, err)

	again, err := store.Save(ctx, saved)
	require.NoError(t, err)
	assert.Equal(t, saved, again)

	all, err := store.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, saved, all[0])
}

func TestBookingStore_SaveReplacesWholesale(t *testing.T) {
	ctx := context.Background()
	store := NewBookingStore()

	saved, err := store.Save(ctx, newBooking(time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), "08:00"))
	require.NoError(t, err)

	edited := saved.Clone()
	edited.StartTime = "10:00"
	edited.Activity = "Cromatografia"
	_, err = store.Save(ctx, edited)
	require.NoError(t, err)

	got, err := store.GetByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, edited, got)
}

func TestBookingStore_SlotTaken(t *testing.T) {
	ctx := context.Background()
	store := NewBookingStore()
	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	_, err := store.Save(ctx, newBooking(date, "08:00"))
	require.NoError(t, err)

	_, err = store.Save(ctx, newBooking(date, "08:00"))
	assert.ErrorIs(t, err, repository.ErrSlotTaken)
}

func TestBookingStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := NewBookingStore()

	saved, err := store.Save(ctx, newBooking(time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), "08:00"))
	require.NoError(t, err)

	saved.Activity = "mutated"
	got, err := store.GetByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "Eletrólise", got.Activity)
}

func TestBookingStore_Delete(t *testing.T) {
	ctx := context.Background()
	store := NewBookingStore()

	saved, err := store.Save(ctx, newBooking(time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), "08:00"))
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, saved.ID))
	require.NoError(t, store.Delete(ctx, saved.ID), "deleting twice is a no-op")

	got, err := store.GetByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestBookingStore_CompleteBefore(t *testing.T) {
	ctx := context.Background()
	store := NewBookingStore()

	past, err := store.Save(ctx, newBooking(time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC), "08:00"))
	require.NoError(t, err)
	today, err := store.Save(ctx, newBooking(time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), "08:00"))
	require.NoError(t, err)

	n, err := store.CompleteBefore(ctx, time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	got, _ := store.GetByID(ctx, past.ID)
	assert.Equal(t, model.BookingStatusCompleted, got.Status)
	got, _ = store.GetByID(ctx, today.ID)
	assert.Equal(t, model.BookingStatusConfirmed, got.Status)
}

func TestTeacherStore_UpsertByEmail(t *testing.T) {
	ctx := context.Background()
	store := NewTeacherStore()

	first, err := store.Save(ctx, &model.Teacher{Name: "Ana Souza", Email: "ana@escola.br", Disciplina: "Química"})
	require.NoError(t, err)

	second, err := store.Save(ctx, &model.Teacher{Name: "Ana P. Souza", Email: " ANA@escola.br ", Disciplina: "Física", Phone: "11 99999-0000"})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.CreatedAt, second.CreatedAt)
	assert.Equal(t, "Ana P. Souza", second.Name)
	assert.Equal(t, "Física", second.Disciplina)

	got, err := store.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, second, got)
}

func TestSessionStore(t *testing.T) {
	ctx := context.Background()
	teachers := NewTeacherStore()
	sessions := NewSessionStore(teachers)

	current, err := sessions.GetCurrentTeacher(ctx, 42)
	require.NoError(t, err)
	assert.Nil(t, current)

	teacher, err := teachers.Save(ctx, &model.Teacher{Name: "Ana", Email: "ana@escola.br", Disciplina: "Química"})
	require.NoError(t, err)
	require.NoError(t, sessions.SetCurrentTeacher(ctx, 42, teacher.ID))

	current, err = sessions.GetCurrentTeacher(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, teacher, current)

	other, err := sessions.GetCurrentTeacher(ctx, 7)
	require.NoError(t, err)
	assert.Nil(t, other)

	require.NoError(t, sessions.Clear(ctx, 42))
	current, err = sessions.GetCurrentTeacher(ctx, 42)
	require.NoError(t, err)
	assert.Nil(t, current)
}
