package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayData(t *testing.T) {
	data := DayData(time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, "day:2025-06-12", data)

	key, err := ParseDay(data)
	require.NoError(t, err)
	assert.Equal(t, "2025-06-12", key)

	for _, bad := range []string{"day:", "day:2025-13-01", "book:2025-06-12", "day:12/06/2025"} {
		_, err := ParseDay(bad)
		assert.ErrorIs(t, err, ErrInvalidFormat, bad)
	}
}

func TestBookData(t *testing.T) {
	data := BookData(time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC), "13:00")
	assert.Equal(t, "book:2025-06-12_13:00", data)

	key, start, err := ParseBook(data)
	require.NoError(t, err)
	assert.Equal(t, "2025-06-12", key)
	assert.Equal(t, "13:00", start)

	for _, bad := range []string{"book:2025-06-12", "book:2025-06-12_13:05", "book:x_13:00", "day:2025-06-12_13:00"} {
		_, _, err := ParseBook(bad)
		assert.ErrorIs(t, err, ErrInvalidFormat, bad)
	}
}

func TestParseID(t *testing.T) {
	const id = "0b6f3c8e-5d2a-4f7e-9c1b-2a3d4e5f6a7b"

	for _, tt := range []struct {
		data   string
		prefix string
	}{
		{BookingData(id), BookingPrefix},
		{EditData(id), EditPrefix},
		{CancelData(id), CancelPrefix},
		{ConfirmCancelData(id), ConfirmCancelPrefix},
	} {
		got, err := ParseID(tt.data, tt.prefix)
		require.NoError(t, err, tt.data)
		assert.Equal(t, id, got)
		assert.LessOrEqual(t, len(tt.data), 64, "telegram callback data limit")
	}

	_, err := ParseID("edit:", EditPrefix)
	assert.ErrorIs(t, err, ErrInvalidFormat)
	_, err = ParseID(ConfirmCancelData(id), CancelPrefix)
	assert.ErrorIs(t, err, ErrInvalidFormat, "cancel_yes must not parse as cancel")
}
