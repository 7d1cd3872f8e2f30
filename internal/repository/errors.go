package repository

import "errors"

// ErrSlotTaken is returned when the storage-level uniqueness of
// (date, start_time) rejects a booking.
var ErrSlotTaken = errors.New("slot already taken")
