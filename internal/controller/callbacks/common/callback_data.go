package common

import (
	"strings"
	"time"

	"github.com/Freeeeeet/labbooking_bot/internal/schedule"
)

// Callback data prefixes. Telegram limits callback data to 64 bytes; booking
// ids are 36-byte UUIDs, so every id-carrying prefix stays short.
const (
	DayPrefix           = "day:"        // day:2025-06-12
	BookPrefix          = "book:"       // book:2025-06-12_08:00
	BookingPrefix       = "booking:"    // booking:<id>
	EditPrefix          = "edit:"       // edit:<id>
	CancelPrefix        = "cancel:"     // cancel:<id>
	ConfirmCancelPrefix = "cancel_yes:" // cancel_yes:<id>

	MyBookingsData     = "mybookings"
	WeekData           = "week"
	BookingConfirmData = "booking_confirm"
	BookingAbortData   = "booking_abort"
)

const slotSeparator = "_"

func DayData(date time.Time) string {
	return DayPrefix + schedule.FormatKey(date)
}

func BookData(date time.Time, startTime string) string {
	return BookPrefix + schedule.FormatKey(date) + slotSeparator + startTime
}

func BookingData(id string) string       { return BookingPrefix + id }
func EditData(id string) string          { return EditPrefix + id }
func CancelData(id string) string        { return CancelPrefix + id }
func ConfirmCancelData(id string) string { return ConfirmCancelPrefix + id }

// ParseDay extracts the date key of a day: callback.
func ParseDay(data string) (string, error) {
	key, ok := strings.CutPrefix(data, DayPrefix)
	if !ok || !validKey(key) {
		return "", ErrInvalidFormat
	}
	return key, nil
}

// ParseBook extracts the date key and start time of a book: callback.
func ParseBook(data string) (dateKey, startTime string, err error) {
	rest, ok := strings.CutPrefix(data, BookPrefix)
	if !ok {
		return "", "", ErrInvalidFormat
	}
	dateKey, startTime, ok = strings.Cut(rest, slotSeparator)
	if !ok || !validKey(dateKey) {
		return "", "", ErrInvalidFormat
	}
	if _, found := schedule.FindSlot(startTime); !found {
		return "", "", ErrInvalidFormat
	}
	return dateKey, startTime, nil
}

// ParseID extracts the booking id following prefix.
func ParseID(data, prefix string) (string, error) {
	id, ok := strings.CutPrefix(data, prefix)
	if !ok || id == "" || strings.Contains(id, ":") {
		return "", ErrInvalidFormat
	}
	return id, nil
}

func validKey(key string) bool {
	_, err := time.Parse("2006-01-02", key)
	return err == nil
}
