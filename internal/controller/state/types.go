package state

// UserState is the step of the dialog a user is in.
type UserState string

const (
	StateNone UserState = ""

	// Registration
	StateRegisterName       UserState = "register_name"
	StateRegisterEmail      UserState = "register_email"
	StateRegisterDisciplina UserState = "register_disciplina"
	StateRegisterPhone      UserState = "register_phone"

	// Booking form, for new bookings and edits. StateBookingPickSlot means an
	// edit is waiting for the new date and slot.
	StateBookingPickSlot    UserState = "booking_pick_slot"
	StateBookingClassName   UserState = "booking_class_name"
	StateBookingActivity    UserState = "booking_activity"
	StateBookingNumStudents UserState = "booking_num_students"
	StateBookingConfirm     UserState = "booking_confirm"
)

// Dialog data keys.
const (
	KeyName       = "name"
	KeyEmail      = "email"
	KeyDisciplina = "disciplina"

	KeyDate        = "date"       // "YYYY-MM-DD"
	KeyStartTime   = "start_time" // "HH:MM"
	KeyEditingID   = "editing_id"
	KeyClassName   = "class_name"
	KeyActivity    = "activity"
	KeyNumStudents = "num_students"
)

// UserData is the dialog state of one user.
type UserData struct {
	State UserState
	Data  map[string]any
}
