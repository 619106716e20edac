package domain

// Default configuration values
const (
	DefaultSlotStepMinutes         = 5
	DefaultAdvanceBookingDays      = 0 // 0 = unlimited
	DefaultMinBookingNoticeMinutes = 0
)

// Business validation constants
const (
	MinSlotStepMinutes      = 1
	MaxSlotStepMinutes      = 240
	MinAdvanceBookingDays   = 0
	MaxAdvanceBookingDays   = 365 // 1 year
	MinBookingNoticeMinutes = 0
	MaxBookingNoticeMinutes = 10080 // 1 week
	MaxNotesLength          = 500
	MaxReviewCommentLength  = 2000
	MinRating               = 1
	MaxRating               = 5
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses список статусов записей, занимающих время салона
var ActiveStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
}

// CancellableStatuses список статусов, из которых запись можно отменить
var CancellableStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
}
