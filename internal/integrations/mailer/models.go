package mailer

// Notification уведомление о событии с записью на приём
type Notification struct {
	Kind           string  `json:"kind"` // "appointment.created" | "appointment.status_changed"
	AppointmentID  int64   `json:"appointmentId"`
	BusinessID     int64   `json:"businessId"`
	CustomerEmail  string  `json:"customerEmail"`
	CustomerName   string  `json:"customerName"`
	Date           string  `json:"date"`      // YYYY-MM-DD
	StartTime      string  `json:"startTime"` // HH:MM
	Status         string  `json:"status"`
	PreviousStatus *string `json:"previousStatus,omitempty"`
}

// Константы видов уведомлений
const (
	KindCreated       = "appointment.created"
	KindStatusChanged = "appointment.status_changed"
)
