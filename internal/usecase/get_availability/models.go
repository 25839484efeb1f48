package get_availability

import (
	"time"

	"github.com/tenzan/jikan-pro-ws/pkg/types"
)

// Request модель запроса доступных слотов.
// Ровно один из ServiceID / EventTypeID должен быть задан - он определяет
// длительность, буферы и minimum notice.
type Request struct {
	StaffID     int64     // ID сотрудника
	Date        time.Time // Дата для получения слотов (без времени)
	ServiceID   *int64    // Источник длительности: услуга (буферы бизнеса)
	EventTypeID *int64    // Источник длительности: тип события (свои буферы и notice)
}

// Response модель ответа со списком доступных времён начала.
// Слоты показываются без буферов: буферы участвуют только в проверке
// пересечений и никогда не видны пользователю.
type Response struct {
	Date           time.Time
	StaffID        int64
	BusinessID     int64
	AvailableSlots []types.TimeString
}
