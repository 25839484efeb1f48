package update_appointment

import (
	"github.com/tenzan/jikan-pro-ws/internal/service/appointments/models"
)

// UpdateAppointmentRequest HTTP request model: статус и/или заметки
type UpdateAppointmentRequest struct {
	Status             *string `json:"status,omitempty"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
	Notes              *string `json:"notes,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateAppointmentRequest) ToServiceRequest(businessID int64) *models.UpdateAppointmentRequest {
	return &models.UpdateAppointmentRequest{
		BusinessID:         businessID,
		Status:             r.Status,
		CancellationReason: r.CancellationReason,
		Notes:              r.Notes,
	}
}
