package get_availability

import (
	"github.com/tenzan/jikan-pro-ws/internal/domain"
	getAvailability "github.com/tenzan/jikan-pro-ws/internal/usecase/get_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Date           string   `json:"date"` // "2026-09-14"
	StaffID        int64    `json:"staffId"`
	BusinessID     int64    `json:"businessId"`
	AvailableSlots []string `json:"availableSlots"` // ["09:00", "09:30", ...]
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	slots := make([]string, 0, len(resp.AvailableSlots))
	for _, s := range resp.AvailableSlots {
		slots = append(slots, s.String())
	}

	return &AvailabilityResponse{
		Date:           resp.Date.Format(domain.DateFormat),
		StaffID:        resp.StaffID,
		BusinessID:     resp.BusinessID,
		AvailableSlots: slots,
	}
}
