package create_appointment

import (
	"time"

	"github.com/tenzan/jikan-pro-ws/internal/domain"
	createAppointment "github.com/tenzan/jikan-pro-ws/internal/usecase/create_appointment"
	"github.com/tenzan/jikan-pro-ws/pkg/types"
)

// CustomerInput данные клиента в запросе
type CustomerInput struct {
	Name  string  `json:"name"`
	Email string  `json:"email"`
	Phone *string `json:"phone,omitempty"`
}

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	StaffID     int64         `json:"staffId"`
	Date        string        `json:"date"`      // "2026-09-14"
	StartTime   string        `json:"startTime"` // "10:00"
	ServiceID   *int64        `json:"serviceId,omitempty"`
	EventTypeID *int64        `json:"eventTypeId,omitempty"`
	Customer    CustomerInput `json:"customer"`
	Notes       *string       `json:"notes,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID              int64  `json:"id"`
	BusinessID      int64  `json:"businessId"`
	StaffID         int64  `json:"staffId"`
	StaffName       string `json:"staffName"`
	ServiceID       *int64 `json:"serviceId,omitempty"`
	ServiceName     *string `json:"serviceName,omitempty"`
	EventTypeID     *int64  `json:"eventTypeId,omitempty"`
	EventTypeTitle  *string `json:"eventTypeTitle,omitempty"`
	CustomerID      int64   `json:"customerId"`
	CustomerName    string  `json:"customerName"`
	CustomerEmail   string  `json:"customerEmail"`
	Date            string  `json:"date"`
	StartTime       string  `json:"startTime"`
	EndTime         string  `json:"endTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	Notes           *string `json:"notes,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest() (*createAppointment.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createAppointment.Request{
		StaffID:     r.StaffID,
		Date:        date,
		StartTime:   startTime,
		ServiceID:   r.ServiceID,
		EventTypeID: r.EventTypeID,
		Customer: createAppointment.CustomerInput{
			Name:  r.Customer.Name,
			Email: r.Customer.Email,
			Phone: r.Customer.Phone,
		},
		Notes: r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
	a := resp.Appointment

	out := &AppointmentResponse{
		ID:              a.ID,
		BusinessID:      a.BusinessID,
		StaffID:         a.StaffID,
		StaffName:       resp.Staff.Name,
		ServiceID:       a.ServiceID,
		EventTypeID:     a.EventTypeID,
		CustomerID:      a.CustomerID,
		CustomerName:    resp.Customer.Name,
		CustomerEmail:   resp.Customer.Email,
		Date:            a.Date.Format(domain.DateFormat),
		StartTime:       a.StartTime.String(),
		DurationMinutes: a.DurationMinutes,
		Status:          string(a.Status),
		Notes:           a.Notes,
		CreatedAt:       a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       a.UpdatedAt.Format(time.RFC3339),
	}

	if end, err := a.EndTime(); err == nil {
		out.EndTime = end.String()
	}
	if resp.Service != nil {
		out.ServiceName = &resp.Service.Name
	}
	if resp.EventType != nil {
		out.EventTypeTitle = &resp.EventType.Title
	}

	return out
}
