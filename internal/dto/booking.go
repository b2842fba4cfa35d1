package dto

import "github.com/elitehands/elitehands-api/internal/models"

// BookingSummary is the list-view shape: enough to render a row without
// dragging the full customer/service records along.
type BookingSummary struct {
	ID            uint    `json:"id"`
	BookingID     string  `json:"booking_id"`
	CustomerName  string  `json:"customer_name"`
	ServiceName   string  `json:"service_name"`
	ScheduledDate string  `json:"scheduled_date"`
	ScheduledTime string  `json:"scheduled_time"`
	Status        string  `json:"status"`
	TotalAmount   float64 `json:"total_amount"`
	City          string  `json:"city"`
}

func NewBookingSummary(b models.Booking) BookingSummary {
	return BookingSummary{
		ID:            b.ID,
		BookingID:     b.BookingID,
		CustomerName:  b.Customer.FullName(),
		ServiceName:   b.Service.Name,
		ScheduledDate: b.ScheduledDate,
		ScheduledTime: b.ScheduledTime,
		Status:        b.Status,
		TotalAmount:   b.TotalAmount,
		City:          b.City,
	}
}

func NewBookingSummaries(bookings []models.Booking) []BookingSummary {
	out := make([]BookingSummary, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, NewBookingSummary(b))
	}
	return out
}
