package gateway

import (
	"context"
	"errors"
	"net/http"

	"travel-portal/logger"
	"travel-portal/types/booking"
)

func (c *Client) CreateBooking(ctx context.Context, token string, b booking.Booking) (*booking.Booking, error) {
	cl, err := c.jsonCall(ServiceBookings, http.MethodPost, "/api/bookings", token, b)
	if err != nil {
		return nil, err
	}
	var created booking.Booking
	if err := c.do(ctx, cl, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// GetBooking returns the booking including its payment sub-record.
func (c *Client) GetBooking(ctx context.Context, token, id string) (*booking.Booking, error) {
	var b booking.Booking
	if err := c.do(ctx, call{service: ServiceBookings, method: http.MethodGet, path: "/api/bookings/" + escape(id), token: token}, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (c *Client) ListUserBookings(ctx context.Context, token, userID string) ([]booking.Booking, error) {
	var list []booking.Booking
	if err := c.do(ctx, call{service: ServiceBookings, method: http.MethodGet, path: "/api/bookings/user/" + escape(userID), token: token}, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *Client) ListBookings(ctx context.Context, token string) ([]booking.Booking, error) {
	var list []booking.Booking
	if err := c.do(ctx, call{service: ServiceBookings, method: http.MethodGet, path: "/api/bookings", token: token}, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// UpdateBookingStatus uses the partial-update endpoint. Services that do
// not offer one (404 or 405) get the whole record re-sent with the new
// status, which can overwrite a concurrent edit.
func (c *Client) UpdateBookingStatus(ctx context.Context, token, id, status string) (*booking.Booking, error) {
	cl, err := c.jsonCall(ServiceBookings, http.MethodPatch, "/api/bookings/"+escape(id)+"/status", token, map[string]string{"status": status})
	if err != nil {
		return nil, err
	}
	var updated booking.Booking
	err = c.do(ctx, cl, &updated)
	if err == nil {
		return &updated, nil
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) || (apiErr.Status != http.StatusNotFound && apiErr.Status != http.StatusMethodNotAllowed) {
		return nil, err
	}
	logger.Warning("Booking service has no status endpoint, falling back to full update for booking " + id)

	current, err := c.GetBooking(ctx, token, id)
	if err != nil {
		return nil, err
	}
	current.Status = status
	current.Payment = nil

	cl, err = c.jsonCall(ServiceBookings, http.MethodPut, "/api/bookings/"+escape(id), token, current)
	if err != nil {
		return nil, err
	}
	updated = booking.Booking{}
	if err := c.do(ctx, cl, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) CancelBooking(ctx context.Context, token, id string) (*booking.Booking, error) {
	var cancelled booking.Booking
	if err := c.do(ctx, call{service: ServiceBookings, method: http.MethodPut, path: "/api/bookings/" + escape(id) + "/cancel", token: token}, &cancelled); err != nil {
		return nil, err
	}
	return &cancelled, nil
}
