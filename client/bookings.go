package client

import (
	"context"
	"net/http"
)

const (
	routeBookHostel     = "/bookings/book/"
	routeMyBookings     = "/bookings/my/"
	routeOwnerBookings  = "/bookings/owner/{id}/"
	routeApproveBooking = "/bookings/{id}/approve/"
	routeRejectBooking  = "/bookings/{id}/reject/"
)

func (c *Client) BookHostel(ctx context.Context, body interface{}) Result {
	return c.call(ctx, http.MethodPost, routeBookHostel, "", body)
}

func (c *Client) MyBookings(ctx context.Context) Result {
	return c.call(ctx, http.MethodGet, routeMyBookings, "", nil)
}

// OwnerBookings lists bookings made against one of the owner's hostels.
func (c *Client) OwnerBookings(ctx context.Context, hostelID string) Result {
	return c.call(ctx, http.MethodGet, routeOwnerBookings, hostelID, nil)
}

// ApproveBooking allocates a room to a pending booking, body is usually a
// models.ApproveBookingRequest.
func (c *Client) ApproveBooking(ctx context.Context, id string, body interface{}) Result {
	return c.call(ctx, http.MethodPost, routeApproveBooking, id, body)
}

func (c *Client) RejectBooking(ctx context.Context, id string, body interface{}) Result {
	return c.call(ctx, http.MethodPost, routeRejectBooking, id, body)
}
