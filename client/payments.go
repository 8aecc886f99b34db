package client

import (
	"context"
	"net/http"
)

const (
	routeMyPayments     = "/payments/my/"
	routeMakePayment    = "/payments/make/"
	routeRecordPayment  = "/payments/record/"
	routeHostelPayments = "/payments/hostel/{id}/"
)

func (c *Client) MyPayments(ctx context.Context) Result {
	return c.call(ctx, http.MethodGet, routeMyPayments, "", nil)
}

// MakePayment is the student side of a payment.
func (c *Client) MakePayment(ctx context.Context, body interface{}) Result {
	return c.call(ctx, http.MethodPost, routeMakePayment, "", body)
}

// RecordPayment lets an owner book a payment received outside the app.
func (c *Client) RecordPayment(ctx context.Context, body interface{}) Result {
	return c.call(ctx, http.MethodPost, routeRecordPayment, "", body)
}

func (c *Client) HostelPayments(ctx context.Context, hostelID string) Result {
	return c.call(ctx, http.MethodGet, routeHostelPayments, hostelID, nil)
}
