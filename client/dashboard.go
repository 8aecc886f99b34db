package client

import (
	"context"
	"net/http"
)

const (
	routeStudentDashboard = "/dashboard/student/"
	routeOwnerDashboard   = "/dashboard/owner/"
	routeHostelStats      = "/analytics/hostel/{id}/"
)

func (c *Client) StudentDashboard(ctx context.Context) Result {
	return c.call(ctx, http.MethodGet, routeStudentDashboard, "", nil)
}

func (c *Client) OwnerDashboard(ctx context.Context) Result {
	return c.call(ctx, http.MethodGet, routeOwnerDashboard, "", nil)
}

func (c *Client) HostelStats(ctx context.Context, hostelID string) Result {
	return c.call(ctx, http.MethodGet, routeHostelStats, hostelID, nil)
}
