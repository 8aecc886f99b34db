package client

import (
	"context"
	"net/http"
)

const (
	routeHostels      = "/hostels/"
	routeHostel       = "/hostels/{id}/"
	routeAddHostel    = "/hostels/add/"
	routeUpdateHostel = "/hostels/{id}/update/"
	routeMyHostels    = "/hostels/my/"
)

func (c *Client) Hostels(ctx context.Context) Result {
	return c.call(ctx, http.MethodGet, routeHostels, "", nil)
}

func (c *Client) Hostel(ctx context.Context, id string) Result {
	return c.call(ctx, http.MethodGet, routeHostel, id, nil)
}

func (c *Client) AddHostel(ctx context.Context, body interface{}) Result {
	return c.call(ctx, http.MethodPost, routeAddHostel, "", body)
}

func (c *Client) UpdateHostel(ctx context.Context, id string, body interface{}) Result {
	return c.call(ctx, http.MethodPut, routeUpdateHostel, id, body)
}

// MyHostels lists the hostels owned by the logged in user.
func (c *Client) MyHostels(ctx context.Context) Result {
	return c.call(ctx, http.MethodGet, routeMyHostels, "", nil)
}
