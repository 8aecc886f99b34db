package client

import (
	"context"
	"net/http"
)

const (
	routeHostelRooms = "/rooms/hostel/{id}/"
	routeAddRoom     = "/rooms/add/"
	routeUpdateRoom  = "/rooms/{id}/update/"
)

func (c *Client) HostelRooms(ctx context.Context, hostelID string) Result {
	return c.call(ctx, http.MethodGet, routeHostelRooms, hostelID, nil)
}

func (c *Client) AddRoom(ctx context.Context, body interface{}) Result {
	return c.call(ctx, http.MethodPost, routeAddRoom, "", body)
}

func (c *Client) UpdateRoom(ctx context.Context, id string, body interface{}) Result {
	return c.call(ctx, http.MethodPut, routeUpdateRoom, id, body)
}
