package client

import (
	"context"
	"net/http"
)

const (
	routeSendNotice    = "/notices/send/"
	routeHostelNotices = "/notices/{id}/"
)

func (c *Client) SendNotice(ctx context.Context, body interface{}) Result {
	return c.call(ctx, http.MethodPost, routeSendNotice, "", body)
}

func (c *Client) HostelNotices(ctx context.Context, hostelID string) Result {
	return c.call(ctx, http.MethodGet, routeHostelNotices, hostelID, nil)
}
